package log

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/aaurigemmafbr/letter-box-updates/pkg/status"
)

// 📢 UserLogger provides user-friendly feedback about repository changes
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogResult logs a file outcome with appropriate emoji and formatting
func (u *UserLogger) LogResult(res status.Result) {
	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch res.Outcome {
	case status.OutcomeCreated:
		prefix = "✨"
		action = "Created"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case status.OutcomeUpdated:
		prefix = "🔄"
		action = "Updated"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case status.OutcomeSkipped:
		prefix = "⏭️"
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	default:
		prefix = "❌"
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, res.File)
	if res.Detail != "" {
		msg += fmt.Sprintf(" (%s)", res.Detail)
	}

	if res.Err != nil {
		printer.Println(msg)
		pterm.Error.Println(res.Err)
		u.log.Error().Err(res.Err).Msg(msg) // Also log to zerolog for debugging
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg) // Also log to zerolog for debugging
	}
}

// 📊 LogBatchSummary logs the end-of-batch tally
func (u *UserLogger) LogBatchSummary(report *status.Report) {
	succeeded, failed, skipped := report.Counts()
	msg := fmt.Sprintf("%s finished: %d ok, %d failed, %d skipped",
		report.Operation, succeeded, failed, skipped)
	if failed > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
		u.log.Warn().Msg(msg)
		return
	}
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
	u.log.Info().Msg(msg)
}
