package status

import (
	"fmt"
)

// Formatter defines how per-file outcomes should be formatted
type Formatter interface {
	// FormatResult formats one file's outcome line
	FormatResult(res Result) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatResult formats one file's outcome line with emojis
func (f *DefaultFormatter) FormatResult(res Result) string {
	switch res.Outcome {
	case OutcomeCreated:
		return fmt.Sprintf("✨ Created %s", res.Path)
	case OutcomeUpdated:
		return fmt.Sprintf("📝 Updated %s", res.Path)
	case OutcomeSkipped:
		return fmt.Sprintf("⏭️  Skipped %s", res.Path)
	case OutcomeFailed:
		return fmt.Sprintf("❌ Failed %s: %s", res.Path, res.Detail)
	default:
		return fmt.Sprintf("👍 Unchanged %s", res.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
