package operation

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/aaurigemmafbr/letter-box-updates/pkg/status"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/text"
)

// 📋 WordingOperation injects a pasted block of text into the body region
// of every base template and commits the results under matching names in
// the updated-letters folder. Existing outputs are overwritten; base
// templates are never written to.
type WordingOperation struct {
	opts  Options
	block string
}

// 🏭 NewWordingOperation creates a wording update for the given pasted
// block. An empty block is rejected before any repository access.
func NewWordingOperation(opts Options, block string) (*WordingOperation, error) {
	if err := opts.validate("wording"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(block) == "" {
		return nil, errors.New("paste block must not be empty")
	}
	return &WordingOperation{opts: opts, block: block}, nil
}

// Name implements Operation.
func (op *WordingOperation) Name() string { return "wording" }

// 🏃 Execute runs the wording batch over every .txt base template.
func (op *WordingOperation) Execute(ctx context.Context) (*status.Report, error) {
	logger := zerolog.Ctx(ctx)
	settings := op.opts.Settings

	files, err := op.opts.Store.ListTextFiles(ctx, settings.BaseTemplates)
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", settings.BaseTemplates, err)
	}
	logger.Debug().Int("candidates", len(files)).Str("folder", settings.BaseTemplates).Msg("wording update")

	op.opts.StatusMgr.StartBatch(ctx, len(files))

	rules := []text.Rule{{Markers: settings.BodyMarkers(), Inner: op.block}}
	if err := op.opts.Replacer.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating body markers: %w", err)
	}

	for _, f := range files {
		doc, err := op.opts.Store.Read(ctx, f.Path)
		if err != nil {
			trackFailure(ctx, op.opts.StatusMgr, f, err)
			continue
		}

		result, err := op.opts.Replacer.Replace(ctx, doc.Text, rules)
		if err != nil {
			trackFailure(ctx, op.opts.StatusMgr, f, err)
			continue
		}

		target := path.Join(settings.UpdatedLetters, f.Name)
		message := fmt.Sprintf("Wording update: injected block into %s", f.Name)
		res, err := op.opts.Store.Write(ctx, target, result.NewText, message, "")
		if err != nil {
			trackFailure(ctx, op.opts.StatusMgr, f, err)
			continue
		}

		trackWrite(ctx, op.opts.StatusMgr, f, res)
	}

	return op.opts.StatusMgr.Report(), nil
}
