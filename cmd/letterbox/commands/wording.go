package commands

import (
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/aaurigemmafbr/letter-box-updates/cmd/letterbox/opts"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/operation"
)

// NewWordingCmd creates the wording update command
func NewWordingCmd(factory opts.Factory) *cobra.Command {
	var (
		text     string
		textFile string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "wording",
		Short: "Inject a pasted block into every base template",
		Long: `Wording injects a block of text between the body markers of every
.txt file in the base-templates folder and commits the results under
matching names in the updated-letters folder, overwriting what is there.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "wording").Logger().WithContext(ctx)

			block, err := readBlock(text, textFile)
			if err != nil {
				return err
			}
			if strings.TrimSpace(block) == "" {
				return errors.New("please paste a non-empty block of text (--text or --text-file)")
			}

			if !confirm(yes, "Inject this text into every .txt in the base-templates folder and commit to the updated-letters folder (overwrite same filenames)?") {
				return errors.New("wording update not confirmed")
			}

			ro, err := factory(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewWordingOperation(operation.Options{
				Settings: ro.Settings,
				Store:    ro.Store,
			}, block)
			if err != nil {
				return errors.Errorf("preparing wording update: %w", err)
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx), ro.Async)
			report, err := runner.Run(ctx, op)
			if err != nil {
				return errors.Errorf("running wording update: %w", err)
			}

			printReport(ctx, ro, report, ro.Settings.BaseTemplates)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "block of text to insert")
	cmd.Flags().StringVarP(&textFile, "text-file", "f", "", "file holding the block of text ('-' for stdin)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// readBlock returns the pasted block from --text or --text-file.
func readBlock(text, textFile string) (string, error) {
	if text != "" {
		return text, nil
	}
	if textFile == "" {
		return "", nil
	}
	if textFile == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Errorf("reading block from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(textFile)
	if err != nil {
		return "", errors.Errorf("reading block file: %w", err)
	}
	return string(data), nil
}

// confirm gates a destructive batch behind --yes or an interactive prompt.
func confirm(yes bool, message string) bool {
	if yes {
		return true
	}
	ok, _ := pterm.DefaultInteractiveConfirm.Show(message)
	return ok
}
