package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aaurigemmafbr/letter-box-updates/cmd/letterbox/commands"
	"github.com/aaurigemmafbr/letter-box-updates/cmd/letterbox/opts"
)

var (
	// Flags
	configFile string
	branch     string
	debug      bool
	async      bool
)

// NewRootCmd creates the letterbox root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "letterbox",
		Short: "Wording and signature updates for letter templates",
		Long: `Letterbox updates the letter templates kept in a private repository:
inject a pasted wording block into every base template, or regenerate
the tiered donor-acknowledgment signature of the live letters.

Every batch attempts every candidate file and reports a per-file
outcome; one file's failure never aborts the batch.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	addRootFlags(cmd)

	factory := func(ctx context.Context) (*opts.RootOpts, error) {
		return opts.New(ctx, configFile, branch, async)
	}

	cmd.AddCommand(commands.NewWordingCmd(factory))
	cmd.AddCommand(commands.NewSignatureCmd(factory))
	cmd.AddCommand(commands.NewPreviewCmd(factory))

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "letterbox.yaml", "settings file path")
	cmd.PersistentFlags().StringVarP(&branch, "branch", "b", "", "override the branch to update")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&async, "async", false, "run the batch asynchronously")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
