package commands

import (
	"context"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/aaurigemmafbr/letter-box-updates/cmd/letterbox/opts"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/config"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/log"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/remote"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/status"
)

// NewPreviewCmd creates the read-only preview command
func NewPreviewCmd(factory opts.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show folder file counts and catalog locations without writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "preview").Logger().WithContext(ctx)

			ro, err := factory(ctx)
			if err != nil {
				return err
			}
			settings := ro.Settings

			base, err := ro.Store.ListTextFiles(ctx, settings.BaseTemplates)
			if err != nil {
				return errors.Errorf("listing %s: %w", settings.BaseTemplates, err)
			}
			updated, err := ro.Store.ListTextFiles(ctx, settings.UpdatedLetters)
			if err != nil {
				return errors.Errorf("listing %s: %w", settings.UpdatedLetters, err)
			}
			live, err := remote.FilterByPattern(updated, settings.LivePattern)
			if err != nil {
				return errors.Errorf("selecting live letters: %w", err)
			}

			// A template without the body markers would fail a wording
			// run, so surface how many are ready before anyone commits.
			markers := settings.BodyMarkers()
			ready := 0
			for _, f := range base {
				doc, err := ro.Store.Read(ctx, f.Path)
				if err != nil {
					pterm.Warning.Printfln("Could not read %s: %v", f.Path, err)
					continue
				}
				if markers.Contains(doc.Text) {
					ready++
				}
			}

			pterm.Info.Printfln("Repository: %s", ro.Store.Name())
			pterm.Info.Printfln("Found %d files in %s (%d carry the body markers)", len(base), settings.BaseTemplates, ready)
			pterm.Info.Printfln("Found %d files in %s (%d live)", len(updated), settings.UpdatedLetters, len(live))

			catalog, _, err := remote.ReadJSON(ctx, ro.Store, settings.CatalogPath, config.ParseCatalog)
			if err != nil {
				pterm.Warning.Printfln("Could not read %s: %v", settings.CatalogPath, err)
				return nil
			}
			pterm.Info.Printfln("Catalog locations: %s", strings.Join(catalog.Locations(), ", "))
			for _, loc := range catalog.Locations() {
				signers, err := catalog.Lookup(loc)
				if err != nil {
					continue
				}
				for _, s := range signers {
					pterm.Debug.Printfln("  %s: %s", loc, s.String())
				}
			}
			return nil
		},
	}
	return cmd
}

// printReport surfaces every per-file outcome plus the batch tally.
func printReport(ctx context.Context, ro *opts.RootOpts, report *status.Report, folder string) {
	ro.ConsoleLogger.StartBatch(ctx, log.BatchInfo{
		Operation:  report.Operation,
		Repository: ro.Store.Name(),
		Folder:     folder,
	})
	for _, res := range report.Results {
		ro.ConsoleLogger.LogResult(ctx, res)
	}
	ro.ConsoleLogger.EndBatch(ctx)
	for _, res := range report.Failed() {
		ro.UserLogger.LogResult(res)
	}
	ro.UserLogger.LogBatchSummary(report)
}
