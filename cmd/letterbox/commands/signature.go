package commands

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/aaurigemmafbr/letter-box-updates/cmd/letterbox/opts"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/operation"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/tiers"
)

// NewSignatureCmd creates the signature update command
func NewSignatureCmd(factory opts.Factory) *cobra.Command {
	var (
		location string
		signers  []string
		custom   []string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "signature",
		Short: "Regenerate the tiered signature block of the live letters",
		Long: `Signature builds a tiered donor-acknowledgment snippet from the chosen
signers and splices it between the location's signature markers in every
live letter, committing the files in place.

Signers come from the repository's signatures catalog (--signer, by
name, repeatable) and from custom entries (--custom name:title:min or
name:title:min:max, repeatable). Tiers are ordered automatically,
highest minimum gift first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "signature").Logger().WithContext(ctx)

			customTiers, err := parseCustomTiers(custom)
			if err != nil {
				return err
			}

			if !confirm(yes, "Generate the signature snippet and replace the signature blocks in every live letter?") {
				return errors.New("signature update not confirmed")
			}

			ro, err := factory(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewSignatureOperation(operation.Options{
				Settings: ro.Settings,
				Store:    ro.Store,
			}, operation.SignatureRequest{
				Location: location,
				Signers:  signers,
				Custom:   customTiers,
			})
			if err != nil {
				return errors.Errorf("preparing signature update: %w", err)
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx), ro.Async)
			report, err := runner.Run(ctx, op)
			if err != nil {
				return errors.Errorf("running signature update: %w", err)
			}

			printReport(ctx, ro, report, ro.Settings.UpdatedLetters)
			return nil
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", "", "location whose signatures to update (e.g. denver, wslope)")
	cmd.Flags().StringArrayVarP(&signers, "signer", "s", nil, "preconfigured catalog signer, by name (repeatable)")
	cmd.Flags().StringArrayVar(&custom, "custom", nil, "custom signer as name:title:min or name:title:min:max (repeatable)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}

// parseCustomTiers parses --custom values of the form name:title:min or
// name:title:min:max.
func parseCustomTiers(values []string) ([]tiers.Tier, error) {
	var out []tiers.Tier
	for _, v := range values {
		parts := strings.Split(v, ":")
		if len(parts) != 3 && len(parts) != 4 {
			return nil, errors.Errorf("invalid custom signer %q: want name:title:min or name:title:min:max", v)
		}

		minGift, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, errors.Errorf("invalid custom signer %q: bad min gift %q", v, parts[2])
		}

		t := tiers.Tier{
			Name:    strings.TrimSpace(parts[0]),
			Title:   strings.TrimSpace(parts[1]),
			MinGift: minGift,
		}

		if len(parts) == 4 {
			maxGift, err := strconv.ParseFloat(parts[3], 64)
			if err != nil {
				return nil, errors.Errorf("invalid custom signer %q: bad max gift %q", v, parts[3])
			}
			// Zero means unbounded, matching the catalog convention.
			if maxGift > 0 {
				t.MaxGift = &maxGift
			}
		}

		out = append(out, t)
	}
	return out, nil
}
