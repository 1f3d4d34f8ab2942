package operation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/aaurigemmafbr/letter-box-updates/pkg/config"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/remote"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/status"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/text"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/tiers"
)

// 📋 SignatureRequest names the signers for one signature update: picks
// from the repository's preconfigured catalog, plus any custom tiers
// entered by the operator. The two are merged and ordered through a
// single validated path before anything is rendered.
type SignatureRequest struct {
	Location string       // Catalog location (e.g. "Denver", "WSlope")
	Signers  []string     // Names of preconfigured catalog signers
	Custom   []tiers.Tier // Operator-entered tiers
}

// ✍️ SignatureOperation regenerates the tiered signature block of every
// live letter at a location and commits the files in place.
type SignatureOperation struct {
	opts Options
	req  SignatureRequest
}

// 🏭 NewSignatureOperation creates a signature update for the given
// request. Tier resolution happens at execute time, against the catalog
// as committed in the repository.
func NewSignatureOperation(opts Options, req SignatureRequest) (*SignatureOperation, error) {
	if err := opts.validate("signature"); err != nil {
		return nil, err
	}
	if req.Location == "" {
		return nil, errors.New("location is required")
	}
	if len(req.Signers) == 0 && len(req.Custom) == 0 {
		return nil, errors.New("no signees configured: add preconfigured or custom signees")
	}
	return &SignatureOperation{opts: opts, req: req}, nil
}

// Name implements Operation.
func (op *SignatureOperation) Name() string { return "signature" }

// 🔍 resolveTiers merges catalog picks and custom tiers into one
// validated, descending-ordered list.
func (op *SignatureOperation) resolveTiers(catalog config.Catalog) (tiers.List, error) {
	// Validate the location even when every signer is custom; markers are
	// derived from it and a typo would touch the wrong region.
	if _, err := catalog.Lookup(op.req.Location); err != nil {
		return nil, err
	}

	var selected []tiers.Tier
	for _, name := range op.req.Signers {
		t, err := catalog.FindSigner(op.req.Location, name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, t)
	}
	selected = append(selected, op.req.Custom...)

	return tiers.NewList(selected...)
}

// 🏃 Execute builds the snippet and splices it into every live letter.
func (op *SignatureOperation) Execute(ctx context.Context) (*status.Report, error) {
	logger := zerolog.Ctx(ctx)
	settings := op.opts.Settings

	catalog, _, err := remote.ReadJSON(ctx, op.opts.Store, settings.CatalogPath, config.ParseCatalog)
	if err != nil {
		return nil, errors.Errorf("loading signatures catalog: %w", err)
	}

	list, err := op.resolveTiers(catalog)
	if err != nil {
		return nil, errors.Errorf("resolving tiers: %w", err)
	}

	snippet, err := tiers.BuildSnippet(list)
	if err != nil {
		return nil, errors.Errorf("building snippet: %w", err)
	}

	files, err := op.opts.Store.ListTextFiles(ctx, settings.UpdatedLetters)
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", settings.UpdatedLetters, err)
	}
	live, err := remote.FilterByPattern(files, settings.LivePattern)
	if err != nil {
		return nil, errors.Errorf("selecting live letters: %w", err)
	}
	logger.Debug().
		Int("candidates", len(live)).
		Str("location", op.req.Location).
		Int("tiers", len(list)).
		Msg("signature update")

	op.opts.StatusMgr.StartBatch(ctx, len(live))

	rules := []text.Rule{{Markers: settings.SignatureMarkers(op.req.Location), Inner: snippet}}

	for _, f := range live {
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

		message := fmt.Sprintf("Signature update (%s) for %s", op.req.Location, f.Name)
		res, err := op.opts.Store.Write(ctx, f.Path, result.NewText, message, doc.SHA)
		if err != nil {
			trackFailure(ctx, op.opts.StatusMgr, f, err)
			continue
		}

		trackWrite(ctx, op.opts.StatusMgr, f, res)
	}

	return op.opts.StatusMgr.Report(), nil
}
