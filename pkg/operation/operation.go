package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/aaurigemmafbr/letter-box-updates/pkg/config"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/remote"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/status"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/text"
)

// 🎯 Operation is one batch update against the template repository. A
// batch attempts every candidate file and records a per-file outcome; a
// single file's failure never aborts the batch. Execute returns an error
// only when the batch itself cannot run (bad input, unreachable store).
type Operation interface {
	// Name returns the operation name (e.g. "wording")
	Name() string
	// Execute runs the batch and returns the per-file outcome report
	Execute(ctx context.Context) (*status.Report, error)
}

// 🔧 Options contains the collaborators every operation needs
type Options struct {
	// Settings is the letterbox configuration
	Settings *config.Settings
	// Store is the template repository
	Store remote.Store
	// StatusMgr tracks per-file outcomes
	StatusMgr *status.Manager
	// Replacer applies marker rules to documents
	Replacer *text.Replacer
}

// 🔍 validate checks that the required collaborators are present and
// fills in the optional ones.
func (o *Options) validate(operation string) error {
	if o.Settings == nil {
		return errors.Errorf("settings are required")
	}
	if o.Store == nil {
		return errors.Errorf("store is required")
	}
	if o.StatusMgr == nil {
		o.StatusMgr = status.NewManager(operation)
	}
	if o.Replacer == nil {
		o.Replacer = text.NewReplacer()
	}
	return nil
}

// trackFailure records a failed candidate and keeps the batch going.
func trackFailure(ctx context.Context, mgr *status.Manager, file remote.FileHandle, err error) {
	mgr.Track(ctx, status.Result{
		File:    file.Name,
		Path:    file.Path,
		Outcome: status.OutcomeFailed,
		Detail:  err.Error(),
		Err:     err,
	})
}

// trackWrite records a successful commit.
func trackWrite(ctx context.Context, mgr *status.Manager, file remote.FileHandle, res *remote.WriteResult) {
	outcome := status.OutcomeUpdated
	if res.Action == remote.ActionCreated {
		outcome = status.OutcomeCreated
	}
	mgr.Track(ctx, status.Result{
		File:    file.Name,
		Path:    res.Path,
		Outcome: outcome,
		Detail:  string(res.Action),
	})
}
