// Package opts wires the shared collaborators every letterbox command
// needs: settings, the resolved store, and the console loggers.
package opts

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/aaurigemmafbr/letter-box-updates/pkg/auth"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/config"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/log"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/remote"

	// Register the GitHub store.
	_ "github.com/aaurigemmafbr/letter-box-updates/pkg/remote/github"
)

// 🎯 RootOpts holds the dependencies shared by all commands
type RootOpts struct {
	Settings      *config.Settings
	Store         remote.Store
	ConsoleLogger *log.Logger
	UserLogger    *log.UserLogger
	Async         bool
}

// Factory builds RootOpts once flags are parsed. Commands receive a
// factory rather than built opts so settings load after cobra has bound
// the --config flag.
type Factory func(ctx context.Context) (*RootOpts, error)

// 🏭 New creates RootOpts with initialized dependencies
func New(ctx context.Context, configFile, branchOverride string, async bool) (*RootOpts, error) {
	// Load settings
	settings, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading settings: %w", err)
	}
	if branchOverride != "" {
		settings.Branch = branchOverride
	}

	// Resolve the repository token
	token, err := auth.Resolve(ctx, settings.TokenFile)
	if err != nil {
		return nil, errors.Errorf("resolving token: %w", err)
	}

	// Create the store
	store, err := remote.New(ctx, settings, token)
	if err != nil {
		return nil, errors.Errorf("creating store: %w", err)
	}

	return &RootOpts{
		Settings:      settings,
		Store:         store,
		ConsoleLogger: log.New(os.Stdout, zerolog.GlobalLevel()),
		UserLogger:    log.NewUserLogger(ctx),
		Async:         async,
	}, nil
}
