// Package auth resolves the bearer token used against the template
// repository. The token is resolved once at startup and handed to the
// store; nothing else in the tool ever sees it.
package auth

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/zalando/go-keyring"
	"gitlab.com/tozd/go/errors"
)

const (
	// 🔑 EnvVar is the environment variable checked first.
	EnvVar = "GITHUB_TOKEN"

	// Keyring coordinates, shared with the other tooling that provisions
	// the operator's machine.
	keyringService = "github"
	keyringUser    = "github_token"
)

// 🚫 ErrNoToken indicates no source produced a token.
var ErrNoToken = errors.New("no GitHub token found")

// 🎯 Resolve walks the token sources in order: the GITHUB_TOKEN
// environment variable, then the configured token file, then the OS
// keyring (service "github", user "github_token"). tokenFile may be empty
// to skip that leg.
func Resolve(ctx context.Context, tokenFile string) (string, error) {
	logger := zerolog.Ctx(ctx)

	if token := strings.TrimSpace(os.Getenv(EnvVar)); token != "" {
		logger.Debug().Str("source", "env").Msg("resolved token")
		return token, nil
	}

	if tokenFile != "" {
		data, err := os.ReadFile(tokenFile)
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Errorf("reading token file %s: %w", tokenFile, err)
		}
		if token := strings.TrimSpace(string(data)); token != "" {
			logger.Debug().Str("source", "file").Str("path", tokenFile).Msg("resolved token")
			return token, nil
		}
	}

	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		// A broken keyring backend should not abort resolution outright;
		// surface it in the final error instead.
		logger.Debug().Err(err).Msg("keyring lookup failed")
	}
	if token = strings.TrimSpace(token); token != "" {
		logger.Debug().Str("source", "keyring").Msg("resolved token")
		return token, nil
	}

	return "", errors.Errorf("%w: set %s, or a token_file in settings, or keyring entry %s/%s",
		ErrNoToken, EnvVar, keyringService, keyringUser)
}
