// Copyright 2025 letter-box-updates authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/oauth2"

	"github.com/aaurigemmafbr/letter-box-updates/pkg/config"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/remote"
)

func init() {
	remote.Register("github", New)
}

// 🎯 Store implements remote.Store against a private GitHub repository.
type Store struct {
	client *github.Client
	owner  string
	name   string
	branch string
	logger zerolog.Logger
}

// 🏭 New creates a new GitHub store for the configured repository.
func New(ctx context.Context, settings *config.Settings, token string) (remote.Store, error) {
	logger := zerolog.Ctx(ctx)

	if token == "" {
		return nil, errors.New("GitHub token required")
	}

	// Create OAuth2 client
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Store{
		client: github.NewClient(tc),
		owner:  settings.Owner,
		name:   settings.Name,
		branch: settings.Branch,
		logger: *logger,
	}, nil
}

// 📝 Name returns the repository identity.
func (s *Store) Name() string {
	return fmt.Sprintf("%s/%s@%s", s.owner, s.name, s.branch)
}

// 📂 ListTextFiles lists the .txt files directly inside folder. A missing
// folder yields an empty listing.
func (s *Store) ListTextFiles(ctx context.Context, folder string) ([]remote.FileHandle, error) {
	_, dir, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.name, folder, &github.RepositoryContentGetOptions{
		Ref: s.branch,
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			s.logger.Debug().Str("folder", folder).Msg("folder not found, treating as empty")
			return nil, nil
		}
		return nil, errors.Errorf("listing folder %s: %w", folder, err)
	}
	if dir == nil {
		return nil, errors.Errorf("path %s is a file, not a folder", folder)
	}

	var files []remote.FileHandle
	for _, c := range dir {
		if c.GetType() != "file" {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(c.GetName()), ".txt") {
			continue
		}
		files = append(files, remote.FileHandle{
			Name: c.GetName(),
			Path: c.GetPath(),
		})
	}
	return files, nil
}

// 🔍 Read returns the decoded text and blob SHA at path.
func (s *Store) Read(ctx context.Context, path string) (*remote.Document, error) {
	file, _, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.name, path, &github.RepositoryContentGetOptions{
		Ref: s.branch,
	})
	if err != nil {
		return nil, errors.Errorf("getting file content: %w", err)
	}
	if file == nil {
		return nil, errors.Errorf("path %s is a folder, not a file", path)
	}

	// Decode content
	text, err := file.GetContent()
	if err != nil {
		return nil, errors.Errorf("decoding content: %w", err)
	}

	return &remote.Document{
		Path: path,
		Text: text,
		SHA:  file.GetSHA(),
	}, nil
}

// ✍️ Write commits text to path on the configured branch. When the path
// already exists it is updated against its blob SHA; a missing path is
// created instead.
func (s *Store) Write(ctx context.Context, path, text, message, sha string) (*remote.WriteResult, error) {
	if sha == "" {
		current, exists, err := s.currentSHA(ctx, path)
		if err != nil {
			return nil, err
		}
		if exists {
			sha = current
		}
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: []byte(text),
		Branch:  github.String(s.branch),
	}

	if sha == "" {
		if _, _, err := s.client.Repositories.CreateFile(ctx, s.owner, s.name, path, opts); err != nil {
			return nil, errors.Errorf("creating file %s: %w", path, err)
		}
		s.logger.Debug().Str("path", path).Msg("created file")
		return &remote.WriteResult{Action: remote.ActionCreated, Path: path}, nil
	}

	opts.SHA = github.String(sha)
	if _, _, err := s.client.Repositories.UpdateFile(ctx, s.owner, s.name, path, opts); err != nil {
		return nil, errors.Errorf("updating file %s: %w", path, err)
	}
	s.logger.Debug().Str("path", path).Str("sha", sha).Msg("updated file")
	return &remote.WriteResult{Action: remote.ActionUpdated, Path: path}, nil
}

// 🔍 currentSHA looks up the blob SHA at path. The second return is false
// when the path does not exist.
func (s *Store) currentSHA(ctx context.Context, path string) (string, bool, error) {
	file, _, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.name, path, &github.RepositoryContentGetOptions{
		Ref: s.branch,
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", false, nil
		}
		return "", false, errors.Errorf("checking existing file %s: %w", path, err)
	}
	if file == nil {
		return "", false, errors.Errorf("path %s is a folder, not a file", path)
	}
	return file.GetSHA(), true, nil
}
