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
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	gh "github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaurigemmafbr/letter-box-updates/pkg/config"
	"github.com/aaurigemmafbr/letter-box-updates/pkg/remote"
)

// newTestStore wires a Store at a httptest server standing in for the
// GitHub contents API.
func newTestStore(t *testing.T, handler http.Handler) (*Store, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := gh.NewClient(nil)
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base
	client.UploadURL = base

	return &Store{
		client: client,
		owner:  "my-org",
		name:   "letter-templates",
		branch: "main",
		logger: zerolog.New(os.Stderr).Level(zerolog.Disabled),
	}, server
}

func TestNew_RequiresToken(t *testing.T) {
	ctx := zerolog.New(os.Stderr).WithContext(context.Background())
	settings := &config.Settings{Owner: "o", Name: "n"}
	require.NoError(t, settings.Validate())

	_, err := New(ctx, settings, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token required")

	store, err := New(ctx, settings, "token")
	require.NoError(t, err)
	assert.Equal(t, "o/n@main", store.Name())
}

func TestStore_ListTextFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/my-org/letter-templates/contents/base_templates", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		fmt.Fprint(w, `[
			{"type": "file", "name": "spring_appeal.txt", "path": "base_templates/spring_appeal.txt", "sha": "s1"},
			{"type": "file", "name": "Year_End.TXT", "path": "base_templates/Year_End.TXT", "sha": "s2"},
			{"type": "file", "name": "notes.md", "path": "base_templates/notes.md", "sha": "s3"},
			{"type": "dir", "name": "archive", "path": "base_templates/archive", "sha": "s4"}
		]`)
	})
	store, _ := newTestStore(t, mux)

	files, err := store.ListTextFiles(context.Background(), "base_templates")
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "spring_appeal.txt", files[0].Name)
	assert.Equal(t, "base_templates/spring_appeal.txt", files[0].Path)
	assert.Equal(t, "Year_End.TXT", files[1].Name)
}

func TestStore_ListTextFiles_MissingFolder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})
	store, _ := newTestStore(t, mux)

	files, err := store.ListTextFiles(context.Background(), "no_such_folder")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestStore_Read(t *testing.T) {
	content := base64.StdEncoding.EncodeToString([]byte("Dear donor,\n<!-- start here -->\nbody\n<!-- end here -->\n"))
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/my-org/letter-templates/contents/base_templates/spring_appeal.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"type": "file",
			"name": "spring_appeal.txt",
			"path": "base_templates/spring_appeal.txt",
			"sha": "blob-sha",
			"encoding": "base64",
			"content": %q
		}`, content)
	})
	store, _ := newTestStore(t, mux)

	doc, err := store.Read(context.Background(), "base_templates/spring_appeal.txt")
	require.NoError(t, err)
	assert.Equal(t, "blob-sha", doc.SHA)
	assert.Contains(t, doc.Text, "<!-- start here -->")
}

func TestStore_Write_UpdatesExistingFile(t *testing.T) {
	var putBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/my-org/letter-templates/contents/updated_letters/spring_appeal.txt", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `{"type": "file", "name": "spring_appeal.txt", "path": "updated_letters/spring_appeal.txt", "sha": "old-sha"}`)
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			fmt.Fprint(w, `{"content": {"path": "updated_letters/spring_appeal.txt"}}`)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})
	store, _ := newTestStore(t, mux)

	res, err := store.Write(context.Background(), "updated_letters/spring_appeal.txt", "new text", "Wording update: injected block into spring_appeal.txt", "")
	require.NoError(t, err)

	assert.Equal(t, remote.ActionUpdated, res.Action)
	assert.Equal(t, "old-sha", putBody["sha"])
	assert.Equal(t, "main", putBody["branch"])
	assert.Equal(t, "Wording update: injected block into spring_appeal.txt", putBody["message"])
	wantContent := base64.StdEncoding.EncodeToString([]byte("new text"))
	assert.Equal(t, wantContent, putBody["content"])
}

func TestStore_Write_CreatesMissingFile(t *testing.T) {
	var putBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/my-org/letter-templates/contents/updated_letters/new_letter.txt", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"content": {"path": "updated_letters/new_letter.txt"}}`)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})
	store, _ := newTestStore(t, mux)

	res, err := store.Write(context.Background(), "updated_letters/new_letter.txt", "text", "msg", "")
	require.NoError(t, err)

	assert.Equal(t, remote.ActionCreated, res.Action)
	_, hasSHA := putBody["sha"]
	assert.False(t, hasSHA, "create must not send a sha")
}

func TestStore_Write_UsesProvidedSHA(t *testing.T) {
	var gets int
	var putBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/my-org/letter-templates/contents/updated_letters/x_live.txt", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gets++
			http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			fmt.Fprint(w, `{"content": {"path": "updated_letters/x_live.txt"}}`)
		}
	})
	store, _ := newTestStore(t, mux)

	res, err := store.Write(context.Background(), "updated_letters/x_live.txt", "text", "msg", "known-sha")
	require.NoError(t, err)

	assert.Equal(t, remote.ActionUpdated, res.Action)
	assert.Zero(t, gets, "a caller-supplied sha skips the lookup")
	assert.Equal(t, "known-sha", putBody["sha"])
}
