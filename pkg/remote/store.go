// Package remote defines the versioned text-blob store the letter
// templates live in, keyed by repository path.
package remote

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/aaurigemmafbr/letter-box-updates/pkg/config"
)

var registry = map[string]Factory{}

// Factory builds a store from settings and an access token.
type Factory func(ctx context.Context, settings *config.Settings, token string) (Store, error)

// 📝 Register registers a store factory under a provider name.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// 🎯 New builds the store named by the settings' provider.
func New(ctx context.Context, settings *config.Settings, token string) (Store, error) {
	factory, ok := registry[settings.Provider]
	if !ok {
		options := []string{}
		for k := range registry {
			options = append(options, k)
		}
		return nil, errors.Errorf("provider %s not found, options: %s", settings.Provider, strings.Join(options, ", "))
	}
	return factory(ctx, settings, token)
}

// 📄 FileHandle identifies one text file in the store.
type FileHandle struct {
	Name string // Base name (e.g. "spring_appeal.txt")
	Path string // Full path within the repository
}

// 📦 Document is one text blob read from the store, with the version tag
// the store needs to accept a subsequent write.
type Document struct {
	Path string
	Text string
	SHA  string
}

// ✍️ WriteAction says whether a write created the path or updated it.
type WriteAction string

const (
	ActionCreated WriteAction = "created"
	ActionUpdated WriteAction = "updated"
)

// 📦 WriteResult describes a completed write.
type WriteResult struct {
	Action WriteAction
	Path   string
}

// 🎯 Store is the versioned key-value store of text blobs the tool reads
// templates from and commits results to. Implementations are agnostic to
// what the text means; all template semantics live above this interface.
type Store interface {
	// Name returns the repository identity (e.g. "owner/repo@branch").
	Name() string
	// ListTextFiles lists the .txt files directly inside folder. A missing
	// folder is an empty listing, not an error.
	ListTextFiles(ctx context.Context, folder string) ([]FileHandle, error)
	// Read returns the text and version tag at path.
	Read(ctx context.Context, path string) (*Document, error)
	// Write commits text to path with the given message, creating the path
	// if it does not exist. sha may be empty; implementations resolve the
	// current version themselves when they need one.
	Write(ctx context.Context, path, text, message, sha string) (*WriteResult, error)
}

// 🔍 FilterByPattern keeps the handles whose base name matches the
// doublestar pattern, case-insensitively.
func FilterByPattern(files []FileHandle, pattern string) ([]FileHandle, error) {
	var out []FileHandle
	for _, f := range files {
		ok, err := doublestar.Match(strings.ToLower(pattern), strings.ToLower(f.Name))
		if err != nil {
			return nil, errors.Errorf("matching pattern %q: %w", pattern, err)
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// 📖 ReadJSON reads the blob at path and decodes it with decode, returning
// the blob's version tag.
func ReadJSON[T any](ctx context.Context, s Store, path string, decode func([]byte) (T, error)) (T, string, error) {
	var zero T
	doc, err := s.Read(ctx, path)
	if err != nil {
		return zero, "", errors.Errorf("reading %s: %w", path, err)
	}
	v, err := decode([]byte(doc.Text))
	if err != nil {
		return zero, "", errors.Errorf("decoding %s: %w", path, err)
	}
	return v, doc.SHA, nil
}
