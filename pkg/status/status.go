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

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// 📊 Outcome represents what happened to one file in a batch
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeCreated         // File was created in the repository
	OutcomeUpdated         // File existed and was committed with new content
	OutcomeSkipped         // File was left untouched
	OutcomeFailed          // File could not be processed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "error"
	default:
		return "unknown"
	}
}

// 📄 Result records the outcome for one candidate file
type Result struct {
	File    string  // Base file name
	Path    string  // Full repository path
	Outcome Outcome // What happened
	Detail  string  // Human-readable detail (commit action, error text)
	Err     error   // The failure, when Outcome is OutcomeFailed
}

// 📈 Report is the per-file outcome table a batch produces. Every
// candidate appears exactly once: batches never stop at the first failure
// and never hide a partial success.
type Report struct {
	Operation string
	Results   []Result
}

// Counts returns how many results landed in each outcome.
func (r *Report) Counts() (succeeded, failed, skipped int) {
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomeFailed:
			failed++
		case OutcomeSkipped:
			skipped++
		default:
			succeeded++
		}
	}
	return succeeded, failed, skipped
}

// Failed returns the failed results.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			out = append(out, res)
		}
	}
	return out
}

// 🎯 Manager tracks per-file results as a batch runs
type Manager struct {
	mu        sync.Mutex
	operation string
	format    Formatter
	results   []Result
	total     int
}

// 🏭 NewManager creates a new manager for one named batch
func NewManager(operation string) *Manager {
	return &Manager{operation: operation, format: NewDefaultFormatter()}
}

// 📝 StartBatch records how many candidates the batch will attempt
func (m *Manager) StartBatch(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total = total
	m.results = nil

	zerolog.Ctx(ctx).Info().
		Str("operation", m.operation).
		Int("candidates", total).
		Msg("starting batch")
}

// 📝 Track records one file's outcome
func (m *Manager) Track(ctx context.Context, res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)

	evt := zerolog.Ctx(ctx).Info()
	if res.Outcome == OutcomeFailed {
		evt = zerolog.Ctx(ctx).Error().Err(res.Err)
	}
	evt.
		Str("operation", m.operation).
		Str("file", res.File).
		Str("outcome", res.Outcome.String()).
		Str("detail", res.Detail).
		Str("progress", m.format.FormatProgress(len(m.results), m.total)).
		Msg(m.format.FormatResult(res))
}

// 📈 Report returns the accumulated outcome table
func (m *Manager) Report() *Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	results := make([]Result, len(m.results))
	copy(results, m.results)
	return &Report{Operation: m.operation, Results: results}
}
