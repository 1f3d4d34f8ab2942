// Package text implements marker-delimited region replacement for letter
// templates. A template contains fixed marker pairs, and the span between
// the first occurrence of a pair is the sole mutable zone for an update.
package text

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ MarkerPair is a pair of delimiter strings bounding one mutable region
// of a template. Matching against documents is case-insensitive; the
// document's own spelling is preserved on replacement.
type MarkerPair struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// 🔍 Validate checks that both markers are present.
func (m MarkerPair) Validate() error {
	if m.Start == "" {
		return errors.New("start marker is required")
	}
	if m.End == "" {
		return errors.New("end marker is required")
	}
	return nil
}

// Contains reports whether doc holds a complete region for this pair.
func (m MarkerPair) Contains(doc string) bool {
	_, ok := findRegion(doc, m)
	return ok
}

// 🚫 DelimiterNotFoundError reports that a document lacks the requested
// marker pair. Callers must not write anything back when they see it.
type DelimiterNotFoundError struct {
	StartTag string
	EndTag   string
}

func (e *DelimiterNotFoundError) Error() string {
	return fmt.Sprintf("tags not found: %s ... %s", e.StartTag, e.EndTag)
}

// region locates the first marker-bounded span of a document, in byte
// offsets: [start, innerStart) covers the start tag as spelled in the
// document, [innerStart, innerEnd) the inner content, [innerEnd, end) the
// end tag.
type region struct {
	start      int
	innerStart int
	innerEnd   int
	end        int
}

// findRegion scans for the leftmost, shortest span: the first
// case-insensitive occurrence of the start tag, then the first occurrence
// of the end tag after it.
func findRegion(doc string, m MarkerPair) (region, bool) {
	start := indexFold(doc, m.Start)
	if start < 0 {
		return region{}, false
	}
	innerStart := start + len(m.Start)
	rel := indexFold(doc[innerStart:], m.End)
	if rel < 0 {
		return region{}, false
	}
	innerEnd := innerStart + rel
	return region{
		start:      start,
		innerStart: innerStart,
		innerEnd:   innerEnd,
		end:        innerEnd + len(m.End),
	}, true
}

// indexFold returns the byte index of the first case-insensitive occurrence
// of substr in s, or -1. Markers are ASCII comment strings, so a
// fixed-width window with EqualFold is sufficient.
func indexFold(s, substr string) int {
	if substr == "" {
		return -1
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

// 🔄 ReplaceBetween replaces the content of the first startTag...endTag
// region of doc with newInner, keeping the tags exactly as the document
// spells them and adding one newline on each side of the inner text. Only
// the first region is touched; templates are expected to contain exactly
// one instance of each named region. Missing tags produce a
// *DelimiterNotFoundError and the document is returned unchanged.
func ReplaceBetween(doc, startTag, endTag, newInner string) (string, error) {
	m := MarkerPair{Start: startTag, End: endTag}
	if err := m.Validate(); err != nil {
		return doc, errors.Errorf("validating markers: %w", err)
	}
	r, ok := findRegion(doc, m)
	if !ok {
		return doc, errors.WithStack(&DelimiterNotFoundError{StartTag: startTag, EndTag: endTag})
	}

	var b strings.Builder
	b.Grow(len(doc) - (r.innerEnd - r.innerStart) + len(newInner) + 2)
	b.WriteString(doc[:r.innerStart])
	b.WriteString("\n")
	b.WriteString(newInner)
	b.WriteString("\n")
	b.WriteString(doc[r.innerEnd:])
	return b.String(), nil
}

// 🔎 Extract returns the inner text of the first startTag...endTag region
// of doc, tags excluded.
func Extract(doc, startTag, endTag string) (string, error) {
	m := MarkerPair{Start: startTag, End: endTag}
	if err := m.Validate(); err != nil {
		return "", errors.Errorf("validating markers: %w", err)
	}
	r, ok := findRegion(doc, m)
	if !ok {
		return "", errors.WithStack(&DelimiterNotFoundError{StartTag: startTag, EndTag: endTag})
	}
	return doc[r.innerStart:r.innerEnd], nil
}

// 🔄 Rule pairs a marker pair with the text to place inside it.
type Rule struct {
	Markers MarkerPair
	Inner   string
}

// 📦 Result holds the outcome of applying rules to one document.
type Result struct {
	OriginalText string
	NewText      string
	WasModified  bool
}

// Replacer applies marker rules to documents.
type Replacer struct{}

// 🏭 NewReplacer creates a new Replacer.
func NewReplacer() *Replacer {
	return &Replacer{}
}

// Replace applies each rule in order. Any rule whose markers are missing
// fails the whole call: replacement is all-or-nothing per document.
func (r *Replacer) Replace(ctx context.Context, doc string, rules []Rule) (*Result, error) {
	result := &Result{
		OriginalText: doc,
		NewText:      doc,
	}
	current := doc
	for i, rule := range rules {
		next, err := ReplaceBetween(current, rule.Markers.Start, rule.Markers.End, rule.Inner)
		if err != nil {
			return nil, errors.Errorf("applying rule %d: %w", i, err)
		}
		if next != current {
			result.WasModified = true
		}
		current = next
	}
	result.NewText = current
	return result, nil
}

// ValidateRules checks every rule's markers before any document is touched.
func (r *Replacer) ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if err := rule.Markers.Validate(); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}
