// Package tiers models donor-recognition brackets and generates the
// conditional signature snippet embedded into letter templates.
package tiers

import (
	"fmt"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrInvalidOrder indicates tiers are not in descending min-gift order.
var ErrInvalidOrder = errors.New("tiers are not in descending min gift order")

// 🎯 Tier represents one donor-recognition bracket. MaxGift is carried as
// catalog configuration but never drives the generated conditional chain,
// matching the template format in production: brackets are contiguous, so
// the lower bound alone selects a signer.
type Tier struct {
	Name    string   `json:"name" yaml:"name"`
	Title   string   `json:"title" yaml:"title"`
	MinGift float64  `json:"min_gift" yaml:"min_gift"`
	MaxGift *float64 `json:"max_gift,omitempty" yaml:"max_gift,omitempty"`
}

// 🔍 Validate checks that a tier is renderable. Names and titles land
// verbatim inside generated handlebars, so structural marker sequences
// are rejected rather than escaped.
func (t Tier) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("tier name is required")
	}
	if t.MinGift < 0 {
		return errors.Errorf("tier %q: min gift must be non-negative, got %v", t.Name, t.MinGift)
	}
	if t.MaxGift != nil && *t.MaxGift < t.MinGift {
		return errors.Errorf("tier %q: max gift %v is below min gift %v", t.Name, *t.MaxGift, t.MinGift)
	}
	for _, field := range []string{t.Name, t.Title} {
		if strings.Contains(field, "{{") || strings.Contains(field, "}}") {
			return errors.Errorf("tier %q: name and title must not contain handlebars markers", t.Name)
		}
	}
	return nil
}

// 📝 String returns a one-line summary of the tier.
func (t Tier) String() string {
	max := "no max"
	if t.MaxGift != nil {
		max = fmt.Sprintf("max $%.2f", *t.MaxGift)
	}
	return fmt.Sprintf("%s (%s) min $%.2f, %s", t.Name, t.Title, t.MinGift, max)
}

// 📚 List is an ordered collection of tiers. Builder functions expect the
// order to be descending by MinGift; NewList establishes it.
type List []Tier

// 🏭 NewList validates every tier, sorts the result descending by MinGift,
// and returns it. All tier assembly paths (catalog picks, custom entries,
// merged selections) go through here so the snippet builder can rely on
// its ordering precondition.
func NewList(ts ...Tier) (List, error) {
	for i, t := range ts {
		if err := t.Validate(); err != nil {
			return nil, errors.Errorf("validating tier %d: %w", i, err)
		}
	}
	l := make(List, len(ts))
	copy(l, ts)
	l.SortDescending()
	return l, nil
}

// 🔀 SortDescending orders the list by MinGift, highest first. The sort is
// stable: tiers with equal thresholds keep their supplied order, so the
// first-listed one wins at render time.
func (l List) SortDescending() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].MinGift > l[j].MinGift
	})
}

// 🔍 CheckDescending reports ErrInvalidOrder when a tier's MinGift rises
// above its predecessor's. Ties are allowed: guards are evaluated top to
// bottom, so the first-listed of two equal-threshold tiers wins.
func (l List) CheckDescending() error {
	for i := 1; i < len(l); i++ {
		if l[i].MinGift > l[i-1].MinGift {
			return errors.Errorf("tier %d (%s, min $%.2f) does not descend from tier %d (%s, min $%.2f): %w",
				i, l[i].Name, l[i].MinGift, i-1, l[i-1].Name, l[i-1].MinGift, ErrInvalidOrder)
		}
	}
	return nil
}
