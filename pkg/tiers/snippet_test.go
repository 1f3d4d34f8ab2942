package tiers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnippet_Empty(t *testing.T) {
	got, err := BuildSnippet(List{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildSnippet_SingleTier(t *testing.T) {
	got, err := BuildSnippet(List{{Name: "Alice", Title: "Chair", MinGift: 10000}})
	require.NoError(t, err)

	assert.Equal(t, "<p>\nAlice\n<br>\nChair\n</p>", got)
	assert.NotContains(t, got, "{{#if", "single tier renders unconditionally")
	assert.NotContains(t, got, "{{/if}}")
}

func TestBuildSnippet_TwoTiers(t *testing.T) {
	l := List{
		{Name: "Alice", Title: "Chair", MinGift: 10000},
		{Name: "Bob", Title: "Director", MinGift: 500},
	}
	got, err := BuildSnippet(l)
	require.NoError(t, err)

	want := strings.Join([]string{
		`{{#if (compare Gift.amount.value ">" 9999.99)}}`,
		"<p>",
		"Alice",
		"<br>",
		"Chair",
		"</p>",
		"{{else}}",
		"<p>",
		"Bob",
		"<br>",
		"Director",
		"</p>",
		"{{/if}}",
	}, "\n")
	assert.Equal(t, want, got)

	// Alice's block is guarded, Bob's is the fallback.
	assert.Less(t, strings.Index(got, `9999.99`), strings.Index(got, "Alice"))
	assert.NotContains(t, got[strings.Index(got, "{{else}}"):], "compare")
}

func TestBuildSnippet_MarkerCounts(t *testing.T) {
	tests := []struct {
		name  string
		tiers int
	}{
		{name: "two_tiers", tiers: 2},
		{name: "three_tiers", tiers: 3},
		{name: "four_tiers", tiers: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := make(List, tt.tiers)
			for i := range l {
				l[i] = Tier{Name: "Signer", MinGift: float64((tt.tiers - i) * 1000)}
			}
			got, err := BuildSnippet(l)
			require.NoError(t, err)

			assert.Equal(t, tt.tiers-1, strings.Count(got, "{{#if"))
			assert.Equal(t, tt.tiers-1, strings.Count(got, "{{/if}}"))
			assert.Equal(t, tt.tiers-1, strings.Count(got, "{{else}}"))
			assert.True(t, strings.HasSuffix(got, strings.Repeat("\n{{/if}}", tt.tiers-1)),
				"every opened conditional must be closed at the tail")
		})
	}
}

func TestBuildSnippet_ThresholdFormatting(t *testing.T) {
	tests := []struct {
		name    string
		minGift float64
		want    string
	}{
		{name: "round_amount", minGift: 10000, want: `">" 9999.99`},
		{name: "small_amount", minGift: 500, want: `">" 499.99`},
		{name: "zero_floor", minGift: 0.01, want: `">" 0.00`},
		{name: "cents_preserved", minGift: 250.50, want: `">" 250.49`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := List{
				{Name: "Guarded", MinGift: tt.minGift},
				{Name: "Fallback", MinGift: tt.minGift - 1},
			}
			got, err := BuildSnippet(l)
			require.NoError(t, err)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestBuildSnippet_RejectsOutOfOrder(t *testing.T) {
	l := List{
		{Name: "Bob", MinGift: 500},
		{Name: "Alice", MinGift: 10000},
	}
	_, err := BuildSnippet(l)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestBuildSnippet_TiedThresholds_FirstListedWins(t *testing.T) {
	l, err := NewList(
		Tier{Name: "First", Title: "Chair", MinGift: 500},
		Tier{Name: "Second", Title: "Co-Chair", MinGift: 500},
		Tier{Name: "Fallback", Title: "Director", MinGift: 50},
	)
	require.NoError(t, err)

	got, err := BuildSnippet(l)
	require.NoError(t, err)

	// Both tied tiers keep their guards; guards are evaluated top to
	// bottom, so First's branch shadows Second's for amounts over 500.
	assert.Equal(t, 2, strings.Count(got, `">" 499.99`))
	assert.Less(t, strings.Index(got, "First"), strings.Index(got, "Second"))
	assert.Less(t, strings.Index(got, "Second"), strings.Index(got, "Fallback"))
	assert.Equal(t, 2, strings.Count(got, "{{/if}}"))
}

func TestBuildSnippet_EmptyTitleKeepsLine(t *testing.T) {
	got, err := BuildSnippet(List{{Name: "Alice", MinGift: 100}})
	require.NoError(t, err)
	assert.Equal(t, "<p>\nAlice\n<br>\n\n</p>", got)
}
