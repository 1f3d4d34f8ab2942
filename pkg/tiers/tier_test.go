package tiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestTier_Validate(t *testing.T) {
	tests := []struct {
		name        string
		tier        Tier
		wantErr     bool
		errContains string
	}{
		{
			name: "valid_tier",
			tier: Tier{Name: "Alice", Title: "Chair", MinGift: 10000},
		},
		{
			name: "valid_tier_with_max",
			tier: Tier{Name: "Alice", MinGift: 500, MaxGift: fptr(9999)},
		},
		{
			name:        "empty_name",
			tier:        Tier{Name: "  ", MinGift: 100},
			wantErr:     true,
			errContains: "name is required",
		},
		{
			name:        "negative_min_gift",
			tier:        Tier{Name: "Alice", MinGift: -1},
			wantErr:     true,
			errContains: "non-negative",
		},
		{
			name:        "max_below_min",
			tier:        Tier{Name: "Alice", MinGift: 500, MaxGift: fptr(100)},
			wantErr:     true,
			errContains: "below min gift",
		},
		{
			name:        "name_with_handlebars_markers",
			tier:        Tier{Name: "Alice {{else}}", MinGift: 100},
			wantErr:     true,
			errContains: "handlebars markers",
		},
		{
			name:        "title_with_handlebars_markers",
			tier:        Tier{Name: "Alice", Title: "Chair }}", MinGift: 100},
			wantErr:     true,
			errContains: "handlebars markers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tier.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewList_SortsDescending(t *testing.T) {
	l, err := NewList(
		Tier{Name: "Bob", Title: "Director", MinGift: 500},
		Tier{Name: "Alice", Title: "Chair", MinGift: 10000},
		Tier{Name: "Carol", MinGift: 50},
	)
	require.NoError(t, err)

	require.Len(t, l, 3)
	assert.Equal(t, "Alice", l[0].Name)
	assert.Equal(t, "Bob", l[1].Name)
	assert.Equal(t, "Carol", l[2].Name)
	assert.NoError(t, l.CheckDescending())
}

func TestNewList_RejectsInvalidTier(t *testing.T) {
	_, err := NewList(
		Tier{Name: "Alice", MinGift: 10000},
		Tier{Name: "", MinGift: 500},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating tier 1")
}

func TestNewList_DoesNotMutateInput(t *testing.T) {
	in := []Tier{
		{Name: "Bob", MinGift: 500},
		{Name: "Alice", MinGift: 10000},
	}
	_, err := NewList(in...)
	require.NoError(t, err)
	assert.Equal(t, "Bob", in[0].Name, "caller slice should keep its order")
}

func TestList_SortDescending_StableOnTies(t *testing.T) {
	l := List{
		{Name: "First", MinGift: 500},
		{Name: "Second", MinGift: 500},
		{Name: "Top", MinGift: 10000},
	}
	l.SortDescending()

	assert.Equal(t, "Top", l[0].Name)
	assert.Equal(t, "First", l[1].Name, "first-listed should win on equal thresholds")
	assert.Equal(t, "Second", l[2].Name)
}

func TestList_CheckDescending(t *testing.T) {
	tests := []struct {
		name    string
		list    List
		wantErr bool
	}{
		{
			name: "strictly_descending",
			list: List{{Name: "A", MinGift: 10000}, {Name: "B", MinGift: 500}, {Name: "C", MinGift: 0}},
		},
		{
			name: "single_tier",
			list: List{{Name: "A", MinGift: 100}},
		},
		{
			name: "empty_list",
			list: List{},
		},
		{
			name:    "ascending",
			list:    List{{Name: "A", MinGift: 500}, {Name: "B", MinGift: 10000}},
			wantErr: true,
		},
		{
			name: "tie_allowed",
			list: List{{Name: "A", MinGift: 500}, {Name: "B", MinGift: 500}, {Name: "C", MinGift: 50}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.list.CheckDescending()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidOrder)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTier_String(t *testing.T) {
	withMax := Tier{Name: "Alice", Title: "Chair", MinGift: 500, MaxGift: fptr(9999.5)}
	assert.Equal(t, "Alice (Chair) min $500.00, max $9999.50", withMax.String())

	noMax := Tier{Name: "Bob", Title: "Director", MinGift: 50}
	assert.Equal(t, "Bob (Director) min $50.00, no max", noMax.String())
}
