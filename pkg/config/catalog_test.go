package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{
	"denver": [
		{"name": "Alice Example", "title": "Board Chair", "min_gift": 10000},
		{"name": "Bob Sample", "title": "Executive Director", "min_gift": 500, "max_gift": 9999.99}
	],
	"WSlope": [
		{"name": "Carol Test", "title": "Regional Director", "min_gift": 0}
	]
}`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogJSON))
	require.NoError(t, err)

	assert.Equal(t, []string{"denver", "wslope"}, c.Locations())

	denver, err := c.Lookup("Denver")
	require.NoError(t, err)
	require.Len(t, denver, 2)
	assert.Equal(t, "Alice Example", denver[0].Name)
	assert.Equal(t, 10000.0, denver[0].MinGift)
	assert.Nil(t, denver[0].MaxGift)
	require.NotNil(t, denver[1].MaxGift)
	assert.Equal(t, 9999.99, *denver[1].MaxGift)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		errContains string
	}{
		{
			name:        "invalid_json",
			data:        "{not json",
			errContains: "parsing signatures catalog",
		},
		{
			name:        "invalid_signer",
			data:        `{"denver": [{"name": "", "min_gift": 100}]}`,
			errContains: `catalog location "denver", signer 0`,
		},
		{
			name:        "negative_min_gift",
			data:        `{"denver": [{"name": "Alice", "min_gift": -5}]}`,
			errContains: "non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestCatalog_Lookup_UnknownLocation(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogJSON))
	require.NoError(t, err)

	_, err = c.Lookup("boulder")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown location "boulder"`)
	assert.Contains(t, err.Error(), "denver, wslope")
}

func TestCatalog_FindSigner(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogJSON))
	require.NoError(t, err)

	signer, err := c.FindSigner("denver", "bob sample")
	require.NoError(t, err)
	assert.Equal(t, "Bob Sample", signer.Name)
	assert.Equal(t, 500.0, signer.MinGift)

	_, err = c.FindSigner("denver", "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Alice Example, Bob Sample")
}
