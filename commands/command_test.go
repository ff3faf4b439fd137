package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpreadsheetID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
		{"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
		{"1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
	}

	for _, test := range tests {
		id, err := spreadsheetID(test.url)

		require.NoError(t, err)
		assert.Equal(t, test.expected, id)
	}
}

func TestSpreadsheetIDWithInvalidURL(t *testing.T) {
	_, err := spreadsheetID("https://example.com/spreadsheets/d/xyz")

	assert.Error(t, err)
}
