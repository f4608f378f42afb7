package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice passes through",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice passes through",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "trims surrounding whitespace",
			input:    []string{"  expired  ", "missing field "},
			expected: []string{"expired", "missing field"},
		},
		{
			name:     "drops blank and whitespace-only elements",
			input:    []string{"expired", "", "   ", "missing field"},
			expected: []string{"expired", "missing field"},
		},
		{
			name:     "keeps the first occurrence of a duplicate",
			input:    []string{"expired", "missing field", "expired"},
			expected: []string{"expired", "missing field"},
		},
		{
			name:     "duplicates differing only in whitespace collapse",
			input:    []string{" expired", "expired ", "expired"},
			expected: []string{"expired"},
		},
		{
			name:     "case is preserved and significant",
			input:    []string{"Expired", "expired"},
			expected: []string{"Expired", "expired"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
