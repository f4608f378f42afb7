package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		year int
		want Tier
	}{
		{"current model year", 2024, Tier4},
		{"future model year", 2027, Tier4},
		{"tier3 lower bound", 2020, Tier3},
		{"tier3 upper bound", 2023, Tier3},
		{"tier2 lower bound", 2015, Tier2},
		{"tier2 upper bound", 2019, Tier2},
		{"tier1 lower bound", 2010, Tier1},
		{"tier1 upper bound", 2014, Tier1},
		{"below platform floor falls back to tier1", 2005, Tier1},
		{"ancient year falls back to tier1", 1987, Tier1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.year))
		})
	}
}

func TestClassify_NonDecreasing(t *testing.T) {
	prev := Classify(1990)
	for year := 1991; year <= 2030; year++ {
		got := Classify(year)
		assert.GreaterOrEqual(t, got.Ordinal(), prev.Ordinal(), "year %d", year)
		prev = got
	}
}

func TestTier_Ordinal(t *testing.T) {
	assert.True(t, Tier1.Ordinal() < Tier2.Ordinal())
	assert.True(t, Tier2.Ordinal() < Tier3.Ordinal())
	assert.True(t, Tier3.Ordinal() < Tier4.Ordinal())
	assert.Equal(t, 0, Tier("tier9").Ordinal())
}

func TestTier_IsValid(t *testing.T) {
	for _, tr := range All {
		assert.True(t, tr.IsValid())
	}
	assert.False(t, Tier("").IsValid())
	assert.False(t, Tier("tier5").IsValid())
}
