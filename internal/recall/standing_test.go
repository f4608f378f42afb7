package recall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curbo/internal/domain"
)

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected string
	}{
		{
			name:     "fire risk is high",
			record:   Record{Component: "FUEL SYSTEM", Consequence: "A fuel leak increases the risk of fire."},
			expected: SeverityHigh,
		},
		{
			name:     "airbag is high",
			record:   Record{Component: "AIR BAG", Consequence: "The inflator may rupture."},
			expected: SeverityHigh,
		},
		{
			name:     "engine stall is medium",
			record:   Record{Component: "ENGINE", Consequence: "The engine may stall while driving."},
			expected: SeverityMedium,
		},
		{
			name:     "unrecognised campaign is low",
			record:   Record{Component: "EXTERIOR LIGHTING", Consequence: "The marker lamp may dim."},
			expected: SeverityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SeverityOf(tt.record))
		})
	}
}

func TestComputeBadge(t *testing.T) {
	t.Run("no recalls", func(t *testing.T) {
		badge := ComputeBadge(nil)
		assert.Equal(t, "green", badge.Color)
		assert.Equal(t, 0, badge.RecallCount)
		assert.Equal(t, SeverityNone, badge.Severity)
	})

	t.Run("safety critical", func(t *testing.T) {
		badge := ComputeBadge([]Record{
			{Component: "BRAKES", Consequence: "Reduced braking performance."},
			{Component: "EXTERIOR LIGHTING"},
		})
		assert.Equal(t, "red", badge.Color)
		assert.Equal(t, 2, badge.RecallCount)
		assert.Equal(t, SeverityHigh, badge.Severity)
	})

	t.Run("non-critical recalls", func(t *testing.T) {
		badge := ComputeBadge([]Record{{Component: "EXTERIOR LIGHTING"}})
		assert.Equal(t, "yellow", badge.Color)
		assert.Equal(t, SeverityLow, badge.Severity)
	})
}

func TestComputeStandingMonotonicInRecalls(t *testing.T) {
	low := Record{Component: "EXTERIOR LIGHTING"}
	medium := Record{Component: "ENGINE", Consequence: "May stall."}
	high := Record{Component: "AIR BAG", Consequence: "Risk of injury."}

	histories := [][]Record{
		nil,
		{low},
		{low, low},
		{medium},
		{medium, low},
		{high},
		{high, medium, low},
	}

	// Appending any campaign to any history never raises the score.
	for _, base := range histories {
		baseScore := ComputeStanding(base, 5, true).Score
		for _, extra := range []Record{low, medium, high} {
			grown := append(append([]Record{}, base...), extra)
			grownScore := ComputeStanding(grown, 5, true).Score
			require.LessOrEqual(t, grownScore, baseScore,
				"adding a recall must not raise the score")
		}
	}

	// Raising a single campaign's severity never raises the score.
	lowScore := ComputeStanding([]Record{low}, 5, true).Score
	mediumScore := ComputeStanding([]Record{medium}, 5, true).Score
	highScore := ComputeStanding([]Record{high}, 5, true).Score
	require.LessOrEqual(t, mediumScore, lowScore)
	require.LessOrEqual(t, highScore, mediumScore)
}

func TestComputeStandingVerifiedNeverScoresLower(t *testing.T) {
	histories := [][]Record{
		nil,
		{{Component: "AIR BAG", Consequence: "Risk of injury."}},
		{{Component: "EXTERIOR LIGHTING"}, {Component: "ENGINE", Consequence: "May stall."}},
	}

	for _, history := range histories {
		for _, photos := range []int{0, 3, 10} {
			verified := ComputeStanding(history, photos, true).Score
			unverified := ComputeStanding(history, photos, false).Score
			require.GreaterOrEqual(t, verified, unverified)
		}
	}
}

func TestComputeStandingGrades(t *testing.T) {
	clean := ComputeStanding(nil, 10, true)
	assert.Equal(t, 100, clean.Score)
	assert.Equal(t, domain.GradeA, clean.Grade)
	assert.Contains(t, clean.Reasons, "no known recalls")

	wrecked := ComputeStanding([]Record{
		{Component: "AIR BAG", Consequence: "Risk of injury."},
		{Component: "BRAKES", Consequence: "Crash risk."},
		{Component: "FUEL SYSTEM", Consequence: "Fire risk."},
	}, 0, false)
	assert.Equal(t, domain.GradeF, wrecked.Grade)
	assert.GreaterOrEqual(t, wrecked.Score, 0)
}

func TestComputeStandingDeterministic(t *testing.T) {
	history := []Record{
		{Component: "ENGINE", Consequence: "May stall."},
		{Component: "EXTERIOR LIGHTING"},
	}
	first := ComputeStanding(history, 2, false)
	second := ComputeStanding(history, 2, false)
	assert.Equal(t, first, second)
}
