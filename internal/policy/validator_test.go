package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curbo/internal/domain"
	"curbo/internal/tier"
)

func TestValidate(t *testing.T) {
	t.Run("valid policy passes", func(t *testing.T) {
		result := Validate(DealerPolicy{
			MinVehicleYear: 2015,
			AllowedTiers:   []tier.Tier{tier.Tier2, tier.Tier3},
			MinRenterGrade: domain.GradeB,
		})
		assert.True(t, result.OK)
		assert.Empty(t, result.Errors)
	})

	t.Run("year below platform floor fails", func(t *testing.T) {
		result := Validate(DealerPolicy{MinVehicleYear: 2005})
		assert.False(t, result.OK)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "min_vehicle_year")
	})

	t.Run("unknown tier fails", func(t *testing.T) {
		result := Validate(DealerPolicy{
			MinVehicleYear: 2010,
			AllowedTiers:   []tier.Tier{tier.Tier1, "tier7"},
		})
		assert.False(t, result.OK)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "tier7")
	})

	t.Run("violations accumulate instead of short-circuiting", func(t *testing.T) {
		result := Validate(DealerPolicy{
			MinVehicleYear: 1999,
			AllowedTiers:   []tier.Tier{"tier0", "tier9"},
		})
		assert.False(t, result.OK)
		assert.Len(t, result.Errors, 3)
	})
}

func TestClamp(t *testing.T) {
	t.Run("raises year to platform floor", func(t *testing.T) {
		clamped := Clamp(DealerPolicy{MinVehicleYear: 1998})
		assert.Equal(t, PlatformMinimumYear, clamped.MinVehicleYear)
	})

	t.Run("keeps stricter year", func(t *testing.T) {
		clamped := Clamp(DealerPolicy{MinVehicleYear: 2020})
		assert.Equal(t, 2020, clamped.MinVehicleYear)
	})

	t.Run("drops unknown tiers", func(t *testing.T) {
		clamped := Clamp(DealerPolicy{
			MinVehicleYear: 2010,
			AllowedTiers:   []tier.Tier{tier.Tier1, "tier7", tier.Tier4},
		})
		assert.Equal(t, []tier.Tier{tier.Tier1, tier.Tier4}, clamped.AllowedTiers)
	})

	t.Run("defaults invalid grade to F", func(t *testing.T) {
		clamped := Clamp(DealerPolicy{MinVehicleYear: 2010, MinRenterGrade: "Z"})
		assert.Equal(t, domain.GradeF, clamped.MinRenterGrade)
	})
}
