package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curbo/internal/domain"
	"curbo/internal/tier"
	dErrors "curbo/pkg/domain-errors"
)

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryStore())

	t.Run("missing dealer id is rejected", func(t *testing.T) {
		_, err := svc.Get(ctx, "")
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})

	t.Run("no stored policy returns platform default", func(t *testing.T) {
		p, err := svc.Get(ctx, "dealer-1")
		require.NoError(t, err)
		assert.Equal(t, "dealer-1", p.DealerID)
		assert.Equal(t, PlatformMinimumYear, p.MinVehicleYear)
		assert.True(t, p.RequireMVRTier3)
		assert.True(t, p.RequireMVRTier4)
		assert.False(t, p.RequireSoftCreditTier3)
		assert.True(t, p.RequireSoftCreditTier4)
	})
}

func TestService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid policy surfaces all violations", func(t *testing.T) {
		svc := NewService(NewInMemoryStore())
		_, err := svc.Save(ctx, "dealer-1", DealerPolicy{
			MinVehicleYear: 2001,
			AllowedTiers:   []tier.Tier{"tier8"},
		})
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
		assert.Contains(t, err.Error(), "min_vehicle_year")
		assert.Contains(t, err.Error(), "tier8")
	})

	t.Run("saved policy is clamped and readable back", func(t *testing.T) {
		svc := NewService(NewInMemoryStore())
		saved, err := svc.Save(ctx, "dealer-1", DealerPolicy{
			MinVehicleYear: 2016,
			AllowedTiers:   []tier.Tier{tier.Tier2, tier.Tier3},
			MinRenterGrade: domain.GradeB,
		})
		require.NoError(t, err)
		assert.Equal(t, "dealer-1", saved.DealerID)

		got, err := svc.Get(ctx, "dealer-1")
		require.NoError(t, err)
		assert.Equal(t, saved.MinVehicleYear, got.MinVehicleYear)
		assert.Equal(t, saved.AllowedTiers, got.AllowedTiers)
		assert.Equal(t, domain.GradeB, got.MinRenterGrade)
	})

	t.Run("re-submitting the same policy is idempotent", func(t *testing.T) {
		svc := NewService(NewInMemoryStore())
		req := DealerPolicy{
			MinVehicleYear:  2018,
			AllowedTiers:    []tier.Tier{tier.Tier2},
			MinRenterGrade:  domain.GradeC,
			RequireMVRTier3: true,
		}

		first, err := svc.Save(ctx, "dealer-2", req)
		require.NoError(t, err)
		second, err := svc.Save(ctx, "dealer-2", req)
		require.NoError(t, err)

		// Timestamps aside, the stored policy must be identical both times.
		first.UpdatedAt = second.UpdatedAt
		assert.Equal(t, first, second)
	})
}

func TestService_Effective(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryStore())

	t.Run("empty dealer id yields platform default", func(t *testing.T) {
		eff, err := svc.Effective(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, Default(), eff)
	})

	t.Run("stored policy wins over default", func(t *testing.T) {
		_, err := svc.Save(ctx, "dealer-3", DealerPolicy{
			MinVehicleYear: 2021,
			MinRenterGrade: domain.GradeA,
		})
		require.NoError(t, err)

		eff, err := svc.Effective(ctx, "dealer-3")
		require.NoError(t, err)
		assert.Equal(t, 2021, eff.MinVehicleYear)
		assert.Equal(t, domain.GradeA, eff.MinRenterGrade)
	})
}
