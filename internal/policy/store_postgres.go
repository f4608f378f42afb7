package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"curbo/internal/domain"
	"curbo/internal/tier"
	"curbo/pkg/platform/sentinel"
)

// PostgresStore persists dealer policies, upserting by dealer id.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) FindByDealer(ctx context.Context, dealerID string) (*DealerPolicy, error) {
	const q = `
		SELECT dealer_id, min_vehicle_year, allowed_tiers, min_renter_grade,
		       block_flagged_renters,
		       require_mvr_tier3, require_mvr_tier4,
		       require_soft_credit_tier3, require_soft_credit_tier4,
		       require_manual_approval, updated_at
		FROM dealer_policies
		WHERE dealer_id = $1`

	var (
		p     DealerPolicy
		tiers []string
		grade string
	)
	err := s.pool.QueryRow(ctx, q, dealerID).Scan(
		&p.DealerID, &p.MinVehicleYear, &tiers, &grade,
		&p.BlockFlaggedRenters,
		&p.RequireMVRTier3, &p.RequireMVRTier4,
		&p.RequireSoftCreditTier3, &p.RequireSoftCreditTier4,
		&p.RequireManualApproval, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find dealer policy: %w", err)
	}

	p.MinRenterGrade = domain.Grade(grade)
	p.AllowedTiers = make([]tier.Tier, 0, len(tiers))
	for _, t := range tiers {
		p.AllowedTiers = append(p.AllowedTiers, tier.Tier(t))
	}
	return &p, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, p *DealerPolicy) error {
	const q = `
		INSERT INTO dealer_policies (
			dealer_id, min_vehicle_year, allowed_tiers, min_renter_grade,
			block_flagged_renters,
			require_mvr_tier3, require_mvr_tier4,
			require_soft_credit_tier3, require_soft_credit_tier4,
			require_manual_approval, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (dealer_id) DO UPDATE SET
			min_vehicle_year = EXCLUDED.min_vehicle_year,
			allowed_tiers = EXCLUDED.allowed_tiers,
			min_renter_grade = EXCLUDED.min_renter_grade,
			block_flagged_renters = EXCLUDED.block_flagged_renters,
			require_mvr_tier3 = EXCLUDED.require_mvr_tier3,
			require_mvr_tier4 = EXCLUDED.require_mvr_tier4,
			require_soft_credit_tier3 = EXCLUDED.require_soft_credit_tier3,
			require_soft_credit_tier4 = EXCLUDED.require_soft_credit_tier4,
			require_manual_approval = EXCLUDED.require_manual_approval,
			updated_at = EXCLUDED.updated_at`

	tiers := make([]string, 0, len(p.AllowedTiers))
	for _, t := range p.AllowedTiers {
		tiers = append(tiers, string(t))
	}

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.pool.Exec(ctx, q,
		p.DealerID, p.MinVehicleYear, tiers, string(p.MinRenterGrade),
		p.BlockFlaggedRenters,
		p.RequireMVRTier3, p.RequireMVRTier4,
		p.RequireSoftCreditTier3, p.RequireSoftCreditTier4,
		p.RequireManualApproval, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert dealer policy: %w", err)
	}
	return nil
}
