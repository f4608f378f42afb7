package policy

import (
	"time"

	"curbo/internal/domain"
	"curbo/internal/tier"
)

// PlatformMinimumYear is the platform-wide floor for listable model years.
// Dealer overrides may raise it but never lower it.
const PlatformMinimumYear = 2010

// DealerPolicy is a per-dealer override record layered on top of platform
// floors. A saved policy can only be stricter than or equal to the floors;
// the validator and the clamping save path enforce that, not storage.
type DealerPolicy struct {
	DealerID string `json:"dealer_id,omitempty"`

	MinVehicleYear int          `json:"min_vehicle_year"`
	AllowedTiers   []tier.Tier  `json:"allowed_vehicle_tiers"`
	MinRenterGrade domain.Grade `json:"min_renter_standing_grade"`

	BlockFlaggedRenters bool `json:"block_flagged_renters"`

	RequireMVRTier3        bool `json:"require_mvr_for_tier3"`
	RequireMVRTier4        bool `json:"require_mvr_for_tier4"`
	RequireSoftCreditTier3 bool `json:"require_soft_credit_for_tier3"`
	RequireSoftCreditTier4 bool `json:"require_soft_credit_for_tier4"`

	RequireManualApproval bool `json:"require_manual_approval"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// AllowsTier reports whether the policy permits the given tier. An empty
// allowed set means the dealer is not restricting tiers.
func (p DealerPolicy) AllowsTier(t tier.Tier) bool {
	if len(p.AllowedTiers) == 0 {
		return true
	}
	for _, allowed := range p.AllowedTiers {
		if allowed == t {
			return true
		}
	}
	return false
}

// Default returns the materialized platform-default policy. When a dealer has
// no stored policy, the eligibility engine evaluates against this value, so
// only one evaluation path exists.
func Default() DealerPolicy {
	return DealerPolicy{
		MinVehicleYear:         PlatformMinimumYear,
		AllowedTiers:           append([]tier.Tier{}, tier.All...),
		MinRenterGrade:         domain.GradeF,
		RequireMVRTier3:        true,
		RequireMVRTier4:        true,
		RequireSoftCreditTier4: true,
	}
}
