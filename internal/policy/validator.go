package policy

import (
	"fmt"

	"curbo/internal/domain"
	"curbo/internal/tier"
)

// ValidationResult carries every violated rule, not just the first. Callers
// surface the full list so a dealer can fix a policy in one round trip.
type ValidationResult struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors"`
}

// Validate checks a dealer policy against platform floors, accumulating all
// violations. It never mutates the policy; see Clamp for the save path.
func Validate(p DealerPolicy) ValidationResult {
	var errs []string

	if p.MinVehicleYear < PlatformMinimumYear {
		errs = append(errs, fmt.Sprintf(
			"min_vehicle_year must be at least %d, got %d", PlatformMinimumYear, p.MinVehicleYear))
	}

	for _, t := range p.AllowedTiers {
		if !t.IsValid() {
			errs = append(errs, fmt.Sprintf("unknown vehicle tier %q", t))
		}
	}

	return ValidationResult{OK: len(errs) == 0, Errors: errs}
}

// Clamp forces a policy onto platform floors: the minimum year is raised to
// the platform minimum and unknown tiers are dropped. The save workflow
// always clamps regardless of validation, so an invalid request cannot relax
// platform floors even if validation is bypassed upstream.
func Clamp(p DealerPolicy) DealerPolicy {
	if p.MinVehicleYear < PlatformMinimumYear {
		p.MinVehicleYear = PlatformMinimumYear
	}

	valid := make([]tier.Tier, 0, len(p.AllowedTiers))
	for _, t := range p.AllowedTiers {
		if t.IsValid() {
			valid = append(valid, t)
		}
	}
	p.AllowedTiers = valid

	if !p.MinRenterGrade.IsValid() {
		p.MinRenterGrade = domain.GradeF
	}

	return p
}
