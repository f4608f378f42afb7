package eligibility

import (
	"fmt"

	"curbo/internal/domain"
	"curbo/internal/tier"
)

// Evaluate runs the booking eligibility rule table. This is pure domain
// logic - no I/O, no side effects. Every applicable check runs and every
// applicable blocker is collected; nothing short-circuits, so the caller
// sees the complete remediation picture in one pass.
func Evaluate(input Input) Decision {
	d := Decision{
		Blockers:        []Blocker{},
		Conditions:      []Condition{},
		RequiredActions: []RequiredAction{},
	}

	v := input.Vehicle
	vehicleTier := v.Tier()

	// Vehicle baseline: listing state, inspection, title history.
	if v.Status != domain.VehicleActive {
		d.block(BlockVehicleInactive, fmt.Sprintf("vehicle %s is not active", v.ID))
	}
	if v.InspectionStatus == domain.InspectionFailed {
		d.block(BlockInspectionFailed, "vehicle failed platform inspection")
	}
	if v.TitleType.Forbidden() {
		d.block(BlockForbiddenTitle, fmt.Sprintf("title type %q is not allowed on the platform", v.TitleType))
	}

	// Renter baseline.
	if input.Renter.VerificationStatus != domain.VerificationApproved {
		d.block(BlockRenterNotVerified, "renter identity verification is not approved")
	}

	// Effective policy checks. The policy is the dealer's when one exists,
	// the materialized platform default otherwise.
	p := input.Policy

	if v.ModelYear < p.MinVehicleYear {
		d.block(BlockBelowMinYear, fmt.Sprintf(
			"vehicle year %d is below the policy minimum %d", v.ModelYear, p.MinVehicleYear))
	}
	if !p.AllowsTier(vehicleTier) {
		d.block(BlockTierNotAllowed, fmt.Sprintf("vehicle tier %s is not allowed by dealer policy", vehicleTier))
	}
	if !input.Renter.EffectiveGrade().AtLeast(p.MinRenterGrade) {
		d.block(BlockStandingTooLow, fmt.Sprintf(
			"renter standing %s is below the required minimum %s",
			input.Renter.EffectiveGrade(), p.MinRenterGrade))
	}
	if p.BlockFlaggedRenters && input.Renter.Flagged {
		d.block(BlockRenterFlagged, "renter account is flagged for review")
	}

	// Screening requirements for higher tiers. Each missing check adds both
	// a blocker and the matching machine-readable action.
	requireMVR := (vehicleTier == tier.Tier3 && p.RequireMVRTier3) ||
		(vehicleTier == tier.Tier4 && p.RequireMVRTier4)
	if requireMVR && !input.Screening.MVRSatisfied() {
		d.block(BlockMVRRequired, "a completed MVR check is required for this vehicle")
		d.require(ActionRunMVR)
	}

	requireSoftCredit := (vehicleTier == tier.Tier3 && p.RequireSoftCreditTier3) ||
		(vehicleTier == tier.Tier4 && p.RequireSoftCreditTier4)
	if requireSoftCredit && !input.Screening.SoftCreditSatisfied() {
		d.block(BlockSoftCreditNeeded, "a completed soft-credit check is required for this vehicle")
		d.require(ActionRunSoftCredit)
	}

	// Tier4 coverage floor holds under every policy.
	if vehicleTier == tier.Tier4 {
		ins := input.Insurance
		if ins == nil || !ins.IsValid || !ins.Type.CoversTier4() {
			d.block(BlockInsuranceTooWeak, "tier4 vehicles require the premium plan or approved BYOI coverage")
			d.require(ActionChoosePremiumPlan)
		}
	}

	if p.RequireManualApproval {
		d.Conditions = append(d.Conditions, Condition{
			Code:    ConditionDealerApproval,
			Message: "booking requires dealer sign-off before confirmation",
		})
	}

	d.OK = len(d.Blockers) == 0
	return d
}

func (d *Decision) block(code, message string) {
	d.Blockers = append(d.Blockers, Blocker{Code: code, Message: message})
}

func (d *Decision) require(action RequiredAction) {
	for _, a := range d.RequiredActions {
		if a == action {
			return
		}
	}
	d.RequiredActions = append(d.RequiredActions, action)
}
