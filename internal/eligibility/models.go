package eligibility

import (
	"curbo/internal/domain"
	"curbo/internal/policy"
	"curbo/internal/vehicle"
)

// Renter is the renter-side fact snapshot the engine evaluates. It is passed
// in explicitly; the engine never fetches profiles itself.
type Renter struct {
	ID                 string                    `json:"id"`
	Role               domain.Role               `json:"role"`
	VerificationStatus domain.VerificationStatus `json:"verification_status"`
	// StandingGrade may be empty when the renter has never been scored. A
	// missing grade evaluates as F, the strictest interpretation.
	StandingGrade domain.Grade `json:"standing_grade,omitempty"`
	Flagged       bool         `json:"flagged"`
}

// EffectiveGrade resolves a missing grade to F.
func (r Renter) EffectiveGrade() domain.Grade {
	if !r.StandingGrade.IsValid() {
		return domain.GradeF
	}
	return r.StandingGrade
}

// ScreeningSummary reports whether MVR and soft-credit checks have been run
// and completed. Supplied by the external screening collaborator, read-only
// to the engine. A nil summary means no checks have been run.
type ScreeningSummary struct {
	MVRRun              bool `json:"mvr_run"`
	MVRCompleted        bool `json:"mvr_completed"`
	SoftCreditRun       bool `json:"soft_credit_run"`
	SoftCreditCompleted bool `json:"soft_credit_completed"`
}

// MVRSatisfied reports whether an MVR requirement is met.
func (s *ScreeningSummary) MVRSatisfied() bool {
	return s != nil && s.MVRRun && s.MVRCompleted
}

// SoftCreditSatisfied reports whether a soft-credit requirement is met.
func (s *ScreeningSummary) SoftCreditSatisfied() bool {
	return s != nil && s.SoftCreditRun && s.SoftCreditCompleted
}

// InsuranceSelection is the renter's coverage choice for the booking.
type InsuranceSelection struct {
	Type    domain.InsuranceType `json:"type"`
	IsValid bool                 `json:"is_valid"`
}

// RequiredAction is a machine-actionable remediation step derived from a
// blocker, so clients route the renter to the right flow instead of parsing
// blocker text.
type RequiredAction string

const (
	ActionRunMVR            RequiredAction = "run_mvr"
	ActionRunSoftCredit     RequiredAction = "run_soft_credit"
	ActionChoosePremiumPlan RequiredAction = "choose_premium_plan"
)

// Blocker codes. Tests assert on codes; messages are for humans.
const (
	BlockVehicleInactive   = "vehicle_inactive"
	BlockInspectionFailed  = "inspection_failed"
	BlockForbiddenTitle    = "forbidden_title"
	BlockRenterNotVerified = "renter_not_verified"
	BlockBelowMinYear      = "vehicle_below_min_year"
	BlockTierNotAllowed    = "tier_not_allowed"
	BlockStandingTooLow    = "standing_below_minimum"
	BlockRenterFlagged     = "renter_flagged"
	BlockMVRRequired       = "mvr_required"
	BlockSoftCreditNeeded  = "soft_credit_required"
	BlockInsuranceTooWeak  = "premium_insurance_required"
)

// ConditionDealerApproval marks a booking that may proceed but needs dealer
// sign-off before confirmation.
const ConditionDealerApproval = "dealer_manual_approval"

// Blocker prevents a booking outright until resolved.
type Blocker struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Condition is a non-blocking procedural requirement attached to an
// otherwise-eligible booking.
type Condition struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Input is everything the rule table evaluates. Policy is always present:
// the caller materializes the platform default when the dealer has none, so
// only one evaluation path exists.
type Input struct {
	Vehicle   vehicle.Vehicle
	Renter    Renter
	Policy    policy.DealerPolicy
	Screening *ScreeningSummary
	Insurance *InsuranceSelection
}

// Decision is the structured outcome of an eligibility evaluation. "Not
// eligible" is an expected, common outcome, carried as data, never as an
// error.
type Decision struct {
	OK              bool             `json:"ok"`
	Blockers        []Blocker        `json:"blockers"`
	Conditions      []Condition      `json:"conditions"`
	RequiredActions []RequiredAction `json:"required_actions"`
}
