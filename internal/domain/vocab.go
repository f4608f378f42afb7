// Package domain holds the shared vocabulary of the risk engine: grades,
// title types, inspection and verification statuses, insurance plans, and
// roles. Keeping these in one place means every rule set compares the same
// values.
package domain

// Grade is a standing grade, totally ordered A > B > C > D > F. It is used
// both for renter screening and, structurally, for vehicle standing.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Ordinal returns the fixed ordinal mapping A=5, B=4, C=3, D=2, F=1.
// Unknown grades map to 0, i.e. below F, so a malformed grade never
// satisfies a minimum-grade requirement.
func (g Grade) Ordinal() int {
	switch g {
	case GradeA:
		return 5
	case GradeB:
		return 4
	case GradeC:
		return 3
	case GradeD:
		return 2
	case GradeF:
		return 1
	}
	return 0
}

// AtLeast reports whether g meets or exceeds min in the grade ordering.
func (g Grade) AtLeast(min Grade) bool {
	return g.Ordinal() >= min.Ordinal()
}

// IsValid checks if the grade is one of the five known values.
func (g Grade) IsValid() bool {
	return g.Ordinal() > 0
}

// TitleType describes a vehicle's title history.
type TitleType string

const (
	TitleClean   TitleType = "clean"
	TitleRebuilt TitleType = "rebuilt"
	TitleSalvage TitleType = "salvage"
	TitleFlood   TitleType = "flood"
	TitleOther   TitleType = "other"
)

// Forbidden reports whether the title type is permanently blocked platform
// wide. This set is a platform invariant, not configurable per dealer.
func (t TitleType) Forbidden() bool {
	switch t {
	case TitleRebuilt, TitleSalvage, TitleFlood:
		return true
	}
	return false
}

// InspectionStatus tracks the platform inspection of a listed vehicle.
type InspectionStatus string

const (
	InspectionPending InspectionStatus = "pending"
	InspectionPassed  InspectionStatus = "passed"
	InspectionFailed  InspectionStatus = "failed"
)

// VehicleStatus is the listing lifecycle state.
type VehicleStatus string

const (
	VehicleActive   VehicleStatus = "active"
	VehicleInactive VehicleStatus = "inactive"
	VehicleDraft    VehicleStatus = "draft"
)

// InsuranceType identifies the renter's coverage selection for a booking.
type InsuranceType string

const (
	InsurancePremium  InsuranceType = "premium"
	InsuranceStandard InsuranceType = "standard"
	InsuranceBasic    InsuranceType = "basic"
	InsuranceBYOI     InsuranceType = "byoi"
)

// CoversTier4 reports whether the plan satisfies the tier4 coverage floor.
func (i InsuranceType) CoversTier4() bool {
	return i == InsurancePremium || i == InsuranceBYOI
}

// Role is the explicit profile role passed into rule engines. The engines are
// pure functions of their inputs and never fetch profiles themselves.
type Role string

const (
	RoleRenter Role = "renter"
	RoleDealer Role = "dealer"
	RoleAdmin  Role = "admin"
)

// VerificationStatus is the outcome of identity/document verification.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationFlagged  VerificationStatus = "flagged"
	VerificationVerified VerificationStatus = "verified"
)
