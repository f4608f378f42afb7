// Package verification runs the document verification bot: an ordered
// battery of heuristic field-level checks over a profile's submitted
// documents. Flags are the intended output, not an error channel; any flag at
// any severity routes the document to human review.
package verification

import (
	"time"

	"curbo/internal/domain"
)

// DocumentType identifies a submitted verification document.
type DocumentType string

const (
	DocDriversLicense  DocumentType = "drivers_license"
	DocInsuranceCard   DocumentType = "insurance_card"
	DocBusinessLicense DocumentType = "business_license"
	DocTaxDocument     DocumentType = "tax_document"
	DocProofOfAddress  DocumentType = "proof_of_address"
)

// Document is one submitted file, keyed with its profile by (profile id,
// document type).
type Document struct {
	Type DocumentType `json:"type"`
	Path string       `json:"path"`
}

// DriverLicense holds the renter license fields the bot cross-checks.
type DriverLicense struct {
	Number     string    `json:"number"`
	State      string    `json:"state"`
	Expiration time.Time `json:"expiration"`
}

// BusinessInfo holds the dealer registration fields the bot cross-checks.
type BusinessInfo struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	Address       string `json:"address"`
	TaxID         string `json:"tax_id"`
}

// Profile is the snapshot the bot runs against. The role is an explicit
// field, never re-fetched inside the rule battery, so the checks stay a pure
// function of this struct.
type Profile struct {
	ID        string         `json:"id"`
	Role      domain.Role    `json:"role"`
	Phone     string         `json:"phone"`
	License   *DriverLicense `json:"license,omitempty"`
	Business  *BusinessInfo  `json:"business,omitempty"`
	Documents []Document     `json:"documents"`
}

// FlagType classifies what kind of problem a check found.
type FlagType string

const (
	FlagInconsistency FlagType = "inconsistency"
	FlagInvalid       FlagType = "invalid"
	FlagSuspicious    FlagType = "suspicious"
)

// Severity grades a flag for reviewer triage. It does not gate the status
// transition: a single low-severity flag still marks the document flagged.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// DocumentFlag is one finding from the check battery.
type DocumentFlag struct {
	Type     FlagType `json:"type"`
	Reason   string   `json:"reason"`
	Severity Severity `json:"severity"`
	Field    string   `json:"field,omitempty"`
}

// Status is the derived verification outcome for one document.
type Status string

const (
	StatusVerified Status = "verified"
	StatusFlagged  Status = "flagged"
)

// BotCheckResult records per-category pass/fail plus a reviewer summary.
type BotCheckResult struct {
	FieldsPresent  bool   `json:"fields_present"`
	DocumentSanity bool   `json:"document_sanity"`
	CrossField     bool   `json:"cross_field"`
	Dates          bool   `json:"dates"`
	Summary        string `json:"summary"`
}

// AuditRecord is the persisted bot output, upserted per (profile id,
// document type) so a re-run replaces the prior audit.
type AuditRecord struct {
	ProfileID    string         `json:"profile_id"`
	DocumentType DocumentType   `json:"document_type"`
	Status       Status         `json:"status"`
	Flags        []DocumentFlag `json:"flags"`
	CheckResult  BotCheckResult `json:"bot_check_result"`
	RanAt        time.Time      `json:"ran_at"`
}
