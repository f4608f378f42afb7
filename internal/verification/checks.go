package verification

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"curbo/internal/domain"
	pstrings "curbo/pkg/platform/strings"
)

// expiringSoonWindow is how far ahead an upcoming license expiration is
// flagged for review.
const expiringSoonWindow = 30 * 24 * time.Hour

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".heic": true,
}

// phonePattern accepts digits with optional country code and common
// separators, 10-15 digits total.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{8,18}[0-9]$`)

// RunChecks executes the full battery for one document: role-specific field
// presence, document sanity, cross-field format checks, and date checks.
// Every check runs unconditionally and their flags are concatenated; nothing
// short-circuits.
func RunChecks(p Profile, doc Document, now time.Time) ([]DocumentFlag, BotCheckResult) {
	var flags []DocumentFlag

	fieldFlags := checkRequiredFields(p, doc)
	sanityFlags := checkDocumentSanity(doc)
	crossFlags := checkCrossFields(p)
	dateFlags := checkDates(p, doc, now)

	flags = append(flags, fieldFlags...)
	flags = append(flags, sanityFlags...)
	flags = append(flags, crossFlags...)
	flags = append(flags, dateFlags...)

	result := BotCheckResult{
		FieldsPresent:  len(fieldFlags) == 0,
		DocumentSanity: len(sanityFlags) == 0,
		CrossField:     len(crossFlags) == 0,
		Dates:          len(dateFlags) == 0,
	}
	result.Summary = summarize(doc.Type, flags)
	return flags, result
}

func checkRequiredFields(p Profile, doc Document) []DocumentFlag {
	var flags []DocumentFlag

	missing := func(field string) DocumentFlag {
		return DocumentFlag{
			Type:     FlagInconsistency,
			Reason:   fmt.Sprintf("%s is missing", field),
			Severity: SeverityMedium,
			Field:    field,
		}
	}

	switch p.Role {
	case domain.RoleRenter:
		if doc.Type != DocDriversLicense {
			return nil
		}
		if p.License == nil {
			return []DocumentFlag{missing("license")}
		}
		if p.License.Number == "" {
			flags = append(flags, missing("license.number"))
		}
		if p.License.State == "" {
			flags = append(flags, missing("license.state"))
		}
		if p.License.Expiration.IsZero() {
			flags = append(flags, missing("license.expiration"))
		}
	case domain.RoleDealer:
		if doc.Type != DocBusinessLicense && doc.Type != DocTaxDocument {
			return nil
		}
		if p.Business == nil {
			return []DocumentFlag{missing("business")}
		}
		if p.Business.Name == "" {
			flags = append(flags, missing("business.name"))
		}
		if p.Business.LicenseNumber == "" {
			flags = append(flags, missing("business.license_number"))
		}
		if p.Business.Address == "" {
			flags = append(flags, missing("business.address"))
		}
		if doc.Type == DocTaxDocument && p.Business.TaxID == "" {
			flags = append(flags, missing("business.tax_id"))
		}
	}
	return flags
}

func checkDocumentSanity(doc Document) []DocumentFlag {
	var flags []DocumentFlag

	if doc.Path == "" {
		flags = append(flags, DocumentFlag{
			Type:     FlagInvalid,
			Reason:   fmt.Sprintf("%s was submitted without a file", doc.Type),
			Severity: SeverityHigh,
			Field:    "path",
		})
		return flags
	}

	ext := strings.ToLower(filepath.Ext(doc.Path))
	if !allowedExtensions[ext] {
		flags = append(flags, DocumentFlag{
			Type:     FlagInvalid,
			Reason:   fmt.Sprintf("unsupported file type %q", ext),
			Severity: SeverityMedium,
			Field:    "path",
		})
	}
	return flags
}

func checkCrossFields(p Profile) []DocumentFlag {
	if p.Phone == "" || phonePattern.MatchString(p.Phone) {
		return nil
	}
	return []DocumentFlag{{
		Type:     FlagInconsistency,
		Reason:   "phone number format is not recognized",
		Severity: SeverityLow,
		Field:    "phone",
	}}
}

func checkDates(p Profile, doc Document, now time.Time) []DocumentFlag {
	if p.Role != domain.RoleRenter || doc.Type != DocDriversLicense {
		return nil
	}
	if p.License == nil || p.License.Expiration.IsZero() {
		return nil
	}

	exp := p.License.Expiration
	switch {
	case exp.Before(now):
		return []DocumentFlag{{
			Type:     FlagInvalid,
			Reason:   "driver license is expired",
			Severity: SeverityHigh,
			Field:    "license.expiration",
		}}
	case exp.Before(now.Add(expiringSoonWindow)):
		return []DocumentFlag{{
			Type:     FlagSuspicious,
			Reason:   "driver license expires within 30 days",
			Severity: SeverityLow,
			Field:    "license.expiration",
		}}
	}
	return nil
}

func summarize(docType DocumentType, flags []DocumentFlag) string {
	if len(flags) == 0 {
		return fmt.Sprintf("%s passed all checks", docType)
	}
	reasons := make([]string, 0, len(flags))
	for _, f := range flags {
		reasons = append(reasons, f.Reason)
	}
	reasons = pstrings.DedupeAndTrim(reasons)
	return fmt.Sprintf("%s flagged for review: %s", docType, strings.Join(reasons, "; "))
}
