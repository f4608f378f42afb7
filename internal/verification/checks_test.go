package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curbo/internal/domain"
)

var checkTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func validRenter() Profile {
	return Profile{
		ID:    "prof-1",
		Role:  domain.RoleRenter,
		Phone: "+1 (415) 555-0137",
		License: &DriverLicense{
			Number:     "D1234567",
			State:      "CA",
			Expiration: checkTime.Add(365 * 24 * time.Hour),
		},
		Documents: []Document{{Type: DocDriversLicense, Path: "uploads/license.jpg"}},
	}
}

func validDealer() Profile {
	return Profile{
		ID:    "prof-2",
		Role:  domain.RoleDealer,
		Phone: "415-555-0137",
		Business: &BusinessInfo{
			Name:          "Bayview Motors",
			LicenseNumber: "BL-9921",
			Address:       "12 Pier St, San Francisco, CA",
			TaxID:         "94-1234567",
		},
		Documents: []Document{
			{Type: DocBusinessLicense, Path: "uploads/bl.pdf"},
			{Type: DocTaxDocument, Path: "uploads/tax.pdf"},
		},
	}
}

func TestRunChecksCleanRenter(t *testing.T) {
	p := validRenter()

	flags, result := RunChecks(p, p.Documents[0], checkTime)

	assert.Empty(t, flags)
	assert.True(t, result.FieldsPresent)
	assert.True(t, result.DocumentSanity)
	assert.True(t, result.CrossField)
	assert.True(t, result.Dates)
	assert.Contains(t, result.Summary, "passed all checks")
}

func TestRunChecksMissingLicenseFields(t *testing.T) {
	p := validRenter()
	p.License.Number = ""
	p.License.State = ""

	flags, result := RunChecks(p, p.Documents[0], checkTime)

	require.Len(t, flags, 2)
	fields := []string{flags[0].Field, flags[1].Field}
	assert.Contains(t, fields, "license.number")
	assert.Contains(t, fields, "license.state")
	assert.False(t, result.FieldsPresent)
}

func TestRunChecksExpiredLicense(t *testing.T) {
	p := validRenter()
	p.License.Expiration = checkTime.Add(-24 * time.Hour)

	flags, result := RunChecks(p, p.Documents[0], checkTime)

	require.Len(t, flags, 1)
	assert.Equal(t, FlagInvalid, flags[0].Type)
	assert.Equal(t, SeverityHigh, flags[0].Severity)
	assert.Equal(t, "license.expiration", flags[0].Field)
	assert.False(t, result.Dates)
}

func TestRunChecksLicenseExpiringSoon(t *testing.T) {
	p := validRenter()
	p.License.Expiration = checkTime.Add(10 * 24 * time.Hour)

	flags, _ := RunChecks(p, p.Documents[0], checkTime)

	require.Len(t, flags, 1)
	assert.Equal(t, FlagSuspicious, flags[0].Type)
	assert.Equal(t, SeverityLow, flags[0].Severity)
}

func TestRunChecksUnsupportedExtension(t *testing.T) {
	p := validRenter()
	p.Documents[0].Path = "uploads/license.exe"

	flags, result := RunChecks(p, p.Documents[0], checkTime)

	require.Len(t, flags, 1)
	assert.Equal(t, FlagInvalid, flags[0].Type)
	assert.Equal(t, "path", flags[0].Field)
	assert.False(t, result.DocumentSanity)
}

func TestRunChecksEmptyPath(t *testing.T) {
	p := validRenter()
	p.Documents[0].Path = ""

	flags, _ := RunChecks(p, p.Documents[0], checkTime)

	require.Len(t, flags, 1)
	assert.Equal(t, SeverityHigh, flags[0].Severity)
}

func TestRunChecksBadPhone(t *testing.T) {
	p := validRenter()
	p.Phone = "call me"

	flags, result := RunChecks(p, p.Documents[0], checkTime)

	require.Len(t, flags, 1)
	assert.Equal(t, FlagInconsistency, flags[0].Type)
	assert.Equal(t, "phone", flags[0].Field)
	assert.False(t, result.CrossField)
}

func TestRunChecksDealerTaxDocumentNeedsTaxID(t *testing.T) {
	p := validDealer()
	p.Business.TaxID = ""

	flags, _ := RunChecks(p, p.Documents[1], checkTime)

	require.Len(t, flags, 1)
	assert.Equal(t, "business.tax_id", flags[0].Field)

	// The business license document does not require the tax id.
	flags, _ = RunChecks(p, p.Documents[0], checkTime)
	assert.Empty(t, flags)
}

func TestRunChecksDealerMissingBusiness(t *testing.T) {
	p := validDealer()
	p.Business = nil

	flags, _ := RunChecks(p, p.Documents[0], checkTime)

	require.Len(t, flags, 1)
	assert.Equal(t, "business", flags[0].Field)
}

func TestRunChecksAccumulateAcrossCategories(t *testing.T) {
	p := validRenter()
	p.Phone = "bad"
	p.License.Expiration = checkTime.Add(-time.Hour)
	p.Documents[0].Path = "uploads/license.exe"

	flags, result := RunChecks(p, p.Documents[0], checkTime)

	// Sanity, cross-field, and date checks all fire; no short-circuiting.
	require.Len(t, flags, 3)
	assert.False(t, result.DocumentSanity)
	assert.False(t, result.CrossField)
	assert.False(t, result.Dates)
	assert.True(t, result.FieldsPresent)
	assert.Contains(t, result.Summary, "flagged for review")
}
