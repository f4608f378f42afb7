package recall

import (
	"fmt"
	"strings"

	"curbo/internal/domain"
)

// Severity levels for a recall campaign, ordered none < low < medium < high.
const (
	SeverityNone   = "none"
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

var severityRank = map[string]int{
	SeverityNone:   0,
	SeverityLow:    1,
	SeverityMedium: 2,
	SeverityHigh:   3,
}

// highSeverityTerms mark campaigns where the stated consequence involves loss
// of vehicle control or occupant safety.
var highSeverityTerms = []string{
	"fire", "crash", "injury", "death", "brake", "air bag", "airbag", "steering", "fuel leak",
}

var mediumSeverityTerms = []string{
	"stall", "seat belt", "suspension", "tire", "fuel", "electrical",
}

// SeverityOf classifies a single campaign from its component and consequence
// text. Unrecognised campaigns default to low rather than none: the registry
// does not report cosmetic issues.
func SeverityOf(r Record) string {
	text := strings.ToLower(r.Component + " " + r.Consequence)
	for _, term := range highSeverityTerms {
		if strings.Contains(text, term) {
			return SeverityHigh
		}
	}
	for _, term := range mediumSeverityTerms {
		if strings.Contains(text, term) {
			return SeverityMedium
		}
	}
	return SeverityLow
}

// MaxSeverity returns the highest severity across campaigns, SeverityNone for
// an empty list.
func MaxSeverity(recalls []Record) string {
	max := SeverityNone
	for _, r := range recalls {
		if s := SeverityOf(r); severityRank[s] > severityRank[max] {
			max = s
		}
	}
	return max
}

// ComputeBadge derives the public badge from recall history. Deterministic:
// equal inputs always produce equal badges.
func ComputeBadge(recalls []Record) Badge {
	severity := MaxSeverity(recalls)
	count := len(recalls)

	switch severity {
	case SeverityNone:
		return Badge{Color: "green", Label: "No known recalls", RecallCount: 0, Severity: severity}
	case SeverityHigh:
		return Badge{
			Color:       "red",
			Label:       fmt.Sprintf("%d open recall(s), safety critical", count),
			RecallCount: count,
			Severity:    severity,
		}
	default:
		return Badge{
			Color:       "yellow",
			Label:       fmt.Sprintf("%d open recall(s)", count),
			RecallCount: count,
			Severity:    severity,
		}
	}
}

// Per-campaign score deductions. High must outweigh medium, medium low, so
// that a severer recall history never scores higher.
var severityPenalty = map[string]int{
	SeverityLow:    8,
	SeverityMedium: 15,
	SeverityHigh:   25,
}

const minListingPhotos = 3

// ComputeStanding derives the 0-100 standing score and grade. Monotonic in
// recall history: adding a campaign or raising a campaign's severity never
// increases the score, and a dealer-verified vehicle never scores below an
// unverified one with the same history.
func ComputeStanding(recalls []Record, photoCount int, dealerVerified bool) Standing {
	score := 100
	var reasons []string

	for _, r := range recalls {
		score -= severityPenalty[SeverityOf(r)]
	}
	switch {
	case len(recalls) == 0:
		reasons = append(reasons, "no known recalls")
	default:
		reasons = append(reasons, fmt.Sprintf("%d open recall(s), worst severity %s", len(recalls), MaxSeverity(recalls)))
	}

	if photoCount < minListingPhotos {
		score -= 10
		reasons = append(reasons, "listing has fewer than 3 photos")
	}
	if !dealerVerified {
		score -= 5
		reasons = append(reasons, "dealer not verified")
	}

	if score < 0 {
		score = 0
	}

	return Standing{Score: score, Grade: gradeFor(score), Reasons: reasons}
}

func gradeFor(score int) domain.Grade {
	switch {
	case score >= 90:
		return domain.GradeA
	case score >= 75:
		return domain.GradeB
	case score >= 60:
		return domain.GradeC
	case score >= 40:
		return domain.GradeD
	default:
		return domain.GradeF
	}
}
