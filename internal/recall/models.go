// Package recall maintains a TTL cache in front of the external recall
// registry and derives per-vehicle standing from recall history and listing
// quality signals. Cached entries are advisory: they are served stale with a
// warning when the upstream rate-limits us, and an unreachable upstream
// degrades to an empty-recall response rather than failing the page.
package recall

import (
	"time"

	"curbo/internal/domain"
)

// Record is a single recall campaign as reported by the registry.
type Record struct {
	CampaignNumber     string `json:"campaignNumber"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	ModelYear          int    `json:"modelYear"`
	Manufacturer       string `json:"manufacturer"`
	ReportReceivedDate string `json:"reportReceivedDate"`
	Component          string `json:"component"`
	Summary            string `json:"summary"`
	Consequence        string `json:"consequence"`
	Remedy             string `json:"remedy"`
	Notes              string `json:"notes"`
}

// Badge is the public recall indicator rendered on a vehicle page.
type Badge struct {
	Color       string `json:"color"`
	Label       string `json:"label"`
	RecallCount int    `json:"recallCount"`
	Severity    string `json:"severity"`
}

// Standing is the derived trust score for a vehicle, computed from recall
// severity, listing photo count, and dealer verification.
type Standing struct {
	Score   int          `json:"score"`
	Grade   domain.Grade `json:"grade"`
	Reasons []string     `json:"reasons"`
}

// CacheEntry is the stored result of a registry fetch, keyed by vehicle id.
// Created or overwritten on every successful fetch, read-only in between.
type CacheEntry struct {
	VehicleID     string    `json:"vehicle_id"`
	RecallCount   int       `json:"recall_count"`
	SeverityLevel string    `json:"severity_level"`
	Badge         Badge     `json:"badge"`
	Recalls       []Record  `json:"recalls"`
	FetchedAt     time.Time `json:"fetched_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Fresh reports whether the entry is still within its TTL.
func (e CacheEntry) Fresh(now time.Time) bool {
	return e.ExpiresAt.After(now)
}

// StandingRecord is the persisted standing, refreshed alongside the cache
// entry and never mutated independently.
type StandingRecord struct {
	VehicleID string    `json:"vehicle_id"`
	Standing  Standing  `json:"standing"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State names which branch of the lookup state machine produced a result.
type State string

const (
	// StateFresh means a valid cache entry was served without an upstream call.
	StateFresh State = "fresh"
	// StateStale means a previous entry was served because the refresh failed.
	StateStale State = "stale"
	// StateFetched means the registry was called for this response.
	StateFetched State = "fetched"
)
