// Package vehicle provides the read model the risk engine consumes: listing
// status, inspection and title facts, and the quality signals feeding the
// standing scorer.
package vehicle

import (
	"strings"

	"curbo/internal/domain"
	"curbo/internal/tier"
)

// PlaceholderPrefix marks seed/demo vehicles. Placeholder vehicles never read
// or write the recall cache or standing tables.
const PlaceholderPrefix = "seed-"

// Vehicle is a snapshot of a listed vehicle.
type Vehicle struct {
	ID       string `json:"id"`
	DealerID string `json:"dealer_id"`

	Status           domain.VehicleStatus    `json:"status"`
	InspectionStatus domain.InspectionStatus `json:"inspection_status"`
	TitleType        domain.TitleType        `json:"title_type"`

	VIN       string `json:"vin,omitempty"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	ModelYear int    `json:"model_year"`

	PhotoCount     int  `json:"photo_count"`
	DealerVerified bool `json:"dealer_verified"`
}

// Tier re-derives the vehicle's risk tier from its model year.
func (v Vehicle) Tier() tier.Tier {
	return tier.Classify(v.ModelYear)
}

// IsPlaceholder reports whether the vehicle is a seed/demo record.
func (v Vehicle) IsPlaceholder() bool {
	return strings.HasPrefix(v.ID, PlaceholderPrefix)
}
