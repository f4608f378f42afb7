// Package tier derives a vehicle's risk/pricing tier from its model year.
// Classification is pure and total so callers can recompute it on demand;
// a stored tier is never authoritative.
package tier

// Tier is a coarse risk/pricing bucket. Ordering is total: tier1 < tier2 <
// tier3 < tier4.
type Tier string

const (
	Tier1 Tier = "tier1"
	Tier2 Tier = "tier2"
	Tier3 Tier = "tier3"
	Tier4 Tier = "tier4"
)

// All lists the valid tiers in ascending order.
var All = []Tier{Tier1, Tier2, Tier3, Tier4}

// IsValid checks if the tier is one of the four known values.
func (t Tier) IsValid() bool {
	switch t {
	case Tier1, Tier2, Tier3, Tier4:
		return true
	}
	return false
}

// Ordinal returns the tier's position in the total ordering, 1..4.
// Unknown tiers map to 0 so they compare below every valid tier.
func (t Tier) Ordinal() int {
	switch t {
	case Tier1:
		return 1
	case Tier2:
		return 2
	case Tier3:
		return 3
	case Tier4:
		return 4
	}
	return 0
}

// Classify maps a model year to its tier.
//
// Years below the 2010 platform floor classify as Tier1 rather than erroring.
// The floor is enforced upstream by policy validation, so such years should
// never reach this function; falling back to the lowest tier is a safe
// default, not a business rule.
func Classify(modelYear int) Tier {
	switch {
	case modelYear >= 2024:
		return Tier4
	case modelYear >= 2020:
		return Tier3
	case modelYear >= 2015:
		return Tier2
	default:
		return Tier1
	}
}
