package recall

import "curbo/internal/vehicle"

// seedRecalls returns canned recall data for placeholder (seed/demo)
// vehicles. Placeholders never touch the registry, the cache, or the standing
// tables; the demo data is a pure function of the stored vehicle facts so
// repeated lookups stay consistent.
func seedRecalls(v *vehicle.Vehicle) []Record {
	// Older demo vehicles carry one canned campaign so the badge and
	// standing paths are visible in demo mode; newer ones stay clean.
	if v.ModelYear >= 2015 {
		return nil
	}
	return []Record{
		{
			CampaignNumber:     "21V-DEMO1",
			Make:               v.Make,
			Model:              v.Model,
			ModelYear:          v.ModelYear,
			Manufacturer:       v.Make,
			ReportReceivedDate: "2021-06-01",
			Component:          "SUSPENSION",
			Summary:            "Demonstration campaign for seeded vehicles.",
			Consequence:        "Worn suspension components may affect ride quality.",
			Remedy:             "Dealer inspection.",
			Notes:              "Seed data, not sourced from the recall registry.",
		},
	}
}
