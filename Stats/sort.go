package Stats

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys accepted by SortVehicles. Any other key compares numerically on a
// zero value, which leaves the order unchanged.
const (
	SortByPlate         = "plate"
	SortByTrips         = "trips"
	SortByCommission    = "commission"
	SortByTollFees      = "tollFees"
	SortByFuelCosts     = "fuelCosts"
	SortByEstimatedTon  = "estimatedTon"
	SortByTotalExpenses = "totalExpenses"
)

// SortVehicles returns a sorted copy of the per-vehicle stats. Plates compare
// with numeric-aware collation so "907" sorts before "8722"; every other key
// compares numerically, with totalExpenses computed from toll plus fuel.
// Direction "none" (or anything else) keeps the aggregation order.
func SortVehicles(data []VehicleStats, key, direction string) []VehicleStats {
	sorted := make([]VehicleStats, len(data))
	copy(sorted, data)

	if key == "" || (direction != "asc" && direction != "desc") {
		return sorted
	}
	desc := direction == "desc"

	// Collators buffer state across comparisons, so each sort gets its own
	// and overlapping requests cannot trample one another.
	plateCollator := collate.New(language.Und, collate.Numeric, collate.IgnoreCase)

	sort.SliceStable(sorted, func(i, j int) bool {
		var cmp int
		if key == SortByPlate {
			cmp = plateCollator.CompareString(sorted[i].Plate, sorted[j].Plate)
		} else {
			a, b := numericSortValue(sorted[i], key), numericSortValue(sorted[j], key)
			switch {
			case a < b:
				cmp = -1
			case a > b:
				cmp = 1
			}
		}
		if desc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return sorted
}

func numericSortValue(v VehicleStats, key string) float64 {
	switch key {
	case SortByTrips:
		return float64(v.Trips)
	case SortByCommission:
		return v.Commission
	case SortByTollFees:
		return v.TollFees
	case SortByFuelCosts:
		return v.FuelCosts
	case SortByEstimatedTon:
		return v.EstimatedTon
	case SortByTotalExpenses:
		return v.TollFees + v.FuelCosts
	default:
		return 0
	}
}
