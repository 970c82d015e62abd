package Stats

import "strings"

// VehicleStats is one lorry's totals over the aggregated range.
type VehicleStats struct {
	Plate        string  `json:"plate"`
	Trips        int     `json:"trips"`
	Commission   float64 `json:"commission"`
	TollFees     float64 `json:"tollFees"`
	FuelCosts    float64 `json:"fuelCosts"`
	EstimatedTon float64 `json:"estimatedTon"`
}

// FleetStats is the fleet-wide roll-up the dashboard renders. Totals are
// exact sums of VehicleData; rounding is left to the presentation layer.
type FleetStats struct {
	TotalVehicles     int            `json:"totalVehicles"`
	TotalTrips        int            `json:"totalTrips"`
	TotalCommission   float64        `json:"totalCommission"`
	TotalExpenses     float64        `json:"totalExpenses"`
	TotalEstimatedTon float64        `json:"totalEstimatedTon"`
	VehicleData       []VehicleStats `json:"vehicleData"`
}

// Aggregate folds trip rows into per-vehicle and fleet totals. Each completed
// trip slot counts one trip, its commission, and one tonnage estimate for the
// row's plate. Toll and fuel accrue once per row. VehicleData keeps the order
// plates were first seen in.
func Aggregate(rows []TripRow, rules RuleSet) FleetStats {
	stats := FleetStats{VehicleData: []VehicleStats{}}
	index := make(map[string]int)

	for _, row := range rows {
		plate := strings.TrimSpace(row.Plate)
		i, ok := index[plate]
		if !ok {
			i = len(stats.VehicleData)
			index[plate] = i
			stats.VehicleData = append(stats.VehicleData, VehicleStats{Plate: plate})
		}
		vehicle := &stats.VehicleData[i]

		for _, slot := range row.Slots {
			if !slot.Completed {
				continue
			}
			vehicle.Trips++
			stats.TotalTrips++
			vehicle.Commission += slot.Commission
			stats.TotalCommission += slot.Commission
			if ton, ok := rules.EstimatedTonFor(plate); ok {
				vehicle.EstimatedTon += ton
				stats.TotalEstimatedTon += ton
			}
		}

		vehicle.TollFees += row.Toll
		vehicle.FuelCosts += row.Fuel
		stats.TotalExpenses += row.Toll + row.Fuel
	}

	stats.TotalVehicles = len(stats.VehicleData)
	return stats
}
