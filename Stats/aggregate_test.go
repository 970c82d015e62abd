package Stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() RuleSet {
	return RuleSet{
		TyreCounts: map[string]int{"8722": 10, "8915": 12},
		Tonnage:    map[int]float64{10: 28, 12: 32},
	}
}

func TestAggregateCountsOnlyCompletedSlots(t *testing.T) {
	rows := []TripRow{
		{
			Plate: "8722",
			Slots: [5]TripSlot{
				{Completed: true, Commission: 10.5},
				{Completed: false, Commission: 10.5}, // not counted
				{Completed: true, Commission: 5.5},
			},
			Toll: 20,
			Fuel: 50,
		},
	}

	stats := Aggregate(rows, testRules())

	require.Len(t, stats.VehicleData, 1)
	vehicle := stats.VehicleData[0]
	assert.Equal(t, 2, vehicle.Trips)
	assert.Equal(t, 16.0, vehicle.Commission)
	assert.Equal(t, 20.0, vehicle.TollFees)
	assert.Equal(t, 50.0, vehicle.FuelCosts)
	// Tonnage accrues once per completed slot
	assert.Equal(t, 56.0, vehicle.EstimatedTon)

	assert.Equal(t, 1, stats.TotalVehicles)
	assert.Equal(t, 2, stats.TotalTrips)
	assert.Equal(t, 16.0, stats.TotalCommission)
	assert.Equal(t, 70.0, stats.TotalExpenses)
	assert.Equal(t, 56.0, stats.TotalEstimatedTon)
}

func TestAggregateExpensesAccrueOncePerRow(t *testing.T) {
	// All five slots completed; toll and fuel must still count once
	row := TripRow{Plate: "8722", Toll: 10, Fuel: 5}
	for i := range row.Slots {
		row.Slots[i] = TripSlot{Completed: true, Commission: 1}
	}

	stats := Aggregate([]TripRow{row}, testRules())

	assert.Equal(t, 5, stats.TotalTrips)
	assert.Equal(t, 15.0, stats.TotalExpenses)
	assert.Equal(t, 10.0, stats.VehicleData[0].TollFees)
	assert.Equal(t, 5.0, stats.VehicleData[0].FuelCosts)
}

func TestAggregateMergesRowsByTrimmedPlate(t *testing.T) {
	rows := []TripRow{
		{Plate: "8722", Slots: [5]TripSlot{{Completed: true, Commission: 10}}, Toll: 5},
		{Plate: " 8722 ", Slots: [5]TripSlot{{Completed: true, Commission: 10}}, Fuel: 7},
		{Plate: "8915", Slots: [5]TripSlot{{Completed: true, Commission: 13.5}}},
	}

	stats := Aggregate(rows, testRules())

	require.Len(t, stats.VehicleData, 2)
	assert.Equal(t, 2, stats.TotalVehicles)
	assert.Equal(t, "8722", stats.VehicleData[0].Plate)
	assert.Equal(t, 2, stats.VehicleData[0].Trips)
	assert.Equal(t, 12.0, stats.VehicleData[0].TollFees+stats.VehicleData[0].FuelCosts)
}

func TestAggregateMissingRuleContributesZeroTonnage(t *testing.T) {
	rows := []TripRow{
		{Plate: "4250", Slots: [5]TripSlot{{Completed: true, Commission: 10}}},
	}

	stats := Aggregate(rows, testRules())

	assert.Equal(t, 1, stats.TotalTrips)
	assert.Equal(t, 0.0, stats.TotalEstimatedTon)
	assert.Equal(t, 0.0, stats.VehicleData[0].EstimatedTon)
}

func TestAggregateTotalsMatchVehicleSums(t *testing.T) {
	rows := []TripRow{
		{Plate: "8722", Slots: [5]TripSlot{{Completed: true, Commission: 10.5}, {Completed: true, Commission: 11.5}}, Toll: 20, Fuel: 30},
		{Plate: "8915", Slots: [5]TripSlot{{Completed: true, Commission: 13.5}}, Toll: 5, Fuel: 15},
		{Plate: "907", Slots: [5]TripSlot{}, Toll: 8, Fuel: 2},
	}

	stats := Aggregate(rows, testRules())

	var trips int
	var commission, expenses, ton float64
	for _, vehicle := range stats.VehicleData {
		trips += vehicle.Trips
		commission += vehicle.Commission
		expenses += vehicle.TollFees + vehicle.FuelCosts
		ton += vehicle.EstimatedTon
	}

	assert.Equal(t, trips, stats.TotalTrips)
	assert.Equal(t, commission, stats.TotalCommission)
	assert.Equal(t, expenses, stats.TotalExpenses)
	assert.Equal(t, ton, stats.TotalEstimatedTon)
	assert.Equal(t, len(stats.VehicleData), stats.TotalVehicles)
}

func TestAggregateEmptyInput(t *testing.T) {
	stats := Aggregate(nil, testRules())

	assert.Equal(t, 0, stats.TotalVehicles)
	assert.Equal(t, 0, stats.TotalTrips)
	assert.NotNil(t, stats.VehicleData)
	assert.Empty(t, stats.VehicleData)
}
