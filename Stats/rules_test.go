package Stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTyreCountMap(t *testing.T) {
	rules := []TyreCountRule{
		{Plate: "8722", Tyres: 10},
		{Plate: " 8915 ", Tyres: "12"},
		{Plate: "", Tyres: 6},              // empty plate skipped
		{Plate: "4250", Tyres: "lots"},     // unparsable count skipped
		{Plate: "907", Tyres: nil},         // missing count skipped
		{Plate: "5708", Tyres: "10 tyres"}, // numeric prefix counts
		{Plate: "8722", Tyres: 14},         // last write wins
	}

	counts := BuildTyreCountMap(rules)

	require.Len(t, counts, 3)
	assert.Equal(t, 14, counts["8722"])
	assert.Equal(t, 12, counts["8915"])
	assert.Equal(t, 10, counts["5708"])
}

func TestBuildTonnageMap(t *testing.T) {
	rules := []TonnageRule{
		{Tyres: 10, Ton: "28 tons"},
		{Tyres: "12", Ton: 32.5},
		{Tyres: 6, Ton: "no idea"}, // no numeric substring, skipped
		{Tyres: nil, Ton: 20},      // missing count, skipped
		{Tyres: 10, Ton: "30"},     // last write wins
	}

	tons := BuildTonnageMap(rules)

	require.Len(t, tons, 2)
	assert.Equal(t, 30.0, tons[10])
	assert.Equal(t, 32.5, tons[12])
}

func TestBuildTonnageMapIgnoresProductAndDestination(t *testing.T) {
	// Rules for the same tyre count but different products collapse to one
	// entry; the lookup keys on tyre count alone.
	rules := []TonnageRule{
		{Tyres: 10, Product: "3/4 Agg", Destination: "Kajang Setia Mix", Ton: 28},
		{Tyres: 10, Product: "C/Sand", Destination: "Nilai MDC", Ton: 26},
	}

	tons := BuildTonnageMap(rules)

	require.Len(t, tons, 1)
	assert.Equal(t, 26.0, tons[10])
}

func TestRebuildDropsStaleEntries(t *testing.T) {
	rules := []TonnageRule{
		{Tyres: 10, Ton: 28},
		{Tyres: 12, Ton: 32},
	}
	tons := BuildTonnageMap(rules)
	require.Len(t, tons, 2)

	// Removing a rule and rebuilding must not retain the old entry
	tons = BuildTonnageMap(rules[:1])
	require.Len(t, tons, 1)
	_, ok := tons[12]
	assert.False(t, ok)
}

func TestEstimatedTonFor(t *testing.T) {
	counts := map[string]int{"8722": 10}
	tons := map[int]float64{10: 28}

	ton, ok := EstimatedTonFor("8722", counts, tons)
	require.True(t, ok)
	assert.Equal(t, 28.0, ton)

	// Plate trimmed before lookup
	ton, ok = EstimatedTonFor(" 8722 ", counts, tons)
	require.True(t, ok)
	assert.Equal(t, 28.0, ton)

	// Unknown plate
	_, ok = EstimatedTonFor("9999", counts, tons)
	assert.False(t, ok)

	// Known plate with no matching tonnage rule
	_, ok = EstimatedTonFor("8722", counts, map[int]float64{})
	assert.False(t, ok)

	// Empty plate
	_, ok = EstimatedTonFor("", counts, tons)
	assert.False(t, ok)
}

func TestEstimatedTonForRoundsToTwoDecimals(t *testing.T) {
	counts := map[string]int{"8722": 10}
	tons := map[int]float64{10: 28.125}

	ton, ok := EstimatedTonFor("8722", counts, tons)
	require.True(t, ok)
	assert.InDelta(t, 28.13, ton, 1e-9)
}
