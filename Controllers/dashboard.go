package Controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"NanYang/Models"
	"NanYang/Stats"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// DashboardHandler serves the fleet statistics endpoints
type DashboardHandler struct {
	Engine *Stats.Engine
	Rules  *Models.RuleState
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(engine *Stats.Engine, rules *Models.RuleState) *DashboardHandler {
	return &DashboardHandler{
		Engine: engine,
		Rules:  rules,
	}
}

// GetDashboardStats returns aggregated fleet statistics for a reporting period
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	period := Stats.Period(c.Query("period", string(Stats.PeriodDay)))
	reference := parseDateQuery(c.Query("date"))
	sortKey := c.Query("sort_key")
	sortDir := c.Query("sort_dir", "none")

	rng := Stats.ResolveRange(period, reference)
	stats := h.Engine.StatsForPeriod(c.UserContext(), period, reference, h.Rules.Rules())
	stats.VehicleData = Stats.SortVehicles(stats.VehicleData, sortKey, sortDir)

	return c.JSON(fiber.Map{
		"period": period,
		"range": fiber.Map{
			"start": Stats.FormatDate(rng.Start),
			"end":   Stats.FormatDate(rng.End),
		},
		"stats": stats,
	})
}

// ExportDashboardStats returns the per-vehicle statistics table as an Excel file
func (h *DashboardHandler) ExportDashboardStats(c *fiber.Ctx) error {
	period := Stats.Period(c.Query("period", string(Stats.PeriodDay)))
	reference := parseDateQuery(c.Query("date"))

	rng := Stats.ResolveRange(period, reference)
	stats := h.Engine.StatsForPeriod(c.UserContext(), period, reference, h.Rules.Rules())
	stats.VehicleData = Stats.SortVehicles(stats.VehicleData, Stats.SortByPlate, "asc")

	buf, err := buildStatsWorkbook(stats, rng)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate report",
			"error":   err.Error(),
		})
	}

	filename := fmt.Sprintf("fleet-stats-%s-%s.xlsx", Stats.FormatDate(rng.Start), Stats.FormatDate(rng.End))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

// buildStatsWorkbook renders the vehicle table into an xlsx workbook
func buildStatsWorkbook(stats Stats.FleetStats, rng Stats.DateRange) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Fleet Stats"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Lorry Plate", "Trips", "Estimated Ton", "Commission (RM)",
		"Toll Fees (RM)", "Fuel Costs (RM)", "Total Expenses (RM)",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, vehicle := range stats.VehicleData {
		row := rowIndex + 2
		values := []interface{}{
			vehicle.Plate,
			vehicle.Trips,
			vehicle.EstimatedTon,
			vehicle.Commission,
			vehicle.TollFees,
			vehicle.FuelCosts,
			vehicle.TollFees + vehicle.FuelCosts,
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Totals row after the vehicle table
	totalRow := len(stats.VehicleData) + 2
	totals := []interface{}{
		fmt.Sprintf("Total (%s - %s)", Stats.FormatDate(rng.Start), Stats.FormatDate(rng.End)),
		stats.TotalTrips,
		stats.TotalEstimatedTon,
		stats.TotalCommission,
		"",
		"",
		stats.TotalExpenses,
	}
	for colIndex, value := range totals {
		cell := fmt.Sprintf("%c%d", 'A'+colIndex, totalRow)
		f.SetCellValue(sheetName, cell, value)
	}

	for i := 0; i < len(headers); i++ {
		col := string('A' + rune(i))
		f.SetColWidth(sheetName, col, col, 18)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %v", err)
	}
	return &buf, nil
}

// parseDateQuery parses a YYYY-MM-DD query value, defaulting to today
func parseDateQuery(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Now()
	}
	return parsed
}
