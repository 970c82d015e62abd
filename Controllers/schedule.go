package Controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"NanYang/LocalCache"
	"NanYang/Models"
	"NanYang/Stats"

	"github.com/gofiber/fiber/v2"
)

// ScheduleHandler serves the planner's day schedule. Reads prefer the
// schedules store and fall back to the local cache; saves write through to
// both and refresh the in-memory snapshot of the open day.
type ScheduleHandler struct {
	Store *Models.ScheduleStore
	Cache *LocalCache.Store
	Rules *Models.RuleState

	mu           sync.RWMutex
	snapshotDate time.Time
	snapshotRows []Stats.TripRow
	hasSnapshot  bool
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(store *Models.ScheduleStore, cache *LocalCache.Store, rules *Models.RuleState) *ScheduleHandler {
	return &ScheduleHandler{
		Store: store,
		Cache: cache,
		Rules: rules,
	}
}

// CurrentDay exposes the last loaded or saved day as the tertiary stats source.
func (h *ScheduleHandler) CurrentDay() (time.Time, []Stats.TripRow, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshotDate, h.snapshotRows, h.hasSnapshot
}

// GetSchedule returns one day's schedule rows
func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	date := parseDateQuery(c.Query("date"))
	dateStr := Stats.FormatDate(date)

	records, err := h.Store.RowsForDate(c.UserContext(), dateStr)
	if err != nil {
		log.Println("schedule read failed, trying local cache:", err)
		return h.getScheduleFromCache(c, date)
	}

	dayRows := make([]LocalCache.DayRow, 0, len(records))
	for _, record := range records {
		if h.isExcluded(record.LorryPlate) {
			continue
		}
		dayRows = append(dayRows, scheduleRowToDayRow(record))
	}
	h.setSnapshot(date, dayRows)

	return c.JSON(fiber.Map{
		"date": dateStr,
		"rows": dayRows,
	})
}

func (h *ScheduleHandler) getScheduleFromCache(c *fiber.Ctx, date time.Time) error {
	rows, ok := h.Cache.LoadDay(date)
	if !ok {
		return c.JSON(fiber.Map{
			"date": Stats.FormatDate(date),
			"rows": []LocalCache.DayRow{},
		})
	}

	dayRows := make([]LocalCache.DayRow, 0, len(rows))
	for _, row := range rows {
		if h.isExcluded(row.Plate) {
			continue
		}
		dayRows = append(dayRows, tripRowToDayRow(row))
	}
	h.setSnapshot(date, dayRows)

	return c.JSON(fiber.Map{
		"date": Stats.FormatDate(date),
		"rows": dayRows,
	})
}

// SaveSchedule replaces one day's schedule rows
func (h *ScheduleHandler) SaveSchedule(c *fiber.Ctx) error {
	date := parseDateQuery(c.Query("date"))
	dateStr := Stats.FormatDate(date)

	var dayRows []LocalCache.DayRow
	if err := c.BodyParser(&dayRows); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid schedule payload",
			"error":   err.Error(),
		})
	}

	records := make([]Models.ScheduleRow, 0, len(dayRows))
	for _, dayRow := range dayRows {
		records = append(records, dayRowToScheduleRow(dateStr, dayRow))
	}

	if err := h.Store.ReplaceDay(c.UserContext(), dateStr, records); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to save schedule",
			"error":   err.Error(),
		})
	}

	// Write-through so the cache and snapshot stay usable as fallbacks
	if err := h.Cache.SaveDay(date, dayRows); err != nil {
		log.Println("local cache write failed:", err)
	}
	h.setSnapshot(date, dayRows)

	return c.JSON(fiber.Map{
		"date":  dateStr,
		"saved": len(records),
	})
}

func (h *ScheduleHandler) isExcluded(plate string) bool {
	return h.Rules != nil && h.Rules.IsExcluded(plate)
}

func (h *ScheduleHandler) setSnapshot(date time.Time, dayRows []LocalCache.DayRow) {
	rows := make([]Stats.TripRow, 0, len(dayRows))
	for _, dayRow := range dayRows {
		rows = append(rows, dayRow.ToTripRow())
	}

	h.mu.Lock()
	h.snapshotDate = date
	h.snapshotRows = rows
	h.hasSnapshot = true
	h.mu.Unlock()
}

func dayRowToScheduleRow(date string, dayRow LocalCache.DayRow) Models.ScheduleRow {
	cells := [5]LocalCache.TripCell{dayRow.Trip1, dayRow.Trip2, dayRow.Trip3, dayRow.Trip4, dayRow.Trip5}

	record := Models.ScheduleRow{
		LorryPlate:   dayRow.LorryPlate,
		WorkDate:     date,
		TolAmount:    looseToString(dayRow.TolAmount),
		PetrolAmount: looseToString(dayRow.PetrolAmount),
	}
	completed := [5]*string{&record.T1Completed, &record.T2Completed, &record.T3Completed, &record.T4Completed, &record.T5Completed}
	commission := [5]*string{&record.T1Commission, &record.T2Commission, &record.T3Commission, &record.T4Commission, &record.T5Commission}
	for i, cell := range cells {
		*completed[i] = strconv.FormatBool(Stats.ToBool(cell.Completed))
		*commission[i] = looseToString(cell.Commission)
	}
	return record
}

func scheduleRowToDayRow(record Models.ScheduleRow) LocalCache.DayRow {
	return LocalCache.DayRow{
		LorryPlate:   record.LorryPlate,
		Trip1:        LocalCache.TripCell{Completed: record.T1Completed, Commission: record.T1Commission},
		Trip2:        LocalCache.TripCell{Completed: record.T2Completed, Commission: record.T2Commission},
		Trip3:        LocalCache.TripCell{Completed: record.T3Completed, Commission: record.T3Commission},
		Trip4:        LocalCache.TripCell{Completed: record.T4Completed, Commission: record.T4Commission},
		Trip5:        LocalCache.TripCell{Completed: record.T5Completed, Commission: record.T5Commission},
		TolAmount:    record.TolAmount,
		PetrolAmount: record.PetrolAmount,
	}
}

func tripRowToDayRow(row Stats.TripRow) LocalCache.DayRow {
	cells := [5]LocalCache.TripCell{}
	for i, slot := range row.Slots {
		cells[i] = LocalCache.TripCell{
			Completed:  slot.Completed,
			Commission: slot.Commission,
		}
	}
	return LocalCache.DayRow{
		LorryPlate:   row.Plate,
		Trip1:        cells[0],
		Trip2:        cells[1],
		Trip3:        cells[2],
		Trip4:        cells[3],
		Trip5:        cells[4],
		TolAmount:    row.Toll,
		PetrolAmount: row.Fuel,
	}
}

func looseToString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
