package LocalCache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"NanYang/Stats"
)

// Store keeps one JSON document per scheduled day on local disk. It is the
// fallback the dashboard aggregates from when the schedules store cannot be
// reached, so writes here mirror every schedule save.
type Store struct {
	Dir string
}

func New(dir string) *Store {
	return &Store{Dir: dir}
}

// DayRow is the cached row shape: nested trip objects rather than the
// flattened columns of the schedules table, and loosely typed fields because
// older planner versions wrote strings where numbers belong.
type DayRow struct {
	LorryPlate   string      `json:"lorryPlate"`
	Trip1        TripCell    `json:"trip1"`
	Trip2        TripCell    `json:"trip2"`
	Trip3        TripCell    `json:"trip3"`
	Trip4        TripCell    `json:"trip4"`
	Trip5        TripCell    `json:"trip5"`
	TolAmount    interface{} `json:"tol_amount"`
	PetrolAmount interface{} `json:"petrol_amount"`
}

type TripCell struct {
	Completed  interface{} `json:"completed"`
	Commission interface{} `json:"commission"`
}

// ToTripRow coerces the loose cached fields into a typed trip row.
func (r DayRow) ToTripRow() Stats.TripRow {
	cells := [5]TripCell{r.Trip1, r.Trip2, r.Trip3, r.Trip4, r.Trip5}

	row := Stats.TripRow{
		Plate: r.LorryPlate,
		Toll:  Stats.ToNumber(r.TolAmount),
		Fuel:  Stats.ToNumber(r.PetrolAmount),
	}
	for i, cell := range cells {
		row.Slots[i] = Stats.TripSlot{
			Completed:  Stats.ToBool(cell.Completed),
			Commission: Stats.ToNumber(cell.Commission),
		}
	}
	return row
}

// LoadDay reads a day's cached rows. The second return is false when the day
// has no cache entry or the entry cannot be decoded.
func (s *Store) LoadDay(date time.Time) ([]Stats.TripRow, bool) {
	data, err := os.ReadFile(s.dayPath(date))
	if err != nil {
		return nil, false
	}
	var dayRows []DayRow
	if err := json.Unmarshal(data, &dayRows); err != nil {
		return nil, false
	}

	rows := make([]Stats.TripRow, 0, len(dayRows))
	for _, dayRow := range dayRows {
		rows = append(rows, dayRow.ToTripRow())
	}
	return rows, true
}

// SaveDay replaces a day's cache entry.
func (s *Store) SaveDay(date time.Time, rows []DayRow) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return os.WriteFile(s.dayPath(date), data, 0644)
}

func (s *Store) dayPath(date time.Time) string {
	return filepath.Join(s.Dir, fmt.Sprintf("schedule-%s.json", Stats.FormatDate(date)))
}
