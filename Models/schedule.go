package Models

import (
	"context"

	"NanYang/Stats"

	"gorm.io/gorm"
)

// ScheduleRow is one lorry's day in the schedules table. The columns mirror
// the flattened shape the planner writes: five completion/commission pairs
// plus toll and petrol amounts, all stored as text because the upstream
// editors are not consistent about types.
type ScheduleRow struct {
	gorm.Model
	LorryPlate   string `json:"lorry_plate" gorm:"column:lorry_plate;index"`
	WorkDate     string `json:"work_date" gorm:"column:work_date;index"` // YYYY-MM-DD
	T1Completed  string `json:"t1_completed" gorm:"column:t1_completed"`
	T1Commission string `json:"t1_commission" gorm:"column:t1_commission"`
	T2Completed  string `json:"t2_completed" gorm:"column:t2_completed"`
	T2Commission string `json:"t2_commission" gorm:"column:t2_commission"`
	T3Completed  string `json:"t3_completed" gorm:"column:t3_completed"`
	T3Commission string `json:"t3_commission" gorm:"column:t3_commission"`
	T4Completed  string `json:"t4_completed" gorm:"column:t4_completed"`
	T4Commission string `json:"t4_commission" gorm:"column:t4_commission"`
	T5Completed  string `json:"t5_completed" gorm:"column:t5_completed"`
	T5Commission string `json:"t5_commission" gorm:"column:t5_commission"`
	TolAmount    string `json:"tol_amount" gorm:"column:tol_amount"`
	PetrolAmount string `json:"petrol_amount" gorm:"column:petrol_amount"`
}

// TableName specifies the table name for the ScheduleRow model
func (ScheduleRow) TableName() string {
	return "schedules"
}

// ToTripRow coerces the stored text columns into a typed trip row.
func (r ScheduleRow) ToTripRow() Stats.TripRow {
	completed := [5]string{r.T1Completed, r.T2Completed, r.T3Completed, r.T4Completed, r.T5Completed}
	commission := [5]string{r.T1Commission, r.T2Commission, r.T3Commission, r.T4Commission, r.T5Commission}

	row := Stats.TripRow{
		Plate: r.LorryPlate,
		Toll:  Stats.ToNumber(r.TolAmount),
		Fuel:  Stats.ToNumber(r.PetrolAmount),
	}
	for i := 0; i < 5; i++ {
		row.Slots[i] = Stats.TripSlot{
			Completed:  Stats.ToBool(completed[i]),
			Commission: Stats.ToNumber(commission[i]),
		}
	}
	return row
}

// ScheduleStore queries the schedules table and is the primary row source
// for the aggregation pipeline.
type ScheduleStore struct {
	DB *gorm.DB
}

func NewScheduleStore(db *gorm.DB) *ScheduleStore {
	return &ScheduleStore{DB: db}
}

// FetchRange returns every schedule row whose work date falls in the range.
func (s *ScheduleStore) FetchRange(ctx context.Context, r Stats.DateRange) ([]Stats.TripRow, error) {
	var records []ScheduleRow
	err := s.DB.WithContext(ctx).
		Where("work_date >= ? AND work_date <= ?", Stats.FormatDate(r.Start), Stats.FormatDate(r.End)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	rows := make([]Stats.TripRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.ToTripRow())
	}
	return rows, nil
}

// RowsForDate returns the stored rows for a single day, for the planner view.
func (s *ScheduleStore) RowsForDate(ctx context.Context, date string) ([]ScheduleRow, error) {
	var records []ScheduleRow
	err := s.DB.WithContext(ctx).Where("work_date = ?", date).Find(&records).Error
	return records, err
}

// ReplaceDay swaps out a day's schedule in one transaction, the same way the
// planner saves: delete what was there, insert the new rows.
func (s *ScheduleStore) ReplaceDay(ctx context.Context, date string, records []ScheduleRow) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_date = ?", date).Delete(&ScheduleRow{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		for i := range records {
			records[i].ID = 0
			records[i].WorkDate = date
		}
		return tx.Create(&records).Error
	})
}
