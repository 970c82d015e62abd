package Models

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the sqlite database and migrates the schedule and config
// tables. The path comes from the environment so deployments can point the
// service at a shared volume.
func Connect(dbPath string) error {
	connection, err := gorm.Open(sqlite.Open(dbPath))
	if err != nil {
		return err
	}
	DB = connection

	if err := DB.AutoMigrate(&ScheduleRow{}, &FleetConfig{}); err != nil {
		log.Println("migration error:", err)
		return err
	}
	return nil
}
