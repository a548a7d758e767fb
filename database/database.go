package database

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/config"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		// map driver duplicate-key errors to gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(30 * time.Second)

	DB = db

	if err := Migrate(db); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate creates missing tables/columns. Safe to call repeatedly;
// the install endpoint relies on that.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.Parent{},
		&models.ParentStudent{},
		&models.Attendance{},
		&models.Grade{},
		&models.Payment{},
		&models.Book{},
		&models.BookLoan{},
		&models.Homework{},
		&models.HomeworkSubmission{},
		&models.Event{},
		&models.Announcement{},
		&models.Session{},
	)
}
