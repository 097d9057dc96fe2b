package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/atendoapp/agenda-api/internal/config"
	"github.com/atendoapp/agenda-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
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
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.AvailabilityWindow{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Guarda de concorrência no banco: duas reservas PENDING/CONFIRMED
	// nunca podem ocupar intervalos sobrepostos. O perdedor da corrida
	// recebe SQLSTATE 23P01 no INSERT (ver httperr.IsExclusionConflict).
	db.Exec(`
        ALTER TABLE bookings
        DROP CONSTRAINT IF EXISTS bookings_no_overlap
    `)
	db.Exec(`
        ALTER TABLE bookings
        ADD CONSTRAINT bookings_no_overlap
        EXCLUDE USING gist (tstzrange(start_time, end_time) WITH &&)
        WHERE (status IN ('PENDING', 'CONFIRMED'))
    `)

	return db
}
