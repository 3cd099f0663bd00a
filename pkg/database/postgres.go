package database

import (
	"log"
	"time"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Unique-index violations surface as gorm.ErrDuplicatedKey so the
		// admission path can tell a duplicate claim from an infra failure.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.AutoMigrate(
		&models.Event{},
		&models.Session{},
		&models.Registration{},
		&models.Attendee{},
		&models.Exhibitor{},
		&models.Speaker{},
		&models.Conversation{},
		&models.Block{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// One active claim per actor per resource. Partial so cancelled rows do
	// not block a re-registration.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_registration_active_event
		ON registrations (event_id, actor_id)
		WHERE session_id IS NULL AND status <> 'cancelled'
	`)
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_registration_active_session
		ON registrations (session_id, actor_id)
		WHERE session_id IS NOT NULL AND status <> 'cancelled'
	`)

	return db
}
