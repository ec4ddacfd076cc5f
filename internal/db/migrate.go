package db

import (
	"fmt"

	"github.com/vibetravel/vibetravel/internal/models"
	"gorm.io/gorm"
)

// Migrate runs database migrations for the current dialect.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}

	if errAutoMigrate := conn.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Note{},
		&models.Plan{},
	); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}

	// The single-ACTIVE-plan invariant is enforced here rather than in
	// application logic: a concurrent manual create that slips past the
	// conflict check hits this index instead of inserting a second
	// ACTIVE row. Partial indexes work on both supported dialects.
	if errIndex := conn.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_plans_note_active
		ON plans (note_id) WHERE status = 'ACTIVE'
	`).Error; errIndex != nil {
		return fmt.Errorf("db: create active plan index: %w", errIndex)
	}

	return nil
}
