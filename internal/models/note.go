package models

import (
	"time"

	"github.com/google/uuid"
)

// Note represents a user's raw trip-planning note: destination, dates,
// party size, and free-form ideas. Plans are generated from notes.
type Note struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notes_user_title,priority:1"` // Owning user ID.

	Title string `gorm:"type:varchar(255);not null;uniqueIndex:idx_notes_user_title,priority:2"` // Trip title, unique per user.
	Place string `gorm:"type:varchar(255);not null"`                                             // Destination.

	DateFrom time.Time `gorm:"type:date;not null"` // Trip start date.
	DateTo   time.Time `gorm:"type:date;not null"` // Trip end date.

	NumberOfPeople int    `gorm:"not null"`            // Party size.
	KeyIdeas       string `gorm:"type:varchar(2000)"`  // Free-form ideas, optional.

	Plans []Plan `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"` // Plans generated for this note.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TripDuration returns the trip length in days, inclusive of both ends.
func (n *Note) TripDuration() int {
	return int(n.DateTo.Sub(n.DateFrom).Hours()/24) + 1
}
