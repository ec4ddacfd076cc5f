package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an end-user account stored in the database.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"` // Primary key.

	Email    string `gorm:"type:varchar(255);not null;uniqueIndex"` // Unique login email.
	Password string `gorm:"type:text;not null"`                     // Hashed password.

	Active bool `gorm:"not null;default:true"` // Whether the user can sign in.

	Notes   []Note       `gorm:"foreignKey:UserID"` // Notes owned by the user.
	Profile *UserProfile `gorm:"foreignKey:UserID"` // Travel preference profile.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
