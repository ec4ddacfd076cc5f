package models

import (
	"time"

	"github.com/google/uuid"
)

// TravelStyle is a user's preferred kind of trip.
type TravelStyle string

const (
	TravelStyleRelax     TravelStyle = "RELAX"
	TravelStyleAdventure TravelStyle = "ADVENTURE"
	TravelStyleCulture   TravelStyle = "CULTURE"
	TravelStyleParty     TravelStyle = "PARTY"
)

// TravelPace is a user's preferred trip intensity.
type TravelPace string

const (
	TravelPaceCalm     TravelPace = "CALM"
	TravelPaceModerate TravelPace = "MODERATE"
	TravelPaceIntense  TravelPace = "INTENSE"
)

// BudgetLevel is a user's preferred spending level.
type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "LOW"
	BudgetMedium BudgetLevel = "MEDIUM"
	BudgetHigh   BudgetLevel = "HIGH"
)

// UserProfile stores a user's travel preferences, consumed by plan
// generation. One profile exists per user, created at registration.
type UserProfile struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"` // Owning user ID.

	TravelStyle   *TravelStyle `gorm:"type:varchar(16)"` // Preferred travel style, optional.
	PreferredPace *TravelPace  `gorm:"type:varchar(16)"` // Preferred pace, optional.
	Budget        *BudgetLevel `gorm:"type:varchar(16)"` // Preferred budget level, optional.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
