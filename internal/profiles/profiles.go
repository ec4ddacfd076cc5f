// Package profiles manages per-user travel preference profiles.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vibetravel/vibetravel/internal/models"
	"gorm.io/gorm"
)

// ErrProfileNotFound indicates a user has no preference profile. Profiles
// are created at registration, so this is an internal precondition
// failure rather than a user-facing not-found.
var ErrProfileNotFound = errors.New("user profile not found")

// Repository provides access to user profiles.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists an empty profile for a user. It accepts an optional
// transaction handle so registration can create user and profile
// atomically; pass nil to use the repository's own connection.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.UserProfile, error) {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	now := time.Now().UTC()
	profile := models.UserProfile{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if errCreate := conn.WithContext(ctx).Create(&profile).Error; errCreate != nil {
		return nil, fmt.Errorf("profiles: create: %w", errCreate)
	}
	return &profile, nil
}

// GetByUserID loads a user's profile.
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	errFind := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrProfileNotFound, userID)
		}
		return nil, fmt.Errorf("profiles: get: %w", errFind)
	}
	return &profile, nil
}

// Update replaces the preference fields of an existing profile.
func (r *Repository) Update(ctx context.Context, profile *models.UserProfile, style *models.TravelStyle, pace *models.TravelPace, budget *models.BudgetLevel) error {
	profile.TravelStyle = style
	profile.PreferredPace = pace
	profile.Budget = budget
	profile.UpdatedAt = time.Now().UTC()
	if errSave := r.db.WithContext(ctx).Save(profile).Error; errSave != nil {
		return fmt.Errorf("profiles: update: %w", errSave)
	}
	return nil
}
