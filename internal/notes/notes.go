// Package notes manages trip-planning notes, the parent aggregate of
// plans.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	dbutil "github.com/vibetravel/vibetravel/internal/db"
	"github.com/vibetravel/vibetravel/internal/models"
	"gorm.io/gorm"
)

// Validation limits for note fields.
const (
	TitleMinLength      = 3
	TitleMaxLength      = 255
	PlaceMinLength      = 3
	PlaceMaxLength      = 255
	MinPeople           = 1
	MaxPeople           = 20
	MaxTripDurationDays = 14
	KeyIdeasMaxLength   = 2000
)

// Domain failures of the notes subsystem.
var (
	ErrNoteNotFound  = errors.New("note not found")
	ErrTitleConflict = errors.New("a note with this title already exists")
	ErrInvalidNote   = errors.New("invalid note")
)

// Repository provides CRUD access to notes scoped by owner.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Validate checks field limits before persisting a note.
func Validate(note *models.Note) error {
	title := strings.TrimSpace(note.Title)
	if len(title) < TitleMinLength || len(title) > TitleMaxLength {
		return fmt.Errorf("%w: title must be %d-%d characters", ErrInvalidNote, TitleMinLength, TitleMaxLength)
	}
	place := strings.TrimSpace(note.Place)
	if len(place) < PlaceMinLength || len(place) > PlaceMaxLength {
		return fmt.Errorf("%w: place must be %d-%d characters", ErrInvalidNote, PlaceMinLength, PlaceMaxLength)
	}
	if note.DateTo.Before(note.DateFrom) {
		return fmt.Errorf("%w: date_to is before date_from", ErrInvalidNote)
	}
	if note.TripDuration() > MaxTripDurationDays {
		return fmt.Errorf("%w: trip longer than %d days", ErrInvalidNote, MaxTripDurationDays)
	}
	if note.NumberOfPeople < MinPeople || note.NumberOfPeople > MaxPeople {
		return fmt.Errorf("%w: number_of_people must be %d-%d", ErrInvalidNote, MinPeople, MaxPeople)
	}
	if len(note.KeyIdeas) > KeyIdeasMaxLength {
		return fmt.Errorf("%w: key_ideas longer than %d characters", ErrInvalidNote, KeyIdeasMaxLength)
	}
	return nil
}

// Create persists a new note. A duplicate (user, title) pair surfaces as
// ErrTitleConflict.
func (r *Repository) Create(ctx context.Context, note *models.Note) error {
	if err := Validate(note); err != nil {
		return err
	}
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now
	if errCreate := r.db.WithContext(ctx).Create(note).Error; errCreate != nil {
		if dbutil.IsUniqueViolation(errCreate) {
			return fmt.Errorf("%w: %q", ErrTitleConflict, note.Title)
		}
		return fmt.Errorf("notes: create: %w", errCreate)
	}
	return nil
}

// GetByID loads a note by ID, scoped to its owner. A note owned by a
// different user is indistinguishable from a missing one.
func (r *Repository) GetByID(ctx context.Context, noteID uint64, userID uuid.UUID) (*models.Note, error) {
	var note models.Note
	errFind := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", noteID, userID).
		First(&note).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNoteNotFound, noteID)
		}
		return nil, fmt.Errorf("notes: get: %w", errFind)
	}
	return &note, nil
}

// List returns a user's notes, newest first, optionally filtered by a
// case-insensitive title substring.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, searchTitle string) ([]models.Note, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if s := strings.TrimSpace(searchTitle); s != "" {
		pattern := dbutil.NormalizeLikePattern(r.db, "%"+s+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(r.db, "title"), pattern)
	}

	var rows []models.Note
	if errFind := q.Order("created_at DESC").Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("notes: list: %w", errFind)
	}
	return rows, nil
}

// Update persists changes to an owned note.
func (r *Repository) Update(ctx context.Context, note *models.Note) error {
	if err := Validate(note); err != nil {
		return err
	}
	note.UpdatedAt = time.Now().UTC()
	if errSave := r.db.WithContext(ctx).Save(note).Error; errSave != nil {
		if dbutil.IsUniqueViolation(errSave) {
			return fmt.Errorf("%w: %q", ErrTitleConflict, note.Title)
		}
		return fmt.Errorf("notes: update: %w", errSave)
	}
	return nil
}

// Delete removes an owned note and all of its plans.
func (r *Repository) Delete(ctx context.Context, noteID uint64, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note models.Note
		if errFind := tx.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrNoteNotFound, noteID)
			}
			return fmt.Errorf("notes: delete lookup: %w", errFind)
		}
		if errPlans := tx.Where("note_id = ?", noteID).Delete(&models.Plan{}).Error; errPlans != nil {
			return fmt.Errorf("notes: delete plans: %w", errPlans)
		}
		if errDelete := tx.Delete(&note).Error; errDelete != nil {
			return fmt.Errorf("notes: delete: %w", errDelete)
		}
		return nil
	})
}
