package plans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	dbutil "github.com/vibetravel/vibetravel/internal/db"
	"github.com/vibetravel/vibetravel/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists plans and carries the row-locking protocol that
// serializes concurrent acceptance of the same proposal.
type Store struct {
	db *gorm.DB
}

// NewStore constructs a Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a Store bound to one database transaction.
// Row locks taken inside fn are held until it returns.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Create persists a new plan row.
func (s *Store) Create(ctx context.Context, plan *models.Plan) error {
	if errCreate := s.db.WithContext(ctx).Create(plan).Error; errCreate != nil {
		return errCreate
	}
	return nil
}

// FindByGenerationIDNoteIDStatus looks up the single plan matching all
// three keys. With forUpdate set the row is locked until the enclosing
// transaction ends; on SQLite the lock clause is skipped because the
// single-writer transaction already serializes the critical section.
func (s *Store) FindByGenerationIDNoteIDStatus(ctx context.Context, generationID uuid.UUID, noteID uint64, status models.PlanStatus, forUpdate bool) (*models.Plan, error) {
	q := s.db.WithContext(ctx).
		Where("generation_id = ? AND note_id = ? AND status = ?", generationID, noteID, status)
	if forUpdate && !dbutil.IsSQLite(s.db) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var plan models.Plan
	if errFind := q.First(&plan).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: generation %s on note %d", ErrPlanNotFound, generationID, noteID)
		}
		return nil, fmt.Errorf("plans: find by generation: %w", errFind)
	}
	return &plan, nil
}

// FindLastUpdatedByNoteIDStatus returns the most recently updated plan
// with the given status for a note, or nil when none exists.
func (s *Store) FindLastUpdatedByNoteIDStatus(ctx context.Context, noteID uint64, status models.PlanStatus) (*models.Plan, error) {
	var plan models.Plan
	errFind := s.db.WithContext(ctx).
		Where("note_id = ? AND status = ?", noteID, status).
		Order("updated_at DESC, id DESC").
		First(&plan).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("plans: find last updated: %w", errFind)
	}
	return &plan, nil
}

// Save writes an in-memory mutation back to storage, refreshing the
// updated_at timestamp.
func (s *Store) Save(ctx context.Context, plan *models.Plan) error {
	plan.UpdatedAt = time.Now().UTC()
	if errSave := s.db.WithContext(ctx).Save(plan).Error; errSave != nil {
		return fmt.Errorf("plans: save: %w", errSave)
	}
	return nil
}
