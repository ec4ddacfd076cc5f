package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlanType describes where a plan's text came from.
type PlanType string

const (
	PlanTypeAI     PlanType = "AI"     // Fully AI-generated text.
	PlanTypeManual PlanType = "MANUAL" // User-written text.
	PlanTypeHybrid PlanType = "HYBRID" // AI text edited by the user.
)

// PlanStatus describes a plan's lifecycle state.
type PlanStatus string

const (
	PlanStatusPendingAI PlanStatus = "PENDING_AI" // AI proposal awaiting acceptance.
	PlanStatusActive    PlanStatus = "ACTIVE"     // The note's current plan.
	// PlanStatusArchived is reserved for a future administrative
	// operation; no transition produces it today.
	PlanStatusArchived PlanStatus = "ARCHIVED"
)

// ErrInvalidPlanState indicates a plan mutation was attempted from a
// status that does not allow it.
var ErrInvalidPlanState = errors.New("invalid plan state")

// Plan represents a travel plan attached to a note. At most one plan per
// note may be ACTIVE at a time; the plans table carries a partial unique
// index on (note_id) WHERE status = 'ACTIVE' enforcing this.
type Plan struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	NoteID uint64 `gorm:"not null;index"`                                // Owning note ID.
	Note   *Note  `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"` // Owning note.

	PlanText string     `gorm:"type:text;not null"`        // Plan body text.
	Type     PlanType   `gorm:"type:varchar(16);not null"` // Origin type.
	Status   PlanStatus `gorm:"type:varchar(16);not null"` // Lifecycle status.

	GenerationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"` // Token identifying one generation attempt.

	GenerationMeta datatypes.JSON `gorm:"type:jsonb"` // AI model and token usage for AI-origin plans.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// NewAIPlan constructs an AI proposal in PENDING_AI status with a fresh
// generation ID.
func NewAIPlan(noteID uint64, planText string) *Plan {
	now := time.Now().UTC()
	return &Plan{
		NoteID:       noteID,
		PlanText:     planText,
		Type:         PlanTypeAI,
		Status:       PlanStatusPendingAI,
		GenerationID: uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewManualPlan constructs a user-written plan that is ACTIVE immediately.
func NewManualPlan(noteID uint64, planText string) *Plan {
	now := time.Now().UTC()
	return &Plan{
		NoteID:       noteID,
		PlanText:     planText,
		Type:         PlanTypeManual,
		Status:       PlanStatusActive,
		GenerationID: uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// AcceptProposal promotes a PENDING_AI proposal to ACTIVE without
// touching its text or type.
func (p *Plan) AcceptProposal() error {
	if p.Status != PlanStatusPendingAI {
		return fmt.Errorf("%w: cannot accept proposal in status %s", ErrInvalidPlanState, p.Status)
	}
	p.Status = PlanStatusActive
	return nil
}

// AcceptProposalAsHybrid promotes a PENDING_AI proposal to ACTIVE,
// replacing its text with the user's edit and widening the type to HYBRID.
func (p *Plan) AcceptProposalAsHybrid(newText string) error {
	if p.Status != PlanStatusPendingAI {
		return fmt.Errorf("%w: cannot accept proposal as hybrid in status %s", ErrInvalidPlanState, p.Status)
	}
	p.PlanText = newText
	p.Type = PlanTypeHybrid
	p.Status = PlanStatusActive
	return nil
}

// Update replaces the text of an ACTIVE plan. Editing an AI plan widens
// its type to HYBRID; MANUAL and HYBRID types never change.
func (p *Plan) Update(newText string) error {
	if p.Status != PlanStatusActive {
		return fmt.Errorf("%w: cannot update plan in status %s", ErrInvalidPlanState, p.Status)
	}
	p.PlanText = newText
	if p.Type == PlanTypeAI {
		p.Type = PlanTypeHybrid
	}
	return nil
}
