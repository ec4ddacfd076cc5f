package plans

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vibetravel/vibetravel/internal/ai"
	"github.com/vibetravel/vibetravel/internal/models"
	"github.com/vibetravel/vibetravel/internal/notes"
	"github.com/vibetravel/vibetravel/internal/profiles"
	"github.com/vibetravel/vibetravel/internal/ratelimit"
	"gorm.io/datatypes"

	log "github.com/sirupsen/logrus"
)

// Config tunes the plan use cases.
type Config struct {
	Model             string // Completion model for generation.
	TextMaxLength     int    // Upper bound on plan text length.
	GeneratePerMinute int    // Per-user generation throttle; 0 disables.
}

// UseCases orchestrates plan generation, creation, acceptance, retrieval,
// and editing against the store and its collaborators.
type UseCases struct {
	store    *Store
	notes    *notes.Repository
	profiles *profiles.Repository
	ai       ai.CompletionService
	limiter  ratelimit.Limiter

	cfg Config
}

// NewUseCases constructs the plan use cases. A nil limiter disables the
// generation throttle.
func NewUseCases(store *Store, noteRepo *notes.Repository, profileRepo *profiles.Repository, completion ai.CompletionService, limiter ratelimit.Limiter, cfg Config) *UseCases {
	return &UseCases{
		store:    store,
		notes:    noteRepo,
		profiles: profileRepo,
		ai:       completion,
		limiter:  limiter,
		cfg:      cfg,
	}
}

// PlanDTO is the outward representation of a plan.
type PlanDTO struct {
	ID           uint64            `json:"id"`
	NoteID       uint64            `json:"note_id"`
	PlanText     string            `json:"plan_text"`
	Type         models.PlanType   `json:"type"`
	Status       models.PlanStatus `json:"status"`
	GenerationID uuid.UUID         `json:"generation_id"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// GenerateResult is the outward representation of a fresh AI proposal.
// It is a proposal, not the note's active plan.
type GenerateResult struct {
	GenerationID uuid.UUID         `json:"generation_id"`
	PlanText     string            `json:"plan_text"`
	Status       models.PlanStatus `json:"status"`
}

// CreateOrAcceptInput carries the ambiguous client input for
// CreateOrAccept; the combination of optional fields selects the
// transition (see selectOp).
type CreateOrAcceptInput struct {
	NoteID       uint64
	UserID       uuid.UUID
	GenerationID *uuid.UUID
	PlanText     *string
}

// toDTO converts a plan entity to its outward form.
func toDTO(plan *models.Plan) *PlanDTO {
	return &PlanDTO{
		ID:           plan.ID,
		NoteID:       plan.NoteID,
		PlanText:     plan.PlanText,
		Type:         plan.Type,
		Status:       plan.Status,
		GenerationID: plan.GenerationID,
		CreatedAt:    plan.CreatedAt,
		UpdatedAt:    plan.UpdatedAt,
	}
}

// validatePlanText enforces the configured plan text bounds.
func (uc *UseCases) validatePlanText(text string) error {
	if text == "" {
		return fmt.Errorf("%w: plan_text is empty", ErrValidation)
	}
	if len(text) > uc.cfg.TextMaxLength {
		return fmt.Errorf("%w: plan_text longer than %d characters", ErrValidation, uc.cfg.TextMaxLength)
	}
	return nil
}

// Generate produces an AI plan proposal for a note: it verifies note
// ownership, loads the requester's preference profile, asks the
// completion service for a plan, and persists the result as PENDING_AI.
func (uc *UseCases) Generate(ctx context.Context, noteID uint64, userID uuid.UUID) (*GenerateResult, error) {
	note, errNote := uc.notes.GetByID(ctx, noteID, userID)
	if errNote != nil {
		return nil, errNote
	}

	if errLimit := uc.checkGenerateLimit(ctx, userID); errLimit != nil {
		return nil, errLimit
	}

	// A missing profile is a precondition failure, never defaulted:
	// registration guarantees one exists.
	profile, errProfile := uc.profiles.GetByUserID(ctx, userID)
	if errProfile != nil {
		return nil, errProfile
	}

	prompt := buildPrompt(note, profile, uc.cfg.Model, uc.cfg.TextMaxLength)

	completion, errGen := uc.ai.GenerateCompletion(ctx, prompt)
	if errGen != nil {
		log.WithError(errGen).Errorf("plan generation failed for note %d", noteID)
		return nil, &GenerationError{NoteID: noteID, Err: errGen}
	}

	plan := models.NewAIPlan(noteID, completion.Text)
	plan.GenerationMeta = generationMeta(completion)
	if errCreate := uc.store.Create(ctx, plan); errCreate != nil {
		return nil, fmt.Errorf("plans: store proposal: %w", errCreate)
	}

	log.Infof("generated plan proposal %s for note %d (%d chars)", plan.GenerationID, noteID, len(plan.PlanText))
	return &GenerateResult{
		GenerationID: plan.GenerationID,
		PlanText:     plan.PlanText,
		Status:       plan.Status,
	}, nil
}

// checkGenerateLimit enforces the per-user generation throttle.
func (uc *UseCases) checkGenerateLimit(ctx context.Context, userID uuid.UUID) error {
	if uc.limiter == nil || uc.cfg.GeneratePerMinute <= 0 {
		return nil
	}
	result, errAllow := uc.limiter.Allow(ctx, ratelimit.UserKey("plan-generate", userID), uc.cfg.GeneratePerMinute, time.Now())
	if errAllow != nil {
		return fmt.Errorf("plans: rate limit check: %w", errAllow)
	}
	if !result.Allowed {
		log.Warnf("plan generation throttled for user %s until %s", userID, result.Reset.Format(time.RFC3339))
		return fmt.Errorf("%w: retry after %s", ErrRateLimited, result.Reset.Format(time.RFC3339))
	}
	return nil
}

// generationMeta records which model produced the text and what it cost.
func generationMeta(completion ai.Completion) datatypes.JSON {
	meta, errMarshal := json.Marshal(map[string]any{
		"model":             completion.Model,
		"prompt_tokens":     completion.Usage.PromptTokens,
		"completion_tokens": completion.Usage.CompletionTokens,
		"total_tokens":      completion.Usage.TotalTokens,
	})
	if errMarshal != nil {
		return nil
	}
	return datatypes.JSON(meta)
}

// CreateOrAccept creates a manual plan or accepts an AI proposal,
// depending on the input shape. The active-plan conflict check runs only
// on the manual path: accepting a specific proposal is identified by its
// generation ID and is not blocked by an unrelated ACTIVE plan.
func (uc *UseCases) CreateOrAccept(ctx context.Context, in CreateOrAcceptInput) (*PlanDTO, error) {
	op := selectOp(in)
	if op == opInvalid {
		return nil, fmt.Errorf("%w: either generation_id or plan_text is required", ErrValidation)
	}
	if in.PlanText != nil {
		if errText := uc.validatePlanText(*in.PlanText); errText != nil {
			return nil, errText
		}
	}

	if _, errNote := uc.notes.GetByID(ctx, in.NoteID, in.UserID); errNote != nil {
		return nil, errNote
	}

	if op == opCreateManual {
		active, errActive := uc.store.FindLastUpdatedByNoteIDStatus(ctx, in.NoteID, models.PlanStatusActive)
		if errActive != nil {
			return nil, errActive
		}
		if active != nil {
			return nil, fmt.Errorf("%w: note %d", ErrPlanConflict, in.NoteID)
		}
	}

	plan, errRun := uc.runStrategy(ctx, op, in)
	if errRun != nil {
		return nil, errRun
	}
	return toDTO(plan), nil
}

// GetActive returns the note's current ACTIVE plan.
func (uc *UseCases) GetActive(ctx context.Context, noteID uint64, userID uuid.UUID) (*PlanDTO, error) {
	if _, errNote := uc.notes.GetByID(ctx, noteID, userID); errNote != nil {
		return nil, errNote
	}

	plan, errFind := uc.store.FindLastUpdatedByNoteIDStatus(ctx, noteID, models.PlanStatusActive)
	if errFind != nil {
		return nil, errFind
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: note %d", ErrActivePlanNotFound, noteID)
	}
	return toDTO(plan), nil
}

// Update replaces the text of the note's ACTIVE plan, widening an AI
// plan to HYBRID.
func (uc *UseCases) Update(ctx context.Context, noteID uint64, userID uuid.UUID, planText string) (*PlanDTO, error) {
	if errText := uc.validatePlanText(planText); errText != nil {
		return nil, errText
	}
	if _, errNote := uc.notes.GetByID(ctx, noteID, userID); errNote != nil {
		return nil, errNote
	}

	plan, errFind := uc.store.FindLastUpdatedByNoteIDStatus(ctx, noteID, models.PlanStatusActive)
	if errFind != nil {
		return nil, errFind
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: note %d", ErrActivePlanNotFound, noteID)
	}

	if errUpdate := plan.Update(planText); errUpdate != nil {
		return nil, errUpdate
	}
	if errSave := uc.store.Save(ctx, plan); errSave != nil {
		return nil, errSave
	}
	return toDTO(plan), nil
}
