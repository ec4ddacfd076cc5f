package plans

import (
	"context"
	"fmt"

	dbutil "github.com/vibetravel/vibetravel/internal/db"
	"github.com/vibetravel/vibetravel/internal/models"
)

// createOp is the closed set of transitions CreateOrAccept can perform.
// The input shape fully determines the variant; clients never choose.
type createOp int

const (
	opInvalid createOp = iota
	opAcceptAI
	opCreateHybrid
	opCreateManual
)

// selectOp maps the (generationID, planText) input shape onto an
// operation:
//
//	generation id only        -> accept the AI proposal as-is
//	generation id + text      -> accept the proposal with edited text
//	text only                 -> create a manual plan
//	neither                   -> invalid
func selectOp(in CreateOrAcceptInput) createOp {
	switch {
	case in.GenerationID != nil && in.PlanText == nil:
		return opAcceptAI
	case in.GenerationID != nil && in.PlanText != nil:
		return opCreateHybrid
	case in.GenerationID == nil && in.PlanText != nil:
		return opCreateManual
	default:
		return opInvalid
	}
}

// acceptProposal locks and loads the PENDING_AI proposal, applies mutate,
// and saves — all inside one transaction so a concurrent accept of the
// same generation ID either blocks on the row lock or observes the
// status already moved off PENDING_AI and fails with ErrPlanNotFound.
func (uc *UseCases) acceptProposal(ctx context.Context, in CreateOrAcceptInput, mutate func(*models.Plan) error) (*models.Plan, error) {
	var out *models.Plan
	errTx := uc.store.Transaction(ctx, func(tx *Store) error {
		plan, errFind := tx.FindByGenerationIDNoteIDStatus(ctx, *in.GenerationID, in.NoteID, models.PlanStatusPendingAI, true)
		if errFind != nil {
			return errFind
		}
		if errMutate := mutate(plan); errMutate != nil {
			return errMutate
		}
		if errSave := tx.Save(ctx, plan); errSave != nil {
			return errSave
		}
		out = plan
		return nil
	})
	if errTx != nil {
		// Promoting the proposal to ACTIVE trips the active-plan index
		// when the note already has an ACTIVE plan.
		if dbutil.IsUniqueViolation(errTx) {
			return nil, fmt.Errorf("%w: note %d", ErrPlanConflict, in.NoteID)
		}
		return nil, errTx
	}
	return out, nil
}

// runStrategy dispatches the selected operation.
func (uc *UseCases) runStrategy(ctx context.Context, op createOp, in CreateOrAcceptInput) (*models.Plan, error) {
	switch op {
	case opAcceptAI:
		return uc.acceptProposal(ctx, in, func(plan *models.Plan) error {
			return plan.AcceptProposal()
		})
	case opCreateHybrid:
		return uc.acceptProposal(ctx, in, func(plan *models.Plan) error {
			return plan.AcceptProposalAsHybrid(*in.PlanText)
		})
	case opCreateManual:
		plan := models.NewManualPlan(in.NoteID, *in.PlanText)
		if errCreate := uc.store.Create(ctx, plan); errCreate != nil {
			// The partial unique index on (note_id) WHERE status='ACTIVE'
			// closes the window between the conflict pre-check and this
			// insert; the generation id is freshly minted, so a unique
			// violation here can only be the active-plan index.
			if dbutil.IsUniqueViolation(errCreate) {
				return nil, fmt.Errorf("%w: note %d", ErrPlanConflict, in.NoteID)
			}
			return nil, fmt.Errorf("plans: create manual: %w", errCreate)
		}
		return plan, nil
	default:
		return nil, ErrValidation
	}
}
