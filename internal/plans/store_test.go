package plans

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vibetravel/vibetravel/internal/models"
)

func TestStoreFindByGenerationMatchesAllKeys(t *testing.T) {
	conn := openTestDB(t)
	_, note := seedUserWithNote(t, conn)
	store := NewStore(conn)
	ctx := context.Background()

	proposal := models.NewAIPlan(note.ID, "proposal text")
	if err := store.Create(ctx, proposal); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, errFind := store.FindByGenerationIDNoteIDStatus(ctx, proposal.GenerationID, note.ID, models.PlanStatusPendingAI, false)
	if errFind != nil {
		t.Fatalf("find: %v", errFind)
	}
	if found.ID != proposal.ID {
		t.Fatalf("expected plan %d, got %d", proposal.ID, found.ID)
	}

	// Each key must match; a miss on any of them is ErrPlanNotFound.
	if _, err := store.FindByGenerationIDNoteIDStatus(ctx, uuid.New(), note.ID, models.PlanStatusPendingAI, false); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("wrong generation id: expected ErrPlanNotFound, got %v", err)
	}
	if _, err := store.FindByGenerationIDNoteIDStatus(ctx, proposal.GenerationID, note.ID+1, models.PlanStatusPendingAI, false); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("wrong note id: expected ErrPlanNotFound, got %v", err)
	}
	if _, err := store.FindByGenerationIDNoteIDStatus(ctx, proposal.GenerationID, note.ID, models.PlanStatusActive, false); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("wrong status: expected ErrPlanNotFound, got %v", err)
	}
}

func TestStoreFindLastUpdatedReturnsNilWhenNone(t *testing.T) {
	conn := openTestDB(t)
	_, note := seedUserWithNote(t, conn)
	store := NewStore(conn)

	plan, err := store.FindLastUpdatedByNoteIDStatus(context.Background(), note.ID, models.PlanStatusActive)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if plan != nil {
		t.Fatalf("expected nil, got plan %d", plan.ID)
	}
}

func TestStoreFindLastUpdatedPrefersLatest(t *testing.T) {
	conn := openTestDB(t)
	_, note := seedUserWithNote(t, conn)
	store := NewStore(conn)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	older := models.NewAIPlan(note.ID, "older proposal")
	older.CreatedAt = base
	older.UpdatedAt = base
	newer := models.NewAIPlan(note.ID, "newer proposal")
	newer.CreatedAt = base.Add(time.Hour)
	newer.UpdatedAt = base.Add(time.Hour)

	if err := store.Create(ctx, older); err != nil {
		t.Fatalf("create older: %v", err)
	}
	if err := store.Create(ctx, newer); err != nil {
		t.Fatalf("create newer: %v", err)
	}

	found, errFind := store.FindLastUpdatedByNoteIDStatus(ctx, note.ID, models.PlanStatusPendingAI)
	if errFind != nil {
		t.Fatalf("find: %v", errFind)
	}
	if found == nil || found.ID != newer.ID {
		t.Fatalf("expected plan %d, got %+v", newer.ID, found)
	}
}

func TestStoreSaveRefreshesUpdatedAt(t *testing.T) {
	conn := openTestDB(t)
	_, note := seedUserWithNote(t, conn)
	store := NewStore(conn)
	ctx := context.Background()

	plan := models.NewManualPlan(note.ID, "plan text")
	plan.UpdatedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := store.Create(ctx, plan); err != nil {
		t.Fatalf("create: %v", err)
	}

	before := plan.UpdatedAt
	plan.PlanText = "edited text"
	if err := store.Save(ctx, plan); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !plan.UpdatedAt.After(before) {
		t.Fatalf("expected updated_at to advance past %v, got %v", before, plan.UpdatedAt)
	}
}

func TestStoreTransactionRollsBack(t *testing.T) {
	conn := openTestDB(t)
	_, note := seedUserWithNote(t, conn)
	store := NewStore(conn)
	ctx := context.Background()

	boom := errors.New("boom")
	errTx := store.Transaction(ctx, func(tx *Store) error {
		if err := tx.Create(ctx, models.NewManualPlan(note.ID, "doomed")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(errTx, boom) {
		t.Fatalf("expected boom, got %v", errTx)
	}

	var count int64
	if err := conn.Model(&models.Plan{}).Where("note_id = ?", note.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, %d rows remain", count)
	}
}
