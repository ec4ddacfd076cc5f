package plans

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vibetravel/vibetravel/internal/ai"
	dbutil "github.com/vibetravel/vibetravel/internal/db"
	"github.com/vibetravel/vibetravel/internal/models"
	"github.com/vibetravel/vibetravel/internal/notes"
	"github.com/vibetravel/vibetravel/internal/profiles"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := dbutil.Open("file:" + filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if errMigrate := dbutil.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return conn
}

// limitToSingleConn forces all transactions through one connection so
// concurrent SQLite writers serialize instead of failing on a busy lock.
func limitToSingleConn(t *testing.T, conn *gorm.DB) {
	t.Helper()
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
}

func seedUserWithNote(t *testing.T, conn *gorm.DB) (uuid.UUID, *models.Note) {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		Password: "hash",
		Active:   true,
	}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := profiles.NewRepository(conn).Create(context.Background(), nil, user.ID); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	note := models.Note{
		UserID:         user.ID,
		Title:          "Trip " + uuid.NewString(),
		Place:          "Lisbon",
		DateFrom:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		DateTo:         time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		NumberOfPeople: 2,
		KeyIdeas:       "wine tasting, tram 28",
	}
	if err := conn.Create(&note).Error; err != nil {
		t.Fatalf("create note: %v", err)
	}
	return user.ID, &note
}

// fakeCompletion is a scripted CompletionService.
type fakeCompletion struct {
	mu         sync.Mutex
	text       string
	err        error
	calls      int
	lastPrompt ai.Prompt
}

func (f *fakeCompletion) GenerateCompletion(_ context.Context, prompt ai.Prompt) (ai.Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return ai.Completion{}, f.err
	}
	return ai.Completion{
		Text:  f.text,
		Model: prompt.Model,
		Usage: ai.Usage{PromptTokens: 120, CompletionTokens: 480, TotalTokens: 600},
	}, nil
}

func newTestUseCases(conn *gorm.DB, completion ai.CompletionService) *UseCases {
	return NewUseCases(
		NewStore(conn),
		notes.NewRepository(conn),
		profiles.NewRepository(conn),
		completion,
		nil,
		Config{Model: "test-model", TextMaxLength: 5000},
	)
}

func strPtr(s string) *string { return &s }
