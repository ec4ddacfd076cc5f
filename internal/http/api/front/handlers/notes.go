package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vibetravel/vibetravel/internal/models"
	"github.com/vibetravel/vibetravel/internal/notes"
	"gorm.io/gorm"
)

// NoteHandler serves note CRUD endpoints.
type NoteHandler struct {
	notes *notes.Repository
}

// NewNoteHandler constructs a NoteHandler.
func NewNoteHandler(db *gorm.DB) *NoteHandler {
	return &NoteHandler{notes: notes.NewRepository(db)}
}

// noteRequest defines the request body for note creation and update.
type noteRequest struct {
	Title          string `json:"title"`
	Place          string `json:"place"`
	DateFrom       string `json:"date_from"` // YYYY-MM-DD
	DateTo         string `json:"date_to"`   // YYYY-MM-DD
	NumberOfPeople int    `json:"number_of_people"`
	KeyIdeas       string `json:"key_ideas"`
}

// apply copies a request body onto a note model.
func (body *noteRequest) apply(note *models.Note) error {
	dateFrom, errFrom := time.Parse("2006-01-02", strings.TrimSpace(body.DateFrom))
	if errFrom != nil {
		return errFrom
	}
	dateTo, errTo := time.Parse("2006-01-02", strings.TrimSpace(body.DateTo))
	if errTo != nil {
		return errTo
	}
	note.Title = strings.TrimSpace(body.Title)
	note.Place = strings.TrimSpace(body.Place)
	note.DateFrom = dateFrom
	note.DateTo = dateTo
	note.NumberOfPeople = body.NumberOfPeople
	note.KeyIdeas = strings.TrimSpace(body.KeyIdeas)
	return nil
}

// Create creates a note for the authenticated user.
func (h *NoteHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body noteRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	note := models.Note{UserID: userID}
	if errApply := body.apply(&note); errApply != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
		return
	}

	if errCreate := h.notes.Create(c.Request.Context(), &note); errCreate != nil {
		switch {
		case errors.Is(errCreate, notes.ErrInvalidNote):
			c.JSON(http.StatusBadRequest, gin.H{"error": errCreate.Error()})
		case errors.Is(errCreate, notes.ErrTitleConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "a note with this title already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create note failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, formatNote(&note))
}

// List returns the user's notes, optionally filtered by title.
func (h *NoteHandler) List(c *gin.Context) {
	userID := getUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rows, errList := h.notes.List(c.Request.Context(), userID, c.Query("search"))
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list notes failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, formatNote(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"notes": out})
}

// Get returns one owned note.
func (h *NoteHandler) Get(c *gin.Context) {
	userID := getUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	noteID, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	note, errGet := h.notes.GetByID(c.Request.Context(), noteID, userID)
	if errGet != nil {
		if errors.Is(errGet, notes.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query note failed"})
		return
	}
	c.JSON(http.StatusOK, formatNote(note))
}

// Update replaces an owned note's fields.
func (h *NoteHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	noteID, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	var body noteRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	note, errGet := h.notes.GetByID(c.Request.Context(), noteID, userID)
	if errGet != nil {
		if errors.Is(errGet, notes.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query note failed"})
		return
	}

	if errApply := body.apply(note); errApply != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
		return
	}

	if errUpdate := h.notes.Update(c.Request.Context(), note); errUpdate != nil {
		switch {
		case errors.Is(errUpdate, notes.ErrInvalidNote):
			c.JSON(http.StatusBadRequest, gin.H{"error": errUpdate.Error()})
		case errors.Is(errUpdate, notes.ErrTitleConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "a note with this title already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update note failed"})
		}
		return
	}
	c.JSON(http.StatusOK, formatNote(note))
}

// Delete removes an owned note and its plans.
func (h *NoteHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	noteID, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	if errDelete := h.notes.Delete(c.Request.Context(), noteID, userID); errDelete != nil {
		if errors.Is(errDelete, notes.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete note failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// formatNote converts a note model to a response payload.
func formatNote(note *models.Note) gin.H {
	return gin.H{
		"id":               note.ID,
		"title":            note.Title,
		"place":            note.Place,
		"date_from":        note.DateFrom.Format("2006-01-02"),
		"date_to":          note.DateTo.Format("2006-01-02"),
		"number_of_people": note.NumberOfPeople,
		"key_ideas":        note.KeyIdeas,
		"created_at":       note.CreatedAt,
		"updated_at":       note.UpdatedAt,
	}
}
