package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vibetravel/vibetravel/internal/ai"
	"github.com/vibetravel/vibetravel/internal/models"
	"github.com/vibetravel/vibetravel/internal/notes"
	"github.com/vibetravel/vibetravel/internal/plans"
	"github.com/vibetravel/vibetravel/internal/profiles"
)

// PlanHandler serves plan lifecycle endpoints under /notes/:id/plan.
type PlanHandler struct {
	useCases *plans.UseCases
}

// NewPlanHandler constructs a PlanHandler.
func NewPlanHandler(useCases *plans.UseCases) *PlanHandler {
	return &PlanHandler{useCases: useCases}
}

// Generate creates an AI plan proposal for a note.
func (h *PlanHandler) Generate(c *gin.Context) {
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

	result, errGenerate := h.useCases.Generate(c.Request.Context(), noteID, userID)
	if errGenerate != nil {
		switch {
		case errors.Is(errGenerate, notes.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		case errors.Is(errGenerate, plans.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many generation requests, slow down"})
		case errors.Is(errGenerate, ai.ErrServiceTimeout):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "plan generation timed out"})
		case errors.Is(errGenerate, ai.ErrServiceUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "plan generation service unavailable"})
		case errors.Is(errGenerate, profiles.ErrProfileNotFound):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user profile missing"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "plan generation failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// createOrAcceptRequest defines the request body for plan creation and
// proposal acceptance. Which transition runs is derived from which
// fields are present, not chosen by the client.
type createOrAcceptRequest struct {
	GenerationID string `json:"generation_id"`
	PlanText     string `json:"plan_text"`
}

// CreateOrAccept creates a manual plan, accepts an AI proposal, or
// accepts it with edits.
func (h *PlanHandler) CreateOrAccept(c *gin.Context) {
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

	var body createOrAcceptRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	in := plans.CreateOrAcceptInput{NoteID: noteID, UserID: userID}
	if raw := strings.TrimSpace(body.GenerationID); raw != "" {
		generationID, errParse := uuid.Parse(raw)
		if errParse != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid generation_id"})
			return
		}
		in.GenerationID = &generationID
	}
	if text := body.PlanText; strings.TrimSpace(text) != "" {
		in.PlanText = &text
	}

	plan, errCreate := h.useCases.CreateOrAccept(c.Request.Context(), in)
	if errCreate != nil {
		switch {
		case errors.Is(errCreate, plans.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": errCreate.Error()})
		case errors.Is(errCreate, notes.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		case errors.Is(errCreate, plans.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "plan proposal not found"})
		case errors.Is(errCreate, plans.ErrPlanConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "an active plan already exists for this note"})
		case errors.Is(errCreate, models.ErrInvalidPlanState):
			c.JSON(http.StatusConflict, gin.H{"error": "plan is not in an acceptable state"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create plan failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetActive returns the note's active plan; absence is 204, not an error.
func (h *PlanHandler) GetActive(c *gin.Context) {
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

	plan, errGet := h.useCases.GetActive(c.Request.Context(), noteID, userID)
	if errGet != nil {
		switch {
		case errors.Is(errGet, notes.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		case errors.Is(errGet, plans.ErrActivePlanNotFound):
			c.Status(http.StatusNoContent)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query plan failed"})
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

// updatePlanRequest defines the request body for plan updates.
type updatePlanRequest struct {
	PlanText string `json:"plan_text"`
}

// Update replaces the text of the note's active plan.
func (h *PlanHandler) Update(c *gin.Context) {
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

	var body updatePlanRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	plan, errUpdate := h.useCases.Update(c.Request.Context(), noteID, userID, body.PlanText)
	if errUpdate != nil {
		switch {
		case errors.Is(errUpdate, plans.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": errUpdate.Error()})
		case errors.Is(errUpdate, notes.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		case errors.Is(errUpdate, plans.ErrActivePlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no active plan for this note"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update plan failed"})
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}
