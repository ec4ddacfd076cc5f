package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vibetravel/vibetravel/internal/models"
	"github.com/vibetravel/vibetravel/internal/profiles"
	"gorm.io/gorm"
)

// ProfileHandler serves travel preference profile endpoints.
type ProfileHandler struct {
	profiles *profiles.Repository
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{profiles: profiles.NewRepository(db)}
}

// Get returns the authenticated user's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := getUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, errGet := h.profiles.GetByUserID(c.Request.Context(), userID)
	if errGet != nil {
		if errors.Is(errGet, profiles.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query profile failed"})
		return
	}
	c.JSON(http.StatusOK, formatProfile(profile))
}

// updateProfileRequest defines the request body for profile updates.
// Empty strings clear a preference.
type updateProfileRequest struct {
	TravelStyle   string `json:"travel_style"`
	PreferredPace string `json:"preferred_pace"`
	Budget        string `json:"budget"`
}

// Update replaces the authenticated user's travel preferences.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body updateProfileRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	style, okStyle := parseTravelStyle(body.TravelStyle)
	pace, okPace := parseTravelPace(body.PreferredPace)
	budget, okBudget := parseBudget(body.Budget)
	if !okStyle || !okPace || !okBudget {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preference value"})
		return
	}

	profile, errGet := h.profiles.GetByUserID(c.Request.Context(), userID)
	if errGet != nil {
		if errors.Is(errGet, profiles.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query profile failed"})
		return
	}

	if errUpdate := h.profiles.Update(c.Request.Context(), profile, style, pace, budget); errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update profile failed"})
		return
	}
	c.JSON(http.StatusOK, formatProfile(profile))
}

// formatProfile converts a profile model to a response payload.
func formatProfile(profile *models.UserProfile) gin.H {
	return gin.H{
		"travel_style":   profile.TravelStyle,
		"preferred_pace": profile.PreferredPace,
		"budget":         profile.Budget,
		"updated_at":     profile.UpdatedAt,
	}
}

func parseTravelStyle(raw string) (*models.TravelStyle, bool) {
	switch models.TravelStyle(strings.ToUpper(strings.TrimSpace(raw))) {
	case "":
		return nil, true
	case models.TravelStyleRelax, models.TravelStyleAdventure, models.TravelStyleCulture, models.TravelStyleParty:
		style := models.TravelStyle(strings.ToUpper(strings.TrimSpace(raw)))
		return &style, true
	default:
		return nil, false
	}
}

func parseTravelPace(raw string) (*models.TravelPace, bool) {
	switch models.TravelPace(strings.ToUpper(strings.TrimSpace(raw))) {
	case "":
		return nil, true
	case models.TravelPaceCalm, models.TravelPaceModerate, models.TravelPaceIntense:
		pace := models.TravelPace(strings.ToUpper(strings.TrimSpace(raw)))
		return &pace, true
	default:
		return nil, false
	}
}

func parseBudget(raw string) (*models.BudgetLevel, bool) {
	switch models.BudgetLevel(strings.ToUpper(strings.TrimSpace(raw))) {
	case "":
		return nil, true
	case models.BudgetLow, models.BudgetMedium, models.BudgetHigh:
		budget := models.BudgetLevel(strings.ToUpper(strings.TrimSpace(raw)))
		return &budget, true
	default:
		return nil, false
	}
}
