package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContextUserIDKey is the gin context key under which the auth
// middleware stores the authenticated user ID.
const ContextUserIDKey = "front.user_id"

// getUserID returns the authenticated user ID, or uuid.Nil when the
// request carries no valid session.
func getUserID(c *gin.Context) uuid.UUID {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return uuid.Nil
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// pathID parses the :id path parameter as an unsigned integer.
func pathID(c *gin.Context) (uint64, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, errParse := strconv.ParseUint(raw, 10, 64)
	if errParse != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// HealthHandler serves liveness checks.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz reports process and database health.
func (h *HealthHandler) Healthz(c *gin.Context) {
	sqlDB, errDB := h.db.DB()
	if errDB != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
