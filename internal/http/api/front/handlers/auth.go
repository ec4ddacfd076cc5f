package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vibetravel/vibetravel/internal/config"
	dbutil "github.com/vibetravel/vibetravel/internal/db"
	"github.com/vibetravel/vibetravel/internal/models"
	"github.com/vibetravel/vibetravel/internal/profiles"
	"github.com/vibetravel/vibetravel/internal/security"
	"gorm.io/gorm"
)

// AuthHandler manages registration and login.
type AuthHandler struct {
	db       *gorm.DB
	jwtCfg   config.JWTConfig
	profiles *profiles.Repository
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{db: db, jwtCfg: jwtCfg, profiles: profiles.NewRepository(db)}
}

// credentialsRequest defines the request body for register and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user account together with its empty travel
// preference profile in one transaction.
func (h *AuthHandler) Register(c *gin.Context) {
	var body credentialsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid email is required"})
		return
	}
	if len(strings.TrimSpace(body.Password)) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		return
	}

	hash, errHash := security.HashPassword(body.Password)
	if errHash != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash password failed"})
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  hash,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	errTx := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if errCreate := tx.Create(&user).Error; errCreate != nil {
			return errCreate
		}
		_, errProfile := h.profiles.Create(c.Request.Context(), tx, user.ID)
		return errProfile
	})
	if errTx != nil {
		if dbutil.IsUniqueViolation(errTx) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create user failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
}

// Login verifies credentials and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var body credentialsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))

	var user models.User
	errFind := h.db.WithContext(c.Request.Context()).
		Where("email = ? AND active = ?", email, true).
		First(&user).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query user failed"})
		return
	}
	if !security.CheckPassword(user.Password, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, errSign := security.SignSessionToken(user.ID, h.jwtCfg)
	if errSign != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "expires_in": int(h.jwtCfg.Expiry.Seconds())})
}

// Me returns the authenticated user's account.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := getUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var user models.User
	if errFind := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", userID).Error; errFind != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email, "created_at": user.CreatedAt})
}
