// Package front registers the user-facing HTTP API.
package front

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vibetravel/vibetravel/internal/config"
	"github.com/vibetravel/vibetravel/internal/http/api/front/handlers"
	"github.com/vibetravel/vibetravel/internal/plans"
	"github.com/vibetravel/vibetravel/internal/security"
	"gorm.io/gorm"
)

// RegisterFrontRoutes registers routes, middleware, and handlers for the
// user-facing API.
func RegisterFrontRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, planUseCases *plans.UseCases) {
	if r == nil || db == nil {
		return
	}

	healthHandler := handlers.NewHealthHandler(db)
	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group("/v1")

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(authMiddleware(jwtCfg))

	authed.GET("/auth/me", authHandler.Me)

	profileHandler := handlers.NewProfileHandler(db)
	authed.GET("/profile", profileHandler.Get)
	authed.PUT("/profile", profileHandler.Update)

	noteHandler := handlers.NewNoteHandler(db)
	authed.POST("/notes", noteHandler.Create)
	authed.GET("/notes", noteHandler.List)
	authed.GET("/notes/:id", noteHandler.Get)
	authed.PUT("/notes/:id", noteHandler.Update)
	authed.DELETE("/notes/:id", noteHandler.Delete)

	planHandler := handlers.NewPlanHandler(planUseCases)
	authed.POST("/notes/:id/plan/generate", planHandler.Generate)
	authed.POST("/notes/:id/plan", planHandler.CreateOrAccept)
	authed.GET("/notes/:id/plan", planHandler.GetActive)
	authed.PUT("/notes/:id/plan", planHandler.Update)
}

// authMiddleware validates the bearer token and stores the user ID in
// the request context.
func authMiddleware(jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		token := ""
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, errParse := security.ParseSessionToken(token, jwtCfg)
		if errParse != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(handlers.ContextUserIDKey, userID)
		c.Next()
	}
}
