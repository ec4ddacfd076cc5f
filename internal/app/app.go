// Package app wires configuration, storage, the AI backend, and the
// HTTP API into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vibetravel/vibetravel/internal/ai"
	"github.com/vibetravel/vibetravel/internal/config"
	"github.com/vibetravel/vibetravel/internal/db"
	"github.com/vibetravel/vibetravel/internal/http/api/front"
	"github.com/vibetravel/vibetravel/internal/notes"
	"github.com/vibetravel/vibetravel/internal/plans"
	"github.com/vibetravel/vibetravel/internal/profiles"
	"github.com/vibetravel/vibetravel/internal/ratelimit"

	log "github.com/sirupsen/logrus"
)

// Migrate opens the database and runs migrations.
func Migrate(ctx context.Context, cfg config.AppConfig) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	dsn, err := config.LoadDatabaseDSN(configPath)
	if err != nil {
		return err
	}
	conn, err := db.Open(dsn)
	if err != nil {
		return err
	}
	return db.Migrate(conn)
}

// RunServer boots the API server with database-backed components and
// serves until ctx is cancelled.
func RunServer(ctx context.Context, cfg config.AppConfig, port int) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	dsn, err := config.LoadDatabaseDSN(configPath)
	if err != nil {
		return err
	}
	conn, err := db.Open(dsn)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}

	jwtCfg, _ := config.LoadJWTConfig(configPath)
	if jwtCfg.Secret == "" {
		return fmt.Errorf("jwt secret is required (set `jwt.secret` or env %s)", config.EnvJWTSecret)
	}
	openRouterCfg, _ := config.LoadOpenRouterConfig(configPath)
	plansCfg, _ := config.LoadPlansConfig(configPath)

	completion, errCompletion := buildCompletionService(openRouterCfg)
	if errCompletion != nil {
		return errCompletion
	}

	planUseCases := plans.NewUseCases(
		plans.NewStore(conn),
		notes.NewRepository(conn),
		profiles.NewRepository(conn),
		completion,
		ratelimit.NewMemoryLimiter(time.Minute),
		plans.Config{
			Model:             openRouterCfg.Model,
			TextMaxLength:     plansCfg.TextMaxLength,
			GeneratePerMinute: plansCfg.GeneratePerMinute,
		},
	)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	front.RegisterFrontRoutes(engine, conn, jwtCfg, planUseCases)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("starting server on %s with config=%s", server.Addr, configPath)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return errShutdown
		}
		return nil
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}

// buildCompletionService picks the OpenRouter client when an API key is
// configured and the mock backend otherwise.
func buildCompletionService(cfg config.OpenRouterConfig) (ai.CompletionService, error) {
	if cfg.APIKey == "" {
		log.Warn("no OpenRouter API key configured, using mock completion service")
		return ai.NewMockService(), nil
	}
	return ai.NewOpenRouterService(cfg)
}
