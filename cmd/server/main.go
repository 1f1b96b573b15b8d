package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/puzzlekeeper/puzzle-api/internal/auth"
	"github.com/puzzlekeeper/puzzle-api/internal/config"
	"github.com/puzzlekeeper/puzzle-api/internal/constants"
	"github.com/puzzlekeeper/puzzle-api/internal/database"
	"github.com/puzzlekeeper/puzzle-api/internal/logging"
	"github.com/puzzlekeeper/puzzle-api/internal/repository"
	"github.com/puzzlekeeper/puzzle-api/internal/router"
	"github.com/puzzlekeeper/puzzle-api/internal/services"
	"github.com/puzzlekeeper/puzzle-api/internal/session"
	"github.com/puzzlekeeper/puzzle-api/internal/storage"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	gin.SetMode(cfg.GinMode)
	logger := logging.New(os.Stdout, cfg.Production())
	ctx := context.Background()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := session.NewStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}

	images, err := newImageStore(ctx, cfg, db)
	if err != nil {
		log.Fatalf("Failed to create image store: %v", err)
	}

	// Initialize repositories and services
	users := repository.NewUserRepository(db)
	responses := repository.NewMovieResponseRepository(db)
	puzzles := repository.NewPuzzleRepository(db)
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), constants.TokenTTL)

	r := router.NewRouter(router.Dependencies{
		Config:         cfg,
		Logger:         logger,
		SessionStore:   store,
		Tokens:         tokens,
		Accounts:       services.NewAccountService(users, responses, tokens, logger),
		Puzzles:        services.NewPuzzleService(puzzles, images, logger),
		MovieResponses: services.NewMovieResponseService(responses, users, logger),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info(ctx, "server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	logger.Info(ctx, "server stopped")
}

func newImageStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (storage.ImageStore, error) {
	if cfg.ImageStore == "s3" {
		s3Store, err := storage.NewS3ImageStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s3Store, nil
	}
	return storage.NewDBImageStore(db), nil
}
