package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tjcsl/director/pkg/api"
	"github.com/tjcsl/director/pkg/auth"
	"github.com/tjcsl/director/pkg/config"
	"github.com/tjcsl/director/pkg/database"
	"github.com/tjcsl/director/pkg/database/repositories"
	"github.com/tjcsl/director/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	// Initialize database connection
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run database migrations
	if err := db.AutoMigrate(); err != nil {
		db.Close()
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	defer db.Close()

	// Seed the image/host catalogs and the initial admin if configured
	if err := db.BootstrapDefaultData(); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap default data")
	}
	if err := db.BootstrapInitialAdmin(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap initial admin")
	}

	// Initialize authentication services
	userRepo := repositories.NewUserRepository(db.DB)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	authSvc := auth.NewService(userRepo, jwtManager)

	// Initialize API server
	server := api.NewServer(cfg, db, authSvc, jwtManager)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received")

	// Give the server 30 seconds to finish current requests
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
