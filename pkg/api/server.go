package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tjcsl/director/pkg/api/handlers"
	"github.com/tjcsl/director/pkg/auth"
	"github.com/tjcsl/director/pkg/config"
	"github.com/tjcsl/director/pkg/database"
	"github.com/tjcsl/director/pkg/database/repositories"
)

// Server represents the API server
type Server struct {
	config     *config.Config
	db         *database.DB
	authSvc    *auth.Service
	jwtManager *auth.JWTManager
	router     *gin.Engine
	httpServer *http.Server

	sessionHandlers  *handlers.SessionHandlers
	siteHandlers     *handlers.SiteHandlers
	domainHandlers   *handlers.DomainHandlers
	databaseHandlers *handlers.DatabaseHandlers
	imageHandlers    *handlers.ImageHandlers
	limitsHandlers   *handlers.LimitsHandlers
	formHandlers     *handlers.FormHandlers
	userHandlers     *handlers.UserHandlers
}

// NewServer creates a new API server instance
func NewServer(cfg *config.Config, db *database.DB, authSvc *auth.Service, jwtManager *auth.JWTManager) *Server {
	userRepo := repositories.NewUserRepository(db.DB)
	siteRepo := repositories.NewSiteRepository(db.DB)
	domainRepo := repositories.NewDomainRepository(db.DB)
	hostRepo := repositories.NewDatabaseHostRepository(db.DB)
	imageRepo := repositories.NewDockerImageRepository(db.DB)

	server := &Server{
		config:     cfg,
		db:         db,
		authSvc:    authSvc,
		jwtManager: jwtManager,

		sessionHandlers:  handlers.NewSessionHandlers(authSvc),
		siteHandlers:     handlers.NewSiteHandlers(siteRepo, userRepo),
		domainHandlers:   handlers.NewDomainHandlers(siteRepo, domainRepo, userRepo),
		databaseHandlers: handlers.NewDatabaseHandlers(siteRepo, hostRepo, userRepo),
		imageHandlers:    handlers.NewImageHandlers(siteRepo, imageRepo, userRepo),
		limitsHandlers:   handlers.NewLimitsHandlers(siteRepo),
		formHandlers:     handlers.NewFormHandlers(userRepo, hostRepo, imageRepo, cfg.Sites),
		userHandlers:     handlers.NewUserHandlers(userRepo, authSvc),
	}

	// Configure gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router = gin.New()

	// Global middleware
	s.router.Use(s.loggerMiddleware())
	s.router.Use(gin.Recovery())
	s.router.Use(s.corsMiddleware())
	s.router.Use(s.errorHandlerMiddleware())

	// Health endpoints
	s.router.GET("/health", s.healthHandler)
	s.router.GET("/ready", s.readinessHandler)

	v1 := s.router.Group("/api/v1")
	{
		// Public endpoints (no authentication required)
		v1.GET("/health", s.healthHandler)
		v1.POST("/sessions", s.sessionHandlers.Login)

		// Protected endpoints (authentication required)
		protected := v1.Group("/")
		protected.Use(auth.JWTMiddleware(s.jwtManager))
		{
			protected.GET("/forms/:form", s.formHandlers.GetForm)

			protected.GET("/sites", s.siteHandlers.ListSites)
			protected.POST("/sites", s.siteHandlers.CreateSite)
			protected.GET("/sites/:id", s.siteHandlers.GetSite)
			protected.PUT("/sites/:id/name", s.siteHandlers.RenameSite)
			protected.PUT("/sites/:id/meta", s.siteHandlers.UpdateSiteMeta)
			protected.DELETE("/sites/:id", s.siteHandlers.DeleteSite)

			protected.PUT("/sites/:id/domains", s.domainHandlers.SetDomains)

			protected.GET("/database-hosts", s.databaseHandlers.ListHosts)
			protected.POST("/sites/:id/database", s.databaseHandlers.CreateDatabase)

			protected.GET("/images", s.imageHandlers.ListImages)
			protected.PUT("/sites/:id/image", s.imageHandlers.SelectImage)

			protected.GET("/users/me", s.userHandlers.GetCurrentUser)

			// Admin-only endpoints
			admin := protected.Group("/")
			admin.Use(auth.RequireSuperuser())
			{
				admin.PUT("/sites/:id/resource-limits", s.limitsHandlers.SetResourceLimits)
				admin.GET("/users", s.userHandlers.ListUsers)
				admin.POST("/users", s.userHandlers.CreateUser)
			}
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	address := fmt.Sprintf(":%d", s.config.API.Port)
	log.Info().Str("address", address).Msg("Starting API server")

	s.httpServer = &http.Server{
		Addr:         address,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.config.API.TLSCert != "" && s.config.API.TLSKey != "" {
		// Verify TLS certificate and key files exist and are readable
		if _, err := os.Stat(s.config.API.TLSCert); err != nil {
			return fmt.Errorf("TLS certificate file error: %w", err)
		}
		if _, err := os.Stat(s.config.API.TLSKey); err != nil {
			return fmt.Errorf("TLS key file error: %w", err)
		}

		log.Info().Msg("Starting HTTPS server")
		return s.httpServer.ListenAndServeTLS(s.config.API.TLSCert, s.config.API.TLSKey)
	}

	log.Info().Msg("Starting HTTP server")
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	log.Info().Msg("Shutting down API server...")
	return s.httpServer.Shutdown(ctx)
}

// GetRouter returns the gin router (useful for testing)
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readinessHandler reports readiness, including database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	sqlDB, err := s.db.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
