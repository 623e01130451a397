// Package server contains HTTP handlers and routing for the application.
package server

import (
	"context"
	"fmt"
	"time"

	"plume/internal/avatar"
	"plume/internal/blob"
	"plume/internal/config"
	"plume/internal/database"
	"plume/internal/middleware"
	"plume/internal/repository"
	"plume/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	promMiddleware *fiberprometheus.FiberPrometheus
	postRepo       repository.PostRepository
	blobStore      *blob.Store
	fetcher        *avatar.Fetcher
	postService    *service.PostService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	store, err := blob.NewStore(cfg.ImageDirPath())
	if err != nil {
		return nil, fmt.Errorf("blob store initialization failed: %w", err)
	}

	fetcher := avatar.NewFetcher(cfg.AvatarTimeout(), cfg.AvatarMaxBytes())

	return NewServerWithDeps(cfg, db, store, fetcher), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the DB and stores.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, store *blob.Store, fetcher *avatar.Fetcher) *Server {
	postRepo := repository.NewPostRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		promMiddleware: middleware.InitMetrics("plume"),
		postRepo:       postRepo,
		blobStore:      store,
		fetcher:        fetcher,
	}
	server.postService = service.NewPostService(postRepo, store, fetcher)

	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate the request ID to the logger
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/home", fiber.StatusMovedPermanently)
	})
	app.Get("/home", s.Home)
	app.Post("/form", s.SubmitPost)

	// Stored blobs are served as plain static files
	if s.blobStore != nil {
		app.Static(service.ImageURLPrefix, s.blobStore.Dir())
	}
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": dbStatus,
		"checks": fiber.Map{
			"database": dbStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(_ context.Context) error {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				return cerr
			}
		}
	}
	return nil
}
