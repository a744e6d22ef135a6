// Package server contains HTTP handlers for the forum's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "simpleforum/docs" // swagger docs
	"simpleforum/internal/config"
	"simpleforum/internal/database"
	"simpleforum/internal/featureflags"
	"simpleforum/internal/jobs"
	"simpleforum/internal/middleware"
	"simpleforum/internal/models"
	"simpleforum/internal/redisclient"
	"simpleforum/internal/repository"
	"simpleforum/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	featureFlags   *featureflags.Manager
	scheduler      *jobs.Scheduler
	sectionService *service.SectionService
	postService    *service.PostService
	commentService *service.CommentService
}

// NewServer connects to the database and Redis, applies the schema and
// builds a server on top of them.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("schema setup failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisclient.Connect(ctx, cfg.RedisURL))
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}

	flags := featureflags.NewManager(cfg.FeatureFlags)

	var opts []repository.Option
	if flags.Enabled(featureflags.LegacyPageOffset) {
		middleware.Logger.Warn("Legacy page offset enabled; pages past the first overlap")
		opts = append(opts, repository.WithOffset(repository.LegacyPageOffset))
	}

	sectionRepo := repository.NewSectionRepository(db, opts...)
	postRepo := repository.NewPostRepository(db, opts...)
	commentRepo := repository.NewCommentRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("simpleforum-api"),
		featureFlags:   flags,
		scheduler:      jobs.New(),
		sectionService: service.NewSectionService(sectionRepo),
		postService:    service.NewPostService(postRepo, sectionRepo, commentRepo),
		commentService: service.NewCommentService(commentRepo, postRepo),
	}, nil
}

// App builds the Fiber application with middleware and routes installed.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Simple Forum API",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return models.RespondWithError(c, fiberErr.Code, errors.New(fiberErr.Message))
	}

	middleware.Logger.ErrorContext(c.UserContext(), "Unhandled request error", slog.String("error", err.Error()))
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// Tracing sets the traceID local that ContextMiddleware copies into the request context.
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := ""
	if s.config != nil {
		origins = s.config.AllowedOrigins
	}
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		MaxAge:       86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)

	v1 := api.Group("/v1")
	v1.Get("/feature-flags", s.GetFeatureFlags)

	writes := func(name string) fiber.Handler {
		return middleware.RateLimit(s.redis, 30, time.Minute, name)
	}

	sections := v1.Group("/sections")
	sections.Post("/", writes("section_write"), s.CreateSection)
	sections.Get("/", s.GetSections)
	sections.Get("/:id", s.GetSection)
	sections.Put("/:id", writes("section_write"), s.UpdateSection)
	sections.Delete("/:id", writes("section_write"), s.DeleteSection)

	posts := v1.Group("/posts")
	posts.Post("/", writes("post_write"), s.CreatePost)
	posts.Get("/", s.GetPosts)
	// Specific /:id/:resource routes before the generic /:id route
	posts.Get("/:id/comments", s.GetPostComments)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", writes("post_write"), s.UpdatePost)
	posts.Delete("/:id", writes("post_write"), s.DeletePost)

	comments := v1.Group("/comments")
	comments.Post("/", writes("comment_write"), s.CreateComment)
	comments.Get("/:id", s.GetComment)
	comments.Put("/:id", writes("comment_write"), s.UpdateComment)
	comments.Delete("/:id", writes("comment_write"), s.DeleteComment)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: a
// missing or failing Redis is reported but does not fail the probe.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	schedulerStatus := "accepting"
	if s.scheduler.Closed() {
		schedulerStatus = "draining"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || schedulerStatus == "draining" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database":  dbStatus,
			"redis":     redisStatus,
			"mutations": schedulerStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and blocks serving on the configured port.
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown stops accepting requests, waits for in-flight mutations and
// releases the database and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}

	if err := s.scheduler.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("waiting for mutations: %w", err))
	}

	if err := database.Close(s.db); err != nil {
		errs = append(errs, fmt.Errorf("closing database: %w", err))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing redis: %w", err))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return errors.Join(errs...)
}
