package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anonto42/event-comments/backend/internal/handlers"
	"github.com/anonto42/event-comments/backend/internal/middleware"
	"github.com/anonto42/event-comments/backend/internal/repositories"
	"github.com/anonto42/event-comments/backend/internal/services"
	"github.com/anonto42/event-comments/backend/internal/validators"
	"github.com/anonto42/event-comments/backend/pkg/config"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger *slog.Logger, metrics *middleware.Metrics) {
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.RequestContextLogger(logger))
	e.Use(metrics.Middleware())
	logger.Debug("global middleware configured")
}

// SetupRoutes builds repositories, service and handlers and registers every route.
// Users are read from PostgreSQL when it is configured, otherwise from MongoDB.
func SetupRoutes(ctx context.Context, e *echo.Echo, cfg *config.Config, db *config.DB, metrics *middleware.Metrics, logger *slog.Logger) error {
	e.GET("/health", handlers.HealthCheck(db.PingMongo, db.PingPostgres))
	e.GET("/", handlers.Root)

	// --- Initialize Repositories ---
	commentRepo := repositories.NewMongoCommentRepository(db.Database, cfg.Mongo.CommentsCollection)
	if err := commentRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure comment indexes: %w", err)
	}
	eventRepo := repositories.NewMongoEventRepository(db.Database, cfg.Mongo.EventsCollection)

	var userRepo repositories.UserRepository
	if db.Postgres != nil {
		userRepo = repositories.NewPostgresUserRepository(db.Postgres)
		logger.Info("reading users from PostgreSQL")
	} else {
		userRepo = repositories.NewMongoUserRepository(db.Database, cfg.Mongo.UsersCollection)
		logger.Info("reading users from MongoDB", "collection", cfg.Mongo.UsersCollection)
	}

	validator := validators.NewValidator()
	e.Validator = validator

	commentService := services.NewCommentService(commentRepo, userRepo, eventRepo, validator)

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentService, metrics.CommentLikes)
	commentHandler.RegisterCommentRoutes(e.Group("/api/comments"))
	logger.Debug("comment routes configured")

	return nil
}
