package router

import (
	"fmt"

	"github.com/anonto42/oomool/backend/internal/handlers"
	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/repositories"
	"github.com/anonto42/oomool/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Dependencies are the services and repositories the routes are built from.
type Dependencies struct {
	Auth          echo.MiddlewareFunc
	Community     handlers.Community
	Reader        handlers.Reader
	Views         handlers.ViewCounter
	Verification  handlers.CodeVerifier
	Users         repositories.UserRepository
	Posts         repositories.PostRepository
	Questions     repositories.QuestionRepository
	Comments      repositories.CommentRepository
	Notifications repositories.NotificationRepository
}

// Migrate creates or updates the relational tables.
func Migrate(pgdb *gorm.DB) error {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Answer{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Bookmark{},
		&models.Curious{},
		&models.Notification{},
		&models.VerificationCode{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	logger.Info("PostgreSQL auto-migrations completed")
	return nil
}

// SetupRoutes configures all application routes
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	e.GET("/health", handlers.HealthCheck)

	// Public email verification
	custom := e.Group("/api/custom")
	handlers.NewVerificationHandler(deps.Verification).RegisterVerificationRoutes(custom)

	api := e.Group("/api", deps.Auth)

	community := api.Group("/community")
	handlers.NewLikeHandler(deps.Community).RegisterLikeRoutes(community)
	handlers.NewFollowHandler(deps.Community).RegisterFollowRoutes(community)
	handlers.NewBookmarkHandler(deps.Community).RegisterBookmarkRoutes(community)
	handlers.NewPostHandler(deps.Community, deps.Views, deps.Posts).RegisterPostRoutes(community)
	handlers.NewCommentHandler(deps.Community, deps.Reader, deps.Comments).RegisterCommentRoutes(community)
	handlers.NewQuestionHandler(deps.Community, deps.Reader, deps.Questions).RegisterQuestionRoutes(community)
	handlers.NewFeedHandler(deps.Reader).RegisterFeedRoutes(community)

	handlers.NewNotificationHandler(deps.Notifications, deps.Users).RegisterNotificationRoutes(api)
	handlers.NewUserHandler(deps.Users).RegisterProfileRoutes(api)

	logger.Info("routes configured", "count", len(e.Routes()))
}
