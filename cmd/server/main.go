package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/oomool/backend/internal/events"
	"github.com/anonto42/oomool/backend/internal/hooks"
	"github.com/anonto42/oomool/backend/internal/middleware"
	"github.com/anonto42/oomool/backend/internal/repositories"
	"github.com/anonto42/oomool/backend/internal/router"
	"github.com/anonto42/oomool/backend/internal/services"
	"github.com/anonto42/oomool/backend/internal/validator"
	"github.com/anonto42/oomool/backend/internal/workers"
	"github.com/anonto42/oomool/backend/pkg/config"
	"github.com/anonto42/oomool/backend/pkg/firebase"
	"github.com/anonto42/oomool/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)

	db, err := config.InitDB(cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize databases", "error", err)
	}
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var firebaseApp *firebase.App
	if cfg.Push.Mode() == config.PushFCM || cfg.Auth.Provider == "firebase" {
		firebaseApp, err = firebase.InitFirebase(ctx, cfg.Push)
		if err != nil {
			logger.Fatal("failed to initialize Firebase", "error", err)
		}
	}

	// Repositories
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(db.MongoDB)
	questionRepo := repositories.NewPostgresQuestionRepository(db.Postgres)
	answerRepo := repositories.NewPostgresAnswerRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db.Postgres)
	curiousRepo := repositories.NewPostgresCuriousRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	codeRepo := repositories.NewPostgresVerificationCodeRepository(db.Postgres)
	counterRepo := repositories.NewStoreCounterRepository(db.Postgres, db.MongoDB)

	// Push delivery
	gateway := newGateway(cfg.Push, firebaseApp)
	queue := newQueue(ctx, cfg.Queue, gateway)
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warn("failed to close push queue", "error", err)
		}
	}()

	// Services and record hooks
	dispatcher := events.NewDispatcher()
	emitter := services.NewNotificationEmitter(services.EmitterRepositories{
		Notifications: notificationRepo,
		Users:         userRepo,
		Questions:     questionRepo,
		Answers:       answerRepo,
		Comments:      commentRepo,
		Posts:         postRepo,
	}, dispatcher, queue)
	counters := services.NewCounterMaintainer(counterRepo)
	hooks.Register(dispatcher, emitter, counters)

	community := services.NewCommunityService(services.CommunityRepositories{
		Users:     userRepo,
		Posts:     postRepo,
		Questions: questionRepo,
		Answers:   answerRepo,
		Comments:  commentRepo,
		Likes:     likeRepo,
		Follows:   followRepo,
		Bookmarks: bookmarkRepo,
		Curious:   curiousRepo,
		Counters:  counterRepo,
	}, dispatcher)
	reader := services.NewCommunityReader(services.ReaderRepositories{
		Posts:     postRepo,
		Questions: questionRepo,
		Comments:  commentRepo,
		Curious:   curiousRepo,
	})

	limiter, closeLimiter := newRateLimiter(ctx, cfg.Redis)
	defer closeLimiter()

	verification := services.NewVerificationService(codeRepo, newMailer(cfg), limiter, cfg.Verification)

	var pruner workers.Pruner
	if memory, ok := limiter.(*services.MemoryRateLimiter); ok {
		pruner = memory
	}
	cleanup := workers.NewVerificationCleanup(verification, pruner, cfg.Verification.SendWindow, cfg.Verification.CleanupSchedule)
	if err := cleanup.Start(); err != nil {
		logger.Fatal("failed to start cleanup worker", "error", err)
	}
	defer cleanup.Stop()

	// HTTP
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	config.SetupMiddleware(e)

	router.SetupRoutes(e, router.Dependencies{
		Auth:          authMiddleware(cfg.Auth, firebaseApp, userRepo),
		Community:     community,
		Reader:        reader,
		Views:         counters,
		Verification:  verification,
		Users:         userRepo,
		Posts:         postRepo,
		Questions:     questionRepo,
		Comments:      commentRepo,
		Notifications: notificationRepo,
	})

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}

func authMiddleware(cfg config.AuthConfig, app *firebase.App, users repositories.UserRepository) echo.MiddlewareFunc {
	if cfg.Provider == "firebase" {
		return middleware.FirebaseAuthMiddleware(app.AuthClient, users)
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required when AUTH_PROVIDER=jwt")
	}
	return middleware.JWTAuthMiddleware(cfg.JWTSecret)
}
