package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/club-service/internal/api/http"
	"github.com/spec-kit/club-service/internal/api/http/handlers"
	"github.com/spec-kit/club-service/internal/config"
	"github.com/spec-kit/club-service/internal/events"
	"github.com/spec-kit/club-service/internal/observability"
	"github.com/spec-kit/club-service/internal/persistence"
	"github.com/spec-kit/club-service/internal/repository"
	"github.com/spec-kit/club-service/internal/service"
	"github.com/spec-kit/club-service/internal/storage"
	"github.com/spec-kit/club-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	observability.RegisterMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	blobStore := storage.NewRedisBlobStore(redis.Client, cfg.Storage.KeyPrefix)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	requestRepo := repository.NewMembershipRequestRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	galleryRepo := repository.NewGalleryRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	membershipService := service.NewMembershipService(service.MembershipDependencies{
		UserRepo:      userRepo,
		RequestRepo:   requestRepo,
		BlobStore:     blobStore,
		Dispatcher:    dispatcher,
		Logger:        logger,
		ProfilePrefix: cfg.Storage.ProfilePrefix,
		BcryptCost:    cfg.Auth.BcryptCost,
	})
	contentService := service.NewContentService(service.ContentDependencies{
		PostRepo:    postRepo,
		EventRepo:   eventRepo,
		GalleryRepo: galleryRepo,
		BlobStore:   blobStore,
		Logger:      logger,
	})
	authService := service.NewAuthService(*cfg, userRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Storage.MaxUploadBytes) + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Join:    handlers.NewJoinHandler(membershipService, cfg.Storage.MaxUploadBytes),
		Auth:    handlers.NewAuthHandler(authService),
		Posts:   handlers.NewPostsHandler(contentService),
		Events:  handlers.NewEventsHandler(contentService),
		Gallery: handlers.NewGalleryHandler(contentService),
		Admin:   handlers.NewAdminHandler(membershipService),
		Files:   handlers.NewFilesHandler(blobStore, cfg.Storage.MaxUploadBytes),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
