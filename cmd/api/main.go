package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Davi3103/chamados4/internal/api/http"
	"github.com/Davi3103/chamados4/internal/api/http/handlers"
	"github.com/Davi3103/chamados4/internal/config"
	"github.com/Davi3103/chamados4/internal/events"
	"github.com/Davi3103/chamados4/internal/mail"
	"github.com/Davi3103/chamados4/internal/observability"
	"github.com/Davi3103/chamados4/internal/persistence"
	"github.com/Davi3103/chamados4/internal/repository"
	"github.com/Davi3103/chamados4/internal/service"
	"github.com/Davi3103/chamados4/internal/storage"
	"github.com/Davi3103/chamados4/internal/validation"
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

	fileStore, err := storage.NewLocalFileStore(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("failed to init file storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	requesterRepo := repository.NewRequesterRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	activityRepo := repository.NewActivityLogRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	service.NewActivityRecorder(activityRepo, logger).RegisterHandlers(dispatcher)

	notifier := service.NewNotificationService(
		mail.NewSMTPMailer(cfg.Notification), cfg.Notification, logger)

	intakeService := service.NewIntakeService(service.IntakeDependencies{
		RequesterRepo:  requesterRepo,
		TicketRepo:     ticketRepo,
		AttachmentRepo: attachmentRepo,
		Numbers:        service.NewTicketNumberGenerator(redis.ClientHandle(), cfg.TicketNumber.Prefix, logger),
		Files:          fileStore,
		Notifier:       notifier,
		Dispatcher:     dispatcher,
		Categories:     cfg.Categories,
		Upload:         cfg.Upload,
		MaxAttempts:    cfg.TicketNumber.MaxAttempts,
		Logger:         logger,
	})

	metrics := observability.NewMetrics()
	validator := validation.New(cfg.Categories.Table)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Upload.MaxSizeBytes) * 4,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(pg, redis, metrics),
		Intake: handlers.NewIntakeHandler(validator, intakeService),
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
