package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/coopdesk/helpdesk-service/internal/api/http"
	"github.com/coopdesk/helpdesk-service/internal/api/http/handlers"
	"github.com/coopdesk/helpdesk-service/internal/auth"
	"github.com/coopdesk/helpdesk-service/internal/config"
	"github.com/coopdesk/helpdesk-service/internal/engine"
	"github.com/coopdesk/helpdesk-service/internal/events"
	"github.com/coopdesk/helpdesk-service/internal/observability"
	"github.com/coopdesk/helpdesk-service/internal/persistence"
	"github.com/coopdesk/helpdesk-service/internal/repository"
	"github.com/coopdesk/helpdesk-service/internal/service"
	"github.com/coopdesk/helpdesk-service/internal/worker"
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

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()

	var identityRepo repository.IdentityRepository
	var incidentRepo repository.IncidentRepository
	if pool := pg.PoolHandle(); pool != nil {
		identityRepo = repository.NewIdentityRepository(pool)
		incidentRepo = repository.NewIncidentRepository(pool)
	}

	eng := engine.New(engine.Config{
		OrgDomain:  cfg.Org.EmailDomain,
		BcryptCost: cfg.Auth.BcryptCost,
	}, engine.Dependencies{
		Identity:   identityRepo,
		Incidents:  incidentRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager, eng)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(eng, tokenManager),
		Tickets:        handlers.NewTicketsHandler(eng),
		Services:       handlers.NewServicesHandler(eng),
		Supervisors:    handlers.NewSupervisorsHandler(eng),
		AuthMiddleware: authMiddleware,
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
