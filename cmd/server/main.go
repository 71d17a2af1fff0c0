package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/digiserve/digiserve/internal/api"
	"github.com/digiserve/digiserve/internal/api/cron"
	v1 "github.com/digiserve/digiserve/internal/api/v1"
	"github.com/digiserve/digiserve/internal/cache"
	"github.com/digiserve/digiserve/internal/config"
	"github.com/digiserve/digiserve/internal/logger"
	"github.com/digiserve/digiserve/internal/notification"
	pubsubMemory "github.com/digiserve/digiserve/internal/pubsub/memory"
	"github.com/digiserve/digiserve/internal/repository"
	"github.com/digiserve/digiserve/internal/service"
	"github.com/digiserve/digiserve/internal/validator"
)

// @title DigiServe Reconciliation API
// @version 1.0
// @description Payment and installment reconciliation service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// initialize the request validator singleton before anything binds DTOs
	validator.NewValidator()

	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// PubSub
			pubsubMemory.NewPubSub,

			// Notification pipeline
			notification.NewPublisher,
			notification.NewDispatcher,

			// Repositories
			repository.NewPaymentRepository,
			repository.NewAccountRepository,
			repository.NewCatalogRepository,
			repository.NewBroadcastRepository,

			// Service layer
			service.NewServiceParams,
			service.NewPaymentService,
			service.NewAccountService,
			service.NewCatalogService,
			service.NewBroadcastService,
			service.NewSuspicionService,
			service.NewStatsService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	paymentService service.PaymentService,
	accountService service.AccountService,
	catalogService service.CatalogService,
	broadcastService service.BroadcastService,
	suspicionService service.SuspicionService,
	statsService service.StatsService,
) api.Handlers {
	return api.Handlers{
		Health:    v1.NewHealthHandler(),
		Payment:   v1.NewPaymentHandler(paymentService, logger),
		Account:   v1.NewAccountHandler(accountService, logger),
		Catalog:   v1.NewCatalogHandler(catalogService, logger),
		Broadcast: v1.NewBroadcastHandler(broadcastService, logger),
		Stats:     v1.NewStatsHandler(statsService, logger),
		Suspicion: cron.NewSuspicionHandler(suspicionService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration) *gin.Engine {
	return api.NewRouter(handlers, cfg)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	dispatcher *notification.Dispatcher,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := dispatcher.Start(context.Background()); err != nil {
				return err
			}

			go func() {
				log.Infof("starting server on %s", cfg.Server.Address)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := dispatcher.Close(); err != nil {
				log.Errorw("failed to close notification dispatcher", "error", err)
			}
			return srv.Shutdown(ctx)
		},
	})
}
