package api

import (
	"github.com/gin-gonic/gin"

	"github.com/digiserve/digiserve/internal/api/cron"
	v1 "github.com/digiserve/digiserve/internal/api/v1"
	"github.com/digiserve/digiserve/internal/config"
	"github.com/digiserve/digiserve/internal/rest/middleware"
	"github.com/digiserve/digiserve/internal/types"
)

type Handlers struct {
	Health    *v1.HealthHandler
	Payment   *v1.PaymentHandler
	Account   *v1.AccountHandler
	Catalog   *v1.CatalogHandler
	Broadcast *v1.BroadcastHandler
	Stats     *v1.StatsHandler
	Suspicion *cron.SuspicionHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	admin := middleware.RequireAdministrator()

	// Payment routes
	payments := router.Group("/payments")
	{
		payments.POST("", handlers.Payment.CreatePayment)
		payments.GET("", handlers.Payment.ListPayments)
		payments.GET("/:id", handlers.Payment.GetPayment)
		payments.GET("/:id/entitlement", handlers.Payment.GetEntitlement)
		payments.POST("/:id/tranches/:number/submit", handlers.Payment.SubmitTranche)
		payments.POST("/:id/tranches/:number/adjudicate", admin, handlers.Payment.AdjudicateTranche)
		payments.POST("/:id/tranches/:number/paid", admin, handlers.Payment.MarkTranchePaid)
		payments.PATCH("/:id/window", admin, handlers.Payment.SetServiceWindow)
		payments.POST("/:id/complete", admin, handlers.Payment.MarkServiceCompleted)
	}

	// Account routes
	accounts := router.Group("/accounts")
	{
		accounts.POST("", handlers.Account.CreateAccount)
		accounts.GET("", admin, handlers.Account.ListAccounts)
		accounts.GET("/:id", handlers.Account.GetAccount)
		accounts.PATCH("/:id", admin, handlers.Account.UpdateAccount)
		accounts.PUT("/:id/installment-policy", admin, handlers.Account.SetInstallmentPolicy)
		accounts.PUT("/:id/suspicion", admin, handlers.Account.SetSuspicion)
	}

	// Catalog routes
	services := router.Group("/services")
	{
		services.POST("", admin, handlers.Catalog.CreateService)
		services.GET("", handlers.Catalog.ListServices)
		services.GET("/:id", handlers.Catalog.GetService)
		services.PATCH("/:id", admin, handlers.Catalog.UpdateService)
		services.DELETE("/:id", admin, handlers.Catalog.DeleteService)
	}

	// Broadcast routes
	broadcasts := router.Group("/broadcasts")
	{
		broadcasts.POST("", admin, handlers.Broadcast.CreateBroadcast)
		broadcasts.GET("", handlers.Broadcast.ListBroadcasts)
		broadcasts.GET("/:id", handlers.Broadcast.GetBroadcast)
		broadcasts.PATCH("/:id", admin, handlers.Broadcast.UpdateBroadcast)
		broadcasts.DELETE("/:id", admin, handlers.Broadcast.DeleteBroadcast)
	}

	// Admin routes
	adminGroup := router.Group("/admin", admin)
	{
		adminGroup.GET("/stats", handlers.Stats.GetAdminStats)
		adminGroup.POST("/cron/suspicion-scan", handlers.Suspicion.RunScan)
	}
}
