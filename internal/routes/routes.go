// Package routes wires the admin API: services, handlers and middleware.
package routes

import (
	"disburser/internal/config"
	"disburser/internal/handlers"
	"disburser/internal/middleware"
	"disburser/internal/repositories"
	"disburser/internal/services/auth"
	"disburser/internal/services/commission"
	"disburser/internal/services/disbursement"
	"disburser/internal/services/eligibility"
	"disburser/internal/services/minimumfee"
	"disburser/internal/services/scheduler"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	merchantRepo := repositories.NewMerchantRepository(db, repositories.CacheService)
	orderRepo := repositories.NewOrderRepository(db)
	disbursementRepo := repositories.NewDisbursementRepository(db)
	commissionRepo := repositories.NewCommissionRepository(db)
	feeDefaultRepo := repositories.NewFeeDefaultRepository(db)
	operatorRepo := repositories.NewOperatorRepository(db)

	settler := disbursement.NewService(
		repositories.NewSettlementStore(db),
		disbursement.NewAggregator(commission.NewCalculator()),
	)
	detector := minimumfee.NewDetector(commissionRepo, feeDefaultRepo)
	runner := scheduler.NewRunner(scheduler.Config{
		Merchants: merchantRepo,
		Selector:  eligibility.NewSelector(orderRepo),
		Settler:   settler,
		Detector:  detector,
		Locker:    repositories.CacheService,
		PageSize:  config.GetIntEnv("RUN_PAGE_SIZE", 100),
		Workers:   config.GetIntEnv("RUN_WORKERS", 8),
	})

	authService := auth.NewService(operatorRepo, config.GetEnv("JWT_SECRET", "disburser"))
	authHandler := handlers.NewAuthHandler(authService)
	settlementHandler := handlers.NewSettlementHandler(runner, disbursementRepo)
	minimumFeeHandler := handlers.NewMinimumFeeHandler(runner, feeDefaultRepo)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	api.Post("/login", authHandler.Login)

	authenticated := api.Group("/", middleware.Auth)
	authenticated.Post("/settlements/run", settlementHandler.RunSettlement)
	authenticated.Get("/disbursements", settlementHandler.ListDisbursements)
	authenticated.Get("/disbursements/:reference", settlementHandler.GetDisbursement)
	authenticated.Post("/minimum-fees/run", minimumFeeHandler.RunMinimumFees)
	authenticated.Get("/minimum-fee-defaults", minimumFeeHandler.ListDefaults)
}
