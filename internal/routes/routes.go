// Package routes defines the API routing configuration.
package routes

import (
	"github.com/vkolotikov/loyalty-bolt/internal/handlers"
	"github.com/vkolotikov/loyalty-bolt/internal/middleware"
	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/repositories"
	"github.com/vkolotikov/loyalty-bolt/internal/services/admin"
	"github.com/vkolotikov/loyalty-bolt/internal/services/auth"
	"github.com/vkolotikov/loyalty-bolt/internal/services/ledger"
	"github.com/vkolotikov/loyalty-bolt/internal/services/notify"
	"github.com/vkolotikov/loyalty-bolt/internal/services/registration"
	"github.com/vkolotikov/loyalty-bolt/internal/services/stats"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	clientRepo := repositories.NewClientRepository(db)
	adminRepo := repositories.NewAdminRepository(db)

	// Services
	authService := auth.NewService(adminRepo)
	ledgerService := ledger.NewService(
		clientRepo,
		repositories.CacheService,
		ledger.Config{},
		&ledger.NoopMetricsCollector{},
	)
	registrationService := registration.NewService(clientRepo)
	notifyService := notify.NewService(clientRepo, notify.LogSender{})
	adminService := admin.NewService(clientRepo, repositories.CacheService)
	statsService := stats.NewService(clientRepo, stats.DiscountCardPolicy{})

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(ledgerService, notifyService)
	adminHandler := handlers.NewAdminHandler(adminService, registrationService, ledgerService)
	statsHandler := handlers.NewStatsHandler(statsService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Loyalty Bolt API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})
	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/admin/login", authHandler.Login)
	api.Post("/admin/refresh", authHandler.RefreshToken)

	// Kiosk surface: card lookup and ledger operations. The kiosk is a
	// trusted device on the shop floor; it does not carry admin tokens.
	clients := api.Group("/clients")
	clients.Get("/:cardNumber", clientHandler.GetClient)
	clients.Post("/:cardNumber/visits", clientHandler.ConfirmVisit)
	clients.Post("/:cardNumber/points/redeem", clientHandler.RedeemPoints)
	clients.Post("/:cardNumber/balance/use", clientHandler.UseBalance)
	clients.Post("/:cardNumber/bonus/consume", clientHandler.ConsumeBonusDiscount)
	clients.Post("/:cardNumber/details", clientHandler.SendDetails)

	// Protected admin surface
	authMiddleware := middleware.NewAuthMiddleware(authService)
	adminAPI := api.Group("/admin", authMiddleware.Handler)

	adminAPI.Post("/logout", authHandler.Logout)

	roster := adminAPI.Group("/clients")
	roster.Get("/", middleware.HasPermission(models.PermissionClientRead), adminHandler.ListClients)
	roster.Post("/", middleware.HasPermission(models.PermissionClientWrite), adminHandler.RegisterClient)
	roster.Get("/:id", middleware.HasPermission(models.PermissionClientRead), adminHandler.GetClient)
	roster.Put("/:id", middleware.HasPermission(models.PermissionClientWrite), adminHandler.UpdateClient)
	roster.Delete("/:id", middleware.HasPermission(models.PermissionClientWrite), adminHandler.DeleteClient)

	adminAPI.Post("/cards/:cardNumber/balance/adjust",
		middleware.HasPermission(models.PermissionClientWrite), adminHandler.AdjustBalance)

	statsAPI := adminAPI.Group("/stats", middleware.HasPermission(models.PermissionStatsRead))
	statsAPI.Get("/", statsHandler.Overview)
	statsAPI.Get("/trends", statsHandler.MonthlyTrends)
}
