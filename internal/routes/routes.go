// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"folio/internal/clients"
	"folio/internal/handlers"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/repositories"
	"folio/internal/services/auth"
	"folio/internal/services/override"
	"folio/internal/services/portfolio"
	"folio/internal/services/pricing"
	"folio/internal/services/wallet"
	"folio/internal/workers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes and wires the service
// graph. It returns the refresh worker so main can stop it on shutdown.
func SetupRoutes(app *fiber.App, db *gorm.DB) *workers.RefreshWorker {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	overrideRepo := repositories.NewOverrideRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	snapshotRepo := repositories.NewSnapshotRepository(db)

	// Provider clients
	gecko := clients.NewCoinGeckoClient()
	coinbase := clients.NewCoinbaseClient()
	fetcher := portfolio.NewChainFetcher(
		clients.NewMoralisClient(),
		clients.NewAlchemyClient(),
		clients.NewSolanaRPCClient(),
		clients.NewBitcoinClient(),
		clients.NewCosmosClient(),
	)

	// Services
	authService := auth.NewService(userRepo)
	walletService := wallet.NewService(settingsRepo)
	overrideService := override.NewService(overrideRepo, snapshotRepo)
	pricingService := pricing.NewService(gecko, coinbase, repositories.CacheService)
	portfolioService := portfolio.NewService(
		fetcher,
		overrideService,
		pricingService,
		walletService,
		repositories.CacheService,
		snapshotRepo,
	)

	// Background refresh of snapshots flagged by override mutations.
	refreshWorker := workers.NewRefreshWorker(snapshotRepo, portfolioService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	overrideHandler := handlers.NewOverrideHandler(overrideService)
	walletHandler := handlers.NewWalletHandler(walletService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)

	authMiddleware := middleware.NewAuthMiddleware()

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", authHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)

	// Authenticated endpoints
	authed := api.Use(authMiddleware.Handler)
	authed.Post("/logout", authHandler.Logout)
	authed.Post("/change-password",
		authMiddleware.RequirePermission(models.PermissionChangePassword),
		authHandler.ChangePassword)

	authed.Get("/overrides",
		authMiddleware.RequirePermission(models.PermissionOverrideRead),
		overrideHandler.GetOverrides)
	authed.Post("/overrides",
		authMiddleware.RequirePermission(models.PermissionOverrideWrite),
		overrideHandler.PostOverride)
	authed.Get("/overrides/history",
		authMiddleware.RequirePermission(models.PermissionOverrideRead),
		overrideHandler.GetOverrideHistory)

	authed.Get("/wallets",
		authMiddleware.RequirePermission(models.PermissionWalletRead),
		walletHandler.ListWallets)
	authed.Post("/wallets",
		authMiddleware.RequirePermission(models.PermissionWalletWrite),
		walletHandler.AddWallet)
	authed.Put("/wallets/:id",
		authMiddleware.RequirePermission(models.PermissionWalletWrite),
		walletHandler.UpdateWallet)
	authed.Delete("/wallets/:id",
		authMiddleware.RequirePermission(models.PermissionWalletWrite),
		walletHandler.RemoveWallet)

	authed.Get("/portfolio/:address",
		authMiddleware.RequirePermission(models.PermissionPortfolioRead),
		portfolioHandler.GetPortfolio)
	authed.Get("/dashboard",
		authMiddleware.RequirePermission(models.PermissionPortfolioRead),
		portfolioHandler.GetDashboard)

	return refreshWorker
}
