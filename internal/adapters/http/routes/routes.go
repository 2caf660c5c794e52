package routes

import (
	"seventour-backend/internal/adapters/http/handlers"
	"seventour-backend/internal/adapters/http/middleware"
	"seventour-backend/internal/adapters/persistence/repositories"
	"seventour-backend/internal/config"
	"seventour-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	countryRepo := repositories.NewCountryRepository(db)
	destinationRepo := repositories.NewDestinationRepository(db)
	packageRepo := repositories.NewTourPackageRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(countryRepo, destinationRepo, packageRepo)
	reviewService := services.NewReviewService(reviewRepo, packageRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	packageHandler := handlers.NewPackageHandler(catalogService, cfg)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Uploaded media
	app.Static("/media", cfg.Upload.Dir)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public + protected)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Catalog routes (public reads, admin writes)
	setupCatalogRoutes(apiV1, catalogHandler, cfg)

	// Package routes (public reads, admin writes)
	setupPackageRoutes(apiV1, packageHandler, cfg)

	// Review routes (public reads, authenticated writes)
	setupReviewRoutes(apiV1, reviewHandler, cfg)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Profile routes (Authenticated users)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(profileRoutes, userHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/registration", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/token/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Get("/user", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupCatalogRoutes configures country and destination routes
func setupCatalogRoutes(router fiber.Router, handler *handlers.CatalogHandler, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)
	staff := middleware.StaffOnly()

	countries := router.Group("/countries")
	countries.Get("/", handler.ListCountries)
	countries.Get("/:id", handler.GetCountry)
	countries.Post("/", auth, staff, handler.CreateCountry)
	countries.Put("/:id", auth, staff, handler.UpdateCountry)
	countries.Delete("/:id", auth, staff, handler.DeleteCountry)

	destinations := router.Group("/destinations")
	destinations.Get("/", handler.ListDestinations)
	destinations.Get("/:id", handler.GetDestination)
	destinations.Post("/", auth, staff, handler.CreateDestination)
	destinations.Put("/:id", auth, staff, handler.UpdateDestination)
	destinations.Delete("/:id", auth, staff, handler.DeleteDestination)

	router.Get("/visa-types", handler.VisaTypes)
}

// setupPackageRoutes configures tour package routes
func setupPackageRoutes(router fiber.Router, handler *handlers.PackageHandler, cfg *config.Config) {
	packages := router.Group("/packages")
	packages.Get("/", handler.ListPackages)
	packages.Get("/:id", handler.GetPackage)

	auth := middleware.AuthMiddleware(cfg)
	staff := middleware.StaffOnly()
	packages.Post("/", auth, staff, handler.CreatePackage)
	packages.Put("/:id", auth, staff, handler.UpdatePackage)
	packages.Post("/:id/image", auth, staff, handler.UploadPackageImage)
	packages.Delete("/:id", auth, staff, handler.DeletePackage)

	// Admin view bypasses the active-only filter
	router.Get("/admin/packages/:id", auth, staff, handler.GetPackageAdmin)
}

// setupReviewRoutes configures review routes
func setupReviewRoutes(router fiber.Router, handler *handlers.ReviewHandler, cfg *config.Config) {
	reviews := router.Group("/reviews")
	reviews.Get("/", handler.ListReviews)
	reviews.Get("/:id", handler.GetReview)

	auth := middleware.AuthMiddleware(cfg)
	reviews.Post("/", auth, handler.CreateReview)
	reviews.Put("/:id", auth, handler.UpdateReview)
	reviews.Delete("/:id", auth, handler.DeleteReview)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Get("/:id", handler.GetUser)
	router.Patch("/:id", handler.UpdateUser)
	router.Patch("/:id/role", handler.SetRole)
	router.Delete("/:id", handler.DeleteUser)
}

// setupProfileRoutes configures profile routes (Authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Patch("/", handler.UpdateProfile)
	router.Post("/photo", handler.UploadProfilePhoto)
	router.Post("/password", middleware.StrictRateLimiter(), handler.ChangePassword)
}
