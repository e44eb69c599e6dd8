package routes

import (
	"time"

	"mandoubi/internal/adapters/http/handlers"
	"mandoubi/internal/adapters/http/middleware"
	"mandoubi/internal/adapters/persistence/repositories"
	"mandoubi/internal/config"
	"mandoubi/internal/core/services"
	"mandoubi/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Infra carries the collaborators built in main. Publisher, Generator and Redis may be nil.
type Infra struct {
	Sessions  *session.Manager
	Publisher services.EventPublisher
	Generator services.TextGenerator
	Redis     *redis.Client
}

// Handlers groups every HTTP handler
type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	System       *handlers.SystemHandler
	Institution  *handlers.InstitutionHandler
	Request      *handlers.RequestHandler
	Notification *handlers.NotificationHandler
	Dashboard    *handlers.DashboardHandler
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, infra Infra) {
	timeout := cfg.Store.OperationTimeout

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, timeout)
	requestRepo := repositories.NewRequestRepository(db, timeout)
	institutionRepo := repositories.NewInstitutionRepository(db, timeout)
	systemRepo := repositories.NewSystemRepository(db, timeout)
	notificationRepo := repositories.NewNotificationRepository(db, timeout)

	// Initialize services
	policy := services.SideEffectPolicy{Timeout: timeout, Retries: cfg.Store.Retries}
	authService := services.NewAuthService(userRepo, notificationRepo, infra.Sessions, cfg)
	userService := services.NewUserService(userRepo, infra.Sessions)
	systemService := services.NewSystemService(systemRepo)
	institutionService := services.NewInstitutionService(institutionRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	requestService := services.NewRequestService(
		requestRepo,
		userRepo,
		systemRepo,
		institutionService,
		notificationService,
		infra.Publisher,
		policy,
	)
	reportService := services.NewReportService(requestRepo, systemRepo, userRepo)
	insightService := services.NewInsightService(infra.Generator, cfg.AI.PerMinute, cfg.AI.Timeout)

	// Initialize handlers
	h := Handlers{
		Health:       handlers.NewHealthHandler(cfg.AppMode, config.HealthCheck, infra.Redis),
		Auth:         handlers.NewAuthHandler(authService, cfg),
		User:         handlers.NewUserHandler(userService),
		System:       handlers.NewSystemHandler(systemService),
		Institution:  handlers.NewInstitutionHandler(institutionService),
		Request:      handlers.NewRequestHandler(requestService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Dashboard:    handlers.NewDashboardHandler(reportService, requestService, insightService),
	}

	// Health check & root routes
	app.Get("/", h.Health.Root)
	app.Get("/health", h.Health.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	Register(app.Group("/api/v1"), h, authService, cfg.Limits)
}

// Register mounts the v1 API on router
func Register(router fiber.Router, h Handlers, auth middleware.Authenticator, limits config.LimitsConfig) {
	authRequired := middleware.AuthMiddleware(auth)

	// API Info
	router.Get("/", h.Health.APIInfo)

	// Auth routes
	setupAuthRoutes(router.Group("/auth"), h.Auth, authRequired, limits.Auth)

	// Agent management (Admin)
	agentRoutes := router.Group("/agents", authRequired, middleware.AdminOnly())
	setupAgentRoutes(agentRoutes, h.User)

	// Administrator management (Director creates, the policy decides edits)
	adminRoutes := router.Group("/admins", authRequired, middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, h.User)

	// Profile routes (Authenticated users)
	router.Put("/profile", authRequired, h.User.UpdateProfile)

	// Product catalogue (read: everyone, write: Admin)
	systemRoutes := router.Group("/systems", authRequired)
	setupSystemRoutes(systemRoutes, h.System)

	// Institutions
	institutionRoutes := router.Group("/institutions", authRequired)
	setupInstitutionRoutes(institutionRoutes, h.Institution)

	// Sales requests
	requestRoutes := router.Group("/requests", authRequired)
	setupRequestRoutes(requestRoutes, h.Request)

	// Notifications (own only)
	notificationRoutes := router.Group("/notifications", authRequired)
	setupNotificationRoutes(notificationRoutes, h.Notification)

	// Reports
	reportRoutes := router.Group("/reports", authRequired)
	setupReportRoutes(reportRoutes, h.Dashboard, limits.Insight)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, authRequired fiber.Handler, perMinute int) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(perMinute), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(perMinute), handler.RefreshToken)

	// Protected routes
	router.Post("/logout", authRequired, handler.Logout)
	router.Get("/me", authRequired, handler.Me)
	router.Get("/status", middleware.NoCacheHeaders(), authRequired, handler.Status)
}

// setupAgentRoutes configures agent management routes (Admin only)
func setupAgentRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListAgents)
	router.Post("/", handler.CreateAgent)
	router.Get("/:id", handler.GetAgent)
	router.Put("/:id", handler.UpdateAgent)
	router.Patch("/:id/status", handler.ToggleAgentStatus)
}

// setupAdminRoutes configures administrator routes (Admin only)
func setupAdminRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListAdmins)
	router.Post("/", middleware.DirectorOnly(), handler.CreateAdmin)
	router.Put("/:id", handler.UpdateAdmin)
}

// setupSystemRoutes configures product routes
func setupSystemRoutes(router fiber.Router, handler *handlers.SystemHandler) {
	// Agents pick a product when submitting
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)

	// Admin only
	adminRoutes := router.Group("", middleware.AdminOnly())
	adminRoutes.Post("/", handler.Create)
	adminRoutes.Put("/:id", handler.Update)
	adminRoutes.Delete("/:id", handler.Delete)
}

// setupInstitutionRoutes configures institution routes
func setupInstitutionRoutes(router fiber.Router, handler *handlers.InstitutionHandler) {
	router.Get("/", handler.List)
	router.Post("/visits", middleware.AgentOnly(), handler.LogVisit)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupRequestRoutes configures sales request routes
func setupRequestRoutes(router fiber.Router, handler *handlers.RequestHandler) {
	// Agent routes
	router.Post("/", middleware.AgentOnly(), handler.Create)
	router.Get("/my", middleware.AgentOnly(), handler.ListMine)

	// Agents see only their own, checked by the service
	router.Get("/:id", handler.Get)

	// Admin routes
	router.Get("/", middleware.AdminOnly(), handler.List)
	router.Put("/:id/status", middleware.AdminOnly(), handler.SetStatus)
}

// setupNotificationRoutes configures notification routes
func setupNotificationRoutes(router fiber.Router, handler *handlers.NotificationHandler) {
	router.Get("/", handler.List)
	router.Get("/unread-count", middleware.NoCacheHeaders(), handler.UnreadCount)
	router.Put("/read-all", handler.MarkAllRead)
	router.Put("/:id/read", handler.MarkRead)
}

// setupReportRoutes configures report routes
func setupReportRoutes(router fiber.Router, handler *handlers.DashboardHandler, perMinute int) {
	router.Get("/me", middleware.AgentOnly(), middleware.PrivateCacheHeaders(30*time.Second), handler.GetAgentStats)

	adminRoutes := router.Group("", middleware.AdminOnly())
	adminRoutes.Get("/summary", handler.GetSummary)
	adminRoutes.Get("/dashboard", handler.GetAdminDashboard)
	adminRoutes.Post("/insight", middleware.InsightRateLimiter(perMinute), handler.GetInsight)
}
