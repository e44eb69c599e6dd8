package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mandoubi/internal/adapters/ai"
	"mandoubi/internal/adapters/http/middleware"
	"mandoubi/internal/adapters/http/routes"
	"mandoubi/internal/adapters/messaging"
	"mandoubi/internal/adapters/persistence/models"
	"mandoubi/internal/adapters/persistence/repositories"
	"mandoubi/internal/config"
	"mandoubi/internal/session"

	"github.com/gofiber/fiber/v2"

	_ "mandoubi/docs" // Swagger docs
)

// @title Mandoubi API
// @version 1.0
// @description Field sales operations: agents, sales requests, institutions and commissions.

// @contact.name API Support

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed director account and sample products
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Session store: redis when enabled, in-process otherwise
	redisClient, err := config.ConnectRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("❌ Failed to connect to redis: %v", err)
	}
	var store session.Store = session.NewMemoryStore()
	if redisClient != nil {
		defer redisClient.Close()
		store = session.NewRedisStore(redisClient)
		log.Println("✅ Sessions stored in redis")
	} else {
		log.Println("⚠️ Redis disabled, sessions kept in memory")
	}
	sessions := session.NewManager(store, time.Duration(cfg.JWT.RefreshTokenDays)*24*time.Hour)

	infra := routes.Infra{Sessions: sessions, Redis: redisClient}

	// Request status events
	if cfg.AMQP.Enabled {
		infra.Publisher = messaging.NewRabbitPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		log.Printf("✅ Publishing request events to %s", cfg.AMQP.Queue)
	}

	// AI insight
	if cfg.AI.APIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Printf("⚠️ AI insight disabled: %v", err)
		} else {
			infra.Generator = gemini
			log.Printf("✅ AI insight enabled [%s]", cfg.AI.Model)
		}
	}

	// Suspension sweep closes sessions of suspended users
	watcher := session.NewWatcher(sessions, repositories.NewUserRepository(db, cfg.Store.OperationTimeout), cfg.Session.PollInterval)
	if err := watcher.Start(); err != nil {
		log.Fatalf("❌ Failed to start session watcher: %v", err)
	}
	defer watcher.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Mandoubi API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, cfg, infra)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
