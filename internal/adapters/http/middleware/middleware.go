package middleware

import (
	"errors"
	"log"
	"time"

	"mandoubi/internal/config"
	"mandoubi/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	devLogFormat  = "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n"
	prodLogFormat = "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n"
)

// Setup configures all middlewares for the application
func Setup(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDev()}))
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "SAMEORIGIN",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginResourcePolicy: "same-origin",
		PermissionPolicy:          "geolocation=(), microphone=(), camera=()",
	}))

	// General API budget per IP
	app.Use(rateLimiter("", cfg.Limits.General, "Too many requests, please slow down"))

	if cfg.IsDev() {
		app.Use(logger.New(logger.Config{Format: devLogFormat}))
	} else {
		app.Use(logger.New(logger.Config{Format: prodLogFormat, TimeFormat: "2006-01-02 15:04:05"}))
	}

	app.Use(cors.New(corsConfig(cfg)))
}

// corsConfig allows any origin in dev; prod only the configured ones, with cookies
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}
	if cfg.IsDev() {
		c.AllowOrigins = "*"
		return c
	}
	c.AllowOrigins = cfg.GetAllowedOrigins()
	c.AllowCredentials = true
	return c
}

// rateLimiter allows max requests per minute per IP. scope keeps budgets apart.
func rateLimiter(scope string, max int, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + scope
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.TooManyRequests(c, message)
		},
	})
}

// AuthRateLimiter guards login and refresh
func AuthRateLimiter(max int) fiber.Handler {
	return rateLimiter("-auth", max, "Too many login attempts, please wait a minute")
}

// InsightRateLimiter guards the AI insight endpoint
func InsightRateLimiter(max int) fiber.Handler {
	return rateLimiter("-insight", max, "Please wait before requesting another analysis")
}

// CustomErrorHandler handles errors globally
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code, message := fiber.StatusInternalServerError, "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, message = fe.Code, fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	}

	return response.Error(c, code, message)
}
