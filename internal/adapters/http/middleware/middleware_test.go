package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"mandoubi/internal/config"
	"mandoubi/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	cases := map[string]int{
		"/missing": fiber.StatusNotFound,
		"/boom":    fiber.StatusInternalServerError,
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != want {
			t.Errorf("%s: status = %d, want %d", path, resp.StatusCode, want)
		}
		var body response.Response
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Success || body.Error == "" {
			t.Errorf("%s: body = %+v", path, body)
		}
	}
}

func TestAuthRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/login", AuthRateLimiter(2), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		codes = append(codes, resp.StatusCode)
	}
	if codes[0] != fiber.StatusOK || codes[1] != fiber.StatusOK || codes[2] != fiber.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}

func TestCorsConfig(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")

	dev := corsConfig(&config.Config{AppMode: "dev"})
	if dev.AllowOrigins != "*" || dev.AllowCredentials {
		t.Errorf("dev cors = %+v", dev)
	}

	prod := corsConfig(&config.Config{AppMode: "prod"})
	if !prod.AllowCredentials || prod.AllowOrigins == "*" {
		t.Errorf("prod cors = %+v", prod)
	}
}

func TestPrivateCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/stats", PrivateCacheHeaders(30*time.Second), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/denied", PrivateCacheHeaders(30*time.Second), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusForbidden)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/stats", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got := resp.Header.Get("Cache-Control"); got != "private, max-age=30" {
		t.Errorf("Cache-Control = %q", got)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/denied", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got := resp.Header.Get("Cache-Control"); got != "" {
		t.Errorf("error reply cached: %q", got)
	}
}
