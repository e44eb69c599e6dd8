package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"mandoubi/internal/core/domain"
	"mandoubi/internal/core/services"
	"mandoubi/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidInput, fiber.StatusBadRequest},
		{domain.ErrMissingReason, fiber.StatusBadRequest},
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{services.ErrTokenExpired, fiber.StatusUnauthorized},
		{services.ErrSessionClosed, fiber.StatusUnauthorized},
		{services.ErrInvalidToken, fiber.StatusUnauthorized},
		{domain.ErrAccountSuspended, fiber.StatusForbidden},
		{domain.ErrAgentSuspended, fiber.StatusForbidden},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{domain.ErrNotFound, fiber.StatusNotFound},
		{domain.ErrDuplicateEntry, fiber.StatusConflict},
		{domain.ErrInvalidTransition, fiber.StatusConflict},
		{domain.ErrInvalidReference, fiber.StatusUnprocessableEntity},
		{domain.ErrUpstreamUnavailable, fiber.StatusBadGateway},
		{fmt.Errorf("request r1: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return handleError(c, tc.err, "Failed")
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}

			var body response.Response
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success || body.Error == "" {
				t.Errorf("body = %+v, want an error envelope", body)
			}
		})
	}
}

type bindTarget struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func bindApp() *fiber.App {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var in bindTarget
		if ok, err := bind(c, &in); !ok {
			return err
		}
		return response.Success(c, "ok", in)
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, out
}

func TestBind(t *testing.T) {
	app := bindApp()

	t.Run("valid body", func(t *testing.T) {
		code, _ := postJSON(t, app, `{"name":"Sara"}`)
		if code != fiber.StatusOK {
			t.Errorf("status = %d, want 200", code)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		code, body := postJSON(t, app, `{"name":`)
		if code != fiber.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
		if body["error"] != "Invalid request body" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("field errors are listed by json name", func(t *testing.T) {
		code, body := postJSON(t, app, `{"email":"nope"}`)
		if code != fiber.StatusBadRequest {
			t.Fatalf("status = %d, want 400", code)
		}
		fields, ok := body["data"].(map[string]interface{})
		if !ok {
			t.Fatalf("data = %v, want field map", body["data"])
		}
		if _, ok := fields["name"]; !ok {
			t.Errorf("missing name error in %v", fields)
		}
		if _, ok := fields["email"]; !ok {
			t.Errorf("missing email error in %v", fields)
		}
	})
}

func TestCurrentUserLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if _, ok := currentUser(c); ok {
			t.Error("currentUser found a user on a bare request")
		}
		if _, ok := currentUserID(c); ok {
			t.Error("currentUserID found an id on a bare request")
		}

		c.Locals("userID", "u1")
		c.Locals("user", &domain.User{ID: "u1"})
		if id, ok := currentUserID(c); !ok || id != "u1" {
			t.Errorf("currentUserID = %q, %v", id, ok)
		}
		if u, ok := currentUser(c); !ok || u.ID != "u1" {
			t.Errorf("currentUser = %+v, %v", u, ok)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/", nil)); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
}
