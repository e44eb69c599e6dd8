package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mandoubi/internal/core/domain"
	"mandoubi/internal/core/services"
	"mandoubi/internal/session"

	"github.com/gofiber/fiber/v2"
)

type stubAuth struct {
	sessions map[string]*session.Session
	err      error
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*session.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	sess, ok := s.sessions[token]
	if !ok {
		return nil, services.ErrInvalidToken
	}
	return sess, nil
}

func newStubAuth() *stubAuth {
	return &stubAuth{sessions: map[string]*session.Session{
		"agent-token": {ID: "s1", User: &domain.User{ID: "a1", Username: "sara", Role: domain.RoleAgent}},
		"admin-token": {ID: "s2", User: &domain.User{ID: "d1", Username: "admin1", Role: domain.RoleAdmin}},
		"super-token": {ID: "s3", User: &domain.User{ID: "p1", Username: "omar", Role: domain.RoleSupervisor}},
	}}
}

func protectedApp(auth Authenticator, guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{AuthMiddleware(auth)}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userID").(string))
	})
	app.Get("/", handlers...)
	return app
}

func call(t *testing.T, app *fiber.App, setup func(r *http.Request)) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if setup != nil {
		setup(req)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	app := protectedApp(newStubAuth())

	cases := []struct {
		name  string
		setup func(r *http.Request)
		want  int
	}{
		{"no token", nil, fiber.StatusUnauthorized},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer agent-token") }, fiber.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: "admin-token"}) }, fiber.StatusOK},
		{"unknown token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, fiber.StatusUnauthorized},
		{"not a bearer scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic agent-token") }, fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := call(t, app, tc.setup); got != tc.want {
				t.Errorf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAuthMiddlewareErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrTokenExpired, fiber.StatusUnauthorized},
		{services.ErrSessionClosed, fiber.StatusUnauthorized},
		{errors.New("redis down"), fiber.StatusBadGateway},
	}
	for _, tc := range cases {
		app := protectedApp(&stubAuth{err: tc.err})
		got := call(t, app, func(r *http.Request) { r.Header.Set("Authorization", "Bearer agent-token") })
		if got != tc.want {
			t.Errorf("%v: status = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestRoleGuards(t *testing.T) {
	auth := newStubAuth()
	bearer := func(token string) func(r *http.Request) {
		return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
	}

	cases := []struct {
		name  string
		guard fiber.Handler
		token string
		want  int
	}{
		{"admin route, director", AdminOnly(), "admin-token", fiber.StatusOK},
		{"admin route, supervisor", AdminOnly(), "super-token", fiber.StatusOK},
		{"admin route, agent", AdminOnly(), "agent-token", fiber.StatusForbidden},
		{"director route, supervisor", DirectorOnly(), "super-token", fiber.StatusForbidden},
		{"director route, director", DirectorOnly(), "admin-token", fiber.StatusOK},
		{"agent route, agent", AgentOnly(), "agent-token", fiber.StatusOK},
		{"agent route, director", AgentOnly(), "admin-token", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := protectedApp(auth, tc.guard)
			if got := call(t, app, bearer(tc.token)); got != tc.want {
				t.Errorf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRoleMiddlewareWithoutAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/", AdminOnly(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	if got := call(t, app, nil); got != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", got)
	}
}
