package middleware

import (
	"context"
	"errors"
	"strings"

	"mandoubi/internal/core/domain"
	"mandoubi/internal/core/services"
	"mandoubi/internal/pkg/response"
	"mandoubi/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Authenticator resolves an access token to its open session
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*session.Session, error)
}

// AuthMiddleware creates authentication middleware.
// A token whose session was closed is rejected even before it expires.
func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Try to get token from cookie first
		accessToken := c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token and hydrate the session
		sess, err := auth.Authenticate(c.UserContext(), accessToken)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				return response.Unauthorized(c, "Access token expired")
			case errors.Is(err, services.ErrSessionClosed):
				return response.Unauthorized(c, "Session closed, please login again")
			case errors.Is(err, services.ErrInvalidToken):
				return response.Unauthorized(c, "Invalid access token")
			}
			return response.BadGateway(c, "Session store unavailable")
		}

		// 5. Set user info in context
		c.Locals("userID", sess.User.ID)
		c.Locals("username", sess.User.Username)
		c.Locals("role", string(sess.User.Role))
		c.Locals("sessionID", sess.ID)
		c.Locals("user", sess.User)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if domain.Role(role) == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows every administrative role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.AdministrativeRoles...)
}

// DirectorOnly allows only the top administrative role
func DirectorOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// AgentOnly allows only field agents
func AgentOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAgent)
}
