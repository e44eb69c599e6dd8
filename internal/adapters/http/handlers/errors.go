package handlers

import (
	"errors"
	"log"

	"mandoubi/internal/core/domain"
	"mandoubi/internal/core/services"
	"mandoubi/internal/pkg/response"
	"mandoubi/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// bind parses the JSON body into dst and validates it.
// When ok is false the error response has already been written.
func bind(c *fiber.Ctx, dst interface{}) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return false, response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(dst); fields != nil {
		return false, response.ValidationFailed(c, fields)
	}
	return true, nil
}

// handleError maps a service error to its HTTP response
func handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Invalid input")
	case errors.Is(err, domain.ErrMissingReason):
		return response.BadRequest(c, "Rejection reason is required")

	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid username or password")
	case errors.Is(err, services.ErrTokenExpired):
		return response.Unauthorized(c, "Token expired, please login again")
	case errors.Is(err, services.ErrSessionClosed):
		return response.Unauthorized(c, "Session closed, please login again")
	case errors.Is(err, services.ErrInvalidToken):
		return response.Unauthorized(c, "Invalid token")

	case errors.Is(err, domain.ErrAccountSuspended):
		return response.Forbidden(c, "Account is suspended")
	case errors.Is(err, domain.ErrAgentSuspended):
		return response.Forbidden(c, "Agent is suspended, action blocked")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to perform this action")

	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Resource not found")

	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "Resource already exists")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, "Request status can no longer change")

	case errors.Is(err, domain.ErrInvalidReference):
		return response.UnprocessableEntity(c, "Referenced resource does not exist")

	case errors.Is(err, domain.ErrUpstreamUnavailable):
		log.Printf("❌ %s: %v", fallback, err)
		return response.BadGateway(c, "Service temporarily unavailable")
	}

	log.Printf("❌ %s: %v", fallback, err)
	return response.InternalServerError(c, fallback)
}

// currentUser returns the session's user snapshot set by the auth middleware
func currentUser(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals("user").(*domain.User)
	return user, ok && user != nil
}

// currentUserID returns the authenticated user id
func currentUserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("userID").(string)
	return id, ok && id != ""
}
