package handlers

import (
	"mandoubi/internal/core/services"
	"mandoubi/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles agent, administrator and profile endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListAgents handles listing all agents
// @Summary List agents
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /agents [get]
func (h *UserHandler) ListAgents(c *fiber.Ctx) error {
	agents, err := h.userService.ListAgents(c.UserContext())
	if err != nil {
		return handleError(c, err, "Failed to list agents")
	}
	return response.Success(c, "Agents retrieved successfully", agents)
}

// CreateAgent handles creating an agent account
// @Summary Create agent
// @Tags Agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "Agent data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /agents [post]
func (h *UserHandler) CreateAgent(c *fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateUserInput
	if ok, err := bind(c, &input); !ok {
		return err
	}

	agent, err := h.userService.CreateAgent(c.UserContext(), actorID, &input)
	if err != nil {
		return handleError(c, err, "Failed to create agent")
	}
	return response.Created(c, "Agent created successfully", agent)
}

// GetAgent handles getting an agent by ID
// @Summary Get agent
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agents/{id} [get]
func (h *UserHandler) GetAgent(c *fiber.Ctx) error {
	agent, err := h.userService.GetAgent(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to get agent")
	}
	return response.Success(c, "Agent retrieved successfully", agent)
}

// UpdateAgent handles updating an agent account
// @Summary Update agent
// @Tags Agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Param body body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /agents/{id} [put]
func (h *UserHandler) UpdateAgent(c *fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateUserInput
	if ok, err := bind(c, &input); !ok {
		return err
	}

	agent, err := h.userService.UpdateAgent(c.UserContext(), actorID, c.Params("id"), input.ToUpdate())
	if err != nil {
		return handleError(c, err, "Failed to update agent")
	}
	return response.Success(c, "Agent updated successfully", agent)
}

// ToggleAgentStatus handles suspending or reactivating an agent
// @Summary Toggle agent status
// @Description Flip between ACTIVE and SUSPENDED; suspension closes open sessions
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agents/{id}/status [patch]
func (h *UserHandler) ToggleAgentStatus(c *fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	agent, err := h.userService.ToggleAgentStatus(c.UserContext(), actorID, c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to change agent status")
	}
	return response.Success(c, "Agent status updated successfully", agent)
}

// ListAdmins handles listing administrative accounts
// @Summary List administrators
// @Tags Admins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admins [get]
func (h *UserHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.userService.ListAdmins(c.UserContext())
	if err != nil {
		return handleError(c, err, "Failed to list administrators")
	}
	return response.Success(c, "Administrators retrieved successfully", admins)
}

// CreateAdmin handles creating an administrative account (director only)
// @Summary Create administrator
// @Tags Admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "Administrator data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admins [post]
func (h *UserHandler) CreateAdmin(c *fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateUserInput
	if ok, err := bind(c, &input); !ok {
		return err
	}

	admin, err := h.userService.CreateAdmin(c.UserContext(), actorID, &input)
	if err != nil {
		return handleError(c, err, "Failed to create administrator")
	}
	return response.Created(c, "Administrator created successfully", admin)
}

// UpdateAdmin handles updating an administrative account
// @Summary Update administrator
// @Description Lesser administrators cannot change another administrator's password; the field is ignored
// @Tags Admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Administrator ID"
// @Param body body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admins/{id} [put]
func (h *UserHandler) UpdateAdmin(c *fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateUserInput
	if ok, err := bind(c, &input); !ok {
		return err
	}

	admin, err := h.userService.UpdateAdmin(c.UserContext(), actorID, c.Params("id"), input.ToUpdate())
	if err != nil {
		return handleError(c, err, "Failed to update administrator")
	}
	return response.Success(c, "Administrator updated successfully", admin)
}

// UpdateProfile handles the current user's own profile
// @Summary Update own profile
// @Description Agents may change only name and city
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateUserInput
	if ok, err := bind(c, &input); !ok {
		return err
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), actorID, input.ToUpdate())
	if err != nil {
		return handleError(c, err, "Failed to update profile")
	}
	return response.Success(c, "Profile updated successfully", user)
}
