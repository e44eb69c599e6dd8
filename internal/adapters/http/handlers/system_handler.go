package handlers

import (
	"mandoubi/internal/core/services"
	"mandoubi/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SystemHandler handles the product catalogue
type SystemHandler struct {
	systemService *services.SystemService
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(systemService *services.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

// List handles listing products
// @Summary List system products
// @Tags Systems
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /systems [get]
func (h *SystemHandler) List(c *fiber.Ctx) error {
	systems, err := h.systemService.List(c.UserContext())
	if err != nil {
		return handleError(c, err, "Failed to list systems")
	}
	return response.Success(c, "Systems retrieved successfully", systems)
}

// Get handles getting a product
// @Summary Get system product
// @Tags Systems
// @Produce json
// @Security BearerAuth
// @Param id path string true "System ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /systems/{id} [get]
func (h *SystemHandler) Get(c *fiber.Ctx) error {
	system, err := h.systemService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to get system")
	}
	return response.Success(c, "System retrieved successfully", system)
}

// Create handles adding a product
// @Summary Create system product
// @Description All three tiers must carry a price and a commission
// @Tags Systems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SystemInput true "Product"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /systems [post]
func (h *SystemHandler) Create(c *fiber.Ctx) error {
	var input services.SystemInput
	if ok, err := bind(c, &input); !ok {
		return err
	}

	system, err := h.systemService.Create(c.UserContext(), &input)
	if err != nil {
		return handleError(c, err, "Failed to create system")
	}
	return response.Created(c, "System created successfully", system)
}

// Update handles replacing a product
// @Summary Update system product
// @Tags Systems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "System ID"
// @Param body body services.SystemInput true "Product"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /systems/{id} [put]
func (h *SystemHandler) Update(c *fiber.Ctx) error {
	var input services.SystemInput
	if ok, err := bind(c, &input); !ok {
		return err
	}

	system, err := h.systemService.Update(c.UserContext(), c.Params("id"), &input)
	if err != nil {
		return handleError(c, err, "Failed to update system")
	}
	return response.Success(c, "System updated successfully", system)
}

// Delete handles removing a product
// @Summary Delete system product
// @Description Historical requests keep their recorded system name
// @Tags Systems
// @Produce json
// @Security BearerAuth
// @Param id path string true "System ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /systems/{id} [delete]
func (h *SystemHandler) Delete(c *fiber.Ctx) error {
	if err := h.systemService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err, "Failed to delete system")
	}
	return response.Success(c, "System deleted successfully", nil)
}
