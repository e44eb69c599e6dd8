package handlers

import (
	"mandoubi/internal/core/services"
	"mandoubi/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InstitutionHandler handles prospect and customer sites
type InstitutionHandler struct {
	institutionService *services.InstitutionService
}

// NewInstitutionHandler creates a new institution handler
func NewInstitutionHandler(institutionService *services.InstitutionService) *InstitutionHandler {
	return &InstitutionHandler{institutionService: institutionService}
}

// List handles listing institutions
// @Summary List institutions
// @Tags Institutions
// @Produce json
// @Security BearerAuth
// @Param search query string false "Filter by name or city"
// @Success 200 {object} response.Response
// @Router /institutions [get]
func (h *InstitutionHandler) List(c *fiber.Ctx) error {
	institutions, err := h.institutionService.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return handleError(c, err, "Failed to list institutions")
	}
	return response.Success(c, "Institutions retrieved successfully", institutions)
}

// LogVisit handles an agent visit
// @Summary Log a visit
// @Description Creates an INTERESTED institution or refreshes the last visit of an existing one
// @Tags Institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.LogVisitInput true "Visit"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /institutions/visits [post]
func (h *InstitutionHandler) LogVisit(c *fiber.Ctx) error {
	agent, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.LogVisitInput
	if ok, err := bind(c, &input); !ok {
		return err
	}

	institution, err := h.institutionService.LogVisit(c.UserContext(), agent, &input)
	if err != nil {
		return handleError(c, err, "Failed to log visit")
	}
	return response.Success(c, "Visit logged successfully", institution)
}

// Delete handles removing an institution
// @Summary Delete institution
// @Tags Institutions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /institutions/{id} [delete]
func (h *InstitutionHandler) Delete(c *fiber.Ctx) error {
	if err := h.institutionService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, err, "Failed to delete institution")
	}
	return response.Success(c, "Institution deleted successfully", nil)
}
