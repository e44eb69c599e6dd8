package handlers

import (
	"mandoubi/internal/core/domain"
	"mandoubi/internal/core/services"
	"mandoubi/internal/pkg/pagination"
	"mandoubi/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler handles sales request endpoints
type RequestHandler struct {
	requestService *services.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// List handles listing every request (administrators)
// @Summary List requests
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, ACCEPTED, REJECTED or NEED_INFO"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := domain.RequestStatus(c.Query("status"))

	requests, total, err := h.requestService.List(c.UserContext(), status, params.Offset, params.Limit)
	if err != nil {
		return handleError(c, err, "Failed to list requests")
	}
	return response.Paginated(c, "Requests retrieved successfully", requests, pagination.GetMeta(params, total))
}

// Create handles an agent submitting a request
// @Summary Submit request
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateRequestInput true "Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	agentID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateRequestInput
	if ok, err := bind(c, &input); !ok {
		return err
	}

	req, err := h.requestService.Create(c.UserContext(), agentID, &input)
	if err != nil {
		return handleError(c, err, "Failed to submit request")
	}
	return response.Created(c, "Request submitted successfully", req)
}

// ListMine handles an agent listing their own requests
// @Summary List my requests
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /requests/my [get]
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	agentID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requests, err := h.requestService.ListMine(c.UserContext(), agentID, domain.RequestStatus(c.Query("status")))
	if err != nil {
		return handleError(c, err, "Failed to list requests")
	}
	return response.Success(c, "Requests retrieved successfully", requests)
}

// Get handles getting one request
// @Summary Get request
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	viewer, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	req, err := h.requestService.Get(c.UserContext(), viewer, c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to get request")
	}
	return response.Success(c, "Request retrieved successfully", req)
}

// SetStatus handles an administrator decision
// @Summary Change request status
// @Description ACCEPTED and REJECTED are final; REJECTED needs a reason
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body services.SetStatusInput true "Decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /requests/{id}/status [put]
func (h *RequestHandler) SetStatus(c *fiber.Ctx) error {
	actorID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.SetStatusInput
	if ok, err := bind(c, &input); !ok {
		return err
	}

	req, err := h.requestService.SetStatus(c.UserContext(), actorID, c.Params("id"), &input)
	if err != nil {
		return handleError(c, err, "Failed to update request status")
	}
	return response.Success(c, "Request status updated successfully", req)
}
