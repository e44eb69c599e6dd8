package handlers

import (
	"mandoubi/internal/core/services"
	"mandoubi/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles reports, the admin dashboard and the AI insight
type DashboardHandler struct {
	reportService  *services.ReportService
	requestService *services.RequestService
	insightService *services.InsightService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	reportService *services.ReportService,
	requestService *services.RequestService,
	insightService *services.InsightService,
) *DashboardHandler {
	return &DashboardHandler{
		reportService:  reportService,
		requestService: requestService,
		insightService: insightService,
	}
}

// GetSummary returns the sales report
// @Summary Sales report
// @Description Revenue, commission, conversion and per-agent breakdown (Admin only)
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /reports/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	report, err := h.reportService.Report(c.UserContext())
	if err != nil {
		return handleError(c, err, "Failed to build report")
	}
	return response.Success(c, "Report retrieved successfully", report)
}

// GetAdminDashboard returns admin dashboard data
// @Summary Admin Dashboard
// @Description Today's activity, last seven days and subscription mix (Admin only)
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /reports/dashboard [get]
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	data, err := h.reportService.Dashboard(c.UserContext())
	if err != nil {
		return handleError(c, err, "Failed to get admin dashboard")
	}
	return response.Success(c, "Admin dashboard retrieved successfully", data)
}

// GetAgentStats returns the agent's own figures
// @Summary Agent statistics
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reports/me [get]
func (h *DashboardHandler) GetAgentStats(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	stats, err := h.reportService.AgentStats(c.UserContext(), userID)
	if err != nil {
		return handleError(c, err, "Failed to get agent statistics")
	}
	return response.Success(c, "Agent statistics retrieved successfully", stats)
}

// GetInsight asks the AI for a performance analysis
// @Summary Performance insight
// @Description Always answers 200; available=false when the analysis could not be produced
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reports/insight [post]
func (h *DashboardHandler) GetInsight(c *fiber.Ctx) error {
	requests, err := h.requestService.ListAll(c.UserContext())
	if err != nil {
		return handleError(c, err, "Failed to load requests")
	}

	insight := h.insightService.Analyze(c.UserContext(), requests)
	return response.Success(c, "Insight generated", insight)
}
