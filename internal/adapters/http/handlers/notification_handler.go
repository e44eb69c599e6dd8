package handlers

import (
	"mandoubi/internal/core/services"
	"mandoubi/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles the current user's notifications
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles listing notifications, newest first
// @Summary List my notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	notifications, err := h.notificationService.List(c.UserContext(), userID)
	if err != nil {
		return handleError(c, err, "Failed to list notifications")
	}
	return response.Success(c, "Notifications retrieved successfully", notifications)
}

// UnreadCount handles the badge count
// @Summary Count unread notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	count, err := h.notificationService.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return handleError(c, err, "Failed to count notifications")
	}
	return response.Success(c, "Unread count retrieved successfully", fiber.Map{"unread_count": count})
}

// MarkRead handles marking one notification as read
// @Summary Mark notification read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.notificationService.MarkRead(c.UserContext(), userID, c.Params("id")); err != nil {
		return handleError(c, err, "Failed to mark notification")
	}
	return response.Success(c, "Notification marked as read", nil)
}

// MarkAllRead handles marking every notification as read
// @Summary Mark all notifications read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.notificationService.MarkAllRead(c.UserContext(), userID); err != nil {
		return handleError(c, err, "Failed to mark notifications")
	}
	return response.Success(c, "All notifications marked as read", nil)
}
