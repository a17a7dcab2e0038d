package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ListNotifications returns the authenticated user's feed --> GET /api/notifications
func (h *Handler) ListNotifications(c echo.Context) error {
	user, err := h.users.CurrentUser(c.Request().Context(), bearerToken(c))
	if err != nil {
		return jsonError(c, err)
	}

	notifications, err := h.notifications.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead --> PATCH /api/notifications/:id/read
func (h *Handler) MarkNotificationRead(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid notification ID")
	}

	notification, err := h.notifications.MarkRead(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, notification)
}
