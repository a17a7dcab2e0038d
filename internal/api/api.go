package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"issue-tracker/internal/auth"
	"issue-tracker/internal/entity"
	"issue-tracker/internal/repository"
	"issue-tracker/internal/service"
)

// Handler exposes the HTTP/JSON API over the service layer.
type Handler struct {
	users         *service.UserService
	issues        *service.IssueService
	notifications *service.NotificationService
	attachments   *service.AttachmentService
	analytics     *service.AnalyticsService
}

func NewHandler(
	users *service.UserService,
	issues *service.IssueService,
	notifications *service.NotificationService,
	attachments *service.AttachmentService,
	analytics *service.AnalyticsService,
) *Handler {
	return &Handler{
		users:         users,
		issues:        issues,
		notifications: notifications,
		attachments:   attachments,
		analytics:     analytics,
	}
}

// RegisterRoutes wires every endpoint onto the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/auth/register", h.Register)
	e.POST("/api/auth/login", h.Login)
	e.GET("/api/auth/user", h.CurrentUser)

	e.GET("/api/issues", h.ListIssues)
	e.POST("/api/issues", h.CreateIssue)
	e.GET("/api/issues/:id", h.GetIssue)
	e.PATCH("/api/issues/:id", h.UpdateIssue)
	e.DELETE("/api/issues/:id", h.DeleteIssue)

	e.GET("/api/issues/:id/comments", h.ListComments)
	e.POST("/api/issues/:id/comments", h.AddComment)

	e.GET("/api/issues/:id/attachments", h.ListAttachments)
	e.POST("/api/issues/:id/attachments", h.UploadAttachment)
	e.GET("/api/download/:fileId", h.DownloadAttachment)

	e.GET("/api/notifications", h.ListNotifications)
	e.PATCH("/api/notifications/:id/read", h.MarkNotificationRead)

	e.GET("/api/analytics/summary", h.AnalyticsSummary)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": "issue-tracker",
			"time":    time.Now().Format(time.RFC3339),
		})
	})
}

// jsonError maps service and repository errors onto the status taxonomy:
// validation 400, auth 401, not-found 404, conflict 409, everything
// else 500.
func jsonError(c echo.Context, err error) error {
	var validation *entity.ValidationError
	switch {
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, map[string]string{"message": validation.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"message": "not found"})
	case errors.Is(err, repository.ErrUsernameTaken):
		return c.JSON(http.StatusConflict, map[string]string{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "an unknown error occurred"})
	}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"message": message})
}

// bearerToken pulls the token out of the Authorization header.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	return strings.TrimPrefix(header, "Bearer ")
}
