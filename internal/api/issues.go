package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"issue-tracker/internal/entity"
)

func issueID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// ListIssues --> GET /api/issues
func (h *Handler) ListIssues(c echo.Context) error {
	issues, err := h.issues.List(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, issues)
}

// GetIssue --> GET /api/issues/:id
func (h *Handler) GetIssue(c echo.Context) error {
	id, ok := issueID(c)
	if !ok {
		return badRequest(c, "invalid issue ID")
	}

	issue, err := h.issues.Get(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, issue)
}

// CreateIssue --> POST /api/issues
func (h *Handler) CreateIssue(c echo.Context) error {
	issue := entity.Issue{}
	if err := c.Bind(&issue); err != nil {
		return badRequest(c, "invalid request payload")
	}

	created, err := h.issues.Create(c.Request().Context(), &issue)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateIssue applies a partial update --> PATCH /api/issues/:id
func (h *Handler) UpdateIssue(c echo.Context) error {
	id, ok := issueID(c)
	if !ok {
		return badRequest(c, "invalid issue ID")
	}

	update := entity.IssueUpdate{}
	if err := c.Bind(&update); err != nil {
		return badRequest(c, "invalid request payload")
	}

	updated, err := h.issues.Update(c.Request().Context(), id, &update)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteIssue --> DELETE /api/issues/:id
func (h *Handler) DeleteIssue(c echo.Context) error {
	id, ok := issueID(c)
	if !ok {
		return badRequest(c, "invalid issue ID")
	}

	if err := h.issues.Delete(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "issue deleted successfully"})
}

// ListComments --> GET /api/issues/:id/comments
func (h *Handler) ListComments(c echo.Context) error {
	id, ok := issueID(c)
	if !ok {
		return badRequest(c, "invalid issue ID")
	}

	comments, err := h.issues.ListComments(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}

// AddComment --> POST /api/issues/:id/comments
func (h *Handler) AddComment(c echo.Context) error {
	id, ok := issueID(c)
	if !ok {
		return badRequest(c, "invalid issue ID")
	}

	comment := entity.Comment{}
	if err := c.Bind(&comment); err != nil {
		return badRequest(c, "invalid request payload")
	}

	created, err := h.issues.AddComment(c.Request().Context(), id, &comment)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}
