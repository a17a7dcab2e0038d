package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"issue-tracker/internal/entity"
)

// Register creates a user --> POST /api/auth/register
func (h *Handler) Register(c echo.Context) error {
	user := entity.User{}
	if err := c.Bind(&user); err != nil {
		return badRequest(c, "invalid request payload")
	}

	created, err := h.users.Register(c.Request().Context(), &user)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, created.Sanitized())
}

// Login checks credentials and issues a session token --> POST /api/auth/login
func (h *Handler) Login(c echo.Context) error {
	login := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&login); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if login.Username == "" || login.Password == "" {
		return badRequest(c, "username and password are required")
	}

	user, token, err := h.users.Login(c.Request().Context(), login.Username, login.Password)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":  user.Sanitized(),
		"token": token,
	})
}

// CurrentUser resolves the bearer token --> GET /api/auth/user
func (h *Handler) CurrentUser(c echo.Context) error {
	user, err := h.users.CurrentUser(c.Request().Context(), bearerToken(c))
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, user.Sanitized())
}
