package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"issue-tracker/internal/entity"
	"issue-tracker/internal/filter"
)

const dateLayout = "2006-01-02"

// AnalyticsSummary --> GET /api/analytics/summary
// Query parameters: status, priority (comma-separated), category,
// assignee, from, to (YYYY-MM-DD).
func (h *Handler) AnalyticsSummary(c echo.Context) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	// "me" only means something when the caller is authenticated;
	// anonymous callers get no matches for it.
	currentUserID := 0
	if user, err := h.users.CurrentUser(c.Request().Context(), bearerToken(c)); err == nil {
		currentUserID = user.ID
	}

	summary, err := h.analytics.Summarize(c.Request().Context(), criteria, currentUserID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func parseCriteria(c echo.Context) (filter.Criteria, error) {
	criteria := filter.Criteria{
		Category: c.QueryParam("category"),
		Assignee: c.QueryParam("assignee"),
		Search:   c.QueryParam("search"),
	}

	for _, v := range splitParam(c.QueryParam("status")) {
		criteria.Status = append(criteria.Status, entity.Status(v))
	}
	for _, v := range splitParam(c.QueryParam("priority")) {
		criteria.Priority = append(criteria.Priority, entity.Priority(v))
	}

	if from := c.QueryParam("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return criteria, entity.Invalid("invalid from date %q", from)
		}
		criteria.From = t
	}
	if to := c.QueryParam("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return criteria, entity.Invalid("invalid to date %q", to)
		}
		criteria.To = t
	}

	return criteria, nil
}

func splitParam(param string) []string {
	if param == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(param, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
