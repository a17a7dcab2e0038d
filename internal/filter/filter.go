// Package filter narrows an issue list by user-selected facets. Facets
// compose with logical AND; an unset facet passes everything.
package filter

import (
	"strconv"
	"strings"
	"time"

	"issue-tracker/internal/entity"
)

// Assignee facet sentinels. Any other value is parsed as a user id.
const (
	AssigneeMe         = "me"
	AssigneeUnassigned = "unassigned"
)

type Criteria struct {
	Status   []entity.Status
	Priority []entity.Priority
	Category string
	Assignee string
	// From and To bound createdAt inclusively. To is treated as a date
	// and extended to the end of that day.
	From time.Time
	To   time.Time
	// Search matches case-insensitively against title or description.
	// It composes with the other facets like any other criterion.
	Search string
}

// Apply returns the issues matching every set facet. currentUserID
// resolves the "me" assignee value.
func Apply(issues []entity.Issue, c Criteria, currentUserID int) []entity.Issue {
	matched := []entity.Issue{}
	for _, issue := range issues {
		if Match(issue, c, currentUserID) {
			matched = append(matched, issue)
		}
	}
	return matched
}

// Match reports whether a single issue passes all set facets.
func Match(issue entity.Issue, c Criteria, currentUserID int) bool {
	if len(c.Status) > 0 && !containsStatus(c.Status, issue.Status) {
		return false
	}
	if len(c.Priority) > 0 && !containsPriority(c.Priority, issue.Priority) {
		return false
	}
	if c.Category != "" && string(issue.Category) != c.Category {
		return false
	}
	if !matchAssignee(issue, c.Assignee, currentUserID) {
		return false
	}
	if !c.From.IsZero() && issue.CreatedAt.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && issue.CreatedAt.After(endOfDay(c.To)) {
		return false
	}
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(issue.Title), q) &&
			!strings.Contains(strings.ToLower(issue.Description), q) {
			return false
		}
	}
	return true
}

func matchAssignee(issue entity.Issue, assignee string, currentUserID int) bool {
	switch assignee {
	case "":
		return true
	case AssigneeMe:
		return issue.AssigneeID != nil && *issue.AssigneeID == currentUserID
	case AssigneeUnassigned:
		return issue.AssigneeID == nil
	}
	id, err := strconv.Atoi(assignee)
	if err != nil {
		// Unrecognized value filters nothing.
		return true
	}
	return issue.AssigneeID != nil && *issue.AssigneeID == id
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func containsStatus(set []entity.Status, s entity.Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(set []entity.Priority, p entity.Priority) bool {
	for _, v := range set {
		if v == p {
			return true
		}
	}
	return false
}
