package entity

import "time"

// Status is the lifecycle state of an issue. Any status may move to any
// other status; there is no enforced transition graph.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Priority of an issue.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Category classifies what kind of work an issue is.
type Category string

const (
	CategoryBug           Category = "bug"
	CategoryFeature       Category = "feature"
	CategoryDocumentation Category = "documentation"
	CategorySecurity      Category = "security"
	CategoryPerformance   Category = "performance"
)

// StatusValues, PriorityValues and CategoryValues enumerate the closed
// domains. Aggregation maps are zero-initialized over these so every key
// is present in output even when no issue matches.
var (
	StatusValues   = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
	PriorityValues = []Priority{PriorityHigh, PriorityMedium, PriorityLow}
	CategoryValues = []Category{CategoryBug, CategoryFeature, CategoryDocumentation, CategorySecurity, CategoryPerformance}
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func (c Category) Valid() bool {
	switch c {
	case CategoryBug, CategoryFeature, CategoryDocumentation, CategorySecurity, CategoryPerformance:
		return true
	}
	return false
}

type Issue struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Category    Category  `json:"category"`
	AssigneeID  *int      `json:"assigneeId"`
	ReporterID  int       `json:"reporterId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks a new issue before it is persisted. Status defaults to
// open when omitted.
func (i *Issue) Validate() error {
	if i.Title == "" {
		return Invalid("title is required")
	}
	if i.Description == "" {
		return Invalid("description is required")
	}
	if i.ReporterID == 0 {
		return Invalid("reporterId is required")
	}
	if i.Status == "" {
		i.Status = StatusOpen
	}
	if !i.Status.Valid() {
		return Invalid("invalid status %q", i.Status)
	}
	if !i.Priority.Valid() {
		return Invalid("invalid priority %q", i.Priority)
	}
	if !i.Category.Valid() {
		return Invalid("invalid category %q", i.Category)
	}
	return nil
}

// IssueUpdate is a partial update. Nil fields are left unchanged.
type IssueUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Status      *Status   `json:"status"`
	Priority    *Priority `json:"priority"`
	Category    *Category `json:"category"`
	AssigneeID  *int      `json:"assigneeId"`
}

func (u *IssueUpdate) Validate() error {
	if u.Title != nil && *u.Title == "" {
		return Invalid("title cannot be empty")
	}
	if u.Description != nil && *u.Description == "" {
		return Invalid("description cannot be empty")
	}
	if u.Status != nil && !u.Status.Valid() {
		return Invalid("invalid status %q", *u.Status)
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return Invalid("invalid priority %q", *u.Priority)
	}
	if u.Category != nil && !u.Category.Valid() {
		return Invalid("invalid category %q", *u.Category)
	}
	return nil
}

// Apply merges the update into an issue. The caller refreshes UpdatedAt.
func (u *IssueUpdate) Apply(i *Issue) {
	if u.Title != nil {
		i.Title = *u.Title
	}
	if u.Description != nil {
		i.Description = *u.Description
	}
	if u.Status != nil {
		i.Status = *u.Status
	}
	if u.Priority != nil {
		i.Priority = *u.Priority
	}
	if u.Category != nil {
		i.Category = *u.Category
	}
	if u.AssigneeID != nil {
		i.AssigneeID = u.AssigneeID
	}
}
