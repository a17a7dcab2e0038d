package entity

import "time"

// NotificationType is the kind of event a notification reports.
type NotificationType string

const (
	NotificationComment    NotificationType = "comment"
	NotificationStatus     NotificationType = "status"
	NotificationAssignment NotificationType = "assignment"
)

// Notification is a derived per-user record. It is mutated only by the
// mark-as-read transition.
type Notification struct {
	ID        int              `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	UserID    int              `json:"userId"`
	IssueID   int              `json:"issueId"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
