package service

import (
	"fmt"

	"issue-tracker/internal/entity"
)

// Notification derivation rules. Each returns the records to create for a
// triggering mutation; the issue passed in carries the pre-update
// reporter and assignee, which is what recipient selection keys on.

// assignmentNotification notifies a newly assigned user.
func assignmentNotification(issue *entity.Issue, assigneeID int) entity.Notification {
	return entity.Notification{
		Type:    entity.NotificationAssignment,
		Message: fmt.Sprintf("You were assigned to %q", issue.Title),
		UserID:  assigneeID,
		IssueID: issue.ID,
	}
}

// statusChangeNotifications notifies the reporter, and the assignee when
// one exists and differs from the reporter. Reporter == assignee yields a
// single record.
func statusChangeNotifications(issue *entity.Issue, newStatus entity.Status) []entity.Notification {
	message := fmt.Sprintf("Issue %q status changed to %s", issue.Title, newStatus)

	notifications := []entity.Notification{{
		Type:    entity.NotificationStatus,
		Message: message,
		UserID:  issue.ReporterID,
		IssueID: issue.ID,
	}}

	if issue.AssigneeID != nil && *issue.AssigneeID != issue.ReporterID {
		notifications = append(notifications, entity.Notification{
			Type:    entity.NotificationStatus,
			Message: message,
			UserID:  *issue.AssigneeID,
			IssueID: issue.ID,
		})
	}

	return notifications
}

// commentNotifications notifies the reporter unless they wrote the
// comment, and the assignee unless they wrote it, are unset, or are the
// reporter. Yields zero, one or two records; the reporter is never
// notified twice.
func commentNotifications(issue *entity.Issue, commenterID int) []entity.Notification {
	message := fmt.Sprintf("New comment on %q", issue.Title)

	notifications := []entity.Notification{}

	if issue.ReporterID != commenterID {
		notifications = append(notifications, entity.Notification{
			Type:    entity.NotificationComment,
			Message: message,
			UserID:  issue.ReporterID,
			IssueID: issue.ID,
		})
	}

	if issue.AssigneeID != nil && *issue.AssigneeID != commenterID && *issue.AssigneeID != issue.ReporterID {
		notifications = append(notifications, entity.Notification{
			Type:    entity.NotificationComment,
			Message: message,
			UserID:  *issue.AssigneeID,
			IssueID: issue.ID,
		})
	}

	return notifications
}
