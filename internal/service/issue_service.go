package service

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"issue-tracker/internal/entity"
	"issue-tracker/internal/events"
	"issue-tracker/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// IssueService owns the issue lifecycle and the notification side
// effects of issue mutations.
type IssueService struct {
	issues        repository.IssueRepository
	comments      repository.CommentRepository
	notifications repository.NotificationRepository
	publisher     *events.Publisher
}

// NewIssueService creates a new instance of IssueService.
func NewIssueService(
	issues repository.IssueRepository,
	comments repository.CommentRepository,
	notifications repository.NotificationRepository,
	publisher *events.Publisher,
) *IssueService {
	return &IssueService{
		issues:        issues,
		comments:      comments,
		notifications: notifications,
		publisher:     publisher,
	}
}

// Create validates and persists a new issue. An initial assignee gets an
// assignment notification.
func (s *IssueService) Create(ctx context.Context, issue *entity.Issue) (*entity.Issue, error) {
	if err := issue.Validate(); err != nil {
		return nil, err
	}

	created, err := s.issues.Create(ctx, issue)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating issue")
		return nil, err
	}

	if created.AssigneeID != nil && *created.AssigneeID > 0 {
		s.notify(ctx, assignmentNotification(created, *created.AssigneeID))
	}

	s.publishEvent(ctx, created, "created")

	return created, nil
}

func (s *IssueService) Get(ctx context.Context, id int) (*entity.Issue, error) {
	return s.issues.GetByID(ctx, id)
}

func (s *IssueService) List(ctx context.Context) ([]entity.Issue, error) {
	return s.issues.List(ctx)
}

// Update applies a partial update. The pre-update issue decides which
// notification rules fire: a status change notifies reporter and
// assignee, an assignee change notifies the new assignee.
func (s *IssueService) Update(ctx context.Context, id int, update *entity.IssueUpdate) (*entity.Issue, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.issues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.issues.Update(ctx, id, update)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating issue %d", id)
		return nil, err
	}

	if update.Status != nil && *update.Status != existing.Status {
		s.notify(ctx, statusChangeNotifications(existing, *update.Status)...)
	}

	if update.AssigneeID != nil && *update.AssigneeID > 0 && (existing.AssigneeID == nil || *existing.AssigneeID != *update.AssigneeID) {
		s.notify(ctx, assignmentNotification(existing, *update.AssigneeID))
	}

	s.publishEvent(ctx, updated, "updated")

	return updated, nil
}

// Delete removes the issue together with its comments, attachments and
// notifications.
func (s *IssueService) Delete(ctx context.Context, id int) error {
	issue, err := s.issues.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.issues.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting issue %d", id)
		return err
	}

	s.publishEvent(ctx, issue, "deleted")

	return nil
}

// AddComment persists a comment on an existing issue and notifies the
// reporter and assignee per the comment rule.
func (s *IssueService) AddComment(ctx context.Context, issueID int, comment *entity.Comment) (*entity.Comment, error) {
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	comment.IssueID = issueID
	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating comment on issue %d", issueID)
		return nil, err
	}

	s.notify(ctx, commentNotifications(issue, comment.UserID)...)

	return created, nil
}

func (s *IssueService) ListComments(ctx context.Context, issueID int) ([]entity.Comment, error) {
	if _, err := s.issues.GetByID(ctx, issueID); err != nil {
		return nil, err
	}
	return s.comments.ListByIssue(ctx, issueID)
}

// notify writes notification records. A failed write never rolls back
// the mutation that triggered it; it is logged and the request proceeds.
func (s *IssueService) notify(ctx context.Context, notifications ...entity.Notification) {
	for i := range notifications {
		if _, err := s.notifications.Create(ctx, &notifications[i]); err != nil {
			logger.Error().Err(err).Msgf("Error creating %s notification for user %d", notifications[i].Type, notifications[i].UserID)
		}
	}
}

func (s *IssueService) publishEvent(ctx context.Context, issue *entity.Issue, action string) {
	if err := s.publisher.PublishIssueEvent(ctx, issue, action); err != nil {
		logger.Error().Err(err).Msgf("Error publishing issue %s event", action)
	}
}
