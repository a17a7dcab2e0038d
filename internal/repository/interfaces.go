package repository

import (
	"context"
	"errors"

	"issue-tracker/internal/entity"
)

// ErrNotFound is returned when a referenced id does not exist.
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken is returned when registering a duplicate username.
var ErrUsernameTaken = errors.New("username already exists")

// Collection names used for id sequencing.
const (
	CollectionUsers         = "users"
	CollectionIssues        = "issues"
	CollectionComments      = "comments"
	CollectionAttachments   = "attachments"
	CollectionNotifications = "notifications"
)

// Sequencer hands out monotonically increasing integer ids per collection.
// NextID must never return the same value twice for a collection, even
// under concurrent callers.
type Sequencer interface {
	NextID(ctx context.Context, collection string) (int, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

type IssueRepository interface {
	Create(ctx context.Context, issue *entity.Issue) (*entity.Issue, error)
	GetByID(ctx context.Context, id int) (*entity.Issue, error)
	// List returns all issues ordered by createdAt descending.
	List(ctx context.Context) ([]entity.Issue, error)
	Update(ctx context.Context, id int, update *entity.IssueUpdate) (*entity.Issue, error)
	// Delete removes the issue and its comments, attachments and
	// notifications.
	Delete(ctx context.Context, id int) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error)
	// ListByIssue returns the issue's comments ordered by createdAt descending.
	ListByIssue(ctx context.Context, issueID int) ([]entity.Comment, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.Attachment) (*entity.Attachment, error)
	GetByID(ctx context.Context, id int) (*entity.Attachment, error)
	ListByIssue(ctx context.Context, issueID int) ([]entity.Attachment, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) (*entity.Notification, error)
	// ListByUser returns the user's notifications ordered by createdAt descending.
	ListByUser(ctx context.Context, userID int) ([]entity.Notification, error)
	// MarkRead flips read to true. Idempotent; ErrNotFound on a missing id.
	MarkRead(ctx context.Context, id int) (*entity.Notification, error)
}
