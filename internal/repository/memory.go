package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"issue-tracker/internal/entity"
)

// MemoryStore keeps every collection in process memory behind one mutex.
// It satisfies all repository interfaces plus Sequencer, and backs tests
// and standalone runs where no MySQL instance is around.
type MemoryStore struct {
	mu sync.Mutex

	users         map[int]entity.User
	issues        map[int]entity.Issue
	comments      map[int]entity.Comment
	attachments   map[int]entity.Attachment
	notifications map[int]entity.Notification
	seq           map[string]int

	// now is swappable so tests can control timestamps.
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         map[int]entity.User{},
		issues:        map[int]entity.Issue{},
		comments:      map[int]entity.Comment{},
		attachments:   map[int]entity.Attachment{},
		notifications: map[int]entity.Notification{},
		seq:           map[string]int{},
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SetNow overrides the clock. Test use only.
func (s *MemoryStore) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) NextID(ctx context.Context, collection string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[collection]++
	return s.seq[collection], nil
}

func (s *MemoryStore) nextIDLocked(collection string) int {
	s.seq[collection]++
	return s.seq[collection]
}

// Users

func (s *MemoryStore) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, ErrUsernameTaken
		}
	}
	user.ID = s.nextIDLocked(CollectionUsers)
	user.CreatedAt = s.now()
	s.users[user.ID] = *user
	return user, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id int) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// Issues returns a typed view so one MemoryStore can be handed out as
// every repository without method-set collisions.
func (s *MemoryStore) Issues() *MemoryIssueRepository { return &MemoryIssueRepository{s} }

// Comments returns the comment view of the store.
func (s *MemoryStore) Comments() *MemoryCommentRepository { return &MemoryCommentRepository{s} }

// Attachments returns the attachment view of the store.
func (s *MemoryStore) Attachments() *MemoryAttachmentRepository {
	return &MemoryAttachmentRepository{s}
}

// Notifications returns the notification view of the store.
func (s *MemoryStore) Notifications() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{s}
}

type MemoryIssueRepository struct{ store *MemoryStore }

func (r *MemoryIssueRepository) Create(ctx context.Context, issue *entity.Issue) (*entity.Issue, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	issue.ID = s.nextIDLocked(CollectionIssues)
	now := s.now()
	issue.CreatedAt = now
	issue.UpdatedAt = now
	s.issues[issue.ID] = *issue
	return issue, nil
}

func (r *MemoryIssueRepository) GetByID(ctx context.Context, id int) (*entity.Issue, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	issue, ok := s.issues[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &issue, nil
}

func (r *MemoryIssueRepository) List(ctx context.Context) ([]entity.Issue, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	issues := make([]entity.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		issues = append(issues, issue)
	}
	sort.Slice(issues, func(i, j int) bool {
		if !issues[i].CreatedAt.Equal(issues[j].CreatedAt) {
			return issues[i].CreatedAt.After(issues[j].CreatedAt)
		}
		return issues[i].ID > issues[j].ID
	})
	return issues, nil
}

func (r *MemoryIssueRepository) Update(ctx context.Context, id int, update *entity.IssueUpdate) (*entity.Issue, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	issue, ok := s.issues[id]
	if !ok {
		return nil, ErrNotFound
	}
	update.Apply(&issue)
	issue.UpdatedAt = s.now()
	s.issues[id] = issue
	return &issue, nil
}

func (r *MemoryIssueRepository) Delete(ctx context.Context, id int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.issues[id]; !ok {
		return ErrNotFound
	}
	delete(s.issues, id)
	for cid, c := range s.comments {
		if c.IssueID == id {
			delete(s.comments, cid)
		}
	}
	for aid, a := range s.attachments {
		if a.IssueID == id {
			delete(s.attachments, aid)
		}
	}
	for nid, n := range s.notifications {
		if n.IssueID == id {
			delete(s.notifications, nid)
		}
	}
	return nil
}

type MemoryCommentRepository struct{ store *MemoryStore }

func (r *MemoryCommentRepository) Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = s.nextIDLocked(CollectionComments)
	comment.CreatedAt = s.now()
	s.comments[comment.ID] = *comment
	return comment, nil
}

func (r *MemoryCommentRepository) ListByIssue(ctx context.Context, issueID int) ([]entity.Comment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	comments := []entity.Comment{}
	for _, c := range s.comments {
		if c.IssueID == issueID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

type MemoryAttachmentRepository struct{ store *MemoryStore }

func (r *MemoryAttachmentRepository) Create(ctx context.Context, attachment *entity.Attachment) (*entity.Attachment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	attachment.ID = s.nextIDLocked(CollectionAttachments)
	attachment.CreatedAt = s.now()
	s.attachments[attachment.ID] = *attachment
	return attachment, nil
}

func (r *MemoryAttachmentRepository) GetByID(ctx context.Context, id int) (*entity.Attachment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attachments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAttachmentRepository) ListByIssue(ctx context.Context, issueID int) ([]entity.Attachment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	attachments := []entity.Attachment{}
	for _, a := range s.attachments {
		if a.IssueID == issueID {
			attachments = append(attachments, a)
		}
	}
	sort.Slice(attachments, func(i, j int) bool { return attachments[i].ID < attachments[j].ID })
	return attachments, nil
}

type MemoryNotificationRepository struct{ store *MemoryStore }

func (r *MemoryNotificationRepository) Create(ctx context.Context, notification *entity.Notification) (*entity.Notification, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	notification.ID = s.nextIDLocked(CollectionNotifications)
	notification.CreatedAt = s.now()
	s.notifications[notification.ID] = *notification
	return notification, nil
}

func (r *MemoryNotificationRepository) ListByUser(ctx context.Context, userID int) ([]entity.Notification, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	notifications := []entity.Notification{}
	for _, n := range s.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID > notifications[j].ID
	})
	return notifications, nil
}

func (r *MemoryNotificationRepository) MarkRead(ctx context.Context, id int) (*entity.Notification, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil, ErrNotFound
	}
	n.Read = true
	s.notifications[id] = n
	return &n, nil
}
