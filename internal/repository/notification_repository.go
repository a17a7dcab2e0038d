package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"issue-tracker/internal/entity"
)

type MySQLNotificationRepository struct {
	db  *sql.DB
	seq Sequencer
}

func NewMySQLNotificationRepository(db *sql.DB, seq Sequencer) *MySQLNotificationRepository {
	return &MySQLNotificationRepository{db: db, seq: seq}
}

func (r *MySQLNotificationRepository) Create(ctx context.Context, notification *entity.Notification) (*entity.Notification, error) {
	id, err := r.seq.NextID(ctx, CollectionNotifications)
	if err != nil {
		return nil, err
	}

	notification.ID = id
	notification.CreatedAt = time.Now().UTC()

	query := `INSERT INTO notifications (id, type, message, user_id, issue_id, seen, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		notification.ID, notification.Type, notification.Message, notification.UserID, notification.IssueID, notification.Read, notification.CreatedAt)
	if err != nil {
		return nil, err
	}

	return notification, nil
}

func (r *MySQLNotificationRepository) ListByUser(ctx context.Context, userID int) ([]entity.Notification, error) {
	query := `SELECT id, type, message, user_id, issue_id, seen, created_at FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []entity.Notification{}
	for rows.Next() {
		n := entity.Notification{}
		if err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.UserID, &n.IssueID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *MySQLNotificationRepository) MarkRead(ctx context.Context, id int) (*entity.Notification, error) {
	// Unconditional write keeps this idempotent; a second call is a no-op.
	query := `UPDATE notifications SET seen = TRUE WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return nil, err
	}

	n := &entity.Notification{}
	selectQuery := `SELECT id, type, message, user_id, issue_id, seen, created_at FROM notifications WHERE id = ?`
	err := r.db.QueryRowContext(ctx, selectQuery, id).Scan(&n.ID, &n.Type, &n.Message, &n.UserID, &n.IssueID, &n.Read, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}
