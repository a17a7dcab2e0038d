package repository

import (
	"context"
	"database/sql"
	"time"

	"issue-tracker/internal/entity"
)

type MySQLCommentRepository struct {
	db  *sql.DB
	seq Sequencer
}

func NewMySQLCommentRepository(db *sql.DB, seq Sequencer) *MySQLCommentRepository {
	return &MySQLCommentRepository{db: db, seq: seq}
}

func (r *MySQLCommentRepository) Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	id, err := r.seq.NextID(ctx, CollectionComments)
	if err != nil {
		return nil, err
	}

	comment.ID = id
	comment.CreatedAt = time.Now().UTC()

	query := `INSERT INTO comments (id, content, issue_id, user_id, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, comment.ID, comment.Content, comment.IssueID, comment.UserID, comment.CreatedAt)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (r *MySQLCommentRepository) ListByIssue(ctx context.Context, issueID int) ([]entity.Comment, error) {
	query := `SELECT id, content, issue_id, user_id, created_at FROM comments WHERE issue_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []entity.Comment{}
	for rows.Next() {
		comment := entity.Comment{}
		if err := rows.Scan(&comment.ID, &comment.Content, &comment.IssueID, &comment.UserID, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
