package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"issue-tracker/internal/entity"
)

type MySQLAttachmentRepository struct {
	db  *sql.DB
	seq Sequencer
}

func NewMySQLAttachmentRepository(db *sql.DB, seq Sequencer) *MySQLAttachmentRepository {
	return &MySQLAttachmentRepository{db: db, seq: seq}
}

func (r *MySQLAttachmentRepository) Create(ctx context.Context, attachment *entity.Attachment) (*entity.Attachment, error) {
	id, err := r.seq.NextID(ctx, CollectionAttachments)
	if err != nil {
		return nil, err
	}

	attachment.ID = id
	attachment.CreatedAt = time.Now().UTC()

	query := `INSERT INTO attachments (id, filename, filepath, issue_id, uploader_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		attachment.ID, attachment.Filename, attachment.Filepath, attachment.IssueID, attachment.UploaderID, attachment.CreatedAt)
	if err != nil {
		return nil, err
	}

	return attachment, nil
}

func (r *MySQLAttachmentRepository) GetByID(ctx context.Context, id int) (*entity.Attachment, error) {
	query := `SELECT id, filename, filepath, issue_id, uploader_id, created_at FROM attachments WHERE id = ?`
	attachment := &entity.Attachment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&attachment.ID, &attachment.Filename, &attachment.Filepath, &attachment.IssueID, &attachment.UploaderID, &attachment.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return attachment, nil
}

func (r *MySQLAttachmentRepository) ListByIssue(ctx context.Context, issueID int) ([]entity.Attachment, error) {
	query := `SELECT id, filename, filepath, issue_id, uploader_id, created_at FROM attachments WHERE issue_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := []entity.Attachment{}
	for rows.Next() {
		attachment := entity.Attachment{}
		err := rows.Scan(&attachment.ID, &attachment.Filename, &attachment.Filepath, &attachment.IssueID, &attachment.UploaderID, &attachment.CreatedAt)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	return attachments, rows.Err()
}
