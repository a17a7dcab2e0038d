package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"issue-tracker/internal/entity"
)

type MySQLIssueRepository struct {
	db  *sql.DB
	seq Sequencer
}

func NewMySQLIssueRepository(db *sql.DB, seq Sequencer) *MySQLIssueRepository {
	return &MySQLIssueRepository{db: db, seq: seq}
}

const issueColumns = `id, title, description, status, priority, category, assignee_id, reporter_id, created_at, updated_at`

func (r *MySQLIssueRepository) Create(ctx context.Context, issue *entity.Issue) (*entity.Issue, error) {
	id, err := r.seq.NextID(ctx, CollectionIssues)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	issue.ID = id
	issue.CreatedAt = now
	issue.UpdatedAt = now

	query := `INSERT INTO issues (` + issueColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		issue.ID, issue.Title, issue.Description, issue.Status, issue.Priority,
		issue.Category, issue.AssigneeID, issue.ReporterID, issue.CreatedAt, issue.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return issue, nil
}

func (r *MySQLIssueRepository) GetByID(ctx context.Context, id int) (*entity.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = ?`
	issue := &entity.Issue{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&issue.ID, &issue.Title, &issue.Description, &issue.Status, &issue.Priority,
		&issue.Category, &issue.AssigneeID, &issue.ReporterID, &issue.CreatedAt, &issue.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return issue, nil
}

func (r *MySQLIssueRepository) List(ctx context.Context) ([]entity.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issues := []entity.Issue{}
	for rows.Next() {
		issue := entity.Issue{}
		err := rows.Scan(
			&issue.ID, &issue.Title, &issue.Description, &issue.Status, &issue.Priority,
			&issue.Category, &issue.AssigneeID, &issue.ReporterID, &issue.CreatedAt, &issue.UpdatedAt)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}

func (r *MySQLIssueRepository) Update(ctx context.Context, id int, update *entity.IssueUpdate) (*entity.Issue, error) {
	issue, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(issue)
	issue.UpdatedAt = time.Now().UTC()

	query := `UPDATE issues SET title = ?, description = ?, status = ?, priority = ?, category = ?, assignee_id = ?, updated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		issue.Title, issue.Description, issue.Status, issue.Priority,
		issue.Category, issue.AssigneeID, issue.UpdatedAt, issue.ID)
	if err != nil {
		return nil, err
	}

	return issue, nil
}

func (r *MySQLIssueRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	// Child records go with the issue so nothing dangles.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, query := range []string{
		`DELETE FROM comments WHERE issue_id = ?`,
		`DELETE FROM attachments WHERE issue_id = ?`,
		`DELETE FROM notifications WHERE issue_id = ?`,
		`DELETE FROM issues WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
