package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"issue-tracker/internal/entity"
)

type MySQLUserRepository struct {
	db  *sql.DB
	seq Sequencer
}

func NewMySQLUserRepository(db *sql.DB, seq Sequencer) *MySQLUserRepository {
	return &MySQLUserRepository{db: db, seq: seq}
}

func (r *MySQLUserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	existing, err := r.GetByUsername(ctx, user.Username)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	id, err := r.seq.NextID(ctx, CollectionUsers)
	if err != nil {
		return nil, err
	}

	user.ID = id
	user.CreatedAt = time.Now().UTC()

	query := `INSERT INTO users (id, username, password, email, full_name, avatar_url, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, user.ID, user.Username, user.Password, user.Email, user.FullName, user.AvatarURL, user.CreatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *MySQLUserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT id, username, password, email, full_name, avatar_url, created_at FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT id, username, password, email, full_name, avatar_url, created_at FROM users WHERE username = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *MySQLUserRepository) scanUser(row *sql.Row) (*entity.User, error) {
	user := &entity.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Password, &user.Email, &user.FullName, &user.AvatarURL, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
