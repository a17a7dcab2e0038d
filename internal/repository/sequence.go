package repository

import (
	"context"
	"database/sql"
)

// SQLSequencer assigns ids from a counters table. The increment and read
// happen in a single statement so concurrent callers never observe the
// same value.
type SQLSequencer struct {
	db *sql.DB
}

func NewSQLSequencer(db *sql.DB) *SQLSequencer {
	return &SQLSequencer{db: db}
}

func (s *SQLSequencer) NextID(ctx context.Context, collection string) (int, error) {
	// LAST_INSERT_ID(expr) makes the incremented value readable from the
	// same connection, which database/sql surfaces via LastInsertId.
	query := `INSERT INTO counters (name, seq) VALUES (?, LAST_INSERT_ID(1))
		ON DUPLICATE KEY UPDATE seq = LAST_INSERT_ID(seq + 1)`
	res, err := s.db.ExecContext(ctx, query, collection)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}
