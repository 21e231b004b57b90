package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rahulj/mockmate/internal/scoring"
)

// AttemptRepo manages the append-only attempt history and the
// last-result slot. History rows are immutable once written; the only
// mutation is the Prune maintenance operation.
type AttemptRepo interface {
	// Append stores a scored result in the history and makes it the
	// last result for the user.
	Append(ctx context.Context, email string, res scoring.Result) error

	// List returns the user's attempts most-recent-first. limit <= 0
	// means unlimited. Rows that fail to decode are skipped.
	List(ctx context.Context, email string, limit int) ([]scoring.Result, error)

	// Last returns the user's most recently stored result, or nil if
	// none exists or the stored value is unreadable.
	Last(ctx context.Context, email string) (*scoring.Result, error)

	// Prune deletes all but the user's keep most recent attempts.
	Prune(ctx context.Context, email string, keep int) error
}

type attemptRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

func lastResultKey(email string) string {
	return "last_result:" + email
}

func (r *attemptRepo) Append(ctx context.Context, email string, res scoring.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attempts (id, email, created_at, payload) VALUES (?, ?, ?, ?)`,
		res.ID, email, res.Timestamp.UnixMilli(), string(payload))
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		lastResultKey(email), string(payload))
	if err != nil {
		return fmt.Errorf("save last result: %w", err)
	}

	return tx.Commit()
}

func (r *attemptRepo) List(ctx context.Context, email string, limit int) ([]scoring.Result, error) {
	q := `SELECT payload FROM attempts WHERE email = ? ORDER BY created_at DESC, rowid DESC`
	args := []any{email}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var results []scoring.Result
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		var res scoring.Result
		if err := json.Unmarshal([]byte(payload), &res); err != nil {
			r.logger.Warn("skipping unreadable attempt row", "error", err)
			continue
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *attemptRepo) Last(ctx context.Context, email string) (*scoring.Result, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, lastResultKey(email)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last result: %w", err)
	}

	var res scoring.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		r.logger.Warn("last result unreadable, treating as absent", "error", err)
		return nil, nil
	}
	return &res, nil
}

func (r *attemptRepo) Prune(ctx context.Context, email string, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM attempts WHERE email = ? AND rowid NOT IN (
			SELECT rowid FROM attempts WHERE email = ?
			ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, email, email, keep)
	if err != nil {
		return fmt.Errorf("prune attempts: %w", err)
	}
	return nil
}
