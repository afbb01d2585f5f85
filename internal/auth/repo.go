package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repo stores admin sessions in sqlite.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

var _ SessionStore = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, s Session) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO admin_sessions (id, username, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, s.ID, s.Username, s.CreatedAt.Unix(), s.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Active reports whether the session exists, is not revoked and has not
// expired at now.
func (r *Repo) Active(ctx context.Context, id string, now time.Time) (bool, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT 1
		FROM admin_sessions
		WHERE id = ? AND revoked_at IS NULL AND expires_at > ?
	`, id, now.Unix())

	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("get session: %w", err)
	}
	return true, nil
}

func (r *Repo) Revoke(ctx context.Context, id string, now time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE admin_sessions
		SET revoked_at = ?
		WHERE id = ? AND revoked_at IS NULL
	`, now.Unix(), id)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// PurgeExpired deletes sessions that expired before now, revoked or not.
func (r *Repo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM admin_sessions
		WHERE expires_at <= ?
	`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sessions rows: %w", err)
	}
	return n, nil
}
