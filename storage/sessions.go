package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AdminSession is the local login marker: who is signed in, when the session
// was created, and the backend session cookie that authenticates admin
// calls. It avoids re-prompting login but is not a source of truth; every
// admin call is revalidated against the backend.
type AdminSession struct {
	ID            string
	AdminID       int64
	Username      string
	BackendCookie string
	CreatedAt     time.Time
}

func (s *Storage) CreateAdminSession(ctx context.Context, sess AdminSession) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_sessions (id, admin_id, username, backend_cookie, created_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.AdminID, sess.Username, sess.BackendCookie, sess.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert admin session: %w", err)
	}
	return nil
}

// GetAdminSession returns sql.ErrNoRows when the id is unknown.
func (s *Storage) GetAdminSession(ctx context.Context, id string) (AdminSession, error) {
	var sess AdminSession
	err := s.db.QueryRowContext(ctx,
		`SELECT id, admin_id, username, backend_cookie, created_at FROM admin_sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.AdminID, &sess.Username, &sess.BackendCookie, &sess.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return AdminSession{}, err
		}
		return AdminSession{}, fmt.Errorf("query admin session: %w", err)
	}
	return sess, nil
}

func (s *Storage) DeleteAdminSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete admin session: %w", err)
	}
	return nil
}

// DeleteExpiredAdminSessions removes sessions created before the cutoff.
func (s *Storage) DeleteExpiredAdminSessions(ctx context.Context, before time.Time) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE created_at < ?`, before.UTC()); err != nil {
		return fmt.Errorf("delete expired admin sessions: %w", err)
	}
	return nil
}
