package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aurelle/aurelle-web/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// CookieName identifies the service's own admin session cookie; the
	// backend's session cookie is stored server-side next to it.
	CookieName = "aurelle_admin_session"

	// SessionTTL caps how long a login marker is honored before the admin
	// must sign in again.
	SessionTTL = 24 * time.Hour
)

// ErrNoSession is returned when no valid session exists: missing cookie,
// unknown id, or an expired marker.
var ErrNoSession = errors.New("no admin session")

// Manager owns the admin session lifecycle: create on login, look up on
// every admin request, destroy on logout or backend rejection.
type Manager struct {
	storage *storage.Storage
	secure  bool
}

func NewManager(st *storage.Storage, secure bool) *Manager {
	return &Manager{storage: st, secure: secure}
}

// Create persists a new session and sets the session cookie on the response.
func (m *Manager) Create(c echo.Context, adminID int64, username, backendCookie string) error {
	sess := storage.AdminSession{
		ID:            uuid.NewString(),
		AdminID:       adminID,
		Username:      username,
		BackendCookie: backendCookie,
		CreatedAt:     time.Now(),
	}
	if err := m.storage.CreateAdminSession(c.Request().Context(), sess); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Get returns the request's session. Expired markers are deleted on sight
// and reported as ErrNoSession, matching the lazy 24-hour expiry of the
// stored login state.
func (m *Manager) Get(c echo.Context) (storage.AdminSession, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return storage.AdminSession{}, ErrNoSession
	}

	ctx := c.Request().Context()
	sess, err := m.storage.GetAdminSession(ctx, cookie.Value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.AdminSession{}, ErrNoSession
		}
		return storage.AdminSession{}, err
	}

	if time.Since(sess.CreatedAt) > SessionTTL {
		slog.Debug("admin session expired", "session_id", sess.ID, "username", sess.Username)
		if err := m.storage.DeleteAdminSession(ctx, sess.ID); err != nil {
			slog.Error("failed to delete expired session", "error", err)
		}
		m.clearCookie(c)
		return storage.AdminSession{}, ErrNoSession
	}

	return sess, nil
}

// Destroy removes the session row and clears the cookie. Safe to call
// without a valid session.
func (m *Manager) Destroy(c echo.Context) error {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := m.storage.DeleteAdminSession(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	m.clearCookie(c)
	return nil
}

func (m *Manager) clearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
