package auth

import (
	"net/http"

	"github.com/aurelle/aurelle-web/storage"
	"github.com/labstack/echo/v4"
)

// SessionKey is the context key under which RequireAdmin stores the session.
const SessionKey = "admin_session"

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// RequireAdmin guards admin routes. Requests without a valid session get a
// 401 carrying the login redirect; handlers behind it can assume
// SessionFromContext succeeds.
func RequireAdmin(m *Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := m.Get(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":    "authentication required",
					"redirect": LoginPath,
				})
			}
			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// SessionFromContext returns the session stored by RequireAdmin.
func SessionFromContext(c echo.Context) (storage.AdminSession, bool) {
	sess, ok := c.Get(SessionKey).(storage.AdminSession)
	return sess, ok
}
