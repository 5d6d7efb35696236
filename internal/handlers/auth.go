package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aurelle/aurelle-web/internal/api"
	"github.com/aurelle/aurelle-web/internal/auth"
	"github.com/labstack/echo/v4"
)

// AuthHandler proxies admin login and logout to the backend and maintains
// the local session marker around the backend's session cookie.
type AuthHandler struct {
	client   *api.Client
	sessions *auth.Manager
}

func NewAuthHandler(client *api.Client, sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{client: client, sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin authenticates against the backend, stores the backend session
// cookie alongside the admin info, and issues the service session cookie.
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	// Validate before any network call.
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	login, backendCookie, err := h.client.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		slog.Error("login request failed", "error", err, "username", req.Username)
		return echo.NewHTTPError(http.StatusBadGateway, "login failed")
	}
	if !login.Success {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	if err := h.sessions.Create(c, login.AdminID, login.Username, backendCookie); err != nil {
		slog.Error("failed to create admin session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "session error")
	}

	slog.Info("admin logged in", "admin_id", login.AdminID, "username", login.Username)
	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"admin_id": login.AdminID,
		"username": login.Username,
	})
}

// HandleLogout ends the backend session best-effort and always clears the
// local one.
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	if sess, err := h.sessions.Get(c); err == nil {
		if err := h.client.Logout(c.Request().Context(), sess.BackendCookie); err != nil {
			slog.Warn("backend logout failed", "error", err)
		}
	}
	if err := h.sessions.Destroy(c); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// HandleSession reports the current login state, used by the admin console
// to restore itself without re-prompting credentials.
func (h *AuthHandler) HandleSession(c echo.Context) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]any{"authenticated": false})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"authenticated": true,
		"admin_id":      sess.AdminID,
		"username":      sess.Username,
	})
}
