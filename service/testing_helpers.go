package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aurelle/aurelle-web/internal/api"
	"github.com/aurelle/aurelle-web/internal/auth"
	"github.com/aurelle/aurelle-web/internal/store"
	"github.com/aurelle/aurelle-web/storage"
	"github.com/labstack/echo/v4"
)

// testBackend is the fake catalog backend. Individual endpoints can be
// switched to failure to exercise degradation paths.
type testBackend struct {
	*httptest.Server
	failStats atomic.Bool
}

// fakeBackend serves a small fixed catalog over the backend's public API
// shape so route tests exercise real fetch and convert paths.
func fakeBackend(t *testing.T) *testBackend {
	t.Helper()

	backend := &testBackend{}
	categoryID := int64(1)
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v); err != nil {
			t.Errorf("failed to encode fake backend response: %v", err)
		}
	}

	mux.HandleFunc("/api/slides", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.HeroSlide{
			{ID: 1, Title: "New Season", Image: "/uploads/hero1.jpg", Order: 1, IsActive: true},
		})
	})
	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.Category{
			{ID: 1, Name: "Bras", Slug: "bras", Order: 1, IsActive: true},
			{ID: 2, Name: "Briefs", Slug: "briefs", Order: 2, IsActive: true},
		})
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.Product{
			{
				ID: 1, Name: "Silk Balconette", Slug: "silk-balconette",
				Images: []string{"/uploads/p1.jpg"}, Order: 1, IsActive: true,
				CategoryID: &categoryID,
				Category:   &api.Category{ID: 1, Name: "Bras", Slug: "bras", IsActive: true},
				Tags:       []api.Tag{{ID: 1, Name: "New Arrival", IsActive: true}},
			},
			{
				ID: 2, Name: "Lace Brief", Slug: "lace-brief",
				Images: []string{"/uploads/p2.jpg"}, Order: 2, IsActive: true,
			},
		})
	})
	mux.HandleFunc("/api/products/statistics", func(w http.ResponseWriter, r *http.Request) {
		if backend.failStats.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			writeJSON(w, map[string]string{"detail": "statistics unavailable"})
			return
		}
		writeJSON(w, api.ProductStatistics{Total: 2, ByCategory: map[string]int{"Bras": 1, "Uncategorized": 1}})
	})
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.Tag{
			{ID: 1, Name: "New Arrival", Color: "#10b981", Order: 1, IsActive: true},
		})
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Password != "test-password" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "backend_session", Value: "fixture"})
		writeJSON(w, api.LoginResponse{Success: true, AdminID: 7, Username: creds.Username})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]bool{"success": true})
	})
	mux.HandleFunc("/api/admin/products", func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("backend_session"); err != nil || cookie.Value != "fixture" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "not authenticated"})
			return
		}
		writeJSON(w, []api.Product{
			{ID: 1, Name: "Silk Balconette", Slug: "silk-balconette", IsActive: true},
			{ID: 3, Name: "Draft Bodysuit", Slug: "draft-bodysuit", IsActive: false},
		})
	})

	backend.Server = httptest.NewServer(mux)
	t.Cleanup(backend.Close)
	return backend
}

// setupTestService creates a service instance backed by an in-memory
// database and the fake backend.
func setupTestService(t *testing.T) (*Service, *testBackend) {
	t.Helper()

	st, cleanup, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	backend := fakeBackend(t)

	config := &Config{
		Environment: "test",
		Port:        "8080",
	}
	config.Backend.URL = backend.URL
	config.Catalog.HomeTeaserCount = 8

	client := api.NewClient(config.Backend.URL)
	svc := &Service{
		storage:  st,
		config:   config,
		client:   client,
		admin:    api.NewAdminClient(client),
		catalog:  store.New(client),
		sessions: auth.NewManager(st, false),
	}
	return svc, backend
}

// setupTestEcho creates an Echo instance with routes registered.
func setupTestEcho(t *testing.T) (*echo.Echo, *Service, *testBackend) {
	t.Helper()

	e := echo.New()
	svc, backend := setupTestService(t)
	svc.RegisterRoutes(e)

	return e, svc, backend
}
