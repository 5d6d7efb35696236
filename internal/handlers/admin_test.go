package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aurelle/aurelle-web/internal/api"
	"github.com/aurelle/aurelle-web/internal/auth"
	"github.com/aurelle/aurelle-web/internal/store"
	"github.com/aurelle/aurelle-web/storage"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	handler  *AdminHandler
	sessions *auth.Manager
	storage  *storage.Storage
	cookie   *http.Cookie
	session  storage.AdminSession
	echo     *echo.Echo
}

// setupAdminFixture builds an AdminHandler against the given backend with a
// live session, simulating what the session middleware provides.
func setupAdminFixture(t *testing.T, backend *httptest.Server) *adminFixture {
	t.Helper()

	st, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	e := echo.New()
	sessions := auth.NewManager(st, false)

	// Seed a logged-in session.
	loginRec := httptest.NewRecorder()
	loginCtx := e.NewContext(httptest.NewRequest("POST", "/api/auth/login", nil), loginRec)
	require.NoError(t, sessions.Create(loginCtx, 7, "admin", "backend_session=abc"))

	var cookie *http.Cookie
	for _, c := range loginRec.Result().Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	sess, err := st.GetAdminSession(loginCtx.Request().Context(), cookie.Value)
	require.NoError(t, err)

	client := api.NewClient(backend.URL)
	return &adminFixture{
		handler:  NewAdminHandler(api.NewAdminClient(client), sessions, store.New(client)),
		sessions: sessions,
		storage:  st,
		cookie:   cookie,
		session:  sess,
		echo:     e,
	}
}

// request builds an authenticated context the way RequireAdmin would hand it
// to the handler.
func (f *adminFixture) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(f.cookie)

	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	c.Set(auth.SessionKey, f.session)
	return c, rec
}

// A backend 401 on any admin call clears the local session and answers 401
// with the login redirect, regardless of which operation failed.
func TestBackendRejectionClearsSession(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "session expired"}`))
	}))
	defer backend.Close()

	f := setupAdminFixture(t, backend)

	c, rec := f.request("PUT", "/admin/api/categories/5", `{"name": "Bras"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, f.handler.HandleUpdateCategory(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, auth.LoginPath, body["redirect"])

	// The local session marker is gone.
	_, err := f.storage.GetAdminSession(c.Request().Context(), f.cookie.Value)
	assert.Error(t, err)
}

func TestCreateCategoryTriggersRefresh(t *testing.T) {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("/api/admin/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.Category{ID: 9, Name: "Swimwear", Slug: "swimwear", IsActive: true})
	})
	mux.HandleFunc("/api/slides", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, []api.HeroSlide{}) })
	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.Category{{ID: 9, Name: "Swimwear", Slug: "swimwear", IsActive: true}})
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, []api.Product{}) })
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, []api.Tag{}) })

	backend := httptest.NewServer(mux)
	defer backend.Close()

	f := setupAdminFixture(t, backend)

	c, rec := f.request("POST", "/admin/api/categories", `{"name": "Swimwear", "slug": "swimwear", "is_active": true}`)
	require.NoError(t, f.handler.HandleCreateCategory(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	// The mutation re-pulled the catalog.
	snap := f.handler.catalog.Snapshot()
	require.Len(t, snap.Categories, 1)
	assert.Equal(t, "Swimwear", snap.Categories[0].Name)
}

func TestCreateCategoryValidatesBeforeBackend(t *testing.T) {
	backendCalled := false
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalled = true
	}))
	defer backend.Close()

	f := setupAdminFixture(t, backend)

	c, _ := f.request("POST", "/admin/api/categories", `{"slug": "no-name"}`)
	err := f.handler.HandleCreateCategory(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.False(t, backendCalled)
}

func TestDeleteProductNotFound(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Product not found"}`))
	}))
	defer backend.Close()

	f := setupAdminFixture(t, backend)

	c, _ := f.request("DELETE", "/admin/api/products/999", "")
	c.SetParamNames("id")
	c.SetParamValues("999")

	err := f.handler.HandleDeleteProduct(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)

	// A plain 404 does not clear the session.
	_, getErr := f.storage.GetAdminSession(c.Request().Context(), f.cookie.Value)
	assert.NoError(t, getErr)
}

// Category and tag mutations accept display ids, resolved against the
// snapshot to the authoritative backend id.
func TestMutationByDisplayID(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("/api/admin/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeJSON(w, api.Category{ID: 9, Name: "Swimwear", Slug: "swimwear", IsActive: true})
	})
	mux.HandleFunc("/api/slides", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, []api.HeroSlide{}) })
	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.Category{{ID: 9, Name: "Swimwear", Slug: "swimwear", IsActive: true}})
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, []api.Product{}) })
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.Tag{{ID: 4, Name: "Sale", Color: "#8b5cf6", IsActive: true}})
	})

	backend := httptest.NewServer(mux)
	defer backend.Close()

	f := setupAdminFixture(t, backend)

	c, _ := f.request("GET", "/", "")
	f.handler.catalog.Refresh(c.Request().Context())

	t.Run("category slug resolves to backend id", func(t *testing.T) {
		c, rec := f.request("PUT", "/admin/api/categories/swimwear", `{"name": "Swimwear"}`)
		c.SetParamNames("id")
		c.SetParamValues("swimwear")

		require.NoError(t, f.handler.HandleUpdateCategory(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/api/admin/categories/9", gotPath)
	})

	t.Run("tag display id resolves to backend id", func(t *testing.T) {
		c, rec := f.request("DELETE", "/admin/api/tags/tag-4", "")
		c.SetParamNames("id")
		c.SetParamValues("tag-4")

		require.NoError(t, f.handler.HandleDeleteTag(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/api/admin/tags/4", gotPath)
	})

	t.Run("unknown display id rejected", func(t *testing.T) {
		c, _ := f.request("DELETE", "/admin/api/categories/nope", "")
		c.SetParamNames("id")
		c.SetParamValues("nope")

		err := f.handler.HandleDeleteCategory(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

// A snapshot record without a backend id can never be mutated, no matter how
// it is addressed.
func TestMutationRejectsMissingBackendID(t *testing.T) {
	adminCalled := false
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("/api/admin/", func(w http.ResponseWriter, r *http.Request) { adminCalled = true })
	mux.HandleFunc("/api/slides", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, []api.HeroSlide{}) })
	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		// Malformed upstream record: a category with no id.
		writeJSON(w, []api.Category{{ID: 0, Name: "Ghost", Slug: "ghost", IsActive: true}})
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, []api.Product{}) })
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, []api.Tag{}) })

	backend := httptest.NewServer(mux)
	defer backend.Close()

	f := setupAdminFixture(t, backend)

	c, _ := f.request("GET", "/", "")
	f.handler.catalog.Refresh(c.Request().Context())

	c, _ = f.request("PUT", "/admin/api/categories/ghost", `{"name": "Ghost"}`)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	err := f.handler.HandleUpdateCategory(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	assert.False(t, adminCalled)
}

func TestInvalidPathID(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer backend.Close()

	f := setupAdminFixture(t, backend)

	c, _ := f.request("DELETE", "/admin/api/products/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := f.handler.HandleDeleteProduct(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
