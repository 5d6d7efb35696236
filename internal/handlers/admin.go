package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aurelle/aurelle-web/internal/api"
	"github.com/aurelle/aurelle-web/internal/auth"
	"github.com/aurelle/aurelle-web/internal/store"
	"github.com/labstack/echo/v4"
)

// AdminHandler proxies the admin console's CRUD operations to the backend.
// Every successful mutation triggers a full catalog refresh; there is no
// incremental patching of the aggregate store.
type AdminHandler struct {
	admin    *api.AdminClient
	sessions *auth.Manager
	catalog  *store.Store
}

func NewAdminHandler(admin *api.AdminClient, sessions *auth.Manager, catalog *store.Store) *AdminHandler {
	return &AdminHandler{admin: admin, sessions: sessions, catalog: catalog}
}

// backendError is the single translation point for admin-call failures. A
// backend 401 clears the local session and sends the caller to the login
// page before any operation-specific error is surfaced.
func (h *AdminHandler) backendError(c echo.Context, err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		slog.Info("backend rejected admin session, clearing local session")
		if destroyErr := h.sessions.Destroy(c); destroyErr != nil {
			slog.Error("failed to clear rejected session", "error", destroyErr)
		}
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error":    "session expired, please log in again",
			"redirect": auth.LoginPath,
		})
	}
	if errors.Is(err, api.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		return echo.NewHTTPError(reqErr.Status, reqErr.Message)
	}
	slog.Error("admin backend call failed", "error", err)
	return echo.NewHTTPError(http.StatusBadGateway, "backend unavailable")
}

func (h *AdminHandler) cookie(c echo.Context) string {
	sess, _ := auth.SessionFromContext(c)
	return sess.BackendCookie
}

// refresh re-pulls the authoritative catalog after a mutation.
func (h *AdminHandler) refresh(c echo.Context) {
	h.catalog.Refresh(c.Request().Context())
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// categoryID resolves the :id path value to the backend id, accepting either
// the numeric id or the category's display id. Display ids go through
// MutationID so a record without a backend id can never be mutated.
func (h *AdminHandler) categoryID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	for _, cat := range h.catalog.Snapshot().Categories {
		if cat.ID == raw {
			id, err := cat.MutationID()
			if err != nil {
				return 0, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			return id, nil
		}
	}
	return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
}

// tagID is the tag counterpart of categoryID ("tag-{id}" display ids).
func (h *AdminHandler) tagID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	for _, tag := range h.catalog.Snapshot().Tags {
		if tag.ID == raw {
			id, err := tag.MutationID()
			if err != nil {
				return 0, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			return id, nil
		}
	}
	return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid tag id")
}

// Unfiltered listings (include inactive records) for the console tables.

func (h *AdminHandler) HandleListProducts(c echo.Context) error {
	products, err := h.admin.ListAllProducts(c.Request().Context(), h.cookie(c))
	if err != nil {
		return h.backendError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *AdminHandler) HandleListCategories(c echo.Context) error {
	categories, err := h.admin.ListAllCategories(c.Request().Context(), h.cookie(c))
	if err != nil {
		return h.backendError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *AdminHandler) HandleListSlides(c echo.Context) error {
	slides, err := h.admin.ListAllSlides(c.Request().Context(), h.cookie(c))
	if err != nil {
		return h.backendError(c, err)
	}
	return c.JSON(http.StatusOK, slides)
}

// Product CRUD.

func (h *AdminHandler) HandleCreateProduct(c echo.Context) error {
	var input api.ProductInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if input.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product name is required")
	}

	product, err := h.admin.CreateProduct(c.Request().Context(), h.cookie(c), input)
	if err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusCreated, product)
}

func (h *AdminHandler) HandleUpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var input api.ProductInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if input.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product name is required")
	}

	product, err := h.admin.UpdateProduct(c.Request().Context(), h.cookie(c), id, input)
	if err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusOK, product)
}

func (h *AdminHandler) HandleDeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteProduct(c.Request().Context(), h.cookie(c), id); err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Category CRUD.

func (h *AdminHandler) HandleCreateCategory(c echo.Context) error {
	var input api.CategoryInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if input.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category name is required")
	}

	category, err := h.admin.CreateCategory(c.Request().Context(), h.cookie(c), input)
	if err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusCreated, category)
}

func (h *AdminHandler) HandleUpdateCategory(c echo.Context) error {
	id, err := h.categoryID(c)
	if err != nil {
		return err
	}
	var input api.CategoryInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if input.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category name is required")
	}

	category, err := h.admin.UpdateCategory(c.Request().Context(), h.cookie(c), id, input)
	if err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusOK, category)
}

func (h *AdminHandler) HandleDeleteCategory(c echo.Context) error {
	id, err := h.categoryID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteCategory(c.Request().Context(), h.cookie(c), id); err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Tag CRUD.

func (h *AdminHandler) HandleCreateTag(c echo.Context) error {
	var input api.TagInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if input.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tag name is required")
	}

	tag, err := h.admin.CreateTag(c.Request().Context(), h.cookie(c), input)
	if err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusCreated, tag)
}

func (h *AdminHandler) HandleUpdateTag(c echo.Context) error {
	id, err := h.tagID(c)
	if err != nil {
		return err
	}
	var input api.TagInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	tag, err := h.admin.UpdateTag(c.Request().Context(), h.cookie(c), id, input)
	if err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusOK, tag)
}

func (h *AdminHandler) HandleDeleteTag(c echo.Context) error {
	id, err := h.tagID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteTag(c.Request().Context(), h.cookie(c), id); err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Hero slide CRUD.

func (h *AdminHandler) HandleCreateSlide(c echo.Context) error {
	var input api.HeroSlideInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if input.Title == "" || input.Image == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "slide title and image are required")
	}

	slide, err := h.admin.CreateSlide(c.Request().Context(), h.cookie(c), input)
	if err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusCreated, slide)
}

func (h *AdminHandler) HandleUpdateSlide(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var input api.HeroSlideInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	slide, err := h.admin.UpdateSlide(c.Request().Context(), h.cookie(c), id, input)
	if err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusOK, slide)
}

func (h *AdminHandler) HandleDeleteSlide(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteSlide(c.Request().Context(), h.cookie(c), id); err != nil {
		return h.backendError(c, err)
	}
	h.refresh(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Uploads. The backend owns object storage; files stream through untouched.

func (h *AdminHandler) HandleUpload(c echo.Context) error {
	return h.handleUpload(c, h.admin.UploadFile)
}

func (h *AdminHandler) HandleUploadTemp(c echo.Context) error {
	return h.handleUpload(c, h.admin.UploadTempFile)
}

func (h *AdminHandler) HandleUploadVideo(c echo.Context) error {
	return h.handleUpload(c, h.admin.UploadVideo)
}

func (h *AdminHandler) handleUpload(c echo.Context, upload uploadFunc) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("failed to open uploaded file", "error", err, "filename", fileHeader.Filename)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read upload")
	}
	defer file.Close()

	url, err := upload(c.Request().Context(), h.cookie(c), fileHeader.Filename, file)
	if err != nil {
		return h.backendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

type uploadFunc func(ctx context.Context, cookie, filename string, file io.Reader) (string, error)

// HandleMoveTempToFinal promotes staged uploads to permanent storage,
// called on a successful entity save.
func (h *AdminHandler) HandleMoveTempToFinal(c echo.Context) error {
	var req struct {
		TempURLs []string `json:"temp_urls"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	urls, err := h.admin.MoveTempFilesToFinal(c.Request().Context(), h.cookie(c), req.TempURLs)
	if err != nil {
		return h.backendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]string{"urls": urls})
}
