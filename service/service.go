package service

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/aurelle/aurelle-web/internal/api"
	"github.com/aurelle/aurelle-web/internal/auth"
	"github.com/aurelle/aurelle-web/internal/catalog"
	"github.com/aurelle/aurelle-web/internal/handlers"
	"github.com/aurelle/aurelle-web/internal/store"
	"github.com/aurelle/aurelle-web/storage"
	"github.com/labstack/echo/v4"
)

type Service struct {
	storage  *storage.Storage
	config   *Config
	client   *api.Client
	admin    *api.AdminClient
	catalog  *store.Store
	sessions *auth.Manager
}

func New(st *storage.Storage, config *Config) *Service {
	client := api.NewClient(config.Backend.URL)
	return &Service{
		storage:  st,
		config:   config,
		client:   client,
		admin:    api.NewAdminClient(client),
		catalog:  store.New(client),
		sessions: auth.NewManager(st, config.Environment == "production"),
	}
}

// Catalog exposes the aggregate store so main can trigger the initial load.
func (s *Service) Catalog() *store.Store {
	return s.catalog
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	// Storefront view models
	e.GET("/", s.handleHome)
	e.GET("/shop", s.handleShop)
	e.GET("/shop/product/:id", s.handleProduct)
	e.GET("/shop/category/:id", s.handleCategory)

	// Manual refresh entry point
	e.POST("/api/refresh", s.handleRefresh)

	// Auth
	authHandler := handlers.NewAuthHandler(s.client, s.sessions)
	e.POST("/api/auth/login", authHandler.HandleLogin)
	e.POST("/api/auth/logout", authHandler.HandleLogout)
	e.GET("/api/auth/session", authHandler.HandleSession)

	// Admin console API - protected with RequireAdmin middleware
	adminHandler := handlers.NewAdminHandler(s.admin, s.sessions, s.catalog)
	admin := e.Group("/admin/api", auth.RequireAdmin(s.sessions))

	admin.GET("/products", adminHandler.HandleListProducts)
	admin.POST("/products", adminHandler.HandleCreateProduct)
	admin.PUT("/products/:id", adminHandler.HandleUpdateProduct)
	admin.DELETE("/products/:id", adminHandler.HandleDeleteProduct)

	admin.GET("/categories", adminHandler.HandleListCategories)
	admin.POST("/categories", adminHandler.HandleCreateCategory)
	admin.PUT("/categories/:id", adminHandler.HandleUpdateCategory)
	admin.DELETE("/categories/:id", adminHandler.HandleDeleteCategory)

	admin.POST("/tags", adminHandler.HandleCreateTag)
	admin.PUT("/tags/:id", adminHandler.HandleUpdateTag)
	admin.DELETE("/tags/:id", adminHandler.HandleDeleteTag)

	admin.GET("/slides", adminHandler.HandleListSlides)
	admin.POST("/slides", adminHandler.HandleCreateSlide)
	admin.PUT("/slides/:id", adminHandler.HandleUpdateSlide)
	admin.DELETE("/slides/:id", adminHandler.HandleDeleteSlide)

	admin.POST("/upload", adminHandler.HandleUpload)
	admin.POST("/upload-temp", adminHandler.HandleUploadTemp)
	admin.POST("/upload-video", adminHandler.HandleUploadVideo)
	admin.POST("/move-temp-to-final", adminHandler.HandleMoveTempToFinal)

	// Health check - no auth
	e.GET("/health", s.handleHealth)
}

// categoryButton is one entry of the category filter bar, name plus count.
type categoryButton struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (s *Service) handleHome(c echo.Context) error {
	snap := s.catalog.Snapshot()

	banners := make([]catalog.HeroSlide, 0, len(snap.Banners))
	for _, b := range snap.Banners {
		if b.Status == catalog.StatusActive {
			banners = append(banners, b)
		}
	}
	sort.SliceStable(banners, func(i, j int) bool { return banners[i].Order < banners[j].Order })

	teaser := catalog.Filter(snap.Products, catalog.Selection{
		Category:   catalog.AllCategories,
		Sort:       catalog.SortNewest,
		MaxDisplay: s.config.Catalog.HomeTeaserCount,
	})

	return c.JSON(http.StatusOK, map[string]any{
		"loading":     s.catalog.Loading(),
		"banners":     banners,
		"products":    teaser.Products,
		"showViewAll": teaser.ShowViewAll,
	})
}

func (s *Service) handleShop(c echo.Context) error {
	selected := c.QueryParam("category")
	if selected == "" {
		selected = catalog.AllCategories
	}
	return s.renderProductList(c, selected)
}

// renderProductList builds the product-list view model: visible products,
// category buttons with counts, and the active category's tag vocabulary.
func (s *Service) renderProductList(c echo.Context, selected string) error {
	ctx := c.Request().Context()
	snap := s.catalog.Snapshot()

	sel := catalog.Selection{
		Category: selected,
		Tags:     c.QueryParams()["tag"],
		Sort:     catalog.ParseSortKey(c.QueryParam("sort")),
	}
	result := catalog.Filter(snap.Products, sel)

	// Server statistics are authoritative for the counts; a failed fetch
	// only demotes to the local fallback, it never blocks rendering.
	// NewCounter reports the demotion, once.
	var byCategory map[string]int
	if stats, err := s.client.FetchProductStatistics(ctx, false); err == nil {
		byCategory = stats.ByCategory
	}
	counter := catalog.NewCounter(byCategory, snap.Products)

	active := catalog.ActiveCategories(snap.Categories)
	buttons := make([]categoryButton, 0, len(active)+1)
	buttons = append(buttons, categoryButton{Name: catalog.AllCategories, Count: counter.Count(catalog.AllCategories)})
	for _, cat := range active {
		buttons = append(buttons, categoryButton{ID: cat.ID, Name: cat.Name, Count: counter.Count(cat.Name)})
	}

	loading := s.catalog.Loading()

	return c.JSON(http.StatusOK, map[string]any{
		"loading":          loading,
		"products":         result.Products,
		"total":            result.Total,
		"empty":            result.Total == 0 && !loading,
		"categories":       buttons,
		"tags":             catalog.VisibleTags(snap.Products, snap.Tags, sel.Category),
		"selectedCategory": sel.Category,
		"selectedTags":     sel.Tags,
		"sort":             sel.Sort,
	})
}

func (s *Service) handleProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	ctx := c.Request().Context()
	snap := s.catalog.Snapshot()

	var product catalog.Product
	found := false
	for _, p := range snap.Products {
		if p.ID == id {
			product = p
			found = true
			break
		}
	}

	if !found {
		// Not in the aggregate snapshot; ask the backend directly.
		raw, err := s.client.FetchProduct(ctx, id)
		if err != nil {
			if errors.Is(err, api.ErrNotFound) {
				slog.Info("product not found", "product_id", id)
				return echo.NewHTTPError(http.StatusNotFound, "product not found")
			}
			slog.Error("failed to fetch product", "product_id", id, "error", err)
			return echo.NewHTTPError(http.StatusBadGateway, "failed to load product")
		}
		product = catalog.ConvertProduct(raw)
	}

	// Related products from the same category
	related := make([]catalog.Product, 0, 4)
	for _, p := range snap.Products {
		if p.ID != product.ID && p.Category == product.Category {
			related = append(related, p)
			if len(related) == 4 {
				break
			}
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"product": product,
		"related": related,
	})
}

func (s *Service) handleCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	snap := s.catalog.Snapshot()
	for _, cat := range snap.Categories {
		if cat.BackendID == id {
			return s.renderProductList(c, cat.Name)
		}
	}

	slog.Info("category not found", "category_id", id)
	return echo.NewHTTPError(http.StatusNotFound, "category not found")
}

func (s *Service) handleRefresh(c echo.Context) error {
	s.catalog.Refresh(c.Request().Context())
	snap := s.catalog.Snapshot()
	return c.JSON(http.StatusOK, map[string]any{
		"products":   len(snap.Products),
		"categories": len(snap.Categories),
		"tags":       len(snap.Tags),
		"banners":    len(snap.Banners),
	})
}

func (s *Service) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "healthy",
		"environment": s.config.Environment,
		"backend":     s.config.Backend.URL,
	})
}
