package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to the public catalog endpoints of the backend. All methods
// return parsed wire shapes; conversion to view models happens in the
// catalog package.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL (without the /api
// suffix, e.g. "http://localhost:8001").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (c *Client) FetchHeroSlides(ctx context.Context) ([]HeroSlide, error) {
	var slides []HeroSlide
	if err := c.getJSON(ctx, "/api/slides", nil, &slides); err != nil {
		return nil, err
	}
	return slides, nil
}

func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FetchProducts lists products. A zero categoryID means all categories.
func (c *Client) FetchProducts(ctx context.Context, categoryID int64, includeInactive bool) ([]Product, error) {
	query := url.Values{}
	if categoryID > 0 {
		query.Set("category_id", strconv.FormatInt(categoryID, 10))
	}
	if includeInactive {
		query.Set("include_inactive", "true")
	}

	var products []Product
	if err := c.getJSON(ctx, "/api/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchProduct returns a single product. A backend 404 is reported as
// ErrNotFound, any other non-2xx as a RequestError.
func (c *Client) FetchProduct(ctx context.Context, id int64) (Product, error) {
	var product Product
	err := c.getJSON(ctx, fmt.Sprintf("/api/products/%d", id), nil, &product)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
			return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return Product{}, err
	}
	return product, nil
}

func (c *Client) FetchTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.getJSON(ctx, "/api/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) FetchProductStatistics(ctx context.Context, includeInactive bool) (ProductStatistics, error) {
	query := url.Values{}
	if includeInactive {
		query.Set("include_inactive", "true")
	}

	var stats ProductStatistics
	if err := c.getJSON(ctx, "/api/products/statistics", query, &stats); err != nil {
		return ProductStatistics{}, err
	}
	return stats, nil
}

// Login authenticates against the backend and returns the admin info plus
// the backend's session cookie, which must accompany every admin call.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, string, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return LoginResponse{}, "", fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", strings.NewReader(string(body)))
	if err != nil {
		return LoginResponse{}, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LoginResponse{}, "", &NetworkError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return LoginResponse{}, "", err
	}

	var login LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return LoginResponse{}, "", fmt.Errorf("decode login response: %w", err)
	}

	return login, sessionCookie(resp), nil
}

// Logout ends the backend session. Failures are the caller's to log; the
// local session is cleared regardless.
func (c *Client) Logout(ctx context.Context, cookie string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: "logout", Err: err}
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}
	return nil
}

// checkStatus translates a non-2xx response into the error taxonomy.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	message := parseErrorMessage(body)

	if resp.StatusCode == http.StatusUnauthorized {
		if message != "" {
			return fmt.Errorf("%s: %w", message, ErrUnauthorized)
		}
		return ErrUnauthorized
	}

	return &RequestError{Status: resp.StatusCode, Message: message}
}

// parseErrorMessage pulls the backend's "detail" or "message" field out of
// an error body, falling back to the raw text.
func parseErrorMessage(body []byte) string {
	var parsed struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return strings.TrimSpace(string(body))
}

// sessionCookie extracts the session cookie pair from a login response.
func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name != "" {
			return c.Name + "=" + c.Value
		}
	}
	return ""
}
