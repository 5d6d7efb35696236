package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// AdminClient performs authenticated CRUD against the backend's /api/admin
// surface. Every call attaches the backend session cookie captured at login.
// A 401 from any call comes back as ErrUnauthorized; the handler layer owns
// the clear-session-and-redirect contract.
type AdminClient struct {
	*Client
}

func NewAdminClient(client *Client) *AdminClient {
	return &AdminClient{Client: client}
}

// Unfiltered list variants for the admin console (include inactive records).

func (a *AdminClient) ListAllProducts(ctx context.Context, cookie string) ([]Product, error) {
	var products []Product
	if err := a.doJSON(ctx, http.MethodGet, "/api/admin/products", cookie, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (a *AdminClient) ListAllCategories(ctx context.Context, cookie string) ([]Category, error) {
	var categories []Category
	if err := a.doJSON(ctx, http.MethodGet, "/api/admin/categories", cookie, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (a *AdminClient) ListAllSlides(ctx context.Context, cookie string) ([]HeroSlide, error) {
	var slides []HeroSlide
	if err := a.doJSON(ctx, http.MethodGet, "/api/admin/slides", cookie, nil, &slides); err != nil {
		return nil, err
	}
	return slides, nil
}

// Product CRUD.

func (a *AdminClient) CreateProduct(ctx context.Context, cookie string, input ProductInput) (Product, error) {
	var product Product
	err := a.doJSON(ctx, http.MethodPost, "/api/admin/products", cookie, input, &product)
	return product, err
}

func (a *AdminClient) UpdateProduct(ctx context.Context, cookie string, id int64, input ProductInput) (Product, error) {
	var product Product
	err := a.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", id), cookie, input, &product)
	return product, err
}

func (a *AdminClient) DeleteProduct(ctx context.Context, cookie string, id int64) error {
	return a.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", id), cookie, nil, nil)
}

// Category CRUD.

func (a *AdminClient) CreateCategory(ctx context.Context, cookie string, input CategoryInput) (Category, error) {
	var category Category
	err := a.doJSON(ctx, http.MethodPost, "/api/admin/categories", cookie, input, &category)
	return category, err
}

func (a *AdminClient) UpdateCategory(ctx context.Context, cookie string, id int64, input CategoryInput) (Category, error) {
	var category Category
	err := a.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/admin/categories/%d", id), cookie, input, &category)
	return category, err
}

func (a *AdminClient) DeleteCategory(ctx context.Context, cookie string, id int64) error {
	return a.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", id), cookie, nil, nil)
}

// Tag CRUD.

func (a *AdminClient) CreateTag(ctx context.Context, cookie string, input TagInput) (Tag, error) {
	var tag Tag
	err := a.doJSON(ctx, http.MethodPost, "/api/admin/tags", cookie, input, &tag)
	return tag, err
}

func (a *AdminClient) UpdateTag(ctx context.Context, cookie string, id int64, input TagInput) (Tag, error) {
	var tag Tag
	err := a.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/admin/tags/%d", id), cookie, input, &tag)
	return tag, err
}

func (a *AdminClient) DeleteTag(ctx context.Context, cookie string, id int64) error {
	return a.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/tags/%d", id), cookie, nil, nil)
}

// Hero slide CRUD.

func (a *AdminClient) CreateSlide(ctx context.Context, cookie string, input HeroSlideInput) (HeroSlide, error) {
	var slide HeroSlide
	err := a.doJSON(ctx, http.MethodPost, "/api/admin/slides", cookie, input, &slide)
	return slide, err
}

func (a *AdminClient) UpdateSlide(ctx context.Context, cookie string, id int64, input HeroSlideInput) (HeroSlide, error) {
	var slide HeroSlide
	err := a.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/admin/slides/%d", id), cookie, input, &slide)
	return slide, err
}

func (a *AdminClient) DeleteSlide(ctx context.Context, cookie string, id int64) error {
	return a.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/slides/%d", id), cookie, nil, nil)
}

// Uploads. Files stream through as multipart form-data; the backend owns
// object storage and returns the public URL.

// UploadFile uploads straight to permanent storage.
func (a *AdminClient) UploadFile(ctx context.Context, cookie, filename string, file io.Reader) (string, error) {
	return a.upload(ctx, "/api/admin/upload", cookie, filename, file)
}

// UploadTempFile uploads to the staging area; the URL is only promoted to
// permanent storage by MoveTempFilesToFinal on a successful entity save.
func (a *AdminClient) UploadTempFile(ctx context.Context, cookie, filename string, file io.Reader) (string, error) {
	return a.upload(ctx, "/api/admin/upload-temp", cookie, filename, file)
}

func (a *AdminClient) UploadVideo(ctx context.Context, cookie, filename string, file io.Reader) (string, error) {
	return a.upload(ctx, "/api/admin/upload-video", cookie, filename, file)
}

func (a *AdminClient) MoveTempFilesToFinal(ctx context.Context, cookie string, tempURLs []string) ([]string, error) {
	payload := map[string][]string{"temp_urls": tempURLs}
	var result struct {
		URLs []string `json:"urls"`
	}
	if err := a.doJSON(ctx, http.MethodPost, "/api/admin/move-temp-to-final", cookie, payload, &result); err != nil {
		return nil, err
	}
	return result.URLs, nil
}

func (a *AdminClient) upload(ctx context.Context, path, cookie, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy file contents: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Op: "POST " + path, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("upload response missing url")
	}
	return NormalizeUploadURL(result.URL), nil
}

// NormalizeUploadURL leaves absolute URLs and /uploads/ paths alone and
// prefixes bare filenames with /uploads/ (legacy backend responses).
func NormalizeUploadURL(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "/uploads/") {
		return url
	}
	return "/uploads/" + url
}

func (a *AdminClient) doJSON(ctx context.Context, method, path, cookie string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}
	return nil
}
