package catalog

import "fmt"

// Entity status values. Products and slides use the lowercase pair,
// categories the capitalized one (the admin console renders them as-is).
const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusEnabled  = "Active"
	StatusDisabled = "Inactive"
)

// Product is the storefront view of a backend product record. Gallery holds
// no duplicate URLs and no blank entries; Image is Gallery[0] when the
// gallery is non-empty, else "".
type Product struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	SKU         string   `json:"sku,omitempty"`
	Status      string   `json:"status"`
	Material    string   `json:"material,omitempty"`
	Care        string   `json:"care,omitempty"`
	Features    []string `json:"features"`
	Gallery     []string `json:"gallery"`
	Video       string   `json:"video,omitempty"`
	Price       string   `json:"price,omitempty"`
	Order       int      `json:"order"`
}

// Category pairs a display slug with the authoritative backend id. The
// backend id is required for any mutating call; it never drives display.
type Category struct {
	ID        string `json:"id"`
	BackendID int64  `json:"backendId"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Status    string `json:"status"`
	Order     int    `json:"order"`
}

// MutationID returns the backend id, failing hard when it is absent rather
// than letting an update or delete silently target nothing.
func (c Category) MutationID() (int64, error) {
	if c.BackendID == 0 {
		return 0, fmt.Errorf("category %q has no backend id", c.Name)
	}
	return c.BackendID, nil
}

// Tag carries both the display id ("tag-{id}") and the backend integer id,
// so mutation calls never parse the numeric suffix back out of the string.
type Tag struct {
	ID        string `json:"id"`
	BackendID int64  `json:"backendId"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Color     string `json:"color"`
	Order     int    `json:"order"`
}

func (t Tag) MutationID() (int64, error) {
	if t.BackendID == 0 {
		return 0, fmt.Errorf("tag %q has no backend id", t.Name)
	}
	return t.BackendID, nil
}

// HeroSlide is a home-page carousel entry. Link is either an in-page anchor
// ("#section") or an absolute URL. TextColor only affects the renderer.
type HeroSlide struct {
	ID          int64  `json:"id"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Link        string `json:"link"`
	ButtonText  string `json:"buttonText"`
	TextColor   string `json:"textColor"`
	Order       int    `json:"order"`
	Status      string `json:"status"`
}
