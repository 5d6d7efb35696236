package api

// Wire shapes returned by the catalog backend. The backend is the authority
// for these records; the catalog package converts them to view models.

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Order    int    `json:"order"`
	IsActive bool   `json:"is_active"`
}

type Tag struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Order    int    `json:"order"`
	IsActive bool   `json:"is_active"`
}

type Product struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	KeyFeatures []string       `json:"key_features"`
	Images      []string       `json:"images"`
	Video       string         `json:"video"`
	Specs       map[string]any `json:"specs"`
	Order       int            `json:"order"`
	IsActive    bool           `json:"is_active"`
	CategoryID  *int64         `json:"category_id"`
	Category    *Category      `json:"category,omitempty"`
	Tags        []Tag          `json:"tags"`
}

type HeroSlide struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Link        string `json:"link"`
	ButtonText  string `json:"button_text"`
	TextColor   string `json:"text_color"`
	Order       int    `json:"order"`
	IsActive    bool   `json:"is_active"`
}

// ProductStatistics is the server-computed per-category count map. Keys are
// category display names.
type ProductStatistics struct {
	Total           int            `json:"total"`
	ByCategory      map[string]int `json:"by_category"`
	IncludeInactive bool           `json:"include_inactive"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
}

// Input payloads for admin mutations.

type ProductInput struct {
	Name        string         `json:"name"`
	Slug        string         `json:"slug,omitempty"`
	Description string         `json:"description,omitempty"`
	KeyFeatures []string       `json:"key_features,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Video       string         `json:"video,omitempty"`
	Specs       map[string]any `json:"specs,omitempty"`
	Order       int            `json:"order"`
	IsActive    bool           `json:"is_active"`
	CategoryID  *int64         `json:"category_id,omitempty"`
	TagIDs      []int64        `json:"tag_ids,omitempty"`
}

type CategoryInput struct {
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	Order    int    `json:"order"`
	IsActive bool   `json:"is_active"`
}

type TagInput struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Order    int    `json:"order"`
	IsActive bool   `json:"is_active"`
}

type HeroSlideInput struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	ButtonText  string `json:"button_text,omitempty"`
	TextColor   string `json:"text_color,omitempty"`
	Order       int    `json:"order"`
	IsActive    bool   `json:"is_active"`
}
