package catalog

import (
	"fmt"
	"strings"

	"github.com/aurelle/aurelle-web/internal/api"
)

// Converters map backend records to view models. They are total: malformed
// or missing optional fields degrade to defaults, never to errors, and no
// converter performs I/O.

// ConvertProduct maps a backend product to the storefront view model.
func ConvertProduct(p api.Product) Product {
	// Tag names when the product has tags, key features otherwise.
	tagNames := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tagNames = append(tagNames, t.Name)
	}
	if len(tagNames) == 0 && len(p.KeyFeatures) > 0 {
		tagNames = append(tagNames, p.KeyFeatures...)
	}

	gallery := dedupeImages(p.Images)

	image := ""
	if len(gallery) > 0 {
		image = gallery[0]
	}

	category := "Uncategorized"
	if p.Category != nil && p.Category.Name != "" {
		category = p.Category.Name
	}

	// Dedicated video field, with the legacy specs.video fallback.
	video := p.Video
	if video == "" {
		video = specString(p.Specs, "video")
	}

	order := p.Order
	if order == 0 {
		order = int(p.ID)
	}

	return Product{
		ID:          p.ID,
		Title:       p.Name,
		Category:    category,
		Image:       image,
		Description: p.Description,
		Tags:        tagNames,
		SKU:         p.Slug,
		Status:      activeStatus(p.IsActive),
		Material:    specString(p.Specs, "material"),
		Care:        specString(p.Specs, "care"),
		Features:    append([]string(nil), p.KeyFeatures...),
		Gallery:     gallery,
		Video:       video,
		Price:       specString(p.Specs, "price"),
		Order:       order,
	}
}

// ConvertCategory maps a backend category. index is the record's position in
// the input sequence, used as the order fallback. Count is derived by the
// caller, not here.
func ConvertCategory(c api.Category, index int) Category {
	id := c.Slug
	if id == "" {
		id = fmt.Sprintf("category-%d", c.ID)
	}

	order := c.Order
	if order == 0 {
		order = index + 1
	}

	status := StatusDisabled
	if c.IsActive {
		status = StatusEnabled
	}

	return Category{
		ID:        id,
		BackendID: c.ID,
		Name:      c.Name,
		Status:    status,
		Order:     order,
	}
}

// ConvertTag maps a backend tag. count is the number of products referencing
// the tag, supplied by the caller.
func ConvertTag(t api.Tag, count int) Tag {
	return Tag{
		ID:        fmt.Sprintf("tag-%d", t.ID),
		BackendID: t.ID,
		Name:      t.Name,
		Count:     count,
		Color:     t.Color,
		Order:     t.Order,
	}
}

// ConvertHeroSlide maps a backend hero slide, defaulting the optional
// presentation fields.
func ConvertHeroSlide(s api.HeroSlide) HeroSlide {
	link := s.Link
	if link == "" {
		link = "#"
	}

	buttonText := s.ButtonText
	if buttonText == "" {
		buttonText = "Learn More"
	}

	textColor := s.TextColor
	if textColor != "white" && textColor != "black" {
		textColor = "white"
	}

	return HeroSlide{
		ID:          s.ID,
		Image:       s.Image,
		Title:       s.Title,
		Subtitle:    s.Subtitle,
		Description: s.Description,
		Link:        link,
		ButtonText:  buttonText,
		TextColor:   textColor,
		Order:       s.Order,
		Status:      activeStatus(s.IsActive),
	}
}

func activeStatus(isActive bool) string {
	if isActive {
		return StatusActive
	}
	return StatusDraft
}

// dedupeImages drops blank entries and duplicate URLs, keeping first
// occurrence order.
func dedupeImages(images []string) []string {
	seen := make(map[string]struct{}, len(images))
	result := make([]string, 0, len(images))
	for _, img := range images {
		if strings.TrimSpace(img) == "" {
			continue
		}
		if _, ok := seen[img]; ok {
			continue
		}
		seen[img] = struct{}{}
		result = append(result, img)
	}
	return result
}

func specString(specs map[string]any, key string) string {
	if specs == nil {
		return ""
	}
	if v, ok := specs[key].(string); ok {
		return v
	}
	return ""
}
