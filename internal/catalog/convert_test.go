package catalog

import (
	"testing"

	"github.com/aurelle/aurelle-web/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertProduct(t *testing.T) {
	categoryID := int64(3)

	t.Run("full record", func(t *testing.T) {
		p := api.Product{
			ID:          42,
			Name:        "Silk Balconette",
			Slug:        "silk-balconette",
			Description: "Soft silk cups with underwire support.",
			KeyFeatures: []string{"Underwire", "Adjustable straps"},
			Images:      []string{"/uploads/a.jpg", "/uploads/b.jpg"},
			Video:       "/uploads/a.mp4",
			Specs:       map[string]any{"material": "Silk", "care": "Hand wash", "price": "89.00"},
			Order:       5,
			IsActive:    true,
			CategoryID:  &categoryID,
			Category:    &api.Category{ID: 3, Name: "Bras"},
			Tags:        []api.Tag{{ID: 1, Name: "New Arrival"}, {ID: 2, Name: "Bestseller"}},
		}

		got := ConvertProduct(p)

		assert.Equal(t, int64(42), got.ID)
		assert.Equal(t, "Silk Balconette", got.Title)
		assert.Equal(t, "Bras", got.Category)
		assert.Equal(t, "/uploads/a.jpg", got.Image)
		assert.Equal(t, []string{"New Arrival", "Bestseller"}, got.Tags)
		assert.Equal(t, "silk-balconette", got.SKU)
		assert.Equal(t, StatusActive, got.Status)
		assert.Equal(t, "Silk", got.Material)
		assert.Equal(t, "Hand wash", got.Care)
		assert.Equal(t, "/uploads/a.mp4", got.Video)
		assert.Equal(t, "89.00", got.Price)
		assert.Equal(t, 5, got.Order)
	})

	t.Run("gallery drops blanks and duplicates", func(t *testing.T) {
		p := api.Product{
			ID:     1,
			Images: []string{"", "/a.jpg", "  ", "/b.jpg", "/a.jpg", "/c.jpg"},
		}

		got := ConvertProduct(p)

		assert.Equal(t, []string{"/a.jpg", "/b.jpg", "/c.jpg"}, got.Gallery)
		assert.Equal(t, "/a.jpg", got.Image)
	})

	t.Run("empty gallery leaves image blank", func(t *testing.T) {
		got := ConvertProduct(api.Product{ID: 1, Images: []string{"", "   "}})

		assert.Empty(t, got.Gallery)
		assert.Equal(t, "", got.Image)
	})

	t.Run("missing category becomes Uncategorized", func(t *testing.T) {
		assert.Equal(t, "Uncategorized", ConvertProduct(api.Product{ID: 1}).Category)
		assert.Equal(t, "Uncategorized", ConvertProduct(api.Product{ID: 1, Category: &api.Category{}}).Category)
	})

	t.Run("key features stand in for missing tags", func(t *testing.T) {
		p := api.Product{ID: 1, KeyFeatures: []string{"Underwire", "Breathable"}}

		assert.Equal(t, []string{"Underwire", "Breathable"}, ConvertProduct(p).Tags)

		// Real tags win over key features.
		p.Tags = []api.Tag{{ID: 1, Name: "Sale"}}
		assert.Equal(t, []string{"Sale"}, ConvertProduct(p).Tags)
	})

	t.Run("legacy video in specs", func(t *testing.T) {
		p := api.Product{ID: 1, Specs: map[string]any{"video": "/legacy.mp4"}}
		assert.Equal(t, "/legacy.mp4", ConvertProduct(p).Video)

		// Dedicated field wins.
		p.Video = "/new.mp4"
		assert.Equal(t, "/new.mp4", ConvertProduct(p).Video)
	})

	t.Run("non-string specs values ignored", func(t *testing.T) {
		p := api.Product{ID: 1, Specs: map[string]any{"material": 7, "video": true}}
		got := ConvertProduct(p)

		assert.Equal(t, "", got.Material)
		assert.Equal(t, "", got.Video)
	})

	t.Run("zero order falls back to id", func(t *testing.T) {
		assert.Equal(t, 42, ConvertProduct(api.Product{ID: 42}).Order)
		assert.Equal(t, 9, ConvertProduct(api.Product{ID: 42, Order: 9}).Order)
	})

	t.Run("inactive product is draft", func(t *testing.T) {
		assert.Equal(t, StatusDraft, ConvertProduct(api.Product{ID: 1, IsActive: false}).Status)
	})
}

func TestConvertCategory(t *testing.T) {
	t.Run("slug as display id", func(t *testing.T) {
		got := ConvertCategory(api.Category{ID: 7, Name: "Bras", Slug: "bras", Order: 2, IsActive: true}, 0)

		assert.Equal(t, "bras", got.ID)
		assert.Equal(t, int64(7), got.BackendID)
		assert.Equal(t, 2, got.Order)
		assert.Equal(t, StatusEnabled, got.Status)
	})

	t.Run("missing slug synthesizes id", func(t *testing.T) {
		got := ConvertCategory(api.Category{ID: 7, Name: "Bras"}, 0)
		assert.Equal(t, "category-7", got.ID)
	})

	t.Run("zero order falls back to position", func(t *testing.T) {
		got := ConvertCategory(api.Category{ID: 7}, 3)
		assert.Equal(t, 4, got.Order)
	})

	t.Run("inactive category", func(t *testing.T) {
		got := ConvertCategory(api.Category{ID: 7, IsActive: false}, 0)
		assert.Equal(t, StatusDisabled, got.Status)
	})
}

func TestCategoryMutationID(t *testing.T) {
	id, err := Category{BackendID: 7, Name: "Bras"}.MutationID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = Category{Name: "Orphan"}.MutationID()
	assert.Error(t, err)
}

func TestConvertTag(t *testing.T) {
	got := ConvertTag(api.Tag{ID: 5, Name: "Sale", Color: "#8b5cf6", Order: 3}, 11)

	assert.Equal(t, "tag-5", got.ID)
	assert.Equal(t, int64(5), got.BackendID)
	assert.Equal(t, "Sale", got.Name)
	assert.Equal(t, 11, got.Count)
	assert.Equal(t, "#8b5cf6", got.Color)
	assert.Equal(t, 3, got.Order)
}

func TestTagMutationID(t *testing.T) {
	_, err := Tag{Name: "Orphan"}.MutationID()
	assert.Error(t, err)
}

func TestConvertHeroSlide(t *testing.T) {
	t.Run("defaults for optional fields", func(t *testing.T) {
		got := ConvertHeroSlide(api.HeroSlide{ID: 1, Title: "Sale", Image: "/hero.jpg", IsActive: true})

		assert.Equal(t, "#", got.Link)
		assert.Equal(t, "Learn More", got.ButtonText)
		assert.Equal(t, "white", got.TextColor)
		assert.Equal(t, StatusActive, got.Status)
	})

	t.Run("explicit fields pass through", func(t *testing.T) {
		got := ConvertHeroSlide(api.HeroSlide{
			ID: 1, Link: "/shop", ButtonText: "Shop Now", TextColor: "black",
		})

		assert.Equal(t, "/shop", got.Link)
		assert.Equal(t, "Shop Now", got.ButtonText)
		assert.Equal(t, "black", got.TextColor)
	})

	t.Run("unknown text color normalized to white", func(t *testing.T) {
		got := ConvertHeroSlide(api.HeroSlide{ID: 1, TextColor: "magenta"})
		assert.Equal(t, "white", got.TextColor)
	})
}
