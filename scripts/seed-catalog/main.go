package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/aurelle/aurelle-web/internal/api"
	"github.com/brianvoe/gofakeit/v7"
)

const numProductsPerCategory = 6

var categories = []api.CategoryInput{
	{Name: "Bras", Slug: "bras", Order: 1, IsActive: true},
	{Name: "Briefs", Slug: "briefs", Order: 2, IsActive: true},
	{Name: "Bodysuits", Slug: "bodysuits", Order: 3, IsActive: true},
	{Name: "Sleepwear", Slug: "sleepwear", Order: 4, IsActive: true},
	{Name: "Swimwear", Slug: "swimwear", Order: 5, IsActive: true},
}

var tags = []api.TagInput{
	{Name: "New Arrival", Color: "#10b981", Order: 1, IsActive: true},
	{Name: "Bestseller", Color: "#f59e0b", Order: 2, IsActive: true},
	{Name: "Limited Edition", Color: "#ef4444", Order: 3, IsActive: true},
	{Name: "Sustainable", Color: "#06b6d4", Order: 4, IsActive: true},
	{Name: "Sale", Color: "#8b5cf6", Order: 5, IsActive: true},
}

var slides = []api.HeroSlideInput{
	{
		Title:      "The New Collection",
		Subtitle:   "Delicate lace, everyday comfort",
		Image:      "/uploads/hero-collection.jpg",
		Link:       "/shop",
		ButtonText: "Shop Now",
		TextColor:  "white",
		Order:      1,
		IsActive:   true,
	},
	{
		Title:      "Sustainable Essentials",
		Subtitle:   "Certified fabrics, responsibly made",
		Image:      "/uploads/hero-sustainable.jpg",
		Link:       "/shop?tag=Sustainable",
		ButtonText: "Discover",
		TextColor:  "white",
		Order:      2,
		IsActive:   true,
	},
}

var fabrics = []string{"Silk", "Lace", "Modal", "Satin", "Mesh", "Cotton"}
var styles = []string{"Balconette", "Bralette", "Plunge", "High-Waist", "Hipster", "Chemise", "Slip", "Triangle"}

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	backendURL := getenv("BACKEND_URL", "http://localhost:8001")
	username := getenv("ADMIN_USERNAME", "admin")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	ctx := context.Background()
	client := api.NewClient(backendURL)

	login, cookie, err := client.Login(ctx, username, password)
	if err != nil || !login.Success {
		log.Fatalf("Failed to log in as %s: %v", username, err)
	}
	admin := api.NewAdminClient(client)

	fmt.Println("Seeding catalog...")

	categoryIDs := make([]int64, 0, len(categories))
	for _, input := range categories {
		created, err := admin.CreateCategory(ctx, cookie, input)
		if err != nil {
			log.Fatalf("Failed to create category %q: %v", input.Name, err)
		}
		categoryIDs = append(categoryIDs, created.ID)
		fmt.Printf("  category %q (id %d)\n", created.Name, created.ID)
	}

	tagIDs := make([]int64, 0, len(tags))
	for _, input := range tags {
		created, err := admin.CreateTag(ctx, cookie, input)
		if err != nil {
			log.Fatalf("Failed to create tag %q: %v", input.Name, err)
		}
		tagIDs = append(tagIDs, created.ID)
		fmt.Printf("  tag %q (id %d)\n", created.Name, created.ID)
	}

	for _, input := range slides {
		created, err := admin.CreateSlide(ctx, cookie, input)
		if err != nil {
			log.Fatalf("Failed to create slide %q: %v", input.Title, err)
		}
		fmt.Printf("  slide %q (id %d)\n", created.Title, created.ID)
	}

	order := 1
	for i, categoryID := range categoryIDs {
		for range numProductsPerCategory {
			input := fakeProduct(categories[i].Name, categoryID, tagIDs, order)
			created, err := admin.CreateProduct(ctx, cookie, input)
			if err != nil {
				log.Fatalf("Failed to create product %q: %v", input.Name, err)
			}
			fmt.Printf("  product %q (id %d)\n", created.Name, created.ID)
			order++
		}
	}

	fmt.Println("Seeding completed.")
}

func fakeProduct(category string, categoryID int64, tagIDs []int64, order int) api.ProductInput {
	name := fmt.Sprintf("%s %s %s", gofakeit.RandomString(fabrics), gofakeit.RandomString(styles), gofakeit.Color())
	slug := fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(name, " ", "-")), order)

	images := []string{
		fmt.Sprintf("/uploads/products/%s-front.jpg", slug),
		fmt.Sprintf("/uploads/products/%s-back.jpg", slug),
	}

	// Up to two random tags per product; some stay untagged so the tag
	// filter bar has something to hide.
	productTags := make([]int64, 0, 2)
	for _, id := range tagIDs {
		if rand.Intn(4) == 0 && len(productTags) < 2 {
			productTags = append(productTags, id)
		}
	}

	return api.ProductInput{
		Name:        name,
		Slug:        slug,
		Description: fmt.Sprintf("From the %s collection. %s", category, gofakeit.Paragraph(1, 2, 12, " ")),
		KeyFeatures: []string{
			gofakeit.RandomString(fabrics) + " finish",
			"Adjustable fit",
		},
		Images:     images,
		Specs:      map[string]any{"fabric": gofakeit.RandomString(fabrics), "care": "Hand wash cold"},
		Order:      order,
		IsActive:   rand.Intn(10) != 0,
		CategoryID: &categoryID,
		TagIDs:     productTags,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
