package service

import (
	"os"
	"strconv"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	Backend struct {
		URL string
	}

	Catalog struct {
		// HomeTeaserCount caps the product teaser on the home page.
		HomeTeaserCount int
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/aurelle.db"),
	}

	// Backend
	config.Backend.URL = getEnv("BACKEND_URL", "http://localhost:8001")

	// Catalog
	teaser := getEnv("HOME_TEASER_COUNT", "8")
	if n, err := strconv.Atoi(teaser); err == nil && n > 0 {
		config.Catalog.HomeTeaserCount = n
	} else {
		config.Catalog.HomeTeaserCount = 8
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
