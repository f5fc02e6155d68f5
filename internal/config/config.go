package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr       string
	APIBaseURL string
	JWTSecret  string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("STOREFRONT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	apiBase := os.Getenv("PRODUCT_API_URL")
	if apiBase == "" {
		apiBase = "https://yelp-khoh.onrender.com/api/product"
	}

	return Config{
		Addr:       addr,
		APIBaseURL: apiBase,
		JWTSecret:  os.Getenv("JWT_SECRET"),
	}
}
