package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/teerapat29/coffee-storefront/internal/catalog"
	"github.com/teerapat29/coffee-storefront/internal/store"
)

// main posts a product list to a running storefront instance's dev seed
// endpoint. Pass a JSON file path as the first argument to seed custom
// products; otherwise the built-in sample catalog is used.
func main() {
	target := os.Getenv("SEED_TARGET")
	if target == "" {
		target = "http://localhost:8080"
	}

	products := store.SampleProducts()
	if len(os.Args) > 1 {
		b, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("could not read %s: %v", os.Args[1], err)
		}
		var custom []catalog.Product
		if err := json.Unmarshal(b, &custom); err != nil {
			log.Fatalf("could not parse %s: %v", os.Args[1], err)
		}
		products = custom
	}

	body, err := json.Marshal(products)
	if err != nil {
		log.Fatalf("could not encode products: %v", err)
	}

	res, err := http.Post(target+"/dev/seed-products", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("seed request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Fatalf("seed rejected with status %d (is ALLOW_SEED_PRODUCTS=1 set on the server?)", res.StatusCode)
	}
	log.Printf("seeded %d products into %s", len(products), target)
}
