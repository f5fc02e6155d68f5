package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"

	"github.com/teerapat29/coffee-storefront/internal/config"
	"github.com/teerapat29/coffee-storefront/internal/remote"
	"github.com/teerapat29/coffee-storefront/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(checkMiddleware)

	// the remote client owns transport timeouts; the store does not
	// enforce any of its own
	client := remote.NewClient(cfg.APIBaseURL, &http.Client{Timeout: 15 * time.Second})
	st := store.New(client)
	handler := store.NewHandler(st)

	handler.RegisterPublicRoutes(app)

	// everything registered below requires a valid admin token
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))
	handler.RegisterProtectedRoutes(app)

	// warm the catalog so the first page load has data; a failure leaves
	// the store empty and the UI can hit the refresh endpoint
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := st.RefreshCatalog(ctx); err != nil {
			fmt.Printf("warning: initial catalog fetch failed: %v\n", err)
		}
	}()

	app.Listen(cfg.Addr)
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func checkMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}
