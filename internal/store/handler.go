package store

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/teerapat29/coffee-storefront/internal/remote"
)

// Handler exposes the store to UI collaborators over HTTP.
type Handler struct {
	store *Store
}

func NewHandler(s *Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Post("/api/v1/products/refresh", h.refreshProducts)
	app.Get("/api/v1/product/:id", h.getProduct)
	app.Get("/api/v1/status", h.getStatus)

	app.Get("/api/v1/filters", h.getFilters)
	app.Put("/api/v1/filters", h.setFilter)
	app.Delete("/api/v1/filters", h.clearFilters)
	app.Get("/api/v1/filters/options", h.getFilterOptions)

	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/product/cart", h.addToCart)
	app.Delete("/api/v1/cart/:id", h.removeFromCart)
	app.Patch("/api/v1/cart/:id/increment", h.incrementCartItem)
	app.Patch("/api/v1/cart/:id/decrement", h.decrementCartItem)

	// dev-only endpoint to seed the catalog — enabled when ALLOW_SEED_PRODUCTS=1
	app.Post("/dev/seed-products", h.seedProducts)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/product", h.addProduct)
}

// getProducts returns the derived filtered/sorted catalog view.
func (h *Handler) getProducts(c *fiber.Ctx) error {
	return c.JSON(h.store.FilteredProducts())
}

// refreshProducts re-fetches the catalog from the remote API. On failure
// the previous catalog stays in place and the error kind is reported.
func (h *Handler) refreshProducts(c *fiber.Ctx) error {
	if err := h.store.RefreshCatalog(c.Context()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": err.Error(),
			"kind":    h.store.LastError(),
		})
	}
	return c.JSON(h.store.Products())
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	p, err := h.store.LoadProduct(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, remote.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(p)
}

func (h *Handler) getStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"isFetching": h.store.IsFetching(),
		"lastError":  h.store.LastError(),
	})
}
