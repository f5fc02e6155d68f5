package store

import (
	"github.com/gofiber/fiber/v2"
)

type cartRequest struct {
	ProductID string `json:"productID"`
	Quantity  int    `json:"quantity,omitempty"`
}

// cartResponse is what every cart endpoint answers with: the lines plus
// the derived aggregates, so the UI never has to total anything itself.
type cartResponse struct {
	Items           []CartItem `json:"items"`
	TotalItems      int        `json:"totalItems"`
	TotalPrice      float64    `json:"totalPrice"`
	TotalDiscounted float64    `json:"totalDiscounted"`
}

func (h *Handler) cartSnapshot() cartResponse {
	return cartResponse{
		Items:           h.store.CartItems(),
		TotalItems:      h.store.TotalItems(),
		TotalPrice:      h.store.TotalPrice(),
		TotalDiscounted: h.store.TotalDiscounted(),
	}
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	return c.JSON(h.cartSnapshot())
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}

	p, ok := h.store.ProductByID(payload.ProductID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	// quantities below 1 are floored to 1 by the store
	h.store.AddToCart(p, payload.Quantity)
	return c.JSON(h.cartSnapshot())
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	// removal of an absent id is a no-op, not an error
	h.store.RemoveFromCart(c.Params("id"))
	return c.JSON(h.cartSnapshot())
}

func (h *Handler) incrementCartItem(c *fiber.Ctx) error {
	h.store.IncrementCartItem(c.Params("id"))
	return c.JSON(h.cartSnapshot())
}

func (h *Handler) decrementCartItem(c *fiber.Ctx) error {
	h.store.DecrementCartItem(c.Params("id"))
	return c.JSON(h.cartSnapshot())
}
