package store

import (
	"github.com/gofiber/fiber/v2"
)

type setFilterRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

func (h *Handler) getFilters(c *fiber.Ctx) error {
	return c.JSON(h.store.Filters())
}

// setFilter updates a single filter field. No cross-field validation:
// the controls set minPrice and maxPrice independently.
func (h *Handler) setFilter(c *fiber.Ctx) error {
	payload := new(setFilterRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.store.SetFilter(payload.Field, payload.Value); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.store.Filters())
}

func (h *Handler) clearFilters(c *fiber.Ctx) error {
	h.store.ClearFilters()
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) getFilterOptions(c *fiber.Ctx) error {
	return c.JSON(h.store.Options())
}
