package handlers

import (
	"errors"
	"strings"

	"pinjamdesa/internal/services"
	"pinjamdesa/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AvailabilityHandler struct {
	Stock *services.StockService
}

// GET /api/v1/availability[?itemId=...]
// Without itemId: every item with its available count. With itemId:
// the single item's count.
func (h *AvailabilityHandler) Check(c *fiber.Ctx) error {
	itemID := strings.TrimSpace(c.Query("itemId"))
	if itemID == "" {
		rows, err := h.Stock.ListAvailability()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not compute availability"})
		}
		out := make([]fiber.Map, 0, len(rows))
		for _, r := range rows {
			out = append(out, fiber.Map{
				"itemId":     r.ID,
				"name":       r.Name,
				"category":   r.Category,
				"totalStock": r.TotalStock,
				"available":  r.Available,
			})
		}
		return c.JSON(out)
	}

	if _, ok := validate.ID(itemID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid itemId"})
	}
	n, err := h.Stock.Available(itemID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not compute availability"})
	}
	return c.JSON(fiber.Map{"itemId": itemID, "available": n})
}
