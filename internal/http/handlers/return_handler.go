package handlers

import (
	applog "pinjamdesa/internal/log"
	"pinjamdesa/internal/repos"

	"github.com/gofiber/fiber/v2"
)

type ReturnHandler struct {
	Returns *repos.ReturnRepo
}

// GET /admin/returns
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	rows, err := h.Returns.List()
	if err != nil {
		applog.Error(c, "admin.returns.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load returns"})
	}
	return render(c, "admin_returns", fiber.Map{"Returns": rows})
}
