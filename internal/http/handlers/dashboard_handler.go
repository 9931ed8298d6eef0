package handlers

import (
	applog "pinjamdesa/internal/log"
	"pinjamdesa/internal/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Stock   *services.StockService
	Loans   *services.LoanService
	Members *services.MemberService
	Items   *services.ItemService
}

// GET /dashboard
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	m := currentMember(c)

	avail, err := h.Stock.ListAvailability()
	if err != nil {
		applog.Error(c, "dashboard.availability.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	myLoans, err := h.Loans.ListByMember(m.ID)
	if err != nil {
		applog.Error(c, "dashboard.loans.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}

	data := fiber.Map{"Availability": avail, "MyLoans": myLoans}
	if m.IsAdmin() {
		members, err := h.Members.List()
		if err != nil {
			applog.Error(c, "dashboard.members.fail", err, nil)
			return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
		}
		data["Members"] = members
	}
	return render(c, "dashboard", data)
}

// GET /search
func (h *DashboardHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	category := c.Query("category")
	items, err := h.Items.Search(q, category)
	if err != nil {
		applog.Error(c, "search.fail", err, map[string]any{"q": q})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Search failed"})
	}
	return render(c, "search", fiber.Map{"Items": items, "Q": q, "Category": category})
}
