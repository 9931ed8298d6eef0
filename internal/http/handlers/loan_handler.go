package handlers

import (
	"errors"

	applog "pinjamdesa/internal/log"
	"pinjamdesa/internal/services"
	"pinjamdesa/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type LoanHandler struct {
	Loans *services.LoanService
}

// POST /loans — self-service for members; admins may borrow on behalf
// of another member via the member_id field.
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	m := currentMember(c)

	itemID, okItem := validate.ID(c.FormValue("item_id"))
	qty, okQty := validate.Qty(c.FormValue("qty"))
	if !okItem || !okQty {
		return c.Status(400).SendString("invalid input")
	}

	memberID := m.ID
	if other := c.FormValue("member_id"); other != "" && other != m.ID {
		if !m.IsAdmin() {
			applog.Security(c, "loan.create.forbidden", map[string]any{"member_id": m.ID, "target": other})
			return c.Status(403).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		if id, ok := validate.ID(other); ok {
			memberID = id
		} else {
			return c.Status(400).SendString("invalid member")
		}
	}

	loan, err := h.Loans.Create(itemID, memberID, qty)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			return c.Status(400).SendString("quantity must be a positive number")
		case errors.Is(err, services.ErrInsufficientStock):
			return c.Status(409).SendString("not enough stock available")
		case errors.Is(err, services.ErrItemNotFound):
			return c.Status(404).SendString("item not found")
		case errors.Is(err, services.ErrMemberNotFound):
			return c.Status(404).SendString("member not found")
		}
		applog.Error(c, "loan.create.fail", err, map[string]any{"item_id": itemID, "member_id": memberID})
		return c.Status(500).SendString("could not create loan")
	}

	applog.Audit(c, "loan.create", map[string]any{"loan_id": loan.ID, "item_id": itemID, "member_id": memberID, "qty": qty})
	return c.Redirect("/dashboard")
}

// GET /admin/loans
func (h *LoanHandler) List(c *fiber.Ctx) error {
	loans, err := h.Loans.List()
	if err != nil {
		applog.Error(c, "admin.loans.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load loans"})
	}
	return render(c, "admin_loans", fiber.Map{"Loans": loans})
}

// GET /admin/loans/:id/status
func (h *LoanHandler) StatusForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Loan not found"})
	}
	loan, err := h.Loans.Loans.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Loan not found"})
	}
	return render(c, "loan_status", fiber.Map{"Loan": loan})
}

// POST /admin/loans/:id/status
func (h *LoanHandler) SetStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status, okStatus := validate.Status(c.FormValue("status"))
	if !okID || !okStatus {
		return c.Status(400).SendString("invalid input")
	}

	loan, err := h.Loans.SetStatus(id, status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Loan not found"})
		case errors.Is(err, services.ErrAlreadyReturned):
			return c.Status(409).SendString("loan is already returned")
		}
		applog.Error(c, "admin.loans.status.fail", err, map[string]any{"loan_id": id})
		return c.Status(400).SendString("could not update status")
	}

	applog.Audit(c, "admin.loans.status", map[string]any{"loan_id": id, "status": string(loan.Status)})
	return c.Redirect("/admin/returns")
}

// POST /admin/loans/:id/delete
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Loans.Delete(id); err != nil {
		if errors.Is(err, services.ErrLoanNotFound) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Loan not found"})
		}
		applog.Error(c, "admin.loans.delete.fail", err, map[string]any{"loan_id": id})
		return c.Status(400).SendString("could not delete loan")
	}
	applog.Audit(c, "admin.loans.delete", map[string]any{"loan_id": id})
	return c.Redirect("/admin/loans")
}
