package handlers

import (
	"errors"

	"pinjamdesa/internal/authz"
	applog "pinjamdesa/internal/log"
	"pinjamdesa/internal/services"
	"pinjamdesa/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type MemberHandler struct {
	Members *services.MemberService
}

// GET /admin/members
func (h *MemberHandler) List(c *fiber.Ctx) error {
	members, err := h.Members.List()
	if err != nil {
		applog.Error(c, "admin.members.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load members"})
	}
	return render(c, "admin_members", fiber.Map{"Members": members})
}

// GET /admin/members/:id/edit
func (h *MemberHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Member not found"})
	}
	m, err := h.Members.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Member not found"})
	}
	return render(c, "member_form", fiber.Map{"Edit": m})
}

// POST /admin/members/:id
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	role := c.FormValue("role")
	if !okID || !okName || !okEmail || (role != authz.RoleAdmin && role != authz.RoleMember) {
		return c.Status(400).SendString("invalid input")
	}
	// Blank password keeps the current credential.
	pass := c.FormValue("password")
	if pass != "" && !validate.Password(pass) {
		return c.Status(400).SendString("password too weak")
	}

	if err := h.Members.Update(id, name, email, pass, role); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Member not found"})
		}
		applog.Error(c, "admin.members.update.fail", err, map[string]any{"member_id": id})
		return c.Status(400).SendString("could not update member")
	}

	applog.Audit(c, "admin.members.update", map[string]any{"member_id": id, "role": role})
	return c.Redirect("/admin/members")
}

// POST /admin/members/:id/delete
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Members.Delete(id); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "Member not found"})
		}
		applog.Error(c, "admin.members.delete.fail", err, map[string]any{"member_id": id})
		return c.Status(400).SendString("could not delete member")
	}
	applog.Audit(c, "admin.members.delete", map[string]any{"member_id": id})
	return c.Redirect("/admin/members")
}
