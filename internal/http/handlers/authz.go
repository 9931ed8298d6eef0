package handlers

import (
	"pinjamdesa/internal/authz"
	applog "pinjamdesa/internal/log"
	"pinjamdesa/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireOp resolves the session's member and asks the capability gate
// whether their role may perform op. All guarded routes go through
// here; handlers never compare roles themselves.
func RequireOp(auth *services.AuthService, op authz.Op) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		m, err := auth.CurrentMember(sid)
		if err != nil || m == nil {
			return c.Redirect("/login")
		}
		if !authz.Allowed(m.Role, op) {
			applog.Security(c, "access.denied", map[string]any{"member_id": m.ID, "op": string(op)})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("member", m)
		return c.Next()
	}
}

// RequireMember enforces that someone is logged in.
func RequireMember(auth *services.AuthService) fiber.Handler {
	return RequireOp(auth, authz.OpViewDashboard)
}

// RequireAdmin guards the /admin group.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return RequireOp(auth, authz.OpManageItems)
}
