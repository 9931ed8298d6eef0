package handlers

import (
	"pinjamdesa/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject member if present
	if m := c.Locals("member"); m != nil {
		data["Member"] = m
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		if cookTok := c.Cookies("csrf_"); cookTok != "" {
			data["CSRFToken"] = cookTok
		}
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// currentMember returns the session member placed in Locals by the
// authz middleware.
func currentMember(c *fiber.Ctx) *domain.Member {
	m, _ := c.Locals("member").(*domain.Member)
	return m
}
