package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"pinjamdesa/internal/http/handlers"
	"pinjamdesa/internal/repos"
	"pinjamdesa/internal/services"
)

// Minimal app for admin guard testing
func newAdminApp(t *testing.T) (*fiber.App, *repos.MemberRepo) {
	t.Helper()
	db := openTestDB(t)
	memberRepo := repos.NewMemberRepo(db)
	authSvc := &services.AuthService{Members: memberRepo}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	member := app.Group("/dashboard", handlers.RequireMember(authSvc))
	member.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	return app, memberRepo
}

func TestAdminGuardRequiresAdmin(t *testing.T) {
	app, memberRepo := newAdminApp(t)

	// Anonymous -> redirect to login
	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound && resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected redirect/forbidden, got %d", resp.StatusCode)
	}

	// Logged-in regular member -> 403
	_ = memberRepo.BindSession("sid-member", "m-sari")
	reqMember := httptest.NewRequest("GET", "/admin", nil)
	reqMember.AddCookie(&http.Cookie{Name: "sid", Value: "sid-member"})
	respMember, err := app.Test(reqMember)
	if err != nil {
		t.Fatal(err)
	}
	if respMember.StatusCode != http.StatusForbidden {
		t.Fatalf("expected forbidden for regular member, got %d", respMember.StatusCode)
	}

	// Admin -> 200
	_ = memberRepo.BindSession("sid-admin", "m-admin")
	reqAdmin := httptest.NewRequest("GET", "/admin", nil)
	reqAdmin.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	respAdmin, err := app.Test(reqAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if respAdmin.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", respAdmin.StatusCode)
	}
}

func TestMemberGuardAllowsBothRoles(t *testing.T) {
	app, memberRepo := newAdminApp(t)

	_ = memberRepo.BindSession("sid-member", "m-sari")
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-member"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for logged-in member, got %d", resp.StatusCode)
	}

	// Anonymous -> redirect
	respAnon, err := app.Test(httptest.NewRequest("GET", "/dashboard", nil))
	if err != nil {
		t.Fatal(err)
	}
	if respAnon.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect for anonymous, got %d", respAnon.StatusCode)
	}
}
