package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"

	"pinjamdesa/internal/http/handlers"
	"pinjamdesa/internal/repos"
	"pinjamdesa/internal/services"
)

// Admin flips a loan through the status route; the second RETURNED
// submission is rejected with 409 instead of writing a second return.
func TestSetLoanStatusRoute(t *testing.T) {
	db := openTestDB(t)
	itemRepo := repos.NewItemRepo(db)
	memberRepo := repos.NewMemberRepo(db)
	loanRepo := repos.NewLoanRepo(db)
	returnRepo := repos.NewReturnRepo(db)
	loanSvc := services.NewLoanService(loanRepo, itemRepo, memberRepo)
	authSvc := &services.AuthService{Members: memberRepo}

	loan, err := loanSvc.Create("item-tenda", "m-sari", 2)
	if err != nil {
		t.Fatal(err)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	h := &handlers.LoanHandler{Loans: loanSvc}
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Post("/loans/:id/status", h.SetStatus)

	_ = memberRepo.BindSession("sid-admin", "m-admin")
	respTok, _ := app.Test(httptest.NewRequest("GET", "/none", nil))
	csrfTok := extractCookieAuth(respTok, "csrf_")

	post := func(status string) *http.Response {
		form := strings.NewReader("csrf=" + csrfTok + "&status=" + status)
		req := httptest.NewRequest("POST", "/admin/loans/"+loan.ID+"/status", form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := post("RETURNED"); resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect after marking returned, got %d", resp.StatusCode)
	}
	if n, _ := returnRepo.CountByLoan(loan.ID); n != 1 {
		t.Fatalf("want one return record, got %d", n)
	}

	if resp := post("RETURNED"); resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for repeated return, got %d", resp.StatusCode)
	}
	if n, _ := returnRepo.CountByLoan(loan.ID); n != 1 {
		t.Fatalf("repeat must not duplicate the record, got %d", n)
	}

	// legacy "False" spelling still parses to the enum
	if resp := post("False"); resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect after revert, got %d", resp.StatusCode)
	}
	if n, _ := returnRepo.CountByLoan(loan.ID); n != 0 {
		t.Fatalf("revert must delete the return record, got %d", n)
	}

	if resp := post("sideways"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status value, got %d", resp.StatusCode)
	}
}
