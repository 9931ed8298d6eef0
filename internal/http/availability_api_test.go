package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"pinjamdesa/internal/http/handlers"
	"pinjamdesa/internal/repos"
	"pinjamdesa/internal/services"
)

func TestAvailabilityAPI(t *testing.T) {
	db := openTestDB(t)
	itemRepo := repos.NewItemRepo(db)
	memberRepo := repos.NewMemberRepo(db)
	loanRepo := repos.NewLoanRepo(db)
	stockSvc := services.NewStockService(itemRepo, loanRepo)
	loanSvc := services.NewLoanService(loanRepo, itemRepo, memberRepo)

	app := fiber.New()
	h := &handlers.AvailabilityHandler{Stock: stockSvc}
	app.Get("/api/v1/availability", h.Check)

	// seeded item, nothing borrowed yet: available == total
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/availability?itemId=item-tenda", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var one struct {
		ItemID    string `json:"itemId"`
		Available int    `json:"available"`
	}
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &one); err != nil {
		t.Fatalf("bad json: %v (%s)", err, body)
	}
	if one.Available != 4 {
		t.Fatalf("want available=4, got %+v", one)
	}

	// borrowing lowers the derived count
	if _, err := loanSvc.Create("item-tenda", "m-sari", 3); err != nil {
		t.Fatal(err)
	}
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/availability?itemId=item-tenda", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &one); err != nil {
		t.Fatal(err)
	}
	if one.Available != 1 {
		t.Fatalf("want available=1 after loan, got %+v", one)
	}

	// full listing covers every item
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/availability", nil))
	if err != nil {
		t.Fatal(err)
	}
	var list []struct {
		ItemID    string `json:"itemId"`
		Available int    `json:"available"`
	}
	body, _ = io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("bad json: %v (%s)", err, body)
	}
	if len(list) < 4 {
		t.Fatalf("expected all seeded items, got %d", len(list))
	}

	// unknown item -> 404
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/availability?itemId=nope", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 for unknown item, got %d", resp.StatusCode)
	}
}
