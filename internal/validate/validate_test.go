package validate_test

import (
	"testing"

	"pinjamdesa/internal/domain"
	"pinjamdesa/internal/validate"
)

func TestStatusParsesBothSpellings(t *testing.T) {
	cases := []struct {
		in   string
		want domain.LoanStatus
		ok   bool
	}{
		{"RETURNED", domain.StatusReturned, true},
		{"returned", domain.StatusReturned, true},
		{"True", domain.StatusReturned, true},
		{"OUTSTANDING", domain.StatusOutstanding, true},
		{"False", domain.StatusOutstanding, true},
		{" false ", domain.StatusOutstanding, true},
		{"", "", false},
		{"maybe", "", false},
		{"1", "", false},
	}
	for _, tc := range cases {
		got, ok := validate.Status(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Status(%q) = %q,%v; want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestQtyDoesNotClamp(t *testing.T) {
	// negative and zero values must reach the loan service intact so
	// it can reject them, not get silently corrected
	for in, want := range map[string]int{"0": 0, "-1": -1, "7": 7} {
		got, ok := validate.Qty(in)
		if !ok || got != want {
			t.Fatalf("Qty(%q) = %d,%v; want %d,true", in, got, ok, want)
		}
	}
	if _, ok := validate.Qty("many"); ok {
		t.Fatal("non-numeric qty must not validate")
	}
}

func TestStockRejectsNegative(t *testing.T) {
	if _, ok := validate.Stock("-3"); ok {
		t.Fatal("negative stock must not validate")
	}
	if n, ok := validate.Stock("0"); !ok || n != 0 {
		t.Fatal("zero stock is allowed")
	}
}

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("sari@pinjamdesa.test"); !ok {
		t.Fatal("valid email rejected")
	}
	for _, bad := range []string{"", "not-an-email", "a@b"} {
		if _, ok := validate.Email(bad); ok {
			t.Fatalf("bad email %q accepted", bad)
		}
	}
}
