package repository

import (
	"strings"
	"testing"

	"dashboard-backend/internal/database"
)

func TestSearchPattern(t *testing.T) {
	tests := map[string]string{
		"":             "%%",
		"Lee":          "%lee%",
		"LEE@Robinson": "%lee@robinson%",
		"2023-06":      "%2023-06%",
	}
	for in, want := range tests {
		if got := searchPattern(in); got != want {
			t.Errorf("searchPattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInvoiceSearchPlaceholders(t *testing.T) {
	for _, d := range []database.Dialect{{Name: "postgres"}, {Name: "mysql"}} {
		clause := invoiceSearch(d)
		if n := strings.Count(clause, "?"); n != 5 {
			t.Errorf("%s: %d placeholders, want 5", d.Name, n)
		}
		if !strings.Contains(clause, d.AsText("invoices.amount")) {
			t.Errorf("%s: amount is not matched as text", d.Name)
		}
		if !strings.Contains(clause, d.DateAsText("invoices.date")) {
			t.Errorf("%s: date is not matched as text", d.Name)
		}
	}
}
