package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFetchFailedHidesCause(t *testing.T) {
	cause := errors.New(`pq: relation "invoices" does not exist`)
	err := FetchFailed("FetchFilteredInvoices", "invoices", ReasonUnknown, cause)

	if err.Error() != "failed to fetch invoices" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Status() != http.StatusInternalServerError {
		t.Errorf("Status() = %d, want 500", err.Status())
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NotFound("FetchInvoiceByID", "invoice not found"))

	if got := KindOf(wrapped); got != KindNotFound {
		t.Errorf("KindOf() = %q, want %q", got, KindNotFound)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{NotFound("op", "missing"), http.StatusNotFound},
		{InvalidInput("op", "bad id"), http.StatusBadRequest},
		{SeedFailed("op", ReasonCanceled, context.Canceled), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.Status(); got != tt.want {
			t.Errorf("%s Status() = %d, want %d", tt.err.Kind, got, tt.want)
		}
	}
}
