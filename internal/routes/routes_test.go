package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"dashboard-backend/internal/config"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, nil, config.Default())
	return r
}

func TestRegisterRoutes(t *testing.T) {
	want := []string{
		"/seed",
		"/metrics",
		"/api/health",
		"/api/revenue",
		"/api/cards",
		"/api/invoices",
		"/api/invoices/latest",
		"/api/invoices/pages",
		"/api/invoices/:id",
		"/api/customers",
		"/api/customers/table",
	}

	registered := map[string]bool{}
	for _, route := range newEngine().Routes() {
		if route.Method == http.MethodGet {
			registered[route.Path] = true
		}
	}
	for _, path := range want {
		if !registered[path] {
			t.Errorf("GET %s is not registered", path)
		}
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != `{"status":"ok"}` {
		t.Errorf("body = %s", w.Body.String())
	}
}
