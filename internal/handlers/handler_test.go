package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"dashboard-backend/internal/errs"
	"dashboard-backend/internal/models"
	"dashboard-backend/internal/services/seed"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDashboard struct {
	gotQuery string
	gotPage  int
	err      error
}

func (f *fakeDashboard) FetchRevenue(context.Context) ([]models.Revenue, error) {
	return []models.Revenue{{Month: "Jan", Revenue: 2000}}, f.err
}

func (f *fakeDashboard) FetchLatestInvoices(context.Context) ([]models.LatestInvoice, error) {
	return nil, f.err
}

func (f *fakeDashboard) FetchCardData(context.Context) (models.CardData, error) {
	return models.CardData{NumberOfCustomers: 6, TotalPaidInvoices: "$45.67"}, f.err
}

func (f *fakeDashboard) FetchFilteredInvoices(_ context.Context, query string, page int) ([]models.InvoicesTable, error) {
	f.gotQuery, f.gotPage = query, page
	if f.err != nil {
		return nil, f.err
	}
	return []models.InvoicesTable{}, nil
}

func (f *fakeDashboard) FetchInvoicesPages(_ context.Context, query string) (int, error) {
	f.gotQuery = query
	return 3, f.err
}

func (f *fakeDashboard) FetchInvoiceByID(_ context.Context, id string) (*models.InvoiceForm, error) {
	if id == "missing" {
		return nil, errs.NotFound("FetchInvoiceByID", "invoice not found")
	}
	return &models.InvoiceForm{Amount: 45.67, Status: models.InvoicePaid}, f.err
}

func (f *fakeDashboard) FetchCustomers(context.Context) ([]models.CustomerField, error) {
	return []models.CustomerField{}, f.err
}

func (f *fakeDashboard) FetchFilteredCustomers(_ context.Context, query string) ([]models.CustomersTable, error) {
	f.gotQuery = query
	return []models.CustomersTable{}, f.err
}

type fakeSeeder struct {
	groups []seed.Group
	err    error
}

func (f *fakeSeeder) Seed(_ context.Context, groups []seed.Group) (seed.Result, error) {
	f.groups = groups
	if f.err != nil {
		return nil, f.err
	}
	result := seed.Result{}
	for _, g := range groups {
		result[g] = 1
	}
	return result, nil
}

func newRouter(d DashboardService, s Seeder) *gin.Engine {
	r := gin.New()
	dh := NewDashboardHandler(d)
	sh := NewSeedHandler(s, []string{"users", "customers", "invoices", "revenue"})

	r.GET("/seed", sh.Seed)
	r.GET("/api/revenue", dh.GetRevenue)
	r.GET("/api/cards", dh.GetCards)
	r.GET("/api/invoices", dh.ListInvoices)
	r.GET("/api/invoices/pages", dh.GetInvoicePages)
	r.GET("/api/invoices/:id", dh.GetInvoice)
	r.GET("/api/customers/table", dh.GetCustomersTable)
	return r
}

func do(t *testing.T, r http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s response: %v (%s)", target, err, w.Body.String())
	}
	return w, body
}

func TestListInvoicesPassesQueryAndPage(t *testing.T) {
	d := &fakeDashboard{}
	w, body := do(t, newRouter(d, &fakeSeeder{}), "/api/invoices?query=lee&page=2")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if d.gotQuery != "lee" || d.gotPage != 2 {
		t.Errorf("service got query=%q page=%d", d.gotQuery, d.gotPage)
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 0 {
		t.Errorf("data = %#v, want empty array", body["data"])
	}
}

func TestListInvoicesDefaultsToFirstPage(t *testing.T) {
	d := &fakeDashboard{}
	do(t, newRouter(d, &fakeSeeder{}), "/api/invoices")
	if d.gotPage != 1 {
		t.Errorf("page = %d, want 1", d.gotPage)
	}
}

func TestListInvoicesRejectsBadPage(t *testing.T) {
	w, body := do(t, newRouter(&fakeDashboard{}, &fakeSeeder{}), "/api/invoices?page=two")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["kind"] != string(errs.KindInvalidInput) {
		t.Errorf("kind = %v", body["kind"])
	}
}

func TestGetInvoicePages(t *testing.T) {
	w, body := do(t, newRouter(&fakeDashboard{}, &fakeSeeder{}), "/api/invoices/pages?query=paid")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body["total_pages"] != float64(3) {
		t.Errorf("total_pages = %v, want 3", body["total_pages"])
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	w, body := do(t, newRouter(&fakeDashboard{}, &fakeSeeder{}), "/api/invoices/missing")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body["error"] != "invoice not found" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestFetchErrorHidesCause(t *testing.T) {
	cause := errors.New(`pq: relation "revenue" does not exist`)
	d := &fakeDashboard{err: errs.FetchFailed("FetchRevenue", "revenue data", errs.ReasonUnknown, cause)}

	w, body := do(t, newRouter(d, &fakeSeeder{}), "/api/revenue")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body["error"] != "failed to fetch revenue data" {
		t.Errorf("error = %v", body["error"])
	}
	if body["kind"] != string(errs.KindFetchFailed) {
		t.Errorf("kind = %v", body["kind"])
	}
}

func TestGetCards(t *testing.T) {
	w, body := do(t, newRouter(&fakeDashboard{}, &fakeSeeder{}), "/api/cards")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body["total_paid_invoices"] != "$45.67" || body["number_of_customers"] != float64(6) {
		t.Errorf("body = %v", body)
	}
}

func TestSeedAllGroups(t *testing.T) {
	s := &fakeSeeder{}
	w, body := do(t, newRouter(&fakeDashboard{}, s), "/seed")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body["message"] != "Database seeded successfully" {
		t.Errorf("message = %v", body["message"])
	}
	if len(s.groups) != len(seed.AllGroups) {
		t.Errorf("seeded %v, want every group", s.groups)
	}
	inserted, _ := body["inserted"].(map[string]any)
	if inserted["revenue"] != float64(1) {
		t.Errorf("inserted = %v", body["inserted"])
	}
}

func TestSeedSelectedGroups(t *testing.T) {
	s := &fakeSeeder{}
	w, _ := do(t, newRouter(&fakeDashboard{}, s), "/seed?groups=revenue,invoices")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(s.groups) != 2 || s.groups[0] != seed.GroupInvoices || s.groups[1] != seed.GroupRevenue {
		t.Errorf("seeded %v, want [invoices revenue]", s.groups)
	}
}

func TestSeedIgnoresEmptyGroupNames(t *testing.T) {
	s := &fakeSeeder{}
	w, _ := do(t, newRouter(&fakeDashboard{}, s), "/seed?groups=invoices,%20,")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(s.groups) != 1 || s.groups[0] != seed.GroupInvoices {
		t.Errorf("seeded %v, want [invoices]", s.groups)
	}
}

func TestSeedOnlySeparators(t *testing.T) {
	s := &fakeSeeder{}
	w, _ := do(t, newRouter(&fakeDashboard{}, s), "/seed?groups=,,")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(s.groups) != len(seed.AllGroups) {
		t.Errorf("seeded %v, want every group", s.groups)
	}
}

func TestSeedUnknownGroup(t *testing.T) {
	s := &fakeSeeder{}
	w, _ := do(t, newRouter(&fakeDashboard{}, s), "/seed?groups=orders")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if s.groups != nil {
		t.Error("seeder should not run for an unknown group")
	}
}

func TestSeedFailure(t *testing.T) {
	s := &fakeSeeder{err: errs.SeedFailed("Seed", errs.ReasonUnavailable, errors.New("dial tcp: connection refused"))}
	w, body := do(t, newRouter(&fakeDashboard{}, s), "/seed")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body["error"] != "failed to seed database" {
		t.Errorf("error = %v", body["error"])
	}
	if body["kind"] != string(errs.KindSeedFailed) || body["reason"] != string(errs.ReasonUnavailable) {
		t.Errorf("body = %v", body)
	}
}
