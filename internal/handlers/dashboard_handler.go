package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dashboard-backend/internal/errs"
	"dashboard-backend/internal/models"
)

// DashboardService is the read side the dashboard pages call.
type DashboardService interface {
	FetchRevenue(ctx context.Context) ([]models.Revenue, error)
	FetchLatestInvoices(ctx context.Context) ([]models.LatestInvoice, error)
	FetchCardData(ctx context.Context) (models.CardData, error)
	FetchFilteredInvoices(ctx context.Context, query string, currentPage int) ([]models.InvoicesTable, error)
	FetchInvoicesPages(ctx context.Context, query string) (int, error)
	FetchInvoiceByID(ctx context.Context, id string) (*models.InvoiceForm, error)
	FetchCustomers(ctx context.Context) ([]models.CustomerField, error)
	FetchFilteredCustomers(ctx context.Context, query string) ([]models.CustomersTable, error)
}

type DashboardHandler struct {
	service DashboardService
}

func NewDashboardHandler(s DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) GetRevenue(c *gin.Context) {
	revenue, err := h.service.FetchRevenue(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": revenue})
}

func (h *DashboardHandler) GetLatestInvoices(c *gin.Context) {
	invoices, err := h.service.FetchLatestInvoices(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

func (h *DashboardHandler) GetCards(c *gin.Context) {
	cards, err := h.service.FetchCardData(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// ListInvoices serves one page of the searchable invoices table.
// page defaults to 1.
func (h *DashboardHandler) ListInvoices(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, errs.InvalidInput("ListInvoices", "invalid page number"))
			return
		}
		page = p
	}

	invoices, err := h.service.FetchFilteredInvoices(c.Request.Context(), c.Query("query"), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoices, "page": max(page, 1)})
}

func (h *DashboardHandler) GetInvoicePages(c *gin.Context) {
	pages, err := h.service.FetchInvoicesPages(c.Request.Context(), c.Query("query"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_pages": pages})
}

func (h *DashboardHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.service.FetchInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *DashboardHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.FetchCustomers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customers})
}

func (h *DashboardHandler) GetCustomersTable(c *gin.Context) {
	customers, err := h.service.FetchFilteredCustomers(c.Request.Context(), c.Query("query"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customers})
}
