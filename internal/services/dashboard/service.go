// Package dashboard implements the read operations behind the dashboard
// pages. Each call borrows one pooled connection through its store, maps
// the rows to read models and formats amounts for display.
//
// Database failures are logged here and returned as *errs.Error with kind
// fetch_failed; the driver error never reaches the caller's message.
package dashboard

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dashboard-backend/internal/database"
	"dashboard-backend/internal/errs"
	"dashboard-backend/internal/format"
	"dashboard-backend/internal/models"
	"dashboard-backend/internal/repository"
)

const (
	// ItemsPerPage is the fixed page size of the invoices table.
	ItemsPerPage = 6

	latestInvoicesLimit = 5

	// maxPage is the last page whose offset still fits in an int.
	maxPage = math.MaxInt / ItemsPerPage
)

type InvoiceStore interface {
	Latest(ctx context.Context, limit int) ([]repository.LatestInvoiceRow, error)
	Filtered(ctx context.Context, query string, limit, offset int) ([]models.InvoicesTable, error)
	CountFiltered(ctx context.Context, query string) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*repository.InvoiceFormRow, error)
}

type CustomerStore interface {
	All(ctx context.Context) ([]models.CustomerField, error)
	Filtered(ctx context.Context, query string) ([]repository.CustomerTotalsRow, error)
}

type RevenueStore interface {
	All(ctx context.Context) ([]models.Revenue, error)
}

type CardStore interface {
	Totals(ctx context.Context) (repository.CardTotals, error)
}

type Service struct {
	invoices  InvoiceStore
	customers CustomerStore
	revenue   RevenueStore
	cards     CardStore
}

func NewService(invoices InvoiceStore, customers CustomerStore, revenue RevenueStore, cards CardStore) *Service {
	return &Service{
		invoices:  invoices,
		customers: customers,
		revenue:   revenue,
		cards:     cards,
	}
}

func (s *Service) FetchRevenue(ctx context.Context) ([]models.Revenue, error) {
	rows, err := s.revenue.All(ctx)
	if err != nil {
		return nil, fetchFailed("FetchRevenue", "revenue data", err)
	}
	return rows, nil
}

func (s *Service) FetchLatestInvoices(ctx context.Context) ([]models.LatestInvoice, error) {
	rows, err := s.invoices.Latest(ctx, latestInvoicesLimit)
	if err != nil {
		return nil, fetchFailed("FetchLatestInvoices", "the latest invoices", err)
	}

	latest := make([]models.LatestInvoice, 0, len(rows))
	for _, row := range rows {
		latest = append(latest, models.LatestInvoice{
			ID:       row.ID,
			Name:     row.Name,
			ImageURL: row.ImageURL,
			Email:    row.Email,
			Amount:   format.Currency(row.Amount),
		})
	}
	return latest, nil
}

func (s *Service) FetchCardData(ctx context.Context) (models.CardData, error) {
	totals, err := s.cards.Totals(ctx)
	if err != nil {
		return models.CardData{}, fetchFailed("FetchCardData", "card data", err)
	}
	return models.CardData{
		NumberOfCustomers:    totals.Customers,
		NumberOfInvoices:     totals.Invoices,
		TotalPaidInvoices:    format.Currency(totals.Paid),
		TotalPendingInvoices: format.Currency(totals.Pending),
	}, nil
}

// FetchFilteredInvoices returns page currentPage (1-based) of the invoices
// matching query. Pages below 1 are treated as the first page; pages past
// any possible row count are empty.
func (s *Service) FetchFilteredInvoices(ctx context.Context, query string, currentPage int) ([]models.InvoicesTable, error) {
	if currentPage > maxPage {
		return []models.InvoicesTable{}, nil
	}
	rows, err := s.invoices.Filtered(ctx, query, ItemsPerPage, Offset(currentPage))
	if err != nil {
		return nil, fetchFailed("FetchFilteredInvoices", "invoices", err)
	}
	if rows == nil {
		rows = []models.InvoicesTable{}
	}
	return rows, nil
}

func (s *Service) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	count, err := s.invoices.CountFiltered(ctx, query)
	if err != nil {
		return 0, fetchFailed("FetchInvoicesPages", "total number of invoices", err)
	}
	return TotalPages(count), nil
}

// FetchInvoiceByID returns the invoice with its amount in dollars. A
// malformed id is invalid_input, an unknown one not_found.
func (s *Service) FetchInvoiceByID(ctx context.Context, id string) (*models.InvoiceForm, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.InvalidInput("FetchInvoiceByID", "invalid invoice id")
	}

	row, err := s.invoices.GetByID(ctx, invoiceID)
	if errors.Is(err, database.ErrNoRows) {
		return nil, errs.NotFound("FetchInvoiceByID", "invoice not found")
	}
	if err != nil {
		return nil, fetchFailed("FetchInvoiceByID", "invoice", err)
	}

	return &models.InvoiceForm{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		Amount:     format.Dollars(row.Amount),
		Status:     row.Status,
	}, nil
}

func (s *Service) FetchCustomers(ctx context.Context) ([]models.CustomerField, error) {
	rows, err := s.customers.All(ctx)
	if err != nil {
		return nil, fetchFailed("FetchCustomers", "all customers", err)
	}
	return rows, nil
}

func (s *Service) FetchFilteredCustomers(ctx context.Context, query string) ([]models.CustomersTable, error) {
	rows, err := s.customers.Filtered(ctx, query)
	if err != nil {
		return nil, fetchFailed("FetchFilteredCustomers", "customer table", err)
	}

	customers := make([]models.CustomersTable, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, models.CustomersTable{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			ImageURL:      row.ImageURL,
			TotalInvoices: row.TotalInvoices,
			TotalPending:  format.Currency(row.TotalPending),
			TotalPaid:     format.Currency(row.TotalPaid),
		})
	}
	return customers, nil
}

// Offset is the row offset of a 1-based page, clamped to [1, maxPage].
func Offset(page int) int {
	page = min(max(page, 1), maxPage)
	return (page - 1) * ItemsPerPage
}

// TotalPages is ceil(count / ItemsPerPage).
func TotalPages(count int64) int {
	if count <= 0 {
		return 0
	}
	return int((count + ItemsPerPage - 1) / ItemsPerPage)
}

func fetchFailed(op, entity string, err error) error {
	reason := database.Classify(err)
	log.Error().Err(err).Str("op", op).Str("reason", string(reason)).Msg("Database error")
	return errs.FetchFailed(op, entity, reason, err)
}
