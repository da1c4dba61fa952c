package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"dashboard-backend/internal/database"
	"dashboard-backend/internal/models"
)

type InvoiceRepository struct {
	pool *database.Pool
}

func NewInvoiceRepository(pool *database.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// LatestInvoiceRow is a joined invoice/customer row with the raw amount.
type LatestInvoiceRow struct {
	ID       uuid.UUID
	Name     string
	ImageURL string
	Email    string
	Amount   int64
}

type InvoiceFormRow struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Amount     int64
	Status     models.InvoiceStatus
}

// Latest returns the newest invoices with their customer.
func (r *InvoiceRepository) Latest(ctx context.Context, limit int) ([]LatestInvoiceRow, error) {
	rows := []LatestInvoiceRow{}
	err := r.pool.WithConn(ctx, func(c *database.Conn) error {
		return c.Select(&rows, `
			SELECT invoices.amount, customers.name, customers.image_url, customers.email, invoices.id
			FROM invoices
			JOIN customers ON invoices.customer_id = customers.id
			ORDER BY invoices.date DESC
			LIMIT ?`, limit)
	})
	return rows, err
}

// Filtered returns one page of invoices matching query, newest first.
func (r *InvoiceRepository) Filtered(ctx context.Context, query string, limit, offset int) ([]models.InvoicesTable, error) {
	rows := []models.InvoicesTable{}
	pattern := searchPattern(query)
	err := r.pool.WithConn(ctx, func(c *database.Conn) error {
		return c.Select(&rows, `
			SELECT
				invoices.id,
				invoices.customer_id,
				invoices.amount,
				invoices.date,
				invoices.status,
				customers.name,
				customers.email,
				customers.image_url
			FROM invoices
			JOIN customers ON invoices.customer_id = customers.id
			WHERE `+invoiceSearch(c.Dialect())+`
			ORDER BY invoices.date DESC, invoices.id
			LIMIT ? OFFSET ?`,
			pattern, pattern, pattern, pattern, pattern, limit, offset)
	})
	return rows, err
}

// CountFiltered counts the invoices Filtered would page through.
func (r *InvoiceRepository) CountFiltered(ctx context.Context, query string) (int64, error) {
	var count int64
	pattern := searchPattern(query)
	err := r.pool.WithConn(ctx, func(c *database.Conn) error {
		return c.Get(&count, `
			SELECT COUNT(*)
			FROM invoices
			JOIN customers ON invoices.customer_id = customers.id
			WHERE `+invoiceSearch(c.Dialect()),
			pattern, pattern, pattern, pattern, pattern)
	})
	return count, err
}

// GetByID returns database.ErrNoRows when no invoice has the id.
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceFormRow, error) {
	var row InvoiceFormRow
	err := r.pool.WithConn(ctx, func(c *database.Conn) error {
		return c.Get(&row, `
			SELECT invoices.id, invoices.customer_id, invoices.amount, invoices.status
			FROM invoices
			WHERE invoices.id = ?`, id.String())
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// invoiceSearch matches one pattern against every searchable column.
func invoiceSearch(d database.Dialect) string {
	return `(
				LOWER(customers.name) LIKE ? OR
				LOWER(customers.email) LIKE ? OR
				` + d.AsText("invoices.amount") + ` LIKE ? OR
				` + d.DateAsText("invoices.date") + ` LIKE ? OR
				LOWER(invoices.status) LIKE ?
			)`
}

func searchPattern(query string) string {
	return "%" + strings.ToLower(query) + "%"
}
