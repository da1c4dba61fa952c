package repository

import (
	"context"

	"github.com/google/uuid"

	"dashboard-backend/internal/database"
	"dashboard-backend/internal/models"
)

type CustomerRepository struct {
	pool *database.Pool
}

func NewCustomerRepository(pool *database.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// CustomerTotalsRow aggregates a customer's invoices, amounts in cents.
type CustomerTotalsRow struct {
	ID            uuid.UUID
	Name          string
	Email         string
	ImageURL      string
	TotalInvoices int64
	TotalPending  int64
	TotalPaid     int64
}

// All lists every customer by name, for select inputs.
func (r *CustomerRepository) All(ctx context.Context) ([]models.CustomerField, error) {
	rows := []models.CustomerField{}
	err := r.pool.WithConn(ctx, func(c *database.Conn) error {
		return c.Select(&rows, `
			SELECT id, name
			FROM customers
			ORDER BY name ASC`)
	})
	return rows, err
}

// Filtered returns customers whose name or email matches query together
// with their invoice totals.
func (r *CustomerRepository) Filtered(ctx context.Context, query string) ([]CustomerTotalsRow, error) {
	rows := []CustomerTotalsRow{}
	pattern := searchPattern(query)
	err := r.pool.WithConn(ctx, func(c *database.Conn) error {
		return c.Select(&rows, `
			SELECT
				customers.id,
				customers.name,
				customers.email,
				customers.image_url,
				COUNT(invoices.id) AS total_invoices,
				COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
				COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
			FROM customers
			LEFT JOIN invoices ON customers.id = invoices.customer_id
			WHERE
				LOWER(customers.name) LIKE ? OR
				LOWER(customers.email) LIKE ?
			GROUP BY customers.id, customers.name, customers.email, customers.image_url
			ORDER BY customers.name ASC`,
			pattern, pattern)
	})
	return rows, err
}
