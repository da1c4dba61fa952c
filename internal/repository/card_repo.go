package repository

import (
	"context"

	"dashboard-backend/internal/database"
)

type CardRepository struct {
	pool *database.Pool
}

func NewCardRepository(pool *database.Pool) *CardRepository {
	return &CardRepository{pool: pool}
}

// CardTotals are the raw figures behind the dashboard cards, in cents.
type CardTotals struct {
	Invoices  int64
	Customers int64
	Paid      int64
	Pending   int64
}

type statusSums struct {
	Paid    int64
	Pending int64
}

// Totals runs the three card statements on one connection. They are not
// grouped in a transaction.
func (r *CardRepository) Totals(ctx context.Context) (CardTotals, error) {
	var totals CardTotals
	err := r.pool.WithConn(ctx, func(c *database.Conn) error {
		if err := c.Get(&totals.Invoices, `SELECT COUNT(*) FROM invoices`); err != nil {
			return err
		}
		if err := c.Get(&totals.Customers, `SELECT COUNT(*) FROM customers`); err != nil {
			return err
		}

		var sums statusSums
		err := c.Get(&sums, `
			SELECT
				COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS paid,
				COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending
			FROM invoices`)
		if err != nil {
			return err
		}
		totals.Paid = sums.Paid
		totals.Pending = sums.Pending
		return nil
	})
	return totals, err
}
