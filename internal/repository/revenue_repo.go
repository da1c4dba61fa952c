package repository

import (
	"context"

	"dashboard-backend/internal/database"
	"dashboard-backend/internal/models"
)

type RevenueRepository struct {
	pool *database.Pool
}

func NewRevenueRepository(pool *database.Pool) *RevenueRepository {
	return &RevenueRepository{pool: pool}
}

func (r *RevenueRepository) All(ctx context.Context) ([]models.Revenue, error) {
	rows := []models.Revenue{}
	err := r.pool.WithConn(ctx, func(c *database.Conn) error {
		return c.Select(&rows, `SELECT month, revenue FROM revenue`)
	})
	return rows, err
}
