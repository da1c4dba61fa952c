package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dashboard-backend/internal/config"
	"dashboard-backend/internal/services/seed"
)

type Seeder interface {
	Seed(ctx context.Context, groups []seed.Group) (seed.Result, error)
}

type SeedHandler struct {
	seeder   Seeder
	defaults []string
}

// NewSeedHandler seeds defaultGroups when a request names none.
func NewSeedHandler(s Seeder, defaultGroups []string) *SeedHandler {
	return &SeedHandler{seeder: s, defaults: defaultGroups}
}

// Seed handles GET /seed and GET /seed?groups=invoices,revenue.
func (h *SeedHandler) Seed(c *gin.Context) {
	names := h.defaults
	if requested := config.SplitList(c.QueryArray("groups")); len(requested) > 0 {
		names = requested
	}

	groups, err := seed.ParseGroups(names)
	if err != nil {
		writeError(c, err)
		return
	}

	inserted, err := h.seeder.Seed(c.Request.Context(), groups)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Database seeded successfully",
		"inserted": inserted,
	})
}
