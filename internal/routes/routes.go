package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dashboard-backend/internal/config"
	"dashboard-backend/internal/database"
	handler "dashboard-backend/internal/handlers"
	"dashboard-backend/internal/repository"
	"dashboard-backend/internal/services/dashboard"
	"dashboard-backend/internal/services/seed"
)

func RegisterRoutes(r *gin.Engine, pool *database.Pool, cfg *config.Config) {
	invoiceRepo := repository.NewInvoiceRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	revenueRepo := repository.NewRevenueRepository(pool)
	cardRepo := repository.NewCardRepository(pool)

	dashboardService := dashboard.NewService(invoiceRepo, customerRepo, revenueRepo, cardRepo)
	seedService := seed.NewService(pool, seed.Placeholder())

	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	seedHandler := handler.NewSeedHandler(seedService, cfg.Seed.Groups)

	r.GET("/seed", seedHandler.Seed)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.GET("/revenue", dashboardHandler.GetRevenue)
	api.GET("/cards", dashboardHandler.GetCards)

	invoices := api.Group("/invoices")
	{
		invoices.GET("", dashboardHandler.ListInvoices)
		invoices.GET("/latest", dashboardHandler.GetLatestInvoices)
		invoices.GET("/pages", dashboardHandler.GetInvoicePages)
		invoices.GET("/:id", dashboardHandler.GetInvoice)
	}

	customers := api.Group("/customers")
	{
		customers.GET("", dashboardHandler.ListCustomers)
		customers.GET("/table", dashboardHandler.GetCustomersTable)
	}
}
