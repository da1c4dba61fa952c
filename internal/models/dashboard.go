package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Read models served to the dashboard. Amounts typed as string are
// already formatted for display.

type LatestInvoice struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url"`
	Email    string    `json:"email"`
	Amount   string    `json:"amount"`
}

type InvoicesTable struct {
	ID         uuid.UUID      `json:"id"`
	CustomerID uuid.UUID      `json:"customer_id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	ImageURL   string         `json:"image_url"`
	Date       datatypes.Date `json:"date"`
	Amount     int64          `json:"amount"`
	Status     InvoiceStatus  `json:"status"`
}

// InvoiceForm carries the amount in dollars for the edit form.
type InvoiceForm struct {
	ID         uuid.UUID     `json:"id"`
	CustomerID uuid.UUID     `json:"customer_id"`
	Amount     float64       `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

type CustomerField struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CustomersTable struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ImageURL      string    `json:"image_url"`
	TotalInvoices int64     `json:"total_invoices"`
	TotalPending  string    `json:"total_pending"`
	TotalPaid     string    `json:"total_paid"`
}

type CardData struct {
	NumberOfCustomers    int64  `json:"number_of_customers"`
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}
