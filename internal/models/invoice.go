package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

// Invoice amounts are stored in cents.
type Invoice struct {
	ID         uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	CustomerID uuid.UUID      `gorm:"type:char(36);index" json:"customer_id"`
	Amount     int64          `json:"amount"`
	Status     InvoiceStatus  `json:"status"`
	Date       datatypes.Date `json:"date"`
}

func (Invoice) TableName() string {
	return "invoices"
}
