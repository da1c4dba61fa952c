package models

import "github.com/google/uuid"

type Customer struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	ImageURL string    `gorm:"column:image_url" json:"image_url"`
}

func (Customer) TableName() string {
	return "customers"
}
