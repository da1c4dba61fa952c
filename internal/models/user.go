package models

import "github.com/google/uuid"

// User.Password holds a bcrypt hash, never the plain text.
type User struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name     string    `json:"name"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
}

func (User) TableName() string {
	return "users"
}
