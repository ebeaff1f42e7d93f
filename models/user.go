package models

import (
	"gorm.io/gorm"
)

// User represents an account that owns orders
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`

	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}
