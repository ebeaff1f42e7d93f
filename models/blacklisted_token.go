package models

import (
	"time"

	"gorm.io/gorm"
)

// BlacklistedToken stores JWTs revoked by logout until they expire
type BlacklistedToken struct {
	gorm.Model
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}
