package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginToken is the server-side record of an issued session token.
// A token whose row is gone is treated as logged out.
type LoginToken struct {
	gorm.Model
	TokenID        string `gorm:"uniqueIndex;not null"`
	ExpirationTime time.Time
	UserID         uint `gorm:"index"`
	Role           string
}
