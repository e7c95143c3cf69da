package models

import "time"

type Brand struct {
	ID            uint   `gorm:"primaryKey"`
	BrandName     string `gorm:"not null;index"`
	BrandImageURL string
	UserID        uint `gorm:"not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Brand) TableName() string {
	return "brand"
}
