package models

import "time"

type Category struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CategoryName     string    `gorm:"not null;index" json:"category_name"`
	CategoryImageURL string    `json:"category_image_url"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "category"
}
