package models

import "time"

// DefaultSupplierCountry is stored when a supplier is saved without a country.
const DefaultSupplierCountry = "Bangladesh"

type Supplier struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	SupplierName        string    `gorm:"not null;index" json:"supplier_name"`
	SupplierEmail       string    `gorm:"not null" json:"supplier_email"`
	SupplierPhoneNumber string    `gorm:"not null" json:"supplier_phone_number"`
	SupplierCountry     string    `gorm:"not null" json:"supplier_country"`
	SupplierCity        string    `gorm:"not null" json:"supplier_city"`
	SupplierCompanyName string    `gorm:"not null" json:"supplier_company_name"`
	SupplierAddress     string    `gorm:"not null" json:"supplier_address"`
	UserID              uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Supplier) TableName() string {
	return "supplier"
}
