package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "ACTIVE"
	ProductStatusInactive   ProductStatus = "INACTIVE"
	ProductStatusOutOfStock ProductStatus = "OUT_OF_STOCK"
)

// ProductStatuses lists every status in the order the admin UI shows them.
var ProductStatuses = []ProductStatus{
	ProductStatusActive,
	ProductStatusInactive,
	ProductStatusOutOfStock,
}

type Product struct {
	ID                 uint                `gorm:"primaryKey"`
	ProductName        string              `gorm:"not null;index"`
	ProductDescription string              `gorm:"type:text"`
	Price              decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	Stock              int                 `gorm:"not null;default:0"`
	CategoryID         uint                `gorm:"not null;index"`
	Category           Category            `gorm:"foreignKey:CategoryID"`
	BrandID            uint                `gorm:"not null;index"`
	Brand              Brand               `gorm:"foreignKey:BrandID"`
	SupplierID         uint                `gorm:"not null;index"`
	Supplier           Supplier            `gorm:"foreignKey:SupplierID"`
	UserID             uint                `gorm:"not null;index"`
	ProductSlug        string              `gorm:"index"`
	IsFeatured         bool                `gorm:"not null;default:false"`
	IsNewArrival       bool                `gorm:"not null;default:false"`
	Status             ProductStatus       `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	ShippingCost       decimal.Decimal     `gorm:"type:decimal(10,2);not null;default:0"`
	DiscountPercentage decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	SalePrice          decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Images             []ProductImage `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "product"
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ImageURL  string `gorm:"not null"`
	ProductID uint   `gorm:"not null;index"`
	CreatedAt time.Time
}

func (ProductImage) TableName() string {
	return "product_image"
}

// ImageURLs returns the image urls in stored order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.ImageURL)
	}
	return urls
}
