package handlers

import (
	"context"
	"net/http"
	"time"

	"AdminBackend/logger"
	"AdminBackend/models"
	"AdminBackend/repository"
	"AdminBackend/validation"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// isoMillis renders timestamps in UTC with millisecond precision.
const isoMillis = "2006-01-02T15:04:05.000Z"

type ProductStore interface {
	Get(ctx context.Context, ownerID, id uint) (*models.Product, error)
	List(ctx context.Context, ownerID uint, params repository.ListParams) ([]models.Product, int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, ownerID, id uint, changes *models.Product) (*models.Product, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// productRequest is the create and update schema. Omitting image_urls on update keeps the stored images.
type productRequest struct {
	ProductName        string               `json:"product_name" validate:"required,max=255"`
	ProductDescription string               `json:"product_description"`
	Price              *validation.Decimal  `json:"price" validate:"required,gte=0"`
	Stock              *int                 `json:"stock" validate:"required,gte=0"`
	CategoryID         uint                 `json:"category_id" validate:"required"`
	BrandID            uint                 `json:"brand_id" validate:"required"`
	SupplierID         uint                 `json:"supplier_id" validate:"required"`
	ProductSlug        string               `json:"product_slug"`
	IsFeatured         bool                 `json:"is_featured"`
	IsNewArrival       bool                 `json:"is_new_arrival"`
	Status             models.ProductStatus `json:"status" validate:"required,oneof=ACTIVE INACTIVE OUT_OF_STOCK"`
	ShippingCost       *validation.Decimal  `json:"shipping_cost" validate:"omitempty,gte=0"`
	DiscountPercentage *validation.Decimal  `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
	SalePrice          *validation.Decimal  `json:"sale_price" validate:"required,gte=0"`
	ImageURLs          []string             `json:"image_urls" validate:"omitempty,dive,required,max=2048"`
}

func (r productRequest) model() *models.Product {
	product := &models.Product{
		ProductName:        r.ProductName,
		ProductDescription: r.ProductDescription,
		Price:              r.Price.Decimal,
		Stock:              *r.Stock,
		CategoryID:         r.CategoryID,
		BrandID:            r.BrandID,
		SupplierID:         r.SupplierID,
		ProductSlug:        r.ProductSlug,
		IsFeatured:         r.IsFeatured,
		IsNewArrival:       r.IsNewArrival,
		Status:             r.Status,
		SalePrice:          r.SalePrice.Decimal,
	}
	if r.ShippingCost != nil {
		product.ShippingCost = r.ShippingCost.Decimal
	}
	if r.DiscountPercentage != nil {
		product.DiscountPercentage = decimal.NewNullDecimal(r.DiscountPercentage.Decimal)
	}
	if r.ImageURLs != nil {
		product.Images = make([]models.ProductImage, 0, len(r.ImageURLs))
		for _, url := range r.ImageURLs {
			product.Images = append(product.Images, models.ProductImage{ImageURL: url})
		}
	}
	return product
}

type productListItem struct {
	ID           uint                 `json:"id"`
	ProductName  string               `json:"product_name"`
	BrandName    *string              `json:"brand_name"`
	CategoryName *string              `json:"category_name"`
	SupplierName *string              `json:"supplier_name"`
	Price        float64              `json:"price"`
	Stock        int                  `json:"stock"`
	Status       models.ProductStatus `json:"status"`
	IsFeatured   bool                 `json:"is_featured"`
	IsNewArrival bool                 `json:"is_new_arrival"`
	ShippingCost float64              `json:"shipping_cost"`
	SalePrice    float64              `json:"sale_price"`
	ImageURL     []string             `json:"image_url"`
	CreatedAt    string               `json:"created_at"`
}

type productDetail struct {
	productListItem
	ProductDescription string   `json:"product_description"`
	CategoryID         uint     `json:"category_id"`
	BrandID            uint     `json:"brand_id"`
	SupplierID         uint     `json:"supplier_id"`
	ProductSlug        string   `json:"product_slug"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	UpdatedAt          string   `json:"updated_at"`
}

func nameOrNil(id uint, name string) *string {
	if id == 0 {
		return nil
	}
	return &name
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func newProductListItem(p *models.Product) productListItem {
	return productListItem{
		ID:           p.ID,
		ProductName:  p.ProductName,
		BrandName:    nameOrNil(p.Brand.ID, p.Brand.BrandName),
		CategoryName: nameOrNil(p.Category.ID, p.Category.CategoryName),
		SupplierName: nameOrNil(p.Supplier.ID, p.Supplier.SupplierName),
		Price:        p.Price.InexactFloat64(),
		Stock:        p.Stock,
		Status:       p.Status,
		IsFeatured:   p.IsFeatured,
		IsNewArrival: p.IsNewArrival,
		ShippingCost: p.ShippingCost.InexactFloat64(),
		SalePrice:    p.SalePrice.InexactFloat64(),
		ImageURL:     p.ImageURLs(),
		CreatedAt:    formatTime(p.CreatedAt),
	}
}

func newProductDetail(p *models.Product) productDetail {
	detail := productDetail{
		productListItem:    newProductListItem(p),
		ProductDescription: p.ProductDescription,
		CategoryID:         p.CategoryID,
		BrandID:            p.BrandID,
		SupplierID:         p.SupplierID,
		ProductSlug:        p.ProductSlug,
		UpdatedAt:          formatTime(p.UpdatedAt),
	}
	if p.DiscountPercentage.Valid {
		discount := p.DiscountPercentage.Decimal.InexactFloat64()
		detail.DiscountPercentage = &discount
	}
	return detail
}

type ProductHandler struct {
	store     ProductStore
	validator *validation.Validator
}

func NewProductHandler(store ProductStore, v *validation.Validator) *ProductHandler {
	return &ProductHandler{store: store, validator: v}
}

// List returns the caller's products.
func (h *ProductHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	params := listParams(c)
	products, total, err := h.store.List(c.Request.Context(), userID, params)
	if err != nil {
		storeFailure(c, err, "No product found", "Error fetching products")
		return
	}

	items := make([]productListItem, 0, len(products))
	for i := range products {
		items = append(items, newProductListItem(&products[i]))
	}

	c.JSON(http.StatusOK, Envelope{
		Message:    "success",
		Data:       items,
		Pagination: newPagination(params, total),
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.store.Get(c.Request.Context(), userID, id)
	if err != nil {
		storeFailure(c, err, "No product found", "Error fetching product")
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: "success", Data: newProductDetail(product)})
}

func (h *ProductHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := bindBody[productRequest](c, h.validator)
	if !ok {
		return
	}

	product := req.model()
	product.UserID = userID
	if err := h.store.Create(c.Request.Context(), product); err != nil {
		storeFailure(c, err, "No product found", "Error creating product")
		return
	}

	c.JSON(http.StatusCreated, Envelope{Message: "Product created successfully", Data: newProductDetail(h.reload(c, userID, product))})
}

func (h *ProductHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "product")
	if !ok {
		return
	}
	req, ok := bindBody[productRequest](c, h.validator)
	if !ok {
		return
	}

	product, err := h.store.Update(c.Request.Context(), userID, id, req.model())
	if err != nil {
		storeFailure(c, err, "No product found to update", "Error updating product")
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: "Product updated successfully", Data: newProductDetail(h.reload(c, userID, product))})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), userID, id); err != nil {
		storeFailure(c, err, "No product found to delete", "Error deleting product")
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: "Product deleted successfully"})
}

// reload fetches the stored product with its joined names, falling back to the written value.
func (h *ProductHandler) reload(c *gin.Context, userID uint, written *models.Product) *models.Product {
	product, err := h.store.Get(c.Request.Context(), userID, written.ID)
	if err != nil {
		logger.Warn(c.Request.Context(), "reload product", zap.Uint("product_id", written.ID), zap.Error(err))
		return written
	}
	return product
}
