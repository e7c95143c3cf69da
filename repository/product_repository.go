package repository

import (
	"context"
	"fmt"

	"AdminBackend/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// productColumns are the columns a product update writes.
var productColumns = []string{
	"product_name",
	"product_description",
	"price",
	"stock",
	"category_id",
	"brand_id",
	"supplier_id",
	"product_slug",
	"is_featured",
	"is_new_arrival",
	"status",
	"shipping_cost",
	"discount_percentage",
	"sale_price",
}

func withDisplayFields(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Brand").
		Preload("Category").
		Preload("Supplier").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_image.id ASC")
		})
}

// Get returns the product only when it belongs to ownerID.
func (r *ProductRepository) Get(ctx context.Context, ownerID, id uint) (*models.Product, error) {
	var product models.Product
	err := withDisplayFields(r.db.WithContext(ctx)).
		Where("user_id = ?", ownerID).
		First(&product, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

// List returns ownerID's products ordered by name, with brand, category, supplier and images loaded.
func (r *ProductRepository) List(ctx context.Context, ownerID uint, params ListParams) ([]models.Product, int64, error) {
	products := []models.Product{}
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("user_id = ?", ownerID)
	query = nameContains(query, "product_name", params.Query)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	if err := withDisplayFields(query).
		Order("product_name ASC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

// Create inserts the product and its images in one transaction.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ProductSlug == "" {
		product.ProductSlug = slug.Make(product.ProductName)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		images := product.Images
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return fmt.Errorf("create product: %w", invalidReference(err))
		}

		if err := createImages(tx, product.ID, images); err != nil {
			return err
		}
		product.Images = images
		return nil
	})
}

// Update overwrites the product fields. A non-nil changes.Images replaces the stored images.
func (r *ProductRepository) Update(ctx context.Context, ownerID, id uint, changes *models.Product) (*models.Product, error) {
	if changes.ProductSlug == "" {
		changes.ProductSlug = slug.Make(changes.ProductName)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.Where("user_id = ?", ownerID).First(&existing, id).Error; err != nil {
			return notFound(err)
		}

		if err := tx.Model(&existing).
			Select(productColumns).
			Updates(changes).Error; err != nil {
			return fmt.Errorf("update product %d: %w", id, invalidReference(err))
		}

		changes.ID = existing.ID
		changes.UserID = existing.UserID
		changes.CreatedAt = existing.CreatedAt

		if changes.Images == nil {
			return nil
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("clear images of product %d: %w", id, err)
		}
		return createImages(tx, id, changes.Images)
	})
	if err != nil {
		return nil, err
	}
	return changes, nil
}

// Delete removes the product and its images in one transaction.
func (r *ProductRepository) Delete(ctx context.Context, ownerID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.Where("user_id = ?", ownerID).First(&existing, id).Error; err != nil {
			return notFound(err)
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("delete images of product %d: %w", id, err)
		}
		if err := tx.Delete(&existing).Error; err != nil {
			return fmt.Errorf("delete product %d: %w", id, err)
		}
		return nil
	})
}

func createImages(tx *gorm.DB, productID uint, images []models.ProductImage) error {
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].ID = 0
		images[i].ProductID = productID
	}
	if err := tx.Create(&images).Error; err != nil {
		return fmt.Errorf("create images of product %d: %w", productID, err)
	}
	return nil
}
