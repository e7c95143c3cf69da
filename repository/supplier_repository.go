package repository

import (
	"context"
	"fmt"

	"AdminBackend/models"

	"gorm.io/gorm"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) Get(ctx context.Context, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &supplier, nil
}

func (r *SupplierRepository) List(ctx context.Context, params ListParams) ([]models.Supplier, int64, error) {
	suppliers := []models.Supplier{}
	var total int64

	query := nameContains(r.db.WithContext(ctx).Model(&models.Supplier{}), "supplier_name", params.Query)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	if err := query.
		Order("supplier_name ASC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&suppliers).Error; err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}

	return suppliers, total, nil
}

func (r *SupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	applySupplierDefaults(supplier)
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *SupplierRepository) Update(ctx context.Context, id uint, changes *models.Supplier) (*models.Supplier, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applySupplierDefaults(changes)
	if err := r.db.WithContext(ctx).
		Model(existing).
		Select(
			"supplier_name",
			"supplier_email",
			"supplier_phone_number",
			"supplier_country",
			"supplier_city",
			"supplier_company_name",
			"supplier_address",
		).
		Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("update supplier %d: %w", id, err)
	}

	changes.ID = existing.ID
	changes.UserID = existing.UserID
	changes.CreatedAt = existing.CreatedAt
	changes.UpdatedAt = existing.UpdatedAt
	return changes, nil
}

func (r *SupplierRepository) Delete(ctx context.Context, id uint) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(existing).Error; err != nil {
		return fmt.Errorf("delete supplier %d: %w", id, err)
	}
	return nil
}

func applySupplierDefaults(supplier *models.Supplier) {
	if supplier.SupplierCountry == "" {
		supplier.SupplierCountry = models.DefaultSupplierCountry
	}
}
