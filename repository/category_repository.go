package repository

import (
	"context"
	"fmt"

	"AdminBackend/models"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context, params ListParams) ([]models.Category, int64, error) {
	categories := []models.Category{}
	var total int64

	query := nameContains(r.db.WithContext(ctx).Model(&models.Category{}), "category_name", params.Query)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	if err := query.
		Order("category_name ASC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&categories).Error; err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}

	return categories, total, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update replaces the name and image of the category with the given id.
func (r *CategoryRepository) Update(ctx context.Context, id uint, changes *models.Category) (*models.Category, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(existing).
		Select("category_name", "category_image_url").
		Updates(models.Category{
			CategoryName:     changes.CategoryName,
			CategoryImageURL: changes.CategoryImageURL,
		}).Error; err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}

	existing.CategoryName = changes.CategoryName
	existing.CategoryImageURL = changes.CategoryImageURL
	return existing, nil
}

// Delete removes the row. It is a physical delete with no check for products still referencing it.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(existing).Error; err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}
