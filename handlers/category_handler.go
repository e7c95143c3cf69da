package handlers

import (
	"context"
	"net/http"

	"AdminBackend/models"
	"AdminBackend/repository"
	"AdminBackend/validation"

	"github.com/gin-gonic/gin"
)

type CategoryStore interface {
	Get(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context, params repository.ListParams) ([]models.Category, int64, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uint, changes *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryRequest struct {
	CategoryName     string `json:"category_name" validate:"required"`
	CategoryImageURL string `json:"category_image_url" validate:"omitempty,max=2048"`
}

type CategoryHandler struct {
	store     CategoryStore
	validator *validation.Validator
}

func NewCategoryHandler(store CategoryStore, v *validation.Validator) *CategoryHandler {
	return &CategoryHandler{store: store, validator: v}
}

func (h *CategoryHandler) List(c *gin.Context) {
	params := listParams(c)
	categories, total, err := h.store.List(c.Request.Context(), params)
	if err != nil {
		storeFailure(c, err, "No category found", "Error fetching categories")
		return
	}

	c.JSON(http.StatusOK, Envelope{
		Message:    "success",
		Data:       categories,
		Pagination: newPagination(params, total),
	})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}

	category, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		storeFailure(c, err, "No category found", "Error fetching category")
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: "success", Data: category})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := bindBody[categoryRequest](c, h.validator)
	if !ok {
		return
	}

	category := &models.Category{
		CategoryName:     req.CategoryName,
		CategoryImageURL: req.CategoryImageURL,
		UserID:           userID,
	}
	if err := h.store.Create(c.Request.Context(), category); err != nil {
		storeFailure(c, err, "No category found", "Error creating category")
		return
	}

	c.JSON(http.StatusCreated, Envelope{Message: "Category created successfully", Data: category})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}
	req, ok := bindBody[categoryRequest](c, h.validator)
	if !ok {
		return
	}

	category, err := h.store.Update(c.Request.Context(), id, &models.Category{
		CategoryName:     req.CategoryName,
		CategoryImageURL: req.CategoryImageURL,
	})
	if err != nil {
		storeFailure(c, err, "No category found to update", "Error updating category")
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: "Category updated successfully", Data: category})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		storeFailure(c, err, "No category found to delete", "Error deleting category")
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: "Category deleted successfully"})
}
