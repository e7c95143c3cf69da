package handlers

import (
	"context"
	"net/http"

	"AdminBackend/models"
	"AdminBackend/repository"
	"AdminBackend/validation"

	"github.com/gin-gonic/gin"
)

type SupplierStore interface {
	Get(ctx context.Context, id uint) (*models.Supplier, error)
	List(ctx context.Context, params repository.ListParams) ([]models.Supplier, int64, error)
	Create(ctx context.Context, supplier *models.Supplier) error
	Update(ctx context.Context, id uint, changes *models.Supplier) (*models.Supplier, error)
	Delete(ctx context.Context, id uint) error
}

// supplierRequest leaves supplier_country optional; the store fills in the default.
type supplierRequest struct {
	SupplierName        string `json:"supplier_name" validate:"required"`
	SupplierEmail       string `json:"supplier_email" validate:"required,email"`
	SupplierPhoneNumber string `json:"supplier_phone_number" validate:"required"`
	SupplierCountry     string `json:"supplier_country"`
	SupplierCity        string `json:"supplier_city" validate:"required"`
	SupplierCompanyName string `json:"supplier_company_name" validate:"required"`
	SupplierAddress     string `json:"supplier_address" validate:"required"`
}

func (r supplierRequest) model() *models.Supplier {
	return &models.Supplier{
		SupplierName:        r.SupplierName,
		SupplierEmail:       r.SupplierEmail,
		SupplierPhoneNumber: r.SupplierPhoneNumber,
		SupplierCountry:     r.SupplierCountry,
		SupplierCity:        r.SupplierCity,
		SupplierCompanyName: r.SupplierCompanyName,
		SupplierAddress:     r.SupplierAddress,
	}
}

type SupplierHandler struct {
	store     SupplierStore
	validator *validation.Validator
}

func NewSupplierHandler(store SupplierStore, v *validation.Validator) *SupplierHandler {
	return &SupplierHandler{store: store, validator: v}
}

func (h *SupplierHandler) List(c *gin.Context) {
	params := listParams(c)
	suppliers, total, err := h.store.List(c.Request.Context(), params)
	if err != nil {
		storeFailure(c, err, "No supplier found", "Error fetching suppliers")
		return
	}

	c.JSON(http.StatusOK, Envelope{
		Message:    "success",
		Data:       suppliers,
		Pagination: newPagination(params, total),
	})
}

func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "supplier")
	if !ok {
		return
	}

	supplier, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		storeFailure(c, err, "No supplier found", "Error fetching supplier")
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: "success", Data: supplier})
}

func (h *SupplierHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := bindBody[supplierRequest](c, h.validator)
	if !ok {
		return
	}

	supplier := req.model()
	supplier.UserID = userID
	if err := h.store.Create(c.Request.Context(), supplier); err != nil {
		storeFailure(c, err, "No supplier found", "Error creating supplier")
		return
	}

	c.JSON(http.StatusCreated, Envelope{Message: "Supplier created successfully", Data: supplier})
}

func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "supplier")
	if !ok {
		return
	}
	req, ok := bindBody[supplierRequest](c, h.validator)
	if !ok {
		return
	}

	supplier, err := h.store.Update(c.Request.Context(), id, req.model())
	if err != nil {
		storeFailure(c, err, "No supplier found to update", "Failed to update supplier")
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: "Supplier updated successfully", Data: supplier})
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "supplier")
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		storeFailure(c, err, "No supplier found to delete", "Error deleting supplier")
		return
	}

	c.JSON(http.StatusOK, Envelope{Message: "Supplier deleted successfully"})
}
