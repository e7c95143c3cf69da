package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"AdminBackend/logger"
	"AdminBackend/middleware"
	"AdminBackend/repository"
	"AdminBackend/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Message    string                  `json:"message"`
	Data       interface{}             `json:"data,omitempty"`
	Pagination *Pagination             `json:"pagination,omitempty"`
	Errors     []validation.FieldError `json:"errors,omitempty"`
}

type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	PageSize      int   `json:"pageSize"`
	TotalProducts int64 `json:"totalProducts"`
	TotalPages    int   `json:"totalPages"`
}

func newPagination(params repository.ListParams, total int64) *Pagination {
	pages := 0
	if params.PageSize > 0 {
		pages = int((total + int64(params.PageSize) - 1) / int64(params.PageSize))
	}
	return &Pagination{
		CurrentPage:   params.Page,
		PageSize:      params.PageSize,
		TotalProducts: total,
		TotalPages:    pages,
	}
}

// listParams reads page, pageSize and query. Unparseable or out of range numbers fall back to the defaults.
func listParams(c *gin.Context) repository.ListParams {
	params := repository.ListParams{
		Query:    c.Query("query"),
		Page:     defaultPage,
		PageSize: defaultPageSize,
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		params.Page = page
	}
	if size, err := strconv.Atoi(c.Query("pageSize")); err == nil && size > 0 {
		params.PageSize = min(size, maxPageSize)
	}
	return params
}

// parseID reads the :id path parameter and answers 400 when it is not a positive integer.
func parseID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, Envelope{Message: "Invalid " + resource + " ID"})
		return 0, false
	}
	return uint(id), true
}

// bindBody parses and validates the JSON body, answering 400 on failure.
func bindBody[T any](c *gin.Context, v *validation.Validator) (T, bool) {
	result := validation.Parse[T](v, c.Request.Body)
	if result.Err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Message: "Invalid request body"})
		return result.Value, false
	}
	if len(result.Errors) > 0 {
		c.JSON(http.StatusBadRequest, Envelope{
			Message: "Validation failed",
			Errors:  result.Errors,
		})
		return result.Value, false
	}
	return result.Value, true
}

// currentUser returns the verified caller. Routes are gated, so a miss is answered as 401.
func currentUser(c *gin.Context) (uint, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Envelope{Message: "Unauthorized"})
		return 0, false
	}
	return identity.SubjectID, true
}

// storeFailure answers 404 for ErrNotFound and 500 otherwise. The error detail is only logged.
func storeFailure(c *gin.Context, err error, notFoundMessage, failureMessage string) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, Envelope{Message: notFoundMessage})
		return
	}
	if errors.Is(err, repository.ErrInvalidReference) {
		c.JSON(http.StatusBadRequest, Envelope{Message: "Referenced category, brand or supplier does not exist"})
		return
	}

	logger.Error(c.Request.Context(), failureMessage, err, zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, Envelope{Message: failureMessage})
}
