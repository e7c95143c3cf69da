package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested row does not exist (or is not visible to the caller).
var ErrNotFound = errors.New("record not found")

// ErrInvalidReference is returned when a row points at a parent row that does not exist.
var ErrInvalidReference = errors.New("referenced record does not exist")

// ListParams is an offset-paginated, name-filtered listing request.
type ListParams struct {
	Query    string
	Page     int
	PageSize int
}

func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// nameContains adds a case-insensitive substring match on column.
func nameContains(db *gorm.DB, column, query string) *gorm.DB {
	query = strings.TrimSpace(query)
	if query == "" {
		return db
	}
	return db.Where("LOWER("+column+") LIKE ?", "%"+escapeLike(strings.ToLower(query))+"%")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func invalidReference(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrInvalidReference
	}
	return err
}
