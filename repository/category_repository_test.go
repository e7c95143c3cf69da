package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"AdminBackend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryColumns = []string{"id", "category_name", "category_image_url", "user_id", "created_at", "updated_at"}

func TestCategoryGet_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewCategoryRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "category" WHERE "category"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	c, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryList(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewCategoryRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "category" WHERE LOWER(category_name) LIKE $1`)).
		WithArgs("%chair%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "category" WHERE LOWER(category_name) LIKE $1 ORDER BY category_name ASC`)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(3, "Armchairs", "", 1, now, now).
			AddRow(5, "Chairs", "", 1, now, now))

	categories, total, err := repo.List(context.Background(), ListParams{Query: " Chair ", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, categories, 2)
	assert.Equal(t, "Armchairs", categories[0].CategoryName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDelete(t *testing.T) {
	t.Run("existing row is deleted", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewCategoryRepository(gormDB)

		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "category" WHERE "category"."id" = $1`)).
			WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(5, "Chairs", "", 1, now, now))
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "category" WHERE "category"."id" = $1`)).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(context.Background(), 5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row issues no delete", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewCategoryRepository(gormDB)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "category" WHERE "category"."id" = $1`)).
			WillReturnRows(sqlmock.NewRows(categoryColumns))

		assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryUpdate_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewCategoryRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "category" WHERE "category"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	_, err := repo.Update(context.Background(), 9, &models.Category{CategoryName: "Lamps"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryUpdate_ClearsImage(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewCategoryRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "category" WHERE "category"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(5, "Chairs", "https://img.test/chairs.jpg", 1, now, now))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "category" SET`)).
		WithArgs("Lamps", "", sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), 5, &models.Category{CategoryName: "Lamps"})
	require.NoError(t, err)
	assert.Equal(t, "Lamps", updated.CategoryName)
	assert.Empty(t, updated.CategoryImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}
