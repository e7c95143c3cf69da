package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"AdminBackend/jwt"
	"AdminBackend/middleware"
	"AdminBackend/models"
	"AdminBackend/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testTokens = jwt.NewHMACManager([]byte("handlers-test-secret"), time.Hour)

func tokenFor(t *testing.T, userID uint, role string) string {
	t.Helper()
	token, _, err := testTokens.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// newTestRouter mounts the routes behind Authenticate plus the given gate.
func newTestRouter(gate gin.HandlerFunc, mount func(r gin.IRoutes)) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Authenticate(testTokens, "admin_session"))
	group := router.Group("/api", gate)
	mount(group)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
	Errors     []struct {
		Path    []string `json:"path"`
		Message string   `json:"message"`
	} `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&env))
	return env
}

func errorPaths(env envelope) []string {
	paths := make([]string, 0, len(env.Errors))
	for _, e := range env.Errors {
		paths = append(paths, strings.Join(e.Path, "."))
	}
	return paths
}

// --- fake stores ---

type fakeCategoryStore struct {
	rows   map[uint]models.Category
	nextID uint
	err    error
	last   repository.ListParams
}

func newFakeCategoryStore(rows ...models.Category) *fakeCategoryStore {
	s := &fakeCategoryStore{rows: map[uint]models.Category{}, nextID: 1}
	for _, row := range rows {
		s.rows[row.ID] = row
		if row.ID >= s.nextID {
			s.nextID = row.ID + 1
		}
	}
	return s
}

func (s *fakeCategoryStore) Get(_ context.Context, id uint) (*models.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (s *fakeCategoryStore) List(_ context.Context, params repository.ListParams) ([]models.Category, int64, error) {
	s.last = params
	if s.err != nil {
		return nil, 0, s.err
	}
	out := []models.Category{}
	for _, row := range s.rows {
		if strings.Contains(strings.ToLower(row.CategoryName), strings.ToLower(params.Query)) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryName < out[j].CategoryName })
	total := int64(len(out))
	start := min(params.Offset(), len(out))
	end := min(start+params.PageSize, len(out))
	return out[start:end], total, nil
}

func (s *fakeCategoryStore) Create(_ context.Context, category *models.Category) error {
	if s.err != nil {
		return s.err
	}
	category.ID = s.nextID
	s.nextID++
	s.rows[category.ID] = *category
	return nil
}

func (s *fakeCategoryStore) Update(_ context.Context, id uint, changes *models.Category) (*models.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.CategoryName = changes.CategoryName
	s.rows[id] = row
	return &row, nil
}

func (s *fakeCategoryStore) Delete(_ context.Context, id uint) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

type fakeSupplierStore struct {
	rows    map[uint]models.Supplier
	created *models.Supplier
	err     error
}

func (s *fakeSupplierStore) Get(_ context.Context, id uint) (*models.Supplier, error) {
	if s.err != nil {
		return nil, s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (s *fakeSupplierStore) List(_ context.Context, _ repository.ListParams) ([]models.Supplier, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	out := []models.Supplier{}
	for _, row := range s.rows {
		out = append(out, row)
	}
	return out, int64(len(out)), nil
}

func (s *fakeSupplierStore) Create(_ context.Context, supplier *models.Supplier) error {
	if s.err != nil {
		return s.err
	}
	supplier.ID = uint(len(s.rows) + 1)
	s.created = supplier
	return nil
}

func (s *fakeSupplierStore) Update(_ context.Context, id uint, changes *models.Supplier) (*models.Supplier, error) {
	if s.err != nil {
		return nil, s.err
	}
	if _, ok := s.rows[id]; !ok {
		return nil, repository.ErrNotFound
	}
	changes.ID = id
	s.rows[id] = *changes
	return changes, nil
}

func (s *fakeSupplierStore) Delete(_ context.Context, id uint) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}
