package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"AdminBackend/logger"
	"AdminBackend/models"
	"AdminBackend/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed categories.yaml
var categoriesFixture []byte

type CategorySeed struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
}

// LoadCategories parses the embedded category fixture.
func LoadCategories() ([]CategorySeed, error) {
	var fixture struct {
		Categories []CategorySeed `yaml:"categories"`
	}
	if err := yaml.Unmarshal(categoriesFixture, &fixture); err != nil {
		return nil, fmt.Errorf("parse categories fixture: %w", err)
	}
	return fixture.Categories, nil
}

type Options struct {
	Products  int
	Brands    int
	Suppliers int
	// OwnerID owns every seeded row. It is replaced by the admin's id when AdminEmail is set.
	OwnerID       uint
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func DefaultOptions() Options {
	return Options{
		Products:  100,
		Brands:    20,
		Suppliers: 20,
		OwnerID:   1,
		AdminName: "Admin",
	}
}

type Summary struct {
	Categories int
	Brands     int
	Suppliers  int
	Products   int
	Images     int
}

type Seeder struct {
	db        *gorm.DB
	faker     *gofakeit.Faker
	suppliers *repository.SupplierRepository
	products  *repository.ProductRepository
	users     *repository.UserRepository
}

// New returns a seeder whose fake data is reproducible for a given seed.
func New(db *gorm.DB, seed int64) *Seeder {
	return &Seeder{
		db:        db,
		faker:     gofakeit.New(seed),
		suppliers: repository.NewSupplierRepository(db),
		products:  repository.NewProductRepository(db),
		users:     repository.NewUserRepository(db),
	}
}

func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	var summary Summary

	if opts.AdminEmail != "" {
		admin, err := s.ensureAdmin(ctx, opts)
		if err != nil {
			return summary, err
		}
		opts.OwnerID = admin.ID
	}
	if opts.OwnerID == 0 {
		return summary, errors.New("seed: owner id is required")
	}

	categories, err := s.seedCategories(ctx, opts.OwnerID)
	if err != nil {
		return summary, err
	}
	summary.Categories = len(categories)

	brands := make([]models.Brand, 0, opts.Brands)
	for i := 0; i < opts.Brands; i++ {
		brands = append(brands, fakeBrand(s.faker, opts.OwnerID))
	}
	if len(brands) > 0 {
		if err := s.db.WithContext(ctx).Create(&brands).Error; err != nil {
			return summary, fmt.Errorf("seed brands: %w", err)
		}
	}
	summary.Brands = len(brands)

	suppliers := make([]models.Supplier, 0, opts.Suppliers)
	for i := 0; i < opts.Suppliers; i++ {
		supplier := fakeSupplier(s.faker, opts.OwnerID)
		if err := s.suppliers.Create(ctx, &supplier); err != nil {
			return summary, fmt.Errorf("seed supplier %d: %w", i+1, err)
		}
		suppliers = append(suppliers, supplier)
	}
	summary.Suppliers = len(suppliers)

	if opts.Products > 0 && (len(categories) == 0 || len(brands) == 0 || len(suppliers) == 0) {
		return summary, errors.New("seed: products need at least one category, brand and supplier")
	}

	for i := 0; i < opts.Products; i++ {
		product := fakeProduct(s.faker, opts.OwnerID,
			categories[s.faker.Number(0, len(categories)-1)].ID,
			brands[s.faker.Number(0, len(brands)-1)].ID,
			suppliers[s.faker.Number(0, len(suppliers)-1)].ID,
		)
		if err := s.products.Create(ctx, &product); err != nil {
			return summary, fmt.Errorf("seed product %d: %w", i+1, err)
		}
		summary.Products++
		summary.Images += len(product.Images)

		logger.Info(ctx, "seeded product",
			zap.Int("sl_no", i+1),
			zap.String("product_name", product.ProductName),
			zap.Int("images", len(product.Images)),
		)
	}

	return summary, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, opts Options) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, opts.AdminEmail)
	if err == nil {
		if !existing.IsAdmin() {
			return nil, fmt.Errorf("seed: %s exists and is not an admin", opts.AdminEmail)
		}
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if opts.AdminPassword == "" {
		return nil, errors.New("seed: admin password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Name:     opts.AdminName,
		Email:    opts.AdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	return admin, nil
}

// seedCategories inserts the fixture categories the owner does not have yet.
func (s *Seeder) seedCategories(ctx context.Context, ownerID uint) ([]models.Category, error) {
	fixture, err := LoadCategories()
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(fixture))
	for _, entry := range fixture {
		category := models.Category{
			CategoryName:     entry.Name,
			CategoryImageURL: entry.Image,
			UserID:           ownerID,
		}
		err := s.db.WithContext(ctx).
			Where(models.Category{CategoryName: entry.Name, UserID: ownerID}).
			Attrs(models.Category{CategoryImageURL: entry.Image}).
			FirstOrCreate(&category).Error
		if err != nil {
			return nil, fmt.Errorf("seed category %q: %w", entry.Name, err)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func fakeBrand(f *gofakeit.Faker, ownerID uint) models.Brand {
	return models.Brand{
		BrandName:     f.Company(),
		BrandImageURL: f.URL(),
		UserID:        ownerID,
	}
}

func fakeSupplier(f *gofakeit.Faker, ownerID uint) models.Supplier {
	return models.Supplier{
		SupplierName:        f.Name(),
		SupplierEmail:       f.Email(),
		SupplierPhoneNumber: f.Numerify("+8801#########"),
		SupplierCountry:     f.Country(),
		SupplierCity:        f.City(),
		SupplierCompanyName: f.Company(),
		SupplierAddress:     f.Street(),
		UserID:              ownerID,
	}
}

func money(f *gofakeit.Faker, min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(f.Price(min, max)).Round(2)
}

func fakeProduct(f *gofakeit.Faker, ownerID, categoryID, brandID, supplierID uint) models.Product {
	product := models.Product{
		ProductName:        f.ProductName(),
		ProductDescription: f.ProductDescription(),
		Price:              money(f, 10, 1000),
		Stock:              f.Number(0, 100),
		CategoryID:         categoryID,
		BrandID:            brandID,
		SupplierID:         supplierID,
		UserID:             ownerID,
		IsFeatured:         f.Bool(),
		IsNewArrival:       f.Bool(),
		Status:             models.ProductStatuses[f.Number(0, len(models.ProductStatuses)-1)],
		ShippingCost:       money(f, 0, 20),
		SalePrice:          money(f, 5, 500),
	}
	if f.Bool() {
		product.DiscountPercentage = decimal.NewNullDecimal(money(f, 5, 50))
	}

	for _, url := range imageURLs(f, f.Number(2, 5)) {
		product.Images = append(product.Images, models.ProductImage{ImageURL: url})
	}
	return product
}

// imageURLs returns n distinct product image urls.
func imageURLs(f *gofakeit.Faker, n int) []string {
	seen := make(map[string]struct{}, n)
	urls := make([]string, 0, n)
	for len(urls) < n {
		url := fmt.Sprintf("https://loremflickr.com/640/480/product?lock=%d", f.Number(1, 1_000_000))
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
	}
	return urls
}
