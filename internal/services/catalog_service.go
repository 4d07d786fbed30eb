package services

import (
	"strconv"
	"strings"

	"order_portal/internal/models"
	"order_portal/internal/repository"

	"github.com/shopspring/decimal"
)

type CatalogService interface {
	// Brands
	CreateBrand(name string) (*models.Brand, error)
	GetBrands(activeOnly bool) ([]models.Brand, error)
	GetBrand(id string) (*models.Brand, error)
	UpdateBrand(brand *models.Brand) error
	DeleteBrand(id string) error

	// Products
	CreateProduct(product *models.Product) error
	GetProducts() ([]models.Product, error)
	GetProductsByBrand(brandID string, activeOnly bool) ([]models.Product, error)
	GetProduct(id string) (*models.Product, error)
	UpdateProduct(product *models.Product) error
	DeleteProduct(id string) error

	// SKUs
	CreateSKU(sku *models.SKU) error
	GetSKUs() ([]models.SKU, error)
	GetSKUsByProduct(productID string, activeOnly bool) ([]models.SKU, error)
	GetSKU(id string) (*models.SKU, error)
	UpdateSKU(sku *models.SKU) error
	DeleteSKU(id string) error
	SearchSKUs(query string) ([]models.SKU, error)

	ImportSKUs(text string) (int, error)
}

type catalogService struct {
	brandRepo   repository.BrandRepository
	productRepo repository.ProductRepository
	skuRepo     repository.SKURepository
}

func NewCatalogService(brandRepo repository.BrandRepository, productRepo repository.ProductRepository, skuRepo repository.SKURepository) CatalogService {
	return &catalogService{brandRepo: brandRepo, productRepo: productRepo, skuRepo: skuRepo}
}

func (s *catalogService) CreateBrand(name string) (*models.Brand, error) {
	brand := &models.Brand{Name: name, IsActive: true}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *catalogService) GetBrands(activeOnly bool) ([]models.Brand, error) {
	return s.brandRepo.GetAll(activeOnly)
}

func (s *catalogService) GetBrand(id string) (*models.Brand, error) {
	return s.brandRepo.GetByID(id)
}

func (s *catalogService) UpdateBrand(brand *models.Brand) error {
	return s.brandRepo.Update(brand)
}

// DeleteBrand removes the brand and everything under it. The cascade is
// destructive and callers confirm it with the user first.
func (s *catalogService) DeleteBrand(id string) error {
	return s.brandRepo.DeleteCascade(id)
}

func (s *catalogService) CreateProduct(product *models.Product) error {
	return s.productRepo.Create(product)
}

func (s *catalogService) GetProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

func (s *catalogService) GetProductsByBrand(brandID string, activeOnly bool) ([]models.Product, error) {
	return s.productRepo.GetByBrandID(brandID, activeOnly)
}

func (s *catalogService) GetProduct(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *catalogService) UpdateProduct(product *models.Product) error {
	return s.productRepo.Update(product)
}

func (s *catalogService) DeleteProduct(id string) error {
	return s.productRepo.DeleteCascade(id)
}

func (s *catalogService) CreateSKU(sku *models.SKU) error {
	return s.skuRepo.Create(sku)
}

func (s *catalogService) GetSKUs() ([]models.SKU, error) {
	return s.skuRepo.GetAll()
}

func (s *catalogService) GetSKUsByProduct(productID string, activeOnly bool) ([]models.SKU, error) {
	return s.skuRepo.GetByProductID(productID, activeOnly)
}

func (s *catalogService) GetSKU(id string) (*models.SKU, error) {
	return s.skuRepo.GetByID(id)
}

func (s *catalogService) UpdateSKU(sku *models.SKU) error {
	return s.skuRepo.Update(sku)
}

func (s *catalogService) DeleteSKU(id string) error {
	return s.skuRepo.Delete(id)
}

func (s *catalogService) SearchSKUs(query string) ([]models.SKU, error) {
	return s.skuRepo.Search(query)
}

// skuImportMinColumns is the minimum per-row field count:
// product_id, sku_code, variant_label, mrp, dealer_price[, case_size].
const skuImportMinColumns = 5

// ParseSKUImport turns uploaded CSV text into SKU rows. Parsing is
// deliberately permissive: lines split on bare commas (embedded commas inside
// quoted fields are not handled), a single leading/trailing quote is trimmed
// per field, rows under the minimum column count are skipped with no report,
// and unparseable numbers coerce to zero. The first line is a header.
func ParseSKUImport(text string) []models.SKU {
	var rows []models.SKU
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, ",")
		for j, col := range cols {
			cols[j] = trimQuotes(strings.TrimSpace(col))
		}
		if len(cols) < skuImportMinColumns {
			continue
		}
		row := models.SKU{
			ProductID:    cols[0],
			SKUCode:      cols[1],
			VariantLabel: cols[2],
			MRP:          parseAmount(cols[3]),
			DealerPrice:  parseAmount(cols[4]),
			IsActive:     true,
		}
		if len(cols) > 5 && cols[5] != "" {
			caseSize := cols[5]
			row.CaseSize = &caseSize
		}
		rows = append(rows, row)
	}
	return rows
}

// ImportSKUs parses the text and bulk-inserts the surviving rows.
func (s *catalogService) ImportSKUs(text string) (int, error) {
	rows := ParseSKUImport(text)
	if len(rows) == 0 {
		return 0, nil
	}
	if err := s.skuRepo.CreateBatch(rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func trimQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

func parseAmount(s string) decimal.Decimal {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
