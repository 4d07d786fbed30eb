package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"order_portal/internal/models"
	"order_portal/internal/services"
	"order_portal/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	logoBucket = "brand-logos"
	pdfBucket  = "brand-pdfs"
)

type CatalogHandler struct {
	catalogService services.CatalogService
	store          *storage.Store
}

func NewCatalogHandler(catalogService services.CatalogService, store *storage.Store) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, store: store}
}

// Brands

func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand name is required"})
		return
	}

	brand, err := h.catalogService.CreateBrand(req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"brand": brand})
}

func (h *CatalogHandler) ListBrands(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	brands, err := h.catalogService.GetBrands(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load brands"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *CatalogHandler) UpdateBrand(c *gin.Context) {
	brand, err := h.catalogService.GetBrand(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Name != nil {
		brand.Name = *req.Name
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}

	if err := h.catalogService.UpdateBrand(brand); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

// DeleteBrand cascades to the brand's products and SKUs. The response names
// the cascade so confirmation dialogs can surface it.
func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	if err := h.catalogService.DeleteBrand(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "cascade": "products and SKUs of this brand were removed"})
}

// UploadBrandAsset stores a logo or PDF and writes its public URL back onto
// the brand row.
func (h *CatalogHandler) UploadBrandAsset(c *gin.Context) {
	kind := c.Param("kind")
	if kind != "logo" && kind != "pdf" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown asset kind"})
		return
	}

	brand, err := h.catalogService.GetBrand(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	bucket := logoBucket
	if kind == "pdf" {
		bucket = pdfBucket
	}
	objectPath := fmt.Sprintf("%s%s", brand.ID, filepath.Ext(fileHeader.Filename))

	if err := h.store.Upload(bucket, objectPath, f, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed: " + err.Error()})
		return
	}

	url := h.store.PublicURL(bucket, objectPath)
	if kind == "pdf" {
		brand.PDFURL = &url
	} else {
		brand.LogoURL = &url
	}
	if err := h.catalogService.UpdateBrand(brand); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"brand": brand, "url": url})
}

// Products

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req struct {
		BrandID     string  `json:"brand_id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BrandID == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand and product name are required"})
		return
	}

	product := &models.Product{BrandID: req.BrandID, Name: req.Name, Description: req.Description, IsActive: true}
	if err := h.catalogService.CreateProduct(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	if brandID := c.Query("brand_id"); brandID != "" {
		products, err := h.catalogService.GetProductsByBrand(brandID, c.Query("active") == "true")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
		return
	}

	products, err := h.catalogService.GetProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.catalogService.UpdateProduct(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "cascade": "SKUs of this product were removed"})
}

// SKUs

func (h *CatalogHandler) CreateSKU(c *gin.Context) {
	var req struct {
		ProductID    string          `json:"product_id"`
		SKUCode      string          `json:"sku_code"`
		VariantLabel string          `json:"variant_label"`
		CaseSize     *string         `json:"case_size"`
		MRP          decimal.Decimal `json:"mrp"`
		DealerPrice  decimal.Decimal `json:"dealer_price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.SKUCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product and SKU code are required"})
		return
	}

	sku := &models.SKU{
		ProductID:    req.ProductID,
		SKUCode:      req.SKUCode,
		VariantLabel: req.VariantLabel,
		CaseSize:     req.CaseSize,
		MRP:          req.MRP,
		DealerPrice:  req.DealerPrice,
		IsActive:     true,
	}
	if err := h.catalogService.CreateSKU(sku); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sku": sku})
}

func (h *CatalogHandler) ListSKUs(c *gin.Context) {
	if productID := c.Query("product_id"); productID != "" {
		skus, err := h.catalogService.GetSKUsByProduct(productID, c.Query("active") == "true")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load SKUs"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"skus": skus})
		return
	}

	skus, err := h.catalogService.GetSKUs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load SKUs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"skus": skus})
}

func (h *CatalogHandler) UpdateSKU(c *gin.Context) {
	sku, err := h.catalogService.GetSKU(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "SKU not found"})
		return
	}

	var req struct {
		SKUCode      *string          `json:"sku_code"`
		VariantLabel *string          `json:"variant_label"`
		CaseSize     *string          `json:"case_size"`
		MRP          *decimal.Decimal `json:"mrp"`
		DealerPrice  *decimal.Decimal `json:"dealer_price"`
		IsActive     *bool            `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.SKUCode != nil {
		sku.SKUCode = *req.SKUCode
	}
	if req.VariantLabel != nil {
		sku.VariantLabel = *req.VariantLabel
	}
	if req.CaseSize != nil {
		sku.CaseSize = req.CaseSize
	}
	if req.MRP != nil {
		sku.MRP = *req.MRP
	}
	if req.DealerPrice != nil {
		sku.DealerPrice = *req.DealerPrice
	}
	if req.IsActive != nil {
		sku.IsActive = *req.IsActive
	}

	if err := h.catalogService.UpdateSKU(sku); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sku": sku})
}

func (h *CatalogHandler) DeleteSKU(c *gin.Context) {
	if err := h.catalogService.DeleteSKU(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ImportSKUs accepts a CSV upload (multipart "file" field or raw body) and
// bulk-inserts the rows that survive the permissive parse.
func (h *CatalogHandler) ImportSKUs(c *gin.Context) {
	var text string
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		text = string(data)
	} else {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil || len(data) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "CSV content is required"})
			return
		}
		text = string(data)
	}

	count, err := h.catalogService.ImportSKUs(text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

// Search answers the retailer product search.
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"skus": []models.SKU{}})
		return
	}
	skus, err := h.catalogService.SearchSKUs(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"skus": skus})
}
