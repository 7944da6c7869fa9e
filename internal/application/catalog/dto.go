package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balmstore/backend/internal/domain/catalog"
)

// CreateProductRequest carries the fields for a new product
type CreateProductRequest struct {
	ID                string          `json:"id" binding:"required,max=64"`
	Title             string          `json:"title" binding:"required,max=200"`
	MainCategory      string          `json:"main_category" binding:"max=100"`
	Price             decimal.Decimal `json:"price"`
	Image             string          `json:"image" binding:"max=500"`
	Images            []string        `json:"images"`
	Description       string          `json:"description"`
	FullDescription   string          `json:"full_description"`
	Sizes             []string        `json:"sizes"`
	Colors            []string        `json:"colors"`
	StockQuantity     int             `json:"stock_quantity" binding:"min=0"`
	LowStockThreshold *int            `json:"low_stock_threshold" binding:"omitempty,min=0"`
	SKU               string          `json:"sku" binding:"max=100"`
	Visible           *bool           `json:"visible"`
	Featured          bool            `json:"featured"`
	DisplayOrder      int             `json:"display_order"`
}

// UpdateProductRequest carries a partial update; nil fields are left alone
type UpdateProductRequest struct {
	Title             *string          `json:"title" binding:"omitempty,max=200"`
	MainCategory      *string          `json:"main_category" binding:"omitempty,max=100"`
	Price             *decimal.Decimal `json:"price"`
	Image             *string          `json:"image" binding:"omitempty,max=500"`
	Images            *[]string        `json:"images"`
	Description       *string          `json:"description"`
	FullDescription   *string          `json:"full_description"`
	Sizes             *[]string        `json:"sizes"`
	Colors            *[]string        `json:"colors"`
	StockQuantity     *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	LowStockThreshold *int             `json:"low_stock_threshold" binding:"omitempty,min=0"`
	SKU               *string          `json:"sku" binding:"omitempty,max=100"`
	Visible           *bool            `json:"visible"`
	Featured          *bool            `json:"featured"`
	DisplayOrder      *int             `json:"display_order"`
}

// ListProductsFilter represents filter options for the product list
type ListProductsFilter struct {
	Category   string `form:"category"`
	IncludeAll bool   `form:"include_hidden"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	MainCategory      string          `json:"main_category"`
	Price             decimal.Decimal `json:"price"`
	Image             string          `json:"image"`
	Images            []string        `json:"images"`
	Description       string          `json:"description"`
	FullDescription   string          `json:"full_description"`
	Sizes             []string        `json:"sizes"`
	Colors            []string        `json:"colors"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	SKU               string          `json:"sku"`
	Visible           bool            `json:"visible"`
	Featured          bool            `json:"featured"`
	DisplayOrder      int             `json:"display_order"`
	InStock           bool            `json:"in_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToProductResponse converts a product to its response shape
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Title:             p.Title,
		MainCategory:      p.MainCategory,
		Price:             p.Price,
		Image:             p.Image,
		Images:            p.Images,
		Description:       p.Description,
		FullDescription:   p.FullDescription,
		Sizes:             p.Sizes,
		Colors:            p.Colors,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		SKU:               p.SKU,
		Visible:           p.Visible,
		Featured:          p.Featured,
		DisplayOrder:      p.DisplayOrder,
		InStock:           p.StockQuantity > 0,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
