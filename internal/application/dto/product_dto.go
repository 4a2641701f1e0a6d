package dto

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-service/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. TagNames opcional: las
// etiquetas que no existan se crean.
type CreateProductRequest struct {
	ProductName   string          `json:"productName" validate:"required,max=200"`
	CategoryName  string          `json:"categoryName" validate:"required,max=200"`
	Price         decimal.Decimal `json:"price" swaggertype:"number"`
	StockQuantity int             `json:"stockQuantity"`
	TagNames      []string        `json:"tagNames" validate:"omitempty,dive,required,max=100"`
}

// UpdateProductRequest actualización por nombre actual. Campos nil = sin cambio.
type UpdateProductRequest struct {
	CurrentProductName string           `json:"currentProductName" validate:"required"`
	NewProductName     *string          `json:"newProductName" validate:"omitempty,min=1,max=200"`
	CategoryName       *string          `json:"categoryName" validate:"omitempty,min=1,max=200"`
	Price              *decimal.Decimal `json:"price" swaggertype:"number"`
	StockQuantity      *int             `json:"stockQuantity"`
}

// DeleteProductRequest identifica el producto a eliminar por nombre.
type DeleteProductRequest struct {
	ProductName string `json:"productName" validate:"required"`
}

// AdjustInventoryRequest ajuste de stock con delta con signo.
type AdjustInventoryRequest struct {
	ProductName     string `json:"productName" validate:"required"`
	InventoryChange *int   `json:"inventoryChange" validate:"required"`
}

// SearchProductsRequest criterios combinables; vacío = todos los productos.
type SearchProductsRequest struct {
	CategoryName string   `json:"categoryName"`
	TagNames     []string `json:"tagNames"`
}

// ProductResponse salida de un producto con nombres desnormalizados.
type ProductResponse struct {
	ID            string          `json:"id"`
	ProductName   string          `json:"productName"`
	CategoryName  string          `json:"categoryName"`
	Price         decimal.Decimal `json:"price" swaggertype:"number"`
	StockQuantity int             `json:"stockQuantity"`
	TagNames      []string        `json:"tagNames"`
}

// ToProductResponse mapea la entidad a la respuesta. TagNames va ordenado.
func ToProductResponse(p *entity.Product) ProductResponse {
	tagNames := p.TagNames()
	slices.Sort(tagNames)
	return ProductResponse{
		ID:            p.ID,
		ProductName:   p.Name,
		CategoryName:  p.Category.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		TagNames:      tagNames,
	}
}

// ToProductResponses mapea una lista; nunca devuelve nil.
func ToProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}
