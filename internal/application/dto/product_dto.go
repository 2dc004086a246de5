package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU               string `json:"sku" validate:"required,min=1,max=100"`
	Name              string `json:"name" validate:"required,min=1,max=150"`
	Unit              string `json:"unit" validate:"required,max=50"`
	CategoryID        string `json:"category_id" validate:"omitempty,uuid"`
	LowStockThreshold int    `json:"low_stock_threshold" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto. El SKU no se modifica.
type UpdateProductRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=150"`
	Unit              *string `json:"unit" validate:"omitempty,min=1,max=50"`
	CategoryID        *string `json:"category_id" validate:"omitempty"`
	LowStockThreshold *int    `json:"low_stock_threshold" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string    `json:"id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Unit              string    `json:"unit"`
	CategoryID        string    `json:"category_id,omitempty"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
