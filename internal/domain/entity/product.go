package entity

import "time"

// Product representa un producto o SKU del inventario (multi-bodega).
// El stock no vive aquí: se mantiene por bodega en Stock y se modifica solo mediante movimientos.
type Product struct {
	ID                string
	SKU               string // código único
	Name              string
	Unit              string // ej. "kg", "pcs"
	CategoryID        string // vacío si no tiene categoría
	LowStockThreshold int    // bajo este valor la línea de stock se considera en bajo stock
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
