package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario. La ubicación es plana (sin jerarquía).
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
