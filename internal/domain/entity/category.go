package entity

import "time"

// Category agrupa productos para la composición del inventario en el dashboard.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
