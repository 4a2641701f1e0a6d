package entity

import "time"

// Category agrupa productos. Un producto pertenece a exactamente una categoría;
// la categoría no controla el ciclo de vida de sus productos.
type Category struct {
	ID        string
	Name      string // único en el catálogo
	CreatedAt time.Time
	UpdatedAt time.Time
}
