package entity

import "time"

// AutoTagDescription descripción asignada a las etiquetas creadas implícitamente
// al etiquetar productos con nombres que aún no existían.
const AutoTagDescription = "Etiqueta creada automáticamente"

// Tag etiqueta libre asociable a muchos productos.
// ProductCount es derivado: solo lo llenan las consultas de listado/búsqueda.
type Tag struct {
	ID           string
	Name         string // único en el catálogo
	Description  string
	ProductCount int
	CreatedAt    time.Time
}
