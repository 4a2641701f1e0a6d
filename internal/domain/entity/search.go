package entity

// SearchCriteria filtros combinables para la búsqueda de productos.
// Campos vacíos no filtran.
type SearchCriteria struct {
	CategoryName string
	TagNames     []string
}
