package dto

import "github.com/jhoicas/product-service/internal/domain/entity"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToCategoryResponse mapea la entidad a la respuesta.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

// ToCategoryResponses mapea una lista; nunca devuelve nil.
func ToCategoryResponses(list []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCategoryResponse(c))
	}
	return out
}
