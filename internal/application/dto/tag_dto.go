package dto

import "github.com/jhoicas/product-service/internal/domain/entity"

// CreateTagRequest entrada para crear una etiqueta.
type CreateTagRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// TagResponse salida de una etiqueta.
type TagResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ProductCount int    `json:"productCount"`
}

// ToTagResponse mapea la entidad a la respuesta.
func ToTagResponse(t *entity.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Description: t.Description, ProductCount: t.ProductCount}
}

// ToTagResponses mapea una lista; nunca devuelve nil.
func ToTagResponses(list []*entity.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTagResponse(t))
	}
	return out
}
