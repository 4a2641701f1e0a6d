package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Precios como número JSON (599.99) y no como string ("599.99").
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse cuerpo de error HTTP. Code es el Kind de dominio (NOT_FOUND, NOT_EMPTY, ...).
type ErrorResponse struct {
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageResponse respuesta de confirmación para operaciones sin cuerpo propio.
type MessageResponse struct {
	Message string `json:"message"`
}
