package repository

import (
	"context"

	"github.com/jhoicas/product-service/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Las búsquedas devuelven (nil, nil) si no hay fila.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// GetByNameForUpdate igual que GetByName pero bloquea la fila hasta el fin de la transacción.
	GetByNameForUpdate(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	DeleteByName(ctx context.Context, name string) error
}
