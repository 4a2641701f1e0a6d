package repository

import (
	"context"

	"github.com/jhoicas/product-service/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las lecturas devuelven el agregado completo (categoría y etiquetas).
// Las búsquedas puntuales devuelven (nil, nil) si no hay fila.
type ProductRepository interface {
	// Create inserta el producto y sus vínculos con etiquetas.
	Create(ctx context.Context, product *entity.Product) error
	// Update sobrescribe el registro por ID y reemplaza sus vínculos con etiquetas.
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta al stock en una sola sentencia.
	AdjustStock(ctx context.Context, id string, delta int) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ListWithTags(ctx context.Context) ([]*entity.Product, error)
	ListByCategoryName(ctx context.Context, categoryName string) ([]*entity.Product, error)
	CountByCategoryName(ctx context.Context, categoryName string) (int, error)
	// FindByTagNames productos con al menos una de las etiquetas (unión).
	FindByTagNames(ctx context.Context, tagNames []string) ([]*entity.Product, error)
	// FindByAllTagNames productos cuyas coincidencias de etiqueta suman exactamente tagCount.
	FindByAllTagNames(ctx context.Context, tagNames []string, tagCount int) ([]*entity.Product, error)
	// FindByTagNameContaining productos con alguna etiqueta que contenga pattern (sensible a mayúsculas).
	FindByTagNameContaining(ctx context.Context, pattern string) ([]*entity.Product, error)
	FindByCategoryAndTagNames(ctx context.Context, categoryName string, tagNames []string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
