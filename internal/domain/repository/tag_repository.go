package repository

import (
	"context"

	"github.com/jhoicas/product-service/internal/domain/entity"
)

// TagRepository define el puerto de persistencia para Tag (DIP).
type TagRepository interface {
	// Create inserta la etiqueta; devuelve domain.ErrDuplicate si el nombre ya existe.
	Create(ctx context.Context, tag *entity.Tag) error
	// CreateIfAbsent inserta solo si el nombre no existe. created=false indica que
	// otra transacción ganó la carrera y hay que releer por nombre.
	CreateIfAbsent(ctx context.Context, tag *entity.Tag) (created bool, err error)
	GetByName(ctx context.Context, name string) (*entity.Tag, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	// List devuelve todas las etiquetas con ProductCount calculado.
	List(ctx context.Context) ([]*entity.Tag, error)
	// SearchByName busca por subcadena sin distinguir mayúsculas, con ProductCount.
	SearchByName(ctx context.Context, query string) ([]*entity.Tag, error)
	// Delete elimina la etiqueta y la desvincula de todos los productos.
	Delete(ctx context.Context, id string) error
}
