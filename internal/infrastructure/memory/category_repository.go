package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/product-service/internal/domain"
	"github.com/jhoicas/product-service/internal/domain/entity"
	"github.com/jhoicas/product-service/internal/domain/repository"
)

// CategoryRepository implementación en memoria de repository.CategoryRepository.
type CategoryRepository struct {
	s    *Store
	inTx bool
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.s.write(ctx, r.inTx, func(t *tables) error {
		if _, ok := t.categoryByName(category.Name); ok {
			return domain.ErrDuplicate
		}
		t.categories[category.ID] = categoryRow{
			ID:        category.ID,
			Name:      category.Name,
			CreatedAt: category.CreatedAt,
			UpdatedAt: category.UpdatedAt,
		}
		return nil
	})
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.read(ctx, r.inTx, func(t *tables) error {
		if row, ok := t.categoryByName(name); ok {
			c := t.category(row.ID)
			out = &c
		}
		return nil
	})
	return out, err
}

// GetByNameForUpdate en memoria el bloqueo ya lo da la transacción (txMu).
func (r *CategoryRepository) GetByNameForUpdate(ctx context.Context, name string) (*entity.Category, error) {
	return r.GetByName(ctx, name)
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0)
	err := r.s.read(ctx, r.inTx, func(t *tables) error {
		for id := range t.categories {
			c := t.category(id)
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// DeleteByName respeta la FK RESTRICT: con productos asociados devuelve ErrNotEmpty.
func (r *CategoryRepository) DeleteByName(ctx context.Context, name string) error {
	return r.s.write(ctx, r.inTx, func(t *tables) error {
		row, ok := t.categoryByName(name)
		if !ok {
			return nil
		}
		for _, p := range t.products {
			if p.CategoryID == row.ID {
				return domain.ErrNotEmpty
			}
		}
		delete(t.categories, row.ID)
		return nil
	})
}
