package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/product-service/internal/domain"
	"github.com/jhoicas/product-service/internal/domain/entity"
	"github.com/jhoicas/product-service/internal/domain/repository"
)

// ProductRepository implementación en memoria de repository.ProductRepository.
type ProductRepository struct {
	s    *Store
	inTx bool
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.s.write(ctx, r.inTx, func(t *tables) error {
		if _, ok := t.productByName(product.Name); ok {
			return domain.ErrDuplicate
		}
		if err := checkProductRefs(t, product); err != nil {
			return err
		}
		t.products[product.ID] = toProductRow(product)
		t.productTags[product.ID] = tagIDSet(product.Tags)
		return nil
	})
}

func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.s.write(ctx, r.inTx, func(t *tables) error {
		current, ok := t.products[product.ID]
		if !ok {
			return nil
		}
		if other, ok := t.productByName(product.Name); ok && other.ID != product.ID {
			return domain.ErrDuplicate
		}
		if err := checkProductRefs(t, product); err != nil {
			return err
		}
		row := toProductRow(product)
		row.CreatedAt = current.CreatedAt
		t.products[product.ID] = row
		t.productTags[product.ID] = tagIDSet(product.Tags)
		return nil
	})
}

func (r *ProductRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	return r.s.write(ctx, r.inTx, func(t *tables) error {
		row, ok := t.products[id]
		if !ok {
			return nil
		}
		row.StockQuantity += delta
		t.products[id] = row
		return nil
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.read(ctx, r.inTx, func(t *tables) error {
		if row, ok := t.products[id]; ok {
			out = t.product(row)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.read(ctx, r.inTx, func(t *tables) error {
		if row, ok := t.productByName(name); ok {
			out = t.product(row)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.s.read(ctx, r.inTx, func(t *tables) error {
		_, ok = t.products[id]
		return nil
	})
	return ok, err
}

func (r *ProductRepository) ListWithTags(ctx context.Context) ([]*entity.Product, error) {
	return r.where(ctx, func(*tables, productRow) bool { return true })
}

func (r *ProductRepository) ListByCategoryName(ctx context.Context, categoryName string) ([]*entity.Product, error) {
	return r.where(ctx, inCategory(categoryName))
}

func (r *ProductRepository) CountByCategoryName(ctx context.Context, categoryName string) (int, error) {
	list, err := r.ListByCategoryName(ctx, categoryName)
	return len(list), err
}

func (r *ProductRepository) FindByTagNames(ctx context.Context, tagNames []string) ([]*entity.Product, error) {
	return r.where(ctx, withAnyTag(tagNames))
}

func (r *ProductRepository) FindByAllTagNames(ctx context.Context, tagNames []string, tagCount int) ([]*entity.Product, error) {
	wanted := toSet(tagNames)
	return r.where(ctx, func(t *tables, row productRow) bool {
		matches := 0
		for _, n := range t.tagNamesOf(row.ID) {
			if _, ok := wanted[n]; ok {
				matches++
			}
		}
		return matches == tagCount
	})
}

func (r *ProductRepository) FindByTagNameContaining(ctx context.Context, pattern string) ([]*entity.Product, error) {
	return r.where(ctx, func(t *tables, row productRow) bool {
		for _, n := range t.tagNamesOf(row.ID) {
			if strings.Contains(n, pattern) {
				return true
			}
		}
		return false
	})
}

func (r *ProductRepository) FindByCategoryAndTagNames(ctx context.Context, categoryName string, tagNames []string) ([]*entity.Product, error) {
	byCategory := inCategory(categoryName)
	byTag := withAnyTag(tagNames)
	return r.where(ctx, func(t *tables, row productRow) bool {
		return byCategory(t, row) && byTag(t, row)
	})
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, r.inTx, func(t *tables) error {
		delete(t.products, id)
		delete(t.productTags, id)
		return nil
	})
}

func (r *ProductRepository) where(ctx context.Context, match func(*tables, productRow) bool) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.read(ctx, r.inTx, func(t *tables) error {
		out = t.productsWhere(func(row productRow) bool { return match(t, row) })
		return nil
	})
	return out, err
}

func inCategory(name string) func(*tables, productRow) bool {
	return func(t *tables, row productRow) bool {
		return t.categories[row.CategoryID].Name == name
	}
}

func withAnyTag(names []string) func(*tables, productRow) bool {
	wanted := toSet(names)
	return func(t *tables, row productRow) bool {
		for _, n := range t.tagNamesOf(row.ID) {
			if _, ok := wanted[n]; ok {
				return true
			}
		}
		return false
	}
}

// checkProductRefs emula las FK hacia categories y tags.
func checkProductRefs(t *tables, p *entity.Product) error {
	if _, ok := t.categories[p.Category.ID]; !ok {
		return fmt.Errorf("memory: categoría %s inexistente", p.Category.ID)
	}
	for _, tag := range p.Tags {
		if _, ok := t.tags[tag.ID]; !ok {
			return fmt.Errorf("memory: etiqueta %s inexistente", tag.ID)
		}
	}
	return nil
}

func toProductRow(p *entity.Product) productRow {
	return productRow{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.Category.ID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func tagIDSet(tags []entity.Tag) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t.ID] = struct{}{}
	}
	return set
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
