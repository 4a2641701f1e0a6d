package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jhoicas/product-service/internal/domain"
	"github.com/jhoicas/product-service/internal/domain/entity"
	"github.com/jhoicas/product-service/internal/domain/repository"
)

// TagRepository implementación en memoria de repository.TagRepository.
type TagRepository struct {
	s    *Store
	inTx bool
}

var _ repository.TagRepository = (*TagRepository)(nil)

func (r *TagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	return r.s.write(ctx, r.inTx, func(t *tables) error {
		if _, ok := t.tagByName(tag.Name); ok {
			return domain.ErrDuplicate
		}
		t.tags[tag.ID] = tagRow{ID: tag.ID, Name: tag.Name, Description: tag.Description, CreatedAt: tag.CreatedAt}
		return nil
	})
}

func (r *TagRepository) CreateIfAbsent(ctx context.Context, tag *entity.Tag) (bool, error) {
	err := r.Create(ctx, tag)
	if errors.Is(err, domain.ErrDuplicate) {
		return false, nil
	}
	return err == nil, err
}

func (r *TagRepository) GetByName(ctx context.Context, name string) (*entity.Tag, error) {
	var out *entity.Tag
	err := r.s.read(ctx, r.inTx, func(t *tables) error {
		if row, ok := t.tagByName(name); ok {
			out = t.tag(row, true)
		}
		return nil
	})
	return out, err
}

func (r *TagRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := r.s.read(ctx, r.inTx, func(t *tables) error {
		_, ok = t.tagByName(name)
		return nil
	})
	return ok, err
}

func (r *TagRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.s.read(ctx, r.inTx, func(t *tables) error {
		_, ok = t.tags[id]
		return nil
	})
	return ok, err
}

func (r *TagRepository) List(ctx context.Context) ([]*entity.Tag, error) {
	return r.where(ctx, func(tagRow) bool { return true })
}

func (r *TagRepository) SearchByName(ctx context.Context, query string) ([]*entity.Tag, error) {
	q := strings.ToLower(query)
	return r.where(ctx, func(row tagRow) bool {
		return strings.Contains(strings.ToLower(row.Name), q)
	})
}

// Delete quita la etiqueta y sus vínculos (CASCADE).
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, r.inTx, func(t *tables) error {
		delete(t.tags, id)
		for _, set := range t.productTags {
			delete(set, id)
		}
		return nil
	})
}

func (r *TagRepository) where(ctx context.Context, match func(tagRow) bool) ([]*entity.Tag, error) {
	out := make([]*entity.Tag, 0)
	err := r.s.read(ctx, r.inTx, func(t *tables) error {
		for _, row := range t.tags {
			if match(row) {
				out = append(out, t.tag(row, true))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}
