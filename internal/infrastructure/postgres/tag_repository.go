package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/product-service/internal/domain"
	"github.com/jhoicas/product-service/internal/domain/entity"
	"github.com/jhoicas/product-service/internal/domain/repository"
)

var _ repository.TagRepository = (*TagRepo)(nil)

// TagRepo implementación del puerto TagRepository sobre PostgreSQL (usable con pool o tx).
type TagRepo struct {
	q Querier
}

// NewTagRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTagRepository(q Querier) *TagRepo {
	return &TagRepo{q: q}
}

// tagWithCount selecciona la etiqueta y cuántos productos la usan.
const tagWithCount = `
	SELECT t.id, t.name, t.description, t.created_at, COUNT(pt.product_id)
	FROM tags t LEFT JOIN product_tags pt ON pt.tag_id = t.id`

// Create inserta la etiqueta; nombre repetido -> domain.ErrDuplicate.
func (r *TagRepo) Create(ctx context.Context, tag *entity.Tag) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO tags (id, name, description, created_at) VALUES ($1, $2, $3, $4)`,
		tag.ID, tag.Name, tag.Description, tag.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

// CreateIfAbsent usa ON CONFLICT DO NOTHING: un choque de nombre no aborta la tx en curso.
func (r *TagRepo) CreateIfAbsent(ctx context.Context, tag *entity.Tag) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`INSERT INTO tags (id, name, description, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO NOTHING`,
		tag.ID, tag.Name, tag.Description, tag.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert tag if absent: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// GetByName obtiene la etiqueta con su número de productos.
func (r *TagRepo) GetByName(ctx context.Context, name string) (*entity.Tag, error) {
	var t entity.Tag
	err := r.q.QueryRow(ctx, tagWithCount+` WHERE t.name = $1 GROUP BY t.id`, name).
		Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.ProductCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

func (r *TagRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tags WHERE name = $1)`, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists tag by name: %w", err)
	}
	return exists, nil
}

func (r *TagRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tags WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists tag by id: %w", err)
	}
	return exists, nil
}

// List todas las etiquetas ordenadas por nombre.
func (r *TagRepo) List(ctx context.Context) ([]*entity.Tag, error) {
	return r.list(ctx, tagWithCount+` GROUP BY t.id ORDER BY t.name`)
}

// SearchByName subcadena sin distinguir mayúsculas (ILIKE con comodines escapados).
func (r *TagRepo) SearchByName(ctx context.Context, query string) ([]*entity.Tag, error) {
	return r.list(ctx, tagWithCount+` WHERE t.name ILIKE $1 ESCAPE '\' GROUP BY t.id ORDER BY t.name`,
		containsPattern(query))
}

// Delete elimina la etiqueta; product_tags cae por CASCADE.
func (r *TagRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

func (r *TagRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Tag, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Tag, 0)
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.ProductCount); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
