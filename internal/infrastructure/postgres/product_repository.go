package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/product-service/internal/domain"
	"github.com/jhoicas/product-service/internal/domain/entity"
	"github.com/jhoicas/product-service/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Las lecturas traen la categoría por JOIN y las etiquetas en una segunda consulta
// para todo el lote (sin N+1).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.name, p.price, p.stock_quantity, p.created_at, p.updated_at,
	       c.id, c.name, c.created_at, c.updated_at
	FROM products p JOIN categories c ON c.id = p.category_id`

// hasTagNamed filtra productos con alguna etiqueta cuyo nombre esté en $1.
const hasTagNamed = `EXISTS (
	SELECT 1 FROM product_tags pt JOIN tags t ON t.id = pt.tag_id
	WHERE pt.product_id = p.id AND t.name = ANY($1))`

// Create persiste un producto nuevo y sus vínculos con etiquetas.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, name, price, stock_quantity, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Price, p.StockQuantity, p.Category.ID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isNumericOutOfRange(err) {
			return domain.InvalidInputf("precio o stock fuera de rango")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return r.linkTags(ctx, p.ID, p.Tags)
}

// Update sobrescribe el producto y reemplaza el conjunto de etiquetas.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, price = $3, stock_quantity = $4, category_id = $5, updated_at = $6
		WHERE id = $1`,
		p.ID, p.Name, p.Price, p.StockQuantity, p.Category.ID, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isNumericOutOfRange(err) {
			return domain.InvalidInputf("precio o stock fuera de rango")
		}
		return fmt.Errorf("update product: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM product_tags WHERE product_id = $1`, p.ID); err != nil {
		return fmt.Errorf("clear product tags: %w", err)
	}
	return r.linkTags(ctx, p.ID, p.Tags)
}

func (r *ProductRepo) linkTags(ctx context.Context, productID string, tags []entity.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_tags (product_id, tag_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`,
		productID, ids,
	)
	if err != nil {
		return fmt.Errorf("link product tags: %w", err)
	}
	return nil
}

// AdjustStock suma delta en la misma sentencia, sin leer-modificar-escribir.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		if isNumericOutOfRange(err) {
			return domain.InvalidInputf("el ajuste deja el stock fuera de rango")
		}
		return fmt.Errorf("adjust stock: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.one(ctx, productSelect+` WHERE p.id = $1`, id)
}

func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return r.one(ctx, productSelect+` WHERE p.name = $1`, name)
}

func (r *ProductRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists product: %w", err)
	}
	return exists, nil
}

func (r *ProductRepo) ListWithTags(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` ORDER BY p.name`)
}

func (r *ProductRepo) ListByCategoryName(ctx context.Context, categoryName string) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` WHERE c.name = $1 ORDER BY p.name`, categoryName)
}

func (r *ProductRepo) CountByCategoryName(ctx context.Context, categoryName string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM products p JOIN categories c ON c.id = p.category_id
		WHERE c.name = $1`, categoryName).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) FindByTagNames(ctx context.Context, tagNames []string) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` WHERE `+hasTagNamed+` ORDER BY p.name`, tagNames)
}

// FindByAllTagNames agrupa las coincidencias por producto y exige exactamente tagCount.
func (r *ProductRepo) FindByAllTagNames(ctx context.Context, tagNames []string, tagCount int) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+`
		WHERE p.id IN (
			SELECT pt.product_id FROM product_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE t.name = ANY($1)
			GROUP BY pt.product_id
			HAVING COUNT(DISTINCT t.id) = $2)
		ORDER BY p.name`, tagNames, tagCount)
}

// FindByTagNameContaining LIKE sensible a mayúsculas con comodines escapados.
func (r *ProductRepo) FindByTagNameContaining(ctx context.Context, pattern string) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+`
		WHERE EXISTS (
			SELECT 1 FROM product_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE pt.product_id = p.id AND t.name LIKE $1 ESCAPE '\')
		ORDER BY p.name`, containsPattern(pattern))
}

func (r *ProductRepo) FindByCategoryAndTagNames(ctx context.Context, categoryName string, tagNames []string) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` WHERE `+hasTagNamed+` AND c.name = $2 ORDER BY p.name`, tagNames, categoryName)
}

// Delete elimina un producto por ID; sus vínculos caen por CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) one(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	list, err := r.list(ctx, query, args...)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	byID := make(map[string]*entity.Product)
	for rows.Next() {
		p := &entity.Product{Tags: []entity.Tag{}}
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt,
			&p.Category.ID, &p.Category.Name, &p.Category.CreatedAt, &p.Category.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if err := r.attachTags(ctx, byID); err != nil {
		return nil, err
	}
	return list, nil
}

// attachTags carga las etiquetas de todos los productos del lote en una consulta.
func (r *ProductRepo) attachTags(ctx context.Context, byID map[string]*entity.Product) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	rows, err := r.q.Query(ctx, `
		SELECT pt.product_id, t.id, t.name, t.description, t.created_at
		FROM product_tags pt JOIN tags t ON t.id = pt.tag_id
		WHERE pt.product_id = ANY($1::uuid[])
		ORDER BY t.name`, ids)
	if err != nil {
		return fmt.Errorf("load product tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productID string
		var t entity.Tag
		if err := rows.Scan(&productID, &t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan product tag: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Tags = append(p.Tags, t)
		}
	}
	return rows.Err()
}
