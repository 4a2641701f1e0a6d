// Package memory implementa el Entity Store en memoria. Sirve como driver de
// desarrollo (STORE_DRIVER=memory) y como backend de las pruebas HTTP.
// Emula las restricciones de la base: nombres únicos, FK RESTRICT de
// productos a categorías y CASCADE de product_tags.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-service/internal/domain/entity"
)

type categoryRow struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type productRow struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	StockQuantity int
	CategoryID    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type tagRow struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

type tables struct {
	categories  map[string]categoryRow
	products    map[string]productRow
	tags        map[string]tagRow
	productTags map[string]map[string]struct{} // productID -> tagIDs
}

func newTables() tables {
	return tables{
		categories:  make(map[string]categoryRow),
		products:    make(map[string]productRow),
		tags:        make(map[string]tagRow),
		productTags: make(map[string]map[string]struct{}),
	}
}

func (t tables) clone() tables {
	c := newTables()
	for k, v := range t.categories {
		c.categories[k] = v
	}
	for k, v := range t.products {
		c.products[k] = v
	}
	for k, v := range t.tags {
		c.tags[k] = v
	}
	for pid, set := range t.productTags {
		cs := make(map[string]struct{}, len(set))
		for tid := range set {
			cs[tid] = struct{}{}
		}
		c.productTags[pid] = cs
	}
	return c
}

// Store guarda las tablas detrás de un RWMutex. txMu serializa transacciones,
// escrituras y lecturas sueltas: un rollback nunca pisa escrituras ajenas y
// fuera de una transacción solo se ve lo confirmado.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data tables
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newTables()}
}

// Categories repositorio de categorías fuera de transacción.
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

// Tags repositorio de etiquetas fuera de transacción.
func (s *Store) Tags() *TagRepository { return &TagRepository{s: s} }

// write ejecuta fn con el lock de escritura. Fuera de transacción toma además
// txMu; dentro, Run ya lo tiene.
func (s *Store) write(ctx context.Context, inTx bool, fn func(t *tables) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !inTx {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

// read ejecuta fn con el lock de lectura. Fuera de transacción espera también a
// txMu: una lectura suelta nunca ve filas de una transacción sin confirmar.
func (s *Store) read(ctx context.Context, inTx bool, fn func(t *tables) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !inTx {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.data)
}

// ── Materialización ──────────────────────────────────────────────────────────

func (t *tables) category(id string) entity.Category {
	row := t.categories[id]
	return entity.Category{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}
}

func (t *tables) categoryByName(name string) (categoryRow, bool) {
	for _, row := range t.categories {
		if row.Name == name {
			return row, true
		}
	}
	return categoryRow{}, false
}

func (t *tables) productByName(name string) (productRow, bool) {
	for _, row := range t.products {
		if row.Name == name {
			return row, true
		}
	}
	return productRow{}, false
}

func (t *tables) tagByName(name string) (tagRow, bool) {
	for _, row := range t.tags {
		if row.Name == name {
			return row, true
		}
	}
	return tagRow{}, false
}

func (t *tables) productCount(tagID string) int {
	n := 0
	for _, set := range t.productTags {
		if _, ok := set[tagID]; ok {
			n++
		}
	}
	return n
}

func (t *tables) tag(row tagRow, withCount bool) *entity.Tag {
	tag := &entity.Tag{ID: row.ID, Name: row.Name, Description: row.Description, CreatedAt: row.CreatedAt}
	if withCount {
		tag.ProductCount = t.productCount(row.ID)
	}
	return tag
}

func (t *tables) product(row productRow) *entity.Product {
	p := &entity.Product{
		ID:            row.ID,
		Name:          row.Name,
		Price:         row.Price,
		StockQuantity: row.StockQuantity,
		Category:      t.category(row.CategoryID),
		Tags:          []entity.Tag{},
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	for tid := range t.productTags[row.ID] {
		p.Tags = append(p.Tags, *t.tag(t.tags[tid], false))
	}
	sort.Slice(p.Tags, func(i, j int) bool { return p.Tags[i].Name < p.Tags[j].Name })
	return p
}

// products materializa las filas que cumplen match, ordenadas por nombre.
func (t *tables) productsWhere(match func(productRow) bool) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, row := range t.products {
		if match(row) {
			out = append(out, t.product(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (t *tables) tagNamesOf(productID string) []string {
	names := make([]string, 0, len(t.productTags[productID]))
	for tid := range t.productTags[productID] {
		names = append(names, t.tags[tid].Name)
	}
	return names
}
