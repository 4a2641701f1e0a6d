package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Límites de las columnas de products: NUMERIC(12,2) e INTEGER.
const (
	PriceScale = 2
	MinStock   = math.MinInt32
	MaxStock   = math.MaxInt32
)

// MaxPriceExclusive primer precio que ya no cabe en NUMERIC(12,2).
var MaxPriceExclusive = decimal.New(1, 10)

// Product representa un producto del catálogo. Es el agregado que se devuelve
// materializado: Category y Tags vienen cargados por el repositorio en la misma
// llamada (sin carga perezosa).
type Product struct {
	ID            string
	Name          string          // único en el catálogo
	Price         decimal.Decimal // no negativo
	StockQuantity int             // puede quedar negativo tras un ajuste
	Category      Category
	Tags          []Tag // sin repetidos por ID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasTag informa si el producto tiene una etiqueta con ese nombre.
func (p *Product) HasTag(name string) bool {
	for _, t := range p.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// AddTags une tags al conjunto actual; la identidad es el ID de la etiqueta.
func (p *Product) AddTags(tags []Tag) {
	seen := make(map[string]struct{}, len(p.Tags)+len(tags))
	for _, t := range p.Tags {
		seen[t.ID] = struct{}{}
	}
	for _, t := range tags {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		p.Tags = append(p.Tags, t)
	}
}

// RemoveTagsByName quita del conjunto las etiquetas cuyo nombre esté en names.
func (p *Product) RemoveTagsByName(names []string) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	kept := p.Tags[:0]
	for _, t := range p.Tags {
		if _, ok := drop[t.Name]; ok {
			continue
		}
		kept = append(kept, t)
	}
	p.Tags = kept
}

// TagNames devuelve los nombres de las etiquetas en el orden actual.
func (p *Product) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}
