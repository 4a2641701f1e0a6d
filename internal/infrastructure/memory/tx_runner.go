package memory

import (
	"context"

	"github.com/jhoicas/product-service/internal/application/usecase"
	"github.com/jhoicas/product-service/internal/domain/repository"
)

// TxRunner ejecuta fn con acceso exclusivo al store. Si fn falla se restauran
// las tablas tal como estaban al entrar.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner sobre s.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

var _ usecase.TxRunner = (*TxRunner)(nil)

// Run implementa usecase.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	tagRepo repository.TagRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.RLock()
	snapshot := r.s.data.clone()
	r.s.mu.RUnlock()

	err := fn(
		&CategoryRepository{s: r.s, inTx: true},
		&ProductRepository{s: r.s, inTx: true},
		&TagRepository{s: r.s, inTx: true},
	)
	if err != nil {
		r.s.mu.Lock()
		r.s.data = snapshot
		r.s.mu.Unlock()
		return err
	}
	return nil
}
