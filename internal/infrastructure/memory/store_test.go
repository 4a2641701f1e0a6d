package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-service/internal/domain"
	"github.com/jhoicas/product-service/internal/domain/entity"
	"github.com/jhoicas/product-service/internal/domain/repository"
	"github.com/jhoicas/product-service/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func seedCategory(t *testing.T, s *memory.Store, id, name string) entity.Category {
	t.Helper()
	c := entity.Category{ID: id, Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, s.Categories().Create(context.Background(), &c))
	return c
}

func seedTag(t *testing.T, s *memory.Store, id, name string) entity.Tag {
	t.Helper()
	tag := entity.Tag{ID: id, Name: name, CreatedAt: time.Now()}
	require.NoError(t, s.Tags().Create(context.Background(), &tag))
	return tag
}

func seedProduct(t *testing.T, s *memory.Store, id, name string, c entity.Category, tags ...entity.Tag) {
	t.Helper()
	p := entity.Product{ID: id, Name: name, Price: decimal.NewFromInt(10), Category: c, Tags: tags}
	require.NoError(t, s.Products().Create(context.Background(), &p))
}

// ──────────────────────────────────────────────────────────────────────────────
// Restricciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_NombreDuplicado(t *testing.T) {
	s := memory.NewStore()
	seedCategory(t, s, "c1", "Electronics")

	err := s.Categories().Create(context.Background(), &entity.Category{ID: "c2", Name: "Electronics"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestCategory_DeleteConProductos_NotEmpty(t *testing.T) {
	s := memory.NewStore()
	c := seedCategory(t, s, "c1", "Electronics")
	seedProduct(t, s, "p1", "Phone", c)

	err := s.Categories().DeleteByName(context.Background(), "Electronics")
	assert.True(t, errors.Is(err, domain.ErrNotEmpty))

	got, err := s.Categories().GetByName(context.Background(), "Electronics")
	require.NoError(t, err)
	assert.NotNil(t, got, "la categoría debe seguir existiendo")
}

func TestTag_DeleteDesvinculaProductos(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	c := seedCategory(t, s, "c1", "Electronics")
	a := seedTag(t, s, "t1", "A")
	b := seedTag(t, s, "t2", "B")
	seedProduct(t, s, "p1", "Phone", c, a, b)

	require.NoError(t, s.Tags().Delete(ctx, a.ID))

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"B"}, p.TagNames())
}

func TestTag_CreateIfAbsent(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	created, err := s.Tags().CreateIfAbsent(ctx, &entity.Tag{ID: "t1", Name: "A"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Tags().CreateIfAbsent(ctx, &entity.Tag{ID: "t2", Name: "A"})
	require.NoError(t, err)
	assert.False(t, created)
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsquedas
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_BusquedasPorEtiqueta(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	c := seedCategory(t, s, "c1", "Electronics")
	a := seedTag(t, s, "t1", "Alpha")
	b := seedTag(t, s, "t2", "Beta")
	seedProduct(t, s, "p1", "Both", c, a, b)
	seedProduct(t, s, "p2", "OnlyA", c, a)
	seedProduct(t, s, "p3", "None", c)

	names := func(ps []*entity.Product) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	union, err := s.Products().FindByTagNames(ctx, []string{"Alpha", "Beta"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Both", "OnlyA"}, names(union))

	all, err := s.Products().FindByAllTagNames(ctx, []string{"Alpha", "Beta"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Both"}, names(all))

	pattern, err := s.Products().FindByTagNameContaining(ctx, "eta")
	require.NoError(t, err)
	assert.Equal(t, []string{"Both"}, names(pattern))

	// El patrón distingue mayúsculas.
	pattern, err = s.Products().FindByTagNameContaining(ctx, "ETA")
	require.NoError(t, err)
	assert.Empty(t, pattern)

	count, err := s.Products().CountByCategoryName(ctx, "Electronics")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestTag_SearchByName_SinMayusculas(t *testing.T) {
	s := memory.NewStore()
	seedTag(t, s, "t1", "Outdoor")
	seedTag(t, s, "t2", "Indoor")
	seedTag(t, s, "t3", "Kitchen")

	got, err := s.Tags().SearchByName(context.Background(), "DOOR")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Indoor", got[0].Name)
	assert.Equal(t, "Outdoor", got[1].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_RollbackRestauraDatos(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	runner := memory.NewTxRunner(s)
	boom := errors.New("boom")

	err := runner.Run(ctx, func(cr repository.CategoryRepository, _ repository.ProductRepository, tr repository.TagRepository) error {
		require.NoError(t, cr.Create(ctx, &entity.Category{ID: "c1", Name: "Temp"}))
		require.NoError(t, tr.Create(ctx, &entity.Tag{ID: "t1", Name: "Temp"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	c, err := s.Categories().GetByName(ctx, "Temp")
	require.NoError(t, err)
	assert.Nil(t, c)
	exists, err := s.Tags().ExistsByName(ctx, "Temp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTxRunner_CommitConservaDatos(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	err := memory.NewTxRunner(s).Run(ctx, func(cr repository.CategoryRepository, _ repository.ProductRepository, _ repository.TagRepository) error {
		return cr.Create(ctx, &entity.Category{ID: "c1", Name: "Kept"})
	})
	require.NoError(t, err)

	list, err := s.Categories().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kept", list[0].Name)
}

func TestTxRunner_LecturaSueltaNoVeDatosSinConfirmar(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	boom := errors.New("boom")
	inserted := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)

	go func() {
		txDone <- memory.NewTxRunner(s).Run(ctx, func(_ repository.CategoryRepository, _ repository.ProductRepository, tr repository.TagRepository) error {
			if err := tr.Create(ctx, &entity.Tag{ID: "t1", Name: "Pending"}); err != nil {
				return err
			}
			close(inserted)
			<-release
			return boom
		})
	}()
	<-inserted

	type readResult struct {
		exists bool
		err    error
	}
	read := make(chan readResult, 1)
	go func() {
		exists, err := s.Tags().ExistsByName(ctx, "Pending")
		read <- readResult{exists, err}
	}()

	select {
	case r := <-read:
		t.Fatalf("la lectura no esperó a la transacción (exists=%v, err=%v)", r.exists, r.err)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	assert.ErrorIs(t, <-txDone, boom)
	r := <-read
	require.NoError(t, r.err)
	assert.False(t, r.exists)
}
