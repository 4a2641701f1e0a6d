package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-service/internal/application/usecase"
	"github.com/jhoicas/product-service/internal/domain"
	"github.com/jhoicas/product-service/internal/domain/entity"
)

var electronics = entity.Category{ID: "c1", Name: "Electronics"}

func newPhone() *entity.Product {
	return &entity.Product{Name: "Phone", Price: decimal.NewFromInt(599), StockQuantity: 3, Category: electronics}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestProductAdd_DuplicadoNoLlamaCreate(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()

	tx.products.On("GetByName", ctx, "Phone").Return(&entity.Product{ID: "p1", Name: "Phone"}, nil)

	_, err := uc.Add(ctx, newPhone())
	assert.Equal(t, domain.KindAlreadyExists, domain.KindOf(err))
	tx.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductAdd_PrecioNegativo(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	p := newPhone()
	p.Price = decimal.NewFromInt(-1)

	_, err := uc.Add(context.Background(), p)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	tx.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductAdd_ValoresFueraDeLasColumnas(t *testing.T) {
	tests := []struct {
		name  string
		price decimal.Decimal
		stock int
	}{
		{"tres decimales", decimal.RequireFromString("0.005"), 1},
		{"precio en el límite", decimal.New(1, 10), 1},
		{"precio enorme", decimal.New(1, 12), 1},
		{"stock sobre int32", decimal.NewFromInt(1), 3_000_000_000},
		{"stock bajo int32", decimal.NewFromInt(1), -3_000_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := newFakeTx()
			uc := usecase.NewProductUseCase(tx.products, tx)
			p := newPhone()
			p.Price = tt.price
			p.StockQuantity = tt.stock

			_, err := uc.Add(context.Background(), p)
			assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
			tx.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProductAdd_PrecioMaximoConCerosDeMas(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()
	p := newPhone()
	p.Price = decimal.RequireFromString("9999999999.990")

	tx.products.On("GetByName", ctx, "Phone").Return(nil, nil)
	tx.products.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	_, err := uc.Add(ctx, p)
	require.NoError(t, err)
	tx.assertExpectations(t)
}

func TestProductAdd_AsignaIDYFechas(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()

	tx.products.On("GetByName", ctx, "Phone").Return(nil, nil)
	tx.products.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	got, err := uc.Add(ctx, newPhone())
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, 1, tx.runs)
	tx.assertExpectations(t)
}

func TestProductAddWithTags_DuplicadoNoCreaEtiquetas(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()

	tx.products.On("GetByName", ctx, "Phone").Return(&entity.Product{ID: "p1", Name: "Phone"}, nil)

	_, err := uc.AddWithTags(ctx, newPhone(), []string{"New"})
	assert.Equal(t, domain.KindAlreadyExists, domain.KindOf(err))
	tx.tags.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
	tx.tags.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestProductAddWithTags_AsociaEtiquetas(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()
	sale := &entity.Tag{ID: "t1", Name: "Sale"}

	tx.products.On("GetByName", ctx, "Phone").Return(nil, nil)
	tx.tags.On("GetByName", ctx, "Sale").Return(sale, nil)
	tx.products.On("Create", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return len(p.Tags) == 1 && p.Tags[0].ID == "t1"
	})).Return(nil)

	got, err := uc.AddWithTags(ctx, newPhone(), []string{"Sale", "Sale"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sale"}, got.TagNames())
	tx.assertExpectations(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Modificación
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdateByName_RenombrarAOcupadoEsConflicto(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()
	newName := "Tablet"

	tx.products.On("GetByName", ctx, "Phone").Return(&entity.Product{ID: "p1", Name: "Phone", Category: electronics}, nil)
	tx.products.On("GetByName", ctx, "Tablet").Return(&entity.Product{ID: "p2", Name: "Tablet"}, nil)

	_, err := uc.UpdateByName(ctx, "Phone", usecase.ProductPatch{NewName: &newName})
	assert.Equal(t, domain.KindAlreadyExists, domain.KindOf(err))
	tx.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductUpdateByName_SoloCambiaLoIndicado(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()
	price := decimal.NewFromInt(700)
	current := &entity.Product{ID: "p1", Name: "Phone", Price: decimal.NewFromInt(599), StockQuantity: 3, Category: electronics}

	tx.products.On("GetByName", ctx, "Phone").Return(current, nil)
	tx.products.On("Update", ctx, mock.Anything).Return(nil)

	got, err := uc.UpdateByName(ctx, "Phone", usecase.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(price))
	assert.Equal(t, 3, got.StockQuantity)
	assert.Equal(t, "Phone", got.Name)
	assert.Equal(t, "Electronics", got.Category.Name)
}

func TestProductUpdateByName_CategoriaInexistente(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()
	category := "Nope"

	tx.products.On("GetByName", ctx, "Phone").Return(&entity.Product{ID: "p1", Name: "Phone", Category: electronics}, nil)
	tx.categories.On("GetByName", ctx, "Nope").Return(nil, nil)

	_, err := uc.UpdateByName(ctx, "Phone", usecase.ProductPatch{CategoryName: &category})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestProductAdjustStock_SinPiso(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()

	tx.products.On("GetByName", ctx, "Phone").Return(&entity.Product{ID: "p1", Name: "Phone", StockQuantity: 1}, nil)
	tx.products.On("AdjustStock", ctx, "p1", -5).Return(nil)
	tx.products.On("GetByID", ctx, "p1").Return(&entity.Product{ID: "p1", Name: "Phone", StockQuantity: -4}, nil)

	got, err := uc.AdjustStock(ctx, "Phone", -5)
	require.NoError(t, err)
	assert.Equal(t, -4, got.StockQuantity)
	tx.assertExpectations(t)
}

func TestProductAdjustStock_FueraDeRangoNoEscribe(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()

	tx.products.On("GetByName", ctx, "Phone").Return(&entity.Product{ID: "p1", Name: "Phone", StockQuantity: 2_000_000_000}, nil)

	_, err := uc.AdjustStock(ctx, "Phone", 2_000_000_000)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	_, err = uc.AdjustStock(ctx, "Phone", math.MinInt)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	tx.products.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductDelete_Inexistente(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()

	tx.products.On("ExistsByID", ctx, "p1").Return(false, nil)

	err := uc.Delete(ctx, "p1")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	tx.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsquedas
// ──────────────────────────────────────────────────────────────────────────────

func TestProductSearchByAllTags_DeduplicaAntesDeContar(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()

	tx.products.On("FindByAllTagNames", ctx, []string{"A", "B"}, 2).Return([]*entity.Product{}, nil)

	_, err := uc.SearchByAllTags(ctx, []string{"A", "A", " B", ""})
	require.NoError(t, err)
	tx.assertExpectations(t)
}

func TestProductSearchByTags_ListaVaciaNoConsulta(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)

	got, err := uc.SearchByTags(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	got, err = uc.SearchByAllTags(context.Background(), []string{"  "})
	require.NoError(t, err)
	assert.Empty(t, got)
	tx.products.AssertNotCalled(t, "FindByTagNames", mock.Anything, mock.Anything)
	tx.products.AssertNotCalled(t, "FindByAllTagNames", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductSearch_EligeConsultaSegunCriterio(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name     string
		criteria entity.SearchCriteria
		setup    func(m *MockProductRepository)
	}{
		{
			name:     "categoría y etiquetas",
			criteria: entity.SearchCriteria{CategoryName: "Electronics", TagNames: []string{"Sale"}},
			setup: func(m *MockProductRepository) {
				m.On("FindByCategoryAndTagNames", ctx, "Electronics", []string{"Sale"}).Return([]*entity.Product{}, nil)
			},
		},
		{
			name:     "solo categoría",
			criteria: entity.SearchCriteria{CategoryName: "Electronics"},
			setup: func(m *MockProductRepository) {
				m.On("ListByCategoryName", ctx, "Electronics").Return([]*entity.Product{}, nil)
			},
		},
		{
			name:     "solo etiquetas",
			criteria: entity.SearchCriteria{TagNames: []string{"Sale"}},
			setup: func(m *MockProductRepository) {
				m.On("FindByTagNames", ctx, []string{"Sale"}).Return([]*entity.Product{}, nil)
			},
		},
		{
			name:     "sin filtros",
			criteria: entity.SearchCriteria{},
			setup: func(m *MockProductRepository) {
				m.On("ListWithTags", ctx).Return([]*entity.Product{}, nil)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := newFakeTx()
			tc.setup(tx.products)
			uc := usecase.NewProductUseCase(tx.products, tx)

			_, err := uc.Search(ctx, tc.criteria)
			require.NoError(t, err)
			tx.assertExpectations(t)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Etiquetas de un producto
// ──────────────────────────────────────────────────────────────────────────────

func TestProductAddTags_UneSinRepetir(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()
	mobile := entity.Tag{ID: "t1", Name: "Mobile"}
	sale := &entity.Tag{ID: "t2", Name: "Sale"}
	current := &entity.Product{ID: "p1", Name: "Phone", Category: electronics, Tags: []entity.Tag{mobile}}

	tx.products.On("GetByID", ctx, "p1").Return(current, nil)
	tx.tags.On("GetByName", ctx, "Mobile").Return(&mobile, nil)
	tx.tags.On("GetByName", ctx, "Sale").Return(sale, nil)
	tx.products.On("Update", ctx, mock.Anything).Return(nil)

	got, err := uc.AddTagsToProduct(ctx, "p1", []string{"Sale", "Mobile"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mobile", "Sale"}, got.TagNames())
}

func TestProductRemoveTags_NoBorraEtiquetas(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()
	current := &entity.Product{ID: "p1", Name: "Phone", Category: electronics, Tags: []entity.Tag{
		{ID: "t1", Name: "Mobile"}, {ID: "t2", Name: "Sale"},
	}}

	tx.products.On("GetByID", ctx, "p1").Return(current, nil)
	tx.products.On("Update", ctx, mock.Anything).Return(nil)

	got, err := uc.RemoveTagsFromProduct(ctx, "p1", []string{"Mobile", "Unknown"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sale"}, got.TagNames())
	tx.tags.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductAddTags_ProductoInexistente(t *testing.T) {
	tx := newFakeTx()
	uc := usecase.NewProductUseCase(tx.products, tx)
	ctx := context.Background()

	tx.products.On("GetByID", ctx, "p1").Return(nil, nil)

	_, err := uc.AddTagsToProduct(ctx, "p1", []string{"A"})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
