package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/product-service/internal/domain/entity"
	"github.com/jhoicas/product-service/internal/domain/repository"
)

// MockCategoryRepository mock de repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByNameForUpdate(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteByName(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// MockProductRepository mock de repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) one(args mock.Arguments) (*entity.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) list(args mock.Arguments) ([]*entity.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockProductRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return m.one(m.Called(ctx, name))
}

func (m *MockProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ListWithTags(ctx context.Context) ([]*entity.Product, error) {
	return m.list(m.Called(ctx))
}

func (m *MockProductRepository) ListByCategoryName(ctx context.Context, categoryName string) ([]*entity.Product, error) {
	return m.list(m.Called(ctx, categoryName))
}

func (m *MockProductRepository) CountByCategoryName(ctx context.Context, categoryName string) (int, error) {
	args := m.Called(ctx, categoryName)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) FindByTagNames(ctx context.Context, tagNames []string) ([]*entity.Product, error) {
	return m.list(m.Called(ctx, tagNames))
}

func (m *MockProductRepository) FindByAllTagNames(ctx context.Context, tagNames []string, tagCount int) ([]*entity.Product, error) {
	return m.list(m.Called(ctx, tagNames, tagCount))
}

func (m *MockProductRepository) FindByTagNameContaining(ctx context.Context, pattern string) ([]*entity.Product, error) {
	return m.list(m.Called(ctx, pattern))
}

func (m *MockProductRepository) FindByCategoryAndTagNames(ctx context.Context, categoryName string, tagNames []string) ([]*entity.Product, error) {
	return m.list(m.Called(ctx, categoryName, tagNames))
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockTagRepository mock de repository.TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *MockTagRepository) CreateIfAbsent(ctx context.Context, tag *entity.Tag) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) GetByName(ctx context.Context, name string) (*entity.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tag), args.Error(1)
}

func (m *MockTagRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) List(ctx context.Context) ([]*entity.Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.Tag), args.Error(1)
}

func (m *MockTagRepository) SearchByName(ctx context.Context, query string) ([]*entity.Tag, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]*entity.Tag), args.Error(1)
}

func (m *MockTagRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// fakeTx ejecuta fn con los mocks, sin transacción real. Cuenta las llamadas.
type fakeTx struct {
	categories *MockCategoryRepository
	products   *MockProductRepository
	tags       *MockTagRepository
	runs       int
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		categories: new(MockCategoryRepository),
		products:   new(MockProductRepository),
		tags:       new(MockTagRepository),
	}
}

func (f *fakeTx) Run(_ context.Context, fn func(
	repository.CategoryRepository,
	repository.ProductRepository,
	repository.TagRepository,
) error) error {
	f.runs++
	return fn(f.categories, f.products, f.tags)
}

func (f *fakeTx) assertExpectations(t mock.TestingT) {
	f.categories.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.tags.AssertExpectations(t)
}
