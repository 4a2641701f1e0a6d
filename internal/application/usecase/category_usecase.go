package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/product-service/internal/domain"
	"github.com/jhoicas/product-service/internal/domain/entity"
	"github.com/jhoicas/product-service/internal/domain/repository"
)

// CategoryUseCase casos de uso para categorías.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	txRunner TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, txRunner TxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, txRunner: txRunner}
}

// GetByName obtiene una categoría por nombre exacto.
func (uc *CategoryUseCase) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	name = domain.NormalizeName(name)
	category, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, categoryNotFound(name)
	}
	return category, nil
}

// GetAll lista todas las categorías.
func (uc *CategoryUseCase) GetAll(ctx context.Context) ([]*entity.Category, error) {
	return uc.repo.List(ctx)
}

// Add crea una categoría. Si el nombre ya existe devuelve AlreadyExists sin escribir.
func (uc *CategoryUseCase) Add(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	category.Name = domain.NormalizeName(category.Name)
	if category.Name == "" {
		return nil, domain.InvalidInputf("el nombre de la categoría es obligatorio")
	}
	existing, err := uc.repo.GetByName(ctx, category.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, categoryExists(category.Name)
	}
	now := time.Now()
	category.ID = uuid.New().String()
	category.CreatedAt = now
	category.UpdatedAt = now
	if err := uc.repo.Create(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, categoryExists(category.Name)
		}
		return nil, err
	}
	return category, nil
}

// DeleteByName elimina una categoría vacía.
// Orden de validación: primero productos asociados (NotEmpty), después existencia
// (NotFound). Todo ocurre en una transacción con la fila de la categoría
// bloqueada; la FK products.category_id (RESTRICT) cubre el hueco entre el
// conteo y el borrado.
func (uc *CategoryUseCase) DeleteByName(ctx context.Context, name string) error {
	name = domain.NormalizeName(name)
	return uc.txRunner.Run(ctx, func(
		categoryRepo repository.CategoryRepository,
		productRepo repository.ProductRepository,
		_ repository.TagRepository,
	) error {
		count, err := productRepo.CountByCategoryName(ctx, name)
		if err != nil {
			return err
		}
		if count > 0 {
			return categoryNotEmpty(name, count)
		}
		category, err := categoryRepo.GetByNameForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if category == nil {
			return categoryNotFound(name)
		}
		if err := categoryRepo.DeleteByName(ctx, name); err != nil {
			if errors.Is(err, domain.ErrNotEmpty) {
				return categoryNotEmpty(name, 1)
			}
			return err
		}
		return nil
	})
}

func categoryNotFound(name string) error {
	return domain.NotFoundf("categoría %q no encontrada", name)
}

func categoryExists(name string) error {
	return domain.AlreadyExistsf("la categoría %q ya existe", name)
}

func categoryNotEmpty(name string, count int) error {
	return domain.NewError(domain.KindNotEmpty, "la categoría %q tiene %d producto(s) asociados", name, count)
}
