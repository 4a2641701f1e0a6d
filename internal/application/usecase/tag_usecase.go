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

// TagUseCase casos de uso para etiquetas.
type TagUseCase struct {
	repo     repository.TagRepository
	txRunner TxRunner
}

// NewTagUseCase construye el caso de uso.
func NewTagUseCase(repo repository.TagRepository, txRunner TxRunner) *TagUseCase {
	return &TagUseCase{repo: repo, txRunner: txRunner}
}

// GetAll lista las etiquetas con su número de productos.
func (uc *TagUseCase) GetAll(ctx context.Context) ([]*entity.Tag, error) {
	return uc.repo.List(ctx)
}

// GetByName obtiene una etiqueta por nombre exacto.
func (uc *TagUseCase) GetByName(ctx context.Context, name string) (*entity.Tag, error) {
	name = domain.NormalizeName(name)
	tag, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, domain.NotFoundf("etiqueta %q no encontrada", name)
	}
	return tag, nil
}

// SearchByName busca etiquetas cuyo nombre contenga query, sin distinguir mayúsculas.
func (uc *TagUseCase) SearchByName(ctx context.Context, query string) ([]*entity.Tag, error) {
	return uc.repo.SearchByName(ctx, query)
}

// Create crea una etiqueta explícita. Un nombre repetido es entrada inválida
// (400), no conflicto.
func (uc *TagUseCase) Create(ctx context.Context, tag *entity.Tag) (*entity.Tag, error) {
	tag.Name = domain.NormalizeName(tag.Name)
	if tag.Name == "" {
		return nil, domain.InvalidInputf("el nombre de la etiqueta es obligatorio")
	}
	exists, err := uc.repo.ExistsByName(ctx, tag.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, tagExists(tag.Name)
	}
	tag.ID = uuid.New().String()
	tag.CreatedAt = time.Now()
	tag.ProductCount = 0
	if err := uc.repo.Create(ctx, tag); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, tagExists(tag.Name)
		}
		return nil, err
	}
	return tag, nil
}

// Delete elimina la etiqueta por ID y la desvincula de los productos que la usen.
func (uc *TagUseCase) Delete(ctx context.Context, id string) error {
	exists, err := uc.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NotFoundf("etiqueta con id %s no encontrada", id)
	}
	return uc.repo.Delete(ctx, id)
}

// GetOrCreateTags resuelve nombres a etiquetas creando las faltantes, en una
// sola transacción.
func (uc *TagUseCase) GetOrCreateTags(ctx context.Context, names []string) ([]entity.Tag, error) {
	var out []entity.Tag
	err := uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		_ repository.ProductRepository,
		tagRepo repository.TagRepository,
	) error {
		tags, err := ReconcileTags(ctx, tagRepo, names)
		if err != nil {
			return err
		}
		out = tags
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func tagExists(name string) error {
	return domain.InvalidInputf("la etiqueta %q ya existe", name)
}
