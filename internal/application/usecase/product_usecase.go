package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-service/internal/domain"
	"github.com/jhoicas/product-service/internal/domain/entity"
	"github.com/jhoicas/product-service/internal/domain/repository"
)

// ProductUseCase casos de uso para productos. Las escrituras con más de una
// sentencia (producto + vínculos con etiquetas) corren dentro de TxRunner.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// ProductPatch cambios parciales para UpdateByName. Nil = sin cambio.
type ProductPatch struct {
	NewName       *string
	CategoryName  *string
	Price         *decimal.Decimal
	StockQuantity *int
}

// GetAll lista todos los productos con sus etiquetas.
func (uc *ProductUseCase) GetAll(ctx context.Context) ([]*entity.Product, error) {
	return uc.repo.ListWithTags(ctx)
}

// GetByName obtiene un producto por nombre exacto.
func (uc *ProductUseCase) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	name = domain.NormalizeName(name)
	product, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFoundf("producto %q no encontrado", name)
	}
	return product, nil
}

// GetByID obtiene un producto por ID. Usa la misma clase NotFound que GetByName.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productIDNotFound(id)
	}
	return product, nil
}

// GetByCategory lista los productos cuya categoría se llama exactamente categoryName.
func (uc *ProductUseCase) GetByCategory(ctx context.Context, categoryName string) ([]*entity.Product, error) {
	return uc.repo.ListByCategoryName(ctx, domain.NormalizeName(categoryName))
}

// Add crea un producto sin etiquetas. product.Category.ID debe venir resuelto.
func (uc *ProductUseCase) Add(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	err := uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		productRepo repository.ProductRepository,
		_ repository.TagRepository,
	) error {
		return addProduct(ctx, productRepo, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// AddWithTags crea un producto y lo asocia a las etiquetas indicadas, creando las
// que no existan. Si el nombre del producto ya existe no se crea ninguna etiqueta.
func (uc *ProductUseCase) AddWithTags(ctx context.Context, product *entity.Product, tagNames []string) (*entity.Product, error) {
	err := uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		productRepo repository.ProductRepository,
		tagRepo repository.TagRepository,
	) error {
		if err := ensureProductNameFree(ctx, productRepo, domain.NormalizeName(product.Name)); err != nil {
			return err
		}
		tags, err := ReconcileTags(ctx, tagRepo, tagNames)
		if err != nil {
			return err
		}
		product.Tags = tags
		return addProduct(ctx, productRepo, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Update sobrescribe el producto por ID (nombre, precio, stock, categoría y etiquetas).
func (uc *ProductUseCase) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	err := uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		productRepo repository.ProductRepository,
		_ repository.TagRepository,
	) error {
		return saveProduct(ctx, productRepo, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateByName localiza el producto por su nombre actual y aplica patch.
func (uc *ProductUseCase) UpdateByName(ctx context.Context, currentName string, patch ProductPatch) (*entity.Product, error) {
	currentName = domain.NormalizeName(currentName)
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(
		categoryRepo repository.CategoryRepository,
		productRepo repository.ProductRepository,
		_ repository.TagRepository,
	) error {
		product, err := productRepo.GetByName(ctx, currentName)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFoundf("producto %q no encontrado", currentName)
		}
		if patch.NewName != nil {
			newName := domain.NormalizeName(*patch.NewName)
			if newName == "" {
				return domain.InvalidInputf("el nombre del producto es obligatorio")
			}
			if newName != product.Name {
				if err := ensureProductNameFree(ctx, productRepo, newName); err != nil {
					return err
				}
				product.Name = newName
			}
		}
		if patch.CategoryName != nil {
			name := domain.NormalizeName(*patch.CategoryName)
			category, err := categoryRepo.GetByName(ctx, name)
			if err != nil {
				return err
			}
			if category == nil {
				return categoryNotFound(name)
			}
			product.Category = *category
		}
		if patch.Price != nil {
			product.Price = *patch.Price
		}
		if patch.StockQuantity != nil {
			product.StockQuantity = *patch.StockQuantity
		}
		if err := saveProduct(ctx, productRepo, product); err != nil {
			return err
		}
		out = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AdjustStock suma delta (con signo) al stock del producto. No hay piso: el
// stock puede quedar negativo.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, name string, delta int) (*entity.Product, error) {
	name = domain.NormalizeName(name)
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		productRepo repository.ProductRepository,
		_ repository.TagRepository,
	) error {
		product, err := productRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFoundf("producto %q no encontrado", name)
		}
		// Comparar contra los márgenes evita desbordar la suma.
		if delta > entity.MaxStock-product.StockQuantity || delta < entity.MinStock-product.StockQuantity {
			return domain.InvalidInputf("el ajuste deja el stock fuera de [%d, %d]", entity.MinStock, entity.MaxStock)
		}
		if err := productRepo.AdjustStock(ctx, product.ID, delta); err != nil {
			return err
		}
		out, err = productRepo.GetByID(ctx, product.ID)
		if err != nil {
			return err
		}
		if out == nil {
			return productIDNotFound(product.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un producto por ID. Sus etiquetas y su categoría se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		productRepo repository.ProductRepository,
		_ repository.TagRepository,
	) error {
		exists, err := productRepo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return productIDNotFound(id)
		}
		return productRepo.Delete(ctx, id)
	})
}

// SearchByTags productos con al menos una de las etiquetas (unión).
func (uc *ProductUseCase) SearchByTags(ctx context.Context, tagNames []string) ([]*entity.Product, error) {
	tagNames = domain.NormalizeNames(tagNames)
	if len(tagNames) == 0 {
		return []*entity.Product{}, nil
	}
	return uc.repo.FindByTagNames(ctx, tagNames)
}

// SearchByAllTags productos que tienen todas las etiquetas (intersección).
// Los nombres se deduplican antes de contar, así ["A","A"] equivale a ["A"].
func (uc *ProductUseCase) SearchByAllTags(ctx context.Context, tagNames []string) ([]*entity.Product, error) {
	tagNames = domain.NormalizeNames(tagNames)
	if len(tagNames) == 0 {
		return []*entity.Product{}, nil
	}
	return uc.repo.FindByAllTagNames(ctx, tagNames, len(tagNames))
}

// SearchByTagPattern productos con alguna etiqueta que contenga pattern.
func (uc *ProductUseCase) SearchByTagPattern(ctx context.Context, pattern string) ([]*entity.Product, error) {
	return uc.repo.FindByTagNameContaining(ctx, pattern)
}

// Search combina filtro por categoría y por etiquetas (unión de etiquetas).
// Sin filtros devuelve todos los productos.
func (uc *ProductUseCase) Search(ctx context.Context, criteria entity.SearchCriteria) ([]*entity.Product, error) {
	categoryName := domain.NormalizeName(criteria.CategoryName)
	tagNames := domain.NormalizeNames(criteria.TagNames)
	switch {
	case categoryName != "" && len(tagNames) > 0:
		return uc.repo.FindByCategoryAndTagNames(ctx, categoryName, tagNames)
	case categoryName != "":
		return uc.repo.ListByCategoryName(ctx, categoryName)
	case len(tagNames) > 0:
		return uc.repo.FindByTagNames(ctx, tagNames)
	default:
		return uc.repo.ListWithTags(ctx)
	}
}

// AddTagsToProduct une al producto las etiquetas indicadas, creando las que falten.
func (uc *ProductUseCase) AddTagsToProduct(ctx context.Context, id string, tagNames []string) (*entity.Product, error) {
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		productRepo repository.ProductRepository,
		tagRepo repository.TagRepository,
	) error {
		product, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return productIDNotFound(id)
		}
		tags, err := ReconcileTags(ctx, tagRepo, tagNames)
		if err != nil {
			return err
		}
		product.AddTags(tags)
		if err := saveProduct(ctx, productRepo, product); err != nil {
			return err
		}
		out = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveTagsFromProduct quita del producto las etiquetas con esos nombres.
// Las etiquetas en sí no se eliminan.
func (uc *ProductUseCase) RemoveTagsFromProduct(ctx context.Context, id string, tagNames []string) (*entity.Product, error) {
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(
		_ repository.CategoryRepository,
		productRepo repository.ProductRepository,
		_ repository.TagRepository,
	) error {
		product, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return productIDNotFound(id)
		}
		product.RemoveTagsByName(domain.NormalizeNames(tagNames))
		if err := saveProduct(ctx, productRepo, product); err != nil {
			return err
		}
		out = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// addProduct valida, verifica unicidad del nombre y persiste.
func addProduct(ctx context.Context, productRepo repository.ProductRepository, product *entity.Product) error {
	product.Name = domain.NormalizeName(product.Name)
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := ensureProductNameFree(ctx, productRepo, product.Name); err != nil {
		return err
	}
	now := time.Now()
	product.ID = uuid.New().String()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return productExists(product.Name)
		}
		return err
	}
	return nil
}

// saveProduct valida y sobrescribe por ID.
func saveProduct(ctx context.Context, productRepo repository.ProductRepository, product *entity.Product) error {
	product.Name = domain.NormalizeName(product.Name)
	if err := validateProduct(product); err != nil {
		return err
	}
	product.UpdatedAt = time.Now()
	if err := productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return productExists(product.Name)
		}
		return err
	}
	return nil
}

func ensureProductNameFree(ctx context.Context, productRepo repository.ProductRepository, name string) error {
	existing, err := productRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil {
		return productExists(name)
	}
	return nil
}

func validateProduct(p *entity.Product) error {
	if p.Name == "" {
		return domain.InvalidInputf("el nombre del producto es obligatorio")
	}
	if p.Price.IsNegative() {
		return domain.InvalidInputf("el precio no puede ser negativo")
	}
	if !p.Price.Equal(p.Price.Round(entity.PriceScale)) {
		return domain.InvalidInputf("el precio admite como máximo %d decimales", entity.PriceScale)
	}
	if p.Price.GreaterThanOrEqual(entity.MaxPriceExclusive) {
		return domain.InvalidInputf("el precio debe ser menor que %s", entity.MaxPriceExclusive)
	}
	if err := validateStock(p.StockQuantity); err != nil {
		return err
	}
	if p.Category.ID == "" {
		return domain.InvalidInputf("la categoría del producto es obligatoria")
	}
	return nil
}

func validateStock(stock int) error {
	if stock < entity.MinStock || stock > entity.MaxStock {
		return domain.InvalidInputf("el stock debe estar entre %d y %d", entity.MinStock, entity.MaxStock)
	}
	return nil
}

func productIDNotFound(id string) error {
	return domain.NotFoundf("producto con id %s no encontrado", id)
}

func productExists(name string) error {
	return domain.AlreadyExistsf("el producto %q ya existe", name)
}
