package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/product-service/internal/application/dto"
	"github.com/jhoicas/product-service/internal/application/usecase"
	"github.com/jhoicas/product-service/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP para Product. Usa CategoryUseCase
// para resolver categoryName a la categoría existente.
type ProductHandler struct {
	uc         *usecase.ProductUseCase
	categoryUC *usecase.CategoryUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, categoryUC *usecase.CategoryUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, categoryUC: categoryUC}
}

// List godoc
// @Summary      Listar productos con sus etiquetas
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return h.respondList(c)(h.uc.GetAll(c.UserContext()))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return h.respondOne(c, fiber.StatusOK)(h.uc.GetByID(c.UserContext(), id))
}

// GetByName godoc
// @Summary      Obtener producto por nombre
// @Tags         products
// @Produce      json
// @Param        name  path  string  true  "Nombre del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products/name/{name} [get]
func (h *ProductHandler) GetByName(c *fiber.Ctx) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return err
	}
	return h.respondOne(c, fiber.StatusOK)(h.uc.GetByName(c.UserContext(), name))
}

// ListByCategory godoc
// @Summary      Listar productos de una categoría
// @Tags         products
// @Produce      json
// @Param        name  path  string  true  "Nombre de la categoría"
// @Success      200   {array}   dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products/category/{name} [get]
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return err
	}
	if _, err := h.categoryUC.GetByName(c.UserContext(), name); err != nil {
		return err
	}
	return h.respondList(c)(h.uc.GetByCategory(c.UserContext(), name))
}

// Create godoc
// @Summary      Crear producto (las etiquetas inexistentes se crean)
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	ctx := c.UserContext()
	category, err := h.categoryUC.GetByName(ctx, in.CategoryName)
	if err != nil {
		return err
	}
	product := &entity.Product{
		Name:          in.ProductName,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Category:      *category,
	}
	if len(in.TagNames) > 0 {
		return h.respondOne(c, fiber.StatusCreated)(h.uc.AddWithTags(ctx, product, in.TagNames))
	}
	return h.respondOne(c, fiber.StatusCreated)(h.uc.Add(ctx, product))
}

// Update godoc
// @Summary      Actualizar producto por nombre actual
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProductRequest  true  "Cambios (campos omitidos no se modifican)"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /products [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	patch := usecase.ProductPatch{
		NewName:       in.NewProductName,
		CategoryName:  in.CategoryName,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
	}
	return h.respondOne(c, fiber.StatusOK)(h.uc.UpdateByName(c.UserContext(), in.CurrentProductName, patch))
}

// Delete godoc
// @Summary      Eliminar producto por nombre
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeleteProductRequest  true  "Producto a eliminar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	ctx := c.UserContext()
	product, err := h.uc.GetByName(ctx, in.ProductName)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(ctx, product.ID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Producto eliminado."})
}

// AdjustInventory godoc
// @Summary      Ajustar stock con un delta con signo
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "Producto y delta"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products/inventory [patch]
func (h *ProductHandler) AdjustInventory(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	return h.respondOne(c, fiber.StatusOK)(h.uc.AdjustStock(c.UserContext(), in.ProductName, *in.InventoryChange))
}

// Search godoc
// @Summary      Buscar por categoría y/o etiquetas
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SearchProductsRequest  true  "Criterios"
// @Success      200   {array}   dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /products/search [post]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchProductsRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	criteria := entity.SearchCriteria{CategoryName: in.CategoryName, TagNames: in.TagNames}
	return h.respondList(c)(h.uc.Search(c.UserContext(), criteria))
}

// SearchByTags godoc
// @Summary      Productos con al menos una de las etiquetas
// @Tags         products
// @Produce      json
// @Param        tags  query  []string  false  "Etiquetas (repetidas o separadas por coma)"  collectionFormat(multi)
// @Success      200   {array}  dto.ProductResponse
// @Router       /products/search/tags [get]
func (h *ProductHandler) SearchByTags(c *fiber.Ctx) error {
	return h.respondList(c)(h.uc.SearchByTags(c.UserContext(), queryList(c, "tags")))
}

// SearchByAllTags godoc
// @Summary      Productos que tienen todas las etiquetas
// @Tags         products
// @Produce      json
// @Param        tags  query  []string  false  "Etiquetas (repetidas o separadas por coma)"  collectionFormat(multi)
// @Success      200   {array}  dto.ProductResponse
// @Router       /products/search/all-tags [get]
func (h *ProductHandler) SearchByAllTags(c *fiber.Ctx) error {
	return h.respondList(c)(h.uc.SearchByAllTags(c.UserContext(), queryList(c, "tags")))
}

// SearchByTagPattern godoc
// @Summary      Productos con alguna etiqueta que contenga el patrón
// @Tags         products
// @Produce      json
// @Param        pattern  query  string  false  "Subcadena (distingue mayúsculas)"
// @Success      200      {array}  dto.ProductResponse
// @Router       /products/search/tag-pattern [get]
func (h *ProductHandler) SearchByTagPattern(c *fiber.Ctx) error {
	return h.respondList(c)(h.uc.SearchByTagPattern(c.UserContext(), c.Query("pattern")))
}

// AddTags godoc
// @Summary      Agregar etiquetas a un producto (crea las que falten)
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string    true  "ID del producto"
// @Param        body  body  []string  true  "Nombres de etiqueta"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products/{id}/tags [post]
func (h *ProductHandler) AddTags(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	names, err := parseNameList(c)
	if err != nil {
		return err
	}
	return h.respondOne(c, fiber.StatusOK)(h.uc.AddTagsToProduct(c.UserContext(), id, names))
}

// RemoveTags godoc
// @Summary      Quitar etiquetas de un producto
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string    true  "ID del producto"
// @Param        body  body  []string  true  "Nombres de etiqueta"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /products/{id}/tags [delete]
func (h *ProductHandler) RemoveTags(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	names, err := parseNameList(c)
	if err != nil {
		return err
	}
	return h.respondOne(c, fiber.StatusOK)(h.uc.RemoveTagsFromProduct(c.UserContext(), id, names))
}

func (h *ProductHandler) respondOne(c *fiber.Ctx, status int) func(*entity.Product, error) error {
	return func(p *entity.Product, err error) error {
		if err != nil {
			return err
		}
		return c.Status(status).JSON(dto.ToProductResponse(p))
	}
}

func (h *ProductHandler) respondList(c *fiber.Ctx) func([]*entity.Product, error) error {
	return func(list []*entity.Product, err error) error {
		if err != nil {
			return err
		}
		return c.JSON(dto.ToProductResponses(list))
	}
}
