package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/product-service/internal/application/dto"
	"github.com/jhoicas/product-service/internal/application/usecase"
	"github.com/jhoicas/product-service/internal/domain/entity"
)

// CategoryHandler maneja las peticiones HTTP para Category.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.ToCategoryResponses(list))
}

// GetByName godoc
// @Summary      Obtener categoría por nombre
// @Tags         categories
// @Produce      json
// @Param        name  path  string  true  "Nombre de la categoría"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /categories/{name} [get]
func (h *CategoryHandler) GetByName(c *fiber.Ctx) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return err
	}
	category, err := h.uc.GetByName(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(dto.ToCategoryResponse(category))
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	category, err := h.uc.Add(c.UserContext(), &entity.Category{Name: in.Name})
	if err != nil {
		return err
	}
	// 200 y no 201: así respondía la API de categorías desde siempre.
	return c.Status(fiber.StatusOK).JSON(dto.ToCategoryResponse(category))
}

// Delete godoc
// @Summary      Eliminar categoría vacía
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        name  path  string  true  "Nombre de la categoría"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /categories/{name} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteByName(c.UserContext(), name); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Categoría eliminada"})
}
