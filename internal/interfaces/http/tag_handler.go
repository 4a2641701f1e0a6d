package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/product-service/internal/application/dto"
	"github.com/jhoicas/product-service/internal/application/usecase"
	"github.com/jhoicas/product-service/internal/domain/entity"
)

// TagHandler maneja las peticiones HTTP para Tag.
type TagHandler struct {
	uc *usecase.TagUseCase
}

// NewTagHandler construye el handler.
func NewTagHandler(uc *usecase.TagUseCase) *TagHandler {
	return &TagHandler{uc: uc}
}

// List godoc
// @Summary      Listar etiquetas con número de productos
// @Tags         tags
// @Produce      json
// @Success      200  {array}  dto.TagResponse
// @Router       /tags [get]
func (h *TagHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.ToTagResponses(list))
}

// Search godoc
// @Summary      Buscar etiquetas por subcadena (sin distinguir mayúsculas)
// @Tags         tags
// @Produce      json
// @Param        q  query  string  false  "Texto a buscar"
// @Success      200  {array}  dto.TagResponse
// @Router       /tags/search [get]
func (h *TagHandler) Search(c *fiber.Ctx) error {
	list, err := h.uc.SearchByName(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ToTagResponses(list))
}

// GetByName godoc
// @Summary      Obtener etiqueta por nombre
// @Tags         tags
// @Produce      json
// @Param        name  path  string  true  "Nombre de la etiqueta"
// @Success      200   {object}  dto.TagResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /tags/{name} [get]
func (h *TagHandler) GetByName(c *fiber.Ctx) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return err
	}
	tag, err := h.uc.GetByName(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(dto.ToTagResponse(tag))
}

// Create godoc
// @Summary      Crear etiqueta
// @Tags         tags
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTagRequest  true  "Datos de la etiqueta"
// @Success      201   {object}  dto.TagResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /tags [post]
func (h *TagHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTagRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	tag, err := h.uc.Create(c.UserContext(), &entity.Tag{Name: in.Name, Description: in.Description})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTagResponse(tag))
}

// Delete godoc
// @Summary      Eliminar etiqueta (se desvincula de sus productos)
// @Tags         tags
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID de la etiqueta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tags/{id} [delete]
func (h *TagHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Etiqueta eliminada"})
}
