package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AcroChem-api/internal/application/catalog"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain"
)

// MaterialHandler maneja las peticiones HTTP del maestro de materias primas.
type MaterialHandler struct {
	uc *catalog.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *catalog.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Crear materia prima
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Datos del material (code inmutable)"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code, name, stock_uom y category válida son requeridos"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código de material ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByCode godoc
// @Summary      Obtener materia prima por código
// @Tags         materials
// @Produce      json
// @Param        code  path  string  true  "Código del material"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{code} [get]
func (h *MaterialHandler) GetByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	out, err := h.uc.GetByCode(c.Context(), code)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar materia prima
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código del material (inmutable)"
// @Param        body  body  dto.UpdateMaterialRequest  true  "Campos a actualizar; desactivar con active=false"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{code} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	code := c.Params("code")
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), code, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar materias primas
// @Tags         materials
// @Produce      json
// @Param        search  query  string  false  "Busca por código o nombre"
// @Param        active  query  bool    false  "Solo materiales activos"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MaterialListResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), c.Query("search"), c.QueryBool("active", false), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar materia prima
// @Description  Solo se eliminan materiales sin asientos en el libro ni líneas de fórmula; con referencias responde 409 (desactivar en su lugar).
// @Tags         materials
// @Produce      json
// @Param        code  path  string  true  "Código del material"
// @Success      204   "Sin contenido"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials/{code} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	code := c.Params("code")
	err := h.uc.Delete(c.Context(), code)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		if err == domain.ErrReferentialConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REFERENTIAL_CONFLICT", Message: "el material tiene movimientos o fórmulas que lo referencian; desactívelo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
