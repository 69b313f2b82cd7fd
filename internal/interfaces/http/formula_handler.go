package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AcroChem-api/internal/application/catalog"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain"
)

// FormulaHandler maneja las peticiones HTTP de fórmulas (BOM) por producto.
type FormulaHandler struct {
	uc *catalog.FormulaUseCase
}

// NewFormulaHandler construye el handler.
func NewFormulaHandler(uc *catalog.FormulaUseCase) *FormulaHandler {
	return &FormulaHandler{uc: uc}
}

// Get godoc
// @Summary      Fórmula de un producto
// @Tags         formulas
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200   {object}  dto.FormulaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{code}/formula [get]
func (h *FormulaHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("code"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Replace godoc
// @Summary      Reemplazar la fórmula completa
// @Description  Sustituye todas las líneas de forma atómica; un arreglo vacío deja el producto sin fórmula.
// @Tags         formulas
// @Accept       json
// @Produce      json
// @Param        code  path  string                   true  "Código del producto"
// @Param        body  body  []dto.FormulaLineRequest true  "Líneas nuevas"
// @Success      200   {object}  dto.FormulaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{code}/formula [put]
func (h *FormulaHandler) Replace(c *fiber.Ctx) error {
	var in []dto.FormulaLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera un arreglo de líneas"})
	}
	out, err := h.uc.Replace(c.Context(), c.Params("code"), in)
	if err != nil {
		return formulaError(c, err)
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar línea a la fórmula
// @Tags         formulas
// @Accept       json
// @Produce      json
// @Param        code  path  string                 true  "Código del producto"
// @Param        body  body  dto.FormulaLineRequest true  "material_code, qty_per_batch, uom (stock o salida del material)"
// @Success      201   {object}  dto.FormulaLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{code}/formula/lines [post]
func (h *FormulaHandler) AddLine(c *fiber.Ctx) error {
	var in dto.FormulaLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddLine(c.Context(), c.Params("code"), in)
	if err != nil {
		return formulaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLine godoc
// @Summary      Corregir una línea de la fórmula
// @Tags         formulas
// @Accept       json
// @Produce      json
// @Param        code           path  string                 true  "Código del producto"
// @Param        material_code  path  string                 true  "Material de la línea"
// @Param        body           body  dto.FormulaLineRequest true  "qty_per_batch y uom nuevos"
// @Success      200   {object}  dto.FormulaLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{code}/formula/lines/{material_code} [put]
func (h *FormulaHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.FormulaLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.MaterialCode = c.Params("material_code")
	out, err := h.uc.UpdateLine(c.Context(), c.Params("code"), in)
	if err != nil {
		return formulaError(c, err)
	}
	return c.JSON(out)
}

// RemoveLine godoc
// @Summary      Quitar un material de la fórmula
// @Tags         formulas
// @Produce      json
// @Param        code           path  string  true  "Código del producto"
// @Param        material_code  path  string  true  "Material a quitar"
// @Success      204   "Sin contenido"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{code}/formula/lines/{material_code} [delete]
func (h *FormulaHandler) RemoveLine(c *fiber.Ctx) error {
	err := h.uc.RemoveLine(c.Context(), c.Params("code"), c.Params("material_code"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// formulaError mapeo común de errores de fórmula a HTTP.
func formulaError(c *fiber.Ctx, err error) error {
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "material_code, qty_per_batch positiva y uom del material son requeridos"})
	}
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto, material o línea no encontrado"})
	}
	if err == domain.ErrDuplicate {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el material ya tiene línea en esta fórmula"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
