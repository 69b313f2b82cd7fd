package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/application/stocktake"
	"github.com/jhoicas/AcroChem-api/internal/domain"
)

// StocktakeHandler maneja conteos físicos y su historial.
type StocktakeHandler struct {
	uc *stocktake.UseCase
}

// NewStocktakeHandler construye el handler.
func NewStocktakeHandler(uc *stocktake.UseCase) *StocktakeHandler {
	return &StocktakeHandler{uc: uc}
}

// Post godoc
// @Summary      Conciliar un conteo físico
// @Description  Registra el conteo contra el saldo del sistema al momento de la conciliación; si la varianza no es despreciable asienta un movimiento STOCKTAKE en la misma transacción.
// @Tags         stocktakes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostStocktakeRequest  true  "material_code y counted_qty en unidades de stock"
// @Success      201   {object}  dto.StocktakeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocktakes [post]
func (h *StocktakeHandler) Post(c *fiber.Ctx) error {
	var in dto.PostStocktakeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Reconcile(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "material_code y counted_qty no negativa son requeridos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de conteos físicos
// @Tags         stocktakes
// @Produce      json
// @Param        material_code  query  string  false  "Filtrar por material"
// @Param        limit          query  int     false  "Tamaño de página (máx 500)"
// @Param        offset         query  int     false  "Desplazamiento"
// @Success      200   {object}  dto.StocktakeListResponse
// @Router       /api/stocktakes [get]
func (h *StocktakeHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.ListRecords(c.Context(), c.Query("material_code"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
