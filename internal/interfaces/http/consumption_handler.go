package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/application/consumption"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain"
)

// ConsumptionHandler maneja proyección, costeo y registro de consumos por
// fórmula (lotes de producción y ventas directas).
type ConsumptionHandler struct {
	uc *consumption.UseCase
}

// NewConsumptionHandler construye el handler.
func NewConsumptionHandler(uc *consumption.UseCase) *ConsumptionHandler {
	return &ConsumptionHandler{uc: uc}
}

// Post godoc
// @Summary      Registrar el consumo de un lote
// @Description  Una salida por línea de fórmula, cada una en su propia transacción. Si una línea falla por stock insuficiente las restantes no se intentan y la respuesta es 409 con el detalle por línea; las ya confirmadas no se revierten.
// @Tags         consumptions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostConsumptionRequest  true  "product_code, batch_multiplier, ref_type BATCH|SALE"
// @Success      201   {object}  dto.ConsumptionResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ConsumptionResult  "Consumo parcial o abortado por stock insuficiente"
// @Router       /api/consumptions [post]
func (h *ConsumptionHandler) Post(c *fiber.Ctx) error {
	var in dto.PostConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Post(c.Context(), in)
	if err != nil {
		// Con resultado en mano el caller necesita el detalle por línea,
		// no un mensaje plano: 409 y el resumen completo.
		if result != nil {
			return c.Status(fiber.StatusConflict).JSON(result)
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_code con fórmula, batch_multiplier positivo y ref_type BATCH o SALE son requeridos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Projection godoc
// @Summary      Proyectar el consumo de un lote
// @Description  Cantidades requeridas contra saldos vigentes y costo estimado a los promedios de hoy. No registra nada.
// @Tags         consumptions
// @Produce      json
// @Param        product_code      query  string  true   "Código del producto"
// @Param        batch_multiplier  query  string  false  "Multiplicador del lote (default 1)"
// @Success      200   {object}  dto.ConsumptionProjectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/consumptions/projection [get]
func (h *ConsumptionHandler) Projection(c *fiber.Ctx) error {
	multiplier, err := parseMultiplier(c.Query("batch_multiplier"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batch_multiplier debe ser un número positivo"})
	}
	out, err := h.uc.Project(c.Context(), c.Query("product_code"), multiplier)
	if err != nil {
		return consumptionQueryError(c, err)
	}
	return c.JSON(out)
}

// BatchCost godoc
// @Summary      Costear un lote a promedios vigentes
// @Description  Costo total del lote y por unidad de producto terminado (total / BaseBatchSize*multiplicador).
// @Tags         consumptions
// @Produce      json
// @Param        product_code      query  string  true   "Código del producto"
// @Param        batch_multiplier  query  string  false  "Multiplicador del lote (default 1)"
// @Success      200   {object}  dto.BatchCostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/consumptions/batch-cost [get]
func (h *ConsumptionHandler) BatchCost(c *fiber.Ctx) error {
	multiplier, err := parseMultiplier(c.Query("batch_multiplier"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batch_multiplier debe ser un número positivo"})
	}
	out, err := h.uc.BatchCost(c.Context(), c.Query("product_code"), multiplier)
	if err != nil {
		return consumptionQueryError(c, err)
	}
	return c.JSON(out)
}

// parseMultiplier interpreta el multiplicador de lote; vacío equivale a 1.
func parseMultiplier(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.NewFromInt(1), nil
	}
	return decimal.NewFromString(raw)
}

func consumptionQueryError(c *fiber.Ctx, err error) error {
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_code con fórmula y batch_multiplier positivo son requeridos"})
	}
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o material no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
