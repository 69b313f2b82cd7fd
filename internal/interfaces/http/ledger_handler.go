package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/application/ledger"
	"github.com/jhoicas/AcroChem-api/internal/domain"
)

// LedgerHandler maneja las escrituras directas al libro (compras y ajustes)
// y todas sus lecturas: historial, saldos, existencias y chequeos de
// integridad.
type LedgerHandler struct {
	posting *ledger.PostingUseCase
	query   *ledger.QueryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(posting *ledger.PostingUseCase, query *ledger.QueryUseCase) *LedgerHandler {
	return &LedgerHandler{posting: posting, query: query}
}

// PostPurchase godoc
// @Summary      Registrar una compra
// @Description  Entrada positiva de stock al costo de la factura; el costo unitario derivado entra al promedio ponderado del material.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostPurchaseRequest  true  "material_code, qty en unidades de stock, total_cost de la compra"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *LedgerHandler) PostPurchase(c *fiber.Ctx) error {
	var in dto.PostPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.posting.Receive(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "material_code, qty positiva y total_cost no negativo son requeridos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PostAdjustment godoc
// @Summary      Registrar un ajuste manual
// @Description  Corrección con signo: qty positiva entra al unit_cost indicado (0 si se omite); qty negativa sale al promedio vigente y puede dejar saldo negativo (el chequeo de integridad lo reporta).
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostAdjustmentRequest  true  "material_code, qty con signo, unit_cost opcional en aumentos"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *LedgerHandler) PostAdjustment(c *fiber.Ctx) error {
	var in dto.PostAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.posting.Adjust(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "qty distinta de cero; unit_cost, si se envía, no puede ser negativo"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial del libro de movimientos
// @Tags         ledger
// @Produce      json
// @Param        material_code  query  string  false  "Filtrar por material"
// @Param        kind           query  string  false  "PURCHASE, CONSUMPTION, ADJUSTMENT o STOCKTAKE"
// @Param        limit          query  int     false  "Tamaño de página (máx 500)"
// @Param        offset         query  int     false  "Desplazamiento"
// @Success      200   {object}  dto.LedgerListResponse
// @Router       /api/ledger [get]
func (h *LedgerHandler) History(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.query.History(c.Context(), c.Query("material_code"), c.Query("kind"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Balance godoc
// @Summary      Saldo y costo promedio de un material
// @Tags         ledger
// @Produce      json
// @Param        code  path  string  true  "Código del material"
// @Success      200   {object}  dto.MaterialBalanceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{code}/balance [get]
func (h *LedgerHandler) Balance(c *fiber.Ctx) error {
	out, err := h.query.Balance(c.Context(), c.Params("code"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// StockOnHand godoc
// @Summary      Existencias valorizadas
// @Description  Una fila por material activo con cantidad, costo promedio y valor; incluye el total general del inventario.
// @Tags         ledger
// @Produce      json
// @Param        search  query  string  false  "Buscar por código o nombre"
// @Success      200   {object}  dto.StockOnHandResponse
// @Router       /api/stock-on-hand [get]
func (h *LedgerHandler) StockOnHand(c *fiber.Ctx) error {
	out, err := h.query.StockOnHand(c.Context(), c.Query("search"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// NegativeBalances godoc
// @Summary      Materiales con saldo negativo
// @Description  Chequeo de integridad: los saldos negativos solo pueden venir de ajustes manuales o conteos, nunca de salidas planificadas.
// @Tags         integrity
// @Produce      json
// @Success      200   {array}  dto.NegativeBalanceDTO
// @Router       /api/integrity/negative-balances [get]
func (h *LedgerHandler) NegativeBalances(c *fiber.Ctx) error {
	out, err := h.query.NegativeBalances(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// BalanceDrift godoc
// @Summary      Discrepancias entre saldo materializado y libro
// @Description  Repliega el libro por material y lo compara contra el saldo mantenido; la lista vacía es el estado sano.
// @Tags         integrity
// @Produce      json
// @Success      200   {array}  dto.BalanceDriftDTO
// @Router       /api/integrity/balance-drift [get]
func (h *LedgerHandler) BalanceDrift(c *fiber.Ctx) error {
	out, err := h.query.VerifyBalances(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
