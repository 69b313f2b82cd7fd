package consumption

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/costing"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// UseCase traduce una fórmula más un multiplicador de lote en salidas de
// stock por material: proyecta sin registrar, costea un lote a los promedios
// vigentes y registra el consumo delegando cada salida al motor de asientos.
// Unifica producción (BATCH) y venta directa (SALE) bajo el mismo camino.
type UseCase struct {
	txRunner     TxRunner
	issuer       StockIssuer
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
	formulaRepo  repository.FormulaRepository
	balanceRepo  repository.BalanceRepository
	metrics      PostingMetrics
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	issuer StockIssuer,
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
	formulaRepo repository.FormulaRepository,
	balanceRepo repository.BalanceRepository,
	metrics PostingMetrics,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		issuer:       issuer,
		productRepo:  productRepo,
		materialRepo: materialRepo,
		formulaRepo:  formulaRepo,
		balanceRepo:  balanceRepo,
		metrics:      metrics,
	}
}

// linePlan línea de fórmula resuelta: material cargado y cantidad requerida
// ya convertida a unidades de stock.
type linePlan struct {
	material *entity.Material
	line     *entity.FormulaLine
	qtyStock decimal.Decimal
}

// plan valida producto, multiplicador y fórmula, y resuelve cada línea a
// unidades de stock. Falla rápido: si algo es inválido no se registra nada.
func (uc *UseCase) plan(ctx context.Context, productCode string, multiplier decimal.Decimal) (*entity.Product, []linePlan, error) {
	if productCode == "" || !multiplier.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByCode(ctx, productCode)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := uc.formulaRepo.ListByProduct(ctx, productCode)
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	plans := make([]linePlan, 0, len(lines))
	for _, line := range lines {
		material, err := uc.materialRepo.GetByCode(ctx, line.MaterialCode)
		if err != nil {
			return nil, nil, err
		}
		if material == nil {
			return nil, nil, domain.ErrNotFound
		}
		qtyStock, err := costing.ToStockUnits(material, line.QtyPerBatch.Mul(multiplier), line.UOM)
		if err != nil {
			return nil, nil, err
		}
		plans = append(plans, linePlan{material: material, line: line, qtyStock: qtyStock})
	}
	return product, plans, nil
}

// Project proyecta el consumo de un lote sin registrar nada: cantidades
// requeridas contra saldos vigentes y costo estimado a los promedios de hoy.
// Es una foto, no un compromiso.
func (uc *UseCase) Project(ctx context.Context, productCode string, multiplier decimal.Decimal) (*dto.ConsumptionProjectionResponse, error) {
	product, plans, err := uc.plan(ctx, productCode, multiplier)
	if err != nil {
		return nil, err
	}
	requirements := make([]dto.RequirementDTO, 0, len(plans))
	totalEst := decimal.Zero
	allSufficient := true
	for _, p := range plans {
		bal, err := uc.balanceRepo.Get(ctx, p.material.Code)
		if err != nil {
			return nil, err
		}
		avgCost := costing.AverageCost(bal.QtyOnHand, bal.TotalValue)
		estCost := p.qtyStock.Mul(avgCost)
		sufficient := !p.qtyStock.GreaterThan(bal.QtyOnHand)
		if !sufficient {
			allSufficient = false
		}
		requirements = append(requirements, dto.RequirementDTO{
			MaterialCode: p.material.Code,
			MaterialName: p.material.Name,
			QtyPerBatch:  p.line.QtyPerBatch,
			UOM:          p.line.UOM,
			QtyRequired:  p.qtyStock,
			QtyOnHand:    bal.QtyOnHand,
			AvgCost:      avgCost,
			EstCost:      estCost,
			Sufficient:   sufficient,
		})
		totalEst = totalEst.Add(estCost)
	}
	return &dto.ConsumptionProjectionResponse{
		ProductCode:     product.Code,
		ProductName:     product.Name,
		BaseBatchSize:   product.BaseBatchSize,
		BatchMultiplier: multiplier,
		Requirements:    requirements,
		TotalEstCost:    totalEst,
		AllSufficient:   allSufficient,
	}, nil
}

// BatchCost costea un lote a los promedios vigentes y lo expresa también por
// unidad de producto terminado.
func (uc *UseCase) BatchCost(ctx context.Context, productCode string, multiplier decimal.Decimal) (*dto.BatchCostResponse, error) {
	proj, err := uc.Project(ctx, productCode, multiplier)
	if err != nil {
		return nil, err
	}
	outputQty := proj.BaseBatchSize.Mul(multiplier)
	costPerUnit := decimal.Zero
	if outputQty.GreaterThan(decimal.Zero) {
		costPerUnit = proj.TotalEstCost.Div(outputQty)
	}
	return &dto.BatchCostResponse{
		ProductCode:     proj.ProductCode,
		ProductName:     proj.ProductName,
		BatchMultiplier: multiplier,
		OutputQty:       outputQty,
		Lines:           proj.Requirements,
		TotalCost:       proj.TotalEstCost,
		CostPerUnit:     costPerUnit,
	}, nil
}

// Post registra el consumo de un lote: una salida por línea de fórmula, cada
// una en su propia transacción. Una línea con cantidad cero se omite; la
// primera que falle por stock insuficiente aborta las restantes. Las líneas
// ya confirmadas son asientos inmutables: no hay rollback de motor, la
// corrección va por ajustes compensatorios. El resultado detalla el estado
// de cada línea para que el caller decida.
func (uc *UseCase) Post(ctx context.Context, in dto.PostConsumptionRequest) (*dto.ConsumptionResult, error) {
	refType := in.RefType
	if refType == "" {
		refType = entity.RefTypeBatch
	}
	if refType != entity.RefTypeBatch && refType != entity.RefTypeSale {
		return nil, domain.ErrInvalidInput
	}
	_, plans, err := uc.plan(ctx, in.ProductCode, in.BatchMultiplier)
	if err != nil {
		return nil, err
	}

	txID := uuid.New().String()
	refNo := in.RefNo
	if refNo == "" {
		refNo = txID
	}
	result := &dto.ConsumptionResult{
		TransactionID:   txID,
		ProductCode:     in.ProductCode,
		BatchMultiplier: in.BatchMultiplier,
		RefType:         refType,
		RefNo:           in.RefNo,
		Lines:           make([]dto.ConsumptionLineResult, 0, len(plans)),
		TotalCost:       decimal.Zero,
	}

	var lineErr error
	aborted := false
	for _, p := range plans {
		lr := dto.ConsumptionLineResult{MaterialCode: p.material.Code, Qty: p.qtyStock}
		switch {
		case aborted:
			lr.Status = dto.LineStatusNotAttempted
			result.NotAttempted++
		case !p.qtyStock.GreaterThan(decimal.Zero):
			lr.Status = dto.LineStatusSkipped
			result.Skipped++
		default:
			now := time.Now()
			var entry *entity.LedgerEntry
			err := uc.txRunner.Run(ctx, func(
				entries repository.LedgerRepository,
				balances repository.BalanceRepository,
			) error {
				var txErr error
				entry, txErr = uc.issuer.IssueInTx(ctx, entries, balances, p.material, p.qtyStock, refType, refNo, in.Note, now)
				return txErr
			})
			if err != nil {
				if err == domain.ErrInsufficientStock {
					uc.metrics.PostingRejected("insufficient_stock")
				}
				lr.Status = dto.LineStatusFailed
				lr.Error = err.Error()
				result.Failed++
				lineErr = err
				aborted = true
			} else {
				uc.metrics.EntryPosted(entity.EntryKindConsumption)
				lr.Status = dto.LineStatusPosted
				lr.EntryID = &entry.ID
				result.Posted++
				result.TotalCost = result.TotalCost.Add(entry.TotalCost.Neg())
			}
			if bal, balErr := uc.balanceRepo.Get(ctx, p.material.Code); balErr == nil {
				lr.QtyOnHand = bal.QtyOnHand
			}
		}
		result.Lines = append(result.Lines, lr)
	}

	switch {
	case lineErr != nil && result.Posted > 0:
		return result, domain.ErrPartialPosting
	case lineErr != nil:
		return result, lineErr
	}
	return result, nil
}
