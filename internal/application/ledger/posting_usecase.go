package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/costing"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// PostingUseCase registra asientos del libro de forma transaccional: cada
// asiento y su saldo materializado se escriben bajo bloqueo de fila por
// material (SELECT FOR UPDATE) con Commit/Rollback. Es el único camino que
// muta el libro; compras, consumos, ajustes y varianzas convergen aquí.
type PostingUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	metrics      PostingMetrics
}

// NewPostingUseCase construye el caso de uso.
func NewPostingUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	metrics PostingMetrics,
) *PostingUseCase {
	return &PostingUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		metrics:      metrics,
	}
}

// IssueInput entrada para una salida planificada de stock.
// Qty va en unidades de stock y debe ser positiva; RefType es BATCH o SALE.
type IssueInput struct {
	MaterialCode string
	Qty          decimal.Decimal
	RefType      string
	RefNo        string
	Note         string
}

// Receive registra una compra: entrada positiva al costo unitario derivado
// (total / cantidad), que entra al promedio ponderado de salidas futuras.
func (uc *PostingUseCase) Receive(ctx context.Context, in dto.PostPurchaseRequest) (*dto.LedgerEntryResponse, error) {
	if in.MaterialCode == "" || !in.Qty.GreaterThan(decimal.Zero) || in.TotalCost.LessThan(decimal.Zero) {
		uc.metrics.PostingRejected("invalid_input")
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.requireMaterial(ctx, in.MaterialCode); err != nil {
		return nil, err
	}

	now := time.Now()
	unitCost := in.TotalCost.Div(in.Qty)
	entry := &entity.LedgerEntry{
		EntryDate:    now,
		Kind:         entity.EntryKindPurchase,
		RefType:      entity.RefTypePurchase,
		RefNo:        in.RefNo,
		MaterialCode: in.MaterialCode,
		Qty:          in.Qty,
		UnitCost:     unitCost,
		TotalCost:    in.Qty.Mul(unitCost),
		Note:         in.Note,
	}

	err := uc.txRunner.Run(ctx, func(
		entries repository.LedgerRepository,
		balances repository.BalanceRepository,
	) error {
		bal, err := balances.GetForUpdate(ctx, in.MaterialCode)
		if err != nil {
			return err
		}
		return applyEntry(ctx, entries, balances, bal, entry, now)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.EntryPosted(entity.EntryKindPurchase)
	return toEntryResponse(entry), nil
}

// Issue registra una salida planificada en su propia transacción. La salida
// se costea al promedio vigente y nunca deja el saldo negativo: si la
// cantidad excede el disponible falla con ErrInsufficientStock sin escribir.
func (uc *PostingUseCase) Issue(ctx context.Context, in IssueInput) (*dto.LedgerEntryResponse, error) {
	if in.MaterialCode == "" || !in.Qty.GreaterThan(decimal.Zero) {
		uc.metrics.PostingRejected("invalid_input")
		return nil, domain.ErrInvalidInput
	}
	if in.RefType != entity.RefTypeBatch && in.RefType != entity.RefTypeSale {
		uc.metrics.PostingRejected("invalid_input")
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.requireMaterial(ctx, in.MaterialCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var entry *entity.LedgerEntry
	err = uc.txRunner.Run(ctx, func(
		entries repository.LedgerRepository,
		balances repository.BalanceRepository,
	) error {
		entry, err = uc.IssueInTx(ctx, entries, balances, material, in.Qty, in.RefType, in.RefNo, in.Note, now)
		return err
	})
	if err != nil {
		if err == domain.ErrInsufficientStock {
			uc.metrics.PostingRejected("insufficient_stock")
		}
		return nil, err
	}
	uc.metrics.EntryPosted(entity.EntryKindConsumption)
	return toEntryResponse(entry), nil
}

// IssueInTx ejecuta una salida usando los repositorios proporcionados (misma
// transacción del caller). El chequeo de stock ocurre sobre la fila ya
// bloqueada, cerrando la ventana entre salidas concurrentes del mismo
// material. ctx propaga la transacción SQL.
func (uc *PostingUseCase) IssueInTx(
	ctx context.Context,
	entries repository.LedgerRepository,
	balances repository.BalanceRepository,
	material *entity.Material,
	qty decimal.Decimal,
	refType, refNo, note string,
	now time.Time,
) (*entity.LedgerEntry, error) {
	bal, err := balances.GetForUpdate(ctx, material.Code)
	if err != nil {
		return nil, err
	}
	if qty.GreaterThan(bal.QtyOnHand) {
		return nil, domain.ErrInsufficientStock
	}
	avgCost := costing.AverageCost(bal.QtyOnHand, bal.TotalValue)
	entry := &entity.LedgerEntry{
		EntryDate:    now,
		Kind:         entity.EntryKindConsumption,
		RefType:      refType,
		RefNo:        refNo,
		MaterialCode: material.Code,
		Qty:          qty.Neg(),
		UnitCost:     avgCost,
		TotalCost:    qty.Neg().Mul(avgCost),
		Note:         note,
	}
	if err := applyEntry(ctx, entries, balances, bal, entry, now); err != nil {
		return nil, err
	}
	return entry, nil
}

// Adjust registra una corrección manual. Las disminuciones salen al promedio
// vigente (se ignora el costo del caller) y pueden dejar el saldo negativo:
// el caller está corrigiendo libro contra realidad física y el chequeo de
// integridad las reporta. Los aumentos entran al costo unitario del caller;
// omitirlo equivale a costo 0, que suma cantidad sin valor y diluye el promedio.
func (uc *PostingUseCase) Adjust(ctx context.Context, in dto.PostAdjustmentRequest) (*dto.LedgerEntryResponse, error) {
	if in.MaterialCode == "" || in.Qty.IsZero() {
		uc.metrics.PostingRejected("invalid_input")
		return nil, domain.ErrInvalidInput
	}
	increase := in.Qty.GreaterThan(decimal.Zero)
	if increase && in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
		uc.metrics.PostingRejected("invalid_input")
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.requireMaterial(ctx, in.MaterialCode); err != nil {
		return nil, err
	}

	now := time.Now()
	var entry *entity.LedgerEntry
	err := uc.txRunner.Run(ctx, func(
		entries repository.LedgerRepository,
		balances repository.BalanceRepository,
	) error {
		bal, err := balances.GetForUpdate(ctx, in.MaterialCode)
		if err != nil {
			return err
		}
		unitCost := costing.AverageCost(bal.QtyOnHand, bal.TotalValue)
		if increase {
			unitCost = decimal.Zero
			if in.UnitCost != nil {
				unitCost = *in.UnitCost
			}
		}
		entry = &entity.LedgerEntry{
			EntryDate:    now,
			Kind:         entity.EntryKindAdjustment,
			RefType:      entity.RefTypeManual,
			RefNo:        in.RefNo,
			MaterialCode: in.MaterialCode,
			Qty:          in.Qty,
			UnitCost:     unitCost,
			TotalCost:    in.Qty.Mul(unitCost),
			Note:         in.Note,
		}
		return applyEntry(ctx, entries, balances, bal, entry, now)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.EntryPosted(entity.EntryKindAdjustment)
	return toEntryResponse(entry), nil
}

// PostVarianceInTx asienta la varianza de un conteo físico sobre el saldo ya
// bloqueado por el caller (misma transacción). Ambos signos se costean al
// promedio vigente; una varianza positiva no representa una compra real.
func (uc *PostingUseCase) PostVarianceInTx(
	ctx context.Context,
	entries repository.LedgerRepository,
	balances repository.BalanceRepository,
	bal *entity.MaterialBalance,
	variance decimal.Decimal,
	refNo string,
	now time.Time,
) (*entity.LedgerEntry, error) {
	avgCost := costing.AverageCost(bal.QtyOnHand, bal.TotalValue)
	entry := &entity.LedgerEntry{
		EntryDate:    now,
		Kind:         entity.EntryKindStocktake,
		RefType:      entity.RefTypeStocktake,
		RefNo:        refNo,
		MaterialCode: bal.MaterialCode,
		Qty:          variance,
		UnitCost:     avgCost,
		TotalCost:    variance.Mul(avgCost),
		Note:         "Ajuste por conteo físico",
	}
	if err := applyEntry(ctx, entries, balances, bal, entry, now); err != nil {
		return nil, err
	}
	return entry, nil
}

// applyEntry persiste el asiento y recalcula el saldo materializado: la
// cantidad y el valor se acumulan con signo y, si la cantidad resultante es
// despreciable, el valor se resetea a cero para que el promedio vuelva a 0.
func applyEntry(
	ctx context.Context,
	entries repository.LedgerRepository,
	balances repository.BalanceRepository,
	bal *entity.MaterialBalance,
	entry *entity.LedgerEntry,
	now time.Time,
) error {
	if err := entries.Create(ctx, entry); err != nil {
		return err
	}
	bal.QtyOnHand = bal.QtyOnHand.Add(entry.Qty)
	bal.TotalValue = bal.TotalValue.Add(entry.TotalCost)
	if costing.IsNegligible(bal.QtyOnHand) {
		bal.TotalValue = decimal.Zero
	}
	bal.UpdatedAt = now
	return balances.Upsert(ctx, bal)
}

// requireMaterial devuelve el material o ErrNotFound, contabilizando el rechazo.
func (uc *PostingUseCase) requireMaterial(ctx context.Context, code string) (*entity.Material, error) {
	material, err := uc.materialRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if material == nil {
		uc.metrics.PostingRejected("not_found")
		return nil, domain.ErrNotFound
	}
	return material, nil
}

func toEntryResponse(e *entity.LedgerEntry) *dto.LedgerEntryResponse {
	if e == nil {
		return nil
	}
	return &dto.LedgerEntryResponse{
		ID:           e.ID,
		EntryDate:    e.EntryDate,
		Kind:         e.Kind,
		RefType:      e.RefType,
		RefNo:        e.RefNo,
		MaterialCode: e.MaterialCode,
		Qty:          e.Qty,
		UnitCost:     e.UnitCost,
		TotalCost:    e.TotalCost,
		Note:         e.Note,
		CreatedAt:    e.CreatedAt,
	}
}
