package stocktake

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

// UseCase concilia conteos físicos contra el libro: toma la foto del saldo
// del sistema bajo bloqueo, registra el conteo y, si la varianza no es
// despreciable, asienta exactamente un movimiento STOCKTAKE en la misma
// transacción.
type UseCase struct {
	txRunner      TxRunner
	poster        VariancePoster
	materialRepo  repository.MaterialRepository
	stocktakeRepo repository.StocktakeRepository
	metrics       PostingMetrics
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	poster VariancePoster,
	materialRepo repository.MaterialRepository,
	stocktakeRepo repository.StocktakeRepository,
	metrics PostingMetrics,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		poster:        poster,
		materialRepo:  materialRepo,
		stocktakeRepo: stocktakeRepo,
		metrics:       metrics,
	}
}

// Reconcile registra un conteo físico. SystemQty es el saldo al momento de
// la conciliación (fila bloqueada), la varianza es counted - system y un
// reconteo inmediato con la misma cifra produce varianza cero sin asiento.
func (uc *UseCase) Reconcile(ctx context.Context, in dto.PostStocktakeRequest) (*dto.StocktakeResponse, error) {
	if in.MaterialCode == "" || in.CountedQty.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.materialRepo.GetByCode(ctx, in.MaterialCode)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	record := &entity.StocktakeRecord{
		ID:           uuid.New().String(),
		CountDate:    now,
		MaterialCode: in.MaterialCode,
		CountedQty:   in.CountedQty,
		Note:         in.Note,
		CreatedAt:    now,
	}
	var entryID *int64

	err = uc.txRunner.RunStocktake(ctx, func(
		entries repository.LedgerRepository,
		balances repository.BalanceRepository,
		stocktakes repository.StocktakeRepository,
	) error {
		bal, err := balances.GetForUpdate(ctx, in.MaterialCode)
		if err != nil {
			return err
		}
		record.SystemQty = bal.QtyOnHand
		record.Variance = in.CountedQty.Sub(bal.QtyOnHand)
		if err := stocktakes.Create(ctx, record); err != nil {
			return err
		}
		if costing.IsNegligible(record.Variance) {
			return nil
		}
		entry, err := uc.poster.PostVarianceInTx(ctx, entries, balances, bal, record.Variance, record.ID, now)
		if err != nil {
			return err
		}
		entryID = &entry.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	if entryID != nil {
		uc.metrics.EntryPosted(entity.EntryKindStocktake)
	}

	resp := toStocktakeResponse(record)
	resp.EntryID = entryID
	return resp, nil
}

// ListRecords historial de conteos del más reciente al más antiguo;
// materialCode vacío no filtra.
func (uc *UseCase) ListRecords(ctx context.Context, materialCode string, page dto.PageRequest) (*dto.StocktakeListResponse, error) {
	page.DefaultPage()
	list, err := uc.stocktakeRepo.List(ctx, materialCode, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.stocktakeRepo.Count(ctx, materialCode)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StocktakeResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toStocktakeResponse(r))
	}
	return &dto.StocktakeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toStocktakeResponse(r *entity.StocktakeRecord) *dto.StocktakeResponse {
	if r == nil {
		return nil
	}
	return &dto.StocktakeResponse{
		ID:           r.ID,
		CountDate:    r.CountDate,
		MaterialCode: r.MaterialCode,
		CountedQty:   r.CountedQty,
		SystemQty:    r.SystemQty,
		Variance:     r.Variance,
		Note:         r.Note,
		CreatedAt:    r.CreatedAt,
	}
}
