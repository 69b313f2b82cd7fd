package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/costing"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// QueryUseCase lecturas del libro y de sus vistas materializadas. Nunca
// escribe; el saldo que expone siempre es derivable del libro.
type QueryUseCase struct {
	materialRepo repository.MaterialRepository
	ledgerRepo   repository.LedgerRepository
	balanceRepo  repository.BalanceRepository
	reportRepo   repository.ReportRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	materialRepo repository.MaterialRepository,
	ledgerRepo repository.LedgerRepository,
	balanceRepo repository.BalanceRepository,
	reportRepo repository.ReportRepository,
) *QueryUseCase {
	return &QueryUseCase{
		materialRepo: materialRepo,
		ledgerRepo:   ledgerRepo,
		balanceRepo:  balanceRepo,
		reportRepo:   reportRepo,
	}
}

// Balance devuelve el saldo vigente de un material con su costo promedio.
// Un material sin movimientos responde saldo cero, no error.
func (uc *QueryUseCase) Balance(ctx context.Context, materialCode string) (*dto.MaterialBalanceResponse, error) {
	material, err := uc.materialRepo.GetByCode(ctx, materialCode)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	bal, err := uc.balanceRepo.Get(ctx, materialCode)
	if err != nil {
		return nil, err
	}
	return &dto.MaterialBalanceResponse{
		MaterialCode: materialCode,
		QtyOnHand:    bal.QtyOnHand,
		AvgCost:      costing.AverageCost(bal.QtyOnHand, bal.TotalValue),
		TotalValue:   bal.TotalValue,
		UpdatedAt:    bal.UpdatedAt,
	}, nil
}

// History devuelve el historial del libro del más reciente al más antiguo.
// materialCode y kind vacíos no filtran.
func (uc *QueryUseCase) History(ctx context.Context, materialCode, kind string, page dto.PageRequest) (*dto.LedgerListResponse, error) {
	page.DefaultPage()
	list, err := uc.ledgerRepo.List(ctx, materialCode, kind, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.ledgerRepo.Count(ctx, materialCode, kind)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEntryResponse(e))
	}
	return &dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// StockOnHand devuelve las existencias valorizadas más el total general.
func (uc *QueryUseCase) StockOnHand(ctx context.Context, search string) (*dto.StockOnHandResponse, error) {
	rows, err := uc.reportRepo.StockOnHand(ctx, search)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockOnHandRowDTO, 0, len(rows))
	total := decimal.Zero
	for _, r := range rows {
		items = append(items, dto.StockOnHandRowDTO{
			MaterialCode: r.MaterialCode,
			Name:         r.Name,
			Category:     r.Category,
			StockUOM:     r.StockUOM,
			IsCritical:   r.IsCritical,
			QtyOnHand:    r.QtyOnHand,
			AvgCost:      r.AvgCost,
			StockValue:   r.TotalValue,
		})
		total = total.Add(r.TotalValue)
	}
	return &dto.StockOnHandResponse{Items: items, TotalValue: total}, nil
}

// NegativeBalances lista materiales con saldo negativo. Es diagnóstico:
// señala ajustes o conteos que dejaron el libro por debajo de la realidad,
// nunca se corrige automáticamente.
func (uc *QueryUseCase) NegativeBalances(ctx context.Context) ([]dto.NegativeBalanceDTO, error) {
	list, err := uc.balanceRepo.ListNegative(ctx, costing.QtyEpsilon)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NegativeBalanceDTO, 0, len(list))
	for _, b := range list {
		out = append(out, dto.NegativeBalanceDTO{
			MaterialCode: b.MaterialCode,
			QtyOnHand:    b.QtyOnHand,
			TotalValue:   b.TotalValue,
		})
	}
	return out, nil
}

// VerifyBalances compara cada saldo materializado contra el pliegue del
// libro y devuelve las discrepancias; la lista vacía es el estado sano.
func (uc *QueryUseCase) VerifyBalances(ctx context.Context) ([]dto.BalanceDriftDTO, error) {
	rows, err := uc.balanceRepo.ListDrift(ctx, costing.QtyEpsilon)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BalanceDriftDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BalanceDriftDTO{
			MaterialCode: r.MaterialCode,
			QtyOnHand:    r.QtyOnHand,
			LedgerQty:    r.LedgerQty,
			QtyDrift:     r.QtyOnHand.Sub(r.LedgerQty),
			TotalValue:   r.TotalValue,
			LedgerValue:  r.LedgerValue,
			ValueDrift:   r.TotalValue.Sub(r.LedgerValue),
		})
	}
	return out, nil
}
