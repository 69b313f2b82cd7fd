// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Respaldo para tests de use cases y para correr la API sin
// PostgreSQL; mismo contrato que los adaptadores de postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AcroChem-api/internal/application/consumption"
	"github.com/jhoicas/AcroChem-api/internal/application/ledger"
	"github.com/jhoicas/AcroChem-api/internal/application/stocktake"
	"github.com/jhoicas/AcroChem-api/internal/domain"
	"github.com/jhoicas/AcroChem-api/internal/domain/costing"
	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)
var _ consumption.TxRunner = (*Store)(nil)
var _ stocktake.TxRunner = (*Store)(nil)

// Store guarda todo el estado bajo un RWMutex. Las transacciones (Run,
// RunStocktake) se serializan con un mutex aparte, igual que el FOR UPDATE
// por material serializa los asientos en postgres; los fallos dentro de una
// transacción ocurren antes de escribir, así que no hay rollback.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	materials  map[string]entity.Material
	products   map[string]entity.Product
	formulas   map[string]entity.FormulaLine // clave: product_code + "\x00" + material_code
	entries    []entity.LedgerEntry
	balances   map[string]entity.MaterialBalance
	stocktakes []entity.StocktakeRecord
	nextID     int64
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		materials: make(map[string]entity.Material),
		products:  make(map[string]entity.Product),
		formulas:  make(map[string]entity.FormulaLine),
		balances:  make(map[string]entity.MaterialBalance),
	}
}

func formulaKey(productCode, materialCode string) string {
	return productCode + "\x00" + materialCode
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func pageSlice[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

// ─── Transacciones ───────────────────────────────────────────────────────────

// Run serializa la transacción y ejecuta fn con las vistas del libro y saldos.
func (s *Store) Run(ctx context.Context, fn func(
	entries repository.LedgerRepository,
	balances repository.BalanceRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.Ledger(), s.Balances())
}

// RunStocktake igual que Run pero con la vista de conteos físicos.
func (s *Store) RunStocktake(ctx context.Context, fn func(
	entries repository.LedgerRepository,
	balances repository.BalanceRepository,
	stocktakes repository.StocktakeRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.Ledger(), s.Balances(), s.Stocktakes())
}

// ─── Materiales ──────────────────────────────────────────────────────────────

var _ repository.MaterialRepository = (*MaterialStore)(nil)

// MaterialStore vista de Store que implementa MaterialRepository.
type MaterialStore struct{ s *Store }

// Materials devuelve la vista del maestro de materiales.
func (s *Store) Materials() *MaterialStore { return &MaterialStore{s} }

func (m *MaterialStore) Create(ctx context.Context, mat *entity.Material) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.materials[mat.Code]; ok {
		return domain.ErrDuplicate
	}
	m.s.materials[mat.Code] = *mat
	return nil
}

func (m *MaterialStore) GetByCode(ctx context.Context, code string) (*entity.Material, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	mat, ok := m.s.materials[code]
	if !ok {
		return nil, nil
	}
	return &mat, nil
}

func (m *MaterialStore) Update(ctx context.Context, mat *entity.Material) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.materials[mat.Code]; !ok {
		return domain.ErrNotFound
	}
	m.s.materials[mat.Code] = *mat
	return nil
}

func (m *MaterialStore) List(ctx context.Context, search string, onlyActive bool, limit, offset int) ([]*entity.Material, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var list []*entity.Material
	for _, mat := range m.s.materials {
		if onlyActive && !mat.Active {
			continue
		}
		if search != "" && !containsFold(mat.Code, search) && !containsFold(mat.Name, search) {
			continue
		}
		mat := mat
		list = append(list, &mat)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return pageSlice(list, limit, offset), nil
}

func (m *MaterialStore) Count(ctx context.Context, search string, onlyActive bool) (int, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	count := 0
	for _, mat := range m.s.materials {
		if onlyActive && !mat.Active {
			continue
		}
		if search != "" && !containsFold(mat.Code, search) && !containsFold(mat.Name, search) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *MaterialStore) Delete(ctx context.Context, code string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.materials[code]; !ok {
		return domain.ErrNotFound
	}
	for _, line := range m.s.formulas {
		if line.MaterialCode == code {
			return domain.ErrReferentialConflict
		}
	}
	for _, e := range m.s.entries {
		if e.MaterialCode == code {
			return domain.ErrReferentialConflict
		}
	}
	delete(m.s.materials, code)
	delete(m.s.balances, code)
	return nil
}

// ─── Productos ───────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductStore)(nil)

// ProductStore vista de Store que implementa ProductRepository.
type ProductStore struct{ s *Store }

// Products devuelve la vista de productos terminados.
func (s *Store) Products() *ProductStore { return &ProductStore{s} }

func (p *ProductStore) Create(ctx context.Context, prod *entity.Product) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.products[prod.Code]; ok {
		return domain.ErrDuplicate
	}
	p.s.products[prod.Code] = *prod
	return nil
}

func (p *ProductStore) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	prod, ok := p.s.products[code]
	if !ok {
		return nil, nil
	}
	return &prod, nil
}

func (p *ProductStore) Update(ctx context.Context, prod *entity.Product) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.products[prod.Code]; !ok {
		return domain.ErrNotFound
	}
	p.s.products[prod.Code] = *prod
	return nil
}

func (p *ProductStore) List(ctx context.Context, search string, onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	var list []*entity.Product
	for _, prod := range p.s.products {
		if onlyActive && !prod.Active {
			continue
		}
		if search != "" && !containsFold(prod.Code, search) && !containsFold(prod.Name, search) {
			continue
		}
		prod := prod
		list = append(list, &prod)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return pageSlice(list, limit, offset), nil
}

func (p *ProductStore) Count(ctx context.Context, search string, onlyActive bool) (int, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	count := 0
	for _, prod := range p.s.products {
		if onlyActive && !prod.Active {
			continue
		}
		if search != "" && !containsFold(prod.Code, search) && !containsFold(prod.Name, search) {
			continue
		}
		count++
	}
	return count, nil
}

func (p *ProductStore) Delete(ctx context.Context, code string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.products[code]; !ok {
		return domain.ErrNotFound
	}
	delete(p.s.products, code)
	for key, line := range p.s.formulas {
		if line.ProductCode == code {
			delete(p.s.formulas, key)
		}
	}
	return nil
}

// ─── Fórmulas ────────────────────────────────────────────────────────────────

var _ repository.FormulaRepository = (*FormulaStore)(nil)

// FormulaStore vista de Store que implementa FormulaRepository.
type FormulaStore struct{ s *Store }

// Formulas devuelve la vista de líneas de fórmula.
func (s *Store) Formulas() *FormulaStore { return &FormulaStore{s} }

func (f *FormulaStore) AddLine(ctx context.Context, line *entity.FormulaLine) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	key := formulaKey(line.ProductCode, line.MaterialCode)
	if _, ok := f.s.formulas[key]; ok {
		return domain.ErrDuplicate
	}
	f.s.formulas[key] = *line
	return nil
}

func (f *FormulaStore) UpdateLine(ctx context.Context, line *entity.FormulaLine) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	key := formulaKey(line.ProductCode, line.MaterialCode)
	if _, ok := f.s.formulas[key]; !ok {
		return domain.ErrNotFound
	}
	f.s.formulas[key] = *line
	return nil
}

func (f *FormulaStore) RemoveLine(ctx context.Context, productCode, materialCode string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	key := formulaKey(productCode, materialCode)
	if _, ok := f.s.formulas[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.s.formulas, key)
	return nil
}

func (f *FormulaStore) ReplaceByProduct(ctx context.Context, productCode string, lines []*entity.FormulaLine) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for key, line := range f.s.formulas {
		if line.ProductCode == productCode {
			delete(f.s.formulas, key)
		}
	}
	for _, line := range lines {
		f.s.formulas[formulaKey(productCode, line.MaterialCode)] = *line
	}
	return nil
}

func (f *FormulaStore) ListByProduct(ctx context.Context, productCode string) ([]*entity.FormulaLine, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	var list []*entity.FormulaLine
	for _, line := range f.s.formulas {
		if line.ProductCode != productCode {
			continue
		}
		line := line
		list = append(list, &line)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MaterialCode < list[j].MaterialCode })
	return list, nil
}

func (f *FormulaStore) CountByMaterial(ctx context.Context, materialCode string) (int, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	count := 0
	for _, line := range f.s.formulas {
		if line.MaterialCode == materialCode {
			count++
		}
	}
	return count, nil
}

// ─── Libro de movimientos ────────────────────────────────────────────────────

var _ repository.LedgerRepository = (*LedgerStore)(nil)

// LedgerStore vista de Store que implementa LedgerRepository.
type LedgerStore struct{ s *Store }

// Ledger devuelve la vista del libro de movimientos.
func (s *Store) Ledger() *LedgerStore { return &LedgerStore{s} }

func (l *LedgerStore) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.nextID++
	entry.ID = l.s.nextID
	entry.CreatedAt = time.Now().UTC()
	l.s.entries = append(l.s.entries, *entry)
	return nil
}

func (l *LedgerStore) List(ctx context.Context, materialCode, kind string, limit, offset int) ([]*entity.LedgerEntry, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	var list []*entity.LedgerEntry
	for i := len(l.s.entries) - 1; i >= 0; i-- {
		e := l.s.entries[i]
		if materialCode != "" && e.MaterialCode != materialCode {
			continue
		}
		if kind != "" && e.Kind != kind {
			continue
		}
		list = append(list, &e)
	}
	return pageSlice(list, limit, offset), nil
}

func (l *LedgerStore) Count(ctx context.Context, materialCode, kind string) (int, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	count := 0
	for _, e := range l.s.entries {
		if materialCode != "" && e.MaterialCode != materialCode {
			continue
		}
		if kind != "" && e.Kind != kind {
			continue
		}
		count++
	}
	return count, nil
}

func (l *LedgerStore) CountByMaterial(ctx context.Context, materialCode string) (int, error) {
	return l.Count(ctx, materialCode, "")
}

func (l *LedgerStore) SumByMaterial(ctx context.Context, materialCode string) (decimal.Decimal, decimal.Decimal, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	qty, value := decimal.Zero, decimal.Zero
	for _, e := range l.s.entries {
		if e.MaterialCode != materialCode {
			continue
		}
		qty = qty.Add(e.Qty)
		value = value.Add(e.TotalCost)
	}
	return qty, value, nil
}

// ─── Saldos ──────────────────────────────────────────────────────────────────

var _ repository.BalanceRepository = (*BalanceStore)(nil)

// BalanceStore vista de Store que implementa BalanceRepository.
type BalanceStore struct{ s *Store }

// Balances devuelve la vista de saldos por material.
func (s *Store) Balances() *BalanceStore { return &BalanceStore{s} }

func (b *BalanceStore) Get(ctx context.Context, materialCode string) (*entity.MaterialBalance, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	bal, ok := b.s.balances[materialCode]
	if !ok {
		return &entity.MaterialBalance{
			MaterialCode: materialCode,
			QtyOnHand:    decimal.Zero,
			TotalValue:   decimal.Zero,
		}, nil
	}
	return &bal, nil
}

func (b *BalanceStore) GetForUpdate(ctx context.Context, materialCode string) (*entity.MaterialBalance, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	bal, ok := b.s.balances[materialCode]
	if !ok {
		bal = entity.MaterialBalance{
			MaterialCode: materialCode,
			QtyOnHand:    decimal.Zero,
			TotalValue:   decimal.Zero,
		}
		b.s.balances[materialCode] = bal
	}
	return &bal, nil
}

func (b *BalanceStore) Upsert(ctx context.Context, balance *entity.MaterialBalance) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	b.s.balances[balance.MaterialCode] = *balance
	return nil
}

func (b *BalanceStore) ListNegative(ctx context.Context, epsilon decimal.Decimal) ([]*entity.MaterialBalance, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	var list []*entity.MaterialBalance
	for _, bal := range b.s.balances {
		if bal.QtyOnHand.LessThan(epsilon.Neg()) {
			bal := bal
			list = append(list, &bal)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MaterialCode < list[j].MaterialCode })
	return list, nil
}

func (b *BalanceStore) ListDrift(ctx context.Context, epsilon decimal.Decimal) ([]repository.BalanceDriftResult, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	codes := make(map[string]bool)
	for code := range b.s.balances {
		codes[code] = true
	}
	ledgerQty := make(map[string]decimal.Decimal)
	ledgerValue := make(map[string]decimal.Decimal)
	for _, e := range b.s.entries {
		codes[e.MaterialCode] = true
		ledgerQty[e.MaterialCode] = ledgerQty[e.MaterialCode].Add(e.Qty)
		ledgerValue[e.MaterialCode] = ledgerValue[e.MaterialCode].Add(e.TotalCost)
	}

	var list []repository.BalanceDriftResult
	for code := range codes {
		bal := b.s.balances[code]
		lQty := ledgerQty[code]
		lValue := ledgerValue[code]
		// Mismo pliegue que el motor: con cantidad despreciable el valor va a 0.
		if lQty.Abs().LessThan(epsilon) {
			lValue = decimal.Zero
		}
		qtyDrift := bal.QtyOnHand.Sub(lQty).Abs()
		valueDrift := bal.TotalValue.Sub(lValue).Abs()
		if qtyDrift.GreaterThan(epsilon) || valueDrift.GreaterThan(epsilon) {
			list = append(list, repository.BalanceDriftResult{
				MaterialCode: code,
				QtyOnHand:    bal.QtyOnHand,
				LedgerQty:    lQty,
				TotalValue:   bal.TotalValue,
				LedgerValue:  lValue,
			})
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MaterialCode < list[j].MaterialCode })
	return list, nil
}

// ─── Conteos físicos ─────────────────────────────────────────────────────────

var _ repository.StocktakeRepository = (*StocktakeStore)(nil)

// StocktakeStore vista de Store que implementa StocktakeRepository.
type StocktakeStore struct{ s *Store }

// Stocktakes devuelve la vista de conteos físicos.
func (s *Store) Stocktakes() *StocktakeStore { return &StocktakeStore{s} }

func (st *StocktakeStore) Create(ctx context.Context, rec *entity.StocktakeRecord) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.stocktakes = append(st.s.stocktakes, *rec)
	return nil
}

func (st *StocktakeStore) List(ctx context.Context, materialCode string, limit, offset int) ([]*entity.StocktakeRecord, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	var list []*entity.StocktakeRecord
	for i := len(st.s.stocktakes) - 1; i >= 0; i-- {
		rec := st.s.stocktakes[i]
		if materialCode != "" && rec.MaterialCode != materialCode {
			continue
		}
		list = append(list, &rec)
	}
	return pageSlice(list, limit, offset), nil
}

func (st *StocktakeStore) Count(ctx context.Context, materialCode string) (int, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	count := 0
	for _, rec := range st.s.stocktakes {
		if materialCode != "" && rec.MaterialCode != materialCode {
			continue
		}
		count++
	}
	return count, nil
}

// ─── Reportes ────────────────────────────────────────────────────────────────

var _ repository.ReportRepository = (*ReportStore)(nil)

// ReportStore vista read-only de Store que implementa ReportRepository.
type ReportStore struct{ s *Store }

// Reports devuelve la vista de reportes.
func (s *Store) Reports() *ReportStore { return &ReportStore{s} }

func (r *ReportStore) StockOnHand(ctx context.Context, search string) ([]repository.StockOnHandResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []repository.StockOnHandResult
	for code, bal := range r.s.balances {
		if !bal.QtyOnHand.Abs().GreaterThan(costing.QtyEpsilon) {
			continue
		}
		mat, ok := r.s.materials[code]
		if !ok {
			continue
		}
		if search != "" && !containsFold(mat.Code, search) && !containsFold(mat.Name, search) {
			continue
		}
		avg := costing.AverageCost(bal.QtyOnHand, bal.TotalValue)
		list = append(list, repository.StockOnHandResult{
			MaterialCode: mat.Code,
			Name:         mat.Name,
			Category:     mat.Category,
			StockUOM:     mat.StockUOM,
			IsCritical:   mat.IsCritical,
			QtyOnHand:    bal.QtyOnHand,
			AvgCost:      avg,
			TotalValue:   bal.TotalValue,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MaterialCode < list[j].MaterialCode })
	return list, nil
}

func (r *ReportStore) ValuationByCategory(ctx context.Context) ([]repository.CategoryValuationResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byCategory := make(map[string]*repository.CategoryValuationResult)
	for code, bal := range r.s.balances {
		if !bal.QtyOnHand.Abs().GreaterThan(costing.QtyEpsilon) {
			continue
		}
		mat, ok := r.s.materials[code]
		if !ok {
			continue
		}
		res, ok := byCategory[mat.Category]
		if !ok {
			res = &repository.CategoryValuationResult{Category: mat.Category, TotalValue: decimal.Zero}
			byCategory[mat.Category] = res
		}
		res.MaterialCount++
		res.TotalValue = res.TotalValue.Add(bal.TotalValue)
	}
	var list []repository.CategoryValuationResult
	for _, res := range byCategory {
		list = append(list, *res)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].TotalValue.GreaterThan(list[j].TotalValue) })
	return list, nil
}

func (r *ReportStore) CountCriticalShortages(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for code, mat := range r.s.materials {
		if !mat.IsCritical {
			continue
		}
		bal := r.s.balances[code]
		if !bal.QtyOnHand.IsPositive() {
			count++
		}
	}
	return count, nil
}
