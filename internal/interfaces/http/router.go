package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AcroChem-api/internal/application/catalog"
	"github.com/jhoicas/AcroChem-api/internal/application/consumption"
	"github.com/jhoicas/AcroChem-api/internal/application/ledger"
	"github.com/jhoicas/AcroChem-api/internal/application/report"
	"github.com/jhoicas/AcroChem-api/internal/application/stocktake"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC    *catalog.MaterialUseCase
	ProductUC     *catalog.ProductUseCase
	FormulaUC     *catalog.FormulaUseCase
	PostingUC     *ledger.PostingUseCase
	QueryUC       *ledger.QueryUseCase
	ConsumptionUC *consumption.UseCase
	StocktakeUC   *stocktake.UseCase
	ValuationUC   *report.ValuationUseCase
	ExportUC      *report.ExportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de materias primas
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:code", materialHandler.GetByCode)
	materials.Put("/:code", materialHandler.Update)
	materials.Delete("/:code", materialHandler.Delete)

	// Productos terminados y sus fórmulas
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:code", productHandler.GetByCode)
	products.Put("/:code", productHandler.Update)
	products.Delete("/:code", productHandler.Delete)

	formulaHandler := NewFormulaHandler(deps.FormulaUC)
	products.Get("/:code/formula", formulaHandler.Get)
	products.Put("/:code/formula", formulaHandler.Replace)
	products.Post("/:code/formula/lines", formulaHandler.AddLine)
	products.Put("/:code/formula/lines/:material_code", formulaHandler.UpdateLine)
	products.Delete("/:code/formula/lines/:material_code", formulaHandler.RemoveLine)

	// Libro de movimientos: escrituras directas y lecturas
	ledgerHandler := NewLedgerHandler(deps.PostingUC, deps.QueryUC)
	api.Post("/purchases", ledgerHandler.PostPurchase)
	api.Post("/adjustments", ledgerHandler.PostAdjustment)
	api.Get("/ledger", ledgerHandler.History)
	api.Get("/stock-on-hand", ledgerHandler.StockOnHand)
	materials.Get("/:code/balance", ledgerHandler.Balance)

	integrity := api.Group("/integrity")
	integrity.Get("/negative-balances", ledgerHandler.NegativeBalances)
	integrity.Get("/balance-drift", ledgerHandler.BalanceDrift)

	// Consumos por fórmula (producción y venta directa)
	consumptions := api.Group("/consumptions")
	consumptionHandler := NewConsumptionHandler(deps.ConsumptionUC)
	consumptions.Post("/", consumptionHandler.Post)
	consumptions.Get("/projection", consumptionHandler.Projection)
	consumptions.Get("/batch-cost", consumptionHandler.BatchCost)

	// Conteos físicos
	stocktakes := api.Group("/stocktakes")
	stocktakeHandler := NewStocktakeHandler(deps.StocktakeUC)
	stocktakes.Post("/", stocktakeHandler.Post)
	stocktakes.Get("/", stocktakeHandler.List)

	// Reportes y exportaciones
	reportHandler := NewReportHandler(deps.ValuationUC, deps.ExportUC)
	api.Get("/reports/valuation", reportHandler.Valuation)

	exports := api.Group("/exports")
	exports.Get("/stock-on-hand.csv", reportHandler.StockOnHandCSV)
	exports.Get("/stock-on-hand.xlsx", reportHandler.StockOnHandXLSX)
	exports.Get("/ledger.csv", reportHandler.LedgerCSV)
	exports.Get("/ledger.xlsx", reportHandler.LedgerXLSX)
	exports.Get("/valuation.pdf", reportHandler.ValuationPDF)
}
