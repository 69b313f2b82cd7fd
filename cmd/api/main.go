package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/AcroChem-api/internal/application/catalog"
	"github.com/jhoicas/AcroChem-api/internal/application/consumption"
	"github.com/jhoicas/AcroChem-api/internal/application/ledger"
	appreport "github.com/jhoicas/AcroChem-api/internal/application/report"
	"github.com/jhoicas/AcroChem-api/internal/application/stocktake"
	"github.com/jhoicas/AcroChem-api/internal/infrastructure/metrics"
	"github.com/jhoicas/AcroChem-api/internal/infrastructure/postgres"
	infrareport "github.com/jhoicas/AcroChem-api/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/AcroChem-api/internal/interfaces/http"
	"github.com/jhoicas/AcroChem-api/pkg/config"
	"github.com/jhoicas/AcroChem-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.MigrateOnStart {
		if err := postgres.Migrate(cfg.DB); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("esquema al día")
	}

	materialRepo := postgres.NewMaterialRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	formulaRepo := postgres.NewFormulaRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	stocktakeRepo := postgres.NewStocktakeRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var postingMetrics ledger.PostingMetrics = ledger.NopMetrics{}
	if cfg.Metrics.Enabled {
		postingMetrics = metrics.NewRecorder()
	}

	materialUC := catalog.NewMaterialUseCase(materialRepo, ledgerRepo, formulaRepo)
	productUC := catalog.NewProductUseCase(productRepo)
	formulaUC := catalog.NewFormulaUseCase(formulaRepo, productRepo, materialRepo)
	postingUC := ledger.NewPostingUseCase(txRunner, materialRepo, postingMetrics)
	queryUC := ledger.NewQueryUseCase(materialRepo, ledgerRepo, balanceRepo, reportRepo)
	consumptionUC := consumption.NewUseCase(
		txRunner, postingUC,
		productRepo, materialRepo, formulaRepo, balanceRepo, postingMetrics,
	)
	stocktakeUC := stocktake.NewUseCase(txRunner, postingUC, materialRepo, stocktakeRepo, postingMetrics)

	// PDF: reporte de valorización del inventario
	pdfGenerator := infrareport.NewMarotoValuationGenerator()
	valuationUC := appreport.NewValuationUseCase(reportRepo, pdfGenerator)
	exportUC := appreport.NewExportUseCase(
		reportRepo, ledgerRepo,
		infrareport.NewCSVWriter(), infrareport.NewExcelWriter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AcroChem API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialUC:    materialUC,
		ProductUC:     productUC,
		FormulaUC:     formulaUC,
		PostingUC:     postingUC,
		QueryUC:       queryUC,
		ConsumptionUC: consumptionUC,
		StocktakeUC:   stocktakeUC,
		ValuationUC:   valuationUC,
		ExportUC:      exportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
