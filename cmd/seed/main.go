// seed puebla el catálogo con datos de demostración: materias primas de una
// planta de pinturas, dos productos terminados y sus fórmulas. Es idempotente:
// los códigos ya existentes se dejan intactos.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AcroChem-api/internal/domain/entity"
	"github.com/jhoicas/AcroChem-api/internal/infrastructure/postgres"
	"github.com/jhoicas/AcroChem-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.DB); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	materialRepo := postgres.NewMaterialRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	formulaRepo := postgres.NewFormulaRepository(pool)

	materials := []*entity.Material{
		material("RES-ACR01", "Resina acrílica estirenada", entity.CategoryResin, "KG", "KG", "1", "0.5", true),
		material("PIG-TIO2", "Dióxido de titanio rutilo", entity.CategoryPigment, "KG", "KG", "1", "1", true),
		material("PIG-OXR01", "Óxido de hierro rojo", entity.CategoryPigment, "KG", "G", "0.001", "1.5", false),
		material("SOL-XIL01", "Xileno industrial", entity.CategorySolvent, "L", "L", "1", "2", true),
		material("SOL-VAR01", "Varsol", entity.CategorySolvent, "L", "L", "1", "2", false),
		material("ADI-DIS01", "Dispersante acrílico", entity.CategoryAdditive, "KG", "G", "0.001", "0", false),
		material("EMP-GAL01", "Envase plástico de galón", entity.CategoryPackaging, "UN", "UN", "1", "0", false),
	}
	for _, m := range materials {
		existing, err := materialRepo.GetByCode(ctx, m.Code)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Consultar material %s: %v\n", m.Code, err)
			os.Exit(1)
		}
		if existing != nil {
			fmt.Printf("material %s ya existe, se omite\n", m.Code)
			continue
		}
		if err := materialRepo.Create(ctx, m); err != nil {
			fmt.Fprintf(os.Stderr, "Crear material %s: %v\n", m.Code, err)
			os.Exit(1)
		}
		fmt.Printf("material %s creado\n", m.Code)
	}

	products := []struct {
		product *entity.Product
		lines   []*entity.FormulaLine
	}{
		{
			product: product("PIN-BLA01", "Pintura acrílica blanca tipo 1", "PAINT", "100"),
			lines: []*entity.FormulaLine{
				line("PIN-BLA01", "RES-ACR01", "40", "KG"),
				line("PIN-BLA01", "PIG-TIO2", "22", "KG"),
				line("PIN-BLA01", "SOL-XIL01", "18", "L"),
				line("PIN-BLA01", "ADI-DIS01", "800", "G"),
				line("PIN-BLA01", "EMP-GAL01", "26", "UN"),
			},
		},
		{
			product: product("THN-EST01", "Thinner estándar", "THINNER", "200"),
			lines: []*entity.FormulaLine{
				line("THN-EST01", "SOL-XIL01", "120", "L"),
				line("THN-EST01", "SOL-VAR01", "80", "L"),
				line("THN-EST01", "EMP-GAL01", "52", "UN"),
			},
		},
	}
	for _, p := range products {
		existing, err := productRepo.GetByCode(ctx, p.product.Code)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Consultar producto %s: %v\n", p.product.Code, err)
			os.Exit(1)
		}
		if existing != nil {
			fmt.Printf("producto %s ya existe, se omite\n", p.product.Code)
			continue
		}
		if err := productRepo.Create(ctx, p.product); err != nil {
			fmt.Fprintf(os.Stderr, "Crear producto %s: %v\n", p.product.Code, err)
			os.Exit(1)
		}
		if err := formulaRepo.ReplaceByProduct(ctx, p.product.Code, p.lines); err != nil {
			fmt.Fprintf(os.Stderr, "Crear fórmula de %s: %v\n", p.product.Code, err)
			os.Exit(1)
		}
		fmt.Printf("producto %s creado con %d líneas de fórmula\n", p.product.Code, len(p.lines))
	}

	fmt.Println("catálogo de demostración listo")
}

func material(code, name, category, stockUOM, issueUOM, factor, wastage string, critical bool) *entity.Material {
	return &entity.Material{
		Code:               code,
		Name:               name,
		Category:           category,
		StockUOM:           stockUOM,
		IssueUOM:           issueUOM,
		IssueToStockFactor: decimal.RequireFromString(factor),
		StdWastagePct:      decimal.RequireFromString(wastage),
		IsCritical:         critical,
		Active:             true,
	}
}

func product(code, name, category, baseBatch string) *entity.Product {
	return &entity.Product{
		Code:          code,
		Name:          name,
		Category:      category,
		BaseBatchSize: decimal.RequireFromString(baseBatch),
		Active:        true,
	}
}

func line(productCode, materialCode, qty, uom string) *entity.FormulaLine {
	return &entity.FormulaLine{
		ProductCode:  productCode,
		MaterialCode: materialCode,
		QtyPerBatch:  decimal.RequireFromString(qty),
		UOM:          uom,
	}
}
