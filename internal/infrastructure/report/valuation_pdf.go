// Generación del reporte de valorización de inventario con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la planta │ Fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: valor por categoría + materiales críticos en cero  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Material | Cant. | UdM | Costo Prom | Valor │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: VALOR TOTAL DEL INVENTARIO                           │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreport "github.com/jhoicas/AcroChem-api/internal/application/report"
	"github.com/jhoicas/AcroChem-api/internal/application/dto"
	"github.com/jhoicas/AcroChem-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appreport.ValuationPDFGenerator = (*MarotoValuationGenerator)(nil)

// MarotoValuationGenerator implementa report.ValuationPDFGenerator usando Maroto v2.
type MarotoValuationGenerator struct{}

// NewMarotoValuationGenerator construye el generador.
func NewMarotoValuationGenerator() *MarotoValuationGenerator { return &MarotoValuationGenerator{} }

// GenerateValuationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoValuationGenerator) GenerateValuationPDF(
	_ context.Context,
	summary *dto.ValuationReportResponse,
	stock []repository.StockOnHandResult,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Valorización de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Resumen por categoría
	m.AddRows(summaryHeaderRow())
	for _, c := range summary.Categories {
		m.AddRows(summaryDetailRow(c))
	}
	m.AddRows(criticalRow(summary.CriticalShortages))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Detalle de existencias
	m.AddRows(tableHeaderRow())
	for _, r := range stock {
		m.AddRows(tableDetailRow(r))
	}

	// Total general
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del reporte (izq) y fecha de generación (der).
func headerRow(summary *dto.ValuationReportResponse) core.Row {
	fecha := summary.GeneratedAt.Format("02/01/2006 15:04")

	return row.New(14).Add(
		col.New(7).Add(
			text.New("AcroChem Lite", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Valorización de materias primas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// summaryHeaderRow: cabecera del resumen por categoría.
func summaryHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoría", 6, align.Left),
		h("Materiales", 3, align.Center),
		h("Valor", 3, align.Right),
	)
}

// summaryDetailRow: una fila por categoría.
func summaryDetailRow(c dto.CategoryValuationDTO) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(
			c.Category,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			fmt.Sprintf("%d", c.MaterialCount),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			"$"+formatMoney(c.TotalValue.StringFixed(0)),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// criticalRow: materiales críticos sin existencia (requieren compra urgente).
func criticalRow(count int) core.Row {
	msg := "Sin materiales críticos agotados"
	if count > 0 {
		msg = fmt.Sprintf("Materiales CRÍTICOS sin existencia: %d", count)
	}
	return row.New(7).Add(
		col.New(12).Add(text.New(msg, props.Text{
			Size: 8, Top: 2, Left: 1, Color: colorGray, Style: fontstyle.Italic,
		})),
	)
}

// tableHeaderRow: cabecera de la tabla de existencias.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Material", 4, align.Left),
		h("Cantidad", 2, align.Right),
		h("UdM", 1, align.Center),
		h("Costo Prom.", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableDetailRow: una fila por material con existencia.
func tableDetailRow(r repository.StockOnHandResult) core.Row {
	return row.New(6).Add(
		col.New(2).Add(text.New(
			r.MaterialCode,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(4).Add(text.New(
			r.Name,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			r.QtyOnHand.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(1).Add(text.New(
			r.StockUOM,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(1).Add(text.New(
			r.AvgCost.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(2).Add(text.New(
			"$"+formatMoney(r.TotalValue.StringFixed(0)),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalRow: valor total del inventario alineado a la derecha.
func totalRow(summary *dto.ValuationReportResponse) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("VALOR TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(summary.TotalValue.StringFixed(0)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if neg {
		return "-" + string(buf)
	}
	return string(buf)
}
