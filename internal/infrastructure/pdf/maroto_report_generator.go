// Package pdf implementa la versión imprimible del dashboard de ventas del
// vivero.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del vivero  │  Período + Fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Pedidos | Ingresos | Utilidad | Devoluciones          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Pedidos por estado                                   │
//	│  TABLA: Ventas por ciudad                                    │
//	│  TABLA: Ventas por tipo de planta                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROMEDIOS: diario / semanal / mensual                       │
//	│  CLIENTES: únicos, recurrentes, conversión                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vivero-api/internal/application/analytics"
	"github.com/jhoicas/Vivero-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52} // Verde vivero
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ analytics.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	appName string
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator(appName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{appName: appName}
}

// GenerateStatsPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStatsPDF(
	_ context.Context,
	report *dto.StatsDTO,
	period string,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, period, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("PEDIDOS POR ESTADO"))
	m.AddRows(breakdownHeaderRow("Estado"))
	for _, s := range report.ByStatus {
		m.AddRows(breakdownRow(s.Status, s.Orders, s.Revenue, s.Profit))
	}

	m.AddRows(sectionTitleRow("VENTAS POR CIUDAD"))
	m.AddRows(breakdownHeaderRow("Ciudad"))
	for _, c := range report.ByCity {
		m.AddRows(breakdownRow(c.City, c.Orders, c.Revenue, c.Profit))
	}

	m.AddRows(sectionTitleRow("VENTAS POR TIPO DE PLANTA"))
	m.AddRows(productHeaderRow())
	for _, p := range report.ByProduct {
		m.AddRows(productRow(p))
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(averagesRow(report))
	m.AddRows(customersRow(report.Customers))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del vivero (izq), período y fecha de emisión (der).
func headerRow(appName, period string, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de ventas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// kpiRow: los cuatro escalares principales del dashboard.
func kpiRow(report *dto.StatsDTO) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center,
				Color: colorGray, Top: 2,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center,
				Color: colorPrimary, Top: 7,
			}),
		)
	}
	return row.New(16).Add(
		kpi("PEDIDOS", fmt.Sprintf("%d", report.TotalOrders)),
		kpi("INGRESOS", "$"+formatMoney(report.Revenue)),
		kpi("UTILIDAD", "$"+formatMoney(report.Profit)),
		kpi("DEVOLUCIONES", fmt.Sprintf("%d ($%s)", report.ReturnsCount, formatMoney(report.ReturnsCost))),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
		}),
	))
}

// breakdownHeaderRow: cabecera común de los desgloses con dinero.
func breakdownHeaderRow(first string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h(first, 5, align.Left),
		h("Pedidos", 2, align.Center),
		h("Ingresos", 2, align.Right),
		h("Utilidad", 3, align.Right),
	)
}

func breakdownRow(name string, orders int, revenue, profit decimal.Decimal) core.Row {
	return row.New(6).Add(
		col.New(5).Add(text.New(name, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", orders), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New("$"+formatMoney(revenue), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New("$"+formatMoney(profit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func productHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Tipo de planta", 4, align.Left),
		h("Unidades", 2, align.Center),
		h("Pedidos", 2, align.Center),
		h("Ingresos", 2, align.Right),
		h("Utilidad", 2, align.Right),
	)
}

func productRow(p dto.ProductBreakdownDTO) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(p.PlantType, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", p.Units), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", p.Orders), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New("$"+formatMoney(p.Revenue), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New("$"+formatMoney(p.Profit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// averagesRow: promedios móviles por granularidad.
func averagesRow(report *dto.StatsDTO) core.Row {
	avg := func(label string, a dto.RollingAverageDTO) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center, Color: colorGray, Top: 2,
			}),
			text.New(fmt.Sprintf("$%s / $%s", formatMoney(a.Revenue), formatMoney(a.Profit)), props.Text{
				Size: 9, Align: align.Center, Top: 7,
			}),
			text.New(fmt.Sprintf("(%d períodos)", a.Buckets), props.Text{
				Size: 7, Align: align.Center, Color: colorGray, Top: 13,
			}),
		)
	}
	return row.New(18).Add(
		avg("PROMEDIO DIARIO (ING/UTIL)", report.DailyAverage),
		avg("PROMEDIO SEMANAL (ING/UTIL)", report.WeeklyAverage),
		avg("PROMEDIO MENSUAL (ING/UTIL)", report.MonthlyAverage),
	)
}

// customersRow: métricas de clientes y conversión.
func customersRow(c dto.CustomerMetricsDTO) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"Clientes únicos: %d   |   Recurrentes: %d   |   Pedidos por cliente: %s   |   Conversión: %s%%   |   Ítems por pedido: %s",
			c.UniqueCustomers, c.RepeatCustomers,
			c.AvgOrdersPerCustomer.StringFixed(2),
			c.ConversionRate.StringFixed(2),
			c.AvgItemsPerOrder.StringFixed(2),
		), props.Text{Size: 8, Color: colorGray, Top: 3}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en la parte entera, conservando los
// decimales con coma. Ej: 25000.50 → "25.000,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	entero, dec := s[:len(s)-3], s[len(s)-2:]

	n := len(entero)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, entero[i])
	}
	out := string(buf) + "," + dec
	if neg {
		out = "-" + out
	}
	return out
}
