// Package pdf genera el reporte imprimible del tablero con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + mes del reporte  │  Fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Clientes | Tareas pendientes | Ventas del mes | Var. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Estado | Cantidad | Total (ventas del mes)          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ACTIVIDAD RECIENTE: últimas tareas                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/ports"
)

var _ ports.ReportRenderer = (*MarotoReportRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 20, Green: 130, Blue: 60}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoReportRenderer implementa ports.ReportRenderer usando Maroto v2.
type MarotoReportRenderer struct {
	appName string
}

// NewMarotoReportRenderer construye el generador. appName aparece como autor del documento.
func NewMarotoReportRenderer(appName string) *MarotoReportRenderer {
	return &MarotoReportRenderer{appName: appName}
}

// RenderDashboard genera el PDF y devuelve sus bytes.
func (g *MarotoReportRenderer) RenderDashboard(_ context.Context, report ports.DashboardReport) ([]byte, error) {
	if report.Summary == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	s := report.Summary

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen del tablero", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s.DateLabel, report.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("VENTAS DEL MES POR ESTADO"))
	m.AddRows(tableHeaderRow("Estado", "Cantidad", "Total"))
	for _, r := range statusRows(s.SalesByStatus) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("ACTIVIDAD RECIENTE"))
	for _, r := range activityRows(s.RecentActivity) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(month, generated string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Resumen del negocio", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(month, props.Text{Size: 10, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+generated, props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// kpiRow: cuatro indicadores con etiqueta arriba y valor abajo.
func kpiRow(s *dto.DashboardSummaryDTO) core.Row {
	kpi := func(label, value string, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: color, Top: 8,
			}),
		)
	}
	growthColor := colorGreen
	if s.SalesGrowth.IsNegative() {
		growthColor = colorRed
	}
	return row.New(20).Add(
		kpi("Clientes", fmt.Sprintf("%d", s.TotalCustomers), colorPrimary),
		kpi("Tareas pendientes", fmt.Sprintf("%d", s.PendingTasks), colorPrimary),
		kpi("Ventas del mes", "$"+formatMoney(s.CurrentMonthSales), colorPrimary),
		kpi("Variación vs. mes anterior", formatPercent(s.SalesGrowth), growthColor),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow(labels ...string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h(labels[0], 6, align.Left),
		h(labels[1], 2, align.Center),
		h(labels[2], 4, align.Right),
	)
}

func statusRows(items []dto.StatusCountDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("Sin ventas en el mes.")}
	}
	result := make([]core.Row, 0, len(items))
	for _, st := range items {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(capitalize(st.Status), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", st.Count), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New("$"+formatMoney(st.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func activityRows(tasks []dto.TaskResponse) []core.Row {
	if len(tasks) == 0 {
		return []core.Row{emptyRow("Sin actividad reciente.")}
	}
	result := make([]core.Row, 0, len(tasks))
	for _, t := range tasks {
		state := "Pendiente"
		if t.Completed {
			state = "Completada"
		}
		result = append(result, row.New(6).Add(
			col.New(7).Add(text.New(t.Title, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(state, props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(3).Add(text.New(t.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
			})),
		))
	}
	return result
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney redondea a pesos e inserta puntos de miles.
// Ej: 25000 → "25.000", -1234567.8 → "-1.234.568"
func formatMoney(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}

// formatPercent ej: 12.5 → "+12,5%", -20 → "-20%".
func formatPercent(d decimal.Decimal) string {
	s := strings.Replace(d.Round(1).String(), ".", ",", 1)
	if d.IsPositive() {
		s = "+" + s
	}
	return s + "%"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
