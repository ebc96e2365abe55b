// Package analytics calcula los indicadores del tablero a partir de las colecciones
// ya cargadas del usuario y arma el resumen del dashboard.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Metrics indicadores derivados. No guarda estado: se recalcula completo en cada llamada.
type Metrics struct {
	TotalCustomers int
	PendingTasks   int

	CurrentMonthSales decimal.Decimal
	PriorMonthSales   decimal.Decimal
	Growth            decimal.Decimal // porcentaje; exactamente 0 si el mes anterior suma 0
	CurrentMonthCount int
	ByStatus          []StatusTotal // ventas del mes en curso por estado, en orden de la enumeración

	MonthLabel string
}

// StatusTotal cantidad y monto de ventas de un estado.
type StatusTotal struct {
	Status entity.SaleStatus
	Count  int
	Total  decimal.Decimal
}

// Window intervalo semiabierto [Start, End). End cero = sin cota superior.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains informa si t cae dentro de la ventana.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	return w.End.IsZero() || t.Before(w.End)
}

// MonthWindows devuelve el mes en curso [inicio de mes, ∞) y el anterior
// [inicio de mes - 1 mes, inicio de mes), en la zona horaria de now.
// Las ventas con fecha futura cuentan en el mes en curso.
func MonthWindows(now time.Time) (current, prior Window) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	current = Window{Start: start}
	prior = Window{Start: start.AddDate(0, -1, 0), End: start}
	return current, prior
}

// Growth variación porcentual (current-prior)/prior*100. Si prior no es positivo devuelve 0.
func Growth(current, prior decimal.Decimal) decimal.Decimal {
	if !prior.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(prior).Div(prior).Mul(hundred)
}

// Compute calcula los indicadores sobre las tres colecciones. Nunca falla:
// los montos ausentes o inválidos ya llegan como cero desde la decodificación.
func Compute(customers []entity.Customer, tasks []entity.Task, sales []entity.Sale, now time.Time) Metrics {
	current, prior := MonthWindows(now)

	m := Metrics{
		TotalCustomers:    len(customers),
		CurrentMonthSales: decimal.Zero,
		PriorMonthSales:   decimal.Zero,
		MonthLabel:        MonthLabel(now),
	}
	for _, t := range tasks {
		if !t.Completed {
			m.PendingTasks++
		}
	}

	byStatus := map[entity.SaleStatus]*StatusTotal{}
	for _, s := range sales {
		switch {
		case current.Contains(s.SaleDate):
			m.CurrentMonthSales = m.CurrentMonthSales.Add(s.Amount)
			m.CurrentMonthCount++
			st, ok := byStatus[s.Status]
			if !ok {
				st = &StatusTotal{Status: s.Status, Total: decimal.Zero}
				byStatus[s.Status] = st
			}
			st.Count++
			st.Total = st.Total.Add(s.Amount)
		case prior.Contains(s.SaleDate):
			m.PriorMonthSales = m.PriorMonthSales.Add(s.Amount)
		}
	}
	m.Growth = Growth(m.CurrentMonthSales, m.PriorMonthSales)

	m.ByStatus = make([]StatusTotal, 0, len(byStatus))
	for _, st := range byStatus {
		m.ByStatus = append(m.ByStatus, *st)
	}
	sort.Slice(m.ByStatus, func(i, j int) bool {
		return statusRank(m.ByStatus[i].Status) < statusRank(m.ByStatus[j].Status)
	})
	return m
}

func statusRank(s entity.SaleStatus) int {
	for i, known := range entity.SaleStatuses() {
		if s == known {
			return i
		}
	}
	return len(entity.SaleStatuses())
}

// MonthLabel devuelve una etiqueta legible del mes, ej: "Octubre 2026".
func MonthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
