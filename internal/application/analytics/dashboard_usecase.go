package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/ports"
	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/application/usecase"
	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// DashboardUseCase arma el resumen del tablero del usuario.
//
// Fuente de datos: los espejos ya cargados (clientes, tareas, ventas). Las colecciones
// que aún no se cargaron se traen en paralelo; los indicadores no hacen llamadas remotas.
type DashboardUseCase struct {
	session   resource.PrincipalSource
	customers *resource.Store[entity.Customer]
	tasks     *resource.Store[entity.Task]
	sales     *resource.Store[entity.Sale]
	activity  *resource.Feed[entity.Task]
	renderer  ports.ReportRenderer
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso. renderer puede ser nil si no se exponen reportes.
func NewDashboardUseCase(
	session resource.PrincipalSource,
	customers *resource.Store[entity.Customer],
	tasks *resource.Store[entity.Task],
	sales *resource.Store[entity.Sale],
	activity *resource.Feed[entity.Task],
	renderer ports.ReportRenderer,
) *DashboardUseCase {
	return &DashboardUseCase{
		session:   session,
		customers: customers,
		tasks:     tasks,
		sales:     sales,
		activity:  activity,
		renderer:  renderer,
		now:       time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// En paralelo:
//  1. carga de cada colección que todavía no tiene datos
//  2. actividad reciente (últimas tareas creadas)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	principal, ok := uc.session.CurrentPrincipal()
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var recent []entity.Task
	g, gctx := errgroup.WithContext(ctx)
	ensureLoaded(gctx, g, uc.customers)
	ensureLoaded(gctx, g, uc.tasks)
	ensureLoaded(gctx, g, uc.sales)
	g.Go(func() error {
		var err error
		recent, err = uc.activity.Recent(gctx, principal)
		if err != nil {
			return fmt.Errorf("dashboard: actividad reciente: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := Compute(uc.customers.Items(), uc.tasks.Items(), uc.sales.Items(), uc.now())

	byStatus := make([]dto.StatusCountDTO, 0, len(m.ByStatus))
	for _, st := range m.ByStatus {
		byStatus = append(byStatus, dto.StatusCountDTO{
			Status: string(st.Status),
			Count:  st.Count,
			Total:  st.Total.Round(2),
		})
	}
	activity := make([]dto.TaskResponse, 0, len(recent))
	for _, t := range recent {
		activity = append(activity, usecase.NewTaskResponse(t))
	}

	return &dto.DashboardSummaryDTO{
		TotalCustomers:    m.TotalCustomers,
		PendingTasks:      m.PendingTasks,
		CurrentMonthSales: m.CurrentMonthSales.Round(2),
		PriorMonthSales:   m.PriorMonthSales.Round(2),
		SalesGrowth:       m.Growth.Round(2),
		SalesCount:        m.CurrentMonthCount,
		SalesByStatus:     byStatus,
		RecentActivity:    activity,
		DateLabel:         m.MonthLabel,
	}, nil
}

// RecentActivity últimas tareas creadas por el usuario (widget "actividad reciente").
func (uc *DashboardUseCase) RecentActivity(ctx context.Context) ([]dto.TaskResponse, error) {
	principal, ok := uc.session.CurrentPrincipal()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	recent, err := uc.activity.Recent(ctx, principal)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(recent))
	for _, t := range recent {
		out = append(out, usecase.NewTaskResponse(t))
	}
	return out, nil
}

// Report genera el reporte imprimible del tablero.
func (uc *DashboardUseCase) Report(ctx context.Context) ([]byte, error) {
	if uc.renderer == nil {
		return nil, errors.New("dashboard: reporte no configurado")
	}
	summary, err := uc.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderDashboard(ctx, ports.DashboardReport{
		Summary:     summary,
		GeneratedAt: uc.now(),
	})
}

// ensureLoaded agrega al grupo la carga de store si todavía no tiene datos.
// Si otra carga reemplaza la del tablero, los indicadores esperan a esa.
func ensureLoaded[T any](ctx context.Context, g *errgroup.Group, store *resource.Store[T]) {
	if store.Loaded() {
		return
	}
	g.Go(func() error {
		if err := store.LoadLatest(ctx, ""); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		return nil
	})
}
