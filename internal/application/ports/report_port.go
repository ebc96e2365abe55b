package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
)

// DashboardReport datos que se vuelcan en el reporte imprimible del tablero.
type DashboardReport struct {
	Summary     *dto.DashboardSummaryDTO
	GeneratedAt time.Time
}

// ReportRenderer puerto de salida para generar el reporte del tablero.
// La aplicación solo conoce este contrato, no la librería de PDF.
type ReportRenderer interface {
	RenderDashboard(ctx context.Context, report DashboardReport) ([]byte, error)
}
