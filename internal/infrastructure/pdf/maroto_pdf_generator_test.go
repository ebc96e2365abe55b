package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/ports"
	"github.com/jhoicas/Negocio-api/internal/infrastructure/pdf"
)

func TestRenderDashboard_ProducesPDF(t *testing.T) {
	renderer := pdf.NewMarotoReportRenderer("negocio-api")
	summary := &dto.DashboardSummaryDTO{
		TotalCustomers:    12,
		PendingTasks:      3,
		CurrentMonthSales: decimal.RequireFromString("1250000.50"),
		PriorMonthSales:   decimal.NewFromInt(1000000),
		SalesGrowth:       decimal.RequireFromString("25.00"),
		SalesCount:        4,
		SalesByStatus: []dto.StatusCountDTO{
			{Status: "completado", Count: 3, Total: decimal.NewFromInt(1200000)},
			{Status: "pendiente", Count: 1, Total: decimal.RequireFromString("50000.50")},
		},
		RecentActivity: []dto.TaskResponse{
			{ID: "t1", Title: "Llamar a José", CreatedAt: time.Now()},
			{ID: "t2", Title: "Enviar cotización", Completed: true, CreatedAt: time.Now()},
		},
		DateLabel: "Octubre 2026",
	}

	out, err := renderer.RenderDashboard(context.Background(), ports.DashboardReport{Summary: summary, GeneratedAt: time.Now()})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}

func TestRenderDashboard_EmptySections(t *testing.T) {
	renderer := pdf.NewMarotoReportRenderer("negocio-api")

	out, err := renderer.RenderDashboard(context.Background(), ports.DashboardReport{
		Summary:     &dto.DashboardSummaryDTO{DateLabel: "Enero 2027"},
		GeneratedAt: time.Now(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = renderer.RenderDashboard(context.Background(), ports.DashboardReport{})
	assert.Error(t, err)
}
