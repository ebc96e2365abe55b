package http

import (
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct{}

// NewDashboardHandler construye el handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// GetSummary devuelve los indicadores del mes en curso.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_customers, pending_tasks, current_month_sales,
// prior_month_sales, sales_growth, sales_by_status, recent_activity[5], date_label).
// Las colecciones que aún no se hayan cargado se cargan antes de calcular.
//
// @Summary  Resumen del tablero
// @Tags     dashboard
// @Success  200 {object} dto.DashboardSummaryDTO
// @Router   /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	summary, err := w.Dashboard.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetActivity GET /api/dashboard/activity
// Últimas tareas creadas, consultadas directamente al almacén remoto.
func (h *DashboardHandler) GetActivity(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	tasks, err := w.Dashboard.RecentActivity(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

// GetReport GET /api/dashboard/report.pdf
//
// @Summary  Resumen del tablero en PDF
// @Tags     dashboard
// @Produce  application/pdf
// @Success  200 {file} binary
// @Router   /api/dashboard/report.pdf [get]
func (h *DashboardHandler) GetReport(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	pdf, err := w.Dashboard.Report(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="resumen.pdf"`)
	return c.Send(pdf)
}
