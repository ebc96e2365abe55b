package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Indicadores calculados sobre las colecciones ya cargadas del usuario.
type DashboardSummaryDTO struct {
	TotalCustomers int `json:"total_customers"`
	PendingTasks   int `json:"pending_tasks"`

	// Ventas del mes en curso frente al mes anterior
	CurrentMonthSales decimal.Decimal  `json:"current_month_sales"`
	PriorMonthSales   decimal.Decimal  `json:"prior_month_sales"`
	SalesGrowth       decimal.Decimal  `json:"sales_growth"` // porcentaje; 0 si el mes anterior no tuvo ventas
	SalesCount        int              `json:"sales_count"`
	SalesByStatus     []StatusCountDTO `json:"sales_by_status"`

	RecentActivity []TaskResponse `json:"recent_activity"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// StatusCountDTO ventas del mes agrupadas por estado.
type StatusCountDTO struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}
