package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	CustomerID string          `json:"customer_id"`
	Product    string          `json:"product"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`    // completado (por defecto), pendiente, cancelado
	SaleDate   *time.Time      `json:"sale_date"` // nil = ahora
}

// UpdateSaleRequest actualización parcial de una venta.
type UpdateSaleRequest struct {
	CustomerID *string          `json:"customer_id"`
	Product    *string          `json:"product"`
	Amount     *decimal.Decimal `json:"amount"`
	Status     *string          `json:"status"`
	SaleDate   *time.Time       `json:"sale_date"`
}

// SaleFilter filtros de GET /api/sales.
type SaleFilter struct {
	Status     string `query:"status"`
	CustomerID string `query:"customer_id"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id,omitempty"`
	Product      string          `json:"product"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	SaleDate     time.Time       `json:"sale_date"`
	RegisteredAt time.Time       `json:"registered_at"`
}
