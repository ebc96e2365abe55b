package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "completado"
	SalePending   SaleStatus = "pendiente"
	SaleCancelled SaleStatus = "cancelado"
)

// SaleStatuses estados válidos en orden de presentación.
func SaleStatuses() []SaleStatus {
	return []SaleStatus{SaleCompleted, SalePending, SaleCancelled}
}

// Valid informa si el estado pertenece a la enumeración.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleCompleted, SalePending, SaleCancelled:
		return true
	}
	return false
}

// Sale venta registrada por el usuario.
// Amount nunca es inválido: los montos ausentes o mal formados se leen como cero (ver ParseAmount).
type Sale struct {
	ID           string
	OwnerID      string
	CustomerID   string // vacío = venta sin cliente
	Product      string // producto o servicio
	Amount       decimal.Decimal
	Status       SaleStatus
	SaleDate     time.Time
	RegisteredAt time.Time
}
