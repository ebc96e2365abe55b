package entity

import "time"

// CustomerStatus estado comercial del cliente (enumeración cerrada).
type CustomerStatus string

const (
	CustomerProspect CustomerStatus = "prospecto"
	CustomerActive   CustomerStatus = "activo"
	CustomerInactive CustomerStatus = "inactivo"
)

// Valid informa si el estado pertenece a la enumeración.
func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerProspect, CustomerActive, CustomerInactive:
		return true
	}
	return false
}

// Customer representa un cliente del usuario (privado por dueño).
type Customer struct {
	ID           string
	OwnerID      string
	Name         string
	Email        string
	Phone        string
	Company      string
	Address      string
	Status       CustomerStatus
	Origin       string // referido, web, redes, etc.
	RegisteredAt time.Time
}
