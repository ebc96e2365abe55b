package dto

import "time"

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
	Status  string `json:"status"` // prospecto (por defecto), activo, inactivo
	Origin  string `json:"origin"`
}

// UpdateCustomerRequest actualización parcial: solo se envían los campos no nulos.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Address *string `json:"address"`
	Status  *string `json:"status"`
	Origin  *string `json:"origin"`
}

// CustomerFilter filtros de GET /api/customers.
type CustomerFilter struct {
	Status string `query:"status"`
	Query  string `query:"q"` // búsqueda por nombre, correo o empresa sin distinguir tildes
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Company      string    `json:"company,omitempty"`
	Address      string    `json:"address,omitempty"`
	Status       string    `json:"status"`
	Origin       string    `json:"origin,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}
