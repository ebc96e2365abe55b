package entity

import "time"

// Task tarea o recordatorio del usuario, opcionalmente asociada a un cliente.
type Task struct {
	ID          string
	OwnerID     string
	CustomerID  string // vacío = sin cliente
	Title       string
	Description string
	Completed   bool
	DueDate     *time.Time
	CreatedAt   time.Time
}
