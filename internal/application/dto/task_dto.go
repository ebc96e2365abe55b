package dto

import "time"

// CreateTaskRequest entrada para crear una tarea.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CustomerID  string     `json:"customer_id"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest actualización parcial de una tarea.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	CustomerID  *string    `json:"customer_id"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskFilter filtros de GET /api/tasks. Status: pending | completed.
type TaskFilter struct {
	Status string `query:"status"`
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CustomerID  string     `json:"customer_id,omitempty"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
