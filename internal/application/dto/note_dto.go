package dto

import "time"

// CreateNoteRequest entrada para registrar una interacción con un cliente.
type CreateNoteRequest struct {
	Type        string     `json:"type"` // llamada, correo, reunion, nota
	Title       string     `json:"title"`
	Description string     `json:"description"`
	NextContact *time.Time `json:"next_contact"`
}

// NoteResponse salida de una nota.
type NoteResponse struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customer_id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	NextContact *time.Time `json:"next_contact,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateFileRequest metadatos de un archivo ya subido al almacenamiento externo.
type CreateFileRequest struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Type     string `json:"type"`
}

// FileResponse salida de un archivo adjunto.
type FileResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Type       string    `json:"type,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}
