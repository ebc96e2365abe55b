package entity

import "time"

// File referencia opaca a un archivo adjunto de un cliente (solo URL, sin contenido).
type File struct {
	ID         string
	CustomerID string
	Filename   string
	URL        string
	Type       string // etiqueta MIME o tipo libre
	UploadedAt time.Time
}
