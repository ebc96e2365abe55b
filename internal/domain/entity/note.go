package entity

import "time"

// NoteType tipo de interacción registrada con el cliente.
type NoteType string

const (
	NoteCall    NoteType = "llamada"
	NoteEmail   NoteType = "correo"
	NoteMeeting NoteType = "reunion"
	NotePlain   NoteType = "nota"
)

// Valid informa si el tipo pertenece a la enumeración.
func (t NoteType) Valid() bool {
	switch t {
	case NoteCall, NoteEmail, NoteMeeting, NotePlain:
		return true
	}
	return false
}

// Note seguimiento de un cliente. No tiene dueño propio: lo hereda del cliente referenciado.
type Note struct {
	ID          string
	CustomerID  string
	Type        NoteType
	Title       string
	Description string
	NextContact *time.Time
	CreatedAt   time.Time
}
