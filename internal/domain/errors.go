package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	ErrRemoteFailure = errors.New("fallo del almacén remoto")
	ErrTimeout       = errors.New("tiempo de espera agotado")
)

// RemoteError envuelve un fallo del almacén remoto. El mensaje del proveedor se conserva
// tal cual, sin interpretarlo. errors.Is(err, ErrRemoteFailure) es true para todo RemoteError.
type RemoteError struct {
	Op      string // select, insert, update, delete, decode
	Table   string
	Message string
	Err     error
}

// NewRemoteError construye un RemoteError a partir de la causa original.
func NewRemoteError(op, table string, cause error) *RemoteError {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &RemoteError{Op: op, Table: table, Message: msg, Err: cause}
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Table, e.Message)
}

// Is permite errors.Is(err, ErrRemoteFailure).
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteFailure
}

func (e *RemoteError) Unwrap() error { return e.Err }
