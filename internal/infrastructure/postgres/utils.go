package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Negocio-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation           = "23505"
	codeForeignKeyViolation       = "23503"
	codeInvalidTextRepresentation = "22P02"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// isInvalidText un valor que no se puede convertir al tipo de la columna (p. ej. un id que no es UUID).
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeInvalidTextRepresentation
}

// wrapErr conserva el mensaje del proveedor y marca conflictos e ids mal formados para errors.Is.
// Un id mal formado no puede coincidir con ningún registro: se informa como no encontrado.
func wrapErr(op, table string, err error) error {
	switch {
	case isUniqueViolation(err), isForeignKeyViolation(err):
		return fmt.Errorf("%s %s: %w: %w", op, table, domain.ErrConflict, err)
	case isInvalidText(err):
		return fmt.Errorf("%s %s: %w: %w", op, table, domain.ErrNotFound, err)
	default:
		return fmt.Errorf("%s %s: %w", op, table, err)
	}
}
