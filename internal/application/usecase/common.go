package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/domain"
)

// CustomerChecker verifica que un cliente pertenezca al usuario de la sesión.
type CustomerChecker interface {
	Owns(ctx context.Context, customerID string) error
}

// collection arma la vista de una colección a partir del espejo, filtrando y convirtiendo cada registro.
func collection[T, R any](store *resource.Store[T], keep func(T) bool, conv func(T) R) dto.CollectionResponse[R] {
	items := store.Items()
	out := make([]R, 0, len(items))
	for _, it := range items {
		if keep == nil || keep(it) {
			out = append(out, conv(it))
		}
	}
	resp := dto.CollectionResponse[R]{Items: out, Loading: store.Loading()}
	if err := store.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, field)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidInput}, args...)...)
}

// fold normaliza texto para búsquedas: minúsculas y sin tildes ("José" → "jose").
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
