package resource

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

// DefaultFeedLimit tamaño del widget "actividad reciente".
const DefaultFeedLimit = 5

// Feed consulta de solo lectura: los N registros más recientes de un dueño.
// Cada llamada es una instantánea nueva; no mantiene espejo.
type Feed[T any] struct {
	remote  repository.RemoteStore
	schema  Schema[T]
	limit   int
	timeout time.Duration
}

// NewFeed construye el feed. limit <= 0 usa DefaultFeedLimit.
func NewFeed[T any](remote repository.RemoteStore, schema Schema[T], limit int, opts Options) *Feed[T] {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Feed[T]{remote: remote, schema: schema, limit: limit, timeout: timeout}
}

// Limit devuelve la cota configurada.
func (f *Feed[T]) Limit() int { return f.limit }

// Recent devuelve como máximo Limit() registros de ownerID, del más nuevo al más viejo.
// Sin registros devuelve un slice vacío (no nil) y sin error.
func (f *Feed[T]) Recent(ctx context.Context, ownerID string) ([]T, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	spec := f.schema.Spec()
	q := repository.From(spec.Name).
		Eq(f.schema.OwnerField(), ownerID).
		OrderBy(spec.CreatedField, true).
		Take(f.limit)

	rows, err := callRemote(ctx, f.timeout, func(ctx context.Context) ([]repository.Row, error) {
		return f.remote.Select(ctx, q)
	})
	if err = classify("select", spec.Name, err); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := decodeOwned(f.schema, row, ownerID)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return f.schema.CreatedAt(out[i]).After(f.schema.CreatedAt(out[j]))
	})
	if len(out) > f.limit {
		out = out[:f.limit]
	}
	return out, nil
}
