package resource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

// Children acceso a registros dependientes de un padre (notas y archivos de un cliente).
// No mantiene espejo: cada lectura es una instantánea. La pertenencia del padre al
// usuario la verifica quien lo invoca.
type Children[T any] struct {
	remote  repository.RemoteStore
	schema  Schema[T]
	timeout time.Duration
	log     *logger.Logger
}

// NewChildren construye el acceso. El campo de dueño del esquema es la referencia al padre.
func NewChildren[T any](remote repository.RemoteStore, schema Schema[T], opts Options) *Children[T] {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Children[T]{
		remote:  remote,
		schema:  schema,
		timeout: timeout,
		log:     opts.Logger.Component("children." + schema.Spec().Name),
	}
}

// List devuelve los registros del padre, del más nuevo al más viejo.
func (c *Children[T]) List(ctx context.Context, parentID string) ([]T, error) {
	if parentID == "" {
		return nil, fmt.Errorf("%w: padre requerido", domain.ErrInvalidInput)
	}
	parentID = canonicalID(parentID)
	spec := c.schema.Spec()
	q := repository.From(spec.Name).
		Eq(c.schema.OwnerField(), parentID).
		OrderBy(c.schema.OrderField(), true)
	rows, err := callRemote(ctx, c.timeout, func(ctx context.Context) ([]repository.Row, error) {
		return c.remote.Select(ctx, q)
	})
	if err = classify("select", spec.Name, err); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := decodeOwned(c.schema, row, parentID)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Create inserta un registro bajo el padre indicado.
func (c *Children[T]) Create(ctx context.Context, parentID string, fields repository.Row) (T, error) {
	var zero T
	if parentID == "" {
		return zero, fmt.Errorf("%w: padre requerido", domain.ErrInvalidInput)
	}
	parentID = canonicalID(parentID)
	spec := c.schema.Spec()
	record := fields.Clone()
	delete(record, spec.IDField)
	record[c.schema.OwnerField()] = parentID

	row, err := callRemote(ctx, c.timeout, func(ctx context.Context) (repository.Row, error) {
		return c.remote.Insert(ctx, spec.Name, record)
	})
	if err = classify("insert", spec.Name, err); err != nil {
		return zero, err
	}
	return decodeOwned(c.schema, row, parentID)
}

// Delete elimina un registro del padre; si no existe bajo ese padre devuelve domain.ErrNotFound.
func (c *Children[T]) Delete(ctx context.Context, parentID, id string) error {
	if parentID == "" || id == "" {
		return fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	parentID, id = canonicalID(parentID), canonicalID(id)
	spec := c.schema.Spec()
	match := []repository.Filter{
		{Field: spec.IDField, Value: id},
		{Field: c.schema.OwnerField(), Value: parentID},
	}
	_, err := callRemote(ctx, c.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.remote.Delete(ctx, spec.Name, match)
	})
	return classify("delete", spec.Name, err)
}

// DeleteAll elimina todos los registros del padre. Que no haya ninguno no es un error.
func (c *Children[T]) DeleteAll(ctx context.Context, parentID string) error {
	if parentID == "" {
		return fmt.Errorf("%w: padre requerido", domain.ErrInvalidInput)
	}
	parentID = canonicalID(parentID)
	spec := c.schema.Spec()
	match := []repository.Filter{{Field: c.schema.OwnerField(), Value: parentID}}
	_, err := callRemote(ctx, c.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.remote.Delete(ctx, spec.Name, match)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err = classify("delete", spec.Name, err); err != nil {
		c.log.Warn().Err(err).Str("padre", parentID).Msg("no se pudieron eliminar los dependientes")
		return err
	}
	return nil
}
