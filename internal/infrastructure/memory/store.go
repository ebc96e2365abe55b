// Package memory implementa repository.RemoteStore en memoria.
// Se usa en desarrollo (REMOTE_DRIVER=memory) y como almacén de pruebas.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

var _ repository.RemoteStore = (*Store)(nil)

// Store almacén remoto en memoria. Seguro para uso concurrente.
type Store struct {
	mu     sync.RWMutex
	specs  map[string]repository.TableSpec
	tables map[string][]repository.Row // orden de inserción
	now    func() time.Time
	newID  func() string
}

// Option configura el Store.
type Option func(*Store)

// WithClock reemplaza el reloj usado para las marcas de creación.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator reemplaza el generador de ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New crea el almacén con las tablas indicadas.
func New(specs []repository.TableSpec, opts ...Option) *Store {
	s := &Store{
		specs:  make(map[string]repository.TableSpec, len(specs)),
		tables: make(map[string][]repository.Row, len(specs)),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, spec := range specs {
		s.specs[spec.Name] = spec
		s.tables[spec.Name] = nil
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select devuelve copias de los registros que cumplen la consulta.
func (s *Store) Select(ctx context.Context, q repository.Query) ([]repository.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.tables[q.Table]
	if !ok {
		return nil, fmt.Errorf("tabla desconocida: %s", q.Table)
	}
	out := make([]repository.Row, 0, len(rows))
	for _, row := range rows {
		if matches(row, q.Filters) {
			out = append(out, row.Clone())
		}
	}
	if q.Order != nil {
		field, desc := q.Order.Field, q.Order.Desc
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(out[i][field], out[j][field])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Insert agrega el registro asignando id y fecha de creación si faltan.
func (s *Store) Insert(ctx context.Context, table string, record repository.Row) (repository.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	spec, ok := s.specs[table]
	if !ok {
		return nil, fmt.Errorf("tabla desconocida: %s", table)
	}
	row := record.Clone()
	if spec.IDField != "" {
		if id, _ := row[spec.IDField].(string); strings.TrimSpace(id) == "" {
			row[spec.IDField] = s.newID()
		}
		for _, existing := range s.tables[table] {
			if existing[spec.IDField] == row[spec.IDField] {
				return nil, fmt.Errorf("insert %s: %w", table, domain.ErrConflict)
			}
		}
	}
	if spec.CreatedField != "" && row[spec.CreatedField] == nil {
		row[spec.CreatedField] = s.now()
	}
	s.tables[table] = append(s.tables[table], row)
	return row.Clone(), nil
}

// Update aplica patch al primer registro que cumple match.
func (s *Store) Update(ctx context.Context, table string, match []repository.Filter, patch repository.Row) (repository.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("tabla desconocida: %s", table)
	}
	for i, row := range rows {
		if !matches(row, match) {
			continue
		}
		updated := row.Clone()
		for k, v := range patch {
			updated[k] = v
		}
		rows[i] = updated
		return updated.Clone(), nil
	}
	return nil, domain.ErrNotFound
}

// Delete elimina todos los registros que cumplen match.
func (s *Store) Delete(ctx context.Context, table string, match []repository.Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("tabla desconocida: %s", table)
	}
	kept := rows[:0:0]
	for _, row := range rows {
		if !matches(row, match) {
			kept = append(kept, row)
		}
	}
	if len(kept) == len(rows) {
		return domain.ErrNotFound
	}
	s.tables[table] = kept
	return nil
}

// Rows devuelve una copia de todos los registros de la tabla (para pruebas y diagnóstico).
func (s *Store) Rows(table string) []repository.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]repository.Row, 0, len(s.tables[table]))
	for _, row := range s.tables[table] {
		out = append(out, row.Clone())
	}
	return out
}

func matches(row repository.Row, filters []repository.Filter) bool {
	for _, f := range filters {
		if !equal(row[f.Field], f.Value) {
			return false
		}
	}
	return true
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// compare ordena nil al final en orden ascendente.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	switch x := a.(type) {
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case decimal.Decimal:
		if y, ok := b.(decimal.Decimal); ok {
			return x.Cmp(y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return decimal.NewFromFloat(x).Cmp(decimal.NewFromFloat(y))
		}
	case int:
		if y, ok := b.(int); ok {
			return x - y
		}
	case bool:
		if y, ok := b.(bool); ok && x != y {
			if x {
				return 1
			}
			return -1
		}
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
