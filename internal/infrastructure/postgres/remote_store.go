package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

var _ repository.RemoteStore = (*RemoteStore)(nil)

// Querier abstracción de pool o tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RemoteStore implementación de repository.RemoteStore sobre PostgreSQL.
// Las filas se devuelven como mapas columna → valor (SELECT * / RETURNING *);
// la validación de tipos la hace la capa de aplicación al decodificar.
type RemoteStore struct {
	q      Querier
	tables map[string]repository.TableSpec
	now    func() time.Time
}

// NewRemoteStore construye el adaptador para las tablas indicadas. Pasar pool o tx (Querier).
func NewRemoteStore(q Querier, specs []repository.TableSpec) *RemoteStore {
	tables := make(map[string]repository.TableSpec, len(specs))
	for _, s := range specs {
		tables[s.Name] = s
	}
	return &RemoteStore{q: q, tables: tables, now: time.Now}
}

// Select ejecuta la consulta y devuelve todas las filas.
func (s *RemoteStore) Select(ctx context.Context, q repository.Query) ([]repository.Row, error) {
	if _, err := s.spec(q.Table); err != nil {
		return nil, err
	}
	query, args := buildSelect(q)
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("select", q.Table, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, wrapErr("select", q.Table, err)
	}
	out := make([]repository.Row, len(maps))
	for i, m := range maps {
		out[i] = repository.Row(m)
	}
	return out, nil
}

// Insert persiste el registro y devuelve la fila completa. Asigna id y fecha de creación si faltan.
func (s *RemoteStore) Insert(ctx context.Context, table string, record repository.Row) (repository.Row, error) {
	spec, err := s.spec(table)
	if err != nil {
		return nil, err
	}
	row := record.Clone()
	if v, ok := row[spec.IDField]; !ok || v == nil || v == "" {
		row[spec.IDField] = uuid.NewString()
	}
	if spec.CreatedField != "" {
		if v, ok := row[spec.CreatedField]; !ok || v == nil {
			row[spec.CreatedField] = s.now()
		}
	}
	query, args := buildInsert(table, row)
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("insert", table, err)
	}
	out, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, wrapErr("insert", table, err)
	}
	return repository.Row(out), nil
}

// Update aplica patch a las filas que cumplen match y devuelve la primera.
// Sin coincidencias devuelve domain.ErrNotFound.
func (s *RemoteStore) Update(ctx context.Context, table string, match []repository.Filter, patch repository.Row) (repository.Row, error) {
	if _, err := s.spec(table); err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("update %s: %w: sin campos", table, domain.ErrInvalidInput)
	}
	if len(match) == 0 {
		return nil, fmt.Errorf("update %s: %w: sin filtro", table, domain.ErrInvalidInput)
	}
	query, args := buildUpdate(table, match, patch)
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("update", table, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, wrapErr("update", table, err)
	}
	if len(maps) == 0 {
		return nil, domain.ErrNotFound
	}
	return repository.Row(maps[0]), nil
}

// Delete elimina las filas que cumplen match. Sin coincidencias devuelve domain.ErrNotFound.
func (s *RemoteStore) Delete(ctx context.Context, table string, match []repository.Filter) error {
	if _, err := s.spec(table); err != nil {
		return err
	}
	if len(match) == 0 {
		return fmt.Errorf("delete %s: %w: sin filtro", table, domain.ErrInvalidInput)
	}
	query, args := buildDelete(table, match)
	tag, err := s.q.Exec(ctx, query, args...)
	if err != nil {
		return wrapErr("delete", table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *RemoteStore) spec(table string) (repository.TableSpec, error) {
	spec, ok := s.tables[table]
	if !ok {
		return repository.TableSpec{}, errors.New("tabla desconocida: " + table)
	}
	return spec, nil
}

// ── SQL ───────────────────────────────────────────────────────────────────────

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// sortedKeys columnas en orden estable para que el SQL generado sea determinista.
func sortedKeys(row repository.Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// where agrega las condiciones a args; un valor nil se compara con IS NULL.
func where(filters []repository.Filter, args []any) (string, []any) {
	if len(filters) == 0 {
		return "", args
	}
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		if f.Value == nil {
			parts = append(parts, ident(f.Field)+" IS NULL")
			continue
		}
		args = append(args, f.Value)
		parts = append(parts, fmt.Sprintf("%s = $%d", ident(f.Field), len(args)))
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func buildSelect(q repository.Query) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(ident(q.Table))
	clause, args := where(q.Filters, nil)
	b.WriteString(clause)
	if q.Order != nil {
		b.WriteString(" ORDER BY ")
		b.WriteString(ident(q.Order.Field))
		if q.Order.Desc {
			b.WriteString(" DESC NULLS LAST")
		} else {
			b.WriteString(" ASC NULLS LAST")
		}
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}
	return b.String(), args
}

func buildInsert(table string, row repository.Row) (string, []any) {
	cols := sortedKeys(row)
	names := make([]string, len(cols))
	params := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = ident(c)
		params[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[c]
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		ident(table), strings.Join(names, ", "), strings.Join(params, ", ")), args
}

func buildUpdate(table string, match []repository.Filter, patch repository.Row) (string, []any) {
	cols := sortedKeys(patch)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+len(match))
	for i, c := range cols {
		args = append(args, patch[c])
		sets[i] = fmt.Sprintf("%s = $%d", ident(c), len(args))
	}
	clause, args := where(match, args)
	return fmt.Sprintf("UPDATE %s SET %s%s RETURNING *", ident(table), strings.Join(sets, ", "), clause), args
}

func buildDelete(table string, match []repository.Filter) (string, []any) {
	clause, args := where(match, nil)
	return "DELETE FROM " + ident(table) + clause, args
}
