package repository

import "context"

// Row registro crudo tal como lo entrega el almacén remoto (columna → valor).
// El esquema no está garantizado: cada tipo se valida al decodificar.
type Row map[string]any

// Clone devuelve una copia superficial del registro.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Filter condición de igualdad campo = valor. Varios filtros se combinan con AND.
type Filter struct {
	Field string
	Value any
}

// Order criterio de ordenamiento.
type Order struct {
	Field string
	Desc  bool
}

// Query consulta de lectura: select(table) → filter* → order? → limit?
type Query struct {
	Table   string
	Filters []Filter
	Order   *Order
	Limit   int // 0 = sin límite
}

// From inicia una consulta sobre la tabla indicada.
func From(table string) Query {
	return Query{Table: table}
}

// Eq agrega un filtro de igualdad.
func (q Query) Eq(field string, value any) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Field: field, Value: value})
	return q
}

// OrderBy define el ordenamiento.
func (q Query) OrderBy(field string, desc bool) Query {
	q.Order = &Order{Field: field, Desc: desc}
	return q
}

// Take limita la cantidad de registros.
func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

// TableSpec describe los campos que el almacén remoto completa por su cuenta al insertar.
type TableSpec struct {
	Name         string
	IDField      string // se asigna un UUID si falta
	CreatedField string // se asigna la hora actual si falta
}

// RemoteStore puerto hacia el almacén persistente compartido. No conoce dueños:
// el aislamiento por usuario lo aplican los filtros que envía la capa de aplicación.
//
// Contrato de errores:
//   - Update y Delete devuelven domain.ErrNotFound si ningún registro coincide con match.
//   - Cualquier otro fallo (transporte, validación del proveedor) es opaco para el núcleo.
type RemoteStore interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, record Row) (Row, error)
	Update(ctx context.Context, table string, match []Filter, patch Row) (Row, error)
	Delete(ctx context.Context, table string, match []Filter) error
}
