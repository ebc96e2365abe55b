// Package resource contiene el espejo local por dueño de cada colección remota (Store)
// y las consultas de solo lectura acotadas (Feed).
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

// DefaultTimeout tiempo máximo de cada llamada al almacén remoto.
const DefaultTimeout = 10 * time.Second

// ErrSuperseded lo devuelve Load cuando una carga posterior la reemplazó; su resultado se descarta.
var ErrSuperseded = errors.New("carga reemplazada por una solicitud más reciente")

// Options configuración opcional de Store y Feed.
type Options struct {
	Timeout time.Duration // 0 = DefaultTimeout
	Logger  *logger.Logger
}

// Store espejo local de la colección de un usuario para un tipo de entidad.
//
// Invariantes:
//   - Después de cada operación completada el espejo coincide con lo que el remoto devolvería
//     para el mismo dueño: sin ids duplicados ni registros ya eliminados.
//   - Una operación fallida nunca modifica el espejo; las exitosas lo modifican de forma atómica.
//   - Solo la carga más reciente puede reemplazar el espejo (contador de generación).
//   - Las mutaciones confirmadas mientras una carga está en curso se reaplican sobre su
//     resultado antes de reemplazar el espejo.
type Store[T any] struct {
	remote  repository.RemoteStore
	schema  Schema[T]
	session PrincipalSource
	timeout time.Duration
	log     *logger.Logger

	mu      sync.RWMutex
	items   []T
	loading bool
	loaded  bool
	err     error
	gen     uint64        // cargas emitidas (y Reset)
	epoch   uint64        // Reset
	journal []mutation[T] // mutaciones confirmadas durante la carga vigente
	settled chan struct{} // se cierra cuando deja de haber carga en curso
}

type mutationKind int

const (
	mutationCreate mutationKind = iota
	mutationUpdate
	mutationDelete
)

type mutation[T any] struct {
	kind mutationKind
	id   string
	item T
}

// NewStore construye el espejo vacío.
func NewStore[T any](remote repository.RemoteStore, schema Schema[T], session PrincipalSource, opts Options) *Store[T] {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Store[T]{
		remote:  remote,
		schema:  schema,
		session: session,
		timeout: timeout,
		log:     opts.Logger.Component("store." + schema.Spec().Name),
	}
}

// ── Lectura del espejo ────────────────────────────────────────────────────────

// Items devuelve una copia del espejo en su orden actual.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Find busca un registro del espejo por id.
func (s *Store[T]) Find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Loading informa si hay una carga vigente en curso.
func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Loaded informa si al menos una carga terminó con éxito desde el último Reset.
func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Err devuelve el error de la última carga vigente, o nil.
func (s *Store[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Reset vacía el espejo (cierre de sesión) y descarta las cargas en curso.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.epoch++
	s.items = nil
	s.loading = false
	s.loaded = false
	s.err = nil
	s.journal = nil
	s.settle()
}

// Wait espera a que no haya carga en curso y devuelve el error de la última carga vigente.
// Sirve a quien recibió ErrSuperseded y necesita el resultado de la carga que lo reemplazó.
func (s *Store[T]) Wait(ctx context.Context) error {
	for {
		s.mu.RLock()
		ch, err := s.settled, s.err
		s.mu.RUnlock()
		if ch == nil {
			return err
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ── Operaciones ───────────────────────────────────────────────────────────────

// LoadLatest como Load, pero si otra carga la reemplaza espera el resultado de la más reciente,
// de modo que al retornar sin error el espejo refleja una carga completa. Si un Reset descartó
// la carga devuelve domain.ErrUnauthorized.
func (s *Store[T]) LoadLatest(ctx context.Context, ownerID string) error {
	err := s.Load(ctx, ownerID)
	if !errors.Is(err, ErrSuperseded) {
		return err
	}
	if err := s.Wait(ctx); err != nil {
		return err
	}
	if !s.Loaded() {
		return domain.ErrUnauthorized
	}
	return nil
}

// Load trae todos los registros de ownerID (vacío = usuario de la sesión) ordenados por el
// campo por defecto descendente y reemplaza el espejo. Si falla, el espejo anterior queda intacto.
// Si otra carga se emitió mientras tanto, devuelve ErrSuperseded sin tocar el espejo.
func (s *Store[T]) Load(ctx context.Context, ownerID string) error {
	owner, err := s.authorize(ownerID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	s.journal = nil
	if s.settled == nil {
		s.settled = make(chan struct{})
	}
	s.mu.Unlock()

	spec := s.schema.Spec()
	q := repository.From(spec.Name).
		Eq(s.schema.OwnerField(), owner).
		OrderBy(s.schema.OrderField(), true)

	rows, err := callRemote(ctx, s.timeout, func(ctx context.Context) ([]repository.Row, error) {
		return s.remote.Select(ctx, q)
	})
	err = classify("select", spec.Name, err)

	var items []T
	if err == nil {
		items, err = s.decodeAll(rows, owner)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug().Uint64("gen", gen).Uint64("vigente", s.gen).Msg("carga obsoleta descartada")
		return ErrSuperseded
	}
	s.loading = false
	s.settle()
	journal := s.journal
	s.journal = nil
	if err != nil {
		s.err = err
		s.log.Warn().Err(err).Str("owner", owner).Msg("carga fallida, se conserva el espejo anterior")
		return err
	}
	for _, m := range journal {
		items = s.apply(items, m)
	}
	s.items = items
	s.loaded = true
	s.err = nil
	s.log.Debug().Str("owner", owner).Int("registros", len(items)).Msg("espejo recargado")
	return nil
}

// Create inserta un registro con el dueño de la sesión y lo antepone al espejo sin recargar.
// Sin usuario autenticado devuelve domain.ErrUnauthorized y no llama al remoto.
func (s *Store[T]) Create(ctx context.Context, fields repository.Row) (T, error) {
	var zero T
	principal, ok := s.session.CurrentPrincipal()
	if !ok {
		return zero, domain.ErrUnauthorized
	}
	epoch := s.currentEpoch()
	spec := s.schema.Spec()
	record := fields.Clone()
	delete(record, spec.IDField)
	record[s.schema.OwnerField()] = principal

	row, err := callRemote(ctx, s.timeout, func(ctx context.Context) (repository.Row, error) {
		return s.remote.Insert(ctx, spec.Name, record)
	})
	if err = classify("insert", spec.Name, err); err != nil {
		return zero, err
	}
	item, err := s.decode(row, principal)
	if err != nil {
		return zero, err
	}

	s.commit(epoch, mutation[T]{kind: mutationCreate, id: s.schema.ID(item), item: item})
	return item, nil
}

// Update envía solo los campos presentes en patch y reemplaza el registro en su posición.
// El dueño es inmutable: un patch que intente cambiarlo devuelve domain.ErrInvalidInput.
func (s *Store[T]) Update(ctx context.Context, id string, patch repository.Row) (T, error) {
	var zero T
	principal, ok := s.session.CurrentPrincipal()
	if !ok {
		return zero, domain.ErrUnauthorized
	}
	if id == "" {
		return zero, fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	id = canonicalID(id)
	epoch := s.currentEpoch()
	spec := s.schema.Spec()
	changes := patch.Clone()
	delete(changes, spec.IDField)
	if v, present := changes[s.schema.OwnerField()]; present {
		if owner, _ := v.(string); !sameID(owner, principal) {
			return zero, fmt.Errorf("%w: el dueño no se puede modificar", domain.ErrInvalidInput)
		}
		delete(changes, s.schema.OwnerField())
	}
	if len(changes) == 0 {
		return zero, fmt.Errorf("%w: sin campos para actualizar", domain.ErrInvalidInput)
	}

	match := s.match(id, principal)
	row, err := callRemote(ctx, s.timeout, func(ctx context.Context) (repository.Row, error) {
		return s.remote.Update(ctx, spec.Name, match, changes)
	})
	if err = classify("update", spec.Name, err); err != nil {
		return zero, err
	}
	item, err := s.decode(row, principal)
	if err != nil {
		return zero, err
	}
	if got := s.schema.ID(item); got != id {
		return zero, domain.NewRemoteError("update", spec.Name, fmt.Errorf("se esperaba id %s y llegó %s", id, got))
	}

	s.commit(epoch, mutation[T]{kind: mutationUpdate, id: id, item: item})
	return item, nil
}

// Delete elimina el registro en el remoto y luego del espejo.
// Si el id no existe para el usuario devuelve domain.ErrNotFound y el espejo no cambia.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	principal, ok := s.session.CurrentPrincipal()
	if !ok {
		return domain.ErrUnauthorized
	}
	if id == "" {
		return fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	id = canonicalID(id)
	epoch := s.currentEpoch()
	spec := s.schema.Spec()
	match := s.match(id, principal)
	_, err := callRemote(ctx, s.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.remote.Delete(ctx, spec.Name, match)
	})
	if err = classify("delete", spec.Name, err); err != nil {
		return err
	}

	s.commit(epoch, mutation[T]{kind: mutationDelete, id: id})
	return nil
}

// Owns verifica que el registro id pertenezca al usuario de la sesión.
// Consulta el espejo y, si no está ahí, el remoto: inexistente = domain.ErrNotFound,
// de otro dueño = domain.ErrForbidden.
func (s *Store[T]) Owns(ctx context.Context, id string) error {
	principal, ok := s.session.CurrentPrincipal()
	if !ok {
		return domain.ErrUnauthorized
	}
	id = canonicalID(id)
	if _, found := s.Find(id); found {
		return nil
	}
	spec := s.schema.Spec()
	q := repository.From(spec.Name).Eq(spec.IDField, id).Take(1)
	rows, err := callRemote(ctx, s.timeout, func(ctx context.Context) ([]repository.Row, error) {
		return s.remote.Select(ctx, q)
	})
	if err = classify("select", spec.Name, err); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s %s: %w", spec.Name, id, domain.ErrNotFound)
	}
	item, err := s.schema.Decode(rows[0])
	if err != nil {
		return domain.NewRemoteError("decode", spec.Name, err)
	}
	if !sameID(s.schema.Owner(item), principal) {
		return domain.ErrForbidden
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// authorize resuelve el dueño a consultar: debe coincidir con el usuario de la sesión.
func (s *Store[T]) authorize(ownerID string) (string, error) {
	principal, ok := s.session.CurrentPrincipal()
	if !ok {
		return "", domain.ErrUnauthorized
	}
	if ownerID == "" {
		return principal, nil
	}
	if !sameID(ownerID, principal) {
		return "", domain.ErrForbidden
	}
	return principal, nil
}

func (s *Store[T]) currentEpoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// commit aplica m al espejo y, si hay una carga en curso, la anota para reaplicarla sobre
// su resultado. Si hubo un Reset desde que empezó la operación, m se descarta.
func (s *Store[T]) commit(epoch uint64, m mutation[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		s.log.Debug().Str("id", m.id).Msg("mutación posterior a un Reset descartada del espejo")
		return
	}
	s.items = s.apply(s.items, m)
	if s.loading {
		s.journal = append(s.journal, m)
	}
}

// apply devuelve items con m aplicada; es idempotente. No modifica el slice recibido.
func (s *Store[T]) apply(items []T, m mutation[T]) []T {
	switch m.kind {
	case mutationCreate:
		next := make([]T, 0, len(items)+1)
		next = append(next, m.item)
		for _, existing := range items {
			if s.schema.ID(existing) != m.id {
				next = append(next, existing)
			}
		}
		return next
	case mutationUpdate:
		next := make([]T, len(items))
		copy(next, items)
		for i, existing := range next {
			if s.schema.ID(existing) == m.id {
				next[i] = m.item
			}
		}
		return next
	default:
		next := make([]T, 0, len(items))
		for _, existing := range items {
			if s.schema.ID(existing) != m.id {
				next = append(next, existing)
			}
		}
		return next
	}
}

// settle requiere s.mu tomado.
func (s *Store[T]) settle() {
	if s.settled != nil {
		close(s.settled)
		s.settled = nil
	}
}

func (s *Store[T]) match(id, principal string) []repository.Filter {
	return []repository.Filter{
		{Field: s.schema.Spec().IDField, Value: id},
		{Field: s.schema.OwnerField(), Value: principal},
	}
}

// indexOf requiere s.mu tomado.
func (s *Store[T]) indexOf(id string) int {
	for i, it := range s.items {
		if s.schema.ID(it) == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) decode(row repository.Row, owner string) (T, error) {
	return decodeOwned(s.schema, row, owner)
}

// decodeAll decodifica todas las filas; una sola inválida invalida la carga completa.
// Ids repetidos se conservan una sola vez (la primera aparición).
func (s *Store[T]) decodeAll(rows []repository.Row, owner string) ([]T, error) {
	items := make([]T, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		item, err := s.decode(row, owner)
		if err != nil {
			return nil, err
		}
		id := s.schema.ID(item)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

// decodeOwned decodifica una fila y verifica que pertenezca al dueño esperado.
func decodeOwned[T any](schema Schema[T], row repository.Row, owner string) (T, error) {
	table := schema.Spec().Name
	item, err := schema.Decode(row)
	if err != nil {
		var zero T
		return zero, domain.NewRemoteError("decode", table, err)
	}
	if got := schema.Owner(item); !sameID(got, owner) {
		var zero T
		return zero, domain.NewRemoteError("decode", table, fmt.Errorf("registro de otro dueño (%s)", got))
	}
	return item, nil
}

// canonicalID lleva un UUID a su forma canónica (minúsculas, con guiones). Otros valores quedan igual.
func canonicalID(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

func sameID(a, b string) bool {
	return canonicalID(a) == canonicalID(b)
}

// callRemote ejecuta fn con el tiempo máximo indicado. Al vencer el plazo espera otro tanto a
// que fn termine (el remoto debería abortar al cancelarse el contexto); si el remoto no lo
// respeta, retorna igual y el resultado tardío se descarta.
func callRemote[R any](ctx context.Context, timeout time.Duration, fn func(context.Context) (R, error)) (R, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   R
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		grace := time.NewTimer(timeout)
		defer grace.Stop()
		select {
		case <-ch:
		case <-grace.C:
		}
		var zero R
		return zero, ctx.Err()
	}
}

// classify traduce cualquier fallo del remoto a la taxonomía del dominio.
// Solo distingue "no encontrado" y "plazo vencido"; el resto es un RemoteError opaco.
func classify(op, table string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrNotFound)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrTimeout)
	case errors.Is(err, domain.ErrRemoteFailure):
		return err
	default:
		return domain.NewRemoteError(op, table, err)
	}
}
