package resource_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
	"github.com/jhoicas/Negocio-api/internal/infrastructure/memory"
)

const (
	testOwner = "00000000-0000-0000-0000-000000000001"
	otherUser = "00000000-0000-0000-0000-000000000002"
)

var errProvider = errors.New("provider: connection reset by peer")

// newRemote crea un almacén en memoria con reloj monótono (un minuto por inserción).
func newRemote(t *testing.T) *memory.Store {
	t.Helper()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	var n int64
	return memory.New(resource.Tables(), memory.WithClock(func() time.Time {
		return base.Add(time.Duration(atomic.AddInt64(&n, 1)) * time.Minute)
	}))
}

func signedIn(principal string) *session.Session {
	s := session.New()
	s.SignIn(principal)
	return s
}

func customerFields(name string) repository.Row {
	return repository.Row{
		resource.ColCustomerName:   name,
		resource.ColCustomerStatus: "prospecto",
	}
}

func customerRow(id, owner string, at time.Time) repository.Row {
	return repository.Row{
		resource.ColCustomerID:           id,
		resource.ColOwnerID:              owner,
		resource.ColCustomerName:         "Cliente " + id,
		resource.ColCustomerStatus:       "activo",
		resource.ColCustomerRegisteredAt: at,
	}
}

// spyRemote cuenta llamadas y permite inyectar fallos por operación.
type spyRemote struct {
	repository.RemoteStore
	mu      sync.Mutex
	calls   map[string]int
	failing map[string]error
}

func newSpy(inner repository.RemoteStore) *spyRemote {
	return &spyRemote{RemoteStore: inner, calls: map[string]int{}, failing: map[string]error{}}
}

func (s *spyRemote) fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[op] = err
}

func (s *spyRemote) heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = map[string]error{}
}

func (s *spyRemote) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *spyRemote) enter(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	return s.failing[op]
}

func (s *spyRemote) Select(ctx context.Context, q repository.Query) ([]repository.Row, error) {
	if err := s.enter("select"); err != nil {
		return nil, err
	}
	return s.RemoteStore.Select(ctx, q)
}

func (s *spyRemote) Insert(ctx context.Context, table string, r repository.Row) (repository.Row, error) {
	if err := s.enter("insert"); err != nil {
		return nil, err
	}
	return s.RemoteStore.Insert(ctx, table, r)
}

func (s *spyRemote) Update(ctx context.Context, table string, m []repository.Filter, p repository.Row) (repository.Row, error) {
	if err := s.enter("update"); err != nil {
		return nil, err
	}
	return s.RemoteStore.Update(ctx, table, m, p)
}

func (s *spyRemote) Delete(ctx context.Context, table string, m []repository.Filter) error {
	if err := s.enter("delete"); err != nil {
		return err
	}
	return s.RemoteStore.Delete(ctx, table, m)
}

// gatedRemote retiene cada Select hasta que el test entrega las filas por su canal.
type gatedRemote struct {
	repository.RemoteStore
	calls chan chan []repository.Row
}

func newGated() *gatedRemote {
	return &gatedRemote{calls: make(chan chan []repository.Row)}
}

func (g *gatedRemote) Select(ctx context.Context, _ repository.Query) ([]repository.Row, error) {
	release := make(chan []repository.Row)
	select {
	case g.calls <- release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case rows := <-release:
		return rows, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// hangingRemote ignora el contexto y se bloquea hasta que el test cierra unblock.
type hangingRemote struct {
	repository.RemoteStore
	unblock chan struct{}
}

func (h *hangingRemote) Select(context.Context, repository.Query) ([]repository.Row, error) {
	<-h.unblock
	return nil, nil
}

func (h *hangingRemote) Insert(context.Context, string, repository.Row) (repository.Row, error) {
	<-h.unblock
	return nil, errProvider
}

// heldInsert ejecuta cada Insert contra el remoto y luego lo retiene hasta que el test cierre release.
type heldInsert struct {
	repository.RemoteStore
	entered chan struct{}
	release chan struct{}
}

func (h *heldInsert) Insert(ctx context.Context, table string, r repository.Row) (repository.Row, error) {
	row, err := h.RemoteStore.Insert(ctx, table, r)
	h.entered <- struct{}{}
	<-h.release
	return row, err
}

// slowCancelRemote respeta el contexto pero tarda un poco en retornar después de la cancelación.
type slowCancelRemote struct {
	repository.RemoteStore
	returned atomic.Bool
}

func (s *slowCancelRemote) Select(ctx context.Context, _ repository.Query) ([]repository.Row, error) {
	<-ctx.Done()
	time.Sleep(5 * time.Millisecond)
	s.returned.Store(true)
	return nil, ctx.Err()
}
