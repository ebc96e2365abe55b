package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/application/usecase"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
	"github.com/jhoicas/Negocio-api/internal/infrastructure/memory"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

const (
	userA = "00000000-0000-0000-0000-00000000000a"
	userB = "00000000-0000-0000-0000-00000000000b"
)

var errProvider = errors.New("provider: 503 service unavailable")

// fixture casos de uso de un usuario sobre un remoto compartido.
type fixture struct {
	remote    repository.RemoteStore
	customers *usecase.CustomerUseCase
	tasks     *usecase.TaskUseCase
	sales     *usecase.SaleUseCase
	notes     *usecase.NoteUseCase
	files     *usecase.FileUseCase
}

func newMemory() *memory.Store {
	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	var n int64
	return memory.New(resource.Tables(), memory.WithClock(func() time.Time {
		return base.Add(time.Duration(atomic.AddInt64(&n, 1)) * time.Second)
	}))
}

func newFixture(t *testing.T, remote repository.RemoteStore, principal string) *fixture {
	t.Helper()
	sess := session.New()
	sess.SignIn(principal)
	opts := resource.Options{Logger: logger.Nop()}

	customerStore := resource.NewStore(remote, resource.Customers, sess, opts)
	notes := resource.NewChildren(remote, resource.Notes, opts)
	files := resource.NewChildren(remote, resource.Files, opts)
	customers := usecase.NewCustomerUseCase(customerStore, notes, files, logger.Nop())

	return &fixture{
		remote:    remote,
		customers: customers,
		tasks:     usecase.NewTaskUseCase(resource.NewStore(remote, resource.Tasks, sess, opts), customers),
		sales:     usecase.NewSaleUseCase(resource.NewStore(remote, resource.Sales, sess, opts), customers),
		notes:     usecase.NewNoteUseCase(customers, notes),
		files:     usecase.NewFileUseCase(customers, files),
	}
}

// faultyRemote falla en Delete sobre la tabla indicada.
type faultyRemote struct {
	repository.RemoteStore
	table string
}

func (f faultyRemote) Delete(ctx context.Context, table string, match []repository.Filter) error {
	if table == f.table {
		return errProvider
	}
	return f.RemoteStore.Delete(ctx, table, match)
}

func str(s string) *string { return &s }
