// Package workspace agrupa, por usuario, la sesión, los espejos y los casos de uso,
// y mantiene un espacio de trabajo vivo por cada usuario activo.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Negocio-api/internal/application/analytics"
	"github.com/jhoicas/Negocio-api/internal/application/ports"
	"github.com/jhoicas/Negocio-api/internal/application/resource"
	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/application/usecase"
	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/domain/repository"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

// Config parámetros comunes a todos los espacios de trabajo.
type Config struct {
	Timeout   time.Duration // por llamada remota; 0 = resource.DefaultTimeout
	FeedLimit int           // 0 = resource.DefaultFeedLimit
	Logger    *logger.Logger
	Renderer  ports.ReportRenderer
}

// Workspace estado de un usuario: sesión, espejos de clientes, tareas y ventas, y casos de uso.
//
// Al autenticarse la sesión se disparan en segundo plano las cargas iniciales;
// al cerrarse, los espejos se vacían.
type Workspace struct {
	Session   *session.Session
	Customers *usecase.CustomerUseCase
	Tasks     *usecase.TaskUseCase
	Sales     *usecase.SaleUseCase
	Notes     *usecase.NoteUseCase
	Files     *usecase.FileUseCase
	Dashboard *analytics.DashboardUseCase

	customers *resource.Store[entity.Customer]
	tasks     *resource.Store[entity.Task]
	sales     *resource.Store[entity.Sale]
	log       *logger.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	wg          sync.WaitGroup

	mu       sync.Mutex
	lastUsed time.Time
}

// New construye un espacio de trabajo con la sesión pendiente (sin usuario).
func New(remote repository.RemoteStore, cfg Config) *Workspace {
	sess := session.New()
	opts := resource.Options{Timeout: cfg.Timeout, Logger: cfg.Logger}

	customerStore := resource.NewStore(remote, resource.Customers, sess, opts)
	taskStore := resource.NewStore(remote, resource.Tasks, sess, opts)
	saleStore := resource.NewStore(remote, resource.Sales, sess, opts)
	notes := resource.NewChildren(remote, resource.Notes, opts)
	files := resource.NewChildren(remote, resource.Files, opts)
	activity := resource.NewFeed(remote, resource.Tasks, cfg.FeedLimit, opts)

	customers := usecase.NewCustomerUseCase(customerStore, notes, files, cfg.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	w := &Workspace{
		Session:   sess,
		Customers: customers,
		Tasks:     usecase.NewTaskUseCase(taskStore, customers),
		Sales:     usecase.NewSaleUseCase(saleStore, customers),
		Notes:     usecase.NewNoteUseCase(customers, notes),
		Files:     usecase.NewFileUseCase(customers, files),
		Dashboard: analytics.NewDashboardUseCase(sess, customerStore, taskStore, saleStore, activity, cfg.Renderer),
		customers: customerStore,
		tasks:     taskStore,
		sales:     saleStore,
		log:       cfg.Logger.Component("workspace"),
		ctx:       ctx,
		cancel:    cancel,
		lastUsed:  time.Now(),
	}
	w.unsubscribe = sess.Subscribe(w.onSessionChange)
	return w
}

func (w *Workspace) onSessionChange(ev session.Event) {
	switch ev.State {
	case session.StateAuthenticated:
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			err := w.Refresh(w.ctx)
			if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, domain.ErrUnauthorized) {
				w.log.Warn().Err(err).Str("usuario", ev.Principal).Msg("carga inicial incompleta")
			}
		}()
	case session.StateUnauthenticated:
		w.customers.Reset()
		w.tasks.Reset()
		w.sales.Reset()
	}
}

// Refresh recarga en paralelo clientes, tareas y ventas.
// Si otra carga reemplaza alguna de estas, Refresh espera el resultado de la más reciente.
func (w *Workspace) Refresh(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return load(gctx, "clientes", w.customers) })
	g.Go(func() error { return load(gctx, "tareas", w.tasks) })
	g.Go(func() error { return load(gctx, "ventas", w.sales) })
	return g.Wait()
}

func load[T any](ctx context.Context, name string, store *resource.Store[T]) error {
	if err := store.LoadLatest(ctx, ""); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Wait espera a que terminen las cargas en segundo plano.
func (w *Workspace) Wait() {
	w.wg.Wait()
}

// Close cierra la sesión, cancela las cargas en curso y espera a que terminen.
func (w *Workspace) Close() {
	w.unsubscribe()
	w.Session.SignOut()
	w.customers.Reset()
	w.tasks.Reset()
	w.sales.Reset()
	w.cancel()
	w.wg.Wait()
}

// Touch registra uso del espacio de trabajo.
func (w *Workspace) Touch(now time.Time) {
	w.mu.Lock()
	w.lastUsed = now
	w.mu.Unlock()
}

// LastUsed momento del último uso registrado.
func (w *Workspace) LastUsed() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastUsed
}
