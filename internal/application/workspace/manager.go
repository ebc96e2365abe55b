package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Negocio-api/internal/domain/repository"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

// DefaultIdle tiempo sin uso tras el cual un espacio de trabajo se descarta.
const DefaultIdle = 30 * time.Minute

// Manager mantiene un espacio de trabajo por usuario autenticado.
type Manager struct {
	remote repository.RemoteStore
	cfg    Config
	idle   time.Duration
	now    func() time.Time
	log    *logger.Logger

	mu     sync.Mutex
	spaces map[string]*Workspace
}

// ManagerOption configura un Manager.
type ManagerOption func(*Manager)

// WithClock reemplaza el reloj usado para medir inactividad.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager construye el administrador. idle <= 0 usa DefaultIdle.
func NewManager(remote repository.RemoteStore, cfg Config, idle time.Duration, opts ...ManagerOption) *Manager {
	if idle <= 0 {
		idle = DefaultIdle
	}
	m := &Manager{
		remote: remote,
		cfg:    cfg,
		idle:   idle,
		now:    time.Now,
		log:    cfg.Logger.Component("workspace.manager"),
		spaces: make(map[string]*Workspace),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Acquire devuelve el espacio de trabajo del usuario, creándolo (y autenticando su sesión)
// si no existe. Cada llamada cuenta como uso.
func (m *Manager) Acquire(principal string) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if w, ok := m.spaces[principal]; ok {
		w.Touch(now)
		return w
	}
	w := New(m.remote, m.cfg)
	w.Touch(now)
	w.Session.SignIn(principal)
	m.spaces[principal] = w
	m.log.Debug().Str("usuario", principal).Msg("espacio de trabajo creado")
	return w
}

// Evict cierra y descarta el espacio de trabajo del usuario, si existe.
func (m *Manager) Evict(principal string) {
	m.mu.Lock()
	w, ok := m.spaces[principal]
	delete(m.spaces, principal)
	m.mu.Unlock()
	if ok {
		w.Close()
	}
}

// EvictIdle descarta los espacios sin uso durante más del tiempo configurado.
// Devuelve cuántos se descartaron.
func (m *Manager) EvictIdle() int {
	cutoff := m.now().Add(-m.idle)
	var stale []*Workspace

	m.mu.Lock()
	for principal, w := range m.spaces {
		if w.LastUsed().Before(cutoff) {
			stale = append(stale, w)
			delete(m.spaces, principal)
		}
	}
	m.mu.Unlock()

	for _, w := range stale {
		w.Close()
	}
	if len(stale) > 0 {
		m.log.Info().Int("descartados", len(stale)).Msg("espacios de trabajo inactivos descartados")
	}
	return len(stale)
}

// Len cantidad de espacios de trabajo vivos.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.spaces)
}

// Run descarta periódicamente los espacios inactivos hasta que ctx termine.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.EvictIdle()
		}
	}
}

// Close cierra todos los espacios de trabajo.
func (m *Manager) Close() {
	m.mu.Lock()
	spaces := m.spaces
	m.spaces = make(map[string]*Workspace)
	m.mu.Unlock()
	for _, w := range spaces {
		w.Close()
	}
}
