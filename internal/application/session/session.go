// Package session implementa el contexto de sesión explícito: quién es el usuario actual
// y las notificaciones cuando cambia el estado de autenticación.
package session

import (
	"strings"
	"sync"
)

// State estado de autenticación.
type State int

const (
	StatePending State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "pending"
	}
}

// Event transición de estado entregada a los suscriptores.
// Principal es el usuario que inicia sesión, o el que la cerró en StateUnauthenticated.
type Event struct {
	State     State
	Principal string
}

// Listener recibe las transiciones de estado.
type Listener func(Event)

// Session sesión de un usuario. Segura para uso concurrente.
type Session struct {
	mu        sync.RWMutex
	state     State
	principal string
	listeners map[int]Listener
	nextID    int
}

// New crea una sesión en estado pendiente.
func New() *Session {
	return &Session{listeners: map[int]Listener{}}
}

// CurrentPrincipal devuelve el usuario autenticado, si lo hay.
func (s *Session) CurrentPrincipal() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated {
		return "", false
	}
	return s.principal, true
}

// State devuelve el estado actual.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SignIn autentica al usuario. No notifica si ya estaba autenticado con el mismo id.
func (s *Session) SignIn(principal string) bool {
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return false
	}
	s.mu.Lock()
	if s.state == StateAuthenticated && s.principal == principal {
		s.mu.Unlock()
		return true
	}
	s.state = StateAuthenticated
	s.principal = principal
	listeners := s.snapshot()
	s.mu.Unlock()

	notify(listeners, Event{State: StateAuthenticated, Principal: principal})
	return true
}

// SignOut cierra la sesión. No notifica si ya estaba cerrada.
func (s *Session) SignOut() {
	s.mu.Lock()
	if s.state == StateUnauthenticated {
		s.mu.Unlock()
		return
	}
	prev := s.principal
	s.state = StateUnauthenticated
	s.principal = ""
	listeners := s.snapshot()
	s.mu.Unlock()

	notify(listeners, Event{State: StateUnauthenticated, Principal: prev})
}

// Subscribe registra un listener y devuelve la función para darlo de baja.
// Los listeners se invocan fuera del lock, en el goroutine que provoca la transición.
func (s *Session) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// snapshot copia los listeners en orden de suscripción. Requiere s.mu tomado.
func (s *Session) snapshot() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []Listener, ev Event) {
	for _, fn := range listeners {
		fn(ev)
	}
}
