package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/internal/application/session"
)

func TestSession_EstadoInicialPendiente(t *testing.T) {
	s := session.New()
	assert.Equal(t, session.StatePending, s.State())
	_, ok := s.CurrentPrincipal()
	assert.False(t, ok, "una sesión pendiente no tiene usuario")
}

func TestSession_SignInSignOutNotifica(t *testing.T) {
	s := session.New()
	var events []session.Event
	s.Subscribe(func(ev session.Event) { events = append(events, ev) })

	require.True(t, s.SignIn("user-1"))
	id, ok := s.CurrentPrincipal()
	require.True(t, ok)
	assert.Equal(t, "user-1", id)

	s.SignOut()
	_, ok = s.CurrentPrincipal()
	assert.False(t, ok)

	require.Len(t, events, 2)
	assert.Equal(t, session.Event{State: session.StateAuthenticated, Principal: "user-1"}, events[0])
	assert.Equal(t, session.Event{State: session.StateUnauthenticated, Principal: "user-1"}, events[1])
}

func TestSession_SignInRepetidoNoNotifica(t *testing.T) {
	s := session.New()
	count := 0
	s.Subscribe(func(session.Event) { count++ })

	s.SignIn("user-1")
	s.SignIn("user-1")
	assert.Equal(t, 1, count)

	s.SignOut()
	s.SignOut()
	assert.Equal(t, 2, count)
}

func TestSession_SignInVacioRechazado(t *testing.T) {
	s := session.New()
	assert.False(t, s.SignIn("   "))
	assert.Equal(t, session.StatePending, s.State())
}

func TestSession_CancelarSuscripcion(t *testing.T) {
	s := session.New()
	count := 0
	cancel := s.Subscribe(func(session.Event) { count++ })
	cancel()
	s.SignIn("user-1")
	assert.Zero(t, count)
}

func TestSession_OrdenDeSuscripcion(t *testing.T) {
	s := session.New()
	var order []int
	s.Subscribe(func(session.Event) { order = append(order, 1) })
	s.Subscribe(func(session.Event) { order = append(order, 2) })
	s.SignIn("user-1")
	assert.Equal(t, []int{1, 2}, order)
}
