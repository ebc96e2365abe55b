package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/workspace"
)

// SessionHandler expone el estado de la sesión del usuario autenticado.
type SessionHandler struct {
	manager *workspace.Manager
}

// NewSessionHandler construye el handler.
func NewSessionHandler(manager *workspace.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// Get GET /api/session
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	principal, _ := w.Session.CurrentPrincipal()
	return c.JSON(fiber.Map{
		"user_id": principal,
		"state":   w.Session.State().String(),
	})
}

// Delete DELETE /api/session
// Cierra la sesión: los espejos del usuario se vacían y su espacio de trabajo se descarta.
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	h.manager.Evict(userID)
	return c.SendStatus(fiber.StatusNoContent)
}
