package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/workspace"
	"github.com/jhoicas/Negocio-api/pkg/jwt"
)

// Locals keys para el usuario y su espacio de trabajo en Fiber.
const (
	LocalUserID    = "user_id"
	LocalWorkspace = "workspace"
)

// AuthMiddleware valida el Bearer Token JWT, extrae el UserID y adjunta el espacio de trabajo
// del usuario (creándolo y autenticando su sesión la primera vez).
func AuthMiddleware(jwtSecret string, manager *workspace.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		if manager != nil {
			c.Locals(LocalWorkspace, manager.Acquire(userID))
		}

		// fasthttp recicla su RequestCtx al terminar la petición: las llamadas al remoto usan
		// un contexto propio que se cancela cuando la cadena de handlers retorna.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetWorkspace devuelve el espacio de trabajo del usuario autenticado, o nil.
func GetWorkspace(c *fiber.Ctx) *workspace.Workspace {
	w, _ := c.Locals(LocalWorkspace).(*workspace.Workspace)
	return w
}
