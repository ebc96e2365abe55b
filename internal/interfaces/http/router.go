package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/workspace"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Workspaces *workspace.Manager
	JWTSecret  string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.Workspaces))

	// Sesión
	sessionHandler := NewSessionHandler(deps.Workspaces)
	api.Get("/session", sessionHandler.Get)
	api.Delete("/session", sessionHandler.Delete)

	// Customers + notas + archivos
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler()
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Post("/refresh", customerHandler.Refresh)
	customers.Patch("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/notes", customerHandler.ListNotes)
	customers.Post("/:id/notes", customerHandler.CreateNote)
	customers.Delete("/:id/notes/:noteId", customerHandler.DeleteNote)
	customers.Get("/:id/files", customerHandler.ListFiles)
	customers.Post("/:id/files", customerHandler.CreateFile)
	customers.Delete("/:id/files/:fileId", customerHandler.DeleteFile)

	// Tasks
	tasks := api.Group("/tasks")
	taskHandler := NewTaskHandler()
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Post("/refresh", taskHandler.Refresh)
	tasks.Patch("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
	tasks.Post("/:id/complete", taskHandler.Complete)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler()
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Post("/refresh", saleHandler.Refresh)
	sales.Patch("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler()
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/activity", dashboardHandler.GetActivity)
	dashboard.Get("/report.pdf", dashboardHandler.GetReport)
}
