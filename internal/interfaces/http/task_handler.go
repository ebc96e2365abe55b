package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
)

// TaskHandler maneja las peticiones HTTP de tareas.
type TaskHandler struct{}

// NewTaskHandler construye el handler.
func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// List GET /api/tasks?status=pending
//
// @Summary  Lista las tareas del usuario
// @Tags     tasks
// @Param    status query string false "pending | completed"
// @Success  200 {object} dto.CollectionResponse[dto.TaskResponse]
// @Router   /api/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	var filter dto.TaskFilter
	if err := c.QueryParser(&filter); err != nil {
		return badQuery(c)
	}
	list, err := w.Tasks.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create POST /api/tasks
//
// @Summary  Crea una tarea
// @Tags     tasks
// @Param    body body dto.CreateTaskRequest true "tarea"
// @Success  201 {object} dto.TaskResponse
// @Router   /api/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	var in dto.CreateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	task, err := w.Tasks.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// Update PATCH /api/tasks/:id
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	var in dto.UpdateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	task, err := w.Tasks.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

// Complete POST /api/tasks/:id/complete
func (h *TaskHandler) Complete(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	task, err := w.Tasks.Complete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

// Delete DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	if err := w.Tasks.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Refresh POST /api/tasks/refresh
func (h *TaskHandler) Refresh(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	if err := w.Tasks.Refresh(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	list, err := w.Tasks.List(dto.TaskFilter{})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
