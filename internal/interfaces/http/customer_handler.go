package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes y de sus notas y archivos.
type CustomerHandler struct{}

// NewCustomerHandler construye el handler. Los casos de uso se toman del espacio de trabajo de cada petición.
func NewCustomerHandler() *CustomerHandler {
	return &CustomerHandler{}
}

// List GET /api/customers?status=activo&q=jose
//
// @Summary  Lista los clientes del usuario
// @Tags     customers
// @Param    status query string false "prospecto | activo | inactivo"
// @Param    q      query string false "búsqueda por nombre, correo o empresa"
// @Success  200 {object} dto.CollectionResponse[dto.CustomerResponse]
// @Router   /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	var filter dto.CustomerFilter
	if err := c.QueryParser(&filter); err != nil {
		return badQuery(c)
	}
	list, err := w.Customers.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create POST /api/customers
//
// @Summary  Crea un cliente
// @Tags     customers
// @Param    body body dto.CreateCustomerRequest true "cliente"
// @Success  201 {object} dto.CustomerResponse
// @Router   /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := w.Customers.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PATCH /api/customers/:id
//
// @Summary  Actualiza parcialmente un cliente
// @Tags     customers
// @Param    id   path string true "id del cliente"
// @Param    body body dto.UpdateCustomerRequest true "campos a modificar"
// @Success  200 {object} dto.CustomerResponse
// @Router   /api/customers/{id} [patch]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := w.Customers.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/customers/:id
// Borra primero las notas y archivos del cliente; si alguno falla el cliente se conserva.
//
// @Summary  Elimina un cliente
// @Tags     customers
// @Param    id path string true "id del cliente"
// @Success  204
// @Router   /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	if err := w.Customers.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Refresh POST /api/customers/refresh
func (h *CustomerHandler) Refresh(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	if err := w.Customers.Refresh(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	list, err := w.Customers.List(dto.CustomerFilter{})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ── Notas ─────────────────────────────────────────────────────────────────────

// ListNotes GET /api/customers/:id/notes
//
// @Summary  Historial de interacciones de un cliente
// @Tags     notes
// @Param    id path string true "id del cliente"
// @Success  200 {array} dto.NoteResponse
// @Router   /api/customers/{id}/notes [get]
func (h *CustomerHandler) ListNotes(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	notes, err := w.Notes.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notes)
}

// CreateNote POST /api/customers/:id/notes
//
// @Summary  Registra una interacción
// @Tags     notes
// @Param    id   path string true "id del cliente"
// @Param    body body dto.CreateNoteRequest true "nota"
// @Success  201 {object} dto.NoteResponse
// @Router   /api/customers/{id}/notes [post]
func (h *CustomerHandler) CreateNote(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	var in dto.CreateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	note, err := w.Notes.Create(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// DeleteNote DELETE /api/customers/:id/notes/:noteId
func (h *CustomerHandler) DeleteNote(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	if err := w.Notes.Delete(c.UserContext(), c.Params("id"), c.Params("noteId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Archivos ──────────────────────────────────────────────────────────────────

// ListFiles GET /api/customers/:id/files
//
// @Summary  Archivos adjuntos de un cliente
// @Tags     files
// @Param    id path string true "id del cliente"
// @Success  200 {array} dto.FileResponse
// @Router   /api/customers/{id}/files [get]
func (h *CustomerHandler) ListFiles(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	files, err := w.Files.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(files)
}

// CreateFile POST /api/customers/:id/files
// Solo registra los metadatos; el contenido vive en el almacenamiento externo indicado por url.
func (h *CustomerHandler) CreateFile(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	var in dto.CreateFileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	file, err := w.Files.Create(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(file)
}

// DeleteFile DELETE /api/customers/:id/files/:fileId
func (h *CustomerHandler) DeleteFile(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	if err := w.Files.Delete(c.UserContext(), c.Params("id"), c.Params("fileId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
