package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct{}

// NewSaleHandler construye el handler.
func NewSaleHandler() *SaleHandler {
	return &SaleHandler{}
}

// List GET /api/sales?status=completado&customer_id=...
//
// @Summary  Lista las ventas del usuario
// @Tags     sales
// @Param    status      query string false "completado | pendiente | cancelado"
// @Param    customer_id query string false "id del cliente"
// @Success  200 {object} dto.CollectionResponse[dto.SaleResponse]
// @Router   /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	var filter dto.SaleFilter
	if err := c.QueryParser(&filter); err != nil {
		return badQuery(c)
	}
	list, err := w.Sales.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create POST /api/sales
//
// @Summary  Registra una venta
// @Tags     sales
// @Param    body body dto.CreateSaleRequest true "venta"
// @Success  201 {object} dto.SaleResponse
// @Router   /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sale, err := w.Sales.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// Update PATCH /api/sales/:id
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sale, err := w.Sales.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// Delete DELETE /api/sales/:id
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	if err := w.Sales.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Refresh POST /api/sales/refresh
func (h *SaleHandler) Refresh(c *fiber.Ctx) error {
	w, err := requireWorkspace(c)
	if w == nil {
		return err
	}
	if err := w.Sales.Refresh(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	list, err := w.Sales.List(dto.SaleFilter{})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
