package handlers

import (
	"errors"
	"strconv"
	"strings"

	"ohsansi-api/internal/adapters/http/middleware"
	"ohsansi-api/internal/core/services"
	"ohsansi-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AreaHandler handles the olympiad area catalog (admin-gated)
type AreaHandler struct {
	areaService *services.AreaService
}

// NewAreaHandler creates a new area handler
func NewAreaHandler(areaService *services.AreaService) *AreaHandler {
	return &AreaHandler{areaService: areaService}
}

// actorEmail returns the acting admin's email for audit entries
func actorEmail(c *fiber.Ctx) string {
	if usuario, ok := middleware.UsuarioFrom(c); ok {
		return usuario.Correo
	}
	return ""
}

// List handles GET /areas
func (h *AreaHandler) List(c *fiber.Ctx) error {
	areas, err := h.areaService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "No se pudieron obtener las áreas.")
	}
	return response.OK(c, areas)
}

// Niveles handles GET /niveles
func (h *AreaHandler) Niveles(c *fiber.Ctx) error {
	niveles, err := h.areaService.Niveles(c.Context())
	if err != nil {
		return response.InternalServerError(c, "No se pudieron obtener los niveles.")
	}
	return response.OK(c, niveles)
}

// Get handles GET /areas/:id
func (h *AreaHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Identificador inválido.")
	}

	area, err := h.areaService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			return response.NotFound(c, "Área no encontrada.")
		}
		return response.InternalServerError(c, "No se pudo obtener el área.")
	}
	return response.OK(c, area)
}

// Create handles POST /areas
func (h *AreaHandler) Create(c *fiber.Ctx) error {
	var req services.AreaInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Cuerpo de la solicitud inválido.")
	}
	if strings.TrimSpace(req.Nombre) == "" || strings.TrimSpace(req.Codigo) == "" {
		return response.UnprocessableEntity(c, "Nombre y código son obligatorios.")
	}

	area, err := h.areaService.Create(c.Context(), actorEmail(c), &req)
	if err != nil {
		return response.InternalServerError(c, "No se pudo crear el área.")
	}
	return response.Created(c, area)
}

// Update handles PUT /areas/:id
func (h *AreaHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Identificador inválido.")
	}

	var req services.AreaInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Cuerpo de la solicitud inválido.")
	}

	area, err := h.areaService.Update(c.Context(), actorEmail(c), uint(id), &req)
	if err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			return response.NotFound(c, "Área no encontrada.")
		}
		return response.InternalServerError(c, "No se pudo actualizar el área.")
	}
	return response.OK(c, area)
}

// Delete handles DELETE /areas/:id
func (h *AreaHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Identificador inválido.")
	}

	if err := h.areaService.Delete(c.Context(), actorEmail(c), uint(id)); err != nil {
		if errors.Is(err, services.ErrAreaNotFound) {
			return response.NotFound(c, "Área no encontrada.")
		}
		return response.InternalServerError(c, "No se pudo eliminar el área.")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
