package handlers

import (
	"ohsansi-api/internal/core/services"
	"ohsansi-api/internal/pkg/pagination"
	"ohsansi-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BitacoraHandler exposes the audit log to administrators
type BitacoraHandler struct {
	auditService *services.AuditService
}

// NewBitacoraHandler creates a new bitácora handler
func NewBitacoraHandler(auditService *services.AuditService) *BitacoraHandler {
	return &BitacoraHandler{auditService: auditService}
}

// List handles GET /admin/bitacoras with pagination and an optional
// actor_tipo filter
func (h *BitacoraHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	entries, total, err := h.auditService.List(c.Context(), c.Query("actor_tipo"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "No se pudo obtener la bitácora.")
	}

	return response.OK(c, fiber.Map{
		"data": entries,
		"meta": pagination.NewMeta(params, total),
	})
}
