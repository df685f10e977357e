package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"ohsansi-api/internal/adapters/http/middleware"
	"ohsansi-api/internal/adapters/persistence/repositories"
	"ohsansi-api/internal/core/services"
	"ohsansi-api/internal/pkg/pagination"
	"ohsansi-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InscritoHandler exposes competitor listings to responsables. The export
// endpoint is reached via plain <a> downloads, which is why the auth
// pipeline accepts the ?token= query fallback.
type InscritoHandler struct {
	inscritoRepo repositories.InscritoRepository
	audit        *services.AuditService
}

// NewInscritoHandler creates a new competitor handler
func NewInscritoHandler(inscritoRepo repositories.InscritoRepository, audit *services.AuditService) *InscritoHandler {
	return &InscritoHandler{inscritoRepo: inscritoRepo, audit: audit}
}

// List handles GET /responsable/inscritos, scoped to the responsable's area
func (h *InscritoHandler) List(c *fiber.Ctx) error {
	responsable, ok := middleware.ResponsableFrom(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado.")
	}

	params := pagination.GetParams(c)
	inscritos, total, err := h.inscritoRepo.ListByArea(c.Context(), responsable.AreaID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "No se pudieron obtener los inscritos.")
	}

	return response.OK(c, fiber.Map{
		"data": inscritos,
		"meta": pagination.NewMeta(params, total),
	})
}

// Export handles GET /responsable/inscritos/export as a CSV download
func (h *InscritoHandler) Export(c *fiber.Ctx) error {
	responsable, ok := middleware.ResponsableFrom(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado.")
	}

	inscritos, err := h.inscritoRepo.AllByArea(c.Context(), responsable.AreaID)
	if err != nil {
		return response.InternalServerError(c, "No se pudo generar la exportación.")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"nombres", "apellidos", "documento", "colegio", "area_id", "nivel_id"})
	for _, i := range inscritos {
		areaID, nivelID := "", ""
		if i.AreaID != nil {
			areaID = strconv.FormatUint(uint64(*i.AreaID), 10)
		}
		if i.NivelID != nil {
			nivelID = strconv.FormatUint(uint64(*i.NivelID), 10)
		}
		_ = w.Write([]string{i.Nombres, i.Apellidos, i.Documento, i.Colegio, areaID, nivelID})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return response.InternalServerError(c, "No se pudo generar la exportación.")
	}

	h.audit.Record(c.Context(), responsable.Correo, services.ActorResponsable,
		fmt.Sprintf("exportó inscritos (%d registros)", len(inscritos)))

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inscritos.csv"`)
	return c.Send(buf.Bytes())
}
