package services

import (
	"context"
	"strings"

	"ohsansi-api/internal/adapters/persistence/models"
	"ohsansi-api/internal/adapters/persistence/repositories"

	"github.com/sirupsen/logrus"
)

// MaxMensajeLen caps audit messages before persistence
const MaxMensajeLen = 500

// Actor kinds recorded in the bitácora
const (
	ActorAdmin       = "ADMIN"
	ActorResponsable = "RESPONSABLE"
	ActorEvaluador   = "EVALUADOR"
)

// AuditService appends "who did what" events to the bitácora. It is
// strictly best-effort: failures are logged and swallowed so the primary
// operation never rolls back or fails because of auditing.
type AuditService struct {
	bitacoraRepo repositories.BitacoraRepository
	log          *logrus.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(bitacoraRepo repositories.BitacoraRepository, log *logrus.Logger) *AuditService {
	return &AuditService{bitacoraRepo: bitacoraRepo, log: log}
}

// Record appends an audit event. Never returns an error.
func (s *AuditService) Record(ctx context.Context, actorEmail, actorTipo, mensaje string) {
	email := strings.TrimSpace(actorEmail)
	tipo := strings.ToUpper(strings.TrimSpace(actorTipo))
	msg := strings.TrimSpace(mensaje)

	if email == "" || tipo == "" || msg == "" {
		s.log.WithFields(logrus.Fields{
			"actor_email": email,
			"actor_tipo":  tipo,
		}).Warn("bitácora entry dropped: empty fields")
		return
	}

	if runes := []rune(msg); len(runes) > MaxMensajeLen {
		msg = string(runes[:MaxMensajeLen])
	}

	entry := &models.Bitacora{
		ActorEmail: email,
		ActorTipo:  tipo,
		Mensaje:    msg,
	}
	if err := s.bitacoraRepo.Create(ctx, entry); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"actor_email": email,
			"actor_tipo":  tipo,
		}).Warn("bitácora entry could not be persisted")
	}
}

// List returns audit events, optionally filtered by a known actor type.
// Unknown filters are ignored rather than rejected.
func (s *AuditService) List(ctx context.Context, actorTipo string, offset, limit int) ([]models.Bitacora, int64, error) {
	tipo := strings.ToUpper(strings.TrimSpace(actorTipo))
	switch tipo {
	case ActorAdmin, "ADMINISTRADOR", ActorEvaluador, ActorResponsable:
	default:
		tipo = ""
	}
	return s.bitacoraRepo.List(ctx, tipo, offset, limit)
}
