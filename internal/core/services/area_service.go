package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ohsansi-api/internal/adapters/persistence/models"
	"ohsansi-api/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

var (
	ErrAreaNotFound = errors.New("area not found")
)

// AreaService handles the olympiad area catalog. Every state change is
// audited with the acting admin's email.
type AreaService struct {
	areaRepo  repositories.AreaRepository
	nivelRepo repositories.NivelRepository
	audit     *AuditService
}

// NewAreaService creates a new area service
func NewAreaService(areaRepo repositories.AreaRepository, nivelRepo repositories.NivelRepository, audit *AuditService) *AreaService {
	return &AreaService{areaRepo: areaRepo, nivelRepo: nivelRepo, audit: audit}
}

// AreaInput represents an area create/update body
type AreaInput struct {
	Nombre string `json:"nombre"`
	Codigo string `json:"codigo"`
	Activo *bool  `json:"activo"`
}

// List lists all areas
func (s *AreaService) List(ctx context.Context) ([]models.Area, error) {
	return s.areaRepo.List(ctx)
}

// Niveles lists the competition levels catalog
func (s *AreaService) Niveles(ctx context.Context) ([]models.Nivel, error) {
	return s.nivelRepo.List(ctx)
}

// Get gets one area
func (s *AreaService) Get(ctx context.Context, id uint) (*models.Area, error) {
	area, err := s.areaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, err
	}
	return area, nil
}

// Create creates an area and audits the actor
func (s *AreaService) Create(ctx context.Context, actorEmail string, input *AreaInput) (*models.Area, error) {
	area := &models.Area{
		Nombre: strings.TrimSpace(input.Nombre),
		Codigo: strings.ToUpper(strings.TrimSpace(input.Codigo)),
		Activo: true,
	}
	if input.Activo != nil {
		area.Activo = *input.Activo
	}
	if err := s.areaRepo.Create(ctx, area); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorEmail, ActorAdmin, fmt.Sprintf("creó área: %s", area.Nombre))
	return area, nil
}

// Update updates an area and audits the actor
func (s *AreaService) Update(ctx context.Context, actorEmail string, id uint, input *AreaInput) (*models.Area, error) {
	area, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if nombre := strings.TrimSpace(input.Nombre); nombre != "" {
		area.Nombre = nombre
	}
	if codigo := strings.TrimSpace(input.Codigo); codigo != "" {
		area.Codigo = strings.ToUpper(codigo)
	}
	if input.Activo != nil {
		area.Activo = *input.Activo
	}
	if err := s.areaRepo.Update(ctx, area); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorEmail, ActorAdmin, fmt.Sprintf("editó área: %s", area.Nombre))
	return area, nil
}

// Delete removes an area and audits the actor
func (s *AreaService) Delete(ctx context.Context, actorEmail string, id uint) error {
	area, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.areaRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorEmail, ActorAdmin, fmt.Sprintf("eliminó área: %s", area.Nombre))
	return nil
}
