package repositories

import (
	"context"

	"ohsansi-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// inscritoRepository implements InscritoRepository
type inscritoRepository struct {
	db *gorm.DB
}

// NewInscritoRepository creates a new competitor repository
func NewInscritoRepository(db *gorm.DB) InscritoRepository {
	return &inscritoRepository{db: db}
}

// ListByArea lists competitors with pagination. A nil areaID lists all
// (synthesized responsables have no assigned area).
func (r *inscritoRepository) ListByArea(ctx context.Context, areaID *uint, offset, limit int) ([]models.Inscrito, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Inscrito{})
	if areaID != nil {
		query = query.Where("area_id = ?", *areaID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var inscritos []models.Inscrito
	err := query.Order("apellidos, nombres").Offset(offset).Limit(limit).Find(&inscritos).Error
	if err != nil {
		return nil, 0, err
	}
	return inscritos, total, nil
}

// AllByArea lists every competitor for export, without pagination
func (r *inscritoRepository) AllByArea(ctx context.Context, areaID *uint) ([]models.Inscrito, error) {
	query := r.db.WithContext(ctx)
	if areaID != nil {
		query = query.Where("area_id = ?", *areaID)
	}

	var inscritos []models.Inscrito
	err := query.Order("apellidos, nombres").Find(&inscritos).Error
	return inscritos, err
}
