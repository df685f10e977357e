package repositories

import (
	"context"

	"ohsansi-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// areaRepository implements AreaRepository
type areaRepository struct {
	db *gorm.DB
}

// NewAreaRepository creates a new area repository
func NewAreaRepository(db *gorm.DB) AreaRepository {
	return &areaRepository{db: db}
}

// Create creates a new area
func (r *areaRepository) Create(ctx context.Context, area *models.Area) error {
	return r.db.WithContext(ctx).Create(area).Error
}

// GetByID gets an area by ID
func (r *areaRepository) GetByID(ctx context.Context, id uint) (*models.Area, error) {
	var area models.Area
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

// Update updates an area
func (r *areaRepository) Update(ctx context.Context, area *models.Area) error {
	return r.db.WithContext(ctx).Save(area).Error
}

// Delete removes an area
func (r *areaRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Area{}, id).Error
}

// List lists all areas ordered by name
func (r *areaRepository) List(ctx context.Context) ([]models.Area, error) {
	var areas []models.Area
	err := r.db.WithContext(ctx).Order("nombre").Find(&areas).Error
	return areas, err
}

// nivelRepository implements NivelRepository
type nivelRepository struct {
	db *gorm.DB
}

// NewNivelRepository creates a new level repository
func NewNivelRepository(db *gorm.DB) NivelRepository {
	return &nivelRepository{db: db}
}

// List lists all competition levels
func (r *nivelRepository) List(ctx context.Context) ([]models.Nivel, error) {
	var niveles []models.Nivel
	err := r.db.WithContext(ctx).Order("id").Find(&niveles).Error
	return niveles, err
}
