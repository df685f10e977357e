package repositories

import (
	"context"

	"ohsansi-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bitacoraRepository implements BitacoraRepository
type bitacoraRepository struct {
	db *gorm.DB
}

// NewBitacoraRepository creates a new audit-log repository
func NewBitacoraRepository(db *gorm.DB) BitacoraRepository {
	return &bitacoraRepository{db: db}
}

// Create appends an audit event
func (r *bitacoraRepository) Create(ctx context.Context, entry *models.Bitacora) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns audit events newest first, optionally filtered by actor type
func (r *bitacoraRepository) List(ctx context.Context, actorTipo string, offset, limit int) ([]models.Bitacora, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Bitacora{})
	if actorTipo != "" {
		query = query.Where("actor_tipo = ?", actorTipo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.Bitacora
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
