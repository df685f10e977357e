package repositories

import (
	"context"

	"ohsansi-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// responsableRepository implements ResponsableRepository
type responsableRepository struct {
	db *gorm.DB
}

// NewResponsableRepository creates a new responsable repository
func NewResponsableRepository(db *gorm.DB) ResponsableRepository {
	return &responsableRepository{db: db}
}

// GetByID gets a responsable by ID
func (r *responsableRepository) GetByID(ctx context.Context, id uint) (*models.Responsable, error) {
	var responsable models.Responsable
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&responsable).Error
	if err != nil {
		return nil, err
	}
	return &responsable, nil
}

// GetByCorreo gets a responsable by email
func (r *responsableRepository) GetByCorreo(ctx context.Context, correo string) (*models.Responsable, error) {
	var responsable models.Responsable
	err := r.db.WithContext(ctx).Where("correo = ?", correo).First(&responsable).Error
	if err != nil {
		return nil, err
	}
	return &responsable, nil
}

// evaluadorRepository implements EvaluadorRepository
type evaluadorRepository struct {
	db *gorm.DB
}

// NewEvaluadorRepository creates a new evaluador repository
func NewEvaluadorRepository(db *gorm.DB) EvaluadorRepository {
	return &evaluadorRepository{db: db}
}

// GetByID gets an evaluador by ID
func (r *evaluadorRepository) GetByID(ctx context.Context, id uint) (*models.Evaluador, error) {
	var evaluador models.Evaluador
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&evaluador).Error
	if err != nil {
		return nil, err
	}
	return &evaluador, nil
}

// GetByCorreo gets an evaluador by email
func (r *evaluadorRepository) GetByCorreo(ctx context.Context, correo string) (*models.Evaluador, error) {
	var evaluador models.Evaluador
	err := r.db.WithContext(ctx).Where("correo = ?", correo).First(&evaluador).Error
	if err != nil {
		return nil, err
	}
	return &evaluador, nil
}
