package repositories

import (
	"context"

	"ohsansi-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// usuarioRepository implements UsuarioRepository
type usuarioRepository struct {
	db *gorm.DB
}

// NewUsuarioRepository creates a new usuario repository
func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

// Create creates a new system user
func (r *usuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

// GetByID gets a system user by ID with roles preloaded
func (r *usuarioRepository) GetByID(ctx context.Context, id string) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).Preload("Roles").Where("id = ?", id).First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// GetByCorreo gets a system user by email with roles preloaded.
// Emails are stored lowercased and trimmed, so the lookup is exact.
func (r *usuarioRepository) GetByCorreo(ctx context.Context, correo string) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).Preload("Roles").Where("correo = ?", correo).First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// ExistsByCorreo checks if an email is already registered
func (r *usuarioRepository) ExistsByCorreo(ctx context.Context, correo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Usuario{}).Where("correo = ?", correo).Count(&count).Error
	return count > 0, err
}

// SetRoles replaces the user's role assignments (usuario_rol pivot)
func (r *usuarioRepository) SetRoles(ctx context.Context, usuario *models.Usuario, roleIDs []uint) error {
	roles := make([]models.Rol, 0, len(roleIDs))
	for _, id := range roleIDs {
		roles = append(roles, models.Rol{ID: id})
	}
	return r.db.WithContext(ctx).Model(usuario).Association("Roles").Replace(roles)
}

// rolRepository implements RolRepository
type rolRepository struct {
	db *gorm.DB
}

// NewRolRepository creates a new role repository
func NewRolRepository(db *gorm.DB) RolRepository {
	return &rolRepository{db: db}
}

// ListByIDs returns the roles matching the given IDs
func (r *rolRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Rol, error) {
	var roles []models.Rol
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&roles).Error
	return roles, err
}
