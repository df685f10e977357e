package repositories

import (
	"context"

	"ohsansi-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Issued-token repositories. All lookups are by exact SHA-256
// digest equality; expiry is the caller's concern (checked at
// read time, rows are never purged automatically).
// ============================================================

// responsableTokenRepository implements ResponsableTokenRepository
type responsableTokenRepository struct {
	db *gorm.DB
}

// NewResponsableTokenRepository creates a new responsable token repository
func NewResponsableTokenRepository(db *gorm.DB) ResponsableTokenRepository {
	return &responsableTokenRepository{db: db}
}

// Create persists an issued token (digest only)
func (r *responsableTokenRepository) Create(ctx context.Context, token *models.ResponsableToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByDigest gets a token row by its digest
func (r *responsableTokenRepository) GetByDigest(ctx context.Context, digest string) (*models.ResponsableToken, error) {
	var token models.ResponsableToken
	err := r.db.WithContext(ctx).Where("token = ?", digest).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByDigest removes any token row matching the digest (logout)
func (r *responsableTokenRepository) DeleteByDigest(ctx context.Context, digest string) error {
	return r.db.WithContext(ctx).Where("token = ?", digest).Delete(&models.ResponsableToken{}).Error
}

// evaluadorTokenRepository implements EvaluadorTokenRepository
type evaluadorTokenRepository struct {
	db *gorm.DB
}

// NewEvaluadorTokenRepository creates a new evaluador token repository
func NewEvaluadorTokenRepository(db *gorm.DB) EvaluadorTokenRepository {
	return &evaluadorTokenRepository{db: db}
}

// Create persists an issued token (digest only)
func (r *evaluadorTokenRepository) Create(ctx context.Context, token *models.EvaluadorToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByDigest gets a token row by its digest
func (r *evaluadorTokenRepository) GetByDigest(ctx context.Context, digest string) (*models.EvaluadorToken, error) {
	var token models.EvaluadorToken
	err := r.db.WithContext(ctx).Where("token = ?", digest).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// GetByEvaluadorAndDigest gets a token row scoped to one evaluador.
// Used by the token-login branch, where the secret must belong to the
// evaluador whose email was submitted.
func (r *evaluadorTokenRepository) GetByEvaluadorAndDigest(ctx context.Context, evaluadorID uint, digest string) (*models.EvaluadorToken, error) {
	var token models.EvaluadorToken
	err := r.db.WithContext(ctx).
		Where("evaluador_id = ?", evaluadorID).
		Where("token = ?", digest).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByDigest removes any token row matching the digest (logout)
func (r *evaluadorTokenRepository) DeleteByDigest(ctx context.Context, digest string) error {
	return r.db.WithContext(ctx).Where("token = ?", digest).Delete(&models.EvaluadorToken{}).Error
}

// usuarioTokenRepository implements UsuarioTokenRepository
type usuarioTokenRepository struct {
	db *gorm.DB
}

// NewUsuarioTokenRepository creates a new session-row repository
func NewUsuarioTokenRepository(db *gorm.DB) UsuarioTokenRepository {
	return &usuarioTokenRepository{db: db}
}

// Create persists a session row
func (r *usuarioTokenRepository) Create(ctx context.Context, token *models.UsuarioToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByHash gets a session row by the SHA-256 of its JWT
func (r *usuarioTokenRepository) GetByHash(ctx context.Context, hash string) (*models.UsuarioToken, error) {
	var token models.UsuarioToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByHash revokes a session
func (r *usuarioTokenRepository) DeleteByHash(ctx context.Context, hash string) error {
	return r.db.WithContext(ctx).Where("token_hash = ?", hash).Delete(&models.UsuarioToken{}).Error
}
