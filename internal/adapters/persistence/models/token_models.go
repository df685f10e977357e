package models

import (
	"time"

	"gorm.io/datatypes"
)

// ============================================================
// Issued bearer tokens
//
// Only SHA-256 hex digests are persisted; the plaintext leaves the
// process exactly once, in the login response. Lookups are by exact
// digest equality.
// ============================================================

// ResponsableToken is an issued token for a responsable (responsable_tokens).
// One responsable may hold many live tokens (multi-device).
type ResponsableToken struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ResponsableID uint           `gorm:"index;not null" json:"responsable_id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Token         string         `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Abilities     datatypes.JSON `json:"abilities,omitempty"`
	ExpiresAt     *time.Time     `json:"expires_at"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"-"`

	Responsable Responsable `gorm:"foreignKey:ResponsableID" json:"-"`
}

func (ResponsableToken) TableName() string {
	return "responsable_tokens"
}

// IsExpired reports whether the row is past its expiry, if it has one
func (t *ResponsableToken) IsExpired() bool {
	return t.ExpiresAt != nil && time.Now().After(*t.ExpiresAt)
}

// EvaluadorToken is an issued token for an evaluador (evaluador_tokens).
// Token-login rotates: a fresh row is inserted and the old one stays valid.
type EvaluadorToken struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EvaluadorID uint           `gorm:"index;not null" json:"evaluador_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Token       string         `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Abilities   datatypes.JSON `json:"abilities,omitempty"`
	ExpiresAt   *time.Time     `json:"expires_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"-"`

	Evaluador Evaluador `gorm:"foreignKey:EvaluadorID" json:"-"`
}

func (EvaluadorToken) TableName() string {
	return "evaluador_tokens"
}

// IsExpired reports whether the row is past its expiry, if it has one
func (t *EvaluadorToken) IsExpired() bool {
	return t.ExpiresAt != nil && time.Now().After(*t.ExpiresAt)
}

// UsuarioToken backs a revocable system-user session (usuario_tokens).
// The stored hash is the SHA-256 of the session JWT; deleting the row
// revokes the session even while the JWT itself is still unexpired.
type UsuarioToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UsuarioID string    `gorm:"size:36;index;not null" json:"usuario_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	TokenHash string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Usuario Usuario `gorm:"foreignKey:UsuarioID" json:"-"`
}

func (UsuarioToken) TableName() string {
	return "usuario_tokens"
}

// IsExpired reports whether the session row is past its expiry
func (t *UsuarioToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
