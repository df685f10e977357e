package repositories

import (
	"context"

	"ohsansi-api/internal/adapters/persistence/models"
)

// UsuarioRepository defines system-user data access
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *models.Usuario) error
	GetByID(ctx context.Context, id string) (*models.Usuario, error)
	GetByCorreo(ctx context.Context, correo string) (*models.Usuario, error)
	ExistsByCorreo(ctx context.Context, correo string) (bool, error)
	SetRoles(ctx context.Context, usuario *models.Usuario, roleIDs []uint) error
}

// RolRepository defines role catalog access
type RolRepository interface {
	ListByIDs(ctx context.Context, ids []uint) ([]models.Rol, error)
}

// ResponsableRepository defines responsable data access
type ResponsableRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Responsable, error)
	GetByCorreo(ctx context.Context, correo string) (*models.Responsable, error)
}

// EvaluadorRepository defines evaluador data access
type EvaluadorRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Evaluador, error)
	GetByCorreo(ctx context.Context, correo string) (*models.Evaluador, error)
}

// ResponsableTokenRepository defines issued-token access for responsables
type ResponsableTokenRepository interface {
	Create(ctx context.Context, token *models.ResponsableToken) error
	GetByDigest(ctx context.Context, digest string) (*models.ResponsableToken, error)
	DeleteByDigest(ctx context.Context, digest string) error
}

// EvaluadorTokenRepository defines issued-token access for evaluadores
type EvaluadorTokenRepository interface {
	Create(ctx context.Context, token *models.EvaluadorToken) error
	GetByDigest(ctx context.Context, digest string) (*models.EvaluadorToken, error)
	GetByEvaluadorAndDigest(ctx context.Context, evaluadorID uint, digest string) (*models.EvaluadorToken, error)
	DeleteByDigest(ctx context.Context, digest string) error
}

// UsuarioTokenRepository defines revocable session-row access for system users
type UsuarioTokenRepository interface {
	Create(ctx context.Context, token *models.UsuarioToken) error
	GetByHash(ctx context.Context, hash string) (*models.UsuarioToken, error)
	DeleteByHash(ctx context.Context, hash string) error
}

// BitacoraRepository defines audit-log access
type BitacoraRepository interface {
	Create(ctx context.Context, entry *models.Bitacora) error
	List(ctx context.Context, actorTipo string, offset, limit int) ([]models.Bitacora, int64, error)
}

// AreaRepository defines olympiad area access
type AreaRepository interface {
	Create(ctx context.Context, area *models.Area) error
	GetByID(ctx context.Context, id uint) (*models.Area, error)
	Update(ctx context.Context, area *models.Area) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Area, error)
}

// NivelRepository defines competition-level catalog access
type NivelRepository interface {
	List(ctx context.Context) ([]models.Nivel, error)
}

// InscritoRepository defines competitor access
type InscritoRepository interface {
	ListByArea(ctx context.Context, areaID *uint, offset, limit int) ([]models.Inscrito, int64, error)
	AllByArea(ctx context.Context, areaID *uint) ([]models.Inscrito, error)
}
