package services

import (
	"context"
	"errors"
	"strings"

	"ohsansi-api/internal/adapters/persistence/models"
	"ohsansi-api/internal/adapters/persistence/repositories"
	"ohsansi-api/internal/config"
	"ohsansi-api/internal/pkg/jwt"
	"ohsansi-api/internal/pkg/password"
	"ohsansi-api/internal/pkg/roles"
	"ohsansi-api/internal/pkg/token"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Auth errors
var (
	// Login: one generic rejection regardless of which table failed, so a
	// caller cannot probe which principal type an email belongs to.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Request-time resolution
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrUserAlreadyExists = errors.New("user already exists")
	ErrRoleNotFound      = errors.New("role not found")
)

// defaultAbilities is stored on every issued plain token
var defaultAbilities = datatypes.JSON([]byte(`["*"]`))

// AuthService implements the multi-scheme identity core: the login
// precedence chain (usuario -> responsable -> evaluador), opaque token
// issuance, and the per-pipeline bearer resolution used by middleware.
type AuthService struct {
	usuarioRepo      repositories.UsuarioRepository
	rolRepo          repositories.RolRepository
	responsableRepo  repositories.ResponsableRepository
	evaluadorRepo    repositories.EvaluadorRepository
	respTokenRepo    repositories.ResponsableTokenRepository
	evalTokenRepo    repositories.EvaluadorTokenRepository
	usuarioTokenRepo repositories.UsuarioTokenRepository
	cfg              *config.Config
	log              *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	usuarioRepo repositories.UsuarioRepository,
	rolRepo repositories.RolRepository,
	responsableRepo repositories.ResponsableRepository,
	evaluadorRepo repositories.EvaluadorRepository,
	respTokenRepo repositories.ResponsableTokenRepository,
	evalTokenRepo repositories.EvaluadorTokenRepository,
	usuarioTokenRepo repositories.UsuarioTokenRepository,
	cfg *config.Config,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{
		usuarioRepo:      usuarioRepo,
		rolRepo:          rolRepo,
		responsableRepo:  responsableRepo,
		evaluadorRepo:    evaluadorRepo,
		respTokenRepo:    respTokenRepo,
		evalTokenRepo:    evalTokenRepo,
		usuarioTokenRepo: usuarioTokenRepo,
		cfg:              cfg,
		log:              log,
	}
}

// LoginInput represents the login request body
type LoginInput struct {
	Correo   string `json:"correo"`
	Password string `json:"password"` // usuario: password | responsable: CI | evaluador: CI or issued token
	Device   string `json:"device"`
}

// LoginResult is the unified success payload of the login chain
type LoginResult struct {
	Token   string                `json:"token"`
	User    *models.PrincipalView `json:"user"`
	Message string                `json:"message"`
}

// Login authenticates against the three principal tables in fixed order,
// short-circuiting at the first match. Emails are not guaranteed unique
// across tables, so the order is a correctness requirement.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	correo := strings.ToLower(strings.TrimSpace(input.Correo))
	secret := strings.TrimSpace(input.Password)
	device := input.Device
	if device == "" {
		device = "web"
	}

	// 1. System user (password)
	usuario, err := s.usuarioRepo.GetByCorreo(ctx, correo)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if usuario != nil && password.Verify(secret, usuario.Password) {
		if !usuario.Estado {
			return nil, ErrInvalidCredentials
		}
		sessionToken, err := s.issueSession(ctx, usuario, device)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			Token:   sessionToken,
			User:    usuario.ToView(),
			Message: "Inicio de sesión exitoso (usuario del sistema).",
		}, nil
	}

	// 2. Responsable (CI as shared secret, exact string match)
	responsable, err := s.responsableRepo.GetByCorreo(ctx, correo)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if responsable != nil && responsable.CI != "" && responsable.CI == secret {
		plain, err := s.issueResponsableToken(ctx, responsable.ID, device)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			Token:   plain,
			User:    responsable.ToView(),
			Message: "Inicio de sesión exitoso (responsable académico).",
		}, nil
	}

	// 3. Evaluador (prefer CI, else a previously issued token)
	evaluador, err := s.evaluadorRepo.GetByCorreo(ctx, correo)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if evaluador != nil {
		// 3a. correo + CI
		if evaluador.CI != "" && evaluador.CI == secret {
			plain, err := s.issueEvaluadorToken(ctx, evaluador.ID, device)
			if err != nil {
				return nil, err
			}
			return &LoginResult{
				Token:   plain,
				User:    evaluador.ToView(),
				Message: "Inicio de sesión exitoso (evaluador por CI).",
			}, nil
		}

		// 3b. correo + issued token: rotate. The old token stays valid;
		// revocation is only ever explicit (logout).
		row, err := s.evalTokenRepo.GetByEvaluadorAndDigest(ctx, evaluador.ID, token.Digest(secret))
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if row != nil && !row.IsExpired() {
			plain, err := s.issueEvaluadorToken(ctx, evaluador.ID, device)
			if err != nil {
				return nil, err
			}
			return &LoginResult{
				Token:   plain,
				User:    evaluador.ToView(),
				Message: "Inicio de sesión exitoso (evaluador por token).",
			}, nil
		}
	}

	return nil, ErrInvalidCredentials
}

// issueSession mints a session JWT and persists its digest so the
// session stays revocable
func (s *AuthService) issueSession(ctx context.Context, usuario *models.Usuario, device string) (string, error) {
	sessionToken, err := jwt.GenerateSessionToken(usuario.ID, usuario.Correo, s.cfg.Auth.JWTSecret, s.cfg.Auth.SessionHours)
	if err != nil {
		return "", err
	}

	row := &models.UsuarioToken{
		UsuarioID: usuario.ID,
		Name:      device,
		TokenHash: token.Digest(sessionToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.Auth.SessionHours),
	}
	if err := s.usuarioTokenRepo.Create(ctx, row); err != nil {
		return "", err
	}
	return sessionToken, nil
}

// issueResponsableToken mints an opaque token and persists only its digest
func (s *AuthService) issueResponsableToken(ctx context.Context, responsableID uint, device string) (string, error) {
	plain, err := token.Generate()
	if err != nil {
		return "", err
	}
	row := &models.ResponsableToken{
		ResponsableID: responsableID,
		Name:          device,
		Token:         token.Digest(plain),
		Abilities:     defaultAbilities,
	}
	if err := s.respTokenRepo.Create(ctx, row); err != nil {
		return "", err
	}
	return plain, nil
}

// issueEvaluadorToken mints an opaque token and persists only its digest
func (s *AuthService) issueEvaluadorToken(ctx context.Context, evaluadorID uint, device string) (string, error) {
	plain, err := token.Generate()
	if err != nil {
		return "", err
	}
	row := &models.EvaluadorToken{
		EvaluadorID: evaluadorID,
		Name:        device,
		Token:       token.Digest(plain),
		Abilities:   defaultAbilities,
	}
	if err := s.evalTokenRepo.Create(ctx, row); err != nil {
		return "", err
	}
	return plain, nil
}

// ResolveUsuario resolves a bearer as a system-user session: the JWT must
// validate and its digest must still match a live usuario_tokens row.
func (s *AuthService) ResolveUsuario(ctx context.Context, bearer string) (*models.Usuario, error) {
	if bearer == "" {
		return nil, ErrMissingToken
	}

	claims, err := jwt.ValidateSessionToken(bearer, s.cfg.Auth.JWTSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	row, err := s.usuarioTokenRepo.GetByHash(ctx, token.Digest(bearer))
	if err != nil {
		// fail closed: unreachable store and missing row look the same
		return nil, ErrInvalidToken
	}
	if row.IsExpired() {
		return nil, ErrTokenExpired
	}

	usuario, err := s.usuarioRepo.GetByID(ctx, claims.UsuarioID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !usuario.Estado {
		return nil, ErrInvalidToken
	}
	return usuario, nil
}

// ResolveResponsable resolves a bearer through the responsable pipeline:
// digest lookup first, then the session fallback for system users holding
// a RESPONSABLE-synonym role.
func (s *AuthService) ResolveResponsable(ctx context.Context, bearer string) (*models.Responsable, error) {
	if bearer == "" {
		return nil, ErrMissingToken
	}

	row, err := s.respTokenRepo.GetByDigest(ctx, token.Digest(bearer))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	if row != nil {
		if row.IsExpired() {
			return nil, ErrTokenExpired
		}
		responsable, err := s.responsableRepo.GetByID(ctx, row.ResponsableID)
		if err != nil {
			return nil, ErrInvalidToken
		}
		return responsable, nil
	}

	usuario, err := s.ResolveUsuario(ctx, bearer)
	if err != nil || !roles.HasRole(usuario.RoleSlugs(), roles.Responsable) {
		return nil, ErrInvalidToken
	}

	responsable, err := s.responsableRepo.GetByCorreo(ctx, usuario.Correo)
	if err == nil {
		return responsable, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}

	// No backing row: synthesize a responsable from the usuario's profile.
	// The principal must never be saved, and carries no area assignment.
	return &models.Responsable{
		Nombres:     usuario.Nombres,
		Apellidos:   usuario.Apellidos,
		Correo:      usuario.Correo,
		CI:          usuario.CI,
		Telefono:    usuario.Telefono,
		Activo:      usuario.Estado,
		Synthesized: true,
	}, nil
}

// ResolveEvaluador resolves a bearer through the evaluador pipeline.
// Request-time resolution is digest-lookup only; the CI-as-secret branch
// belongs exclusively to Login.
func (s *AuthService) ResolveEvaluador(ctx context.Context, bearer string) (*models.Evaluador, error) {
	if bearer == "" {
		return nil, ErrMissingToken
	}

	row, err := s.evalTokenRepo.GetByDigest(ctx, token.Digest(bearer))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	if row != nil {
		if row.IsExpired() {
			return nil, ErrTokenExpired
		}
		evaluador, err := s.evaluadorRepo.GetByID(ctx, row.EvaluadorID)
		if err != nil {
			return nil, ErrInvalidToken
		}
		return evaluador, nil
	}

	usuario, err := s.ResolveUsuario(ctx, bearer)
	if err != nil || !roles.HasRole(usuario.RoleSlugs(), roles.Evaluador) {
		return nil, ErrInvalidToken
	}

	evaluador, err := s.evaluadorRepo.GetByCorreo(ctx, usuario.Correo)
	if err == nil {
		return evaluador, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}

	return &models.Evaluador{
		Nombres:     usuario.Nombres,
		Apellidos:   usuario.Apellidos,
		Correo:      usuario.Correo,
		CI:          usuario.CI,
		Telefono:    usuario.Telefono,
		Activo:      usuario.Estado,
		Synthesized: true,
	}, nil
}

// Logout revokes whatever the bearer was: the session row (if the bearer
// is a session JWT) and any matching responsable/evaluador token row.
// The caller doesn't declare which kind it holds, so all three tables are
// tried; it always succeeds.
func (s *AuthService) Logout(ctx context.Context, bearer string) {
	if bearer == "" {
		return
	}
	digest := token.Digest(bearer)

	if err := s.usuarioTokenRepo.DeleteByHash(ctx, digest); err != nil {
		s.log.WithError(err).Warn("logout: could not delete session row")
	}
	if err := s.respTokenRepo.DeleteByDigest(ctx, digest); err != nil {
		s.log.WithError(err).Warn("logout: could not delete responsable token")
	}
	if err := s.evalTokenRepo.DeleteByDigest(ctx, digest); err != nil {
		s.log.WithError(err).Warn("logout: could not delete evaluador token")
	}
}

// RegisterInput represents the admin user-creation body
type RegisterInput struct {
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Correo    string `json:"correo"`
	Telefono  string `json:"telefono"`
	CI        string `json:"ci"`
	Password  string `json:"password"`
	Roles     []uint `json:"roles"`
}

// RegisterUsuario creates a system user with optional role assignments
func (s *AuthService) RegisterUsuario(ctx context.Context, input *RegisterInput) (*models.Usuario, error) {
	correo := strings.ToLower(strings.TrimSpace(input.Correo))

	exists, err := s.usuarioRepo.ExistsByCorreo(ctx, correo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	usuario := &models.Usuario{
		Nombres:   strings.TrimSpace(input.Nombres),
		Apellidos: strings.TrimSpace(input.Apellidos),
		Correo:    correo,
		Telefono:  strings.TrimSpace(input.Telefono),
		CI:        strings.TrimSpace(input.CI),
		Password:  hashed,
		Estado:    true,
	}
	if err := s.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, err
	}

	if len(input.Roles) > 0 {
		found, err := s.rolRepo.ListByIDs(ctx, input.Roles)
		if err != nil {
			return nil, err
		}
		if len(found) != len(input.Roles) {
			return nil, ErrRoleNotFound
		}
		if err := s.usuarioRepo.SetRoles(ctx, usuario, input.Roles); err != nil {
			return nil, err
		}
		usuario.Roles = found
	}

	s.log.WithField("correo", usuario.Correo).Info("✅ Usuario registered")
	return usuario, nil
}
