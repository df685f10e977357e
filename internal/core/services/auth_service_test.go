package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"ohsansi-api/internal/adapters/persistence/models"
	"ohsansi-api/internal/config"
	"ohsansi-api/internal/pkg/password"
	"ohsansi-api/internal/pkg/token"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hashed
}

func seedAdmin(t *testing.T, env *testEnv) *models.Usuario {
	t.Helper()
	u := &models.Usuario{
		ID:        "u-admin",
		Nombres:   "Ana",
		Apellidos: "Mendoza",
		Correo:    "admin@ohsansi.bo",
		Password:  mustHash(t, "admin123"),
		Estado:    true,
		Roles:     []models.Rol{{ID: 1, Nombre: "Administrador", Slug: "administrador"}},
	}
	env.usuarios.usuarios = append(env.usuarios.usuarios, u)
	return u
}

func TestLoginUsuarioSession(t *testing.T) {
	env := newTestEnv()
	seedAdmin(t, env)

	result, err := env.svc.Login(context.Background(), &LoginInput{
		Correo:   "Admin@OHSansi.bo", // mixed case must normalize
		Password: "admin123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a session token")
	}
	if result.User == nil || result.User.Correo != "admin@ohsansi.bo" {
		t.Fatalf("unexpected user view: %+v", result.User)
	}

	// The session must be revocable: its digest row exists
	if len(env.sessions.rows) != 1 {
		t.Fatalf("expected 1 session row, got %d", len(env.sessions.rows))
	}
	if env.sessions.rows[0].TokenHash != token.Digest(result.Token) {
		t.Error("session row does not hold the digest of the issued token")
	}

	usuario, err := env.svc.ResolveUsuario(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}
	if usuario.ID != "u-admin" {
		t.Errorf("resolved wrong usuario: %s", usuario.ID)
	}
}

func TestLoginInactiveUsuario(t *testing.T) {
	env := newTestEnv()
	u := seedAdmin(t, env)
	u.Estado = false

	_, err := env.svc.Login(context.Background(), &LoginInput{
		Correo:   "admin@ohsansi.bo",
		Password: "admin123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginResponsable(t *testing.T) {
	env := newTestEnv()
	env.responsables.items = append(env.responsables.items, &models.Responsable{
		ID: 7, Nombres: "Rosa", Apellidos: "Quispe",
		Correo: "resp1@x.bo", CI: "12345678", Activo: true,
	})

	result, err := env.svc.Login(context.Background(), &LoginInput{
		Correo:   "resp1@x.bo",
		Password: "12345678",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(result.Token) != token.Length {
		t.Fatalf("expected a %d-char opaque token, got %d chars", token.Length, len(result.Token))
	}

	// Only the digest is persisted, never the plaintext
	if len(env.respTokens.rows) != 1 {
		t.Fatalf("expected 1 token row, got %d", len(env.respTokens.rows))
	}
	if env.respTokens.rows[0].Token != token.Digest(result.Token) {
		t.Error("stored value is not the SHA-256 digest of the issued token")
	}
	if env.respTokens.rows[0].Token == result.Token {
		t.Error("plaintext token was persisted")
	}

	responsable, err := env.svc.ResolveResponsable(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("resolve responsable: %v", err)
	}
	if responsable.ID != 7 || responsable.Synthesized {
		t.Errorf("expected stored responsable 7, got %+v", responsable)
	}
}

func TestLoginWrongSecret(t *testing.T) {
	env := newTestEnv()
	env.responsables.items = append(env.responsables.items, &models.Responsable{
		ID: 7, Correo: "resp1@x.bo", CI: "12345678", Activo: true,
	})

	_, err := env.svc.Login(context.Background(), &LoginInput{
		Correo:   "resp1@x.bo",
		Password: "00000000",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(env.respTokens.rows) != 0 {
		t.Error("no token must be issued on a failed login")
	}
}

func TestLoginUnknownCorreo(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.Login(context.Background(), &LoginInput{
		Correo:   "nadie@x.bo",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// The same correo may exist in several principal tables; the usuario
// match must win and no plain token may be minted.
func TestLoginPrecedenceUsuarioWins(t *testing.T) {
	env := newTestEnv()
	env.usuarios.usuarios = append(env.usuarios.usuarios, &models.Usuario{
		ID: "u-1", Correo: "dual@x.bo", Password: mustHash(t, "clave123"), Estado: true,
	})
	env.responsables.items = append(env.responsables.items, &models.Responsable{
		ID: 9, Correo: "dual@x.bo", CI: "555", Activo: true,
	})

	result, err := env.svc.Login(context.Background(), &LoginInput{
		Correo:   "dual@x.bo",
		Password: "clave123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(env.sessions.rows) != 1 || len(env.respTokens.rows) != 0 {
		t.Errorf("expected a session and no responsable token, got %d/%d",
			len(env.sessions.rows), len(env.respTokens.rows))
	}
	if _, err := env.svc.ResolveUsuario(context.Background(), result.Token); err != nil {
		t.Errorf("session token must resolve: %v", err)
	}
}

// A usuario row for the correo does not block the chain when the secret
// is actually the responsable's CI.
func TestLoginFallsThroughToResponsable(t *testing.T) {
	env := newTestEnv()
	env.usuarios.usuarios = append(env.usuarios.usuarios, &models.Usuario{
		ID: "u-1", Correo: "dual@x.bo", Password: mustHash(t, "clave123"), Estado: true,
	})
	env.responsables.items = append(env.responsables.items, &models.Responsable{
		ID: 9, Correo: "dual@x.bo", CI: "555", Activo: true,
	})

	_, err := env.svc.Login(context.Background(), &LoginInput{
		Correo:   "dual@x.bo",
		Password: "555",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(env.respTokens.rows) != 1 || len(env.sessions.rows) != 0 {
		t.Errorf("expected a responsable token and no session, got %d/%d",
			len(env.respTokens.rows), len(env.sessions.rows))
	}
}

func TestLoginEvaluadorByCI(t *testing.T) {
	env := newTestEnv()
	env.evaluadores.items = append(env.evaluadores.items, &models.Evaluador{
		ID: 3, Correo: "eval@x.bo", CI: "9988776", Activo: true,
	})

	result, err := env.svc.Login(context.Background(), &LoginInput{
		Correo:   "eval@x.bo",
		Password: "9988776",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	evaluador, err := env.svc.ResolveEvaluador(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("resolve evaluador: %v", err)
	}
	if evaluador.ID != 3 {
		t.Errorf("resolved wrong evaluador: %d", evaluador.ID)
	}
}

// Logging in with a previously issued token rotates it: a fresh token is
// returned and the old one keeps working until an explicit logout.
func TestEvaluadorTokenRotation(t *testing.T) {
	env := newTestEnv()
	env.evaluadores.items = append(env.evaluadores.items, &models.Evaluador{
		ID: 3, Correo: "eval@x.bo", CI: "9988776", Activo: true,
	})

	first, err := env.svc.Login(context.Background(), &LoginInput{
		Correo: "eval@x.bo", Password: "9988776",
	})
	if err != nil {
		t.Fatalf("CI login failed: %v", err)
	}

	second, err := env.svc.Login(context.Background(), &LoginInput{
		Correo: "eval@x.bo", Password: first.Token,
	})
	if err != nil {
		t.Fatalf("token login failed: %v", err)
	}
	if second.Token == first.Token {
		t.Fatal("rotation must issue a fresh token")
	}
	if len(env.evalTokens.rows) != 2 {
		t.Fatalf("expected 2 live token rows, got %d", len(env.evalTokens.rows))
	}

	for _, bearer := range []string{first.Token, second.Token} {
		if _, err := env.svc.ResolveEvaluador(context.Background(), bearer); err != nil {
			t.Errorf("token must stay valid after rotation: %v", err)
		}
	}
}

func TestLogoutRevokesImmediately(t *testing.T) {
	env := newTestEnv()
	env.responsables.items = append(env.responsables.items, &models.Responsable{
		ID: 7, Correo: "resp1@x.bo", CI: "12345678", Activo: true,
	})

	result, err := env.svc.Login(context.Background(), &LoginInput{
		Correo: "resp1@x.bo", Password: "12345678",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	env.svc.Logout(context.Background(), result.Token)

	if _, err := env.svc.ResolveResponsable(context.Background(), result.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv()
	seedAdmin(t, env)

	result, err := env.svc.Login(context.Background(), &LoginInput{
		Correo: "admin@ohsansi.bo", Password: "admin123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	env.svc.Logout(context.Background(), result.Token)

	// The JWT itself is still cryptographically valid; revocation lives in
	// the digest row, which is now gone.
	if _, err := env.svc.ResolveUsuario(context.Background(), result.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	env := newTestEnv()
	env.responsables.items = append(env.responsables.items, &models.Responsable{
		ID: 7, Correo: "resp1@x.bo", CI: "12345678", Activo: true,
	})

	result, err := env.svc.Login(context.Background(), &LoginInput{
		Correo: "resp1@x.bo", Password: "12345678",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	past := time.Now().Add(-time.Minute)
	env.respTokens.rows[0].ExpiresAt = &past

	if _, err := env.svc.ResolveResponsable(context.Background(), result.Token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestResolveMissingToken(t *testing.T) {
	env := newTestEnv()

	if _, err := env.svc.ResolveUsuario(context.Background(), ""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("usuario: expected ErrMissingToken, got %v", err)
	}
	if _, err := env.svc.ResolveResponsable(context.Background(), ""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("responsable: expected ErrMissingToken, got %v", err)
	}
	if _, err := env.svc.ResolveEvaluador(context.Background(), ""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("evaluador: expected ErrMissingToken, got %v", err)
	}
}

func TestResolveGarbageToken(t *testing.T) {
	env := newTestEnv()

	if _, err := env.svc.ResolveResponsable(context.Background(), "no-such-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

// A system user holding a RESPONSABLE-synonym role passes through the
// responsable pipeline. With no backing responsables row the principal is
// synthesized from the usuario profile and carries no area.
func TestResolveResponsableSessionFallbackSynthesized(t *testing.T) {
	env := newTestEnv()
	env.usuarios.usuarios = append(env.usuarios.usuarios, &models.Usuario{
		ID: "u-resp", Nombres: "Luis", Apellidos: "Rojas",
		Correo: "luis@x.bo", Password: mustHash(t, "clave123"), Estado: true,
		Roles: []models.Rol{{ID: 2, Nombre: "Responsable", Slug: "responsable"}},
	})

	result, err := env.svc.Login(context.Background(), &LoginInput{
		Correo: "luis@x.bo", Password: "clave123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	responsable, err := env.svc.ResolveResponsable(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !responsable.Synthesized {
		t.Error("expected a synthesized principal")
	}
	if responsable.ID != 0 || responsable.AreaID != nil {
		t.Errorf("synthesized principal must not carry an identity or area: %+v", responsable)
	}
	if responsable.Correo != "luis@x.bo" || responsable.Nombres != "Luis" {
		t.Errorf("profile not copied from the usuario: %+v", responsable)
	}
}

// When a responsables row shares the usuario's correo, that stored row is
// returned instead of a synthesized one.
func TestResolveResponsableSessionFallbackStoredRow(t *testing.T) {
	env := newTestEnv()
	areaID := uint(4)
	env.usuarios.usuarios = append(env.usuarios.usuarios, &models.Usuario{
		ID: "u-resp", Correo: "luis@x.bo", Password: mustHash(t, "clave123"), Estado: true,
		Roles: []models.Rol{{ID: 2, Slug: "responsable"}},
	})
	env.responsables.items = append(env.responsables.items, &models.Responsable{
		ID: 11, Correo: "luis@x.bo", CI: "777", AreaID: &areaID, Activo: true,
	})

	result, err := env.svc.Login(context.Background(), &LoginInput{
		Correo: "luis@x.bo", Password: "clave123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	responsable, err := env.svc.ResolveResponsable(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if responsable.Synthesized || responsable.ID != 11 {
		t.Errorf("expected stored responsable 11, got %+v", responsable)
	}
	if responsable.AreaID == nil || *responsable.AreaID != 4 {
		t.Error("stored row must keep its area assignment")
	}
}

// A session without the required role never passes a plain-token pipeline.
func TestResolveResponsableSessionWrongRole(t *testing.T) {
	env := newTestEnv()
	seedAdmin(t, env) // administrador only

	result, err := env.svc.Login(context.Background(), &LoginInput{
		Correo: "admin@ohsansi.bo", Password: "admin123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := env.svc.ResolveResponsable(context.Background(), result.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestResolveEvaluadorSessionFallback(t *testing.T) {
	env := newTestEnv()
	env.usuarios.usuarios = append(env.usuarios.usuarios, &models.Usuario{
		ID: "u-eval", Correo: "eva@x.bo", Password: mustHash(t, "clave123"), Estado: true,
		Roles: []models.Rol{{ID: 3, Slug: "evaluador"}},
	})

	result, err := env.svc.Login(context.Background(), &LoginInput{
		Correo: "eva@x.bo", Password: "clave123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	evaluador, err := env.svc.ResolveEvaluador(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !evaluador.Synthesized || evaluador.Correo != "eva@x.bo" {
		t.Errorf("expected synthesized evaluador, got %+v", evaluador)
	}
}

type brokenRespTokenRepo struct {
	fakeRespTokenRepo
}

func (b *brokenRespTokenRepo) GetByDigest(context.Context, string) (*models.ResponsableToken, error) {
	return nil, gorm.ErrInvalidDB
}

// An unreachable datastore must read as an authentication failure, never
// as a pass-through.
func TestResolveFailsClosedOnStoreError(t *testing.T) {
	env := newTestEnv()
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", SessionHours: 1}}
	svc := NewAuthService(
		env.usuarios, env.roles, env.responsables, env.evaluadores,
		&brokenRespTokenRepo{}, env.evalTokens, env.sessions,
		cfg, log,
	)

	if _, err := svc.ResolveResponsable(context.Background(), "any-bearer"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRegisterUsuario(t *testing.T) {
	env := newTestEnv()

	usuario, err := env.svc.RegisterUsuario(context.Background(), &RegisterInput{
		Nombres: "Nora", Apellidos: "Paz", Correo: "Nora@X.bo",
		Password: "clave123", Roles: []uint{1, 2},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if usuario.Correo != "nora@x.bo" {
		t.Errorf("correo not normalized: %s", usuario.Correo)
	}
	if usuario.Password == "clave123" {
		t.Error("password stored in plaintext")
	}
	if len(usuario.Roles) != 2 {
		t.Errorf("expected 2 roles, got %d", len(usuario.Roles))
	}

	if _, err := env.svc.RegisterUsuario(context.Background(), &RegisterInput{
		Correo: "nora@x.bo", Password: "otra",
	}); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestRegisterUsuarioUnknownRole(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.RegisterUsuario(context.Background(), &RegisterInput{
		Correo: "x@x.bo", Password: "clave123", Roles: []uint{99},
	})
	if !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}
