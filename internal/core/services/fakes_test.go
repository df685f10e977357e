package services

import (
	"context"
	"io"

	"ohsansi-api/internal/adapters/persistence/models"
	"ohsansi-api/internal/config"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests. They mimic the
// GORM implementations' contract: not-found is gorm.ErrRecordNotFound.

type fakeUsuarioRepo struct {
	usuarios []*models.Usuario
	nextID   int
}

func (f *fakeUsuarioRepo) Create(_ context.Context, u *models.Usuario) error {
	if u.ID == "" {
		f.nextID++
		u.ID = string(rune('a' + f.nextID))
	}
	f.usuarios = append(f.usuarios, u)
	return nil
}

func (f *fakeUsuarioRepo) GetByID(_ context.Context, id string) (*models.Usuario, error) {
	for _, u := range f.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsuarioRepo) GetByCorreo(_ context.Context, correo string) (*models.Usuario, error) {
	for _, u := range f.usuarios {
		if u.Correo == correo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsuarioRepo) ExistsByCorreo(ctx context.Context, correo string) (bool, error) {
	_, err := f.GetByCorreo(ctx, correo)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUsuarioRepo) SetRoles(_ context.Context, u *models.Usuario, roleIDs []uint) error {
	u.Roles = nil
	for _, id := range roleIDs {
		u.Roles = append(u.Roles, models.Rol{ID: id})
	}
	return nil
}

type fakeRolRepo struct {
	roles []models.Rol
}

func (f *fakeRolRepo) ListByIDs(_ context.Context, ids []uint) ([]models.Rol, error) {
	var out []models.Rol
	for _, id := range ids {
		for _, r := range f.roles {
			if r.ID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

type fakeResponsableRepo struct {
	items []*models.Responsable
}

func (f *fakeResponsableRepo) GetByID(_ context.Context, id uint) (*models.Responsable, error) {
	for _, r := range f.items {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResponsableRepo) GetByCorreo(_ context.Context, correo string) (*models.Responsable, error) {
	for _, r := range f.items {
		if r.Correo == correo {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEvaluadorRepo struct {
	items []*models.Evaluador
}

func (f *fakeEvaluadorRepo) GetByID(_ context.Context, id uint) (*models.Evaluador, error) {
	for _, e := range f.items {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEvaluadorRepo) GetByCorreo(_ context.Context, correo string) (*models.Evaluador, error) {
	for _, e := range f.items {
		if e.Correo == correo {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRespTokenRepo struct {
	rows   []*models.ResponsableToken
	nextID uint
}

func (f *fakeRespTokenRepo) Create(_ context.Context, t *models.ResponsableToken) error {
	f.nextID++
	t.ID = f.nextID
	f.rows = append(f.rows, t)
	return nil
}

func (f *fakeRespTokenRepo) GetByDigest(_ context.Context, digest string) (*models.ResponsableToken, error) {
	for _, t := range f.rows {
		if t.Token == digest {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRespTokenRepo) DeleteByDigest(_ context.Context, digest string) error {
	kept := f.rows[:0]
	for _, t := range f.rows {
		if t.Token != digest {
			kept = append(kept, t)
		}
	}
	f.rows = kept
	return nil
}

type fakeEvalTokenRepo struct {
	rows   []*models.EvaluadorToken
	nextID uint
}

func (f *fakeEvalTokenRepo) Create(_ context.Context, t *models.EvaluadorToken) error {
	f.nextID++
	t.ID = f.nextID
	f.rows = append(f.rows, t)
	return nil
}

func (f *fakeEvalTokenRepo) GetByDigest(_ context.Context, digest string) (*models.EvaluadorToken, error) {
	for _, t := range f.rows {
		if t.Token == digest {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEvalTokenRepo) GetByEvaluadorAndDigest(_ context.Context, evaluadorID uint, digest string) (*models.EvaluadorToken, error) {
	for _, t := range f.rows {
		if t.EvaluadorID == evaluadorID && t.Token == digest {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEvalTokenRepo) DeleteByDigest(_ context.Context, digest string) error {
	kept := f.rows[:0]
	for _, t := range f.rows {
		if t.Token != digest {
			kept = append(kept, t)
		}
	}
	f.rows = kept
	return nil
}

type fakeUsuarioTokenRepo struct {
	rows   []*models.UsuarioToken
	nextID uint
}

func (f *fakeUsuarioTokenRepo) Create(_ context.Context, t *models.UsuarioToken) error {
	f.nextID++
	t.ID = f.nextID
	f.rows = append(f.rows, t)
	return nil
}

func (f *fakeUsuarioTokenRepo) GetByHash(_ context.Context, hash string) (*models.UsuarioToken, error) {
	for _, t := range f.rows {
		if t.TokenHash == hash {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsuarioTokenRepo) DeleteByHash(_ context.Context, hash string) error {
	kept := f.rows[:0]
	for _, t := range f.rows {
		if t.TokenHash != hash {
			kept = append(kept, t)
		}
	}
	f.rows = kept
	return nil
}

type fakeBitacoraRepo struct {
	entries []*models.Bitacora
	failing bool
}

func (f *fakeBitacoraRepo) Create(_ context.Context, e *models.Bitacora) error {
	if f.failing {
		return gorm.ErrInvalidDB
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeBitacoraRepo) List(_ context.Context, actorTipo string, offset, limit int) ([]models.Bitacora, int64, error) {
	var out []models.Bitacora
	for _, e := range f.entries {
		if actorTipo == "" || e.ActorTipo == actorTipo {
			out = append(out, *e)
		}
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

// testEnv bundles a fully wired AuthService over in-memory stores
type testEnv struct {
	svc          *AuthService
	usuarios     *fakeUsuarioRepo
	roles        *fakeRolRepo
	responsables *fakeResponsableRepo
	evaluadores  *fakeEvaluadorRepo
	respTokens   *fakeRespTokenRepo
	evalTokens   *fakeEvalTokenRepo
	sessions     *fakeUsuarioTokenRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		usuarios:     &fakeUsuarioRepo{},
		roles:        &fakeRolRepo{roles: []models.Rol{
			{ID: 1, Nombre: "Administrador", Slug: "administrador"},
			{ID: 2, Nombre: "Responsable", Slug: "responsable"},
			{ID: 3, Nombre: "Evaluador", Slug: "evaluador"},
		}},
		responsables: &fakeResponsableRepo{},
		evaluadores:  &fakeEvaluadorRepo{},
		respTokens:   &fakeRespTokenRepo{},
		evalTokens:   &fakeEvalTokenRepo{},
		sessions:     &fakeUsuarioTokenRepo{},
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", SessionHours: 1},
	}

	env.svc = NewAuthService(
		env.usuarios, env.roles, env.responsables, env.evaluadores,
		env.respTokens, env.evalTokens, env.sessions,
		cfg, log,
	)
	return env
}
