package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Principals
// ============================================================

// Usuario represents a system user (usuarios table).
// Authenticated by bcrypt password; sessions are revocable JWTs
// backed by usuario_tokens rows.
type Usuario struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Nombres       string    `gorm:"size:100;not null" json:"nombres"`
	Apellidos     string    `gorm:"size:100;not null" json:"apellidos"`
	Correo        string    `gorm:"uniqueIndex;size:255;not null" json:"correo"`
	Telefono      string    `gorm:"size:20" json:"telefono,omitempty"`
	CI            string    `gorm:"column:ci;size:20" json:"ci,omitempty"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	Estado        bool      `gorm:"default:true" json:"estado"`
	CreadoEn      time.Time `gorm:"column:creado_en;autoCreateTime" json:"creado_en"`
	ActualizadoEn time.Time `gorm:"column:actualizado_en;autoUpdateTime" json:"actualizado_en"`
	Roles         []Rol     `gorm:"many2many:usuario_rol;joinForeignKey:usuario_id;joinReferences:rol_id" json:"roles"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// BeforeCreate assigns a UUID primary key when none was set
func (u *Usuario) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// RoleSlugs returns the slugs of all loaded roles
func (u *Usuario) RoleSlugs() []string {
	slugs := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		slugs = append(slugs, r.Slug)
	}
	return slugs
}

// Rol represents a system role (roles table)
type Rol struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"size:100;not null" json:"nombre"`
	Slug   string `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Activo bool   `gorm:"default:true" json:"activo"`
}

func (Rol) TableName() string {
	return "roles"
}

// Responsable represents an academic area responsable (responsables table).
// Authenticated by correo + CI as shared secret; holds plain opaque tokens.
type Responsable struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombres   string    `gorm:"size:100;not null" json:"nombres"`
	Apellidos string    `gorm:"size:100;not null" json:"apellidos"`
	CI        string    `gorm:"column:ci;size:20;not null" json:"ci,omitempty"`
	Correo    string    `gorm:"size:255;not null;index" json:"correo"`
	Telefono  string    `gorm:"size:20" json:"telefono,omitempty"`
	AreaID    *uint     `gorm:"index" json:"area_id"`
	NivelID   *uint     `gorm:"index" json:"nivel_id"`
	Activo    bool      `gorm:"default:true" json:"activo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Synthesized marks a principal borrowed from a system user with the
	// RESPONSABLE role. It has no backing row and must never be saved.
	Synthesized bool `gorm:"-" json:"-"`
}

func (Responsable) TableName() string {
	return "responsables"
}

// Evaluador represents an evaluator (evaluadores table).
// Authenticated by correo + CI, or by a previously issued opaque token.
type Evaluador struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombres   string    `gorm:"size:100;not null" json:"nombres"`
	Apellidos string    `gorm:"size:100;not null" json:"apellidos"`
	Correo    string    `gorm:"size:255;not null;index" json:"correo"`
	Telefono  string    `gorm:"size:20" json:"telefono,omitempty"`
	CI        string    `gorm:"column:ci;size:20" json:"ci,omitempty"`
	Activo    bool      `gorm:"default:true" json:"activo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Synthesized marks a principal borrowed from a system user with the
	// EVALUADOR role. It has no backing row and must never be saved.
	Synthesized bool `gorm:"-" json:"-"`
}

func (Evaluador) TableName() string {
	return "evaluadores"
}

// ============================================================
// Olympiad catalog & competitors
// ============================================================

// Area represents an olympiad knowledge area (areas table)
type Area struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:100;not null" json:"nombre"`
	Codigo    string    `gorm:"uniqueIndex;size:20;not null" json:"codigo"`
	Activo    bool      `gorm:"default:true" json:"activo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Area) TableName() string {
	return "areas"
}

// Nivel represents a competition level (niveles table)
type Nivel struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"size:100;not null" json:"nombre"`
}

func (Nivel) TableName() string {
	return "niveles"
}

// Inscrito represents a registered competitor (inscritos table)
type Inscrito struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombres   string    `gorm:"size:100;not null" json:"nombres"`
	Apellidos string    `gorm:"size:100;not null" json:"apellidos"`
	Documento string    `gorm:"size:30;not null;index" json:"documento"`
	Colegio   string    `gorm:"size:150" json:"colegio,omitempty"`
	AreaID    *uint     `gorm:"index" json:"area_id"`
	NivelID   *uint     `gorm:"index" json:"nivel_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Inscrito) TableName() string {
	return "inscritos"
}

// ============================================================
// Audit trail
// ============================================================

// Bitacora is an append-only audit event (bitacoras table).
// Rows are written best-effort by AuditService and never updated.
type Bitacora struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorEmail string    `gorm:"size:255;not null;index" json:"actor_email"`
	ActorTipo  string    `gorm:"size:50;not null" json:"actor_tipo"`
	Mensaje    string    `gorm:"type:text;not null" json:"mensaje"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Bitacora) TableName() string {
	return "bitacoras"
}

// ============================================================
// Response views
// ============================================================

// RolView is the role shape embedded in login/profile responses
type RolView struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
	Slug   string `json:"slug"`
}

// PrincipalView is the unified "user" object returned by login and the
// perfil endpoints, regardless of which principal table matched.
type PrincipalView struct {
	ID        interface{} `json:"id"`
	Nombres   string      `json:"nombres"`
	Apellidos string      `json:"apellidos"`
	Correo    string      `json:"correo"`
	Roles     []RolView   `json:"roles"`
}

// ToView builds the login/profile view of a system user with its roles
func (u *Usuario) ToView() *PrincipalView {
	view := &PrincipalView{
		ID:        u.ID,
		Nombres:   u.Nombres,
		Apellidos: u.Apellidos,
		Correo:    u.Correo,
		Roles:     make([]RolView, 0, len(u.Roles)),
	}
	for _, r := range u.Roles {
		view.Roles = append(view.Roles, RolView{ID: r.ID, Nombre: r.Nombre, Slug: r.Slug})
	}
	return view
}

// ToView builds the role-shaped view of a responsable principal
func (r *Responsable) ToView() *PrincipalView {
	return &PrincipalView{
		ID:        r.ID,
		Nombres:   r.Nombres,
		Apellidos: r.Apellidos,
		Correo:    r.Correo,
		Roles: []RolView{
			{ID: 2, Nombre: "Responsable Académico", Slug: "RESPONSABLE"},
		},
	}
}

// ToView builds the role-shaped view of an evaluador principal
func (e *Evaluador) ToView() *PrincipalView {
	return &PrincipalView{
		ID:        e.ID,
		Nombres:   e.Nombres,
		Apellidos: e.Apellidos,
		Correo:    e.Correo,
		Roles: []RolView{
			{ID: 3, Nombre: "Evaluador", Slug: "EVALUADOR"},
		},
	}
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Rol{},
		&Usuario{},
		&UsuarioToken{},
		&Responsable{},
		&ResponsableToken{},
		&Evaluador{},
		&EvaluadorToken{},
		&Area{},
		&Nivel{},
		&Inscrito{},
		&Bitacora{},
	)
}
