package config

import (
	"ohsansi-api/internal/adapters/persistence/models"
	"ohsansi-api/internal/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	logrus.Info("🌱 Running database seeders...")

	if err := s.seedRoles(); err != nil {
		return err
	}
	if err := s.seedNiveles(); err != nil {
		return err
	}
	if err := s.seedAdminUsuario(); err != nil {
		logrus.WithError(err).Warn("⚠️ Admin seeder skipped")
	}

	logrus.Info("✅ Database seeding completed")
	return nil
}

// seedRoles inserts the base system roles when missing
func (s *Seeder) seedRoles() error {
	base := []models.Rol{
		{ID: 1, Nombre: "Administrador", Slug: "administrador", Activo: true},
		{ID: 2, Nombre: "Responsable", Slug: "responsable", Activo: true},
		{ID: 3, Nombre: "Evaluador", Slug: "evaluador", Activo: true},
	}
	for _, rol := range base {
		var count int64
		s.db.Model(&models.Rol{}).Where("slug = ?", rol.Slug).Count(&count)
		if count > 0 {
			continue
		}
		if err := s.db.Create(&rol).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedNiveles inserts the competition-level catalog when missing
func (s *Seeder) seedNiveles() error {
	var count int64
	s.db.Model(&models.Nivel{}).Count(&count)
	if count > 0 {
		return nil
	}
	niveles := []models.Nivel{
		{Nombre: "Primaria"},
		{Nombre: "Secundaria"},
	}
	return s.db.Create(&niveles).Error
}

// seedAdminUsuario seeds a default admin user.
// Development convenience only; skipped when any admin already exists.
func (s *Seeder) seedAdminUsuario() error {
	var count int64
	s.db.Model(&models.Usuario{}).
		Joins("JOIN usuario_rol ON usuario_rol.usuario_id = usuarios.id").
		Joins("JOIN roles ON roles.id = usuario_rol.rol_id").
		Where("roles.slug = ?", "administrador").
		Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash("admin123")
	if err != nil {
		return err
	}

	admin := &models.Usuario{
		Nombres:   "Administrador",
		Apellidos: "OH Sansi",
		Correo:    "admin@ohsansi.bo",
		CI:        "CI-0001",
		Password:  hashed,
		Estado:    true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	var adminRol models.Rol
	if err := s.db.Where("slug = ?", "administrador").First(&adminRol).Error; err != nil {
		return err
	}
	if err := s.db.Model(admin).Association("Roles").Append(&adminRol); err != nil {
		return err
	}

	logrus.WithField("correo", admin.Correo).Info("✅ Admin usuario created")
	return nil
}
