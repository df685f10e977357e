package routes

import (
	"ohsansi-api/internal/adapters/http/handlers"
	"ohsansi-api/internal/adapters/http/middleware"
	"ohsansi-api/internal/adapters/persistence/repositories"
	"ohsansi-api/internal/config"
	"ohsansi-api/internal/core/services"
	"ohsansi-api/internal/pkg/roles"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Setup wires repositories, services, handlers and the route table
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	// Repositories
	usuarioRepo := repositories.NewUsuarioRepository(db)
	rolRepo := repositories.NewRolRepository(db)
	responsableRepo := repositories.NewResponsableRepository(db)
	evaluadorRepo := repositories.NewEvaluadorRepository(db)
	respTokenRepo := repositories.NewResponsableTokenRepository(db)
	evalTokenRepo := repositories.NewEvaluadorTokenRepository(db)
	usuarioTokenRepo := repositories.NewUsuarioTokenRepository(db)
	bitacoraRepo := repositories.NewBitacoraRepository(db)
	areaRepo := repositories.NewAreaRepository(db)
	nivelRepo := repositories.NewNivelRepository(db)
	inscritoRepo := repositories.NewInscritoRepository(db)

	// Services
	authService := services.NewAuthService(
		usuarioRepo, rolRepo, responsableRepo, evaluadorRepo,
		respTokenRepo, evalTokenRepo, usuarioTokenRepo,
		cfg, log,
	)
	auditService := services.NewAuditService(bitacoraRepo, log)
	areaService := services.NewAreaService(areaRepo, nivelRepo, auditService)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	areaHandler := handlers.NewAreaHandler(areaService)
	bitacoraHandler := handlers.NewBitacoraHandler(auditService)
	inscritoHandler := handlers.NewInscritoHandler(inscritoRepo, auditService)

	// Auth pipelines, each statically bound to its route group
	sessionAuth := middleware.SessionAuth(authService)
	optionalSession := middleware.OptionalSessionAuth(authService)
	responsableAuth := middleware.ResponsableAuth(authService)
	evaluadorAuth := middleware.EvaluadorAuth(authService)

	// Public
	app.Get("/ping", healthHandler.Ping)
	app.Post("/auth/login", middleware.AuthRateLimiter(), authHandler.Login)

	// Logout works for every principal type; the session is attached when
	// present so its row can be revoked alongside the plain-token tables.
	app.Post("/auth/logout", optionalSession, authHandler.Logout)

	// System users (session)
	auth := app.Group("", sessionAuth)
	auth.Get("/auth/perfil", authHandler.Perfil)
	auth.Get("/niveles", areaHandler.Niveles)

	// Areas CRUD (admin only)
	areas := auth.Group("/areas", middleware.RequireRoles(roles.Administrador))
	areas.Get("/", areaHandler.List)
	areas.Post("/", areaHandler.Create)
	areas.Get("/:id", areaHandler.Get)
	areas.Put("/:id", areaHandler.Update)
	areas.Delete("/:id", areaHandler.Delete)

	// Admin zone
	admin := auth.Group("/admin", middleware.RequireRoles(roles.Administrador))
	admin.Post("/usuarios", authHandler.RegisterUsuario)
	admin.Get("/bitacoras", bitacoraHandler.List)

	// Responsable zone (plain token, with ?token= fallback for downloads)
	responsable := app.Group("/responsable", responsableAuth)
	responsable.Get("/perfil", authHandler.PerfilResponsable)
	responsable.Get("/inscritos", inscritoHandler.List)
	responsable.Get("/inscritos/export", inscritoHandler.Export)

	// Evaluador zone (plain token)
	evaluador := app.Group("/evaluador", evaluadorAuth)
	evaluador.Get("/perfil", authHandler.PerfilEvaluador)
}
