package handlers

import (
	"errors"
	"strings"

	"ohsansi-api/internal/adapters/http/middleware"
	"ohsansi-api/internal/core/services"
	"ohsansi-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login for the three principal types
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Cuerpo de la solicitud inválido.")
	}

	if strings.TrimSpace(req.Correo) == "" || !strings.Contains(req.Correo, "@") {
		return response.UnprocessableEntity(c, "El correo es obligatorio.")
	}
	if strings.TrimSpace(req.Password) == "" {
		return response.UnprocessableEntity(c, "La contraseña es obligatoria.")
	}

	result, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// One generic message for every failure cause
			return response.UnprocessableEntity(c, "Credenciales inválidas.")
		}
		return response.InternalServerError(c, "No se pudo iniciar sesión.")
	}

	return response.OK(c, result)
}

// Logout handles POST /auth/logout. The bearer may belong to any of the
// three token tables; all are cleared and the call always succeeds.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.authService.Logout(c.Context(), middleware.BearerFrom(c))
	return response.WithMessage(c, "Sesión cerrada correctamente.")
}

// Perfil handles GET /auth/perfil for session principals
func (h *AuthHandler) Perfil(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioFrom(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado.")
	}
	return response.OK(c, usuario.ToView())
}

// PerfilResponsable handles GET /responsable/perfil
func (h *AuthHandler) PerfilResponsable(c *fiber.Ctx) error {
	responsable, ok := middleware.ResponsableFrom(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado.")
	}
	return response.OK(c, fiber.Map{
		"id":        responsable.ID,
		"nombres":   responsable.Nombres,
		"apellidos": responsable.Apellidos,
		"correo":    responsable.Correo,
	})
}

// PerfilEvaluador handles GET /evaluador/perfil
func (h *AuthHandler) PerfilEvaluador(c *fiber.Ctx) error {
	evaluador, ok := middleware.EvaluadorFrom(c)
	if !ok {
		return response.Unauthorized(c, "No autenticado.")
	}
	return response.OK(c, fiber.Map{
		"id":        evaluador.ID,
		"nombres":   evaluador.Nombres,
		"apellidos": evaluador.Apellidos,
		"correo":    evaluador.Correo,
	})
}

// RegisterUsuario handles POST /admin/usuarios (admin-gated)
func (h *AuthHandler) RegisterUsuario(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Cuerpo de la solicitud inválido.")
	}

	if strings.TrimSpace(req.Nombres) == "" || strings.TrimSpace(req.Apellidos) == "" {
		return response.UnprocessableEntity(c, "Nombres y apellidos son obligatorios.")
	}
	if strings.TrimSpace(req.Correo) == "" || !strings.Contains(req.Correo, "@") {
		return response.UnprocessableEntity(c, "El correo es obligatorio.")
	}
	if len(req.Password) < 6 {
		return response.UnprocessableEntity(c, "La contraseña debe tener al menos 6 caracteres.")
	}

	usuario, err := h.authService.RegisterUsuario(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			return response.UnprocessableEntity(c, "El correo ya está registrado.")
		case errors.Is(err, services.ErrRoleNotFound):
			return response.UnprocessableEntity(c, "Alguno de los roles no existe.")
		default:
			return response.InternalServerError(c, "No se pudo crear el usuario.")
		}
	}

	return response.OK(c, fiber.Map{
		"message": "Usuario creado correctamente.",
		"user":    usuario.ToView(),
	})
}
