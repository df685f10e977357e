package middleware

import (
	"errors"

	"ohsansi-api/internal/core/services"
	"ohsansi-api/internal/pkg/response"
	"ohsansi-api/internal/pkg/roles"

	"github.com/gofiber/fiber/v2"
)

// SessionAuth authenticates system users by their revocable session token.
// The cookie is tried first, then the Authorization header.
func SessionAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := c.Cookies("access_token")
		if bearer == "" {
			bearer = bearerFromHeader(c)
		}
		if bearer == "" {
			return response.Unauthorized(c, "No autenticado.")
		}

		usuario, err := authService.ResolveUsuario(c.Context(), bearer)
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				return response.Unauthorized(c, "Token expirado.")
			}
			return response.Unauthorized(c, "Token inválido.")
		}

		c.Locals(localUsuario, usuario)
		c.Locals(localBearer, bearer)
		return c.Next()
	}
}

// OptionalSessionAuth attaches a session principal when a valid token is
// present but lets the request through either way. Logout uses it: the
// endpoint must succeed for plain-token principals too.
func OptionalSessionAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := c.Cookies("access_token")
		if bearer == "" {
			bearer = bearerFromHeader(c)
		}
		if bearer != "" {
			c.Locals(localBearer, bearer)
			if usuario, err := authService.ResolveUsuario(c.Context(), bearer); err == nil {
				c.Locals(localUsuario, usuario)
			}
		}
		return c.Next()
	}
}

// RequireRoles gates a route on the session principal's roles. Role
// identifiers are matched case-insensitively with synonym expansion,
// so requiring ADMINISTRADOR also admits a held ADMIN.
//
// 401 means no principal at all; 403 means a principal without the role.
// Role sets are never echoed back in responses.
func RequireRoles(required ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuario, ok := UsuarioFrom(c)
		if !ok {
			return response.Unauthorized(c, "No autenticado.")
		}
		if !roles.Authorized(usuario.RoleSlugs(), required) {
			return response.Forbidden(c, "Acceso denegado (rol insuficiente).")
		}
		return c.Next()
	}
}
