package middleware

import (
	"errors"

	"ohsansi-api/internal/core/services"
	"ohsansi-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ResponsableAuth authenticates the responsable pipeline: issued-token
// digest lookup first, then the session fallback for system users holding
// a RESPONSABLE-synonym role (possibly as a synthesized principal).
func ResponsableAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := bearerFromRequest(c)
		if bearer == "" {
			return response.Unauthorized(c, "Token faltante.")
		}

		responsable, err := authService.ResolveResponsable(c.Context(), bearer)
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				return response.Unauthorized(c, "Token expirado.")
			}
			return response.Unauthorized(c, "Token inválido o sin permisos de responsable.")
		}

		c.Locals(localResponsable, responsable)
		c.Locals(localBearer, bearer)
		return c.Next()
	}
}
