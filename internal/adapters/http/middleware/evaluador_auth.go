package middleware

import (
	"errors"

	"ohsansi-api/internal/core/services"
	"ohsansi-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EvaluadorAuth authenticates the evaluador pipeline. Request-time
// resolution only matches previously issued token digests; the CI-as-secret
// branch lives in the login flow, never here.
func EvaluadorAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := bearerFromRequest(c)
		if bearer == "" {
			return response.Unauthorized(c, "Token no provisto.")
		}

		evaluador, err := authService.ResolveEvaluador(c.Context(), bearer)
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				return response.Unauthorized(c, "Token expirado.")
			}
			return response.Unauthorized(c, "Token inválido o sin permisos de evaluador.")
		}

		c.Locals(localEvaluador, evaluador)
		c.Locals(localBearer, bearer)
		return c.Next()
	}
}
