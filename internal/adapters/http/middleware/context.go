package middleware

import (
	"strings"

	"ohsansi-api/internal/adapters/persistence/models"

	"github.com/gofiber/fiber/v2"
)

// Locals keys. Principals are attached exactly once by the auth
// middlewares and read through the typed accessors below; handlers never
// touch the raw keys.
const (
	localUsuario     = "principal:usuario"
	localResponsable = "principal:responsable"
	localEvaluador   = "principal:evaluador"
	localBearer      = "auth:bearer"
)

// UsuarioFrom returns the session principal attached to the request
func UsuarioFrom(c *fiber.Ctx) (*models.Usuario, bool) {
	u, ok := c.Locals(localUsuario).(*models.Usuario)
	return u, ok && u != nil
}

// ResponsableFrom returns the responsable principal attached to the request
func ResponsableFrom(c *fiber.Ctx) (*models.Responsable, bool) {
	r, ok := c.Locals(localResponsable).(*models.Responsable)
	return r, ok && r != nil
}

// EvaluadorFrom returns the evaluador principal attached to the request
func EvaluadorFrom(c *fiber.Ctx) (*models.Evaluador, bool) {
	e, ok := c.Locals(localEvaluador).(*models.Evaluador)
	return e, ok && e != nil
}

// BearerFrom returns the raw bearer credential that authenticated the request
func BearerFrom(c *fiber.Ctx) string {
	b, _ := c.Locals(localBearer).(string)
	return b
}

// bearerFromHeader extracts the credential from the Authorization header
func bearerFromHeader(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// bearerFromRequest extracts the credential from the Authorization header,
// falling back to the ?token= query parameter. The fallback exists for
// endpoints reached by plain browser navigation (file exports via <a>),
// where custom headers cannot be set.
func bearerFromRequest(c *fiber.Ctx) string {
	if bearer := bearerFromHeader(c); bearer != "" {
		return bearer
	}
	return c.Query("token")
}
