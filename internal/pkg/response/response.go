package response

import "github.com/gofiber/fiber/v2"

// Message mirrors the wire shape the frontend expects: every outcome carries
// a human-readable "message", optionally next to payload fields.
type Message struct {
	Message string `json:"message"`
}

// OK sends a 200 response with an arbitrary payload
func OK(c *fiber.Ctx, payload interface{}) error {
	return c.JSON(payload)
}

// Created sends a 201 response with an arbitrary payload
func Created(c *fiber.Ctx, payload interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(payload)
}

// WithMessage sends a 200 response carrying only a message
func WithMessage(c *fiber.Ctx, message string) error {
	return c.JSON(Message{Message: message})
}

// Error sends an error response with the given status code
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Message{Message: message})
}

// BadRequest sends a 400 response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// UnprocessableEntity sends a 422 response (validation / login rejections)
func UnprocessableEntity(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnprocessableEntity, message)
}

// InternalServerError sends a 500 response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
