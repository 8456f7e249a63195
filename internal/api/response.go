package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response wrapper on every JSON endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Envelope{Success: true, Message: message, Data: data})
}

func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

// ErrorHandler is the outermost boundary: anything a handler did not map to a
// status comes back as a plain 500 with no internal detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		if code == fiber.StatusNotFound {
			message = "Not found"
		}
	}

	return Fail(c, code, message)
}
