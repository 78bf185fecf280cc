package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends the standard error envelope. The message is always
// available under "error" for API consumers.
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"error":     message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// ValidationErrorResponse sends a 400 with field-level violation details
func ValidationErrorResponse(c *fiber.Ctx, message string, violations map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":     fiber.StatusBadRequest,
		"error":      message,
		"ok":         false,
		"violations": violations,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"url":        c.OriginalURL(),
		"type":       "validation",
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"error":     message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status     int               `json:"status"`
	Error      string            `json:"error"`
	Ok         bool              `json:"ok"`
	Timestamp  string            `json:"timestamp"`
	URL        string            `json:"url"`
	Type       string            `json:"type,omitempty"`
	Violations map[string]string `json:"violations,omitempty"`
}
