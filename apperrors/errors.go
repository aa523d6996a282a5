// Package apperrors defines the error taxonomy for the API and the single
// boundary that maps error kinds to transport responses. Failures are
// classified where they are detected and propagated as values; nothing in
// the request path retries.
package apperrors

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Error carries an HTTP status alongside the message. Context holds extra
// response fields such as the quota limit and reset date on a 429.
type Error struct {
	Status  int
	Message string
	Context map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

// Validation reports malformed or missing input.
func Validation(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Message: message}
}

// Authentication reports bad credentials without revealing which part
// was wrong.
func Authentication() *Error {
	return &Error{Status: fiber.StatusUnauthorized, Message: "Invalid email or password"}
}

// Authorization reports a user who lacks API access.
func Authorization(message string) *Error {
	return &Error{Status: fiber.StatusForbidden, Message: message}
}

// NotFound reports a missing entity.
func NotFound(resource string) *Error {
	return &Error{Status: fiber.StatusNotFound, Message: resource + " not found"}
}

// RateLimit reports an exhausted monthly quota, carrying the limit and
// the date the window resets.
func RateLimit(message string, limit int, reset time.Time) *Error {
	return &Error{
		Status:  fiber.StatusTooManyRequests,
		Message: "Rate limit exceeded",
		Context: map[string]interface{}{
			"message": message,
			"limit":   limit,
			"reset":   reset,
		},
	}
}

// Internal reports an unexpected failure. The message is returned to the
// caller as-is, so keep it free of internal detail.
func Internal(message string) *Error {
	return &Error{Status: fiber.StatusInternalServerError, Message: message}
}

// ErrorHandler is the fiber boundary: it converts any error escaping a
// handler or middleware into the JSON error body. Unknown errors are
// logged server-side and reported generically.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		body := fiber.Map{"error": appErr.Message}
		for k, v := range appErr.Context {
			body[k] = v
		}
		return c.Status(appErr.Status).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("[ERROR] unhandled: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
