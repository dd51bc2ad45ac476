package middleware

import (
	"errors"
	"fmt"

	"etalase/internal/apperror"
	"etalase/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error returned by a handler. Development
// responses carry the full diagnostics; production responses only expose the
// message of operational errors.
func ErrorHandler(development bool, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := err.Error()
		operational := false
		var fields []apperror.FieldError

		var fe *fiber.Error
		if e, ok := apperror.As(err); ok {
			status, message, fields, operational = e.Status, e.Message, e.Fields, true
		} else if errors.As(err, &fe) {
			status, message, operational = fe.Code, fe.Message, true
		}

		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		} else if development {
			log.Debug().Err(err).Int("status", status).Str("path", c.Path()).Msg("request rejected")
		}

		if development {
			body := fiber.Map{
				"status":  apperror.StatusText(status),
				"error":   fiber.Map{"statusCode": status, "isOperational": operational, "detail": err.Error()},
				"message": message,
				"stack":   apperror.Stack(err),
			}
			if len(fields) > 0 {
				body["errors"] = fields
			}
			return c.Status(status).JSON(body)
		}

		if !operational {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Something went wrong",
			})
		}
		body := fiber.Map{
			"status":  apperror.StatusText(status),
			"message": message,
		}
		if len(fields) > 0 {
			body["errors"] = fields
		}
		return c.Status(status).JSON(body)
	}
}

// NotFound is mounted after every route and turns unmatched requests into an
// operational 404.
func NotFound(c *fiber.Ctx) error {
	return apperror.NotFound(fmt.Sprintf("Can't find this route: %s %s", c.Method(), c.OriginalURL()))
}
