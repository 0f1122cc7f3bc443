package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// upstreamFailure logs a provider error and writes the 500 error envelope.
// The message is the error's own text, unmodified.
func upstreamFailure(c *fiber.Ctx, op string, err error) error {
	log.Error().
		Err(err).
		Str("operation", op).
		Str("path", c.Path()).
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Msg("provider call failed")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// ErrorHandler is the app-wide Fiber error handler. It renders errors that escape a
// handler (unmatched routes, bad methods, recovered panics) in the same
// {"error": "..."} shape the data endpoints use, keeping the framework's status code.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
