package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// ErrorHandler maps domain errors to HTTP statuses so callers can tell
// "certificate invalid" from "certificate expired" from "not enough data".
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		kind := ""

		switch {
		case errors.Is(err, domain.ErrVehicleNotFound),
			errors.Is(err, domain.ErrReportNotFound),
			errors.Is(err, domain.ErrPassportNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, domain.ErrInsufficientData):
			code = fiber.StatusUnprocessableEntity
			kind = "insufficient_data"
		case errors.Is(err, domain.ErrOutOfRange):
			code = fiber.StatusUnprocessableEntity
			kind = "out_of_range"
		case errors.Is(err, domain.ErrTampered):
			code = fiber.StatusConflict
			kind = "tampered"
		case errors.Is(err, domain.ErrExpired):
			code = fiber.StatusGone
			kind = "expired"
		default:
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		body := fiber.Map{"error": err.Error()}
		if kind != "" {
			body["kind"] = kind
		}
		return c.Status(code).JSON(body)
	}
}
