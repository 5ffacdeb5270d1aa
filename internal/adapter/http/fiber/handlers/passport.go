package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/voltmetrix/batterypass/internal/domain"
	"github.com/voltmetrix/batterypass/internal/ports"
)

type PassportHandler struct {
	service ports.PassportService
	log     *zap.Logger
}

func NewPassportHandler(service ports.PassportService, log *zap.Logger) *PassportHandler {
	return &PassportHandler{service: service, log: log}
}

// Issue certifies the vehicle's latest health report into a passport.
func (h *PassportHandler) Issue(c *fiber.Ctx) error {
	passport, err := h.service.Issue(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(passport)
}

func (h *PassportHandler) Get(c *fiber.Ctx) error {
	passport, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(passport)
}

// GetByHash resolves a passport from a scanned certification hash.
func (h *PassportHandler) GetByHash(c *fiber.Ctx) error {
	passport, err := h.service.GetByHash(c.Context(), c.Params("hash"))
	if err != nil {
		return err
	}
	return c.JSON(passport)
}

func (h *PassportHandler) ListByVehicle(c *fiber.Ctx) error {
	passports, err := h.service.GetByVehicle(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(passports)
}

type VerifyPassportRequest struct {
	VIN         string    `json:"vin"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	MileageKm   int       `json:"mileage_km"`
	SohPercent  float64   `json:"soh_percent"`
	HealthGrade string    `json:"health_grade"`
	ReportID    string    `json:"report_id"`
	IssuedAt    time.Time `json:"issued_at"`
}

// Verify recomputes the certification hash from claimed passport fields.
// Tampering and expiry are reported in the body rather than as errors so
// a verifier can distinguish the two without parsing failure statuses.
func (h *PassportHandler) Verify(c *fiber.Ctx) error {
	var req VerifyPassportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	claimed := domain.Passport{
		VIN:         req.VIN,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		MileageKm:   req.MileageKm,
		SohPercent:  req.SohPercent,
		HealthGrade: domain.HealthGrade(req.HealthGrade),
		ReportID:    req.ReportID,
		IssuedAt:    req.IssuedAt,
	}

	err := h.service.Verify(c.Context(), c.Params("id"), claimed)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"valid": true, "status": "valid"})
	case errors.Is(err, domain.ErrTampered):
		return c.JSON(fiber.Map{"valid": false, "status": "tampered"})
	case errors.Is(err, domain.ErrExpired):
		return c.JSON(fiber.Map{"valid": false, "status": "expired"})
	default:
		return err
	}
}
