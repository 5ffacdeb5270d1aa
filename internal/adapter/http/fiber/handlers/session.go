package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/voltmetrix/batterypass/internal/domain"
	"github.com/voltmetrix/batterypass/internal/ports"
)

type SessionHandler struct {
	service ports.AnalysisService
	log     *zap.Logger
}

func NewSessionHandler(service ports.AnalysisService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{service: service, log: log}
}

type IngestSessionsRequest struct {
	Sessions []domain.ChargingSession `json:"sessions"`
}

// Ingest accepts a batch of charging sessions for one vehicle. Invalid
// records are reported per-index; valid ones are stored regardless.
func (h *SessionHandler) Ingest(c *fiber.Ctx) error {
	vehicleID := c.Params("id")

	var req IngestSessionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if len(req.Sessions) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No sessions provided"})
	}

	result, err := h.service.IngestSessions(c.Context(), vehicleID, req.Sessions)
	if err != nil {
		return err
	}

	status := fiber.StatusCreated
	if len(result.Accepted) == 0 {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{
		"accepted_count": len(result.Accepted),
		"rejected_count": len(result.Rejected),
		"rejected":       result.Rejected,
	})
}

// List returns the vehicle's stored session history, optionally limited
// to sessions at or after the RFC 3339 instant in ?since.
func (h *SessionHandler) List(c *fiber.Ctx) error {
	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid since timestamp"})
		}
		since = parsed
	}

	sessions, err := h.service.GetSessions(c.Context(), c.Params("id"), since)
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}
