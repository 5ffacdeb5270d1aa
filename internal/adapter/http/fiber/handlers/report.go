package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/voltmetrix/batterypass/internal/ports"
)

type ReportHandler struct {
	service ports.AnalysisService
	log     *zap.Logger
}

func NewReportHandler(service ports.AnalysisService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{service: service, log: log}
}

// Analyze runs the full health pipeline over the vehicle's stored history
// and returns the persisted report.
func (h *ReportHandler) Analyze(c *fiber.Ctx) error {
	report, err := h.service.Analyze(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	report, err := h.service.GetReport(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(report)
}

func (h *ReportHandler) ListByVehicle(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	reports, err := h.service.GetReportsByVehicle(c.Context(), c.Params("id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(reports)
}
