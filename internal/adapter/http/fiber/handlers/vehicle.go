package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/voltmetrix/batterypass/internal/domain"
	"github.com/voltmetrix/batterypass/internal/ports"
)

type VehicleHandler struct {
	service ports.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service ports.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{service: service, log: log}
}

type RegisterVehicleRequest struct {
	VIN                string  `json:"vin"`
	Make               string  `json:"make"`
	Model              string  `json:"model"`
	Year               int     `json:"year"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
	BatteryType        string  `json:"battery_type"`
	MileageKm          int     `json:"mileage_km"`
}

func (h *VehicleHandler) Register(c *fiber.Ctx) error {
	var req RegisterVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	v, err := h.service.Register(c.Context(), &domain.Vehicle{
		VIN:                req.VIN,
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		BatteryCapacityKWh: req.BatteryCapacityKWh,
		BatteryType:        domain.BatteryChemistry(req.BatteryType),
		MileageKm:          req.MileageKm,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	v, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(v)
}

func (h *VehicleHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	vehicles, err := h.service.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(vehicles)
}
