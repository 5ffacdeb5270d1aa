package vehicle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voltmetrix/batterypass/internal/domain"
	"github.com/voltmetrix/batterypass/internal/ports"
)

type Service struct {
	repo ports.VehicleRepository
	log  *zap.Logger
}

func NewService(repo ports.VehicleRepository, log *zap.Logger) ports.VehicleService {
	return &Service{repo: repo, log: log}
}

func (s *Service) Register(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	if v.Make == "" || v.Model == "" {
		return nil, fmt.Errorf("make and model are required")
	}
	if v.BatteryCapacityKWh <= 0 {
		return nil, fmt.Errorf("battery_capacity_kwh must be positive")
	}
	if !v.BatteryType.Valid() {
		return nil, fmt.Errorf("unknown battery_type %q (expected NMC, LFP or NCA)", v.BatteryType)
	}

	if v.VIN != "" {
		existing, err := s.repo.FindByVIN(ctx, v.VIN)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("vehicle with VIN %s already registered", v.VIN)
		}
	}

	now := time.Now()
	v.ID = uuid.New().String()
	v.CreatedAt = now
	v.UpdatedAt = now

	if err := s.repo.Save(ctx, v); err != nil {
		return nil, err
	}

	s.log.Info("Vehicle registered",
		zap.String("vehicle_id", v.ID),
		zap.String("make", v.Make),
		zap.String("model", v.Model),
		zap.String("battery_type", string(v.BatteryType)),
	)

	return v, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVehicleNotFound
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.FindAll(ctx, limit, offset)
}
