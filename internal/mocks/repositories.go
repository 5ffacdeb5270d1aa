package mocks

import (
	"context"
	"time"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// MockVehicleRepository is a mock implementation of VehicleRepository
type MockVehicleRepository struct {
	SaveFunc      func(ctx context.Context, v *domain.Vehicle) error
	FindByIDFunc  func(ctx context.Context, id string) (*domain.Vehicle, error)
	FindByVINFunc func(ctx context.Context, vin string) (*domain.Vehicle, error)
	FindAllFunc   func(ctx context.Context, limit, offset int) ([]domain.Vehicle, error)
}

func (m *MockVehicleRepository) Save(ctx context.Context, v *domain.Vehicle) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, v)
	}
	return nil
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockVehicleRepository) FindByVIN(ctx context.Context, vin string) (*domain.Vehicle, error) {
	if m.FindByVINFunc != nil {
		return m.FindByVINFunc(ctx, vin)
	}
	return nil, nil
}

func (m *MockVehicleRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, limit, offset)
	}
	return []domain.Vehicle{}, nil
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	SaveBatchFunc          func(ctx context.Context, sessions []domain.ChargingSession) error
	FindByVehicleFunc      func(ctx context.Context, vehicleID string) ([]domain.ChargingSession, error)
	FindByVehicleSinceFunc func(ctx context.Context, vehicleID string, since time.Time) ([]domain.ChargingSession, error)
	CountByVehicleFunc     func(ctx context.Context, vehicleID string) (int64, error)
}

func (m *MockSessionRepository) SaveBatch(ctx context.Context, sessions []domain.ChargingSession) error {
	if m.SaveBatchFunc != nil {
		return m.SaveBatchFunc(ctx, sessions)
	}
	return nil
}

func (m *MockSessionRepository) FindByVehicle(ctx context.Context, vehicleID string) ([]domain.ChargingSession, error) {
	if m.FindByVehicleFunc != nil {
		return m.FindByVehicleFunc(ctx, vehicleID)
	}
	return []domain.ChargingSession{}, nil
}

func (m *MockSessionRepository) FindByVehicleSince(ctx context.Context, vehicleID string, since time.Time) ([]domain.ChargingSession, error) {
	if m.FindByVehicleSinceFunc != nil {
		return m.FindByVehicleSinceFunc(ctx, vehicleID, since)
	}
	return []domain.ChargingSession{}, nil
}

func (m *MockSessionRepository) CountByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	if m.CountByVehicleFunc != nil {
		return m.CountByVehicleFunc(ctx, vehicleID)
	}
	return 0, nil
}

// MockReportRepository is a mock implementation of ReportRepository
type MockReportRepository struct {
	SaveFunc                func(ctx context.Context, report *domain.SohReport) error
	FindByIDFunc            func(ctx context.Context, id string) (*domain.SohReport, error)
	FindByVehicleFunc       func(ctx context.Context, vehicleID string, limit int) ([]domain.SohReport, error)
	FindLatestByVehicleFunc func(ctx context.Context, vehicleID string) (*domain.SohReport, error)
}

func (m *MockReportRepository) Save(ctx context.Context, report *domain.SohReport) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, report)
	}
	return nil
}

func (m *MockReportRepository) FindByID(ctx context.Context, id string) (*domain.SohReport, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockReportRepository) FindByVehicle(ctx context.Context, vehicleID string, limit int) ([]domain.SohReport, error) {
	if m.FindByVehicleFunc != nil {
		return m.FindByVehicleFunc(ctx, vehicleID, limit)
	}
	return []domain.SohReport{}, nil
}

func (m *MockReportRepository) FindLatestByVehicle(ctx context.Context, vehicleID string) (*domain.SohReport, error) {
	if m.FindLatestByVehicleFunc != nil {
		return m.FindLatestByVehicleFunc(ctx, vehicleID)
	}
	return nil, nil
}

// MockPassportRepository is a mock implementation of PassportRepository
type MockPassportRepository struct {
	SaveFunc          func(ctx context.Context, passport *domain.Passport) error
	FindByIDFunc      func(ctx context.Context, id string) (*domain.Passport, error)
	FindByHashFunc    func(ctx context.Context, certHash string) (*domain.Passport, error)
	FindByVehicleFunc func(ctx context.Context, vehicleID string) ([]domain.Passport, error)
}

func (m *MockPassportRepository) Save(ctx context.Context, passport *domain.Passport) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, passport)
	}
	return nil
}

func (m *MockPassportRepository) FindByID(ctx context.Context, id string) (*domain.Passport, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPassportRepository) FindByHash(ctx context.Context, certHash string) (*domain.Passport, error) {
	if m.FindByHashFunc != nil {
		return m.FindByHashFunc(ctx, certHash)
	}
	return nil, nil
}

func (m *MockPassportRepository) FindByVehicle(ctx context.Context, vehicleID string) ([]domain.Passport, error) {
	if m.FindByVehicleFunc != nil {
		return m.FindByVehicleFunc(ctx, vehicleID)
	}
	return []domain.Passport{}, nil
}
