package ports

import (
	"context"
	"time"

	"github.com/voltmetrix/batterypass/internal/domain"
)

type VehicleRepository interface {
	Save(ctx context.Context, v *domain.Vehicle) error
	FindByID(ctx context.Context, id string) (*domain.Vehicle, error)
	FindByVIN(ctx context.Context, vin string) (*domain.Vehicle, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Vehicle, error)
}

// SessionRepository is append-only: sessions are inserted, deduplicated on
// (vehicle_id, timestamp), and never updated or deleted.
type SessionRepository interface {
	SaveBatch(ctx context.Context, sessions []domain.ChargingSession) error
	FindByVehicle(ctx context.Context, vehicleID string) ([]domain.ChargingSession, error)
	FindByVehicleSince(ctx context.Context, vehicleID string, since time.Time) ([]domain.ChargingSession, error)
	CountByVehicle(ctx context.Context, vehicleID string) (int64, error)
}

// ReportRepository persists reports immutably: insert once, read many.
type ReportRepository interface {
	Save(ctx context.Context, report *domain.SohReport) error
	FindByID(ctx context.Context, id string) (*domain.SohReport, error)
	FindByVehicle(ctx context.Context, vehicleID string, limit int) ([]domain.SohReport, error)
	FindLatestByVehicle(ctx context.Context, vehicleID string) (*domain.SohReport, error)
}

// PassportRepository is insert-only. Older passports are superseded by
// newer ones but never deleted or overwritten.
type PassportRepository interface {
	Save(ctx context.Context, passport *domain.Passport) error
	FindByID(ctx context.Context, id string) (*domain.Passport, error)
	FindByHash(ctx context.Context, certHash string) (*domain.Passport, error)
	FindByVehicle(ctx context.Context, vehicleID string) ([]domain.Passport, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
