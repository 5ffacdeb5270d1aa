package ports

import (
	"context"
	"time"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// AnalysisService runs the battery health pipeline for a vehicle.
type AnalysisService interface {
	// IngestSessions validates and stores a batch of raw sessions for one
	// vehicle. Per-record failures are reported in the result; the batch
	// is only rejected as a whole when the vehicle does not exist.
	IngestSessions(ctx context.Context, vehicleID string, raw []domain.ChargingSession) (*domain.IngestResult, error)

	// Analyze computes a SohReport from the vehicle's stored history and
	// persists it. Returns domain.ErrInsufficientData when too few
	// qualifying sessions exist.
	Analyze(ctx context.Context, vehicleID string) (*domain.SohReport, error)

	GetReport(ctx context.Context, reportID string) (*domain.SohReport, error)
	GetReportsByVehicle(ctx context.Context, vehicleID string, limit int) ([]domain.SohReport, error)

	// GetSessions returns the stored history in timestamp order. A zero
	// since returns everything.
	GetSessions(ctx context.Context, vehicleID string, since time.Time) ([]domain.ChargingSession, error)
}

// PassportService issues and verifies battery passports.
type PassportService interface {
	// Issue certifies the most recent report for the vehicle.
	Issue(ctx context.Context, vehicleID string) (*domain.Passport, error)

	Get(ctx context.Context, passportID string) (*domain.Passport, error)
	GetByHash(ctx context.Context, certHash string) (*domain.Passport, error)
	GetByVehicle(ctx context.Context, vehicleID string) ([]domain.Passport, error)

	// Verify recomputes the certification hash from the claimed fields
	// and checks validity. Returns domain.ErrTampered on hash mismatch
	// and domain.ErrExpired when past valid_until; the two are
	// distinguishable with errors.Is.
	Verify(ctx context.Context, passportID string, claimed domain.Passport) error
}

// VehicleService manages vehicle registration.
type VehicleService interface {
	Register(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
	List(ctx context.Context, limit, offset int) ([]domain.Vehicle, error)
}
