package passport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voltmetrix/batterypass/internal/adapter/queue"
	"github.com/voltmetrix/batterypass/internal/domain"
	"github.com/voltmetrix/batterypass/internal/observability/telemetry"
	"github.com/voltmetrix/batterypass/internal/ports"
)

// Service issues passports from the most recent health report and answers
// verification requests. Passports are insert-only: issuing a new one
// supersedes but never deletes its predecessors.
type Service struct {
	certifier    *Certifier
	vehicleRepo  ports.VehicleRepository
	reportRepo   ports.ReportRepository
	passportRepo ports.PassportRepository
	mq           queue.MessageQueue
	log          *zap.Logger
}

func NewService(
	certifier *Certifier,
	vehicleRepo ports.VehicleRepository,
	reportRepo ports.ReportRepository,
	passportRepo ports.PassportRepository,
	mq queue.MessageQueue,
	log *zap.Logger,
) ports.PassportService {
	return &Service{
		certifier:    certifier,
		vehicleRepo:  vehicleRepo,
		reportRepo:   reportRepo,
		passportRepo: passportRepo,
		mq:           mq,
		log:          log,
	}
}

// Issue certifies the latest report for the vehicle into a new passport.
func (s *Service) Issue(ctx context.Context, vehicleID string) (*domain.Passport, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}

	report, err := s.reportRepo.FindLatestByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("no health report for vehicle %s: %w", vehicleID, domain.ErrReportNotFound)
	}

	p := s.certifier.Certify(report, vehicle, time.Now())
	p.ID = uuid.New().String()

	if err := s.passportRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to persist passport: %w", err)
	}

	telemetry.PassportsIssued.Inc()
	s.publishIssued(p)

	s.log.Info("Passport issued",
		zap.String("passport_id", p.ID),
		zap.String("vehicle_id", vehicleID),
		zap.String("report_id", report.ID),
		zap.Time("valid_until", p.ValidUntil),
	)

	return p, nil
}

func (s *Service) Get(ctx context.Context, passportID string) (*domain.Passport, error) {
	p, err := s.passportRepo.FindByID(ctx, passportID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPassportNotFound
	}
	return p, nil
}

// GetByHash resolves a passport from its certification hash, the lookup a
// verifier uses when scanning a printed certificate.
func (s *Service) GetByHash(ctx context.Context, certHash string) (*domain.Passport, error) {
	p, err := s.passportRepo.FindByHash(ctx, certHash)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPassportNotFound
	}
	return p, nil
}

func (s *Service) GetByVehicle(ctx context.Context, vehicleID string) ([]domain.Passport, error) {
	return s.passportRepo.FindByVehicle(ctx, vehicleID)
}

// Verify checks the claimed certified fields against the stored passport.
func (s *Service) Verify(ctx context.Context, passportID string, claimed domain.Passport) error {
	stored, err := s.passportRepo.FindByID(ctx, passportID)
	if err != nil {
		return err
	}
	if stored == nil {
		return domain.ErrPassportNotFound
	}

	// The issuance instant is part of the certified set but not
	// something a buyer re-types; take it from the stored record.
	if claimed.IssuedAt.IsZero() {
		claimed.IssuedAt = stored.IssuedAt
	}
	if claimed.ReportID == "" {
		claimed.ReportID = stored.ReportID
	}

	err = s.certifier.Verify(stored, &claimed, time.Now())
	result := "valid"
	switch {
	case errors.Is(err, domain.ErrTampered):
		result = "tampered"
	case errors.Is(err, domain.ErrExpired):
		result = "expired"
	case err != nil:
		return err
	}
	telemetry.PassportVerifications.WithLabelValues(result).Inc()
	s.publishVerified(stored, result)
	return err
}

func (s *Service) publishIssued(p *domain.Passport) {
	payload, err := json.Marshal(map[string]interface{}{
		"passport_id":        p.ID,
		"vehicle_id":         p.VehicleID,
		"certification_hash": p.CertificationHash,
		"valid_until":        p.ValidUntil,
	})
	if err != nil {
		return
	}
	if err := s.mq.Publish("passport.issued", payload); err != nil {
		s.log.Warn("Failed to publish passport.issued", zap.Error(err))
	}
}

func (s *Service) publishVerified(p *domain.Passport, result string) {
	payload, err := json.Marshal(map[string]interface{}{
		"passport_id": p.ID,
		"vehicle_id":  p.VehicleID,
		"result":      result,
	})
	if err != nil {
		return
	}
	if err := s.mq.Publish("passport.verified", payload); err != nil {
		s.log.Warn("Failed to publish passport.verified", zap.Error(err))
	}
}
