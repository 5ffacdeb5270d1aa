package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voltmetrix/batterypass/internal/adapter/queue"
	"github.com/voltmetrix/batterypass/internal/domain"
	"github.com/voltmetrix/batterypass/internal/observability/telemetry"
	"github.com/voltmetrix/batterypass/internal/ports"
)

// Service wires the pure analysis engine to persistence, caching and
// messaging. All computation happens in the engine; the service only
// moves data in and out.
type Service struct {
	engine      *Engine
	vehicleRepo ports.VehicleRepository
	sessionRepo ports.SessionRepository
	reportRepo  ports.ReportRepository
	cache       ports.Cache
	mq          queue.MessageQueue
	log         *zap.Logger
}

func NewService(
	engine *Engine,
	vehicleRepo ports.VehicleRepository,
	sessionRepo ports.SessionRepository,
	reportRepo ports.ReportRepository,
	cache ports.Cache,
	mq queue.MessageQueue,
	log *zap.Logger,
) ports.AnalysisService {
	return &Service{
		engine:      engine,
		vehicleRepo: vehicleRepo,
		sessionRepo: sessionRepo,
		reportRepo:  reportRepo,
		cache:       cache,
		mq:          mq,
		log:         log,
	}
}

// IngestSessions validates a raw batch against the vehicle and stores the
// accepted records in one transaction. Per-record failures come back in
// the result instead of aborting the batch. Duplicates of already-stored
// timestamps are resolved by the repository's upsert.
func (s *Service) IngestSessions(ctx context.Context, vehicleID string, raw []domain.ChargingSession) (*domain.IngestResult, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}

	accepted, rejected := s.engine.Normalize(vehicle.BatteryCapacityKWh, raw)

	now := time.Now()
	for i := range accepted {
		accepted[i].ID = uuid.New().String()
		accepted[i].VehicleID = vehicleID
		accepted[i].CreatedAt = now
	}

	if len(accepted) > 0 {
		if err := s.sessionRepo.SaveBatch(ctx, accepted); err != nil {
			return nil, fmt.Errorf("failed to store session batch: %w", err)
		}
	}

	telemetry.SessionsIngested.Add(float64(len(accepted)))
	telemetry.SessionsRejected.Add(float64(len(rejected)))

	s.log.Info("Session batch ingested",
		zap.String("vehicle_id", vehicleID),
		zap.Int("accepted", len(accepted)),
		zap.Int("rejected", len(rejected)),
	)

	return &domain.IngestResult{Accepted: accepted, Rejected: rejected}, nil
}

// Analyze loads the vehicle's full history, runs the engine and persists
// the resulting report.
func (s *Service) Analyze(ctx context.Context, vehicleID string) (*domain.SohReport, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}

	sessions, err := s.sessionRepo.FindByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report, _, err := s.engine.Analyze(vehicle, sessions, time.Now())
	telemetry.AnalysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Warn("Analysis failed",
			zap.String("vehicle_id", vehicleID),
			zap.Int("sessions", len(sessions)),
			zap.Error(err),
		)
		return nil, err
	}

	report.ID = uuid.New().String()
	if err := s.reportRepo.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to persist report: %w", err)
	}

	telemetry.AnalysesTotal.WithLabelValues(string(report.HealthGrade)).Inc()

	s.cacheLatest(ctx, report)
	s.publishReportCreated(report)

	s.log.Info("Health report computed",
		zap.String("vehicle_id", vehicleID),
		zap.String("report_id", report.ID),
		zap.Float64("soh_percent", report.SohPercent),
		zap.String("grade", string(report.HealthGrade)),
	)

	return report, nil
}

func (s *Service) GetReport(ctx context.Context, reportID string) (*domain.SohReport, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

func (s *Service) GetReportsByVehicle(ctx context.Context, vehicleID string, limit int) ([]domain.SohReport, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.reportRepo.FindByVehicle(ctx, vehicleID, limit)
}

// GetSessions returns the stored history in timestamp order, optionally
// cut off at since.
func (s *Service) GetSessions(ctx context.Context, vehicleID string, since time.Time) ([]domain.ChargingSession, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}

	if since.IsZero() {
		return s.sessionRepo.FindByVehicle(ctx, vehicleID)
	}
	return s.sessionRepo.FindByVehicleSince(ctx, vehicleID, since)
}

func (s *Service) cacheLatest(ctx context.Context, report *domain.SohReport) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	key := "report:latest:" + report.VehicleID
	if err := s.cache.Set(ctx, key, string(data), time.Hour); err != nil {
		s.log.Debug("Failed to cache latest report", zap.Error(err))
	}
}

func (s *Service) publishReportCreated(report *domain.SohReport) {
	payload, err := json.Marshal(map[string]interface{}{
		"report_id":   report.ID,
		"vehicle_id":  report.VehicleID,
		"soh_percent": report.SohPercent,
		"grade":       report.HealthGrade,
		"computed_at": report.ComputedAt,
	})
	if err != nil {
		return
	}
	if err := s.mq.Publish("report.created", payload); err != nil {
		s.log.Warn("Failed to publish report.created", zap.Error(err))
	}
}
