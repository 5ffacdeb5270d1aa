package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/voltmetrix/batterypass/internal/domain"
	"github.com/voltmetrix/batterypass/internal/observability/telemetry"
	"github.com/voltmetrix/batterypass/internal/ports"
)

type SessionRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSessionRepository(db *gorm.DB, log *zap.Logger) ports.SessionRepository {
	return &SessionRepository{db: db, log: log}
}

// SaveBatch inserts a batch atomically. A conflicting (vehicle_id,
// timestamp) pair is overwritten by the incoming record, matching the
// normalizer's last-write-wins duplicate policy.
func (r *SessionRepository) SaveBatch(ctx context.Context, sessions []domain.ChargingSession) error {
	start := time.Now()
	defer func() {
		telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
	}()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "vehicle_id"}, {Name: "timestamp"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"start_soc", "end_soc", "energy_kwh", "duration_minutes",
				"charger_power_kw", "temperature_c", "is_fast_charge",
			}),
		}).Create(&sessions).Error
	})
}

func (r *SessionRepository) FindByVehicle(ctx context.Context, vehicleID string) ([]domain.ChargingSession, error) {
	var sessions []domain.ChargingSession
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("timestamp asc").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) FindByVehicleSince(ctx context.Context, vehicleID string, since time.Time) ([]domain.ChargingSession, error) {
	var sessions []domain.ChargingSession
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND timestamp >= ?", vehicleID, since).
		Order("timestamp asc").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) CountByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ChargingSession{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	return count, err
}
