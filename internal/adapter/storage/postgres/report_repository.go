package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/voltmetrix/batterypass/internal/domain"
	"github.com/voltmetrix/batterypass/internal/ports"
)

type ReportRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReportRepository(db *gorm.DB, log *zap.Logger) ports.ReportRepository {
	return &ReportRepository{db: db, log: log}
}

// Save inserts a report. Reports are immutable, so this never updates.
func (r *ReportRepository) Save(ctx context.Context, report *domain.SohReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.SohReport, error) {
	var report domain.SohReport
	err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) FindByVehicle(ctx context.Context, vehicleID string, limit int) ([]domain.SohReport, error) {
	var reports []domain.SohReport
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("computed_at desc").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) FindLatestByVehicle(ctx context.Context, vehicleID string) (*domain.SohReport, error) {
	var report domain.SohReport
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("computed_at desc").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}
