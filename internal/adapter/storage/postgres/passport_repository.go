package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/voltmetrix/batterypass/internal/domain"
	"github.com/voltmetrix/batterypass/internal/ports"
)

type PassportRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPassportRepository(db *gorm.DB, log *zap.Logger) ports.PassportRepository {
	return &PassportRepository{db: db, log: log}
}

// Save inserts a passport. Passports are never updated or deleted; a
// newer one supersedes older ones purely by issue date.
func (r *PassportRepository) Save(ctx context.Context, passport *domain.Passport) error {
	return r.db.WithContext(ctx).Create(passport).Error
}

func (r *PassportRepository) FindByID(ctx context.Context, id string) (*domain.Passport, error) {
	var p domain.Passport
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PassportRepository) FindByHash(ctx context.Context, certHash string) (*domain.Passport, error) {
	var p domain.Passport
	err := r.db.WithContext(ctx).First(&p, "certification_hash = ?", certHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PassportRepository) FindByVehicle(ctx context.Context, vehicleID string) ([]domain.Passport, error) {
	var passports []domain.Passport
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("issued_at desc").
		Find(&passports).Error
	return passports, err
}
