package domain

import "time"

// Passport is a tamper-evident certificate of a vehicle's battery health at
// issuance. Passports are insert-only: a newer passport supersedes an older
// one, but the older record stays queryable for audit until it expires.
type Passport struct {
	ID        string `json:"id" gorm:"primaryKey"`
	VehicleID string `json:"vehicle_id" gorm:"index"`
	ReportID  string `json:"report_id"`

	// Snapshot of the vehicle identity at issuance.
	VIN       string `json:"vin,omitempty"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Year      int    `json:"year"`
	MileageKm int    `json:"mileage_km"`

	SohPercent  float64     `json:"soh_percent"`
	HealthGrade HealthGrade `json:"health_grade"`

	CertificationHash string    `json:"certification_hash" gorm:"index"`
	IssuedAt          time.Time `json:"issued_at"`
	ValidUntil        time.Time `json:"valid_until"`
}

// Expired reports whether the passport is past its validity window.
func (p *Passport) Expired(now time.Time) bool {
	return now.After(p.ValidUntil)
}
