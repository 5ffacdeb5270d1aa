package domain

import (
	"time"
)

// ChargingSession is a single recorded charging event for a vehicle.
// Sessions are append-only: once accepted they are never mutated, and the
// history for a vehicle is ordered by timestamp with at most one session
// per (vehicle_id, timestamp) pair.
type ChargingSession struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	VehicleID      string    `json:"vehicle_id" gorm:"index:idx_vehicle_ts,unique"`
	Timestamp      time.Time `json:"timestamp" gorm:"index:idx_vehicle_ts,unique"`
	StartSoc       float64   `json:"start_soc"` // 0-1
	EndSoc         float64   `json:"end_soc"`   // 0-1
	EnergyKWh      float64   `json:"energy_kwh" gorm:"column:energy_kwh"`
	DurationMin    float64   `json:"duration_minutes" gorm:"column:duration_minutes"`
	ChargerPowerKW float64   `json:"charger_power_kw" gorm:"column:charger_power_kw"`
	TemperatureC   float64   `json:"temperature_c"`
	IsFastCharge   bool      `json:"is_fast_charge"`
	CreatedAt      time.Time `json:"created_at"`
}

// SocDelta returns the fraction of the pack charged during the session.
func (s *ChargingSession) SocDelta() float64 {
	return s.EndSoc - s.StartSoc
}

// ApparentCapacityKWh is the usable capacity implied by this session alone:
// energy delivered over the SoC fraction it filled.
func (s *ChargingSession) ApparentCapacityKWh() float64 {
	delta := s.SocDelta()
	if delta <= 0 {
		return 0
	}
	return s.EnergyKWh / delta
}

// SessionRejection reports a single session that failed validation during
// bulk ingest. The batch as a whole is not rejected for one bad record.
type SessionRejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// IngestResult is the outcome of a bulk session ingest: accepted records
// plus the per-record rejections.
type IngestResult struct {
	Accepted []ChargingSession  `json:"accepted"`
	Rejected []SessionRejection `json:"rejected"`
}
