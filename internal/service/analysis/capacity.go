package analysis

import (
	"math"
	"time"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// Observation is one per-session apparent-capacity measurement together
// with its aggregation weight.
type Observation struct {
	CapacityKWh  float64
	Weight       float64
	Timestamp    time.Time
	TemperatureC float64
}

// Observations converts normalized sessions into weighted capacity
// observations. Sessions with a SoC delta below the configured minimum are
// skipped. Weight grows with charge depth and decays exponentially with
// age relative to now, so recent deep-cycle sessions dominate.
func (e *Engine) Observations(sessions []domain.ChargingSession, now time.Time) []Observation {
	obs := make([]Observation, 0, len(sessions))

	for _, s := range sessions {
		delta := s.SocDelta()
		if delta < e.cfg.MinSocDelta {
			continue
		}

		capacity := s.ApparentCapacityKWh() * e.cfg.ChargeEfficiency
		capacity *= e.temperatureCorrection(s.TemperatureC)

		ageDays := now.Sub(s.Timestamp).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		recency := math.Exp(-math.Ln2 * ageDays / e.cfg.RecencyHalfLifeDays)

		obs = append(obs, Observation{
			CapacityKWh:  capacity,
			Weight:       delta * recency,
			Timestamp:    s.Timestamp,
			TemperatureC: s.TemperatureC,
		})
	}

	return obs
}

// temperatureCorrection maps charging temperature to a multiplicative
// capacity adjustment. Cold packs accept less charge per SoC point, so
// cold readings understate capacity and are boosted; hot readings
// overstate it slightly and are derated. The correction saturates so a
// sensor glitch cannot swing an observation by more than a few percent.
func (e *Engine) temperatureCorrection(tempC float64) float64 {
	switch {
	case tempC < e.cfg.NominalTempLowC:
		return 1 + math.Min(0.08, (e.cfg.NominalTempLowC-tempC)*0.004)
	case tempC > e.cfg.NominalTempHighC:
		return 1 - math.Min(0.05, (tempC-e.cfg.NominalTempHighC)*0.0025)
	default:
		return 1
	}
}
