package analysis

import (
	"math"
	"time"
)

// Confidence scores the reliability of an SoH estimate in [0,1] from the
// quantity and quality of its observations. It is monotonic in each input
// dimension (more observations, tighter spread, fresher data and broader
// temperature coverage each raise the score) and never feeds back into the
// SoH number itself.
func (e *Engine) Confidence(obs []Observation, now time.Time) float64 {
	if len(obs) == 0 {
		return 0
	}

	countScore := math.Min(1, float64(len(obs))/20)

	dispersionScore := 1 - math.Min(1, relativeSpread(obs)*4)

	newest := obs[0].Timestamp
	for _, o := range obs[1:] {
		if o.Timestamp.After(newest) {
			newest = o.Timestamp
		}
	}
	ageDays := now.Sub(newest).Hours() / 24
	recencyScore := math.Max(0, 1-ageDays/365)

	tempScore := e.temperatureCoverage(obs)

	score := 0.35*countScore + 0.25*dispersionScore + 0.25*recencyScore + 0.15*tempScore
	return math.Round(score*100) / 100
}

// relativeSpread is the weighted standard deviation of the capacity
// observations divided by their weighted mean.
func relativeSpread(obs []Observation) float64 {
	var wSum, mean float64
	for _, o := range obs {
		wSum += o.Weight
		mean += o.Weight * o.CapacityKWh
	}
	if wSum <= 0 || mean <= 0 {
		return 1
	}
	mean /= wSum

	var variance float64
	for _, o := range obs {
		d := o.CapacityKWh - mean
		variance += o.Weight * d * d
	}
	variance /= wSum

	return math.Sqrt(variance) / mean
}

// temperatureCoverage rewards observation sets whose temperatures sit in
// the nominal band. A history recorded entirely at one thermal extreme
// tells less about true capacity.
func (e *Engine) temperatureCoverage(obs []Observation) float64 {
	inBand := 0
	for _, o := range obs {
		if o.TemperatureC >= e.cfg.NominalTempLowC && o.TemperatureC <= e.cfg.NominalTempHighC {
			inBand++
		}
	}
	return 0.5 + 0.5*float64(inBand)/float64(len(obs))
}
