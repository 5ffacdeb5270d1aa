package analysis

import (
	"math"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// annualDecayRate builds the effective exponential decay rate for one
// vehicle from the chemistry's base coefficient and usage-intensity
// multipliers. Unknown chemistries fall back to NMC, the most common and
// most conservative mainstream assumption.
func (e *Engine) annualDecayRate(chemistry domain.BatteryChemistry, st UsageStats) float64 {
	coeff, ok := e.cfg.Decay[chemistry]
	if !ok {
		coeff = e.cfg.Decay[domain.ChemistryNMC]
	}

	cycleIntensity := math.Min(1, st.AvgDailyCycles)

	return coeff.BaseAnnualRate * (1 +
		coeff.FastChargeFactor*st.FastChargeRatio +
		coeff.CycleFactor*cycleIntensity +
		coeff.TempFactor*st.TempStress)
}

// Predict forecasts SoH at the given future year offsets using an
// exponential decay curve:
//
//	soh(t) = soh0 * exp(-r*t)
//
// The curve is monotonically non-increasing in t, floored at zero, and a
// pure function of its inputs, so identical histories always produce
// identical forecasts.
func (e *Engine) Predict(sohPercent float64, chemistry domain.BatteryChemistry, st UsageStats, horizons []int) map[int]float64 {
	if len(horizons) == 0 {
		horizons = e.cfg.ForecastHorizons
	}
	rate := e.annualDecayRate(chemistry, st)

	forecast := make(map[int]float64, len(horizons))
	for _, years := range horizons {
		if years < 0 {
			continue
		}
		soh := sohPercent * math.Exp(-rate*float64(years))
		forecast[years] = math.Round(soh*10) / 10
	}
	return forecast
}

// YearsToThreshold returns how many years until the decay curve crosses
// the given SoH threshold, zero when already at or below it, and nil when
// the rate is degenerate.
func (e *Engine) YearsToThreshold(sohPercent, threshold float64, chemistry domain.BatteryChemistry, st UsageStats) *float64 {
	if sohPercent <= threshold {
		zero := 0.0
		return &zero
	}
	rate := e.annualDecayRate(chemistry, st)
	if rate <= 0 || threshold <= 0 {
		return nil
	}
	years := math.Log(sohPercent/threshold) / rate
	years = math.Round(years*10) / 10
	return &years
}

// ProjectionCurve generates (yearOffset, SoH%) pairs for charting, from
// now through the given horizon inclusive.
func (e *Engine) ProjectionCurve(sohPercent float64, chemistry domain.BatteryChemistry, st UsageStats, years int) []ProjectionPoint {
	rate := e.annualDecayRate(chemistry, st)
	curve := make([]ProjectionPoint, 0, years+1)
	for y := 0; y <= years; y++ {
		soh := sohPercent * math.Exp(-rate*float64(y))
		curve = append(curve, ProjectionPoint{
			YearOffset: y,
			SohPercent: math.Round(soh*10) / 10,
		})
	}
	return curve
}

// ProjectionPoint is one point on a degradation projection curve.
type ProjectionPoint struct {
	YearOffset int     `json:"year_offset"`
	SohPercent float64 `json:"soh_percent"`
}
