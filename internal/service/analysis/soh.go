package analysis

import (
	"fmt"
	"sort"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// EstimateSoH aggregates weighted capacity observations into the estimated
// usable capacity and the SoH percentage. The aggregate is the weighted
// median, which a handful of outlier sessions cannot drag the way a mean
// can.
//
// Returns domain.ErrInsufficientData when no observation survives
// filtering: a hard failure, never a fabricated number. Returns
// domain.ErrOutOfRange when the raw estimate exceeds the hard plausibility
// limit, which indicates corrupt input rather than a healthy pack.
func (e *Engine) EstimateSoH(nominalKWh float64, obs []Observation) (capacityKWh, sohPercent float64, err error) {
	if len(obs) == 0 {
		return 0, 0, fmt.Errorf("no qualifying capacity observations: %w", domain.ErrInsufficientData)
	}
	if nominalKWh <= 0 {
		return 0, 0, fmt.Errorf("nominal capacity %.2f kWh: %w", nominalKWh, domain.ErrOutOfRange)
	}

	capacityKWh = weightedMedian(obs)
	rawSoh := 100 * capacityKWh / nominalKWh

	if rawSoh > e.cfg.OutOfRangeLimit {
		return 0, 0, fmt.Errorf("raw SoH %.1f%% above limit %.1f%%: %w", rawSoh, e.cfg.OutOfRangeLimit, domain.ErrOutOfRange)
	}

	sohPercent = rawSoh
	if sohPercent > e.cfg.MaxSohPercent {
		// Above 100 is measurement noise, not capacity gain; cap it.
		sohPercent = e.cfg.MaxSohPercent
	}
	if sohPercent < 0 {
		sohPercent = 0
	}

	maxCapacity := nominalKWh * e.cfg.MaxSohPercent / 100
	if capacityKWh > maxCapacity {
		capacityKWh = maxCapacity
	}

	return capacityKWh, sohPercent, nil
}

// weightedMedian returns the capacity at which the cumulative weight first
// reaches half the total, with observations sorted by capacity.
func weightedMedian(obs []Observation) float64 {
	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CapacityKWh < sorted[j].CapacityKWh
	})

	var total float64
	for _, o := range sorted {
		total += o.Weight
	}
	if total <= 0 {
		// Degenerate weights; fall back to the plain median.
		return sorted[len(sorted)/2].CapacityKWh
	}

	half := total / 2
	var cum float64
	for _, o := range sorted {
		cum += o.Weight
		if cum >= half {
			return o.CapacityKWh
		}
	}
	return sorted[len(sorted)-1].CapacityKWh
}
