package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// ValueImpact converts the estimated SoH into a CHF adjustment relative to
// the healthy-baseline resale price of the vehicle. Below the reference
// SoH each missing point costs the configured per-point rate; above it a
// discounted fraction of the rate yields a small premium. The mapping is
// strictly monotonic in SoH for a fixed vehicle, so a lower SoH never
// prices better than a higher one.
func (e *Engine) ValueImpact(vehicle *domain.Vehicle, sohPercent float64) float64 {
	rate := e.perPointRate(vehicle)
	diff := sohPercent - e.cfg.Prices.ReferenceSoh

	var impact float64
	if diff >= 0 {
		impact = diff * rate * e.cfg.Prices.AboveReferenceFraction
	} else {
		impact = diff * rate
	}

	return math.Round(impact)
}

func (e *Engine) perPointRate(vehicle *domain.Vehicle) float64 {
	key := strings.ToLower(fmt.Sprintf("%s/%s", vehicle.Make, vehicle.Model))
	if rate, ok := e.cfg.Prices.ModelOverrides[key]; ok {
		return rate
	}

	tiers := e.cfg.Prices.Tiers
	for _, t := range tiers {
		if vehicle.BatteryCapacityKWh <= t.MaxCapacityKWh {
			return t.CHFPerPoint
		}
	}
	if len(tiers) > 0 {
		return tiers[len(tiers)-1].CHFPerPoint
	}
	return 0
}
