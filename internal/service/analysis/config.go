package analysis

import (
	"github.com/voltmetrix/batterypass/internal/domain"
)

// Config is the tuning snapshot for the health analysis pipeline. The
// engine never reads global state: all coefficients and tables arrive
// through this struct so identical config plus identical sessions always
// reproduce the identical report.
type Config struct {
	// MinSessions is the minimum number of sessions that must survive
	// normalization before an analysis is attempted.
	MinSessions int

	// MinSocDelta is the minimum end_soc-start_soc for a session to
	// produce a capacity observation. Shallow charges are too noisy.
	MinSocDelta float64

	// ChargeEfficiency corrects apparent capacity for charger losses
	// when energy is metered on the AC side. 1.0 disables the
	// correction (DC-metered telemetry).
	ChargeEfficiency float64

	// CapacityWindowLow/High bound the plausible apparent capacity of a
	// single session as multiples of the vehicle's nominal capacity.
	// Sessions outside the window are flagged as outliers and excluded.
	CapacityWindowLow  float64
	CapacityWindowHigh float64

	// RecencyHalfLifeDays controls the exponential age decay of
	// observation weights: an observation this many days old carries
	// half the weight of one recorded today.
	RecencyHalfLifeDays float64

	// NominalTempLowC/HighC delimit the temperature band in which no
	// capacity correction is applied.
	NominalTempLowC  float64
	NominalTempHighC float64

	// MaxSohPercent caps the reported SoH; readings above 100 up to the
	// cap are treated as measurement noise. OutOfRangeLimit is the hard
	// plausibility bound: a raw estimate beyond it fails the analysis
	// instead of being clamped.
	MaxSohPercent   float64
	OutOfRangeLimit float64

	// ForecastHorizons are the year offsets the degradation predictor
	// reports by default.
	ForecastHorizons []int

	// Decay holds the per-chemistry degradation coefficients.
	Decay map[domain.BatteryChemistry]DecayCoefficients

	// Prices drives the value impact calculation.
	Prices PriceTable
}

// DecayCoefficients parameterize the exponential decay model for one
// battery chemistry.
type DecayCoefficients struct {
	// BaseAnnualRate is the calendar decay rate per year under benign
	// usage (0.02 = 2%/year).
	BaseAnnualRate float64

	// FastChargeFactor, CycleFactor and TempFactor scale the base rate
	// up in proportion to fast-charge ratio, daily equivalent full
	// cycles and temperature stress respectively.
	FastChargeFactor float64
	CycleFactor      float64
	TempFactor       float64
}

// PriceTier maps a nominal capacity band to a CHF rate per SoH point.
type PriceTier struct {
	MaxCapacityKWh float64
	CHFPerPoint    float64
}

// PriceTable converts SoH into a currency adjustment relative to a
// healthy-baseline resale price.
type PriceTable struct {
	// ReferenceSoh is the SoH at which the value impact is zero.
	ReferenceSoh float64

	// ModelOverrides maps "make/model" (lowercase) to a CHF-per-point
	// rate that takes precedence over the tier lookup.
	ModelOverrides map[string]float64

	// Tiers are consulted in order; the first tier whose
	// MaxCapacityKWh is >= the vehicle's nominal capacity applies. The
	// last tier acts as catch-all regardless of its bound.
	Tiers []PriceTier

	// AboveReferenceFraction discounts the per-point rate for SoH above
	// the reference, producing a small positive premium instead of a
	// symmetric one.
	AboveReferenceFraction float64
}

// DefaultConfig returns the production tuning used when no overrides are
// configured.
func DefaultConfig() Config {
	return Config{
		MinSessions:         3,
		MinSocDelta:         0.2,
		ChargeEfficiency:    1.0,
		CapacityWindowLow:   0.3,
		CapacityWindowHigh:  1.3,
		RecencyHalfLifeDays: 180,
		NominalTempLowC:     10,
		NominalTempHighC:    30,
		MaxSohPercent:       105,
		OutOfRangeLimit:     120,
		ForecastHorizons:    []int{1, 3, 5},
		Decay: map[domain.BatteryChemistry]DecayCoefficients{
			domain.ChemistryNMC: {BaseAnnualRate: 0.023, FastChargeFactor: 0.50, CycleFactor: 0.20, TempFactor: 0.30},
			domain.ChemistryLFP: {BaseAnnualRate: 0.015, FastChargeFactor: 0.25, CycleFactor: 0.15, TempFactor: 0.20},
			domain.ChemistryNCA: {BaseAnnualRate: 0.027, FastChargeFactor: 0.60, CycleFactor: 0.25, TempFactor: 0.35},
		},
		Prices: PriceTable{
			ReferenceSoh: 90,
			ModelOverrides: map[string]float64{
				"tesla/model 3": 180,
				"tesla/model y": 190,
			},
			Tiers: []PriceTier{
				{MaxCapacityKWh: 45, CHFPerPoint: 100},
				{MaxCapacityKWh: 70, CHFPerPoint: 150},
				{MaxCapacityKWh: 1000, CHFPerPoint: 220},
			},
			AboveReferenceFraction: 0.1,
		},
	}
}
