package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/voltmetrix/batterypass/internal/domain"
)

func TestEstimateSoH_NoObservations(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	_, _, err := engine.EstimateSoH(75, nil)

	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestEstimateSoH_DegradedPack(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// Five recent sessions on a nominal 60 kWh pack, each charging 60%
	// of SoC for 33 kWh: apparent capacity 55 kWh, SoH 91.7%.
	sessions := make([]domain.ChargingSession, 5)
	for i := range sessions {
		sessions[i] = domain.ChargingSession{
			Timestamp:    now.Add(-time.Duration(i) * 24 * time.Hour),
			StartSoc:     0.2,
			EndSoc:       0.8,
			EnergyKWh:    33,
			DurationMin:  60,
			TemperatureC: 20,
		}
	}

	obs := engine.Observations(sessions, now)
	capacity, soh, err := engine.EstimateSoH(60, obs)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(capacity-55) > 0.01 {
		t.Errorf("expected capacity 55 kWh, got %.2f", capacity)
	}
	if math.Abs(soh-91.666) > 0.01 {
		t.Errorf("expected SoH 91.7%%, got %.2f", soh)
	}
	if Grade(soh) != domain.GradeGood {
		t.Errorf("expected grade good, got %s", Grade(soh))
	}
}

func TestEstimateSoH_ClampsAboveNominal(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	now := time.Now().UTC()

	// Apparent capacity 10% above nominal reads as noise, not gain.
	sessions := []domain.ChargingSession{
		{Timestamp: now, StartSoc: 0.2, EndSoc: 0.7, EnergyKWh: 41.25, DurationMin: 60, TemperatureC: 20},
	}

	obs := engine.Observations(sessions, now)
	capacity, soh, err := engine.EstimateSoH(75, obs)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if soh != 105 {
		t.Errorf("expected SoH clamped to 105, got %.2f", soh)
	}
	if capacity > 75*1.05+0.001 {
		t.Errorf("capacity %.2f not capped at 105%% of nominal", capacity)
	}
}

func TestEstimateSoH_OutOfRange(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	obs := []Observation{{CapacityKWh: 95, Weight: 1, Timestamp: time.Now()}}

	_, _, err := engine.EstimateSoH(75, obs)

	if !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for 126%% raw SoH, got %v", err)
	}
}

func TestEstimateSoH_MedianResistsOutliers(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	now := time.Now().UTC()

	obs := []Observation{
		{CapacityKWh: 66, Weight: 1, Timestamp: now},
		{CapacityKWh: 67, Weight: 1, Timestamp: now},
		{CapacityKWh: 68, Weight: 1, Timestamp: now},
		{CapacityKWh: 90, Weight: 0.2, Timestamp: now}, // outlier
	}

	capacity, _, err := engine.EstimateSoH(75, obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capacity > 68 {
		t.Errorf("outlier dragged the estimate to %.2f", capacity)
	}
}

func TestEstimateSoH_MonotonicInObservations(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	now := time.Now().UTC()

	base := []Observation{
		{CapacityKWh: 52, Weight: 0.4, Timestamp: now.Add(-200 * 24 * time.Hour)},
		{CapacityKWh: 55, Weight: 1, Timestamp: now.Add(-30 * 24 * time.Hour)},
		{CapacityKWh: 56, Weight: 0.8, Timestamp: now.Add(-10 * 24 * time.Hour)},
		{CapacityKWh: 54, Weight: 1, Timestamp: now.Add(-2 * 24 * time.Hour)},
		{CapacityKWh: 57, Weight: 0.6, Timestamp: now},
	}

	_, prev, err := engine.EstimateSoH(60, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Lifting every observation's capacity can never lower the estimate.
	for _, shift := range []float64{0.1, 0.5, 1, 2, 5} {
		shifted := make([]Observation, len(base))
		for i, o := range base {
			o.CapacityKWh += shift
			shifted[i] = o
		}
		_, soh, err := engine.EstimateSoH(60, shifted)
		if err != nil {
			t.Fatalf("shift %.1f: unexpected error: %v", shift, err)
		}
		if soh < prev {
			t.Errorf("shift %.1f: SoH fell from %.3f to %.3f", shift, prev, soh)
		}
		prev = soh
	}
}

func TestObservations_SkipsShallowCharges(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	now := time.Now().UTC()

	sessions := []domain.ChargingSession{
		{Timestamp: now, StartSoc: 0.50, EndSoc: 0.60, EnergyKWh: 7, DurationMin: 30, TemperatureC: 20},
		{Timestamp: now.Add(-time.Hour), StartSoc: 0.2, EndSoc: 0.8, EnergyKWh: 40, DurationMin: 60, TemperatureC: 20},
	}

	obs := engine.Observations(sessions, now)

	if len(obs) != 1 {
		t.Fatalf("expected shallow charge skipped, got %d observations", len(obs))
	}
}

func TestObservations_RecencyWeighting(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	now := time.Now().UTC()

	recent := domain.ChargingSession{Timestamp: now, StartSoc: 0.2, EndSoc: 0.8, EnergyKWh: 40, DurationMin: 60, TemperatureC: 20}
	old := recent
	old.Timestamp = now.Add(-180 * 24 * time.Hour)

	obs := engine.Observations([]domain.ChargingSession{recent, old}, now)

	if len(obs) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs))
	}
	ratio := obs[1].Weight / obs[0].Weight
	if math.Abs(ratio-0.5) > 0.01 {
		t.Errorf("expected half weight at one half-life, got ratio %.3f", ratio)
	}
}

func TestTemperatureCorrection(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	cases := []struct {
		tempC float64
		want  float64
	}{
		{20, 1},       // nominal band
		{10, 1},       // band edge
		{0, 1.04},     // cold boost
		{-30, 1.08},   // boost saturates
		{40, 0.975},   // hot derate
		{80, 0.95},    // derate saturates
	}
	for _, tc := range cases {
		got := engine.temperatureCorrection(tc.tempC)
		if math.Abs(got-tc.want) > 0.0001 {
			t.Errorf("correction at %.0f°C: got %.4f, want %.4f", tc.tempC, got, tc.want)
		}
	}
}
