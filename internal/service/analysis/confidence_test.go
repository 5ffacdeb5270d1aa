package analysis

import (
	"testing"
	"time"
)

func flatObservations(n int, capacity float64, ts time.Time) []Observation {
	obs := make([]Observation, n)
	for i := range obs {
		obs[i] = Observation{
			CapacityKWh:  capacity,
			Weight:       1,
			Timestamp:    ts,
			TemperatureC: 20,
		}
	}
	return obs
}

func TestConfidence_Empty(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	if c := engine.Confidence(nil, time.Now()); c != 0 {
		t.Errorf("expected 0 confidence without observations, got %.2f", c)
	}
}

func TestConfidence_Bounded(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	now := time.Now().UTC()

	c := engine.Confidence(flatObservations(40, 70, now), now)

	if c < 0 || c > 1 {
		t.Fatalf("confidence %.2f outside [0,1]", c)
	}
	// Many fresh, identical, in-band observations should score high.
	if c < 0.9 {
		t.Errorf("expected near-maximal confidence, got %.2f", c)
	}
}

func TestConfidence_MoreObservationsScoreHigher(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	now := time.Now().UTC()

	few := engine.Confidence(flatObservations(3, 70, now), now)
	many := engine.Confidence(flatObservations(25, 70, now), now)

	if many <= few {
		t.Errorf("expected more observations to raise confidence: %.2f vs %.2f", few, many)
	}
}

func TestConfidence_StaleDataScoresLower(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	now := time.Now().UTC()

	fresh := engine.Confidence(flatObservations(10, 70, now), now)
	stale := engine.Confidence(flatObservations(10, 70, now.Add(-300*24*time.Hour)), now)

	if stale >= fresh {
		t.Errorf("expected stale data to lower confidence: fresh %.2f, stale %.2f", fresh, stale)
	}
}

func TestConfidence_SpreadScoresLower(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	now := time.Now().UTC()

	tight := flatObservations(10, 70, now)

	spread := flatObservations(10, 70, now)
	for i := range spread {
		if i%2 == 0 {
			spread[i].CapacityKWh = 55
		} else {
			spread[i].CapacityKWh = 85
		}
	}

	if engine.Confidence(spread, now) >= engine.Confidence(tight, now) {
		t.Error("expected dispersed observations to lower confidence")
	}
}
