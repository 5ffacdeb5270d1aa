package analysis

import (
	"testing"

	"github.com/voltmetrix/batterypass/internal/domain"
)

func testVehicle(make, model string, capacity float64) *domain.Vehicle {
	return &domain.Vehicle{
		Make:               make,
		Model:              model,
		BatteryCapacityKWh: capacity,
		BatteryType:        domain.ChemistryNMC,
	}
}

func TestValueImpact_MonotonicInSoh(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	v := testVehicle("VW", "ID.4", 77)

	prev := engine.ValueImpact(v, 60)
	for soh := 61.0; soh <= 100; soh++ {
		impact := engine.ValueImpact(v, soh)
		if impact < prev {
			t.Fatalf("value impact decreased from %.0f to %.0f at SoH %.0f", prev, impact, soh)
		}
		prev = impact
	}
}

func TestValueImpact_ReferencePoint(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	v := testVehicle("Renault", "Zoe", 52)

	if impact := engine.ValueImpact(v, 90); impact != 0 {
		t.Errorf("expected zero impact at the reference SoH, got %.0f", impact)
	}
}

func TestValueImpact_BelowReference(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	v := testVehicle("Renault", "Zoe", 52) // 52 kWh: 150 CHF per point

	impact := engine.ValueImpact(v, 85)

	if impact != -750 {
		t.Errorf("expected -750 CHF for 5 points below reference, got %.0f", impact)
	}
}

func TestValueImpact_SmallPremiumAboveReference(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	v := testVehicle("Renault", "Zoe", 52)

	impact := engine.ValueImpact(v, 96)

	if impact <= 0 {
		t.Errorf("expected a positive premium above reference, got %.0f", impact)
	}
	// Premium runs at a tenth of the per-point rate: 6 * 150 * 0.1.
	if impact != 90 {
		t.Errorf("expected 90 CHF premium, got %.0f", impact)
	}
}

func TestValueImpact_ModelOverride(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	tesla := testVehicle("Tesla", "Model 3", 75)
	generic := testVehicle("Polestar", "2", 75)

	teslaImpact := engine.ValueImpact(tesla, 85)
	genericImpact := engine.ValueImpact(generic, 85)

	if teslaImpact != -900 { // 5 points * 180 CHF override
		t.Errorf("expected -900 CHF with model override, got %.0f", teslaImpact)
	}
	if genericImpact != -1100 { // 5 points * 220 CHF tier rate
		t.Errorf("expected -1100 CHF from the tier table, got %.0f", genericImpact)
	}
}

func TestValueImpact_CapacityTiers(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	small := engine.ValueImpact(testVehicle("Fiat", "500e", 42), 85)
	large := engine.ValueImpact(testVehicle("BMW", "iX", 105), 85)

	if small != -500 { // 5 * 100
		t.Errorf("expected -500 CHF for the small tier, got %.0f", small)
	}
	if large != -1100 { // 5 * 220
		t.Errorf("expected -1100 CHF for the large tier, got %.0f", large)
	}
}
