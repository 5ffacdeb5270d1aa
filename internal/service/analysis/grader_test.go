package analysis

import (
	"strings"
	"testing"

	"github.com/voltmetrix/batterypass/internal/domain"
)

func TestGrade_Boundaries(t *testing.T) {
	cases := []struct {
		soh  float64
		want domain.HealthGrade
	}{
		{100, domain.GradeExcellent},
		{95.0, domain.GradeExcellent},
		{94.999, domain.GradeGood},
		{85.0, domain.GradeGood},
		{84.999, domain.GradeFair},
		{75.0, domain.GradeFair},
		{74.999, domain.GradePoor},
		{65.0, domain.GradePoor},
		{64.999, domain.GradeCritical},
		{0, domain.GradeCritical},
	}
	for _, tc := range cases {
		if got := Grade(tc.soh); got != tc.want {
			t.Errorf("Grade(%.3f) = %s, want %s", tc.soh, got, tc.want)
		}
	}
}

func TestRiskFactors(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	st := UsageStats{
		SessionCount:       50,
		AvgEndSoc:          0.92,
		AvgTempC:           38,
		FastChargeRatio:    0.6,
		DeepDischargeRatio: 0.4,
	}

	risks := engine.RiskFactors(78, st)

	wantMentions := []string{"fast-charging", "85%", "deep discharges", "temperatures", "warranty"}
	for _, want := range wantMentions {
		found := false
		for _, r := range risks {
			if strings.Contains(r, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected a risk mentioning %q, got %v", want, risks)
		}
	}
}

func TestRiskFactors_HealthyPack(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	st := UsageStats{
		SessionCount:    50,
		AvgEndSoc:       0.75,
		AvgTempC:        18,
		FastChargeRatio: 0.2,
	}

	if risks := engine.RiskFactors(96, st); len(risks) != 0 {
		t.Errorf("expected no risks for a healthy pack, got %v", risks)
	}
}

func TestRecommendations_DefaultWhenNoRisks(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	recs := engine.Recommendations(nil, domain.ChemistryNMC, UsageStats{AvgEndSoc: 0.8})

	if len(recs) != 1 {
		t.Fatalf("expected a single default recommendation, got %v", recs)
	}
	if !strings.Contains(recs[0], "keep current charging habits") {
		t.Errorf("unexpected default recommendation: %s", recs[0])
	}
}

func TestRecommendations_LFPCalibration(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	recs := engine.Recommendations(nil, domain.ChemistryLFP, UsageStats{AvgEndSoc: 0.7})

	found := false
	for _, r := range recs {
		if strings.Contains(r, "BMS calibration") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected LFP calibration advice, got %v", recs)
	}
}
