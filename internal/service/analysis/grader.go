package analysis

import (
	"fmt"
	"strings"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// Grade maps an SoH percentage to its health grade. The bands are
// half-open and exhaustive, so every valid SoH lands in exactly one grade
// and the boundaries are exact: 95.0 is excellent, 94.999 is good.
func Grade(sohPercent float64) domain.HealthGrade {
	switch {
	case sohPercent >= 95:
		return domain.GradeExcellent
	case sohPercent >= 85:
		return domain.GradeGood
	case sohPercent >= 75:
		return domain.GradeFair
	case sohPercent >= 65:
		return domain.GradePoor
	default:
		return domain.GradeCritical
	}
}

// Summary renders a human-readable one-liner for a grade.
func Summary(grade domain.HealthGrade, sohPercent float64) string {
	switch grade {
	case domain.GradeExcellent:
		return fmt.Sprintf("Excellent condition (%.0f%%). Battery performs like new.", sohPercent)
	case domain.GradeGood:
		return fmt.Sprintf("Good condition (%.0f%%). Normal aging, fully usable for daily driving.", sohPercent)
	case domain.GradeFair:
		return fmt.Sprintf("Fair condition (%.0f%%). Noticeable range reduction.", sohPercent)
	case domain.GradePoor:
		return fmt.Sprintf("Poor condition (%.0f%%). Significant capacity loss.", sohPercent)
	default:
		return fmt.Sprintf("Critical condition (%.0f%%). Battery replacement recommended.", sohPercent)
	}
}

// RiskFactors lists qualitative concerns derived from charging behavior
// and the estimate itself. Each signal maps to a fixed advisory string so
// reports stay comparable across vehicles.
func (e *Engine) RiskFactors(sohPercent float64, st UsageStats) []string {
	var risks []string

	if st.FastChargeRatio > 0.5 {
		risks = append(risks, "High fast-charging share (>50%) accelerating degradation")
	}
	if st.AvgEndSoc > 0.85 {
		risks = append(risks, "Frequent charging above 85% SoC increases cell stress")
	}
	if st.DeepDischargeRatio > 0.3 {
		risks = append(risks, "Frequent deep discharges below 15% SoC")
	}
	if st.AvgTempC > 35 {
		risks = append(risks, "Elevated charging temperatures (>35°C) accelerating degradation")
	} else if st.SessionCount > 0 && st.AvgTempC < 5 {
		risks = append(risks, "Cold charging temperatures (<5°C) reducing efficiency")
	}
	if sohPercent < 80 {
		risks = append(risks, "SoH below 80%: common warranty threshold reached")
	}
	if sohPercent < 70 {
		risks = append(risks, "Battery may need replacement within 1-2 years")
	}

	return risks
}

// Recommendations derives actionable advice from the identified risks.
func (e *Engine) Recommendations(risks []string, chemistry domain.BatteryChemistry, st UsageStats) []string {
	var recs []string

	for _, r := range risks {
		switch {
		case strings.Contains(r, "fast-charging"):
			recs = append(recs, "Reduce fast charging to at most 30% of sessions")
		case strings.Contains(r, "above 85%"):
			recs = append(recs, "Set the daily charge limit to 80%")
		case strings.Contains(r, "deep discharges"):
			recs = append(recs, "Plug in before the pack drops below 20%")
		case strings.Contains(r, "temperatures"):
			recs = append(recs, "Precondition the battery before charging")
		case strings.Contains(r, "warranty"):
			recs = append(recs, "Have the battery inspected at an authorized service center")
		}
	}

	if chemistry == domain.ChemistryLFP && st.AvgEndSoc < 0.9 {
		recs = append(recs, "LFP packs benefit from an occasional 100% charge for BMS calibration")
	}

	if len(recs) == 0 {
		recs = append(recs, "Battery health is good: keep current charging habits")
	}

	return recs
}
