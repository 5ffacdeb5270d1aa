package domain

import "time"

// HealthGrade classifies a battery's state of health.
type HealthGrade string

const (
	GradeExcellent HealthGrade = "excellent" // SoH >= 95
	GradeGood      HealthGrade = "good"      // 85 <= SoH < 95
	GradeFair      HealthGrade = "fair"      // 75 <= SoH < 85
	GradePoor      HealthGrade = "poor"      // 65 <= SoH < 75
	GradeCritical  HealthGrade = "critical"  // SoH < 65
)

// SohReport is the immutable result of one battery health analysis.
type SohReport struct {
	ID                   string      `json:"id" gorm:"primaryKey"`
	VehicleID            string      `json:"vehicle_id" gorm:"index"`
	SohPercent           float64     `json:"soh_percent"`
	HealthGrade          HealthGrade `json:"health_grade"`
	HealthSummary        string      `json:"health_summary"`
	Confidence           float64     `json:"confidence"` // 0-1
	EstimatedCapacityKWh float64     `json:"estimated_capacity_kwh"`
	NominalCapacityKWh   float64     `json:"nominal_capacity_kwh"`

	// Usage statistics derived from the session history.
	SessionCount        int     `json:"session_count"`
	CycleCountEstimate  int     `json:"cycle_count_estimate"`
	TotalEnergyKWh      float64 `json:"total_energy_kwh"`
	AvgEndSoc           float64 `json:"avg_end_soc"`       // 0-1
	FastChargeRatio     float64 `json:"fast_charge_ratio"` // 0-1

	RiskFactors     []string `json:"risk_factors" gorm:"serializer:json"`
	Recommendations []string `json:"recommendations" gorm:"serializer:json"`

	ValueImpactCHF float64 `json:"value_impact_chf"`

	// Prediction maps a year offset to the forecast SoH% at that offset.
	Prediction map[int]float64 `json:"prediction,omitempty" gorm:"serializer:json"`

	// Years until the decay curve crosses the warranty (80%) and
	// replacement (70%) thresholds. Zero when already below; negative
	// never occurs. Nil when the curve never crosses within the model.
	YearsTo80Percent *float64 `json:"years_to_80_percent,omitempty"`
	YearsTo70Percent *float64 `json:"years_to_70_percent,omitempty"`

	ComputedAt time.Time `json:"computed_at"`
}
