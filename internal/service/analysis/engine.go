package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// Engine runs the battery health pipeline: normalize sessions, estimate
// apparent capacity, aggregate into SoH, then grade, score, forecast and
// price the result. It holds only its configuration snapshot, so a single
// Engine is safe for concurrent use and identical inputs always yield the
// identical report.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine from an explicit configuration snapshot.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Analyze produces a health report for the vehicle from its raw session
// history, evaluated at the given instant. The returned report carries no
// ID; the caller assigns one before persisting. Rejections report any
// session the normalizer excluded.
func (e *Engine) Analyze(vehicle *domain.Vehicle, raw []domain.ChargingSession, now time.Time) (*domain.SohReport, []domain.SessionRejection, error) {
	sessions, rejections := e.Normalize(vehicle.BatteryCapacityKWh, raw)

	if len(sessions) < e.cfg.MinSessions {
		return nil, rejections, fmt.Errorf("%d of %d sessions usable, need %d: %w",
			len(sessions), len(raw), e.cfg.MinSessions, domain.ErrInsufficientData)
	}

	obs := e.Observations(sessions, now)
	capacityKWh, sohPercent, err := e.EstimateSoH(vehicle.BatteryCapacityKWh, obs)
	if err != nil {
		return nil, rejections, err
	}

	// Round before deriving anything: the grade, summary, risks, value and
	// forecast must all agree with the soh_percent the report persists.
	sohPercent = round1(sohPercent)

	st := e.Stats(vehicle.BatteryCapacityKWh, sessions)
	grade := Grade(sohPercent)
	risks := e.RiskFactors(sohPercent, st)

	report := &domain.SohReport{
		VehicleID:            vehicle.ID,
		SohPercent:           sohPercent,
		HealthGrade:          grade,
		HealthSummary:        Summary(grade, sohPercent),
		Confidence:           e.Confidence(obs, now),
		EstimatedCapacityKWh: round1(capacityKWh),
		NominalCapacityKWh:   vehicle.BatteryCapacityKWh,
		SessionCount:         st.SessionCount,
		CycleCountEstimate:   st.CycleCount,
		TotalEnergyKWh:       round1(st.TotalEnergyKWh),
		AvgEndSoc:            st.AvgEndSoc,
		FastChargeRatio:      st.FastChargeRatio,
		RiskFactors:          risks,
		Recommendations:      e.Recommendations(risks, vehicle.BatteryType, st),
		ValueImpactCHF:       e.ValueImpact(vehicle, sohPercent),
		Prediction:           e.Predict(sohPercent, vehicle.BatteryType, st, nil),
		YearsTo80Percent:     e.YearsToThreshold(sohPercent, 80, vehicle.BatteryType, st),
		YearsTo70Percent:     e.YearsToThreshold(sohPercent, 70, vehicle.BatteryType, st),
		ComputedAt:           now,
	}

	return report, rejections, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
