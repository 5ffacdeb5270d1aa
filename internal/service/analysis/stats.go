package analysis

import (
	"github.com/voltmetrix/batterypass/internal/domain"
)

// UsageStats summarizes charging behavior over a session history. The
// grader turns these into advisories and the degradation predictor into
// usage-intensity multipliers.
type UsageStats struct {
	SessionCount       int
	TotalEnergyKWh     float64
	AvgEndSoc          float64
	AvgTempC           float64
	FastChargeRatio    float64
	DeepDischargeRatio float64 // sessions starting below 15% SoC
	TempStress         float64 // fraction of sessions outside the nominal band
	CycleCount         int     // equivalent full cycles
	AvgDailyCycles     float64
}

// Stats derives usage statistics from normalized (timestamp-ordered)
// sessions.
func (e *Engine) Stats(nominalKWh float64, sessions []domain.ChargingSession) UsageStats {
	var st UsageStats
	st.SessionCount = len(sessions)
	if len(sessions) == 0 {
		return st
	}

	var fastCount, deepCount, stressCount int
	var endSocSum, tempSum float64

	for _, s := range sessions {
		st.TotalEnergyKWh += s.EnergyKWh
		endSocSum += s.EndSoc
		tempSum += s.TemperatureC

		if s.IsFastCharge || s.ChargerPowerKW > 50 {
			fastCount++
		}
		if s.StartSoc < 0.15 {
			deepCount++
		}
		if s.TemperatureC < e.cfg.NominalTempLowC || s.TemperatureC > e.cfg.NominalTempHighC {
			stressCount++
		}
	}

	n := float64(len(sessions))
	st.AvgEndSoc = endSocSum / n
	st.AvgTempC = tempSum / n
	st.FastChargeRatio = float64(fastCount) / n
	st.DeepDischargeRatio = float64(deepCount) / n
	st.TempStress = float64(stressCount) / n

	if nominalKWh > 0 {
		st.CycleCount = int(st.TotalEnergyKWh / nominalKWh)
	}

	spanDays := sessions[len(sessions)-1].Timestamp.Sub(sessions[0].Timestamp).Hours() / 24
	if spanDays >= 1 && nominalKWh > 0 {
		st.AvgDailyCycles = st.TotalEnergyKWh / nominalKWh / spanDays
	}

	return st
}
