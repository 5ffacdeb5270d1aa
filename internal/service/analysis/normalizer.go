package analysis

import (
	"fmt"
	"sort"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// Normalize validates and cleans a raw, unordered batch of sessions for a
// vehicle with the given nominal capacity. Accepted sessions come back
// sorted by timestamp. Every rejection names the offending record and the
// reason; one bad record never sinks the batch.
//
// Duplicate policy: for sessions sharing an exact timestamp the last record
// in input order wins and the earlier one is reported as rejected.
func (e *Engine) Normalize(nominalKWh float64, raw []domain.ChargingSession) ([]domain.ChargingSession, []domain.SessionRejection) {
	accepted := make([]domain.ChargingSession, 0, len(raw))
	rawIndex := make([]int, 0, len(raw))
	var rejected []domain.SessionRejection

	byTimestamp := make(map[int64]int) // unix nano -> position in accepted

	for i, s := range raw {
		if reason := e.validate(nominalKWh, &s); reason != "" {
			rejected = append(rejected, domain.SessionRejection{Index: i, Reason: reason})
			continue
		}

		key := s.Timestamp.UnixNano()
		if pos, ok := byTimestamp[key]; ok {
			rejected = append(rejected, domain.SessionRejection{
				Index:  rawIndex[pos],
				Reason: "duplicate timestamp, superseded by later record",
			})
			accepted[pos] = s
			rawIndex[pos] = i
			continue
		}
		byTimestamp[key] = len(accepted)
		accepted = append(accepted, s)
		rawIndex = append(rawIndex, i)
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Timestamp.Before(accepted[j].Timestamp)
	})

	return accepted, rejected
}

// validate returns an empty string for a clean session, otherwise the
// rejection reason.
func (e *Engine) validate(nominalKWh float64, s *domain.ChargingSession) string {
	if s.StartSoc < 0 || s.StartSoc > 1 {
		return fmt.Sprintf("start_soc %.3f outside [0,1]", s.StartSoc)
	}
	if s.EndSoc < 0 || s.EndSoc > 1 {
		return fmt.Sprintf("end_soc %.3f outside [0,1]", s.EndSoc)
	}
	if s.EndSoc <= s.StartSoc {
		return "end_soc not above start_soc: not a charging session"
	}
	if s.EnergyKWh <= 0 {
		return fmt.Sprintf("energy_kwh %.3f not positive", s.EnergyKWh)
	}
	if s.DurationMin <= 0 {
		return fmt.Sprintf("duration_minutes %.1f not positive", s.DurationMin)
	}
	if s.Timestamp.IsZero() {
		return "missing timestamp"
	}

	if nominalKWh > 0 {
		apparent := s.ApparentCapacityKWh()
		low := nominalKWh * e.cfg.CapacityWindowLow
		high := nominalKWh * e.cfg.CapacityWindowHigh
		if apparent < low || apparent > high {
			return fmt.Sprintf("implied capacity %.1f kWh outside plausible window [%.1f, %.1f]: outlier", apparent, low, high)
		}
	}

	return ""
}
