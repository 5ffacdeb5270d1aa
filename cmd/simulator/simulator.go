package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// SimulatorConfig drives the fleet generator.
type SimulatorConfig struct {
	APIBaseURL    string
	Token         string
	VehicleCount  int
	SessionCount  int
	HistoryMonths int
	Chemistry     string
	Seed          int64
	RunAnalysis   bool
}

// Simulator fabricates a fleet with plausible charging histories and
// pushes them through the public API: register, ingest, analyze, issue.
type Simulator struct {
	config *SimulatorConfig
	client *http.Client
	rng    *rand.Rand
	log    *zap.Logger
}

type fleetProfile struct {
	make        string
	model       string
	capacityKWh float64
	chemistry   string
}

var profiles = []fleetProfile{
	{"Tesla", "Model 3", 75, "NCA"},
	{"Tesla", "Model Y", 78, "NCA"},
	{"VW", "ID.4", 77, "NMC"},
	{"Renault", "Zoe", 52, "NMC"},
	{"BYD", "Atto 3", 60, "LFP"},
	{"MG", "MG4", 64, "LFP"},
}

func NewSimulator(config *SimulatorConfig, log *zap.Logger) *Simulator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		config: config,
		client: &http.Client{Timeout: 30 * time.Second},
		rng:    rand.New(rand.NewSource(seed)),
		log:    log,
	}
}

// Run executes the full scenario for every simulated vehicle.
func (s *Simulator) Run() error {
	for i := 0; i < s.config.VehicleCount; i++ {
		profile := profiles[s.rng.Intn(len(profiles))]
		if s.config.Chemistry != "" {
			profile.chemistry = s.config.Chemistry
		}

		vehicleID, err := s.registerVehicle(i, profile)
		if err != nil {
			return fmt.Errorf("register vehicle %d: %w", i, err)
		}

		history := s.generateHistory(profile)
		if err := s.ingestSessions(vehicleID, history); err != nil {
			return fmt.Errorf("ingest sessions for %s: %w", vehicleID, err)
		}

		if s.config.RunAnalysis {
			if err := s.analyzeAndCertify(vehicleID); err != nil {
				return fmt.Errorf("analyze %s: %w", vehicleID, err)
			}
		}

		s.log.Info("Vehicle simulated",
			zap.String("vehicle_id", vehicleID),
			zap.String("model", profile.make+" "+profile.model),
			zap.Int("sessions", len(history)),
		)
	}
	return nil
}

// generateHistory produces sessions whose apparent capacity drifts down
// over the history span, so analyses show realistic degradation.
func (s *Simulator) generateHistory(profile fleetProfile) []domain.ChargingSession {
	now := time.Now().UTC()
	span := time.Duration(s.config.HistoryMonths) * 30 * 24 * time.Hour
	start := now.Add(-span)

	// Start slightly below nominal and fade a fraction of a percent per
	// month, with per-session noise on top.
	initialHealth := 0.97 + s.rng.Float64()*0.03
	monthlyFade := 0.002 + s.rng.Float64()*0.003

	out := make([]domain.ChargingSession, 0, s.config.SessionCount)
	for i := 0; i < s.config.SessionCount; i++ {
		offset := time.Duration(float64(span) * float64(i) / float64(s.config.SessionCount))
		ts := start.Add(offset).Add(time.Duration(s.rng.Intn(6)) * time.Hour)

		ageMonths := offset.Hours() / (30 * 24)
		health := initialHealth * math.Exp(-monthlyFade*ageMonths)
		noise := 1 + (s.rng.Float64()-0.5)*0.04

		startSoc := 0.1 + s.rng.Float64()*0.4
		endSoc := startSoc + 0.3 + s.rng.Float64()*(0.95-startSoc-0.3)
		energy := (endSoc - startSoc) * profile.capacityKWh * health * noise

		fast := s.rng.Float64() < 0.35
		power := 7 + s.rng.Float64()*4
		if fast {
			power = 60 + s.rng.Float64()*90
		}

		out = append(out, domain.ChargingSession{
			Timestamp:      ts,
			StartSoc:       round3(startSoc),
			EndSoc:         round3(endSoc),
			EnergyKWh:      round3(energy),
			DurationMin:    round3(energy / power * 60),
			ChargerPowerKW: round3(power),
			TemperatureC:   round3(-5 + s.rng.Float64()*40),
			IsFastCharge:   fast,
		})
	}
	return out
}

func (s *Simulator) registerVehicle(i int, profile fleetProfile) (string, error) {
	body := map[string]interface{}{
		"vin":                  fmt.Sprintf("SIM%014d", s.rng.Int63n(1e13)+int64(i)),
		"make":                 profile.make,
		"model":                profile.model,
		"year":                 2019 + s.rng.Intn(5),
		"battery_capacity_kwh": profile.capacityKWh,
		"battery_type":         profile.chemistry,
		"mileage_km":           20000 + s.rng.Intn(120000),
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := s.post("/vehicles", body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (s *Simulator) ingestSessions(vehicleID string, history []domain.ChargingSession) error {
	// Batch to keep request bodies small.
	const batchSize = 50
	for start := 0; start < len(history); start += batchSize {
		end := start + batchSize
		if end > len(history) {
			end = len(history)
		}
		body := map[string]interface{}{"sessions": history[start:end]}
		if err := s.post(fmt.Sprintf("/vehicles/%s/sessions", vehicleID), body, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) analyzeAndCertify(vehicleID string) error {
	var report struct {
		SohPercent  float64 `json:"soh_percent"`
		HealthGrade string  `json:"health_grade"`
	}
	if err := s.post(fmt.Sprintf("/vehicles/%s/analysis", vehicleID), nil, &report); err != nil {
		return err
	}
	s.log.Info("Analysis complete",
		zap.String("vehicle_id", vehicleID),
		zap.Float64("soh", report.SohPercent),
		zap.String("grade", report.HealthGrade),
	)

	return s.post(fmt.Sprintf("/vehicles/%s/passports", vehicleID), nil, nil)
}

func (s *Simulator) post(path string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(http.MethodPost, s.config.APIBaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.Token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s returned %d", path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
