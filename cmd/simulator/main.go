package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

var (
	apiURL    = flag.String("api", "http://localhost:8080/api/v1", "Battery health API base URL")
	token     = flag.String("token", "", "Bearer token for authenticated endpoints")
	vehicles  = flag.Int("vehicles", 5, "Number of vehicles to simulate")
	sessions  = flag.Int("sessions", 60, "Charging sessions per vehicle")
	months    = flag.Int("months", 18, "History span in months")
	chemistry = flag.String("chemistry", "", "Force battery chemistry (NMC/LFP/NCA); empty mixes all three")
	seed      = flag.Int64("seed", 0, "Random seed; 0 derives one from the clock")
	analyze   = flag.Bool("analyze", true, "Trigger analysis and passport issuance after ingest")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	config := &SimulatorConfig{
		APIBaseURL:    *apiURL,
		Token:         *token,
		VehicleCount:  *vehicles,
		SessionCount:  *sessions,
		HistoryMonths: *months,
		Chemistry:     *chemistry,
		Seed:          *seed,
		RunAnalysis:   *analyze,
	}

	simulator := NewSimulator(config, logger)
	if err := simulator.Run(); err != nil {
		logger.Fatal("Simulation failed", zap.Error(err))
	}
}
