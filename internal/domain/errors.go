package domain

import "errors"

// Sentinel errors for the analysis and certification pipeline. Callers
// branch on these with errors.Is to map them to API responses.
var (
	// ErrInsufficientData means too few qualifying sessions survived
	// filtering to estimate SoH. The engine never substitutes a default.
	ErrInsufficientData = errors.New("insufficient charging data for SoH estimation")

	// ErrOutOfRange means a computed SoH fell outside the plausible
	// tolerance band before clamping, indicating an estimator bug or
	// corrupt input rather than a degraded battery.
	ErrOutOfRange = errors.New("computed SoH outside plausible range")

	// ErrTampered means a passport's recomputed certification hash does
	// not match the stored one.
	ErrTampered = errors.New("passport certification hash mismatch")

	// ErrExpired means a passport's hash is valid but the validity
	// window has passed.
	ErrExpired = errors.New("passport validity period expired")

	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrPassportNotFound = errors.New("passport not found")
)