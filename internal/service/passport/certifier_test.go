package passport

import (
	"errors"
	"testing"
	"time"

	"github.com/voltmetrix/batterypass/internal/domain"
)

func certifiedFixture(t *testing.T) (*Certifier, *domain.Passport) {
	t.Helper()

	certifier := NewCertifier(365 * 24 * time.Hour)
	report := &domain.SohReport{
		ID:          "rep-1",
		VehicleID:   "veh-1",
		SohPercent:  87.3,
		HealthGrade: domain.GradeGood,
	}
	vehicle := &domain.Vehicle{
		ID:        "veh-1",
		VIN:       "WVWZZZE1ZPP000001",
		Make:      "VW",
		Model:     "ID.4",
		Year:      2022,
		MileageKm: 60000,
	}
	issued := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return certifier, certifier.Certify(report, vehicle, issued)
}

func TestCertify_HashReproducible(t *testing.T) {
	_, p := certifiedFixture(t)

	if p.CertificationHash == "" {
		t.Fatal("expected a certification hash")
	}
	if len(p.CertificationHash) != 64 {
		t.Fatalf("expected a hex SHA-256 digest, got %q", p.CertificationHash)
	}
	if CertificationHash(p) != p.CertificationHash {
		t.Error("recomputing the hash from stored fields does not reproduce it")
	}
}

func TestVerify_ValidPassport(t *testing.T) {
	certifier, p := certifiedFixture(t)

	claimed := *p
	now := p.IssuedAt.Add(24 * time.Hour)

	if err := certifier.Verify(p, &claimed, now); err != nil {
		t.Fatalf("expected freshly issued passport to verify, got %v", err)
	}
}

func TestVerify_SingleFieldTampering(t *testing.T) {
	certifier, p := certifiedFixture(t)
	now := p.IssuedAt.Add(24 * time.Hour)

	mutations := map[string]func(*domain.Passport){
		"vin":         func(c *domain.Passport) { c.VIN = "WVWZZZE1ZPP000002" },
		"make":        func(c *domain.Passport) { c.Make = "Audi" },
		"model":       func(c *domain.Passport) { c.Model = "Q4" },
		"year":        func(c *domain.Passport) { c.Year = 2023 },
		"mileage":     func(c *domain.Passport) { c.MileageKm = 30000 },
		"soh":         func(c *domain.Passport) { c.SohPercent = 95.0 },
		"grade":       func(c *domain.Passport) { c.HealthGrade = domain.GradeExcellent },
		"report id":   func(c *domain.Passport) { c.ReportID = "rep-2" },
		"issuance":    func(c *domain.Passport) { c.IssuedAt = c.IssuedAt.Add(time.Second) },
	}

	for name, mutate := range mutations {
		claimed := *p
		mutate(&claimed)

		err := certifier.Verify(p, &claimed, now)
		if !errors.Is(err, domain.ErrTampered) {
			t.Errorf("mutating %s: expected ErrTampered, got %v", name, err)
		}
	}
}

func TestVerify_Expired(t *testing.T) {
	certifier, p := certifiedFixture(t)

	claimed := *p
	afterExpiry := p.ValidUntil.Add(time.Hour)

	err := certifier.Verify(p, &claimed, afterExpiry)
	if !errors.Is(err, domain.ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	if errors.Is(err, domain.ErrTampered) {
		t.Error("expiry must stay distinguishable from tampering")
	}
}

func TestVerify_TamperingReportedBeforeExpiry(t *testing.T) {
	certifier, p := certifiedFixture(t)

	claimed := *p
	claimed.SohPercent = 99

	err := certifier.Verify(p, &claimed, p.ValidUntil.Add(time.Hour))
	if !errors.Is(err, domain.ErrTampered) {
		t.Fatalf("tampered and expired passport should report tampering, got %v", err)
	}
}

func TestCertificationHash_SohPrecision(t *testing.T) {
	_, p := certifiedFixture(t)

	// A hundredth of a point must change the digest.
	claimed := *p
	claimed.SohPercent = p.SohPercent + 0.01

	if CertificationHash(&claimed) == p.CertificationHash {
		t.Error("SoH change did not affect the hash")
	}
}
