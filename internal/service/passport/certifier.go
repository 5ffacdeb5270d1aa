package passport

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/voltmetrix/batterypass/internal/domain"
)

// Certifier issues tamper-evident battery passports and verifies claims
// against them. It is a pure computation component: the hash depends only
// on the certified field set, so recomputing it from stored fields must
// reproduce the stored value exactly.
type Certifier struct {
	validity time.Duration
}

// NewCertifier creates a certifier with the given validity period for
// issued passports.
func NewCertifier(validity time.Duration) *Certifier {
	return &Certifier{validity: validity}
}

// Certify builds a passport from a report and its vehicle, hashing the
// certified field set. The caller assigns the passport ID before
// persisting.
func (c *Certifier) Certify(report *domain.SohReport, vehicle *domain.Vehicle, now time.Time) *domain.Passport {
	p := &domain.Passport{
		VehicleID:   vehicle.ID,
		ReportID:    report.ID,
		VIN:         vehicle.VIN,
		Make:        vehicle.Make,
		Model:       vehicle.Model,
		Year:        vehicle.Year,
		MileageKm:   vehicle.MileageKm,
		SohPercent:  report.SohPercent,
		HealthGrade: report.HealthGrade,
		IssuedAt:    now.UTC(),
		ValidUntil:  now.UTC().Add(c.validity),
	}
	p.CertificationHash = CertificationHash(p)
	return p
}

// Verify recomputes the hash over the claimed certified fields and checks
// it against the stored passport. A mismatch yields domain.ErrTampered; a
// matching hash on a passport past its validity window yields
// domain.ErrExpired. The two are distinguishable with errors.Is.
func (c *Certifier) Verify(stored *domain.Passport, claimed *domain.Passport, now time.Time) error {
	if CertificationHash(claimed) != stored.CertificationHash {
		return fmt.Errorf("claimed fields do not match certificate: %w", domain.ErrTampered)
	}
	if stored.Expired(now) {
		return fmt.Errorf("passport expired %s: %w",
			stored.ValidUntil.Format(time.RFC3339), domain.ErrExpired)
	}
	return nil
}

// CertificationHash computes the SHA-256 digest of the passport's
// certified field set. Fields are serialized as key=value lines with keys
// sorted lexicographically, so the digest is independent of field order
// and any single-field change flips it.
func CertificationHash(p *domain.Passport) string {
	fields := map[string]string{
		"vin":          p.VIN,
		"make":         p.Make,
		"model":        p.Model,
		"year":         fmt.Sprintf("%d", p.Year),
		"mileage_km":   fmt.Sprintf("%d", p.MileageKm),
		"soh_percent":  fmt.Sprintf("%.4f", p.SohPercent),
		"health_grade": string(p.HealthGrade),
		"report_id":    p.ReportID,
		"issued_at":    p.IssuedAt.UTC().Format(time.RFC3339Nano),
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
		b.WriteByte('\n')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
