package domain

import "time"

// BatteryChemistry tags the cell technology of a pack. Degradation
// coefficients are looked up by this tag, never dispatched on.
type BatteryChemistry string

const (
	ChemistryNMC BatteryChemistry = "NMC"
	ChemistryLFP BatteryChemistry = "LFP"
	ChemistryNCA BatteryChemistry = "NCA"
)

// Valid reports whether the chemistry is one of the known tags.
func (c BatteryChemistry) Valid() bool {
	switch c {
	case ChemistryNMC, ChemistryLFP, ChemistryNCA:
		return true
	}
	return false
}

// Vehicle identifies the subject of a health analysis and a passport.
type Vehicle struct {
	ID                 string           `json:"id" gorm:"primaryKey"`
	VIN                string           `json:"vin,omitempty" gorm:"index"`
	Make               string           `json:"make"`
	Model              string           `json:"model"`
	Year               int              `json:"year"`
	BatteryCapacityKWh float64          `json:"battery_capacity_kwh"` // nominal/rated
	BatteryType        BatteryChemistry `json:"battery_type"`
	MileageKm          int              `json:"mileage_km"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}
