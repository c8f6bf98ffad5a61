package sounding

// SpeedUnit is a wind speed display unit token.
type SpeedUnit string

// Supported wind speed display units. Samples always carry m/s; conversion
// happens at display time.
const (
	UnitMS  SpeedUnit = "ms"  // metres per second (pass-through)
	UnitKT  SpeedUnit = "kt"  // knots
	UnitKMH SpeedUnit = "kmh" // kilometres per hour
)

// DefaultSpeedUnit is used when the caller does not pick a unit.
const DefaultSpeedUnit = UnitKMH

// MSToKT is the metres-per-second to knots conversion factor.
const MSToKT = 1.943844492

// MSToKMH is the metres-per-second to kilometres-per-hour conversion factor.
const MSToKMH = 3.6

// ConvertSpeed converts a wind speed in m/s to the given display unit.
// Unknown unit tokens pass the value through unchanged, treating it as
// already being in m/s.
func ConvertSpeed(ms float64, unit SpeedUnit) float64 {
	switch unit {
	case UnitKT:
		return ms * MSToKT
	case UnitKMH:
		return ms * MSToKMH
	default:
		return ms
	}
}

// Label returns the human-readable suffix for the unit.
func (u SpeedUnit) Label() string {
	switch u {
	case UnitKT:
		return "kt"
	case UnitMS:
		return "m/s"
	case UnitKMH:
		return "km/h"
	default:
		return "m/s"
	}
}

// Valid reports whether u is one of the supported unit tokens.
func (u SpeedUnit) Valid() bool {
	switch u {
	case UnitMS, UnitKT, UnitKMH:
		return true
	}
	return false
}
