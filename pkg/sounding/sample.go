package sounding

// MissingThreshold is the sentinel boundary for temperature-like fields.
// Values at or below this mark "no reading".
const MissingThreshold = -1000.0

// Missing is the canonical sentinel loaders should store for an absent
// reading. Any value at or below MissingThreshold (or any negative wind
// value) is treated the same way.
const Missing = -9999.0

// Sample is a single atmospheric observation.
// Pressure is the ordering key and is always required; every other field is
// optional and governed by the sentinel convention documented in the package
// comment.
type Sample struct {
	Pressure      float64 `json:"press"`          // hPa, required
	Height        float64 `json:"hght,omitempty"` // m above sea level
	Temperature   float64 `json:"temp,omitempty"` // degrees C
	DewPoint      float64 `json:"dwpt,omitempty"` // degrees C
	WindDirection float64 `json:"wdir,omitempty"` // degrees, 0-360, meteorological (from)
	WindSpeed     float64 `json:"wspd,omitempty"` // m/s
}

// NewSample returns a sample at the given pressure with every optional field
// initialized to the Missing sentinel. Loaders fill in the readings they have.
func NewSample(pressure float64) Sample {
	return Sample{
		Pressure:      pressure,
		Height:        Missing,
		Temperature:   Missing,
		DewPoint:      Missing,
		WindDirection: Missing,
		WindSpeed:     Missing,
	}
}

// HasTemperature reports whether the temperature field holds a real reading.
func (s Sample) HasTemperature() bool { return s.Temperature > MissingThreshold }

// HasDewPoint reports whether the dew point field holds a real reading.
func (s Sample) HasDewPoint() bool { return s.DewPoint > MissingThreshold }

// HasHeight reports whether the height field holds a real reading.
func (s Sample) HasHeight() bool { return s.Height > MissingThreshold }

// HasWind reports whether both wind direction and speed hold real readings.
// A barb can only be drawn when both are present.
func (s Sample) HasWind() bool { return s.WindDirection >= 0 && s.WindSpeed >= 0 }
