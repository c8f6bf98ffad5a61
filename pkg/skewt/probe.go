package skewt

import (
	"math"

	"github.com/aerolab/skewt/pkg/sounding"
)

// ProbeState is the probe's interaction state. There are exactly two states:
// idle (no pointer over the plot) and active (pointer over the plot with the
// last-known sample cached).
type ProbeState int

const (
	ProbeIdle ProbeState = iota
	ProbeActive
)

// Readout is the per-channel output of an active probe position. Each
// channel is gated independently by its own definedness test; a missing
// field suppresses only that channel, never the whole readout.
type Readout struct {
	Pressure float64 // hPa at the probed sample

	Temperature    int // degrees C, rounded to the nearest integer
	HasTemperature bool

	DewPoint    int // degrees C, rounded to the nearest integer
	HasDewPoint bool

	Height    float64 // metres
	HasHeight bool

	WindSpeed    float64 // in Unit, rounded to one decimal
	Unit         sounding.SpeedUnit
	HasWindSpeed bool
}

// Probe implements the hover lookup over a profile. The host translates raw
// pointer events into pixel coordinates and drives Enter/Move/Leave; each
// Move recomputes synchronously, so only the latest event's result is ever
// visible.
type Probe struct {
	frame   *Frame
	profile *sounding.Profile
	unit    sounding.SpeedUnit

	state   ProbeState
	current Readout
}

// NewProbe builds a probe over the given frame and profile. Wind speed
// readouts are converted to unit before formatting.
func NewProbe(f *Frame, p *sounding.Profile, unit sounding.SpeedUnit) *Probe {
	if !unit.Valid() {
		unit = sounding.DefaultSpeedUnit
	}
	return &Probe{frame: f, profile: p, unit: unit}
}

// State returns the current interaction state.
func (pr *Probe) State() ProbeState { return pr.state }

// Current returns the last computed readout. The second return is false
// while idle or when no lookup was possible at the last position.
func (pr *Probe) Current() (Readout, bool) {
	return pr.current, pr.state == ProbeActive && pr.current.Pressure > 0
}

// Enter transitions idle -> active and computes the first readout.
func (pr *Probe) Enter(y float64) (Readout, bool) {
	pr.state = ProbeActive
	return pr.Move(y)
}

// Leave transitions back to idle and clears the cached readout.
func (pr *Probe) Leave() {
	pr.state = ProbeIdle
	pr.current = Readout{}
}

// Move recomputes the readout for a pointer's pixel y coordinate: the
// pressure scale is inverted and the profile bisected for the nearest
// sample. Profiles with fewer than two samples report no active sample.
func (pr *Probe) Move(y float64) (Readout, bool) {
	pr.state = ProbeActive

	idx, ok := pr.profile.Nearest(pr.frame.PressureForY(y))
	if !ok {
		pr.current = Readout{}
		return Readout{}, false
	}

	s := pr.profile.Samples[idx]
	r := Readout{Pressure: s.Pressure, Unit: pr.unit}
	if s.HasTemperature() {
		r.Temperature = int(math.Round(s.Temperature))
		r.HasTemperature = true
	}
	if s.HasDewPoint() {
		r.DewPoint = int(math.Round(s.DewPoint))
		r.HasDewPoint = true
	}
	if s.HasHeight() {
		r.Height = s.Height
		r.HasHeight = true
	}
	if s.WindSpeed >= 0 {
		r.WindSpeed = round1(sounding.ConvertSpeed(s.WindSpeed, pr.unit))
		r.HasWindSpeed = true
	}

	pr.current = r
	return r, true
}

// round1 rounds to one decimal place for display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
