package skewt

import "math"

// Reference curve grids. These are fixed chart furniture, not user options.
const (
	isothermMin  = -100.0
	isothermMax  = 40.0
	isothermStep = 10.0

	adiabatThetaMin  = -30.0
	adiabatThetaMax  = 230.0
	adiabatThetaStep = 20.0
	adiabatPressStep = 10.0

	// poissonExponent is R_d/c_p for dry air, used in the adiabatic relation.
	poissonExponent = 0.286

	kelvinOffset = 273.15
)

// StandardIsobars is the fixed set of pressure levels drawn as horizontal
// reference lines, clipped to the displayed pressure range.
var StandardIsobars = []float64{1000, 850, 700, 500, 400, 300, 250, 200, 150, 100, 50}

// Isotherm is a skewed constant-temperature segment from the pressure top to
// the pressure base. The 0 degC line is tagged for emphasis styling.
type Isotherm struct {
	Temp float64
	From Point // at top pressure
	To   Point // at base pressure
	Zero bool
}

// Isobar is a horizontal constant-pressure segment across the full plot width.
type Isobar struct {
	Pressure float64
	Y        float64
}

// Adiabat is one dry adiabat: the curve of constant potential temperature
// Theta, sampled over the pressure grid and connected into a single polyline.
type Adiabat struct {
	Theta  float64
	Points Polyline
}

// Background is the static reference curve set for one coordinate frame.
// The three families are independent; layering is the renderer's concern.
type Background struct {
	Isotherms []Isotherm
	Isobars   []Isobar
	Adiabats  []Adiabat
}

// BuildBackground generates the full reference curve set for the frame.
// It is pure geometry generation with no side effects.
func BuildBackground(f *Frame) Background {
	return Background{
		Isotherms: buildIsotherms(f),
		Isobars:   buildIsobars(f),
		Adiabats:  buildAdiabats(f),
	}
}

func buildIsotherms(f *Frame) []Isotherm {
	var out []Isotherm
	for temp := isothermMin; temp <= isothermMax; temp += isothermStep {
		out = append(out, Isotherm{
			Temp: temp,
			From: Point{f.SkewX(temp, f.TopPressure), f.YForPressure(f.TopPressure)},
			To:   Point{f.SkewX(temp, f.BasePressure), f.YForPressure(f.BasePressure)},
			Zero: temp == 0,
		})
	}
	return out
}

func buildIsobars(f *Frame) []Isobar {
	var out []Isobar
	for _, p := range StandardIsobars {
		if p < f.TopPressure || p > f.BasePressure {
			continue
		}
		out = append(out, Isobar{Pressure: p, Y: f.YForPressure(p)})
	}
	return out
}

// dryAdiabatTemp solves the Poisson adiabatic relation for the display
// temperature of the theta (degC) adiabat at pressure p:
//
//	T(p) = (theta + 273.15) / (1000/p)^0.286 - 273.15
func dryAdiabatTemp(theta, p float64) float64 {
	return (theta+kelvinOffset)/math.Pow(1000/p, poissonExponent) - kelvinOffset
}

func buildAdiabats(f *Frame) []Adiabat {
	var out []Adiabat
	for theta := adiabatThetaMin; theta <= adiabatThetaMax; theta += adiabatThetaStep {
		pts := make(Polyline, 0, int((f.BasePressure-f.TopPressure)/adiabatPressStep)+1)
		for p := f.TopPressure; p <= f.BasePressure; p += adiabatPressStep {
			x := f.SkewX(dryAdiabatTemp(theta, p), p)
			// Domain edges can produce non-finite x; clamp instead of
			// propagating invalid geometry.
			if math.IsNaN(x) || math.IsInf(x, 0) {
				x = 0
			}
			pts = append(pts, Point{x, f.YForPressure(p)})
		}
		out = append(out, Adiabat{Theta: theta, Points: pts})
	}
	return out
}
