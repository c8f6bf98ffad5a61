package skewt

import (
	"math"

	"github.com/aerolab/skewt/pkg/errors"
	"github.com/aerolab/skewt/pkg/sounding"
)

// Chart defaults. The temperature domain and base pressure follow the usual
// SkewT conventions; the top pressure adapts to the data (see TopPressureFor).
const (
	DefaultWidth        = 750.0
	DefaultHeight       = 620.0
	DefaultTMin         = -45.0
	DefaultTMax         = 50.0
	DefaultBasePressure = 1050.0
	DefaultTopPressure  = 100.0 // used when there is no data to derive one
	DefaultSkewAngle    = 45.0

	// MinTopPressure is the hard floor for the displayed top pressure.
	MinTopPressure = 50.0
	// topPressureMargin is subtracted from the data's minimum pressure so the
	// uppermost sample does not sit on the frame edge.
	topPressureMargin = 10.0
)

// FrameConfig holds the inputs for building a coordinate frame.
// Zero-valued fields fall back to the package defaults.
type FrameConfig struct {
	Width, Height float64 // plot area in pixels
	TMin, TMax    float64 // temperature domain, degrees C
	TopPressure   float64 // smallest pressure to display, hPa
	BasePressure  float64 // bottom of the chart, hPa
	SkewAngle     float64 // degrees
}

// Frame is the derived per-render coordinate state: the linear temperature
// scale, the logarithmic pressure scale and the skew transform that combines
// them. A frame is recomputed whenever data or dimensions change and is
// read-only for the duration of a render pass.
type Frame struct {
	Width, Height float64
	TMin, TMax    float64
	TopPressure   float64
	BasePressure  float64
	SkewTan       float64

	logTop, logBase float64 // cached log bounds of the pressure scale
}

// TopPressureFor derives the displayed top pressure from a profile: the data
// minimum minus a 10 hPa margin, floored at 50 hPa. An empty profile gets the
// default top pressure.
func TopPressureFor(p *sounding.Profile) float64 {
	min := p.MinPressure()
	if min <= 0 {
		return DefaultTopPressure
	}
	return math.Max(MinTopPressure, min-topPressureMargin)
}

// NewFrame validates cfg and builds the coordinate frame. It fails fast on a
// skew angle whose tangent is zero or undefined and on zero or negative
// domain spans, so no NaN geometry can leak downstream.
func NewFrame(cfg FrameConfig) (*Frame, error) {
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.TMin == 0 && cfg.TMax == 0 {
		cfg.TMin, cfg.TMax = DefaultTMin, DefaultTMax
	}
	if cfg.BasePressure == 0 {
		cfg.BasePressure = DefaultBasePressure
	}
	if cfg.TopPressure == 0 {
		cfg.TopPressure = DefaultTopPressure
	}
	if cfg.SkewAngle == 0 {
		cfg.SkewAngle = DefaultSkewAngle
	}

	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "plot dimensions must be positive, got %vx%v", cfg.Width, cfg.Height)
	}
	if cfg.TMax <= cfg.TMin {
		return nil, errors.New(errors.ErrCodeInvalidDomain, "temperature domain [%v, %v] has no span", cfg.TMin, cfg.TMax)
	}
	if cfg.TopPressure <= 0 || cfg.BasePressure <= cfg.TopPressure {
		return nil, errors.New(errors.ErrCodeInvalidDomain, "pressure domain [%v, %v] has no span", cfg.TopPressure, cfg.BasePressure)
	}

	// math.Tan(180 deg in radians) is a tiny nonzero float, so multiples of
	// 180 must be rejected on the angle itself rather than on the tangent.
	if math.Mod(cfg.SkewAngle, 180) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSkew, "skew angle %v deg has no usable tangent", cfg.SkewAngle)
	}
	skewTan := math.Tan(cfg.SkewAngle * math.Pi / 180)
	if math.IsNaN(skewTan) || math.IsInf(skewTan, 0) {
		return nil, errors.New(errors.ErrCodeInvalidSkew, "skew angle %v deg has no usable tangent", cfg.SkewAngle)
	}

	return &Frame{
		Width:        cfg.Width,
		Height:       cfg.Height,
		TMin:         cfg.TMin,
		TMax:         cfg.TMax,
		TopPressure:  cfg.TopPressure,
		BasePressure: cfg.BasePressure,
		SkewTan:      skewTan,
		logTop:       math.Log(cfg.TopPressure),
		logBase:      math.Log(cfg.BasePressure),
	}, nil
}

// XForTemp maps a temperature to an unskewed x pixel coordinate.
func (f *Frame) XForTemp(t float64) float64 {
	return (t - f.TMin) / (f.TMax - f.TMin) * f.Width
}

// TempForX inverts XForTemp.
func (f *Frame) TempForX(x float64) float64 {
	return f.TMin + x/f.Width*(f.TMax-f.TMin)
}

// YForPressure maps a pressure to a y pixel coordinate on the log scale.
// Smaller pressures map to smaller y, since pressure decreases upward.
func (f *Frame) YForPressure(p float64) float64 {
	return (math.Log(p) - f.logTop) / (f.logBase - f.logTop) * f.Height
}

// PressureForY inverts YForPressure, converting a pointer's pixel y back
// into a pressure value.
func (f *Frame) PressureForY(y float64) float64 {
	return math.Exp(f.logTop + y/f.Height*(f.logBase-f.logTop))
}

// SkewX places a temperature at a given pressure in skewed screen space:
//
//	x(T) + (y(basePressure) - y(p)) / tan(skew)
//
// Every curve family goes through this one implementation so isotherms,
// profile lines and adiabats stay bit-identical for the same (T, p) pair.
func (f *Frame) SkewX(t, p float64) float64 {
	return f.XForTemp(t) + (f.YForPressure(f.BasePressure)-f.YForPressure(p))/f.SkewTan
}
