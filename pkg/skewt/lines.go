package skewt

import "github.com/aerolab/skewt/pkg/sounding"

// ProfileLines holds the screen-space polylines for one profile's
// temperature and dew-point curves. Each slice element is one contiguous run
// of defined samples: a run of missing readings breaks the curve into a new
// segment rather than bridging the gap.
type ProfileLines struct {
	Temperature []Polyline
	DewPoint    []Polyline
}

// BuildProfileLines maps a profile's samples through the skew transform.
// Samples outside the displayed pressure range still contribute; clipping is
// the renderer's concern.
func BuildProfileLines(f *Frame, p *sounding.Profile) ProfileLines {
	if p == nil {
		return ProfileLines{}
	}
	return ProfileLines{
		Temperature: buildSegments(f, p.Samples, sounding.Sample.HasTemperature, func(s sounding.Sample) float64 { return s.Temperature }),
		DewPoint:    buildSegments(f, p.Samples, sounding.Sample.HasDewPoint, func(s sounding.Sample) float64 { return s.DewPoint }),
	}
}

// buildSegments walks the samples once, opening a new polyline after every
// run of undefined values and closing out segments of fewer than one point.
func buildSegments(f *Frame, samples []sounding.Sample, defined func(sounding.Sample) bool, value func(sounding.Sample) float64) []Polyline {
	var (
		out []Polyline
		cur Polyline
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	for _, s := range samples {
		if !defined(s) {
			flush()
			continue
		}
		cur = append(cur, Point{
			X: f.SkewX(value(s), s.Pressure),
			Y: f.YForPressure(s.Pressure),
		})
	}
	flush()
	return out
}
