package sink

import (
	"fmt"
	"strconv"

	"github.com/aerolab/skewt/pkg/skewt"
)

// Stroke is the fixed presentation of one curve class. Tiered classes
// (profile lines) override Width per tier.
type Stroke struct {
	Color   string // hex, #rrggbb
	Width   float64
	Opacity float64
	Fill    bool // filled shape instead of stroked (barb flags)
}

// ProfileTierWidths are the stroke widths for stacked profiles: primary,
// secondary, and any further profile.
var ProfileTierWidths = [3]float64{3, 2.5, 1.8}

// strokes is the shared style table for both sinks.
var strokes = map[skewt.Class]Stroke{
	skewt.ClassIsotherm:     {Color: "#dfa285", Width: 1, Opacity: 0.8},
	skewt.ClassIsothermZero: {Color: "#d05c3a", Width: 1.75, Opacity: 0.9},
	skewt.ClassIsobar:       {Color: "#999999", Width: 1, Opacity: 0.8},
	skewt.ClassAdiabat:      {Color: "#87a6c4", Width: 1, Opacity: 0.55},
	skewt.ClassTemperature:  {Color: "#c0392b", Width: 3, Opacity: 1},
	skewt.ClassDewPoint:     {Color: "#2c6fbb", Width: 3, Opacity: 1},
	skewt.ClassBarb:         {Color: "#444444", Width: 1.5, Opacity: 1},
}

// strokeFor resolves the stroke for a command, applying the tier width for
// profile classes.
func strokeFor(c skewt.Command) Stroke {
	s, ok := strokes[c.Class]
	if !ok {
		return Stroke{Color: "#000000", Width: 1, Opacity: 1}
	}
	if c.Class == skewt.ClassTemperature || c.Class == skewt.ClassDewPoint {
		tier := c.Tier
		if tier > 2 {
			tier = 2
		}
		s.Width = ProfileTierWidths[tier]
	}
	return s
}

// hexRGB parses a #rrggbb color into 0..1 components.
func hexRGB(hex string) (r, g, b float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	parse := func(s string) float64 {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0
		}
		return float64(v) / 255
	}
	return parse(hex[1:3]), parse(hex[3:5]), parse(hex[5:7])
}

// svgStroke renders the stroke as inline SVG presentation attributes.
func svgStroke(s Stroke) string {
	if s.Fill {
		return fmt.Sprintf(`fill="%s" fill-opacity="%.2f" stroke="none"`, s.Color, s.Opacity)
	}
	return fmt.Sprintf(`stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f" fill="none"`,
		s.Color, s.Width, s.Opacity)
}
