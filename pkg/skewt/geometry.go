package skewt

// Point is a position in screen space. The origin is the top-left corner of
// the plot area; y grows downward, matching SVG user units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline is an open run of connected points.
type Polyline []Point

// Class tags a drawable primitive with its curve family. Stroke color, width
// and opacity are fixed per class by the sink; classes are not
// user-configurable.
type Class string

// Style classes emitted by the scene builder.
const (
	ClassIsotherm     Class = "isotherm"
	ClassIsothermZero Class = "isotherm-zero" // 0 degC line, emphasized
	ClassIsobar       Class = "isobar"
	ClassAdiabat      Class = "adiabat"
	ClassTemperature  Class = "temperature"
	ClassDewPoint     Class = "dewpoint"
	ClassBarb         Class = "barb"
	ClassLabel        Class = "label"
	ClassTitle        Class = "title"
	ClassLegend       Class = "legend"
)

// CommandKind discriminates the draw command variants.
type CommandKind int

// Draw command kinds understood by sinks.
const (
	KindLine CommandKind = iota
	KindPolyline
	KindPolygon
	KindText
	KindGlyph
)

// Command is a single screen-space draw instruction. Exactly the fields
// relevant to its Kind are set:
//
//   - KindLine: Points holds the two endpoints
//   - KindPolyline, KindPolygon: Points holds the vertex run
//   - KindText: Text and At are set, Anchor optionally
//   - KindGlyph: GlyphSpeed selects a glyph from the scene's glyph set,
//     placed at At and rotated by Rotation degrees (single combined
//     translate+rotate transform)
type Command struct {
	Kind       CommandKind `json:"kind"`
	Class      Class       `json:"class"`
	Points     []Point     `json:"points,omitempty"`
	Text       string      `json:"text,omitempty"`
	At         Point       `json:"at,omitempty"`
	Anchor     string      `json:"anchor,omitempty"` // "start" (default), "middle", "end"
	GlyphSpeed int         `json:"glyphSpeed,omitempty"`
	Rotation   float64     `json:"rotation,omitempty"`
	// Tier selects the stroke-width tier for profile lines: 0 primary,
	// 1 secondary, 2 any further profile.
	Tier int `json:"tier,omitempty"`
}

// line is a two-point convenience constructor.
func line(class Class, x1, y1, x2, y2 float64) Command {
	return Command{
		Kind:   KindLine,
		Class:  class,
		Points: []Point{{x1, y1}, {x2, y2}},
	}
}

// text is a label convenience constructor.
func text(class Class, s string, at Point, anchor string) Command {
	return Command{Kind: KindText, Class: class, Text: s, At: at, Anchor: anchor}
}
