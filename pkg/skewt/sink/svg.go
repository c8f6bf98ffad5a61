package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/aerolab/skewt/pkg/skewt"
)

const diagramCSS = `
    text { font-family: Helvetica, Arial, sans-serif; font-size: 11px; fill: #333; }
    .title { font-size: 14px; font-weight: bold; }
    .temperature, .dewpoint { transition: stroke-width 0.15s ease; }
    .temperature:hover, .dewpoint:hover { stroke-width: 4; }`

// SVGOption configures SVG serialization.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	hoverCSS   bool
}

// WithBackground sets a background fill color (default white).
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithoutHoverStyles drops the hover emphasis CSS, for consumers that embed
// the SVG in static documents.
func WithoutHoverStyles() SVGOption {
	return func(r *svgRenderer) { r.hoverCSS = false }
}

// RenderSVG serializes a scene to SVG bytes. Command order is preserved;
// the scene builder already layers background under data.
func RenderSVG(scene *skewt.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{background: "#ffffff", hoverCSS: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		scene.Width, scene.Height, scene.Width, scene.Height)

	if r.hoverCSS {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", diagramCSS)
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)

	// All curve geometry is relative to the plot origin.
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f %.1f)">`+"\n", skewt.MarginLeft, skewt.MarginTop)
	for _, c := range scene.Commands {
		renderCommand(&buf, scene, c)
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderCommand(buf *bytes.Buffer, scene *skewt.Scene, c skewt.Command) {
	switch c.Kind {
	case skewt.KindLine:
		s := strokeFor(c)
		fmt.Fprintf(buf, `    <line class=%q x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" %s/>`+"\n",
			c.Class, c.Points[0].X, c.Points[0].Y, c.Points[1].X, c.Points[1].Y, svgStroke(s))

	case skewt.KindPolyline:
		s := strokeFor(c)
		fmt.Fprintf(buf, `    <polyline class=%q points=%q %s/>`+"\n",
			c.Class, pointList(c.Points), svgStroke(s))

	case skewt.KindPolygon:
		s := strokeFor(c)
		s.Fill = true
		fmt.Fprintf(buf, `    <polygon class=%q points=%q %s/>`+"\n",
			c.Class, pointList(c.Points), svgStroke(s))

	case skewt.KindText:
		renderText(buf, c)

	case skewt.KindGlyph:
		renderGlyph(buf, scene, c)
	}
}

func renderText(buf *bytes.Buffer, c skewt.Command) {
	anchor := c.Anchor
	if anchor == "" {
		anchor = "start"
	}
	fill := ""
	if c.Class == skewt.ClassLegend {
		// Legend entries take the color of the curve they describe.
		class := skewt.ClassTemperature
		if c.Tier == 1 {
			class = skewt.ClassDewPoint
		}
		fill = fmt.Sprintf(` fill="%s"`, strokes[class].Color)
	}
	fmt.Fprintf(buf, `    <text class=%q x="%.2f" y="%.2f" text-anchor=%q%s>%s</text>`+"\n",
		c.Class, c.At.X, c.At.Y, anchor, fill, escapeXML(c.Text))
}

// renderGlyph places a cached barb glyph with a single combined
// translate+rotate transform.
func renderGlyph(buf *bytes.Buffer, scene *skewt.Scene, c skewt.Command) {
	g, ok := scene.Glyphs.Glyph(c.GlyphSpeed)
	if !ok {
		return
	}
	s := strokeFor(c)
	fmt.Fprintf(buf, `    <g class=%q transform="translate(%.2f %.2f) rotate(%.1f)">`+"\n",
		c.Class, c.At.X, c.At.Y, c.Rotation)
	writeGlyphLine(buf, g.Stem, s)
	for _, l := range g.Lines {
		writeGlyphLine(buf, l, s)
	}
	for _, flag := range g.Flags {
		var pts []skewt.Point
		pts = append(pts, flag...)
		fmt.Fprintf(buf, `      <polygon points=%q fill="%s"/>`+"\n", pointList(pts), s.Color)
	}
	buf.WriteString("    </g>\n")
}

func writeGlyphLine(buf *bytes.Buffer, l skewt.GlyphLine, s Stroke) {
	fmt.Fprintf(buf, `      <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		l.X1, l.Y1, l.X2, l.Y2, s.Color, s.Width)
}

func pointList(pts []skewt.Point) string {
	var buf bytes.Buffer
	for i, p := range pts {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%.2f,%.2f", p.X, p.Y)
	}
	return buf.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
