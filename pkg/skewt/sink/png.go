package sink

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/aerolab/skewt/pkg/errors"
	"github.com/aerolab/skewt/pkg/skewt"
)

// PNGOption configures PNG rasterization.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes a scene directly from its draw commands.
func RenderPNG(scene *skewt.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "raster scale must be positive, got %v", r.scale)
	}

	dc := gg.NewContext(int(scene.Width*r.scale), int(scene.Height*r.scale))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.Translate(skewt.MarginLeft, skewt.MarginTop)

	for _, c := range scene.Commands {
		rasterCommand(dc, scene, c)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

func rasterCommand(dc *gg.Context, scene *skewt.Scene, c skewt.Command) {
	switch c.Kind {
	case skewt.KindLine:
		s := strokeFor(c)
		applyStroke(dc, s)
		dc.DrawLine(c.Points[0].X, c.Points[0].Y, c.Points[1].X, c.Points[1].Y)
		dc.Stroke()

	case skewt.KindPolyline:
		s := strokeFor(c)
		applyStroke(dc, s)
		tracePath(dc, c.Points)
		dc.Stroke()

	case skewt.KindPolygon:
		s := strokeFor(c)
		applyStroke(dc, s)
		tracePath(dc, c.Points)
		dc.ClosePath()
		dc.Fill()

	case skewt.KindText:
		rasterText(dc, c)

	case skewt.KindGlyph:
		rasterGlyph(dc, scene, c)
	}
}

func rasterText(dc *gg.Context, c skewt.Command) {
	dc.SetRGB(0.2, 0.2, 0.2)
	if c.Class == skewt.ClassLegend {
		class := skewt.ClassTemperature
		if c.Tier == 1 {
			class = skewt.ClassDewPoint
		}
		r, g, b := hexRGB(strokes[class].Color)
		dc.SetRGB(r, g, b)
	}
	ax := 0.0
	switch c.Anchor {
	case "middle":
		ax = 0.5
	case "end":
		ax = 1.0
	}
	dc.DrawStringAnchored(c.Text, c.At.X, c.At.Y, ax, 0)
}

func rasterGlyph(dc *gg.Context, scene *skewt.Scene, c skewt.Command) {
	g, ok := scene.Glyphs.Glyph(c.GlyphSpeed)
	if !ok {
		return
	}
	s := strokeFor(c)

	dc.Push()
	dc.Translate(c.At.X, c.At.Y)
	dc.Rotate(gg.Radians(c.Rotation))

	applyStroke(dc, s)
	dc.DrawLine(g.Stem.X1, g.Stem.Y1, g.Stem.X2, g.Stem.Y2)
	dc.Stroke()
	for _, l := range g.Lines {
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}
	for _, flag := range g.Flags {
		tracePath(dc, flag)
		dc.ClosePath()
		dc.Fill()
	}

	dc.Pop()
}

func applyStroke(dc *gg.Context, s Stroke) {
	r, g, b := hexRGB(s.Color)
	dc.SetRGBA(r, g, b, s.Opacity)
	dc.SetLineWidth(s.Width)
}

func tracePath(dc *gg.Context, pts []skewt.Point) {
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
			continue
		}
		dc.LineTo(p.X, p.Y)
	}
}
