package skewt

import (
	"fmt"

	"github.com/aerolab/skewt/pkg/sounding"
)

// Margins around the plot area, in pixels. Labels and the legend live in the
// margins; all curve geometry is relative to the plot origin.
const (
	MarginLeft   = 40.0
	MarginTop    = 20.0
	MarginRight  = 40.0
	MarginBottom = 20.0
)

// Legend placement relative to the plot's top-left corner.
const (
	legendOffsetX = 8.0
	legendOffsetY = 14.0
	legendSpacing = 14.0
)

// Options configures a render pass. The zero value renders a default chart.
type Options struct {
	Width, Height float64            // overall diagram size in pixels
	Unit          sounding.SpeedUnit // wind speed display unit
	SkewAngle     float64            // degrees
	BarbSize      float64            // stem length for wind barbs
	TMin, TMax    float64            // temperature domain override
}

// Scene is the complete computed geometry of one render pass: the coordinate
// frame, the shared glyph set and the ordered draw command list. Once built
// it is read-only; a superseding render pass simply replaces it.
type Scene struct {
	Width, Height float64
	Frame         *Frame
	Glyphs        *GlyphSet
	Commands      []Command
}

// ComputeScene builds the full diagram geometry for the given profiles. The
// first profile is the primary one and drives the top pressure derivation
// and the probe; further profiles are drawn with thinner strokes. An empty
// or nil profile list still renders the background with the default top
// pressure.
//
// ComputeScene is pure: it retains no state across calls except the glyph
// set memoized by barb size.
func ComputeScene(profiles []*sounding.Profile, opts Options) (*Scene, error) {
	var primary *sounding.Profile
	if len(profiles) > 0 {
		primary = profiles[0]
	}

	if opts.Width == 0 {
		opts.Width = MarginLeft + DefaultWidth + MarginRight
	}
	if opts.Height == 0 {
		opts.Height = MarginTop + DefaultHeight + MarginBottom
	}
	if !opts.Unit.Valid() {
		opts.Unit = sounding.DefaultSpeedUnit
	}

	frame, err := NewFrame(FrameConfig{
		Width:       opts.Width - MarginLeft - MarginRight,
		Height:      opts.Height - MarginTop - MarginBottom,
		TMin:        opts.TMin,
		TMax:        opts.TMax,
		TopPressure: TopPressureFor(primary),
		SkewAngle:   opts.SkewAngle,
	})
	if err != nil {
		return nil, err
	}

	scene := &Scene{
		Width:  opts.Width,
		Height: opts.Height,
		Frame:  frame,
		Glyphs: GlyphSetFor(opts.BarbSize),
	}

	appendBackground(scene, frame)
	for tier, p := range profiles {
		appendProfile(scene, frame, p, tier)
	}
	appendBarbs(scene, frame, primary)
	appendLabels(scene, frame, primary)

	return scene, nil
}

func appendBackground(scene *Scene, f *Frame) {
	bg := BuildBackground(f)
	for _, ad := range bg.Adiabats {
		scene.Commands = append(scene.Commands, Command{
			Kind:   KindPolyline,
			Class:  ClassAdiabat,
			Points: ad.Points,
		})
	}
	for _, iso := range bg.Isotherms {
		class := ClassIsotherm
		if iso.Zero {
			class = ClassIsothermZero
		}
		scene.Commands = append(scene.Commands, line(class, iso.From.X, iso.From.Y, iso.To.X, iso.To.Y))
	}
	for _, iso := range bg.Isobars {
		scene.Commands = append(scene.Commands, line(ClassIsobar, 0, iso.Y, f.Width, iso.Y))
		scene.Commands = append(scene.Commands, text(ClassLabel,
			fmt.Sprintf("%.0f", iso.Pressure), Point{-6, iso.Y + 4}, "end"))
	}
}

func appendProfile(scene *Scene, f *Frame, p *sounding.Profile, tier int) {
	lines := BuildProfileLines(f, p)
	for _, seg := range lines.Temperature {
		scene.Commands = append(scene.Commands, Command{
			Kind:   KindPolyline,
			Class:  ClassTemperature,
			Points: seg,
			Tier:   tier,
		})
	}
	for _, seg := range lines.DewPoint {
		scene.Commands = append(scene.Commands, Command{
			Kind:   KindPolyline,
			Class:  ClassDewPoint,
			Points: seg,
			Tier:   tier,
		})
	}
}

func appendBarbs(scene *Scene, f *Frame, p *sounding.Profile) {
	for _, b := range PlaceBarbs(f, p) {
		scene.Commands = append(scene.Commands, Command{
			Kind:       KindGlyph,
			Class:      ClassBarb,
			At:         b.At,
			Rotation:   b.Rotation,
			GlyphSpeed: b.Speed,
		})
	}
}

func appendLabels(scene *Scene, f *Frame, p *sounding.Profile) {
	title := "SkewT-logP"
	if p != nil && p.Site != "" {
		title = p.Site
		if p.Source != "" {
			title = fmt.Sprintf("%s / %s", p.Site, p.Source)
		}
	}
	temp := text(ClassLegend, "Temperature", Point{legendOffsetX, legendOffsetY}, "start")
	dwpt := text(ClassLegend, "Dew point", Point{legendOffsetX, legendOffsetY + legendSpacing}, "start")
	dwpt.Tier = 1 // lets the sink color legend entries by curve
	scene.Commands = append(scene.Commands,
		text(ClassTitle, title, Point{f.Width / 2, -6}, "middle"),
		temp, dwpt,
	)
}
