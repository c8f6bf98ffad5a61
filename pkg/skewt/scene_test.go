package skewt

import (
	"testing"

	"github.com/aerolab/skewt/pkg/sounding"
)

func sceneProfile() *sounding.Profile {
	return &sounding.Profile{
		Site:   "Innsbruck",
		Source: "GFS",
		Samples: []sounding.Sample{
			{Pressure: 1000, Temperature: 25, DewPoint: 20, WindDirection: 160, WindSpeed: 5},
			{Pressure: 850, Temperature: 14, DewPoint: 8, WindDirection: 220, WindSpeed: 12},
			{Pressure: 700, Temperature: 2, DewPoint: -5, WindDirection: 250, WindSpeed: 25},
		},
	}
}

func countByClass(s *Scene) map[Class]int {
	out := make(map[Class]int)
	for _, c := range s.Commands {
		out[c.Class]++
	}
	return out
}

func TestComputeSceneEndToEnd(t *testing.T) {
	// The end-to-end scenario: three fully-defined samples at 750x620 with
	// default margins.
	scene, err := ComputeScene([]*sounding.Profile{sceneProfile()}, Options{
		Width:  750,
		Height: 620,
	})
	if err != nil {
		t.Fatalf("ComputeScene: %v", err)
	}

	// Top pressure derives from the data: max(50, 700-10) = 690.
	if scene.Frame.TopPressure != 690 {
		t.Errorf("top pressure = %v, want 690", scene.Frame.TopPressure)
	}

	counts := countByClass(scene)

	// All standard levels within [690, 1050]: 1000, 850, 700.
	if counts[ClassIsobar] != 3 {
		t.Errorf("got %d isobars, want 3", counts[ClassIsobar])
	}

	// All values defined: exactly one undivided segment per curve.
	if counts[ClassTemperature] != 1 || counts[ClassDewPoint] != 1 {
		t.Errorf("profile segments = %d/%d, want 1/1",
			counts[ClassTemperature], counts[ClassDewPoint])
	}
	for _, c := range scene.Commands {
		if c.Class == ClassTemperature && len(c.Points) != 3 {
			t.Errorf("temperature polyline has %d points, want 3", len(c.Points))
		}
	}

	// Three barbs at plot width, rotated dir+180 mod 360.
	if counts[ClassBarb] != 3 {
		t.Fatalf("got %d barbs, want 3", counts[ClassBarb])
	}
	wantRot := []float64{340, 40, 70}
	i := 0
	for _, c := range scene.Commands {
		if c.Class != ClassBarb {
			continue
		}
		if c.At.X != scene.Frame.Width {
			t.Errorf("barb %d at x=%v, want plot width %v", i, c.At.X, scene.Frame.Width)
		}
		if c.Rotation != wantRot[i] {
			t.Errorf("barb %d rotation = %v, want %v", i, c.Rotation, wantRot[i])
		}
		if _, ok := scene.Glyphs.Glyph(c.GlyphSpeed); !ok {
			t.Errorf("barb %d references missing glyph %d", i, c.GlyphSpeed)
		}
		i++
	}

	if counts[ClassIsothermZero] != 1 {
		t.Errorf("got %d zero isotherms, want 1", counts[ClassIsothermZero])
	}
	if counts[ClassLegend] != 2 {
		t.Errorf("got %d legend entries, want 2", counts[ClassLegend])
	}
}

func TestComputeSceneEmptyProfile(t *testing.T) {
	// Background still renders with the default top pressure; profile lines
	// and barbs are empty.
	scene, err := ComputeScene(nil, Options{})
	if err != nil {
		t.Fatalf("ComputeScene: %v", err)
	}
	if scene.Frame.TopPressure != DefaultTopPressure {
		t.Errorf("top pressure = %v, want default %v", scene.Frame.TopPressure, DefaultTopPressure)
	}

	counts := countByClass(scene)
	if counts[ClassIsotherm] == 0 || counts[ClassIsobar] == 0 || counts[ClassAdiabat] == 0 {
		t.Error("background families should render without data")
	}
	if counts[ClassTemperature] != 0 || counts[ClassDewPoint] != 0 || counts[ClassBarb] != 0 {
		t.Error("data-driven families should be empty without data")
	}
}

func TestComputeSceneSecondaryProfileTier(t *testing.T) {
	mean := sceneProfile()
	mean.Site = "Innsbruck mean"
	scene, err := ComputeScene([]*sounding.Profile{sceneProfile(), mean}, Options{})
	if err != nil {
		t.Fatalf("ComputeScene: %v", err)
	}

	tiers := make(map[int]int)
	for _, c := range scene.Commands {
		if c.Class == ClassTemperature {
			tiers[c.Tier]++
		}
	}
	if tiers[0] != 1 || tiers[1] != 1 {
		t.Errorf("temperature tiers = %v, want one segment each in tiers 0 and 1", tiers)
	}
}

func TestComputeSceneInvalidOptions(t *testing.T) {
	if _, err := ComputeScene(nil, Options{SkewAngle: 180}); err == nil {
		t.Error("skew angle 180 should fail fast")
	}
	if _, err := ComputeScene(nil, Options{TMin: 10, TMax: 10}); err == nil {
		t.Error("zero temperature span should fail fast")
	}
}

func TestComputeScenePure(t *testing.T) {
	// Two identical passes produce identical command lists.
	p := []*sounding.Profile{sceneProfile()}
	a, err := ComputeScene(p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeScene(p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Commands) != len(b.Commands) {
		t.Fatalf("command counts differ: %d vs %d", len(a.Commands), len(b.Commands))
	}
	for i := range a.Commands {
		ca, cb := a.Commands[i], b.Commands[i]
		if ca.Kind != cb.Kind || ca.Class != cb.Class || ca.Rotation != cb.Rotation || ca.Text != cb.Text {
			t.Fatalf("command %d differs between passes", i)
		}
	}
	if a.Glyphs != b.Glyphs {
		t.Error("glyph set should be shared between passes")
	}
}
