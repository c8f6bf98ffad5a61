package sink

import (
	"strings"
	"testing"

	"github.com/aerolab/skewt/pkg/skewt"
	"github.com/aerolab/skewt/pkg/sounding"
)

func testScene(t *testing.T) *skewt.Scene {
	t.Helper()
	p := &sounding.Profile{
		Site:   "Innsbruck <LOWI>",
		Source: "GFS",
		Samples: []sounding.Sample{
			{Pressure: 1000, Temperature: 25, DewPoint: 20, WindDirection: 160, WindSpeed: 5},
			{Pressure: 850, Temperature: 14, DewPoint: 8, WindDirection: 220, WindSpeed: 12},
			{Pressure: 700, Temperature: 2, DewPoint: -5, WindDirection: 250, WindSpeed: 25},
		},
	}
	scene, err := skewt.ComputeScene([]*sounding.Profile{p}, skewt.Options{Width: 750, Height: 620})
	if err != nil {
		t.Fatalf("ComputeScene: %v", err)
	}
	return scene
}

func TestRenderSVGStructure(t *testing.T) {
	svg := string(RenderSVG(testScene(t)))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Fatal("missing svg root element")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Fatal("unterminated svg document")
	}
	if !strings.Contains(svg, `viewBox="0 0 750.0 620.0"`) {
		t.Error("missing viewBox with requested dimensions")
	}

	for _, class := range []string{"isotherm", "isotherm-zero", "isobar", "adiabat", "temperature", "dewpoint", "barb"} {
		if !strings.Contains(svg, `class="`+class+`"`) {
			t.Errorf("missing %q elements", class)
		}
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	svg := string(RenderSVG(testScene(t)))
	if strings.Contains(svg, "<LOWI>") {
		t.Error("site label not XML-escaped")
	}
	if !strings.Contains(svg, "&lt;LOWI&gt;") {
		t.Error("escaped site label missing")
	}
}

func TestRenderSVGBarbTransforms(t *testing.T) {
	svg := string(RenderSVG(testScene(t)))
	// One combined translate+rotate per placement, no incremental transforms.
	for _, rot := range []string{"rotate(340.0)", "rotate(40.0)", "rotate(70.0)"} {
		if !strings.Contains(svg, rot) {
			t.Errorf("missing barb transform %s", rot)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	scene := testScene(t)

	plain := string(RenderSVG(scene, WithoutHoverStyles()))
	if strings.Contains(plain, "<style>") {
		t.Error("WithoutHoverStyles should drop the style block")
	}

	dark := string(RenderSVG(scene, WithBackground("#101010")))
	if !strings.Contains(dark, `fill="#101010"`) {
		t.Error("WithBackground not applied")
	}
}

func TestRenderSVGProfileTiers(t *testing.T) {
	p := &sounding.Profile{Samples: []sounding.Sample{
		{Pressure: 1000, Temperature: 25, DewPoint: 20},
		{Pressure: 850, Temperature: 14, DewPoint: 8},
	}}
	scene, err := skewt.ComputeScene([]*sounding.Profile{p, p}, skewt.Options{})
	if err != nil {
		t.Fatal(err)
	}
	svg := string(RenderSVG(scene))
	if !strings.Contains(svg, `stroke-width="3.00"`) {
		t.Error("primary profile should use the 3px tier")
	}
	if !strings.Contains(svg, `stroke-width="2.50"`) {
		t.Error("secondary profile should use the 2.5px tier")
	}
}
