package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `{
  "site": "Innsbruck",
  "source": "GFS",
  "samples": [
    {"press": 1000, "hght": 111, "temp": 25.0, "dwpt": 20.0, "wdir": 160, "wspd": 5.0},
    {"press": 850, "temp": 14.0},
    {"press": 700}
  ]
}`

func TestReadJSON(t *testing.T) {
	p, err := ReadJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if p.Site != "Innsbruck" || p.Source != "GFS" {
		t.Errorf("labels = %q/%q", p.Site, p.Source)
	}
	if len(p.Samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(p.Samples))
	}

	full := p.Samples[0]
	if !full.HasTemperature() || !full.HasDewPoint() || !full.HasWind() || !full.HasHeight() {
		t.Error("fully populated sample lost fields")
	}

	partial := p.Samples[1]
	if !partial.HasTemperature() {
		t.Error("partial sample lost its temperature")
	}
	if partial.HasDewPoint() || partial.HasWind() || partial.HasHeight() {
		t.Error("absent fields must decode as missing")
	}

	bare := p.Samples[2]
	if bare.HasTemperature() || bare.HasDewPoint() || bare.HasWind() {
		t.Error("pressure-only sample must be all missing")
	}
}

func TestReadJSONRejectsBadPressure(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero pressure", `{"samples": [{"press": 0}]}`},
		{"negative pressure", `{"samples": [{"press": -850}]}`},
		{"malformed json", `{"samples": [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.doc)); err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p, err := ReadJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(p, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.Contains(buf.String(), "-9999") {
		t.Error("sentinel values must not leak into the output")
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if len(back.Samples) != len(p.Samples) {
		t.Fatalf("round trip lost samples: %d vs %d", len(back.Samples), len(p.Samples))
	}
	for i := range p.Samples {
		if p.Samples[i] != back.Samples[i] {
			t.Errorf("sample %d changed in round trip:\n  was %+v\n  got %+v", i, p.Samples[i], back.Samples[i])
		}
	}
}

func TestImportExportJSON(t *testing.T) {
	p, err := ReadJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "sounding.json")
	if err := ExportJSON(p, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if back.Site != p.Site || len(back.Samples) != len(p.Samples) {
		t.Error("file round trip lost data")
	}

	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should error")
	}
}
