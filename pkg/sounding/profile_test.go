package sounding

import "testing"

func profileAt(pressures ...float64) *Profile {
	p := &Profile{}
	for _, press := range pressures {
		p.Samples = append(p.Samples, NewSample(press))
	}
	return p
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name      string
		pressures []float64
		probe     float64
		wantIdx   int
		wantOK    bool
	}{
		{
			name:      "between levels picks closer",
			pressures: []float64{1000, 850, 700, 500},
			probe:     780,
			wantIdx:   1, // 850 is 70 away, 700 is 80 away
			wantOK:    true,
		},
		{
			name:      "exact level",
			pressures: []float64{1000, 850, 700, 500},
			probe:     700,
			wantIdx:   2,
			wantOK:    true,
		},
		{
			name:      "below surface clamps to first pair",
			pressures: []float64{1000, 850, 700},
			probe:     1050,
			wantIdx:   0,
			wantOK:    true,
		},
		{
			name:      "above top clamps to last pair",
			pressures: []float64{1000, 850, 700},
			probe:     400,
			wantIdx:   2,
			wantOK:    true,
		},
		{
			name:      "midpoint ties to lower level",
			pressures: []float64{1000, 900},
			probe:     950,
			wantIdx:   0,
			wantOK:    true,
		},
		{
			name:      "ascending between levels picks closer",
			pressures: []float64{500, 700, 850, 1000},
			probe:     600,
			wantIdx:   1, // 500 and 700 are both 100 away, tie goes to the higher pressure
			wantOK:    true,
		},
		{
			name:      "ascending near top",
			pressures: []float64{500, 700, 850, 1000},
			probe:     520,
			wantIdx:   0,
			wantOK:    true,
		},
		{
			name:      "ascending near surface",
			pressures: []float64{500, 700, 850, 1000},
			probe:     990,
			wantIdx:   3,
			wantOK:    true,
		},
		{
			name:      "ascending exact level",
			pressures: []float64{500, 700, 850, 1000},
			probe:     850,
			wantIdx:   2,
			wantOK:    true,
		},
		{
			name:      "single sample has no lookup",
			pressures: []float64{1000},
			probe:     1000,
			wantOK:    false,
		},
		{
			name:   "empty profile has no lookup",
			probe:  500,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := profileAt(tt.pressures...).Nearest(tt.probe)
			if ok != tt.wantOK {
				t.Fatalf("Nearest(%v) ok = %v, want %v", tt.probe, ok, tt.wantOK)
			}
			if ok && idx != tt.wantIdx {
				t.Errorf("Nearest(%v) = %d, want %d", tt.probe, idx, tt.wantIdx)
			}
		})
	}
}

func TestMinPressure(t *testing.T) {
	if got := profileAt(1000, 850, 700).MinPressure(); got != 700 {
		t.Errorf("MinPressure() = %v, want 700", got)
	}
	if got := profileAt().MinPressure(); got != 0 {
		t.Errorf("MinPressure() on empty = %v, want 0", got)
	}
	var nilProfile *Profile
	if got := nilProfile.MinPressure(); got != 0 {
		t.Errorf("MinPressure() on nil = %v, want 0", got)
	}
}

func TestSampleDefinedness(t *testing.T) {
	tests := []struct {
		name     string
		sample   Sample
		hasTemp  bool
		hasDwpt  bool
		hasWind  bool
		hasHght  bool
	}{
		{
			name:    "fully defined",
			sample:  Sample{Pressure: 1000, Height: 111, Temperature: 25, DewPoint: 20, WindDirection: 160, WindSpeed: 5},
			hasTemp: true, hasDwpt: true, hasWind: true, hasHght: true,
		},
		{
			name:    "fresh sample is all missing",
			sample:  NewSample(850),
			hasTemp: false, hasDwpt: false, hasWind: false, hasHght: false,
		},
		{
			name:    "sentinel temperature",
			sample:  Sample{Pressure: 700, Temperature: -9999, DewPoint: -5, WindDirection: 0, WindSpeed: 0},
			hasTemp: false, hasDwpt: true, hasWind: true, hasHght: true,
		},
		{
			name:    "threshold itself is missing",
			sample:  Sample{Pressure: 700, Temperature: MissingThreshold, DewPoint: MissingThreshold, WindDirection: Missing, WindSpeed: Missing},
			hasTemp: false, hasDwpt: false, hasWind: false, hasHght: true,
		},
		{
			name:    "negative direction kills wind",
			sample:  Sample{Pressure: 500, WindDirection: -1, WindSpeed: 12},
			hasTemp: true, hasDwpt: true, hasWind: false, hasHght: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sample.HasTemperature(); got != tt.hasTemp {
				t.Errorf("HasTemperature() = %v, want %v", got, tt.hasTemp)
			}
			if got := tt.sample.HasDewPoint(); got != tt.hasDwpt {
				t.Errorf("HasDewPoint() = %v, want %v", got, tt.hasDwpt)
			}
			if got := tt.sample.HasWind(); got != tt.hasWind {
				t.Errorf("HasWind() = %v, want %v", got, tt.hasWind)
			}
			if got := tt.sample.HasHeight(); got != tt.hasHght {
				t.Errorf("HasHeight() = %v, want %v", got, tt.hasHght)
			}
		})
	}
}
