// Package netcdf loads sounding profiles from NetCDF radiosonde files.
//
// The expected layout is one dimension ("pressure", hPa, surface first) with
// per-level variables "height", "temperature", "dewpoint", "wind_direction"
// and "wind_speed". Missing readings are marked with fill values at or below
// the sounding package's sentinel threshold, which this loader passes through
// unchanged; anything the file does not provide becomes an explicit Missing
// sentinel.
package netcdf

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/aerolab/skewt/pkg/sounding"
)

// Variable names looked up in the file. Pressure is required, the rest are
// optional per-level metrics.
const (
	varPressure = "pressure"
	varHeight   = "height"
	varTemp     = "temperature"
	varDewPoint = "dewpoint"
	varWindDir  = "wind_direction"
	varWindSpd  = "wind_speed"
)

// Global attributes carried into the profile labels when present.
const (
	attrSite   = "site"
	attrSource = "source"
)

// Load reads a sounding profile from the NetCDF file at path.
func Load(path string) (*sounding.Profile, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer nc.Close()
	return read(nc)
}

func read(nc api.Group) (*sounding.Profile, error) {
	pressures, err := levelValues(nc, varPressure)
	if err != nil {
		return nil, fmt.Errorf("pressure dimension: %w", err)
	}

	p := &sounding.Profile{
		Site:   stringAttr(nc, attrSite),
		Source: stringAttr(nc, attrSource),
	}
	p.Samples = make([]sounding.Sample, len(pressures))
	for i, press := range pressures {
		if press <= 0 {
			return nil, fmt.Errorf("level %d: pressure must be positive, got %v", i, press)
		}
		p.Samples[i] = sounding.NewSample(press)
	}

	assign := func(name string, set func(s *sounding.Sample, v float64)) error {
		vals, err := levelValues(nc, name)
		if err != nil {
			// Optional metric: a file without it just yields missing readings.
			return nil
		}
		if len(vals) != len(pressures) {
			return fmt.Errorf("%s: %d values for %d levels", name, len(vals), len(pressures))
		}
		for i, v := range vals {
			set(&p.Samples[i], v)
		}
		return nil
	}

	steps := []struct {
		name string
		set  func(s *sounding.Sample, v float64)
	}{
		{varHeight, func(s *sounding.Sample, v float64) { s.Height = v }},
		{varTemp, func(s *sounding.Sample, v float64) { s.Temperature = v }},
		{varDewPoint, func(s *sounding.Sample, v float64) { s.DewPoint = v }},
		{varWindDir, func(s *sounding.Sample, v float64) { s.WindDirection = v }},
		{varWindSpd, func(s *sounding.Sample, v float64) { s.WindSpeed = v }},
	}
	for _, st := range steps {
		if err := assign(st.name, st.set); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// levelValues fetches a per-level variable as float64 regardless of the
// on-disk element type.
func levelValues(nc api.Group, name string) ([]float64, error) {
	vg, err := nc.GetVarGetter(name)
	if err != nil {
		return nil, err
	}
	v, err := vg.Values()
	if err != nil {
		return nil, err
	}
	switch vals := v.(type) {
	case []float64:
		return vals, nil
	case []float32:
		out := make([]float64, len(vals))
		for i, f := range vals {
			out[i] = float64(f)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(vals))
		for i, n := range vals {
			out[i] = float64(n)
		}
		return out, nil
	case []int16:
		out := make([]float64, len(vals))
		for i, n := range vals {
			out[i] = float64(n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: unsupported element type %T", name, v)
	}
}

// stringAttr reads a global string attribute, returning "" when absent.
func stringAttr(nc api.Group, name string) string {
	attrs := nc.Attributes()
	if attrs == nil {
		return ""
	}
	v, ok := attrs.Get(name)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
