package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aerolab/skewt/pkg/sounding"
)

// wire types use pointers so absent optional fields are distinguishable from
// zero readings and can be mapped onto the sentinel convention.
type document struct {
	Site    string `json:"site,omitempty"`
	Source  string `json:"source,omitempty"`
	Samples []record `json:"samples"`
}

type record struct {
	Pressure      float64  `json:"press"`
	Height        *float64 `json:"hght,omitempty"`
	Temperature   *float64 `json:"temp,omitempty"`
	DewPoint      *float64 `json:"dwpt,omitempty"`
	WindDirection *float64 `json:"wdir,omitempty"`
	WindSpeed     *float64 `json:"wspd,omitempty"`
}

// ReadJSON decodes a profile document from r.
//
// Samples must carry a positive pressure; everything else is optional and
// absent fields become Missing sentinels. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*sounding.Profile, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	p := &sounding.Profile{Site: doc.Site, Source: doc.Source}
	for i, rec := range doc.Samples {
		if rec.Pressure <= 0 {
			return nil, fmt.Errorf("sample %d: pressure must be positive, got %v", i, rec.Pressure)
		}
		s := sounding.NewSample(rec.Pressure)
		if rec.Height != nil {
			s.Height = *rec.Height
		}
		if rec.Temperature != nil {
			s.Temperature = *rec.Temperature
		}
		if rec.DewPoint != nil {
			s.DewPoint = *rec.DewPoint
		}
		if rec.WindDirection != nil {
			s.WindDirection = *rec.WindDirection
		}
		if rec.WindSpeed != nil {
			s.WindSpeed = *rec.WindSpeed
		}
		p.Samples = append(p.Samples, s)
	}
	return p, nil
}

// WriteJSON encodes a profile as an indented JSON document. Fields holding
// the Missing sentinel are omitted, so the output can be re-imported with
// [ReadJSON] for a lossless round trip.
func WriteJSON(p *sounding.Profile, w io.Writer) error {
	doc := document{
		Site:    p.Site,
		Source:  p.Source,
		Samples: make([]record, len(p.Samples)),
	}
	for i, s := range p.Samples {
		rec := record{Pressure: s.Pressure}
		if s.HasHeight() {
			h := s.Height
			rec.Height = &h
		}
		if s.HasTemperature() {
			t := s.Temperature
			rec.Temperature = &t
		}
		if s.HasDewPoint() {
			d := s.DewPoint
			rec.DewPoint = &d
		}
		if s.HasWind() {
			dir, spd := s.WindDirection, s.WindSpeed
			rec.WindDirection = &dir
			rec.WindSpeed = &spd
		}
		doc.Samples[i] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads a profile document from the file at path.
func ImportJSON(path string) (*sounding.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes a profile to a JSON file at path.
func ExportJSON(p *sounding.Profile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}
