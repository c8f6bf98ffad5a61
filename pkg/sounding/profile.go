package sounding

import "math"

// Profile is an ordered sequence of samples from a single sounding, plus the
// labels identifying where it came from. Samples must be monotonic by
// pressure; either direction is accepted, keeping it sorted is the caller's
// responsibility.
type Profile struct {
	Site    string   `json:"site,omitempty"`   // station or site label
	Source  string   `json:"source,omitempty"` // model or observation source label
	Samples []Sample `json:"samples"`
}

// MinPressure returns the smallest pressure in the profile, or 0 if the
// profile is empty.
func (p *Profile) MinPressure() float64 {
	if p == nil || len(p.Samples) == 0 {
		return 0
	}
	min := math.Inf(1)
	for _, s := range p.Samples {
		if s.Pressure < min {
			min = s.Pressure
		}
	}
	return min
}

// Nearest returns the index of the sample whose pressure is closest to p0.
// It bisects by pressure in whichever monotonic direction the samples run,
// bounds the insertion index to [1, len-1], and picks whichever of the two
// neighbouring candidates is closer in absolute pressure difference. The
// second return is false when the profile has fewer than two samples and no
// lookup is possible.
func (p *Profile) Nearest(p0 float64) (int, bool) {
	if p == nil || len(p.Samples) < 2 {
		return 0, false
	}

	descending := p.Samples[0].Pressure > p.Samples[len(p.Samples)-1].Pressure

	// Insertion point: first index at or past p0 in the profile's direction.
	lo, hi := 0, len(p.Samples)
	for lo < hi {
		mid := (lo + hi) / 2
		before := p.Samples[mid].Pressure > p0
		if !descending {
			before = p.Samples[mid].Pressure < p0
		}
		if before {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	i := lo
	if i < 1 {
		i = 1
	}
	if i > len(p.Samples)-1 {
		i = len(p.Samples) - 1
	}

	// Ties go to the higher pressure regardless of direction.
	prev := math.Abs(p.Samples[i-1].Pressure - p0)
	next := math.Abs(p.Samples[i].Pressure - p0)
	if descending {
		if prev <= next {
			return i - 1, true
		}
		return i, true
	}
	if next <= prev {
		return i, true
	}
	return i - 1, true
}
