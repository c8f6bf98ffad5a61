package skewt

import (
	"math"
	"sync"

	"github.com/aerolab/skewt/pkg/sounding"
)

// DefaultBarbSize is the stem length of a wind barb glyph in pixels.
const DefaultBarbSize = 25.0

// Speed bucket bounds for the glyph set, in knots.
const (
	minBucket  = 5
	maxBucket  = 100
	bucketStep = 5
)

// Pixel budget each barb element consumes walking inward from the stem tip.
const (
	flagAdvance    = 7.0
	pennantAdvance = 3.0
	barbHeight     = 9.0
)

// GlyphLine is one line segment of a barb glyph, in glyph-local coordinates:
// the stem runs along +x from the origin, elements rise toward -y.
type GlyphLine struct {
	X1, Y1, X2, Y2 float64
}

// Glyph is the reusable geometry for one speed bucket: a stem, diagonal
// pennant lines, and filled triangular flags.
type Glyph struct {
	Speed int // bucket value in knots, a multiple of 5
	Stem  GlyphLine
	Lines []GlyphLine // pennants and half-pennants
	Flags [][]Point   // filled triangles
}

// GlyphDecomposition reports how a bucket splits into barb elements.
type GlyphDecomposition struct {
	Flags        int // 50 kt each
	Pennants     int // 10 kt each
	HalfPennants int // 5 kt each
}

// Decompose splits a speed bucket into flags, pennants and half-pennants.
// The bucket must be a multiple of 5; rounding raw speeds onto the bucket
// grid is the caller's job (see Bucket).
func Decompose(bucket int) GlyphDecomposition {
	flags := bucket / 50
	rem := bucket - flags*50
	pennants := rem / 10
	rem -= pennants * 10
	return GlyphDecomposition{
		Flags:        flags,
		Pennants:     pennants,
		HalfPennants: rem / 5,
	}
}

// Bucket converts a wind speed in m/s to its 5-knot glyph bucket. Speeds
// below the smallest bucket return 0 (no glyph); speeds beyond the largest
// bucket clamp to it.
func Bucket(speedMS float64) int {
	kt := sounding.ConvertSpeed(speedMS, sounding.UnitKT)
	bucket := int(math.Round(kt/bucketStep)) * bucketStep
	if bucket < minBucket {
		return 0
	}
	if bucket > maxBucket {
		return maxBucket
	}
	return bucket
}

// GlyphSet maps speed buckets to glyph geometry. It is built once per barb
// size and shared read-only by every placement in a render pass.
type GlyphSet struct {
	BarbSize float64
	glyphs   map[int]Glyph
}

// Glyph returns the cached glyph for a bucket value.
func (s *GlyphSet) Glyph(bucket int) (Glyph, bool) {
	g, ok := s.glyphs[bucket]
	return g, ok
}

// glyphSets memoizes glyph sets by barb size, so repeated render passes with
// the same size share one set.
var glyphSets sync.Map // float64 -> *GlyphSet

// GlyphSetFor returns the memoized glyph set for the given barb size,
// building it on first use.
func GlyphSetFor(barbSize float64) *GlyphSet {
	if barbSize <= 0 {
		barbSize = DefaultBarbSize
	}
	if v, ok := glyphSets.Load(barbSize); ok {
		return v.(*GlyphSet)
	}
	set := &GlyphSet{BarbSize: barbSize, glyphs: make(map[int]Glyph)}
	// Bucket 0 is the bare stem drawn for winds below the first bucket.
	for bucket := 0; bucket <= maxBucket; bucket += bucketStep {
		set.glyphs[bucket] = buildGlyph(bucket, barbSize)
	}
	actual, _ := glyphSets.LoadOrStore(barbSize, set)
	return actual.(*GlyphSet)
}

// buildGlyph synthesizes one glyph: a fixed-length stem, then flags,
// pennants and half-pennants walking inward from the tip.
func buildGlyph(bucket int, barbSize float64) Glyph {
	g := Glyph{
		Speed: bucket,
		Stem:  GlyphLine{0, 0, barbSize, 0},
	}
	d := Decompose(bucket)

	px := barbSize
	for i := 0; i < d.Flags; i++ {
		g.Flags = append(g.Flags, []Point{
			{px, 0},
			{px - flagAdvance, 0},
			{px, -barbHeight},
		})
		px -= flagAdvance
	}
	for i := 0; i < d.Pennants; i++ {
		g.Lines = append(g.Lines, GlyphLine{px, 0, px + pennantAdvance, -barbHeight})
		px -= pennantAdvance
	}
	for i := 0; i < d.HalfPennants; i++ {
		g.Lines = append(g.Lines, GlyphLine{px, 0, px + pennantAdvance/2, -barbHeight / 2})
		px -= pennantAdvance
	}
	return g
}

// BarbPlacement positions one glyph instance on the chart: translated to At
// and rotated by Rotation degrees in a single combined transform. Barbs
// point into the wind, so the stored "from" direction is flipped by 180.
type BarbPlacement struct {
	At       Point
	Rotation float64
	Speed    int // glyph bucket in knots
}

// PlaceBarbs selects and positions glyphs for every sample with a valid,
// displayable wind reading: direction and speed present and non-negative,
// pressure within the displayed range. Winds below the first bucket place
// the bare-stem glyph.
func PlaceBarbs(f *Frame, p *sounding.Profile) []BarbPlacement {
	if p == nil {
		return nil
	}
	var out []BarbPlacement
	for _, s := range p.Samples {
		if !s.HasWind() || s.Pressure < f.TopPressure {
			continue
		}
		out = append(out, BarbPlacement{
			At:       Point{f.Width, f.YForPressure(s.Pressure)},
			Rotation: math.Mod(s.WindDirection+180, 360),
			Speed:    Bucket(s.WindSpeed),
		})
	}
	return out
}
