// Package skewt computes the geometry of a SkewT-logP sounding diagram.
//
// # Overview
//
// A SkewT-logP diagram plots temperature against pressure with the
// temperature axis skewed by a fixed angle and the pressure axis logarithmic
// (pressure decreasing upward). This package is the coordinate transform and
// geometry engine only: it maps (pressure, temperature, wind) space into
// screen space and produces drawable primitives. It never touches a drawing
// surface itself; the sink subpackage and any host renderer consume the
// [Scene] it emits.
//
// # Pipeline
//
//	frame, err := skewt.NewFrame(cfg)          // scales + skew transform
//	scene := skewt.ComputeScene(profile, opts) // background, lines, barbs, labels
//	svg := sink.RenderSVG(scene, ...)          // serialize (sink subpackage)
//
// [ComputeScene] is pure: given the same profile and options it produces the
// same commands, and it retains no state across calls apart from the wind
// glyph set, which is memoized by barb size.
//
// # Interactive probing
//
// The [Probe] type implements the hover lookup: the host translates pointer
// events into pixel coordinates, and the probe inverts the pressure scale and
// bisects the profile to find the nearest sample. See [Probe.Move].
package skewt
