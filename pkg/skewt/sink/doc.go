// Package sink serializes computed SkewT scenes into output formats.
//
// The scene is a list of screen-space draw commands; sinks only materialize
// them. Two formats are supported:
//
//   - SVG: the canonical vector serialization ([RenderSVG])
//   - PNG: direct rasterization of the same command list ([RenderPNG])
//
// Stroke colors, widths and opacities are fixed per curve class in one shared
// style table so the two sinks cannot drift apart.
//
// [Export] implements the file export contract: render, rasterize and save as
// SkewT-{site}-{source}.png, or hand the SVG bytes to a caller-supplied
// handler and skip rasterization entirely.
package sink
