// Package pkg provides the core libraries for SkewT-logP sounding diagrams.
//
// # Overview
//
// Skewt plots atmospheric soundings on the SkewT-logP projection: a linear
// temperature axis sheared by a fixed angle against a logarithmic pressure
// axis, so dry adiabats and isotherms open into a readable grid. The pkg
// directory is organized into four main areas:
//
//  1. [skewt] - Domain logic (coordinate frame, isopleth geometry, probe)
//  2. [sounding] - Data model (samples, profiles, units, NetCDF reader)
//  3. [pipeline] - Orchestration (load → scene → render)
//  4. [cache], [archive] - Infrastructure (render cache, sounding storage)
//
// # Architecture
//
// The typical data flow:
//
//	Sounding document (JSON / NetCDF)
//	         ↓
//	    [sounding] package (samples, definedness, units)
//	         ↓
//	    [skewt] package (frame + background + profile geometry)
//	         ↓
//	    [skewt/sink] package (SVG serialization, PNG rasterization)
//	         ↓
//	    SVG/PNG output
//
// # Quick Start
//
// Load a sounding and render it:
//
//	import (
//	    "github.com/aerolab/skewt/pkg/io"
//	    "github.com/aerolab/skewt/pkg/skewt"
//	    "github.com/aerolab/skewt/pkg/skewt/sink"
//	    "github.com/aerolab/skewt/pkg/sounding"
//	)
//
//	// 1. Load the profile
//	profile, _ := io.ImportJSON("sounding.json")
//
//	// 2. Compute the scene
//	scene, _ := skewt.ComputeScene([]*sounding.Profile{profile}, skewt.Options{})
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(scene)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [skewt] - The diagram geometry: the coordinate frame (linear temperature,
// log pressure, skew shear), background isopleths (isotherms, isobars, dry
// adiabats), profile polylines with gap handling, wind barb glyphs and the
// nearest-sample hover probe. Scene computation is pure; the result is an
// ordered draw command list consumed by sinks.
//
// [skewt/sink] - Output serialization: SVG with embedded hover styles, PNG
// rasterization via fogleman/gg, and the export contract used by hosts.
//
// [sounding] - The data model: pressure-ordered samples with sentinel-based
// definedness, wind speed units and conversions, and profile lookup by
// pressure. The netcdf subpackage reads profiles from NetCDF files.
//
// [io] - The JSON document format for soundings (import and export).
//
// ## Infrastructure
//
// [pipeline] - Complete rendering pipeline (load → scene → render) used by
// CLI and server. Ensures consistent behavior across all entry points and
// carries the caching layer.
//
// [cache] - Content-addressed caching for computed scenes and rendered
// artifacts. FileCache for CLI, RedisCache for multi-instance servers,
// NullCache for tests.
//
// [archive] - Durable storage for uploaded soundings: MemoryStore for
// development, MongoStore with TTL expiration for production.
//
// [config] - Layered configuration: defaults, TOML file, SKEWT_* environment
// variables.
//
// [observability] - Hook interfaces for render, probe and cache
// instrumentation, with no-op defaults.
//
// [errors] - Structured errors with stable codes shared by all layers.
//
// [buildinfo] - Version information injected at build time via ldflags.
package pkg
