// Package io provides JSON import and export for sounding profiles.
//
// # JSON Format
//
// A profile document carries the site and source labels plus the sample
// array, surface first:
//
//	{
//	  "site": "Innsbruck",
//	  "source": "GFS",
//	  "samples": [
//	    {"press": 1000, "hght": 111, "temp": 25.0, "dwpt": 20.0, "wdir": 160, "wspd": 5.0},
//	    {"press": 850, "temp": 14.0, "dwpt": 8.0}
//	  ]
//	}
//
// Every field except "press" is optional. An absent field decodes to the
// sounding package's Missing sentinel, so downstream definedness checks see
// absent and sentinel-marked readings identically. Export performs the
// reverse mapping: sentinel values are omitted from the output so the
// round trip is lossless.
//
// Use [ReadJSON]/[WriteJSON] for streams and [ImportJSON]/[ExportJSON] for
// file paths.
package io
