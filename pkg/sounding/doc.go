// Package sounding defines the atmospheric sounding data model.
//
// A sounding is an ordered sequence of observations ([Sample]) taken at
// decreasing pressure (increasing altitude), typically from a radiosonde
// ascent. Samples are immutable inputs owned by the caller; nothing in this
// module mutates them.
//
// # Missing values
//
// Optional fields use a numeric sentinel convention inherited from common
// sounding feeds: a temperature or dew point at or below -1000 means "no
// reading", and a negative wind direction or speed means "no wind reading".
// The [Sample.HasTemperature], [Sample.HasDewPoint] and [Sample.HasWind]
// predicates are the single source of truth for this policy; rendering and
// probing code must never re-implement the threshold checks.
//
// # Ordering
//
// Binary-search lookups assume samples are ordered surface-first, i.e. by
// strictly decreasing pressure. Keeping that invariant is the caller's
// responsibility.
package sounding
