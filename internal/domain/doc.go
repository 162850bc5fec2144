// Package domain models a simulated river-gauge fleet and the pure
// per-cycle functions that evolve it.
//
// # Reading Model
//
// Each station reports a water level in meters. Levels evolve once per
// cycle as a biased random walk with fat-tailed upward jumps:
//
//	delta = (U(0,1) − 0.45) × 0.08
//
// The base term is uniform over a range centered slightly below zero, so
// long runs drift gently downward or hold steady. With probability 0.08 a
// one-sided surge of up to 0.18 m is added, modeling sudden rises such as
// upstream rainfall. Surges only push levels up, never down. The result is
// clamped to ≥ 0 and rounded to two decimals. This is deliberately not a
// hydrological model; the goal is visually plausible, occasionally alarming
// telemetry.
//
// Stations also flip an independent online coin each cycle (P=0.98 online).
// Connectivity does not affect the reading, only the fleet counts renderers
// display.
//
// # Status Classification
//
// Status is a pure function of the current and previous reading:
//
//	alert  level ≥ 1.20 m (absolute threshold, checked first)
//	watch  level − prevLevel ≥ 0.1125 m (75% of the 0.15 m surge-per-tick)
//	ok     otherwise
//
// A station at or above the absolute threshold is always alert, even when
// its delta also qualifies as a surge.
//
// # Bounded Buffers
//
// Alert events are kept most-recent-first in a log capped at 200 entries;
// a cycle's events are prepended in station processing order and the tail
// is evicted past the cap. The cap is count-based, not time-windowed.
//
// Every station carries a series of at most 60 points (≈5 minutes at the
// default 5 s cycle), oldest evicted first. Historical points are never
// rewritten.
//
// # Bootstrap
//
// The first cycle after initialization classifies stations and appends the
// initial series point but never emits alert events, regardless of status.
package domain
