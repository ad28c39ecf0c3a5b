// Package motion holds the scroll and pointer reactive primitives used by
// both front ends: viewport telemetry, reveal triggers, stagger sequencing,
// the particle field, the cycling typewriter and the named animation presets.
//
// Primitives own their timers and listeners. Each one exposes Close or Stop,
// after which nothing it scheduled is left pending.
package motion
