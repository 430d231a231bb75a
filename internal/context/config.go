// Package ctxengine assembles a bounded-size context window of prior
// conversation history for a stateless model session: active-thread
// detection, priority tiering, transcript/summary rendering, and
// character-budget allocation.
package ctxengine

import "time"

// Config holds the tuning knobs for the context engine. All knobs are
// explicit call-time configuration; the engine keeps no process-global state.
type Config struct {
	// MaxContextChars is the character budget for assembled history.
	// Fixed status and annotation text does not count against it.
	MaxContextChars int

	// LivenessWindow bounds both how stale the most recent conversation may
	// be to count as live, and the maximum gap between consecutive
	// conversations when extending the active thread backward.
	LivenessWindow time.Duration

	// TruncationFloor is the minimum remaining budget required to attempt
	// head/tail truncation instead of dropping a block outright.
	TruncationFloor int

	// HeadFraction and TailFraction control the head/tail split when an
	// active-thread block is truncated: the head keeps HeadFraction of the
	// remaining budget, the tail keeps TailFraction.
	HeadFraction float64
	TailFraction float64

	// Location is the time zone for calendar-date comparisons (today vs
	// yesterday). Defaults to time.Local.
	Location *time.Location
}

// withDefaults returns a copy of cfg with zero-valued fields replaced by
// sensible defaults.
func (cfg Config) withDefaults() Config {
	if cfg.MaxContextChars == 0 {
		cfg.MaxContextChars = 20000
	}
	if cfg.LivenessWindow == 0 {
		cfg.LivenessWindow = 30 * time.Minute
	}
	if cfg.TruncationFloor == 0 {
		cfg.TruncationFloor = 200
	}
	if cfg.HeadFraction == 0 {
		cfg.HeadFraction = 0.70
	}
	if cfg.TailFraction == 0 {
		cfg.TailFraction = 0.20
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return cfg
}
