package config

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// Validate checks the structural validity of a Config: the version field,
// the bind address, and engine knob ranges. All problems are reported at
// once via errors.Join.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.Server.Bind); err != nil {
		errs = append(errs, fmt.Errorf("config: invalid bind address %q: %w", cfg.Server.Bind, err))
	}

	errs = append(errs, validateEngine(cfg.Engine)...)

	if cfg.History.Retention < 0 {
		errs = append(errs, errors.New("config: history.retention must not be negative"))
	}

	return errors.Join(errs...)
}

func validateEngine(e EngineConfig) []error {
	var errs []error

	if e.MaxContextChars < 0 {
		errs = append(errs, errors.New("config: engine.max_context_chars must not be negative"))
	}
	if e.LivenessWindow < 0 {
		errs = append(errs, errors.New("config: engine.liveness_window must not be negative"))
	}
	if e.TruncationFloor < 0 {
		errs = append(errs, errors.New("config: engine.truncation_floor must not be negative"))
	}
	if e.HeadFraction < 0 || e.HeadFraction > 1 {
		errs = append(errs, fmt.Errorf("config: engine.head_fraction %v out of range [0,1]", e.HeadFraction))
	}
	if e.TailFraction < 0 || e.TailFraction > 1 {
		errs = append(errs, fmt.Errorf("config: engine.tail_fraction %v out of range [0,1]", e.TailFraction))
	}
	if e.HeadFraction+e.TailFraction > 1 {
		errs = append(errs, fmt.Errorf("config: engine.head_fraction + tail_fraction = %v exceeds 1",
			e.HeadFraction+e.TailFraction))
	}
	if e.Timezone != "" && e.Timezone != "Local" {
		if _, err := time.LoadLocation(e.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("config: engine.timezone: %w", err))
		}
	}

	return errs
}

// EngineLocation resolves the configured timezone to a *time.Location.
// Validate must have passed first; resolution errors fall back to Local.
func (e EngineConfig) EngineLocation() *time.Location {
	if e.Timezone == "" || e.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
