package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks cross-field constraints that YAML decoding cannot.
func (c *Config) Validate() error {
	switch c.Simulation.Frontend {
	case FrontendDesktop, FrontendTerminal, FrontendHeadless:
	default:
		return fmt.Errorf("%w: unknown frontend %q", ErrInvalid, c.Simulation.Frontend)
	}
	if c.Simulation.FixedDT < 0 || c.Simulation.MaxDT <= 0 {
		return fmt.Errorf("%w: fixed_dt must be >= 0 and max_dt > 0", ErrInvalid)
	}
	if c.Simulation.FixedDT > c.Simulation.MaxDT {
		return fmt.Errorf("%w: fixed_dt %.3f exceeds max_dt %.3f", ErrInvalid, c.Simulation.FixedDT, c.Simulation.MaxDT)
	}
	if c.Camera.Active != "first" && c.Camera.Active != "third" {
		return fmt.Errorf("%w: unknown camera %q", ErrInvalid, c.Camera.Active)
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MinDistance > c.Camera.MaxDistance {
		return fmt.Errorf("%w: camera distance bounds [%.1f, %.1f]", ErrInvalid, c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume %.2f outside [0, 1]", ErrInvalid, c.Audio.Volume)
	}
	return c.Scene.Validate()
}

// Validate checks body names, references and orbit parameters.
func (s *SceneConfig) Validate() error {
	names := make(map[string]bool, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body %d has no name", ErrInvalid, i)
		}
		if names[b.Name] {
			return fmt.Errorf("%w: duplicate body %q", ErrInvalid, b.Name)
		}
		if b.Scale <= 0 {
			return fmt.Errorf("%w: body %q scale must be positive", ErrInvalid, b.Name)
		}
		// Primaries must be declared first so the universe builds in one pass.
		if b.Primary != "" && !names[b.Primary] {
			return fmt.Errorf("%w: body %q primary %q is not declared before it", ErrInvalid, b.Name, b.Primary)
		}
		if b.Orbit != nil {
			if err := b.Orbit.validate(); err != nil {
				return fmt.Errorf("body %q: %w", b.Name, err)
			}
		}
		names[b.Name] = true
	}

	if s.Ship.Scale <= 0 || s.Ship.TransferSpeed <= 0 {
		return fmt.Errorf("%w: ship scale and transfer_speed must be positive", ErrInvalid)
	}
	if err := s.Ship.Initial.validate(names); err != nil {
		return fmt.Errorf("ship initial state: %w", err)
	}

	keys := make(map[int]bool, len(s.Destinations))
	for _, d := range s.Destinations {
		if d.Key < 0 || d.Key > 9 {
			return fmt.Errorf("%w: destination key %d outside 0-9", ErrInvalid, d.Key)
		}
		if keys[d.Key] {
			return fmt.Errorf("%w: destination key %d bound twice", ErrInvalid, d.Key)
		}
		keys[d.Key] = true
		if err := d.validate(names); err != nil {
			return fmt.Errorf("destination %d: %w", d.Key, err)
		}
	}

	if s.Light.Anchor != "" && !names[s.Light.Anchor] {
		return fmt.Errorf("%w: light anchor %q is not a body", ErrInvalid, s.Light.Anchor)
	}
	return nil
}

func (d DestinationConfig) validate(bodies map[string]bool) error {
	switch d.Mode {
	case ModeFree:
		return nil
	case ModeLanding, ModeOrbiting:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalid, d.Mode)
	}
	if !bodies[d.Target] {
		return fmt.Errorf("%w: unknown target %q", ErrInvalid, d.Target)
	}
	if d.Mode == ModeOrbiting {
		if d.Orbit == nil {
			return fmt.Errorf("%w: orbiting %q needs an orbit", ErrInvalid, d.Target)
		}
		return d.Orbit.validate()
	}
	return nil
}

func (o OrbitConfig) validate() error {
	if o.SemiMajorAxis <= 0 {
		return fmt.Errorf("%w: semi_major_axis %.3f must be positive", ErrInvalid, o.SemiMajorAxis)
	}
	if o.Eccentricity < 0 || o.Eccentricity >= 1 {
		return fmt.Errorf("%w: eccentricity %.3f outside [0, 1)", ErrInvalid, o.Eccentricity)
	}
	return nil
}
