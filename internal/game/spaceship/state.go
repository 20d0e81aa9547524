// Package spaceship implements the player ship and its flight state machine.
package spaceship

import (
	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/internal/game/celestial"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// Mode is a flight mode.
type Mode uint8

const (
	// Free is manual flight.
	Free Mode = iota
	// Landing glues the ship to a point on a sphere around the target.
	Landing
	// Orbiting drives the ship along an orbit around the target.
	Orbiting
)

func (m Mode) String() string {
	switch m {
	case Free:
		return "free"
	case Landing:
		return "landing"
	case Orbiting:
		return "orbiting"
	default:
		return "unknown"
	}
}

// ParseMode resolves a mode name as printed by Mode.String.
func ParseMode(name string) (Mode, bool) {
	for _, m := range []Mode{Free, Landing, Orbiting} {
		if m.String() == name {
			return m, true
		}
	}
	return Free, false
}

// LandingSite is a point on a sphere around the landing target.
type LandingSite struct {
	Phi    float32 // azimuth, (-π, π]
	Theta  float32 // polar angle from +y, [0.01, π-0.01] once adjusted
	Radius float32
}

// Offset returns the site in the target's unrotated frame.
func (l LandingSite) Offset() math.Vec3 {
	return math.SphericalToCartesian(l.Radius, l.Theta, l.Phi)
}

// StateContext is one flight state with its parameters.
type StateContext struct {
	Mode     Mode
	Target   entity.Orbitable
	Orbit    *celestial.Orbit
	Progress float32 // transition progress, [0, 1]
	Landing  LandingSite
}

// same reports whether c requests the same (mode, target, orbit) tuple.
func (c StateContext) same(mode Mode, target entity.Orbitable, orbit *celestial.Orbit) bool {
	return c.Mode == mode && c.Target == target && c.Orbit == orbit
}

// idle is the neutral placeholder reported as Next when nothing is in flight.
var idle = StateContext{Mode: Free}

// transition is an in-flight blend from a recorded start pose into next.
type transition struct {
	next     StateContext
	startPos math.Vec3
	startRot math.Vec3
}

// TransitionPhase distinguishes transition events.
type TransitionPhase uint8

const (
	TransitionStarted TransitionPhase = iota
	TransitionCompleted
)

func (p TransitionPhase) String() string {
	if p == TransitionStarted {
		return "started"
	}
	return "completed"
}

// TransitionEvent is delivered to OnTransition observers.
type TransitionEvent struct {
	Phase  TransitionPhase
	From   Mode
	To     Mode
	Target entity.Orbitable
}
