// Package celestial implements elliptical orbits and the celestial bodies
// that move along them.
package celestial

import (
	"errors"
	"fmt"
	stdmath "math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/celestial-rover/pkg/math"
)

var (
	// ErrEccentricity is returned for eccentricities outside [0, 1).
	ErrEccentricity = errors.New("eccentricity must be in [0, 1)")
	// ErrSemiMajorAxis is returned for a non-positive semi-major axis.
	ErrSemiMajorAxis = errors.New("semi-major axis must be positive")
)

// Orbit is a closed-form ellipse in the plane y = center.y. The phase angle
// decreases with time and is kept in [0, 2π).
type Orbit struct {
	center        math.Vec3
	semiMajorAxis float32
	eccentricity  float32
	angularSpeed  float32 // rad/s
	phase         float32 // rad
}

// NewOrbit creates an orbit with a uniformly random starting phase.
func NewOrbit(center math.Vec3, semiMajorAxis, eccentricity, angularSpeed float32) (*Orbit, error) {
	if semiMajorAxis <= 0 {
		return nil, fmt.Errorf("orbit a=%.3f: %w", semiMajorAxis, ErrSemiMajorAxis)
	}
	if eccentricity < 0 || eccentricity >= 1 {
		return nil, fmt.Errorf("orbit e=%.3f: %w", eccentricity, ErrEccentricity)
	}
	return &Orbit{
		center:        center,
		semiMajorAxis: semiMajorAxis,
		eccentricity:  eccentricity,
		angularSpeed:  angularSpeed,
		phase:         math.WrapTwoPi(rand.Float32() * math.TwoPi),
	}, nil
}

// Update advances the phase by -angularSpeed·dt.
func (o *Orbit) Update(dt float32) {
	o.phase = math.WrapTwoPi(o.phase - o.angularSpeed*dt)
}

// Position returns the point on the ellipse for the current phase.
func (o *Orbit) Position() math.Vec3 {
	return o.PositionAt(o.phase)
}

// PositionAt returns the point on the ellipse for phase theta. The angle is
// negated so increasing phase runs counter-clockwise seen from +y in a
// left-handed frame.
func (o *Orbit) PositionAt(theta float32) math.Vec3 {
	rev := float64(-theta)
	return math.Vec3{
		X: o.center.X + o.semiMajorAxis*float32(stdmath.Cos(rev)),
		Y: o.center.Y,
		Z: o.center.Z + o.SemiMinorAxis()*float32(stdmath.Sin(rev)),
	}
}

// Rotation returns (pitch, yaw, roll) in degrees with yaw following the phase.
func (o *Orbit) Rotation() math.Vec3 {
	return math.Vec3{Y: mgl32.RadToDeg(o.phase)}
}

// SemiMinorAxis returns a·sqrt(1-e²).
func (o *Orbit) SemiMinorAxis() float32 {
	e := float64(o.eccentricity)
	return o.semiMajorAxis * float32(stdmath.Sqrt(1-e*e))
}

// Period returns the time for one revolution, or +Inf for a stationary orbit.
func (o *Orbit) Period() float32 {
	if o.angularSpeed == 0 {
		return float32(stdmath.Inf(1))
	}
	return math.TwoPi / float32(stdmath.Abs(float64(o.angularSpeed)))
}

func (o *Orbit) Phase() float32 { return o.phase }
func (o *Orbit) Center() math.Vec3 { return o.center }
func (o *Orbit) SemiMajorAxis() float32 { return o.semiMajorAxis }
func (o *Orbit) Eccentricity() float32 { return o.eccentricity }
func (o *Orbit) AngularSpeed() float32 { return o.angularSpeed }

// SetPhase sets the phase, wrapped to [0, 2π).
func (o *Orbit) SetPhase(theta float32) {
	o.phase = math.WrapTwoPi(theta)
}
