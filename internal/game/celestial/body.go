package celestial

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/internal/logger"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// Body is a spherical entity that may orbit a primary body and spins about
// its own y axis. Its world transform is built directly from its primary
// chain and ignores the generic transform parent.
type Body struct {
	entity.Node

	name      string
	radius    float32
	orbit     *Orbit
	primary   *Body
	spinSpeed float32 // rad/s
	spin      float32 // rad, [0, 2π)
}

// NewBody creates a body of radius 1 with a random spin angle.
func NewBody(name string) *Body {
	b := &Body{
		name:   name,
		radius: 1,
		spin:   math.WrapTwoPi(rand.Float32() * math.TwoPi),
	}
	b.Node.Init()
	b.SetComposer(b.composeMatrix)
	b.Refresh()
	return b
}

func (b *Body) Name() string { return b.name }

// Radius returns the uniform scale factor.
func (b *Body) Radius() float32 { return b.radius }

func (b *Body) Orbit() *Orbit { return b.orbit }

func (b *Body) Primary() *Body { return b.primary }

func (b *Body) SpinAngle() float32 { return b.spin }

func (b *Body) SpinSpeed() float32 { return b.spinSpeed }

// SetOrbit attaches an orbit. A nil orbit detaches it.
func (b *Body) SetOrbit(o *Orbit) { b.orbit = o }

// SetPrimary sets the body this one orbits. A nil primary detaches it.
func (b *Body) SetPrimary(p *Body) { b.primary = p }

// SetSpinSpeed sets the self-rotation speed in rad/s.
func (b *Body) SetSpinSpeed(speed float32) { b.spinSpeed = speed }

// SetSpinAngle sets the self-rotation angle, wrapped to [0, 2π).
func (b *Body) SetSpinAngle(angle float32) { b.spin = math.WrapTwoPi(angle) }

// SetLocalScale accepts only uniform scale; the radius follows it.
func (b *Body) SetLocalScale(s math.Vec3) {
	if s.X != s.Y || s.X != s.Z {
		logger.Error("celestial body scale must be uniform",
			zap.Uint32("entity_id", b.ID()),
			zap.String("body", b.name),
			zap.Float32s("scale", []float32{s.X, s.Y, s.Z}))
		return
	}
	b.Node.SetLocalScale(s)
	b.radius = s.X
}

// WorldPosition is local position plus orbit offset plus the primary's
// world position.
func (b *Body) WorldPosition() math.Vec3 {
	p := b.LocalPosition()
	if b.orbit != nil {
		p = p.Add(b.orbit.Position())
	}
	if b.primary != nil {
		p = p.Add(b.primary.WorldPosition())
	}
	return p
}

// WorldRotation is the local rotation with the spin angle added to yaw.
// The primary's rotation does not contribute.
func (b *Body) WorldRotation() math.Vec3 {
	r := b.LocalRotation()
	r.Y += mgl32.RadToDeg(b.spin)
	return r
}

// WorldScale is the local scale.
func (b *Body) WorldScale() math.Vec3 {
	return b.LocalScale()
}

// WorldRotationMatrix returns the orientation including spin.
func (b *Body) WorldRotationMatrix() math.Mat4 {
	r := math.EulerToRadians(b.LocalRotation())
	return math.RotationRollPitchYaw(r.X, r.Y+b.spin, r.Z)
}

// LogicUpdate advances the orbit and the spin, then recomposes the world matrix.
func (b *Body) LogicUpdate(dt float32) {
	if b.orbit != nil {
		b.orbit.Update(dt)
	}
	b.spin = math.WrapTwoPi(b.spin - b.spinSpeed*dt)
	b.Refresh()
}

func (b *Body) composeMatrix() math.Mat4 {
	return math.TRS(
		math.TranslateVec3(b.WorldPosition()),
		b.WorldRotationMatrix(),
		math.ScaleVec3(b.LocalScale()),
	)
}

var _ entity.Orbitable = (*Body)(nil)
