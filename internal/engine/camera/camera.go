// Package camera provides cameras that follow a scene entity in a
// left-handed, y-up world.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/internal/logger"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// Camera is a view into the scene that tracks a target entity.
type Camera interface {
	Position() math.Vec3
	Front() math.Vec3
	ViewMatrix() math.Mat4
	ProjectionMatrix() math.Mat4

	Target() entity.Spatial
	SetTarget(e entity.Spatial)
	SetAspectRatio(aspect float32)

	// LogicUpdate re-reads the target after the scene update.
	LogicUpdate(dt float32)
	// Drag applies a mouse drag in pixels.
	Drag(dx, dy float32)
	// Zoom applies a wheel delta.
	Zoom(delta float32)
}

// Lens holds projection parameters.
type Lens struct {
	FOV    float32 // radians
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultLens is a 45 degree 16:9 lens.
func DefaultLens() Lens {
	return Lens{FOV: math.Pi / 4, Aspect: 16.0 / 9.0, Near: 0.1, Far: 10000}
}

// base holds the state shared by every camera.
type base struct {
	target entity.Spatial
	lens   Lens

	yaw   float32 // degrees, [-180, 180)
	pitch float32 // degrees, [-89, 89]

	position math.Vec3
	front    math.Vec3
	right    math.Vec3
	up       math.Vec3

	view       math.Mat4
	projection math.Mat4
}

func newBase(target entity.Spatial, lens Lens) base {
	b := base{target: target, lens: lens}
	b.updateVectors()
	b.updateProjection()
	return b
}

func (b *base) Position() math.Vec3 { return b.position }
func (b *base) Front() math.Vec3 { return b.front }
func (b *base) Right() math.Vec3 { return b.right }
func (b *base) Up() math.Vec3 { return b.up }
func (b *base) ViewMatrix() math.Mat4 { return b.view }
func (b *base) ProjectionMatrix() math.Mat4 { return b.projection }
func (b *base) Target() entity.Spatial { return b.target }
func (b *base) Yaw() float32 { return b.yaw }
func (b *base) Pitch() float32 { return b.pitch }
func (b *base) Lens() Lens { return b.lens }

// SetAspectRatio updates the projection for a new viewport.
func (b *base) SetAspectRatio(aspect float32) {
	b.lens.Aspect = aspect
	b.updateProjection()
}

// SetLens replaces the projection parameters.
func (b *base) SetLens(l Lens) {
	b.lens = l
	b.updateProjection()
}

// acceptTarget validates a new target and resets the orientation.
func (b *base) acceptTarget(e entity.Spatial) bool {
	if e == nil {
		logger.Warn("camera: nil target ignored")
		return false
	}
	if e == b.target {
		logger.Warn("camera: target unchanged", zap.Uint32("entity_id", e.ID()))
		return false
	}
	b.target = e
	b.yaw, b.pitch = 0, 0
	b.updateVectors()
	return true
}

// updateVectors clamps pitch, wraps yaw and derives the camera basis from them.
func (b *base) updateVectors() {
	b.pitch = mgl32.Clamp(b.pitch, -89, 89)
	b.yaw = math.WrapDegrees(b.yaw)

	yaw := float64(mgl32.DegToRad(b.yaw))
	pitch := float64(mgl32.DegToRad(b.pitch))
	b.front = math.Vec3{
		X: float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
	}.Normalize()
	b.right = math.Vec3{Y: 1}.Cross(b.front).Normalize()
	b.up = b.front.Cross(b.right).Normalize()
}

func (b *base) updateView() {
	b.view = LookAtLH(b.position, b.position.Add(b.front), b.up)
}

func (b *base) updateProjection() {
	b.projection = math.Perspective(b.lens.FOV, b.lens.Aspect, b.lens.Near, b.lens.Far)
}

// LookAtLH builds an OpenGL view matrix for a left-handed world: z is
// mirrored so that a camera looking down +z sees it at negative view depth.
func LookAtLH(eye, center, up math.Vec3) math.Mat4 {
	flip := math.Vec3{X: 1, Y: 1, Z: -1}
	return math.LookAt(eye.Mul(flip), center.Mul(flip), up.Mul(flip)).Mul(math.Scale(1, 1, -1))
}
