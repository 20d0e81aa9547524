package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// Third-person defaults.
const (
	DefaultDistance        = 10
	DefaultMinDistance     = 10
	DefaultMaxDistance     = 100
	DefaultZoomSpeed       = 1
	DefaultDragSensitivity = 0.2
)

// ThirdPerson orbits the target at a distance behind its own front vector.
type ThirdPerson struct {
	base

	distance    float32
	minDistance float32
	maxDistance float32

	ZoomSpeed       float32
	DragSensitivity float32 // degrees per pixel
}

// NewThirdPerson creates a third-person camera with default distances.
func NewThirdPerson(target entity.Spatial, lens Lens) *ThirdPerson {
	c := &ThirdPerson{
		base:            newBase(target, lens),
		distance:        DefaultDistance,
		minDistance:     DefaultMinDistance,
		maxDistance:     DefaultMaxDistance,
		ZoomSpeed:       DefaultZoomSpeed,
		DragSensitivity: DefaultDragSensitivity,
	}
	c.LogicUpdate(0)
	return c
}

// Distance returns the distance to the target.
func (c *ThirdPerson) Distance() float32 { return c.distance }

// SetDistance sets the distance, clamped to the bounds.
func (c *ThirdPerson) SetDistance(d float32) {
	c.distance = mgl32.Clamp(d, c.minDistance, c.maxDistance)
}

// SetDistanceBounds changes the zoom range and re-clamps the distance.
// Inverted bounds are swapped.
func (c *ThirdPerson) SetDistanceBounds(lo, hi float32) {
	if lo > hi {
		lo, hi = hi, lo
	}
	c.minDistance, c.maxDistance = lo, hi
	c.SetDistance(c.distance)
}

// DistanceBounds returns the zoom range.
func (c *ThirdPerson) DistanceBounds() (lo, hi float32) {
	return c.minDistance, c.maxDistance
}

// SetTarget switches the followed entity and resets the orbit angles.
func (c *ThirdPerson) SetTarget(e entity.Spatial) {
	if c.acceptTarget(e) {
		c.LogicUpdate(0)
	}
}

// LogicUpdate places the camera behind the target.
func (c *ThirdPerson) LogicUpdate(float32) {
	var center math.Vec3
	if c.target != nil {
		center = c.target.WorldPosition()
	}
	c.position = center.Sub(c.front.Scale(c.distance))
	c.updateView()
}

// Drag turns the camera around the target.
func (c *ThirdPerson) Drag(dx, dy float32) {
	c.yaw += dx * c.DragSensitivity
	c.pitch += dy * c.DragSensitivity
	c.updateVectors()
}

// Zoom moves the camera towards the target for positive deltas.
func (c *ThirdPerson) Zoom(delta float32) {
	c.SetDistance(c.distance - delta*c.ZoomSpeed)
}

var _ Camera = (*ThirdPerson)(nil)
