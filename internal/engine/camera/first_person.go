package camera

import (
	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// FirstPerson rides on the target and looks along its front axis.
type FirstPerson struct {
	base

	// offset in the target's right/up/front axes
	offset math.Vec3
}

// NewFirstPerson creates a first-person camera. target may be nil.
func NewFirstPerson(target entity.Spatial, lens Lens, offset math.Vec3) *FirstPerson {
	c := &FirstPerson{base: newBase(target, lens), offset: offset}
	c.LogicUpdate(0)
	return c
}

// PositionOffset returns the offset in target space.
func (c *FirstPerson) PositionOffset() math.Vec3 { return c.offset }

// SetPositionOffset sets the offset in target space.
func (c *FirstPerson) SetPositionOffset(o math.Vec3) { c.offset = o }

// SetTarget switches the followed entity.
func (c *FirstPerson) SetTarget(e entity.Spatial) {
	if c.acceptTarget(e) {
		c.LogicUpdate(0)
	}
}

// LogicUpdate copies the target's axes and places the camera at the offset.
func (c *FirstPerson) LogicUpdate(float32) {
	if c.target == nil {
		c.updateView()
		return
	}
	c.front = c.target.Front()
	c.right = c.target.Right()
	c.up = c.target.Up()
	c.position = c.target.WorldPosition().
		Add(c.right.Scale(c.offset.X)).
		Add(c.up.Scale(c.offset.Y)).
		Add(c.front.Scale(c.offset.Z))
	c.updateView()
}

// Drag is ignored; the view is locked to the target.
func (c *FirstPerson) Drag(_, _ float32) {}

// Zoom is ignored.
func (c *FirstPerson) Zoom(float32) {}

var _ Camera = (*FirstPerson)(nil)
