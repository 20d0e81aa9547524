package entity

import (
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// Default speeds for a Controller.
const (
	DefaultMoveSpeed     = 5  // units per second
	DefaultRotationSpeed = 30 // degrees per second
)

// Controller is a Node driven by discrete move and rotate input.
type Controller struct {
	Node

	moveSpeed     float32
	rotationSpeed float32
	underControl  bool
}

// NewController creates a controller with default speeds, under control.
func NewController() *Controller {
	c := &Controller{}
	c.Init()
	return c
}

// Init initializes the embedded node and resets speeds and control.
func (c *Controller) Init() {
	c.Node.Init()
	c.moveSpeed = DefaultMoveSpeed
	c.rotationSpeed = DefaultRotationSpeed
	c.underControl = true
}

func (c *Controller) MoveSpeed() float32 { return c.moveSpeed }
func (c *Controller) RotationSpeed() float32 { return c.rotationSpeed }
func (c *Controller) SetMoveSpeed(v float32) { c.moveSpeed = v }
func (c *Controller) SetRotationSpeed(v float32) { c.rotationSpeed = v }
func (c *Controller) UnderControl() bool { return c.underControl }
func (c *Controller) SetUnderControl(v bool) { c.underControl = v }

// Move displaces the local position along the cached direction vectors.
// The vectors are those of the last Refresh, not recomputed here.
func (c *Controller) Move(dt float32, dir MoveDirection) {
	if !c.underControl {
		return
	}

	step := c.moveSpeed * dt
	var delta math.Vec3
	switch dir {
	case Forward:
		delta = c.front.Scale(step)
	case Backward:
		delta = c.front.Scale(-step)
	case Left:
		delta = c.right.Scale(-step)
	case Right:
		delta = c.right.Scale(step)
	case Up:
		delta = c.up.Scale(step)
	case Down:
		delta = c.up.Scale(-step)
	default:
		return
	}
	c.position = c.position.Add(delta)
}

// Rotate turns yaw (wrapped mod 360, sign kept) or pitch (clamped to
// [-90, 90]) and refreshes the world matrix so a following Move uses the
// new direction vectors.
func (c *Controller) Rotate(dt float32, dir RotateDirection) {
	if !c.underControl {
		return
	}

	step := c.rotationSpeed * dt
	switch dir {
	case YawLeft:
		c.rotation.Y = math.ModDegrees(c.rotation.Y - step)
	case YawRight:
		c.rotation.Y = math.ModDegrees(c.rotation.Y + step)
	case PitchUp:
		c.rotation.X = max(c.rotation.X-step, -90)
	case PitchDown:
		c.rotation.X = min(c.rotation.X+step, 90)
	}

	c.Refresh()
}
