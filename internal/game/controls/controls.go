// Package controls maps per-frame key state onto the ship, the active
// camera and frame-loop commands.
package controls

import (
	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/engine/camera"
	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/internal/engine/input"
	"github.com/Faultbox/celestial-rover/internal/game/celestial"
	"github.com/Faultbox/celestial-rover/internal/game/spaceship"
	"github.com/Faultbox/celestial-rover/internal/logger"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// Pilotable is what the controls drive.
type Pilotable interface {
	entity.Controllable
	SetState(mode spaceship.Mode, target entity.Orbitable, orbit *celestial.Orbit)
}

// OrbitParams describe an orbit created fresh for each request.
type OrbitParams struct {
	SemiMajorAxis float32
	Eccentricity  float32
	AngularSpeed  float32
}

// Destination is a flight state bound to a number key.
type Destination struct {
	Key    input.Key
	Mode   spaceship.Mode
	Target entity.Orbitable
	Orbit  *OrbitParams
}

// CameraChoice selects a camera to switch to.
type CameraChoice uint8

const (
	CameraUnchanged CameraChoice = iota
	CameraFirstPerson
	CameraThirdPerson
)

// Command is the frame-loop part of one frame of input.
type Command struct {
	Quit        bool
	TogglePause bool
	Camera      CameraChoice
}

type axis struct {
	pos, neg       input.Key
	posDir, negDir entity.MoveDirection
}

var moveAxes = []axis{
	{input.KeyW, input.KeyS, entity.Forward, entity.Backward},
	{input.KeyD, input.KeyA, entity.Right, entity.Left},
	{input.KeyE, input.KeyQ, entity.Up, entity.Down},
}

type turn struct {
	pos, neg       input.Key
	posDir, negDir entity.RotateDirection
}

var turnAxes = []turn{
	{input.KeyArrowRight, input.KeyArrowLeft, entity.YawRight, entity.YawLeft},
	{input.KeyArrowUp, input.KeyArrowDown, entity.PitchUp, entity.PitchDown},
}

// Controller applies bindings to a ship.
type Controller struct {
	ship         Pilotable
	destinations map[input.Key]Destination
}

// New creates a controller for ship. Destinations bound to the same key
// replace earlier ones.
func New(ship Pilotable, destinations []Destination) *Controller {
	c := &Controller{
		ship:         ship,
		destinations: make(map[input.Key]Destination, len(destinations)),
	}
	for _, d := range destinations {
		c.Bind(d)
	}
	return c
}

// Bind adds or replaces a destination.
func (c *Controller) Bind(d Destination) {
	if _, ok := d.Key.Digit(); !ok {
		logger.Warn("controls: destination key is not a digit", zap.Stringer("key", d.Key))
		return
	}
	c.destinations[d.Key] = d
}

// Destination returns the binding for key.
func (c *Controller) Destination(key input.Key) (Destination, bool) {
	d, ok := c.destinations[key]
	return d, ok
}

// Update applies one frame of input. The ship moves and turns while keys
// are held; destination keys fire on press only. cam may be nil.
func (c *Controller) Update(ks input.KeyState, dt float32, cam camera.Camera) Command {
	cmd := Commands(ks)

	if c.ship != nil {
		for _, a := range moveAxes {
			switch {
			case ks.Held(a.pos):
				c.ship.Move(dt, a.posDir)
			case ks.Held(a.neg):
				c.ship.Move(dt, a.negDir)
			}
		}
		for _, a := range turnAxes {
			switch {
			case ks.Held(a.pos):
				c.ship.Rotate(dt, a.posDir)
			case ks.Held(a.neg):
				c.ship.Rotate(dt, a.negDir)
			}
		}
		for key := input.Key0; key <= input.Key9; key++ {
			if ks.Pressed(key) {
				c.request(key)
			}
		}
	}

	if cam != nil {
		if ks.Held(input.MouseLeft) {
			if dx, dy := ks.MouseDelta(); dx != 0 || dy != 0 {
				cam.Drag(dx, dy)
			}
		}
		if w := ks.Wheel(); w != 0 {
			cam.Zoom(w)
		}
	}

	return cmd
}

// Commands reads the frame-loop keys only.
func Commands(ks input.KeyState) Command {
	var cmd Command
	if ks.Pressed(input.KeyEscape) {
		cmd.Quit = true
	}
	if ks.Pressed(input.KeyP) {
		cmd.TogglePause = true
	}
	switch {
	case ks.Pressed(input.KeyF1):
		cmd.Camera = CameraFirstPerson
	case ks.Pressed(input.KeyF2):
		cmd.Camera = CameraThirdPerson
	}
	return cmd
}

func (c *Controller) request(key input.Key) {
	d, ok := c.destinations[key]
	if !ok {
		return
	}

	var orbit *celestial.Orbit
	if d.Orbit != nil {
		var err error
		orbit, err = celestial.NewOrbit(math.Vec3{}, d.Orbit.SemiMajorAxis, d.Orbit.Eccentricity, d.Orbit.AngularSpeed)
		if err != nil {
			logger.Warn("controls: bad destination orbit", zap.Stringer("key", key), zap.Error(err))
			return
		}
	}
	c.ship.SetState(d.Mode, d.Target, orbit)
}
