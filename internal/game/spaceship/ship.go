package spaceship

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/internal/game/celestial"
	"github.com/Faultbox/celestial-rover/internal/logger"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

const (
	// DefaultTransferSpeed is transition progress per second.
	DefaultTransferSpeed = 0.1

	// landingAngularSpeed is radians per second for surface moves.
	landingAngularSpeed = 0.5

	minTheta = 0.01
	maxTheta = math.Pi - 0.01
)

// Ship is a controllable entity with a Free, Landing and Orbiting flight
// state machine. Switching state always goes through an eased transition;
// at most one transition is in flight.
type Ship struct {
	entity.Controller

	current       StateContext
	transfer      *transition
	transferSpeed float32
	observers     []func(TransitionEvent)
}

// NewShip creates a ship in free flight at the origin.
func NewShip() *Ship {
	s := &Ship{
		current:       StateContext{Mode: Free, Progress: 1},
		transferSpeed: DefaultTransferSpeed,
	}
	s.Controller.Init()
	return s
}

// SetTransferSpeed sets transition progress per second.
func (s *Ship) SetTransferSpeed(speed float32) { s.transferSpeed = speed }

func (s *Ship) TransferSpeed() float32 { return s.transferSpeed }

// OnTransition registers fn to run when a transition starts or completes.
func (s *Ship) OnTransition(fn func(TransitionEvent)) {
	s.observers = append(s.observers, fn)
}

// Current returns the active state.
func (s *Ship) Current() StateContext { return s.current }

// Next returns the state being transitioned into, or a neutral Free
// placeholder when idle.
func (s *Ship) Next() StateContext {
	if s.transfer == nil {
		return idle
	}
	return s.transfer.next
}

// Transitioning reports whether a transition is in flight.
func (s *Ship) Transitioning() bool { return s.transfer != nil }

// Progress returns the progress of the transition in flight, or 1 when idle.
func (s *Ship) Progress() float32 {
	if s.transfer == nil {
		return s.current.Progress
	}
	return s.transfer.next.Progress
}

// Status describes the flight state for display.
func (s *Ship) Status() string {
	if s.transfer != nil {
		return "transitioning to " + s.transfer.next.Mode.String()
	}
	return s.current.Mode.String()
}

// WorldPosition is the local position; the ship is never parented.
func (s *Ship) WorldPosition() math.Vec3 { return s.LocalPosition() }

// SetState requests a new flight state. The request is dropped while a
// transition is in flight or when it matches the current state.
func (s *Ship) SetState(mode Mode, target entity.Orbitable, orbit *celestial.Orbit) {
	if s.transfer != nil {
		return
	}
	if s.current.same(mode, target, orbit) {
		return
	}

	switch mode {
	case Free:
	case Landing:
		if target == nil {
			logger.Warn("ship state: landing needs a target", zap.Uint32("entity_id", s.ID()))
			return
		}
	case Orbiting:
		if target == nil || orbit == nil {
			logger.Warn("ship state: orbiting needs a target and an orbit", zap.Uint32("entity_id", s.ID()))
			return
		}
	default:
		logger.Warn("ship state: unknown mode", zap.Uint8("mode", uint8(mode)))
		return
	}

	fields := []zap.Field{zap.Stringer("from", s.current.Mode), zap.Stringer("to", mode)}
	if target != nil {
		fields = append(fields, zap.Uint32("target_id", target.ID()))
	}
	logger.Info("ship state requested", fields...)

	s.startTransition(mode, target, orbit)
}

func (s *Ship) startTransition(mode Mode, target entity.Orbitable, orbit *celestial.Orbit) {
	t := &transition{
		next:     StateContext{Mode: mode, Target: target, Orbit: orbit},
		startPos: s.LocalPosition(),
		startRot: s.LocalRotation(),
	}
	if mode == Landing {
		t.next.Landing = s.landingSiteFrom(target)
	}
	s.transfer = t
	s.notify(TransitionEvent{Phase: TransitionStarted, From: s.current.Mode, To: mode, Target: target})
}

// landingSiteFrom projects the current position onto spherical coordinates
// around target. The radius is the target radius plus the ship's y scale.
func (s *Ship) landingSiteFrom(target entity.Orbitable) LandingSite {
	rel := s.LocalPosition().Sub(target.WorldPosition())
	_, theta, phi := math.CartesianToSpherical(rel)
	return LandingSite{
		Phi:    phi,
		Theta:  theta,
		Radius: target.Radius() + s.LocalScale().Y,
	}
}

func (s *Ship) completeTransition() {
	from := s.current.Mode
	s.current = s.transfer.next
	s.current.Progress = 1
	s.transfer = nil

	logger.Info("ship state reached", zap.Stringer("mode", s.current.Mode))
	s.notify(TransitionEvent{Phase: TransitionCompleted, From: from, To: s.current.Mode, Target: s.current.Target})
}

func (s *Ship) notify(ev TransitionEvent) {
	for _, fn := range s.observers {
		fn(ev)
	}
}

// LogicUpdate advances the transition in flight, or the steady state, and
// recomposes the world matrix.
func (s *Ship) LogicUpdate(dt float32) {
	if s.transfer != nil {
		s.updateTransition(dt)
	} else {
		switch s.current.Mode {
		case Landing:
			s.applyPose(s.current)
		case Orbiting:
			s.current.Orbit.Update(dt)
			s.applyPose(s.current)
		}
	}
	s.Refresh()
}

func (s *Ship) updateTransition(dt float32) {
	t := s.transfer
	t.next.Progress += dt * s.transferSpeed

	k := math.Smoothstep(t.next.Progress)
	s.SetLocalPosition(t.startPos.Lerp(s.positionFor(t.next), k))
	s.SetLocalRotation(t.startRot.Lerp(s.rotationFor(t.next), k))

	if t.next.Progress >= 1 {
		s.completeTransition()
	}
}

func (s *Ship) applyPose(c StateContext) {
	s.SetLocalPosition(s.positionFor(c))
	s.SetLocalRotation(s.rotationFor(c))
}

// positionFor returns the position the ship holds in state c.
func (s *Ship) positionFor(c StateContext) math.Vec3 {
	switch c.Mode {
	case Landing:
		if c.Target == nil {
			break
		}
		offset := c.Target.WorldRotationMatrix().TransformDirection(c.Landing.Offset())
		return c.Target.WorldPosition().Add(offset)
	case Orbiting:
		if c.Target == nil || c.Orbit == nil {
			break
		}
		return c.Target.WorldPosition().Add(c.Orbit.Position())
	}
	return s.LocalPosition()
}

// rotationFor returns the Euler rotation the ship holds in state c.
func (s *Ship) rotationFor(c StateContext) math.Vec3 {
	switch c.Mode {
	case Landing:
		if c.Target == nil {
			break
		}
		return math.Vec3{
			X: 0,
			Y: c.Target.WorldRotation().Y + mgl32.RadToDeg(-c.Landing.Phi),
			Z: 90 * float32(stdmath.Sin(float64(-c.Landing.Theta))),
		}
	case Orbiting:
		if c.Target == nil || c.Orbit == nil {
			break
		}
		return c.Orbit.Rotation()
	}
	return s.LocalRotation()
}

// Move flies freely in Free mode and walks the landing site in Landing
// mode: Forward/Backward change the azimuth, Left/Right the polar angle.
// Orbiting ignores input.
func (s *Ship) Move(dt float32, dir entity.MoveDirection) {
	switch s.current.Mode {
	case Free:
		s.Controller.Move(dt, dir)
	case Landing:
		step := landingAngularSpeed * dt
		site := &s.current.Landing
		switch dir {
		case entity.Forward:
			site.Phi = math.WrapPi(site.Phi + step)
		case entity.Backward:
			site.Phi = math.WrapPi(site.Phi - step)
		case entity.Left:
			site.Theta = mgl32.Clamp(site.Theta-step, minTheta, maxTheta)
		case entity.Right:
			site.Theta = mgl32.Clamp(site.Theta+step, minTheta, maxTheta)
		}
	}
}

// Rotate turns the ship in Free mode only.
func (s *Ship) Rotate(dt float32, dir entity.RotateDirection) {
	if s.current.Mode == Free {
		s.Controller.Rotate(dt, dir)
	}
}

var (
	_ entity.Controllable = (*Ship)(nil)
	_ entity.StateDriven  = (*Ship)(nil)
)
