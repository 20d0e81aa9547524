package controls

import (
	"testing"

	"github.com/Faultbox/celestial-rover/internal/engine/camera"
	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/internal/engine/input"
	"github.com/Faultbox/celestial-rover/internal/game/celestial"
	"github.com/Faultbox/celestial-rover/internal/game/spaceship"
)

type stateRequest struct {
	mode   spaceship.Mode
	target entity.Orbitable
	orbit  *celestial.Orbit
}

type fakeShip struct {
	*entity.Node
	moves    []entity.MoveDirection
	turns    []entity.RotateDirection
	requests []stateRequest
}

func newFakeShip() *fakeShip { return &fakeShip{Node: entity.NewNode()} }

func (f *fakeShip) Move(_ float32, dir entity.MoveDirection) { f.moves = append(f.moves, dir) }
func (f *fakeShip) Rotate(_ float32, dir entity.RotateDirection) { f.turns = append(f.turns, dir) }
func (f *fakeShip) SetState(mode spaceship.Mode, target entity.Orbitable, orbit *celestial.Orbit) {
	f.requests = append(f.requests, stateRequest{mode, target, orbit})
}

type fakeCamera struct {
	camera.Camera
	dx, dy float32
	zoom   float32
}

func (c *fakeCamera) Drag(dx, dy float32) {
	c.dx += dx
	c.dy += dy
}

func (c *fakeCamera) Zoom(d float32) { c.zoom += d }

func frame(keys ...input.Key) *input.Snapshot {
	s := input.NewSnapshot()
	s.BeginFrame()
	for _, k := range keys {
		s.Press(k)
	}
	return s
}

func TestMoveAxesFirstWins(t *testing.T) {
	tests := []struct {
		name string
		keys []input.Key
		want []entity.MoveDirection
	}{
		{"forward", []input.Key{input.KeyW}, []entity.MoveDirection{entity.Forward}},
		{"backward", []input.Key{input.KeyS}, []entity.MoveDirection{entity.Backward}},
		{"w beats s", []input.Key{input.KeyW, input.KeyS}, []entity.MoveDirection{entity.Forward}},
		{"d beats a", []input.Key{input.KeyA, input.KeyD}, []entity.MoveDirection{entity.Right}},
		{"left", []input.Key{input.KeyA}, []entity.MoveDirection{entity.Left}},
		{"e beats q", []input.Key{input.KeyQ, input.KeyE}, []entity.MoveDirection{entity.Up}},
		{"down", []input.Key{input.KeyQ}, []entity.MoveDirection{entity.Down}},
		{"three axes", []input.Key{input.KeyW, input.KeyA, input.KeyQ},
			[]entity.MoveDirection{entity.Forward, entity.Left, entity.Down}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ship := newFakeShip()
			New(ship, nil).Update(frame(tt.keys...), 0.1, nil)
			if len(ship.moves) != len(tt.want) {
				t.Fatalf("moves = %v, want %v", ship.moves, tt.want)
			}
			for i := range tt.want {
				if ship.moves[i] != tt.want[i] {
					t.Errorf("moves = %v, want %v", ship.moves, tt.want)
				}
			}
		})
	}
}

func TestArrowsRotate(t *testing.T) {
	ship := newFakeShip()
	c := New(ship, nil)

	c.Update(frame(input.KeyArrowLeft, input.KeyArrowUp), 0.1, nil)
	want := []entity.RotateDirection{entity.YawLeft, entity.PitchUp}
	if len(ship.turns) != 2 || ship.turns[0] != want[0] || ship.turns[1] != want[1] {
		t.Errorf("turns = %v, want %v", ship.turns, want)
	}

	ship.turns = nil
	c.Update(frame(input.KeyArrowRight, input.KeyArrowLeft, input.KeyArrowDown), 0.1, nil)
	want = []entity.RotateDirection{entity.YawRight, entity.PitchDown}
	if len(ship.turns) != 2 || ship.turns[0] != want[0] || ship.turns[1] != want[1] {
		t.Errorf("turns = %v, want %v", ship.turns, want)
	}
}

func TestDestinationsAreEdgeTriggered(t *testing.T) {
	earth := celestial.NewBody("earth")
	ship := newFakeShip()
	c := New(ship, []Destination{
		{Key: input.Key0, Mode: spaceship.Free},
		{Key: input.Key1, Mode: spaceship.Landing, Target: earth},
		{Key: input.Key3, Mode: spaceship.Orbiting, Target: earth, Orbit: &OrbitParams{10, 0.2, 1}},
	})

	s := input.NewSnapshot()
	s.BeginFrame()
	s.Press(input.Key1)
	c.Update(s, 0.1, nil)

	// Held on the next frame: no new request.
	s.BeginFrame()
	c.Update(s, 0.1, nil)

	if len(ship.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(ship.requests))
	}
	r := ship.requests[0]
	if r.mode != spaceship.Landing || r.target != earth || r.orbit != nil {
		t.Errorf("request = %+v", r)
	}

	// Unbound digit does nothing.
	c.Update(frame(input.Key7), 0.1, nil)
	if len(ship.requests) != 1 {
		t.Errorf("unbound key issued a request")
	}
}

func TestOrbitDestinationCreatesFreshOrbit(t *testing.T) {
	earth := celestial.NewBody("earth")
	ship := newFakeShip()
	c := New(ship, []Destination{
		{Key: input.Key3, Mode: spaceship.Orbiting, Target: earth, Orbit: &OrbitParams{10, 0.2, 1}},
	})

	c.Update(frame(input.Key3), 0.1, nil)
	c.Update(frame(input.Key3), 0.1, nil)

	if len(ship.requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(ship.requests))
	}
	a, b := ship.requests[0].orbit, ship.requests[1].orbit
	if a == nil || b == nil {
		t.Fatal("orbit destination produced nil orbit")
	}
	if a == b {
		t.Error("each press should create a new orbit")
	}
	if a.SemiMajorAxis() != 10 || a.Eccentricity() != 0.2 || a.AngularSpeed() != 1 {
		t.Errorf("orbit = a%v e%v w%v", a.SemiMajorAxis(), a.Eccentricity(), a.AngularSpeed())
	}
	if ctr := a.Center(); ctr.X != 0 || ctr.Y != 0 || ctr.Z != 0 {
		t.Errorf("orbit center = %v, want origin", ctr)
	}
}

func TestBadOrbitDestinationSkipped(t *testing.T) {
	ship := newFakeShip()
	c := New(ship, []Destination{
		{Key: input.Key4, Mode: spaceship.Orbiting, Target: celestial.NewBody("x"), Orbit: &OrbitParams{10, 1.5, 1}},
	})
	c.Update(frame(input.Key4), 0.1, nil)
	if len(ship.requests) != 0 {
		t.Error("invalid orbit reached the ship")
	}
}

func TestBindRejectsNonDigit(t *testing.T) {
	c := New(newFakeShip(), []Destination{{Key: input.KeyW, Mode: spaceship.Free}})
	if _, ok := c.Destination(input.KeyW); ok {
		t.Error("non-digit key was bound")
	}

	c.Bind(Destination{Key: input.Key2, Mode: spaceship.Free})
	c.Bind(Destination{Key: input.Key2, Mode: spaceship.Landing})
	if d, _ := c.Destination(input.Key2); d.Mode != spaceship.Landing {
		t.Errorf("rebinding kept %v", d.Mode)
	}
}

func TestCommands(t *testing.T) {
	c := New(newFakeShip(), nil)

	tests := []struct {
		name string
		keys []input.Key
		want Command
	}{
		{"none", nil, Command{}},
		{"quit", []input.Key{input.KeyEscape}, Command{Quit: true}},
		{"pause", []input.Key{input.KeyP}, Command{TogglePause: true}},
		{"first person", []input.Key{input.KeyF1}, Command{Camera: CameraFirstPerson}},
		{"third person", []input.Key{input.KeyF2}, Command{Camera: CameraThirdPerson}},
		{"f1 beats f2", []input.Key{input.KeyF2, input.KeyF1}, Command{Camera: CameraFirstPerson}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Update(frame(tt.keys...), 0.1, nil); got != tt.want {
				t.Errorf("command = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMouseDragNeedsButton(t *testing.T) {
	c := New(nil, nil)
	cam := &fakeCamera{}

	s := frame()
	s.MoveMouse(5, 3)
	s.Scroll(2)
	c.Update(s, 0.1, cam)
	if cam.dx != 0 || cam.dy != 0 {
		t.Error("drag applied without mouse button")
	}
	if cam.zoom != 2 {
		t.Errorf("zoom = %v, want 2", cam.zoom)
	}

	s = frame(input.MouseLeft)
	s.MoveMouse(5, 3)
	c.Update(s, 0.1, cam)
	if cam.dx != 5 || cam.dy != 3 {
		t.Errorf("drag = %v,%v, want 5,3", cam.dx, cam.dy)
	}
}

func TestCommandsIgnoreShip(t *testing.T) {
	ship := newFakeShip()
	c := New(ship, []Destination{{Key: input.Key0, Mode: spaceship.Free}})
	s := frame(input.KeyW, input.Key0, input.KeyP)

	if got := Commands(s); got != (Command{TogglePause: true}) {
		t.Errorf("Commands = %+v", got)
	}
	if len(ship.moves) != 0 || len(ship.requests) != 0 {
		t.Error("Commands touched the ship")
	}

	c.Update(s, 0.1, nil)
	if len(ship.moves) != 1 || len(ship.requests) != 1 {
		t.Error("Update should drive the ship")
	}
}
