package entity

import (
	"testing"

	"github.com/Faultbox/celestial-rover/pkg/math"
)

func TestControllerDefaults(t *testing.T) {
	c := NewController()
	if c.MoveSpeed() != 5 || c.RotationSpeed() != 30 {
		t.Errorf("speeds = %v/%v, want 5/30", c.MoveSpeed(), c.RotationSpeed())
	}
	if !c.UnderControl() {
		t.Error("controller should start under control")
	}
}

func TestControllerMove(t *testing.T) {
	tests := []struct {
		dir  MoveDirection
		want math.Vec3
	}{
		{Forward, math.Vec3{Z: 5}},
		{Backward, math.Vec3{Z: -5}},
		{Left, math.Vec3{X: -5}},
		{Right, math.Vec3{X: 5}},
		{Up, math.Vec3{Y: 5}},
		{Down, math.Vec3{Y: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			c := NewController()
			c.Move(1.0, tt.dir)
			if !vecNear(c.LocalPosition(), tt.want) {
				t.Errorf("position = %v, want %v", c.LocalPosition(), tt.want)
			}
		})
	}
}

func TestControllerMoveUsesCachedVectors(t *testing.T) {
	c := NewController()
	c.SetLocalPosition(math.Vec3{X: 100})
	// Position change alone does not refresh; front stays +Z.
	c.Move(0.5, Forward)
	if !vecNear(c.LocalPosition(), math.Vec3{X: 100, Z: 2.5}) {
		t.Errorf("position = %v", c.LocalPosition())
	}
}

func TestControllerRotate(t *testing.T) {
	c := NewController()

	c.Rotate(1, YawRight)
	if c.LocalRotation().Y != 30 {
		t.Errorf("yaw = %v, want 30", c.LocalRotation().Y)
	}
	c.Move(1, Forward)
	want := math.Vec3{X: 2.5, Z: 5 * 0.8660254}
	if !vecNear(c.LocalPosition(), want) {
		t.Errorf("move after yaw used stale vectors: %v, want %v", c.LocalPosition(), want)
	}

	c.SetLocalRotation(math.Vec3{Y: -350})
	c.Rotate(1, YawLeft)
	if got := c.LocalRotation().Y; got != -20 {
		t.Errorf("yaw = %v, want -20 (mod keeps sign)", got)
	}
}

func TestControllerPitchClamp(t *testing.T) {
	c := NewController()

	for range 10 {
		c.Rotate(1, PitchUp)
	}
	if c.LocalRotation().X != -90 {
		t.Errorf("pitch = %v, want -90", c.LocalRotation().X)
	}
	for range 10 {
		c.Rotate(1, PitchDown)
	}
	if c.LocalRotation().X != 90 {
		t.Errorf("pitch = %v, want 90", c.LocalRotation().X)
	}
}

func TestControllerNotUnderControl(t *testing.T) {
	c := NewController()
	c.SetUnderControl(false)

	c.Move(1, Forward)
	c.Rotate(1, YawRight)

	if c.LocalPosition() != (math.Vec3{}) || c.LocalRotation() != (math.Vec3{}) {
		t.Errorf("input applied while not under control: pos %v rot %v", c.LocalPosition(), c.LocalRotation())
	}
}

func TestControllerSatisfiesControllable(t *testing.T) {
	var _ Controllable = NewController()
}
