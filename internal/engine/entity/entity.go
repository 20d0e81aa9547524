// Package entity implements the transform hierarchy shared by every object
// in the scene, plus the capability interfaces layered on top of it.
package entity

import (
	"sync/atomic"

	"github.com/Faultbox/celestial-rover/pkg/math"
)

var nextID atomic.Uint32

// NextID returns a process-unique entity id. Ids start at 0 and are never reused.
func NextID() uint32 {
	return nextID.Add(1) - 1
}

// Spatial is an entity placed in the transform hierarchy.
type Spatial interface {
	ID() uint32

	Parent() Spatial
	Children() []Spatial
	SetParent(parent Spatial)
	AddChild(child Spatial)

	LocalPosition() math.Vec3
	LocalRotation() math.Vec3 // pitch, yaw, roll in degrees
	LocalScale() math.Vec3
	SetLocalPosition(p math.Vec3)
	SetLocalRotation(euler math.Vec3)
	SetLocalScale(s math.Vec3)

	WorldPosition() math.Vec3
	WorldRotation() math.Vec3
	WorldScale() math.Vec3
	WorldMatrix() math.Mat4

	Front() math.Vec3
	Right() math.Vec3
	Up() math.Vec3

	// LogicUpdate advances the entity by dt seconds and recomposes its
	// world matrix. Parents must be updated before their children.
	LogicUpdate(dt float32)
}

// Controllable is a Spatial that accepts per-frame move and rotate input.
type Controllable interface {
	Spatial
	Move(dt float32, dir MoveDirection)
	Rotate(dt float32, dir RotateDirection)
}

// Orbitable is a Spatial that can be landed on or orbited.
type Orbitable interface {
	Spatial
	Radius() float32
	WorldRotationMatrix() math.Mat4
}

// StateDriven is a Spatial whose transform is driven by a state machine.
type StateDriven interface {
	Spatial
	Transitioning() bool
}

// MoveDirection selects a translation axis for Move.
type MoveDirection uint8

const (
	Forward MoveDirection = iota
	Backward
	Left
	Right
	Up
	Down
)

var moveDirectionNames = [...]string{"forward", "backward", "left", "right", "up", "down"}

func (d MoveDirection) String() string {
	if int(d) < len(moveDirectionNames) {
		return moveDirectionNames[d]
	}
	return "unknown"
}

// RotateDirection selects a rotation for Rotate.
type RotateDirection uint8

const (
	YawLeft RotateDirection = iota
	YawRight
	PitchUp
	PitchDown
)

var rotateDirectionNames = [...]string{"yaw-left", "yaw-right", "pitch-up", "pitch-down"}

func (d RotateDirection) String() string {
	if int(d) < len(rotateDirectionNames) {
		return rotateDirectionNames[d]
	}
	return "unknown"
}

// Attach links child under parent in both directions.
func Attach(parent, child Spatial) {
	child.SetParent(parent)
	parent.AddChild(child)
}
