package lighting

import (
	"testing"

	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

func TestNewPointLight(t *testing.T) {
	a := NewPointLight(math.Vec3{}, [3]float32{1.5, -0.2, 0.5}, 2)
	b := NewPointLight(math.Vec3{}, [3]float32{1, 1, 1}, 1)

	if b.ID() != a.ID()+1 {
		t.Errorf("light ids should be consecutive: %d, %d", a.ID(), b.ID())
	}
	if a.Color != [3]float32{1, 0, 0.5} {
		t.Errorf("color not clamped: %v", a.Color)
	}
}

func TestPointLightFollow(t *testing.T) {
	sun := entity.NewNode()
	sun.SetLocalPosition(math.Vec3{X: 500, Y: 500, Z: 500})

	l := NewPointLight(math.Vec3{}, [3]float32{1, 1, 1}, 1)
	l.Update()
	if l.Position != (math.Vec3{}) {
		t.Errorf("unanchored light moved to %v", l.Position)
	}

	l.Follow(sun)
	l.Update()
	if l.Position != sun.WorldPosition() {
		t.Errorf("light at %v, want %v", l.Position, sun.WorldPosition())
	}

	l.Follow(nil)
	l.SetPosition(math.Vec3{X: 1})
	l.Update()
	if l.Position != (math.Vec3{X: 1}) {
		t.Errorf("released light moved to %v", l.Position)
	}
}

func TestPointLightBuffer(t *testing.T) {
	buf := NewPointLightBuffer()

	lights := make([]*PointLight, MaxPointLights+4)
	for i := range lights {
		lights[i] = NewPointLight(math.Vec3{X: float32(i)}, [3]float32{1, 0.5, 0}, 0.5)
	}
	buf.SetLights(lights)

	if buf.Count != MaxPointLights {
		t.Fatalf("count = %d, want %d", buf.Count, MaxPointLights)
	}

	pos := buf.Positions()
	if len(pos) != MaxPointLights*3 || pos[3] != 1 {
		t.Errorf("unexpected positions %v", pos[:6])
	}
	colors := buf.Colors()
	if colors[0] != 0.5 || colors[1] != 0.25 || colors[2] != 0 {
		t.Errorf("colors not premultiplied: %v", colors[:3])
	}

	buf.Clear()
	if buf.Count != 0 || len(buf.Lights) != 0 {
		t.Error("Clear should empty the buffer")
	}
}
