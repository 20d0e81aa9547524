package scene

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/internal/engine/lighting"
	"github.com/Faultbox/celestial-rover/internal/logger"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// probe records the order of LogicUpdate calls and the parent's matrix
// translation seen at that time.
type probe struct {
	*entity.Node
	name        string
	log         *[]string
	parentSeenX float32
}

func newProbe(name string, log *[]string) *probe {
	return &probe{Node: entity.NewNode(), name: name, log: log}
}

func (p *probe) LogicUpdate(dt float32) {
	*p.log = append(*p.log, p.name)
	if parent := p.Parent(); parent != nil {
		p.parentSeenX = parent.WorldMatrix().Translation().X
	}
	p.Node.LogicUpdate(dt)
}

type recordingDrawer struct {
	lights int
	drawn  []uint32
	order  []string
}

func (d *recordingDrawer) BindLights(buf *lighting.PointLightBuffer) {
	d.lights = buf.Count
	d.order = append(d.order, "lights")
}

func (d *recordingDrawer) DrawEntity(e entity.Spatial) {
	d.drawn = append(d.drawn, e.ID())
	d.order = append(d.order, "entity")
}

func TestRegistries(t *testing.T) {
	m := NewManager()
	static := entity.NewNode()
	ctl := entity.NewController()
	light := lighting.NewPointLight(math.Vec3{}, [3]float32{1, 1, 1}, 1)

	m.RegisterStatic(static)
	m.RegisterControllable(ctl)
	m.RegisterLight(light)

	if m.Entity(static.ID()) != static || m.Entity(ctl.ID()) != ctl {
		t.Error("entities not found by id")
	}
	if m.Controllable(ctl.ID()) != ctl {
		t.Error("controllable not found by id")
	}
	if m.Controllable(static.ID()) != nil {
		t.Error("static entity must not be controllable")
	}
	if m.Light(light.ID()) != light {
		t.Error("light not found by id")
	}
	if m.Entity(1 << 30) != nil {
		t.Error("unknown id should return nil")
	}
	if m.Count() != 2 {
		t.Errorf("count = %d, want 2", m.Count())
	}

	m.Remove(ctl.ID())
	if m.Entity(ctl.ID()) != nil || m.Controllable(ctl.ID()) != nil {
		t.Error("Remove should drop the entity from every registry")
	}
}

func TestNilRegistrationWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defer logger.Use(zap.New(core))()

	m := NewManager()
	m.RegisterStatic(nil)
	m.RegisterControllable(nil)
	m.RegisterLight(nil)

	if m.Count() != 0 || len(m.Lights()) != 0 {
		t.Error("nil registrations must be skipped")
	}
	if logs.Len() != 3 {
		t.Errorf("expected 3 warnings, got %d", logs.Len())
	}
}

func TestRebuildRoots(t *testing.T) {
	m := NewManager()
	a, b, c := entity.NewNode(), entity.NewNode(), entity.NewNode()
	entity.Attach(a, c)
	m.RegisterStatic(c)
	m.RegisterStatic(b)
	m.RegisterStatic(a)

	m.RebuildRoots()
	roots := m.Roots()
	if len(roots) != 2 || roots[0] != a || roots[1] != b {
		t.Errorf("roots = %v, want [a b] in id order", roots)
	}
}

func TestLogicUpdateTopDown(t *testing.T) {
	var log []string
	m := NewManager()

	root := newProbe("root", &log)
	child := newProbe("child", &log)
	grandchild := newProbe("grandchild", &log)
	sibling := newProbe("sibling", &log)
	entity.Attach(root, child)
	entity.Attach(child, grandchild)
	entity.Attach(root, sibling)

	for _, p := range []*probe{grandchild, sibling, child, root} {
		m.RegisterStatic(p)
	}
	m.RebuildRoots()

	root.SetLocalPosition(math.Vec3{X: 7})
	m.LogicUpdate(0.016)

	want := []string{"root", "child", "grandchild", "sibling"}
	if len(log) != len(want) {
		t.Fatalf("update order = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("update order = %v, want %v", log, want)
		}
	}
	if child.parentSeenX != 7 {
		t.Errorf("child saw parent x = %v, want 7 (parent updated first)", child.parentSeenX)
	}
	if grandchild.parentSeenX != 7 {
		t.Errorf("grandchild saw parent x = %v, want 7", grandchild.parentSeenX)
	}
}

func TestGraphicsUpdateBindsLightsFirst(t *testing.T) {
	m := NewManager()
	a, b := entity.NewNode(), entity.NewNode()
	m.RegisterStatic(b)
	m.RegisterStatic(a)
	m.RegisterLight(lighting.NewPointLight(math.Vec3{}, [3]float32{1, 1, 1}, 1))

	d := &recordingDrawer{}
	m.GraphicsUpdate(d)

	if d.lights != 1 {
		t.Errorf("bound %d lights, want 1", d.lights)
	}
	if len(d.order) != 3 || d.order[0] != "lights" {
		t.Errorf("pass order = %v, want lights first", d.order)
	}
	if len(d.drawn) != 2 || d.drawn[0] != a.ID() || d.drawn[1] != b.ID() {
		t.Errorf("drawn = %v, want ascending ids", d.drawn)
	}
}

func TestUpdateLightsFollowsAnchor(t *testing.T) {
	m := NewManager()
	sun := entity.NewNode()
	sun.SetLocalPosition(math.Vec3{X: 500, Y: 500, Z: 500})
	l := lighting.NewPointLight(math.Vec3{}, [3]float32{1, 1, 1}, 1)
	l.Follow(sun)
	m.RegisterStatic(sun)
	m.RegisterLight(l)
	m.RebuildRoots()

	m.LogicUpdate(0.016)
	m.UpdateLights()

	if l.Position != (math.Vec3{X: 500, Y: 500, Z: 500}) {
		t.Errorf("light at %v, want sun position", l.Position)
	}
}

func TestClear(t *testing.T) {
	m := NewManager()
	m.RegisterControllable(entity.NewController())
	m.RegisterLight(lighting.NewPointLight(math.Vec3{}, [3]float32{}, 0))
	m.RebuildRoots()

	m.Clear()
	if m.Count() != 0 || len(m.Lights()) != 0 || len(m.Roots()) != 0 {
		t.Error("Clear should empty every registry")
	}
}
