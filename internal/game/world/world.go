// Package world builds the universe (bodies, ship, light and cameras)
// from configuration and runs its per-frame logic.
package world

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/config"
	"github.com/Faultbox/celestial-rover/internal/engine/camera"
	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/internal/engine/input"
	"github.com/Faultbox/celestial-rover/internal/engine/lighting"
	"github.com/Faultbox/celestial-rover/internal/engine/scene"
	"github.com/Faultbox/celestial-rover/internal/game/celestial"
	"github.com/Faultbox/celestial-rover/internal/game/controls"
	"github.com/Faultbox/celestial-rover/internal/game/spaceship"
	"github.com/Faultbox/celestial-rover/internal/logger"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

var (
	// ErrUnknownBody is returned when a name refers to no declared body.
	ErrUnknownBody = errors.New("unknown body")
	// ErrDuplicateBody is returned when two bodies share a name.
	ErrDuplicateBody = errors.New("duplicate body")
)

// Kind tells frontends how to draw an entity.
type Kind uint8

const (
	KindBody Kind = iota
	KindShip
	KindSkybox
)

// Appearance is the frontend-independent look of an entity.
type Appearance struct {
	Kind     Kind
	Name     string
	Color    [3]float32
	Emissive bool
}

// Universe owns every entity of a running simulation.
type Universe struct {
	Scene *scene.Manager

	Bodies []*celestial.Body
	byName map[string]*celestial.Body

	Ship   *spaceship.Ship
	Light  *lighting.PointLight
	Skybox *entity.Node

	FirstPerson *camera.FirstPerson
	ThirdPerson *camera.ThirdPerson
	active      camera.Camera

	Destinations []controls.Destination

	appearance map[uint32]Appearance
	rng        *rand.Rand
}

// Build creates a universe from scene and camera settings. seed drives
// the initial orbit and spin phases; zero picks one at random.
func Build(sc config.SceneConfig, cc config.CameraConfig, seed uint64) (*Universe, error) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	u := &Universe{
		Scene:      scene.NewManager(),
		byName:     make(map[string]*celestial.Body),
		appearance: make(map[uint32]Appearance),
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}

	for _, bc := range sc.Bodies {
		if err := u.addBody(bc); err != nil {
			return nil, err
		}
	}
	if err := u.addShip(sc.Ship); err != nil {
		return nil, err
	}
	if err := u.addLight(sc.Light); err != nil {
		return nil, err
	}
	for _, dc := range sc.Destinations {
		d, err := u.destination(dc)
		if err != nil {
			return nil, fmt.Errorf("destination %d: %w", dc.Key, err)
		}
		u.Destinations = append(u.Destinations, d)
	}

	if sc.SkyboxScale > 0 {
		u.Skybox = entity.NewNode()
		u.Skybox.SetLocalScale(math.Vec3{X: sc.SkyboxScale, Y: sc.SkyboxScale, Z: sc.SkyboxScale})
		u.Skybox.Refresh()
		u.Scene.RegisterStatic(u.Skybox)
		u.appearance[u.Skybox.ID()] = Appearance{Kind: KindSkybox, Name: "skybox", Color: [3]float32{0.01, 0.01, 0.04}, Emissive: true}
	}

	u.buildCameras(cc)
	u.Scene.RebuildRoots()

	logger.Info("universe built",
		zap.Int("bodies", len(u.Bodies)),
		zap.Int("destinations", len(u.Destinations)),
		zap.Uint64("seed", seed),
	)
	return u, nil
}

func (u *Universe) addBody(bc config.BodyConfig) error {
	if _, dup := u.byName[bc.Name]; dup {
		return fmt.Errorf("body %q: %w", bc.Name, ErrDuplicateBody)
	}

	b := celestial.NewBody(bc.Name)
	b.SetLocalPosition(vec(bc.Position))
	b.SetLocalRotation(vec(bc.Rotation))
	if bc.Scale > 0 {
		b.SetLocalScale(math.Vec3{X: bc.Scale, Y: bc.Scale, Z: bc.Scale})
	}
	b.SetSpinSpeed(bc.SpinSpeed)
	b.SetSpinAngle(u.rng.Float32() * math.TwoPi)

	if bc.Primary != "" {
		p, ok := u.byName[bc.Primary]
		if !ok {
			return fmt.Errorf("body %q primary %q: %w", bc.Name, bc.Primary, ErrUnknownBody)
		}
		b.SetPrimary(p)
	}
	if bc.Orbit != nil {
		o, err := celestial.NewOrbit(math.Vec3{}, bc.Orbit.SemiMajorAxis, bc.Orbit.Eccentricity, bc.Orbit.AngularSpeed)
		if err != nil {
			return fmt.Errorf("body %q: %w", bc.Name, err)
		}
		o.SetPhase(u.rng.Float32() * math.TwoPi)
		b.SetOrbit(o)
	}
	b.Refresh()

	u.Bodies = append(u.Bodies, b)
	u.byName[bc.Name] = b
	u.Scene.RegisterStatic(b)
	u.appearance[b.ID()] = Appearance{Kind: KindBody, Name: bc.Name, Color: bc.Color}
	return nil
}

func (u *Universe) addShip(sc config.ShipConfig) error {
	s := spaceship.NewShip()
	s.SetLocalPosition(vec(sc.Position))
	if sc.Scale > 0 {
		s.SetLocalScale(math.Vec3{X: sc.Scale, Y: sc.Scale, Z: sc.Scale})
	}
	if sc.MoveSpeed > 0 {
		s.SetMoveSpeed(sc.MoveSpeed)
	}
	if sc.RotationSpeed > 0 {
		s.SetRotationSpeed(sc.RotationSpeed)
	}
	if sc.TransferSpeed > 0 {
		s.SetTransferSpeed(sc.TransferSpeed)
	}
	s.SetLocalRotation(vec(sc.Rotation))

	u.Ship = s
	u.Scene.RegisterControllable(s)
	u.appearance[s.ID()] = Appearance{Kind: KindShip, Name: "ship", Color: [3]float32{0.9, 0.9, 1}}

	if sc.Initial.Mode == "" {
		return nil
	}
	d, err := u.destination(sc.Initial)
	if err != nil {
		return fmt.Errorf("initial ship state: %w", err)
	}
	s.SetState(d.Mode, d.Target, u.newOrbit(d.Orbit))
	return nil
}

func (u *Universe) addLight(lc config.LightConfig) error {
	l := lighting.NewPointLight(math.Vec3{}, lc.Color, lc.Intensity)
	if lc.Anchor != "" {
		b, ok := u.byName[lc.Anchor]
		if !ok {
			return fmt.Errorf("light anchor %q: %w", lc.Anchor, ErrUnknownBody)
		}
		l.Follow(b)
		l.Update()
		a := u.appearance[b.ID()]
		a.Emissive = true
		u.appearance[b.ID()] = a
	}
	u.Light = l
	u.Scene.RegisterLight(l)
	return nil
}

func (u *Universe) destination(dc config.DestinationConfig) (controls.Destination, error) {
	key, ok := input.DigitKey(dc.Key)
	if !ok {
		return controls.Destination{}, fmt.Errorf("key %d is not a digit", dc.Key)
	}
	mode, ok := spaceship.ParseMode(dc.Mode)
	if !ok {
		return controls.Destination{}, fmt.Errorf("unknown mode %q", dc.Mode)
	}
	d := controls.Destination{Key: key, Mode: mode}
	if dc.Target != "" {
		b, ok := u.byName[dc.Target]
		if !ok {
			return controls.Destination{}, fmt.Errorf("target %q: %w", dc.Target, ErrUnknownBody)
		}
		d.Target = b
	}
	if dc.Orbit != nil {
		d.Orbit = &controls.OrbitParams{
			SemiMajorAxis: dc.Orbit.SemiMajorAxis,
			Eccentricity:  dc.Orbit.Eccentricity,
			AngularSpeed:  dc.Orbit.AngularSpeed,
		}
	}
	return d, nil
}

// newOrbit creates a target-relative orbit with a seeded phase.
func (u *Universe) newOrbit(p *controls.OrbitParams) *celestial.Orbit {
	if p == nil {
		return nil
	}
	o, err := celestial.NewOrbit(math.Vec3{}, p.SemiMajorAxis, p.Eccentricity, p.AngularSpeed)
	if err != nil {
		logger.Warn("world: invalid orbit", zap.Error(err))
		return nil
	}
	o.SetPhase(u.rng.Float32() * math.TwoPi)
	return o
}

func (u *Universe) buildCameras(cc config.CameraConfig) {
	lens := camera.DefaultLens()
	if cc.FOV > 0 {
		lens.FOV = mgl32.DegToRad(cc.FOV)
	}
	if cc.Near > 0 {
		lens.Near = cc.Near
	}
	if cc.Far > lens.Near {
		lens.Far = cc.Far
	}

	u.FirstPerson = camera.NewFirstPerson(u.Ship, lens, vec(cc.FirstPerson))

	tp := camera.NewThirdPerson(u.Ship, lens)
	if cc.MaxDistance > 0 {
		tp.SetDistanceBounds(cc.MinDistance, cc.MaxDistance)
	}
	if cc.Distance > 0 {
		tp.SetDistance(cc.Distance)
	}
	if cc.ZoomSpeed > 0 {
		tp.ZoomSpeed = cc.ZoomSpeed
	}
	if cc.DragSensitivity > 0 {
		tp.DragSensitivity = cc.DragSensitivity
	}
	u.ThirdPerson = tp

	if cc.Active == "first" {
		u.active = u.FirstPerson
	} else {
		u.active = u.ThirdPerson
	}
}

// Body returns the body called name.
func (u *Universe) Body(name string) (*celestial.Body, error) {
	b, ok := u.byName[name]
	if !ok {
		return nil, fmt.Errorf("body %q: %w", name, ErrUnknownBody)
	}
	return b, nil
}

// Appearance returns how entity id should be drawn.
func (u *Universe) Appearance(id uint32) (Appearance, bool) {
	a, ok := u.appearance[id]
	return a, ok
}

// Camera returns the active camera.
func (u *Universe) Camera() camera.Camera { return u.active }

// SwitchCamera activates the chosen camera.
func (u *Universe) SwitchCamera(choice controls.CameraChoice) {
	switch choice {
	case controls.CameraFirstPerson:
		u.active = u.FirstPerson
	case controls.CameraThirdPerson:
		u.active = u.ThirdPerson
	default:
		return
	}
	u.active.LogicUpdate(0)
	logger.Debug("camera switched", zap.Uint8("camera", uint8(choice)))
}

// SetAspectRatio updates both cameras.
func (u *Universe) SetAspectRatio(aspect float32) {
	u.FirstPerson.SetAspectRatio(aspect)
	u.ThirdPerson.SetAspectRatio(aspect)
}

// LogicUpdate advances the scene, then the active camera, then the lights.
func (u *Universe) LogicUpdate(dt float32) {
	u.Scene.LogicUpdate(dt)
	u.active.LogicUpdate(dt)
	if u.Skybox != nil {
		u.Skybox.SetLocalPosition(u.active.Position())
		u.Skybox.Refresh()
	}
	u.Scene.UpdateLights()
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
