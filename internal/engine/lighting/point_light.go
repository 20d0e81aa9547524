// Package lighting provides point lights that can track scene entities.
package lighting

import (
	"sync/atomic"

	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 32

var nextLightID atomic.Uint32

// PointLight is a light source at a position, optionally anchored to an entity.
type PointLight struct {
	id        uint32
	Position  math.Vec3
	Color     [3]float32 // RGB, 0-1
	Intensity float32

	anchor entity.Spatial
}

// NewPointLight creates a light with a process-unique id. Light ids are
// counted separately from entity ids.
func NewPointLight(position math.Vec3, color [3]float32, intensity float32) *PointLight {
	for i := range color {
		color[i] = min(max(color[i], 0), 1)
	}
	return &PointLight{
		id:        nextLightID.Add(1) - 1,
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}

func (l *PointLight) ID() uint32 { return l.id }

// SetPosition moves the light.
func (l *PointLight) SetPosition(p math.Vec3) { l.Position = p }

// Follow anchors the light to e; Update then copies e's world position.
// A nil entity releases the anchor.
func (l *PointLight) Follow(e entity.Spatial) { l.anchor = e }

// Anchor returns the followed entity, if any.
func (l *PointLight) Anchor() entity.Spatial { return l.anchor }

// Update moves an anchored light to its anchor's world position. Call it
// after the hierarchy update.
func (l *PointLight) Update() {
	if l.anchor != nil {
		l.Position = l.anchor.WorldPosition()
	}
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []*PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]*PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *PointLightBuffer) SetLights(lights []*PointLight) {
	b.Clear()
	count := min(len(lights), MaxPointLights)
	b.Lights = append(b.Lights, lights[:count]...)
	b.Count = count
}

// Positions returns positions as a flat slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) Positions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Position.X
		result[i*3+1] = light.Position.Y
		result[i*3+2] = light.Position.Z
	}
	return result
}

// Colors returns colors premultiplied by intensity as a flat slice.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (b *PointLightBuffer) Colors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Color[0] * light.Intensity
		result[i*3+1] = light.Color[1] * light.Intensity
		result[i*3+2] = light.Color[2] * light.Intensity
	}
	return result
}
