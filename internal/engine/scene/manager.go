// Package scene owns the entity and light registries and drives the
// per-frame logic and graphics passes over the transform hierarchy.
package scene

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/internal/engine/lighting"
	"github.com/Faultbox/celestial-rover/internal/logger"
)

// Drawer receives the graphics pass. Lights are bound once, then every
// registered entity is drawn.
type Drawer interface {
	BindLights(buf *lighting.PointLightBuffer)
	DrawEntity(e entity.Spatial)
}

// Manager is the registry of scene entities keyed by id.
type Manager struct {
	entities      map[uint32]entity.Spatial
	controllables map[uint32]entity.Controllable
	lights        map[uint32]*lighting.PointLight
	roots         []entity.Spatial
	lightBuf      *lighting.PointLightBuffer
}

// NewManager creates an empty scene.
func NewManager() *Manager {
	return &Manager{
		entities:      make(map[uint32]entity.Spatial),
		controllables: make(map[uint32]entity.Controllable),
		lights:        make(map[uint32]*lighting.PointLight),
		lightBuf:      lighting.NewPointLightBuffer(),
	}
}

// RegisterStatic adds an entity to the registry.
func (m *Manager) RegisterStatic(e entity.Spatial) {
	if e == nil {
		logger.Warn("scene: nil entity not registered")
		return
	}
	m.entities[e.ID()] = e
}

// RegisterControllable adds an entity to both the entity and the
// controllable registries.
func (m *Manager) RegisterControllable(c entity.Controllable) {
	if c == nil {
		logger.Warn("scene: nil controllable not registered")
		return
	}
	m.entities[c.ID()] = c
	m.controllables[c.ID()] = c
}

// RegisterLight adds a light.
func (m *Manager) RegisterLight(l *lighting.PointLight) {
	if l == nil {
		logger.Warn("scene: nil light not registered")
		return
	}
	m.lights[l.ID()] = l
}

// Entity returns the entity with id, or nil.
func (m *Manager) Entity(id uint32) entity.Spatial {
	return m.entities[id]
}

// Controllable returns the controllable entity with id, or nil.
func (m *Manager) Controllable(id uint32) entity.Controllable {
	return m.controllables[id]
}

// Light returns the light with id, or nil.
func (m *Manager) Light(id uint32) *lighting.PointLight {
	return m.lights[id]
}

// Remove drops an entity from every registry. Call RebuildRoots afterwards
// if it was a root.
func (m *Manager) Remove(id uint32) {
	delete(m.entities, id)
	delete(m.controllables, id)
}

// All returns every registered entity in ascending id order.
func (m *Manager) All() []entity.Spatial {
	ids := slices.Sorted(maps.Keys(m.entities))
	result := make([]entity.Spatial, 0, len(ids))
	for _, id := range ids {
		result = append(result, m.entities[id])
	}
	return result
}

// Lights returns every registered light in ascending id order.
func (m *Manager) Lights() []*lighting.PointLight {
	ids := slices.Sorted(maps.Keys(m.lights))
	result := make([]*lighting.PointLight, 0, len(ids))
	for _, id := range ids {
		result = append(result, m.lights[id])
	}
	return result
}

// Count returns the number of registered entities.
func (m *Manager) Count() int {
	return len(m.entities)
}

// Roots returns the roots collected by the last RebuildRoots.
func (m *Manager) Roots() []entity.Spatial {
	return slices.Clone(m.roots)
}

// RebuildRoots collects the registered entities without a parent, in
// ascending id order. Call it after the hierarchy changes.
func (m *Manager) RebuildRoots() {
	m.roots = m.roots[:0]
	for _, e := range m.All() {
		if e.Parent() == nil {
			m.roots = append(m.roots, e)
		}
	}
	logger.Debug("scene roots rebuilt", zap.Int("roots", len(m.roots)), zap.Int("entities", len(m.entities)))
}

// LogicUpdate updates every root and then its subtree, depth first, so
// each parent is current before its children recompose.
func (m *Manager) LogicUpdate(dt float32) {
	for _, root := range m.roots {
		updateTree(root, dt)
	}
}

func updateTree(e entity.Spatial, dt float32) {
	e.LogicUpdate(dt)
	for _, child := range e.Children() {
		updateTree(child, dt)
	}
}

// UpdateLights moves anchored lights to their anchors. Call it after LogicUpdate.
func (m *Manager) UpdateLights() {
	for _, l := range m.lights {
		l.Update()
	}
}

// GraphicsUpdate binds the lights and draws every entity. It must run after
// LogicUpdate in the same frame.
func (m *Manager) GraphicsUpdate(d Drawer) {
	m.lightBuf.SetLights(m.Lights())
	d.BindLights(m.lightBuf)
	for _, e := range m.All() {
		d.DrawEntity(e)
	}
}

// Clear empties every registry.
func (m *Manager) Clear() {
	clear(m.entities)
	clear(m.controllables)
	clear(m.lights)
	m.roots = nil
}
