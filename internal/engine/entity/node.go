package entity

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/logger"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// MatrixComposer builds a node's world matrix from its current state.
type MatrixComposer func() math.Mat4

// Node is the base transform: local position, Euler rotation and scale,
// an optional parent, and a cached world matrix with its direction vectors.
//
// Types that embed Node must call Init once before use.
type Node struct {
	id       uint32
	parent   Spatial
	children []Spatial

	position math.Vec3
	rotation math.Vec3
	scale    math.Vec3

	world math.Mat4
	front math.Vec3
	right math.Vec3
	up    math.Vec3

	compose MatrixComposer
}

// NewNode creates an initialized node at the origin with unit scale.
func NewNode() *Node {
	n := &Node{}
	n.Init()
	return n
}

// Init assigns a fresh id, resets the transform and computes the world matrix.
func (n *Node) Init() {
	n.id = NextID()
	n.parent = nil
	n.children = nil
	n.position = math.Vec3{}
	n.rotation = math.Vec3{}
	n.scale = math.Vec3{X: 1, Y: 1, Z: 1}
	n.Refresh()
}

// SetComposer replaces the world matrix construction used by Refresh.
// Passing nil restores ComposeMatrix.
func (n *Node) SetComposer(c MatrixComposer) {
	n.compose = c
}

func (n *Node) ID() uint32 { return n.id }

func (n *Node) Parent() Spatial { return n.parent }

// Children returns a copy of the child list in insertion order.
func (n *Node) Children() []Spatial { return slices.Clone(n.children) }

// SetParent sets the transform parent. Cycles are not detected.
func (n *Node) SetParent(parent Spatial) {
	if parent == nil {
		logger.Warn("set parent: nil parent ignored", zap.Uint32("entity_id", n.id))
		return
	}
	n.parent = parent
}

// AddChild appends a child reference.
func (n *Node) AddChild(child Spatial) {
	if child == nil {
		logger.Warn("add child: nil child ignored", zap.Uint32("entity_id", n.id))
		return
	}
	n.children = append(n.children, child)
}

func (n *Node) LocalPosition() math.Vec3 { return n.position }
func (n *Node) LocalRotation() math.Vec3 { return n.rotation }
func (n *Node) LocalScale() math.Vec3 { return n.scale }

// SetLocalPosition stores p. The world matrix is not recomputed until the
// next LogicUpdate.
func (n *Node) SetLocalPosition(p math.Vec3) { n.position = p }

// SetLocalRotation stores the Euler angles (degrees) and recomputes the
// world matrix immediately.
func (n *Node) SetLocalRotation(euler math.Vec3) {
	n.rotation = euler
	n.Refresh()
}

// SetLocalScale stores s. The world matrix is not recomputed until the next
// LogicUpdate.
func (n *Node) SetLocalScale(s math.Vec3) { n.scale = s }

// WorldPosition sums local positions up the parent chain.
func (n *Node) WorldPosition() math.Vec3 {
	p := n.position
	for cur := n.parent; cur != nil; cur = cur.Parent() {
		p = p.Add(cur.LocalPosition())
	}
	return p
}

// WorldRotation sums Euler angles up the parent chain and wraps each axis
// to [-180, 180). This is an approximation, not a matrix decomposition.
func (n *Node) WorldRotation() math.Vec3 {
	r := n.rotation
	for cur := n.parent; cur != nil; cur = cur.Parent() {
		r = r.Add(cur.LocalRotation())
	}
	return math.WrapEuler(r)
}

// WorldScale multiplies local scales up the parent chain.
func (n *Node) WorldScale() math.Vec3 {
	s := n.scale
	for cur := n.parent; cur != nil; cur = cur.Parent() {
		s = s.Mul(cur.LocalScale())
	}
	return s
}

// WorldMatrix returns the matrix cached by the last Refresh.
func (n *Node) WorldMatrix() math.Mat4 { return n.world }

func (n *Node) Front() math.Vec3 { return n.front }
func (n *Node) Right() math.Vec3 { return n.right }
func (n *Node) Up() math.Vec3 { return n.up }

// LogicUpdate recomposes the world matrix.
func (n *Node) LogicUpdate(dt float32) {
	n.Refresh()
}

// ComposeMatrix returns parent · T · R · S, so scale applies first. The
// parent's cached matrix is used as is.
func (n *Node) ComposeMatrix() math.Mat4 {
	local := math.TRS(
		math.TranslateVec3(n.position),
		math.RotationEuler(n.rotation),
		math.ScaleVec3(n.scale),
	)
	if n.parent == nil {
		return local
	}
	return n.parent.WorldMatrix().Mul(local)
}

// Refresh recomputes the world matrix and direction vectors.
func (n *Node) Refresh() {
	if n.compose != nil {
		n.ApplyWorldMatrix(n.compose())
		return
	}
	n.ApplyWorldMatrix(n.ComposeMatrix())
}

// ApplyWorldMatrix caches m and derives unit right, up and front vectors
// from its basis columns.
func (n *Node) ApplyWorldMatrix(m math.Mat4) {
	n.world = m
	n.right = m.AxisX().Normalize()
	n.up = m.AxisY().Normalize()
	n.front = m.AxisZ().Normalize()
}
