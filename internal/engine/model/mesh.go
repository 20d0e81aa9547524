package model

import (
	gomath "math"

	"github.com/Faultbox/celestial-rover/pkg/math"
)

// Sphere builds a unit UV sphere. stacks is clamped to at least 2 and
// slices to at least 3.
func Sphere(stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	m := &Mesh{}
	for i := 0; i <= stacks; i++ {
		theta := gomath.Pi * float64(i) / float64(stacks)
		for j := 0; j <= slices; j++ {
			phi := 2 * gomath.Pi * float64(j) / float64(slices)
			p := [3]float32{
				float32(gomath.Sin(theta) * gomath.Cos(phi)),
				float32(gomath.Cos(theta)),
				float32(gomath.Sin(theta) * gomath.Sin(phi)),
			}
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: p})
		}
	}

	row := uint32(slices + 1)
	for i := range uint32(stacks) {
		for j := range uint32(slices) {
			a := i*row + j
			b := a + row
			// Degenerate triangles at the poles are skipped.
			if i != 0 {
				m.Indices = append(m.Indices, a, a+1, b)
			}
			if i != uint32(stacks)-1 {
				m.Indices = append(m.Indices, a+1, b+1, b)
			}
		}
	}

	m.computeBounds()
	return m
}

// Ship builds a flat-shaded square pyramid with its apex on +Z, so the
// mesh points along an entity's front axis.
func Ship() *Mesh {
	apex := [3]float32{0, 0, 1}
	base := [4][3]float32{
		{-0.5, -0.3, -0.5},
		{0.5, -0.3, -0.5},
		{0.5, 0.3, -0.5},
		{-0.5, 0.3, -0.5},
	}

	m := &Mesh{}
	addTri := func(a, b, c [3]float32) {
		n := faceNormal(a, b, c)
		start := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			Vertex{Position: a, Normal: n},
			Vertex{Position: b, Normal: n},
			Vertex{Position: c, Normal: n},
		)
		m.Indices = append(m.Indices, start, start+1, start+2)
	}

	for i := range base {
		addTri(base[i], base[(i+1)%4], apex)
	}
	addTri(base[0], base[2], base[1])
	addTri(base[0], base[3], base[2])

	m.computeBounds()
	return m
}

func vec(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// faceNormal is the unit normal of the counter-clockwise triangle abc.
func faceNormal(a, b, c [3]float32) [3]float32 {
	n := vec(b).Sub(vec(a)).Cross(vec(c).Sub(vec(a))).Normalize()
	return [3]float32{n.X, n.Y, n.Z}
}
