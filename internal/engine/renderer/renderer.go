// Package renderer draws scene entities with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/engine/entity"
	"github.com/Faultbox/celestial-rover/internal/engine/lighting"
	"github.com/Faultbox/celestial-rover/internal/engine/model"
	"github.com/Faultbox/celestial-rover/internal/engine/scene"
	"github.com/Faultbox/celestial-rover/internal/engine/shader"
	"github.com/Faultbox/celestial-rover/internal/logger"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Shape selects the mesh an entity is drawn with.
type Shape uint8

const (
	ShapeSphere Shape = iota
	ShapeShip
)

// Style describes how one entity is drawn.
type Style struct {
	Shape Shape
	Color [3]float32
	// Emissive entities ignore lighting.
	Emissive bool
}

var defaultStyle = Style{Shape: ShapeSphere, Color: [3]float32{0.7, 0.7, 0.7}}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Renderer implements scene.Drawer for an OpenGL context.
type Renderer struct {
	config Config

	program *shader.Program
	meshes  map[Shape]*gpuMesh
	styles  map[uint32]Style

	view       math.Mat4
	projection math.Mat4
}

// New creates a renderer. It must be called after the GL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[Shape]*gpuMesh),
		styles: make(map[uint32]Style),
		view:   math.Identity(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.01, 0.01, 0.03, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.New(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.meshes[ShapeSphere] = upload(model.Sphere(16, 32))
	r.meshes[ShapeShip] = upload(model.Ship())

	return r, nil
}

// Close releases GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	clear(r.meshes)
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetStyle sets how entity id is drawn.
func (r *Renderer) SetStyle(id uint32, s Style) {
	r.styles[id] = s
}

// Begin clears the frame and loads the camera matrices.
func (r *Renderer) Begin(view, projection math.Mat4) {
	r.view = view
	r.projection = projection
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	r.program.SetMat4("uView", view)
	r.program.SetMat4("uProjection", projection)
}

// BindLights uploads the point lights for this frame.
func (r *Renderer) BindLights(buf *lighting.PointLightBuffer) {
	r.program.SetInt("uLightCount", int32(buf.Count))
	r.program.SetVec3Array("uLightPos", buf.Positions())
	r.program.SetVec3Array("uLightColor", buf.Colors())
}

// DrawEntity draws e with its style at its world matrix.
func (r *Renderer) DrawEntity(e entity.Spatial) {
	style, ok := r.styles[e.ID()]
	if !ok {
		style = defaultStyle
	}
	m := r.meshes[style.Shape]
	if m == nil {
		return
	}

	emissive := int32(0)
	if style.Emissive {
		emissive = 1
	}
	r.program.SetMat4("uModel", e.WorldMatrix())
	r.program.SetVec3("uColor", style.Color)
	r.program.SetInt("uEmissive", emissive)

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// End finishes the current frame.
func (r *Renderer) End() {}

func upload(mesh *model.Mesh) *gpuMesh {
	m := &gpuMesh{indexCount: int32(len(mesh.Indices))}
	stride := int32(unsafe.Sizeof(model.Vertex{}))

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return m
}

var _ scene.Drawer = (*Renderer)(nil)
