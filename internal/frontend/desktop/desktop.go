// Package desktop is the windowed OpenGL frontend.
package desktop

import (
	"fmt"

	"github.com/Faultbox/celestial-rover/internal/config"
	"github.com/Faultbox/celestial-rover/internal/engine/input"
	"github.com/Faultbox/celestial-rover/internal/engine/renderer"
	"github.com/Faultbox/celestial-rover/internal/engine/window"
	"github.com/Faultbox/celestial-rover/internal/game"
	"github.com/Faultbox/celestial-rover/internal/game/world"
)

// Desktop implements game.Frontend with an SDL2 window and the GL renderer.
type Desktop struct {
	window   *window.Window
	renderer *renderer.Renderer
	styled   map[uint32]bool
}

// New opens the window and creates the renderer.
func New(cfg config.WindowConfig) (*Desktop, error) {
	w, err := window.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context created by the window.
	width, height := w.DrawableSize()
	r, err := renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return &Desktop{
		window:   w,
		renderer: r,
		styled:   make(map[uint32]bool),
	}, nil
}

// AspectRatio returns the window's width/height.
func (d *Desktop) AspectRatio() float32 { return d.window.AspectRatio() }

func (d *Desktop) Poll(snap *input.Snapshot) bool {
	if d.window.PollEvents(snap) {
		return false
	}
	if w, h, ok := snap.Resized(); ok {
		d.renderer.Resize(w, h)
	}
	return true
}

func (d *Desktop) Draw(u *world.Universe, st game.Status) error {
	d.applyStyles(u)

	cam := u.Camera()
	d.renderer.Begin(cam.ViewMatrix(), cam.ProjectionMatrix())
	u.Scene.GraphicsUpdate(d.renderer)
	d.renderer.End()
	d.window.SwapBuffers()

	if st.Frame%30 == 0 {
		status := u.Ship.Status()
		if st.Paused {
			status += " [paused]"
		}
		d.window.ShowStatus(status)
	}
	return nil
}

// applyStyles registers a renderer style for entities seen for the first time.
func (d *Desktop) applyStyles(u *world.Universe) {
	for _, e := range u.Scene.All() {
		if d.styled[e.ID()] {
			continue
		}
		d.styled[e.ID()] = true
		a, ok := u.Appearance(e.ID())
		if !ok {
			continue
		}
		style := renderer.Style{Shape: renderer.ShapeSphere, Color: a.Color, Emissive: a.Emissive}
		if a.Kind == world.KindShip {
			style.Shape = renderer.ShapeShip
		}
		d.renderer.SetStyle(e.ID(), style)
	}
}

func (d *Desktop) Close() {
	d.renderer.Close()
	d.window.Close()
}

var _ game.Frontend = (*Desktop)(nil)
