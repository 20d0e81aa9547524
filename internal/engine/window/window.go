// Package window handles the SDL2 window, its OpenGL context and the
// SDL event pump that feeds an input snapshot.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/config"
	"github.com/Faultbox/celestial-rover/internal/engine/input"
	"github.com/Faultbox/celestial-rover/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

var scancodeKeys = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_Q:      input.KeyQ,
	sdl.SCANCODE_E:      input.KeyE,
	sdl.SCANCODE_UP:     input.KeyArrowUp,
	sdl.SCANCODE_DOWN:   input.KeyArrowDown,
	sdl.SCANCODE_LEFT:   input.KeyArrowLeft,
	sdl.SCANCODE_RIGHT:  input.KeyArrowRight,
	sdl.SCANCODE_0:      input.Key0,
	sdl.SCANCODE_1:      input.Key1,
	sdl.SCANCODE_2:      input.Key2,
	sdl.SCANCODE_3:      input.Key3,
	sdl.SCANCODE_4:      input.Key4,
	sdl.SCANCODE_5:      input.Key5,
	sdl.SCANCODE_6:      input.Key6,
	sdl.SCANCODE_7:      input.Key7,
	sdl.SCANCODE_8:      input.Key8,
	sdl.SCANCODE_9:      input.Key9,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F1:     input.KeyF1,
	sdl.SCANCODE_F2:     input.KeyF2,
	sdl.SCANCODE_P:      input.KeyP,
}

// Window is the desktop frontend's SDL2 window. It tracks its own size so
// the camera aspect and the GL viewport follow resizes.
type Window struct {
	title     string
	sdlWindow *sdl.Window
	glContext sdl.GLContext

	width, height int // window units
	fbW, fbH      int // drawable pixels, larger on HiDPI displays

	dragging bool
}

// New opens a resizable window with an OpenGL 4.1 core context.
func New(cfg config.WindowConfig) (*Window, error) {
	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window exists.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	sw, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := sw.GLCreateContext()
	if err != nil {
		sw.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	w := &Window{title: cfg.Title, sdlWindow: sw, glContext: ctx}
	w.refreshSize()

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", w.width),
		zap.Int("height", w.height),
		zap.Int("drawable_width", w.fbW),
		zap.Int("drawable_height", w.fbH),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *Window) refreshSize() {
	width, height := w.sdlWindow.GetSize()
	fbW, fbH := w.sdlWindow.GLGetDrawableSize()
	w.width, w.height = int(width), int(height)
	w.fbW, w.fbH = int(fbW), int(fbH)
}

// Close destroys the window and shuts SDL2 down.
func (w *Window) Close() {
	logger.Info("closing window")
	w.setDragging(false)

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the window size in window units.
func (w *Window) Size() (int, int) { return w.width, w.height }

// DrawableSize returns the framebuffer size in pixels, the GL viewport size.
func (w *Window) DrawableSize() (int, int) { return w.fbW, w.fbH }

// AspectRatio returns width/height of the window, or 1 while minimized.
func (w *Window) AspectRatio() float32 {
	if w.height == 0 {
		return 1
	}
	return float32(w.width) / float32(w.height)
}

// ShowStatus appends status to the configured title.
func (w *Window) ShowStatus(status string) {
	w.sdlWindow.SetTitle(w.title + " - " + status)
}

// setDragging captures the mouse while the camera is dragged so motion
// is reported as relative deltas past the window edges.
func (w *Window) setDragging(on bool) {
	if w.dragging == on {
		return
	}
	w.dragging = on
	sdl.SetRelativeMouseMode(on)
}

// PollEvents drains the SDL queue into snap. Resizes are reported in
// drawable pixels. It returns true when the window was closed.
func (w *Window) PollEvents(snap *input.Snapshot) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			snap.RequestQuit()

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				w.refreshSize()
				snap.Resize(w.fbW, w.fbH)
			case sdl.WINDOWEVENT_FOCUS_LOST:
				// Key-up events are not delivered to an unfocused window.
				w.releaseAll(snap)
			}

		case *sdl.KeyboardEvent:
			key, ok := scancodeKeys[e.Keysym.Scancode]
			if !ok || e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				snap.Press(key)
			} else {
				snap.Release(key)
			}

		case *sdl.MouseMotionEvent:
			if w.dragging {
				snap.MoveMouse(float32(e.XRel), float32(e.YRel))
			}

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			down := e.Type == sdl.MOUSEBUTTONDOWN
			w.setDragging(down)
			if down {
				snap.Press(input.MouseLeft)
			} else {
				snap.Release(input.MouseLeft)
			}

		case *sdl.MouseWheelEvent:
			y := e.Y
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				y = -y
			}
			snap.Scroll(float32(y))
		}
	}
	return snap.QuitRequested()
}

func (w *Window) releaseAll(snap *input.Snapshot) {
	for _, key := range scancodeKeys {
		snap.Release(key)
	}
	snap.Release(input.MouseLeft)
	w.setDragging(false)
}
