package input

// KeyState is the read side of one frame of input.
type KeyState interface {
	// Held reports whether k is down this frame.
	Held(k Key) bool
	// Pressed reports whether k went down during this frame.
	Pressed(k Key) bool
	// MouseDelta is the pointer motion accumulated this frame, in pixels.
	MouseDelta() (dx, dy float32)
	// Wheel is the scroll amount accumulated this frame.
	Wheel() float32
}

// Snapshot accumulates frontend events into per-frame key state.
// Frontends call BeginFrame once per frame before feeding events.
type Snapshot struct {
	held    [keyCount]bool
	pressed [keyCount]bool
	tapped  [keyCount]bool

	dx, dy float32
	wheel  float32

	quit          bool
	resized       bool
	width, height int
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// BeginFrame clears per-frame edges and releases tapped keys.
func (s *Snapshot) BeginFrame() {
	for k := range s.tapped {
		if s.tapped[k] {
			s.held[k] = false
			s.tapped[k] = false
		}
	}
	s.pressed = [keyCount]bool{}
	s.dx, s.dy, s.wheel = 0, 0, 0
	s.resized = false
}

// Press marks k as down. Repeated presses of a held key are not edges.
func (s *Snapshot) Press(k Key) {
	if k == KeyUnknown || k >= keyCount {
		return
	}
	if !s.held[k] {
		s.pressed[k] = true
	}
	s.held[k] = true
	s.tapped[k] = false
}

// Release marks k as up.
func (s *Snapshot) Release(k Key) {
	if k == KeyUnknown || k >= keyCount {
		return
	}
	s.held[k] = false
	s.tapped[k] = false
}

// Tap presses k for the current frame only. Used by frontends that
// receive no key-up events.
func (s *Snapshot) Tap(k Key) {
	if k == KeyUnknown || k >= keyCount {
		return
	}
	wasHeld, wasTapped := s.held[k], s.tapped[k]
	s.Press(k)
	s.tapped[k] = !wasHeld || wasTapped
}

// MoveMouse accumulates pointer motion.
func (s *Snapshot) MoveMouse(dx, dy float32) {
	s.dx += dx
	s.dy += dy
}

// Scroll accumulates wheel motion.
func (s *Snapshot) Scroll(delta float32) {
	s.wheel += delta
}

// RequestQuit records a window close or quit key.
func (s *Snapshot) RequestQuit() { s.quit = true }

// QuitRequested reports whether a quit was requested since creation.
func (s *Snapshot) QuitRequested() bool { return s.quit }

// Resize records a viewport change for this frame.
func (s *Snapshot) Resize(width, height int) {
	s.resized = true
	s.width, s.height = width, height
}

// Resized returns the new viewport size if it changed this frame.
func (s *Snapshot) Resized() (width, height int, ok bool) {
	return s.width, s.height, s.resized
}

func (s *Snapshot) Held(k Key) bool {
	return k < keyCount && s.held[k]
}

func (s *Snapshot) Pressed(k Key) bool {
	return k < keyCount && s.pressed[k]
}

func (s *Snapshot) MouseDelta() (dx, dy float32) { return s.dx, s.dy }

func (s *Snapshot) Wheel() float32 { return s.wheel }

var _ KeyState = (*Snapshot)(nil)
