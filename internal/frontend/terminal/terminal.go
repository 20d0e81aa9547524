// Package terminal is a text frontend: a top-down view of the xz plane
// centred on the ship, drawn with tcell.
package terminal

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/engine/input"
	"github.com/Faultbox/celestial-rover/internal/game"
	"github.com/Faultbox/celestial-rover/internal/game/world"
	"github.com/Faultbox/celestial-rover/internal/logger"
	"github.com/Faultbox/celestial-rover/pkg/math"
)

// cellAspect is how many world units tall a cell is per unit of width.
const cellAspect = 2

// Terminal implements game.Frontend on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	ticker *time.Ticker
	closed bool
}

// New initialises screen, or a new terminal screen when screen is nil.
// Poll blocks until the next frame tick when interval is positive.
func New(screen tcell.Screen, interval time.Duration) (*Terminal, error) {
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	screen.EnableMouse()

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 100),
	}
	if interval > 0 {
		t.ticker = time.NewTicker(interval)
	}

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(t.events)
				return
			}
			t.events <- ev
		}
	}()

	w, h := screen.Size()
	logger.Info("terminal frontend started", zap.Int("cols", w), zap.Int("rows", h))
	return t, nil
}

// Poll waits for the frame tick and drains pending events into snap.
func (t *Terminal) Poll(snap *input.Snapshot) bool {
	if t.closed {
		return false
	}
	if t.ticker != nil {
		<-t.ticker.C
	}
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				return false
			}
			t.handle(ev, snap)
		default:
			return true
		}
	}
}

func (t *Terminal) handle(ev tcell.Event, snap *input.Snapshot) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			snap.RequestQuit()
			return
		}
		if k := keyFor(ev); k != input.KeyUnknown {
			snap.Tap(k)
		}
	case *tcell.EventMouse:
		switch btn := ev.Buttons(); {
		case btn&tcell.WheelUp != 0:
			snap.Scroll(1)
		case btn&tcell.WheelDown != 0:
			snap.Scroll(-1)
		}
	case *tcell.EventResize:
		t.screen.Sync()
		w, h := ev.Size()
		snap.Resize(w, h*cellAspect)
	}
}

// keyFor maps a tcell key event onto the abstract key set.
func keyFor(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyArrowUp
	case tcell.KeyDown:
		return input.KeyArrowDown
	case tcell.KeyLeft:
		return input.KeyArrowLeft
	case tcell.KeyRight:
		return input.KeyArrowRight
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyF1:
		return input.KeyF1
	case tcell.KeyF2:
		return input.KeyF2
	case tcell.KeyRune:
		k, _ := input.ParseKey(string(ev.Rune()))
		switch k {
		case input.KeyUnknown, input.MouseLeft, input.KeyEscape:
			return input.KeyUnknown
		}
		return k
	}
	return input.KeyUnknown
}

// Draw renders bodies and the ship around the ship's position, plus a
// status line.
func (t *Terminal) Draw(u *world.Universe, st game.Status) error {
	t.screen.Clear()
	w, h := t.screen.Size()

	center := u.Ship.WorldPosition()
	unitsPerCell := max(u.ThirdPerson.Distance()/5, 0.5)

	for _, b := range u.Bodies {
		a, _ := u.Appearance(b.ID())
		style := tcell.StyleDefault.Foreground(rgb(a.Color))
		col, row := project(center, b.WorldPosition(), unitsPerCell, w, h)
		radius := b.Radius() / unitsPerCell
		t.disc(col, row, radius, style)
		t.text(col+int(radius)+1, row, a.Name, style)
	}

	col, row := project(center, u.Ship.WorldPosition(), unitsPerCell, w, h)
	t.screen.SetContent(col, row, heading(u.Ship.Front().XZ()), nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	t.text(0, 0, statusLine(u, st), tcell.StyleDefault.Reverse(true))
	t.text(0, h-1, "WASDQE move  arrows turn  0-4 destinations  P pause  Esc quit", tcell.StyleDefault.Dim(true))

	t.screen.Show()
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	if t.closed {
		return
	}
	t.closed = true
	if t.ticker != nil {
		t.ticker.Stop()
	}
	t.screen.Fini()
}

func (t *Terminal) disc(col, row int, radius float32, style tcell.Style) {
	if radius < 1 {
		t.screen.SetContent(col, row, 'o', nil, style)
		return
	}
	r := int(gomath.Ceil(float64(radius)))
	for dy := -r; dy <= r; dy++ {
		for dx := -r * cellAspect; dx <= r*cellAspect; dx++ {
			x := float32(dx) / cellAspect
			y := float32(dy)
			if x*x+y*y <= radius*radius {
				t.screen.SetContent(col+dx, row+dy, '●', nil, style)
			}
		}
	}
}

func (t *Terminal) text(col, row int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(col, row, r, nil, style)
		col++
	}
}

// project maps a world point to a cell. Columns follow +x, rows follow -z.
func project(center, p math.Vec3, unitsPerCell float32, w, h int) (col, row int) {
	d := p.XZ().Sub(center.XZ()).Scale(1 / unitsPerCell)
	return w/2 + int(gomath.Round(float64(d.X))), h/2 - int(gomath.Round(float64(d.Y/cellAspect)))
}

var arrows = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// heading picks the arrow closest to an xz direction.
func heading(dir math.Vec2) rune {
	if dir.X == 0 && dir.Y == 0 {
		return '•'
	}
	angle := gomath.Atan2(float64(dir.X), float64(dir.Y)) // 0 is +z, clockwise towards +x
	sector := int(gomath.Round(angle/(gomath.Pi/4))) & 7
	return arrows[sector]
}

func statusLine(u *world.Universe, st game.Status) string {
	s := fmt.Sprintf(" t=%5.1fs  %s", st.Elapsed.Seconds(), u.Ship.Status())
	if u.Ship.Transitioning() {
		s += fmt.Sprintf(" %3.0f%%", u.Ship.Progress()*100)
	}
	if st.Paused {
		s += "  [paused]"
	}
	return s + " "
}

func rgb(c [3]float32) tcell.Color {
	return tcell.NewRGBColor(int32(c[0]*255), int32(c[1]*255), int32(c[2]*255))
}

var _ game.Frontend = (*Terminal)(nil)
