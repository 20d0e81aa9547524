package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/engine/input"
	"github.com/Faultbox/celestial-rover/internal/game/world"
	"github.com/Faultbox/celestial-rover/internal/logger"
)

// Headless is a frontend without a display. It logs the ship state at a
// fixed simulated interval and takes input only from the script.
type Headless struct {
	interval time.Duration
	next     time.Duration
	closed   bool
	reports  int
}

// NewHeadless logs every interval of simulated time. A non-positive
// interval logs every frame.
func NewHeadless(interval time.Duration) *Headless {
	return &Headless{interval: interval}
}

func (h *Headless) Poll(*input.Snapshot) bool { return !h.closed }

func (h *Headless) Draw(u *world.Universe, st Status) error {
	if st.Elapsed < h.next {
		return nil
	}
	h.next = st.Elapsed + h.interval

	s := u.Ship
	pos := s.WorldPosition()
	fields := []zap.Field{
		zap.Duration("t", st.Elapsed),
		zap.String("state", s.Status()),
		zap.Float32("progress", s.Progress()),
		zap.Float32s("position", []float32{pos.X, pos.Y, pos.Z}),
	}
	if target := s.Current().Target; target != nil {
		if a, ok := u.Appearance(target.ID()); ok {
			fields = append(fields, zap.String("target", a.Name))
		}
	}
	logger.Info("ship", fields...)
	h.reports++
	return nil
}

// Reports returns how many state lines were logged.
func (h *Headless) Reports() int { return h.reports }

func (h *Headless) Close() { h.closed = true }

var _ Frontend = (*Headless)(nil)
