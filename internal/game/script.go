package game

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/config"
	"github.com/Faultbox/celestial-rover/internal/engine/input"
	"github.com/Faultbox/celestial-rover/internal/logger"
)

type scriptStep struct {
	at  time.Duration
	key input.Key
}

// Script taps keys at fixed simulated times.
type Script struct {
	steps []scriptStep
	next  int
}

// NewScript parses steps. Steps are sorted by time; ties keep file order.
func NewScript(steps []config.ScriptStep) (*Script, error) {
	s := &Script{steps: make([]scriptStep, 0, len(steps))}
	for i, st := range steps {
		k, ok := input.ParseKey(st.Key)
		if !ok {
			return nil, fmt.Errorf("script step %d: unknown key %q", i, st.Key)
		}
		s.steps = append(s.steps, scriptStep{at: st.At, key: k})
	}
	slices.SortStableFunc(s.steps, func(a, b scriptStep) int {
		return cmp.Compare(a.at, b.at)
	})
	return s, nil
}

// Feed taps every key due at or before elapsed that has not fired yet.
func (s *Script) Feed(elapsed time.Duration, snap *input.Snapshot) {
	for s.next < len(s.steps) && s.steps[s.next].at <= elapsed {
		st := s.steps[s.next]
		logger.Info("script key", zap.Stringer("key", st.key), zap.Duration("at", st.at))
		snap.Tap(st.key)
		s.next++
	}
}

// Done reports whether every step has fired.
func (s *Script) Done() bool { return s.next >= len(s.steps) }
