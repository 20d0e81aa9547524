// Package audio plays short synthesized cues through the system speaker.
package audio

import (
	"fmt"
	gomath "math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue identifies a synthesized sound.
type Cue uint8

const (
	// CueTransitionStart is a rising two-note chirp.
	CueTransitionStart Cue = iota
	// CueTransitionDone is a falling two-note chirp.
	CueTransitionDone
)

func (c Cue) String() string {
	switch c {
	case CueTransitionStart:
		return "transition_start"
	case CueTransitionDone:
		return "transition_done"
	default:
		return fmt.Sprintf("cue(%d)", uint8(c))
	}
}

type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CueTransitionStart: {{440, 80 * time.Millisecond}, {660, 120 * time.Millisecond}},
	CueTransitionDone:  {{660, 80 * time.Millisecond}, {440, 160 * time.Millisecond}},
}

// Manager owns the speaker and a mixer that cues are added to.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	volume float64 // 0.0 to 1.0
	muted  bool

	mixer *beep.Mixer
}

// New creates a manager at full volume.
func New() *Manager {
	return &Manager{
		volume:     1.0,
		sampleRate: DefaultSampleRate,
		mixer:      &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	logger.Info("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close stops playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// SetMuted silences or restores cues.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Muted reports whether cues are silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// Play mixes cue into the output. It is a no-op before Init.
func (m *Manager) Play(cue Cue) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.volume
	silent := m.muted || vol <= 0
	sr := m.sampleRate
	m.mu.RUnlock()

	if !initialized {
		return nil
	}

	s, err := cueStreamer(sr, cue, vol, silent)
	if err != nil {
		return err
	}

	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()

	logger.Debug("audio cue", zap.Stringer("cue", cue))
	return nil
}

// cueStreamer synthesizes cue as a finite streamer at the given volume.
func cueStreamer(sr beep.SampleRate, cue Cue, vol float64, silent bool) (beep.Streamer, error) {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %v", cue)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, fmt.Errorf("cue %v: %w", cue, err)
		}
		parts = append(parts, beep.Take(sr.N(n.dur), tone))
	}

	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     10,
		Volume:   volumeToDb(vol) / 20,
		Silent:   silent,
	}, nil
}

// cueLength returns the cue duration in samples.
func cueLength(sr beep.SampleRate, cue Cue) int {
	total := 0
	for _, n := range cueNotes[cue] {
		total += sr.N(n.dur)
	}
	return total
}

// volumeToDb converts a 0-1 volume to decibels.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // effectively silent
	}
	return 20 * gomath.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
