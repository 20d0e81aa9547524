// Package game implements the frame loop: input, then logic, then
// graphics, once per frame.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/config"
	"github.com/Faultbox/celestial-rover/internal/engine/audio"
	"github.com/Faultbox/celestial-rover/internal/engine/input"
	"github.com/Faultbox/celestial-rover/internal/game/controls"
	"github.com/Faultbox/celestial-rover/internal/game/spaceship"
	"github.com/Faultbox/celestial-rover/internal/game/world"
	"github.com/Faultbox/celestial-rover/internal/logger"
)

// Status is the loop state handed to frontends each frame.
type Status struct {
	Frame   uint64
	Elapsed time.Duration // simulated
	DT      float32
	Paused  bool
}

// Frontend supplies input and presents frames.
type Frontend interface {
	// Poll feeds this frame's events into snap. It returns false once the
	// frontend has been closed.
	Poll(snap *input.Snapshot) bool
	// Draw presents the universe after the logic update.
	Draw(u *world.Universe, st Status) error
	Close()
}

// CuePlayer plays audio cues.
type CuePlayer interface {
	Play(cue audio.Cue) error
}

// Option configures a Game.
type Option func(*Game)

// WithAudio plays transition cues on p.
func WithAudio(p CuePlayer) Option {
	return func(g *Game) { g.cues = p }
}

// WithClock replaces the wall clock used by Run.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// Game is the main game instance.
type Game struct {
	cfg      config.SimulationConfig
	universe *world.Universe
	controls *controls.Controller
	frontend Frontend
	script   *Script
	cues     CuePlayer
	now      func() time.Time

	snap    *input.Snapshot
	running bool
	paused  bool
	frame   uint64
	elapsed time.Duration
}

// New builds the universe described by cfg and binds it to fe.
func New(cfg *config.Config, fe Frontend, opts ...Option) (*Game, error) {
	logger.Info("initializing game",
		zap.String("frontend", cfg.Simulation.Frontend),
		zap.Float32("fixed_dt", cfg.Simulation.FixedDT),
		zap.Duration("duration", cfg.Simulation.Duration),
	)

	u, err := world.Build(cfg.Scene, cfg.Camera, cfg.Simulation.Seed)
	if err != nil {
		return nil, fmt.Errorf("build universe: %w", err)
	}

	g := &Game{
		cfg:      cfg.Simulation,
		universe: u,
		controls: controls.New(u.Ship, u.Destinations),
		frontend: fe,
		now:      time.Now,
		snap:     input.NewSnapshot(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if len(cfg.Simulation.Script) > 0 {
		g.script, err = NewScript(cfg.Simulation.Script)
		if err != nil {
			return nil, err
		}
	}

	if ar, ok := fe.(interface{ AspectRatio() float32 }); ok {
		u.SetAspectRatio(ar.AspectRatio())
	}

	u.Ship.OnTransition(g.onTransition)
	return g, nil
}

// Universe returns the simulated world.
func (g *Game) Universe() *world.Universe { return g.universe }

// Paused reports whether logic updates are suspended.
func (g *Game) Paused() bool { return g.paused }

// Elapsed returns the simulated time so far.
func (g *Game) Elapsed() time.Duration { return g.elapsed }

// Status returns the current loop state.
func (g *Game) Status(dt float32) Status {
	return Status{Frame: g.frame, Elapsed: g.elapsed, DT: dt, Paused: g.paused}
}

// Run steps frames until quit, frontend close, the configured duration
// or ctx cancellation.
func (g *Game) Run(ctx context.Context) error {
	g.running = true
	last := g.now()
	frames := 0
	fpsTimer := last

	logger.Info("starting game loop")

	for g.running {
		if err := ctx.Err(); err != nil {
			logger.Info("game loop cancelled", zap.Error(err))
			return nil
		}

		now := g.now()
		dt := g.frameDT(now.Sub(last))
		last = now

		if err := g.Step(dt); err != nil {
			return err
		}

		frames++
		if now.Sub(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frames), zap.Float32("dt", dt))
			frames = 0
			fpsTimer = now
		}
	}

	logger.Info("game loop stopped",
		zap.Uint64("frames", g.frame),
		zap.Duration("elapsed", g.elapsed),
	)
	return nil
}

// frameDT picks the timestep for a frame that took wall.
func (g *Game) frameDT(wall time.Duration) float32 {
	if g.cfg.FixedDT > 0 {
		return g.cfg.FixedDT
	}
	dt := float32(wall.Seconds())
	if g.cfg.MaxDT > 0 && dt > g.cfg.MaxDT {
		dt = g.cfg.MaxDT
	}
	return max(dt, 0)
}

// Step runs one frame with timestep dt.
func (g *Game) Step(dt float32) error {
	g.running = true
	g.snap.BeginFrame()
	if !g.frontend.Poll(g.snap) {
		g.running = false
		return nil
	}
	if g.script != nil {
		g.script.Feed(g.elapsed, g.snap)
	}

	var cmd controls.Command
	if g.paused {
		cmd = controls.Commands(g.snap)
	} else {
		cmd = g.controls.Update(g.snap, dt, g.universe.Camera())
	}
	if cmd.Quit || g.snap.QuitRequested() {
		logger.Info("quit requested")
		g.running = false
		return nil
	}
	if cmd.TogglePause {
		g.paused = !g.paused
		logger.Info("pause toggled", zap.Bool("paused", g.paused))
	}
	g.universe.SwitchCamera(cmd.Camera)
	if w, h, ok := g.snap.Resized(); ok && h > 0 {
		g.universe.SetAspectRatio(float32(w) / float32(h))
	}

	if !g.paused {
		g.universe.LogicUpdate(dt)
		g.elapsed += time.Duration(float64(dt) * float64(time.Second))
	}

	if err := g.frontend.Draw(g.universe, g.Status(dt)); err != nil {
		return fmt.Errorf("draw frame %d: %w", g.frame, err)
	}
	g.frame++

	if g.cfg.Duration > 0 && g.elapsed >= g.cfg.Duration {
		logger.Info("simulation duration reached", zap.Duration("elapsed", g.elapsed))
		g.running = false
	}
	return nil
}

// Running reports whether the last Step left the loop running.
func (g *Game) Running() bool { return g.running }

// Close releases the frontend.
func (g *Game) Close() {
	logger.Info("closing game")
	if g.frontend != nil {
		g.frontend.Close()
	}
}

func (g *Game) onTransition(ev spaceship.TransitionEvent) {
	if g.cues == nil {
		return
	}
	cue := audio.CueTransitionStart
	if ev.Phase == spaceship.TransitionCompleted {
		cue = audio.CueTransitionDone
	}
	if err := g.cues.Play(cue); err != nil {
		logger.Warn("audio cue failed", zap.Stringer("cue", cue), zap.Error(err))
	}
}
