// Package main is the entry point for Celestial Rover.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/celestial-rover/internal/config"
	"github.com/Faultbox/celestial-rover/internal/engine/audio"
	"github.com/Faultbox/celestial-rover/internal/frontend/desktop"
	"github.com/Faultbox/celestial-rover/internal/frontend/terminal"
	"github.com/Faultbox/celestial-rover/internal/game"
	"github.com/Faultbox/celestial-rover/internal/logger"
)

const (
	headlessDT       = float32(1.0 / 60.0)
	headlessDuration = 20 * time.Second
	headlessReport   = time.Second
	terminalFrame    = 33 * time.Millisecond
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := initLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Celestial Rover ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("rover error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("rover closed normally")
}

// initLogger keeps stdout free for the terminal frontend by logging to a
// file instead.
func initLogger(cfg *config.Config) error {
	if cfg.Simulation.Frontend != config.FrontendTerminal {
		return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	}
	path := cfg.Logging.LogFile
	if path == "" {
		path = filepath.Join(os.TempDir(), "celestial-rover.log")
	}
	return logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(path), false)
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fe, err := newFrontend(cfg)
	if err != nil {
		return err
	}

	var opts []game.Option
	if cfg.Audio.Enabled && cfg.Simulation.Frontend != config.FrontendHeadless {
		am := audio.New()
		if err := am.Init(); err != nil {
			fe.Close()
			return fmt.Errorf("audio: %w", err)
		}
		defer am.Close()
		am.SetVolume(float64(cfg.Audio.Volume))
		am.SetMuted(cfg.Audio.Muted)
		opts = append(opts, game.WithAudio(am))
	}

	g, err := game.New(cfg, fe, opts...)
	if err != nil {
		fe.Close()
		return fmt.Errorf("create game: %w", err)
	}
	defer g.Close()

	return g.Run(ctx)
}

func newFrontend(cfg *config.Config) (game.Frontend, error) {
	switch cfg.Simulation.Frontend {
	case config.FrontendHeadless:
		if cfg.Simulation.FixedDT <= 0 {
			cfg.Simulation.FixedDT = headlessDT
		}
		if cfg.Simulation.Duration <= 0 {
			cfg.Simulation.Duration = headlessDuration
		}
		return game.NewHeadless(headlessReport), nil
	case config.FrontendTerminal:
		t, err := terminal.New(nil, terminalFrame)
		if err != nil {
			return nil, fmt.Errorf("terminal: %w", err)
		}
		return t, nil
	default:
		d, err := desktop.New(cfg.Window)
		if err != nil {
			return nil, fmt.Errorf("desktop: %w", err)
		}
		return d, nil
	}
}
