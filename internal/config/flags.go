package config

import (
	"flag"
	"time"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagFrontend   = flag.String("frontend", "", "Frontend: desktop, terminal or headless")
	flagDuration   = flag.Duration("duration", 0, "Stop after this much simulated time")
	flagSeed       = flag.Uint64("seed", 0, "Seed for orbit and spin phases")
	flagFixedDT    = flag.Float64("dt", 0, "Fixed frame delta in seconds")
	flagMute       = flag.Bool("mute", false, "Disable audio cues")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFrontend != "" {
		cfg.Simulation.Frontend = *flagFrontend
	}
	if *flagDuration > time.Duration(0) {
		cfg.Simulation.Duration = *flagDuration
	}
	if *flagSeed != 0 {
		cfg.Simulation.Seed = *flagSeed
	}
	if *flagFixedDT > 0 {
		cfg.Simulation.FixedDT = float32(*flagFixedDT)
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
