package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Simulation.Frontend != FrontendDesktop {
		t.Errorf("expected desktop frontend, got %s", cfg.Simulation.Frontend)
	}
	if cfg.Camera.MinDistance != 10 || cfg.Camera.MaxDistance != 100 {
		t.Errorf("unexpected camera bounds [%v, %v]", cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestDefaultScene(t *testing.T) {
	scene := DefaultScene()

	if len(scene.Bodies) != 3 {
		t.Fatalf("expected 3 bodies, got %d", len(scene.Bodies))
	}
	sun, earth, moon := scene.Bodies[0], scene.Bodies[1], scene.Bodies[2]

	if sun.Position != [3]float32{500, 500, 500} || sun.Scale != 50 {
		t.Errorf("unexpected sun %+v", sun)
	}
	if earth.Primary != "sun" || earth.Orbit == nil || earth.Orbit.SemiMajorAxis != 400 {
		t.Errorf("unexpected earth %+v", earth)
	}
	if moon.Primary != "earth" || moon.Orbit == nil || moon.Orbit.AngularSpeed != 0.2 {
		t.Errorf("unexpected moon %+v", moon)
	}
	if scene.Ship.Initial.Mode != ModeOrbiting || scene.Ship.Initial.Target != "earth" {
		t.Errorf("unexpected initial ship state %+v", scene.Ship.Initial)
	}
	if len(scene.Destinations) != 5 {
		t.Errorf("expected 5 destinations, got %d", len(scene.Destinations))
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true

simulation:
  frontend: headless
  fixed_dt: 0.02
  duration: 30s
  seed: 42
  script:
    - at: 1s
      key: "2"

audio:
  enabled: false

logging:
  level: "debug"
  log_file: "rover.log"

scene:
  bodies:
    - name: star
      position: [0, 0, 0]
      scale: 20
    - name: planet
      scale: 2
      primary: star
      orbit:
        semi_major_axis: 100
        eccentricity: 0.1
        angular_speed: 0.3
  ship:
    scale: 1
    transfer_speed: 0.25
    initial:
      mode: landing
      target: planet
  destinations:
    - key: 1
      mode: orbiting
      target: star
      orbit: {semi_major_axis: 40, eccentricity: 0, angular_speed: 1}
  light:
    anchor: star
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || !cfg.Window.Fullscreen {
		t.Errorf("window section not loaded: %+v", cfg.Window)
	}
	if cfg.Window.Title != "Celestial Rover" {
		t.Errorf("unset fields should keep defaults, got title %q", cfg.Window.Title)
	}
	if cfg.Simulation.Frontend != FrontendHeadless || cfg.Simulation.FixedDT != 0.02 {
		t.Errorf("simulation section not loaded: %+v", cfg.Simulation)
	}
	if cfg.Simulation.Duration != 30*time.Second || cfg.Simulation.Seed != 42 {
		t.Errorf("expected 30s and seed 42, got %v and %d", cfg.Simulation.Duration, cfg.Simulation.Seed)
	}
	if len(cfg.Simulation.Script) != 1 || cfg.Simulation.Script[0].At != time.Second {
		t.Errorf("expected script to be replaced, got %+v", cfg.Simulation.Script)
	}
	if cfg.Audio.Enabled {
		t.Error("expected audio disabled")
	}
	if len(cfg.Scene.Bodies) != 2 || cfg.Scene.Bodies[1].Orbit.Eccentricity != 0.1 {
		t.Errorf("expected bodies to be replaced, got %+v", cfg.Scene.Bodies)
	}
	if cfg.Scene.Ship.Initial.Mode != ModeLanding {
		t.Errorf("expected landing initial mode, got %s", cfg.Scene.Ship.Initial.Mode)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown frontend", func(c *Config) { c.Simulation.Frontend = "vr" }},
		{"negative max dt", func(c *Config) { c.Simulation.MaxDT = -1 }},
		{"fixed dt above max", func(c *Config) { c.Simulation.FixedDT = 1 }},
		{"unknown camera", func(c *Config) { c.Camera.Active = "drone" }},
		{"inverted camera bounds", func(c *Config) { c.Camera.MinDistance = 200 }},
		{"volume above one", func(c *Config) { c.Audio.Volume = 1.5 }},
		{"eccentricity one", func(c *Config) { c.Scene.Bodies[1].Orbit.Eccentricity = 1 }},
		{"zero semi-major axis", func(c *Config) { c.Scene.Bodies[2].Orbit.SemiMajorAxis = 0 }},
		{"duplicate body", func(c *Config) { c.Scene.Bodies[2].Name = "earth" }},
		{"primary declared later", func(c *Config) { c.Scene.Bodies[0].Primary = "moon" }},
		{"zero body scale", func(c *Config) { c.Scene.Bodies[0].Scale = 0 }},
		{"unknown target", func(c *Config) { c.Scene.Destinations[1].Target = "mars" }},
		{"orbiting without orbit", func(c *Config) { c.Scene.Destinations[3].Orbit = nil }},
		{"unknown mode", func(c *Config) { c.Scene.Destinations[0].Mode = "warp" }},
		{"duplicate key", func(c *Config) { c.Scene.Destinations[1].Key = 0 }},
		{"key out of range", func(c *Config) { c.Scene.Destinations[0].Key = 12 }},
		{"bad initial state", func(c *Config) { c.Scene.Ship.Initial.Target = "pluto" }},
		{"zero transfer speed", func(c *Config) { c.Scene.Ship.TransferSpeed = 0 }},
		{"unknown light anchor", func(c *Config) { c.Scene.Light.Anchor = "vega" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected error wrapping ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Simulation.Seed = 7
	cfg.Scene.Ship.MoveSpeed = 12
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := &Config{}
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Simulation.Seed != 7 || loaded.Scene.Ship.MoveSpeed != 12 {
		t.Errorf("saved values lost: seed %d, move speed %v", loaded.Simulation.Seed, loaded.Scene.Ship.MoveSpeed)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("saved config should validate: %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "frontend and duration flags",
			setup: func() {
				*flagFrontend = FrontendHeadless
				*flagDuration = 5 * time.Second
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Simulation.Frontend != FrontendHeadless {
					t.Errorf("expected headless frontend, got %s", cfg.Simulation.Frontend)
				}
				if cfg.Simulation.Duration != 5*time.Second {
					t.Errorf("expected 5s duration, got %v", cfg.Simulation.Duration)
				}
			},
			teardown: func() {
				*flagFrontend = ""
				*flagDuration = 0
			},
		},
		{
			name: "seed and dt flags",
			setup: func() {
				*flagSeed = 99
				*flagFixedDT = 0.05
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Simulation.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Simulation.Seed)
				}
				if cfg.Simulation.FixedDT != 0.05 {
					t.Errorf("expected fixed dt 0.05, got %v", cfg.Simulation.FixedDT)
				}
			},
			teardown: func() {
				*flagSeed = 0
				*flagFixedDT = 0
			},
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Audio.Muted {
					t.Error("expected audio muted")
				}
			},
			teardown: func() { *flagMute = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("simulation:\n  frontend: hologram\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
