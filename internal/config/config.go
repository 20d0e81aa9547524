// Package config handles simulation configuration loading and management.
package config

import "time"

// Config holds all rover settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	Camera     CameraConfig     `yaml:"camera"`
	Audio      AudioConfig      `yaml:"audio"`
	Logging    LoggingConfig    `yaml:"logging"`
	Scene      SceneConfig      `yaml:"scene"`
}

// Frontend names accepted by SimulationConfig.Frontend.
const (
	FrontendDesktop  = "desktop"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Flight mode names used by DestinationConfig.Mode.
const (
	ModeFree     = "free"
	ModeLanding  = "landing"
	ModeOrbiting = "orbiting"
)

// WindowConfig holds display settings for the desktop frontend.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// SimulationConfig controls the frame loop.
type SimulationConfig struct {
	Frontend string `yaml:"frontend"`
	// FixedDT, when positive, replaces wall-clock frame time (seconds).
	FixedDT float32 `yaml:"fixed_dt"`
	// MaxDT clamps wall-clock frame time (seconds).
	MaxDT float32 `yaml:"max_dt"`
	// Duration stops the loop after this much simulated time. Zero runs until quit.
	Duration time.Duration `yaml:"duration"`
	// Seed feeds orbit and spin phases. Zero picks a random seed.
	Seed   uint64       `yaml:"seed"`
	Script []ScriptStep `yaml:"script"`
}

// ScriptStep presses a key at a simulated time (headless frontend).
type ScriptStep struct {
	At  time.Duration `yaml:"at"`
	Key string        `yaml:"key"`
}

// CameraConfig holds camera settings.
type CameraConfig struct {
	Active          string     `yaml:"active"` // "first" or "third"
	FOV             float32    `yaml:"fov"`    // degrees
	Near            float32    `yaml:"near"`
	Far             float32    `yaml:"far"`
	FirstPerson     [3]float32 `yaml:"first_person_offset"`
	Distance        float32    `yaml:"distance"`
	MinDistance     float32    `yaml:"min_distance"`
	MaxDistance     float32    `yaml:"max_distance"`
	ZoomSpeed       float32    `yaml:"zoom_speed"`
	DragSensitivity float32    `yaml:"drag_sensitivity"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float32 `yaml:"volume"`
	Muted   bool    `yaml:"muted"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// SceneConfig describes the universe built at startup.
type SceneConfig struct {
	Bodies       []BodyConfig        `yaml:"bodies"`
	Ship         ShipConfig          `yaml:"ship"`
	Destinations []DestinationConfig `yaml:"destinations"`
	Light        LightConfig         `yaml:"light"`
	SkyboxScale  float32             `yaml:"skybox_scale"`
}

// BodyConfig describes one celestial body.
type BodyConfig struct {
	Name      string       `yaml:"name"`
	Position  [3]float32   `yaml:"position"`
	Rotation  [3]float32   `yaml:"rotation"`
	Scale     float32      `yaml:"scale"`
	SpinSpeed float32      `yaml:"spin_speed"`
	Primary   string       `yaml:"primary,omitempty"`
	Orbit     *OrbitConfig `yaml:"orbit,omitempty"`
	Color     [3]float32   `yaml:"color"`
}

// OrbitConfig holds ellipse parameters.
type OrbitConfig struct {
	SemiMajorAxis float32 `yaml:"semi_major_axis"`
	Eccentricity  float32 `yaml:"eccentricity"`
	AngularSpeed  float32 `yaml:"angular_speed"`
}

// ShipConfig describes the player ship.
type ShipConfig struct {
	Position      [3]float32        `yaml:"position"`
	Rotation      [3]float32        `yaml:"rotation"`
	Scale         float32           `yaml:"scale"`
	MoveSpeed     float32           `yaml:"move_speed"`
	RotationSpeed float32           `yaml:"rotation_speed"`
	TransferSpeed float32           `yaml:"transfer_speed"`
	Initial       DestinationConfig `yaml:"initial"`
}

// DestinationConfig is a flight state request bound to a number key.
type DestinationConfig struct {
	Key    int          `yaml:"key"`
	Mode   string       `yaml:"mode"`
	Target string       `yaml:"target,omitempty"`
	Orbit  *OrbitConfig `yaml:"orbit,omitempty"`
}

// LightConfig describes the point light.
type LightConfig struct {
	Anchor    string     `yaml:"anchor"`
	Color     [3]float32 `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
}

// Default returns a Config with sensible default values: the Sun, Earth and
// Moon system with the ship parked in orbit around Earth.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Celestial Rover",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Simulation: SimulationConfig{
			Frontend: FrontendDesktop,
			MaxDT:    0.1,
			Script: []ScriptStep{
				{At: 3 * time.Second, Key: "1"},
				{At: 8 * time.Second, Key: "0"},
				{At: 9 * time.Second, Key: "4"},
			},
		},
		Camera: CameraConfig{
			Active:          "third",
			FOV:             45,
			Near:            0.1,
			Far:             10000,
			FirstPerson:     [3]float32{0, 0, -10},
			Distance:        10,
			MinDistance:     10,
			MaxDistance:     100,
			ZoomSpeed:       1,
			DragSensitivity: 0.2,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Scene: DefaultScene(),
	}
}

// DefaultScene returns the built-in Sun, Earth and Moon system.
func DefaultScene() SceneConfig {
	return SceneConfig{
		Bodies: []BodyConfig{
			{
				Name:      "sun",
				Position:  [3]float32{500, 500, 500},
				Scale:     50,
				SpinSpeed: 0.04,
				Color:     [3]float32{1, 0.85, 0.3},
			},
			{
				Name:      "earth",
				Scale:     5,
				SpinSpeed: 1,
				Primary:   "sun",
				Orbit:     &OrbitConfig{SemiMajorAxis: 400, Eccentricity: 0.5, AngularSpeed: 0.07},
				Color:     [3]float32{0.2, 0.5, 1},
			},
			{
				Name:      "moon",
				Scale:     3,
				SpinSpeed: 0.037,
				Primary:   "earth",
				Orbit:     &OrbitConfig{SemiMajorAxis: 20, Eccentricity: 0.5, AngularSpeed: 0.2},
				Color:     [3]float32{0.7, 0.7, 0.7},
			},
		},
		Ship: ShipConfig{
			Scale:         0.8,
			MoveSpeed:     50,
			RotationSpeed: 30,
			TransferSpeed: 0.5,
			Initial: DestinationConfig{
				Mode:   ModeOrbiting,
				Target: "earth",
				Orbit:  &OrbitConfig{SemiMajorAxis: 10, Eccentricity: 0.2, AngularSpeed: 1},
			},
		},
		Destinations: []DestinationConfig{
			{Key: 0, Mode: ModeFree},
			{Key: 1, Mode: ModeLanding, Target: "earth"},
			{Key: 2, Mode: ModeLanding, Target: "moon"},
			{Key: 3, Mode: ModeOrbiting, Target: "earth", Orbit: &OrbitConfig{SemiMajorAxis: 10, Eccentricity: 0.2, AngularSpeed: 1}},
			{Key: 4, Mode: ModeOrbiting, Target: "moon", Orbit: &OrbitConfig{SemiMajorAxis: 6, Eccentricity: 0.5, AngularSpeed: 1.2}},
		},
		Light: LightConfig{
			Anchor:    "sun",
			Color:     [3]float32{1, 1, 0.95},
			Intensity: 1,
		},
		SkyboxScale: 5000,
	}
}
