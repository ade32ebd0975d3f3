// Package config provides YAML-based configuration for the window, the
// movement tuning constants, the follow camera and the session rules.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Camera   CameraConfig   `yaml:"camera"`
	Creature CreatureConfig `yaml:"creature"`
	Rules    RulesConfig    `yaml:"rules"`
}

// WindowConfig defines window and frame pacing parameters.
type WindowConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	FPSLimit int    `yaml:"fps_limit"` // 0 means uncapped
}

// PhysicsConfig holds every tunable of the kinematic body and the ground
// probe. All the near-duplicate controllers collapsed into this one
// parameter set.
type PhysicsConfig struct {
	Gravity          float32 `yaml:"gravity"`
	TerminalVelocity float32 `yaml:"terminal_velocity"` // most negative allowed vel.y
	WalkSpeed        float32 `yaml:"walk_speed"`
	RunSpeed         float32 `yaml:"run_speed"`
	JumpImpulse      float32 `yaml:"jump_impulse"`
	ChainImpulse     float32 `yaml:"chain_impulse"` // multiplier for the 2nd chained jump
	ChainWindow      float64 `yaml:"chain_window"`  // seconds after landing to continue a chain
	// TurnSmoothing is a fixed per-tick blend factor, deliberately not
	// dt-scaled; see the note in DESIGN.md.
	TurnSmoothing    float32    `yaml:"turn_smoothing"`
	MaxStep          float64    `yaml:"max_step"` // dt cap in seconds
	HalfHeight       float32    `yaml:"half_height"`
	FootprintRadius  float32    `yaml:"footprint_radius"` // corner probe offset
	ProbeLift        float32    `yaml:"probe_lift"`       // ray origin lift above body center
	ProbeMargin      float32    `yaml:"probe_margin"`     // extra ray length beyond |vel.y|*dt
	VoidY            float32    `yaml:"void_y"`           // fall-out-of-world threshold
	RespawnPoint     [3]float32 `yaml:"respawn_point"`
}

// CameraConfig defines the third-person follow camera.
type CameraConfig struct {
	Distance     float32 `yaml:"distance"`
	HeightOffset float32 `yaml:"height_offset"`
	Smoothing    float32 `yaml:"smoothing"` // fixed per-tick blend, same caveat as TurnSmoothing
	Sensitivity  float64 `yaml:"sensitivity"`
	PitchMin     float64 `yaml:"pitch_min"`
	PitchMax     float64 `yaml:"pitch_max"`
	FOV          float32 `yaml:"fov"` // degrees
}

// CreatureConfig tunes bunny behavior. The actual decision logic lives in a
// Tengo script; these are the numbers the script sees.
type CreatureConfig struct {
	ScareRadius float32 `yaml:"scare_radius"`
	FleeSpeed   float32 `yaml:"flee_speed"`
	WanderSpeed float32 `yaml:"wander_speed"`
	RoamRadius  float32 `yaml:"roam_radius"`
	CatchRadius float32 `yaml:"catch_radius"`
	BrainPath   string  `yaml:"brain_path"` // optional script override
}

// RulesConfig defines session win/interaction rules.
type RulesConfig struct {
	StarsToWin     int     `yaml:"stars_to_win"`
	InteractRadius float32 `yaml:"interact_radius"` // portal trigger radius default
}

// Default returns the built-in configuration, matching the tuning the game
// shipped with.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:    900,
			Height:   600,
			Title:    "mini-64",
			FPSLimit: 0,
		},
		Physics: PhysicsConfig{
			Gravity:          25.0,
			TerminalVelocity: -50.0,
			WalkSpeed:        5.0,
			RunSpeed:         10.0,
			JumpImpulse:      12.0,
			ChainImpulse:     1.2,
			ChainWindow:      0.25,
			TurnSmoothing:    0.1,
			MaxStep:          0.05,
			HalfHeight:       0.9,
			FootprintRadius:  0.4,
			ProbeLift:        0.5,
			ProbeMargin:      1.5,
			VoidY:            -5.0,
			RespawnPoint:     [3]float32{0, 10, 0},
		},
		Camera: CameraConfig{
			Distance:     15.0,
			HeightOffset: 5.0,
			Smoothing:    0.1,
			Sensitivity:  0.1,
			PitchMin:     -80,
			PitchMax:     80,
			FOV:          60,
		},
		Creature: CreatureConfig{
			ScareRadius: 6.0,
			FleeSpeed:   4.0,
			WanderSpeed: 2.0,
			RoamRadius:  20.0,
			CatchRadius: 1.5,
		},
		Rules: RulesConfig{
			StarsToWin:     8,
			InteractRadius: 2.5,
		},
	}
}

// Load reads a YAML config file and merges it over the defaults. A missing
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values that would break the integrator.
func (c Config) Validate() error {
	p := c.Physics
	if p.Gravity <= 0 {
		return fmt.Errorf("config: gravity must be positive, got %v", p.Gravity)
	}
	if p.TerminalVelocity >= 0 {
		return fmt.Errorf("config: terminal_velocity must be negative, got %v", p.TerminalVelocity)
	}
	if p.MaxStep <= 0 {
		return fmt.Errorf("config: max_step must be positive, got %v", p.MaxStep)
	}
	if p.TurnSmoothing < 0 || p.TurnSmoothing > 1 {
		return fmt.Errorf("config: turn_smoothing must be in [0,1], got %v", p.TurnSmoothing)
	}
	if p.HalfHeight <= 0 {
		return fmt.Errorf("config: half_height must be positive, got %v", p.HalfHeight)
	}
	if p.ChainWindow < 0 {
		return fmt.Errorf("config: chain_window must not be negative, got %v", p.ChainWindow)
	}
	if c.Rules.StarsToWin <= 0 {
		return fmt.Errorf("config: stars_to_win must be positive, got %d", c.Rules.StarsToWin)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
