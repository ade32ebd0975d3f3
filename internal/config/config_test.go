package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Error("empty path did not return the defaults")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
physics:
  run_speed: 12.5
rules:
  stars_to_win: 3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.RunSpeed != 12.5 {
		t.Errorf("run_speed = %v, want 12.5", cfg.Physics.RunSpeed)
	}
	if cfg.Rules.StarsToWin != 3 {
		t.Errorf("stars_to_win = %d, want 3", cfg.Rules.StarsToWin)
	}
	// Untouched fields keep their defaults.
	def := Default()
	if cfg.Physics.Gravity != def.Physics.Gravity {
		t.Errorf("gravity = %v, want default %v", cfg.Physics.Gravity, def.Physics.Gravity)
	}
	if cfg.Window != def.Window {
		t.Errorf("window = %+v, want default %+v", cfg.Window, def.Window)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("physics: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed YAML accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"zero gravity", func(c *Config) { c.Physics.Gravity = 0 }, "gravity"},
		{"positive terminal", func(c *Config) { c.Physics.TerminalVelocity = 1 }, "terminal_velocity"},
		{"zero max step", func(c *Config) { c.Physics.MaxStep = 0 }, "max_step"},
		{"smoothing above one", func(c *Config) { c.Physics.TurnSmoothing = 1.5 }, "turn_smoothing"},
		{"zero half height", func(c *Config) { c.Physics.HalfHeight = 0 }, "half_height"},
		{"negative chain window", func(c *Config) { c.Physics.ChainWindow = -1 }, "chain_window"},
		{"zero stars", func(c *Config) { c.Rules.StarsToWin = 0 }, "stars_to_win"},
		{"zero window", func(c *Config) { c.Window.Width = 0 }, "window"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("invalid config accepted")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("config with negative gravity accepted")
	}
}
