package game

import (
	"errors"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Speed != 4 || cfg.Capture.Speed != 2 || cfg.Capture.Color != ColorWhite {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cubeColors[cfg.PlayerCubes[0]] != ColorCyan || cubeColors[cfg.PlayerCubes[1]] != ColorLime {
		t.Fatal("default cubes should be cyan for P1 and lime for P2")
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Config)
		ok   bool
	}{
		{"speed 1", func(c *Config) { c.Speed = 1 }, true},
		{"speed 16", func(c *Config) { c.Speed = 16 }, true},
		{"speed 3", func(c *Config) { c.Speed = 3 }, false},
		{"speed 0", func(c *Config) { c.Speed = 0 }, false},
		{"capture speed 0 keeps speed", func(c *Config) { c.Capture.Speed = 0 }, true},
		{"capture speed 5", func(c *Config) { c.Capture.Speed = 5 }, false},
		{"capture speed negative", func(c *Config) { c.Capture.Speed = -2 }, false},
		{"no fade", func(c *Config) { c.TrailFade = 0 }, false},
		{"floor above start", func(c *Config) { c.TrailMinAlpha = 0.95 }, false},
		{"start above one", func(c *Config) { c.TrailStartAlpha = 1.5 }, false},
		{"bad cube", func(c *Config) { c.PlayerCubes[1] = cubeCount }, false},
		{"pink cube", func(c *Config) { c.PlayerCubes[0] = CubePink }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.edit(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrConfig) {
				t.Fatalf("err=%v, want ErrConfig", err)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[float64]string{0: "0:00", 9.9: "0:09", 61: "1:01", 600: "10:00"}
	for in, want := range cases {
		if got := formatClock(in); got != want {
			t.Errorf("formatClock(%v)=%q, want %q", in, got, want)
		}
	}
}
