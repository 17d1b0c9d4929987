// Package config holds the tunable parameters of the particle window and
// loads them from defaults, an optional TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/iburimskiy/particle-field/internal/particles"
	"github.com/iburimskiy/particle-field/internal/render"
	"github.com/iburimskiy/particle-field/internal/sound"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PFIELD_"

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "JARVIS particle field - H: HUD, S: screenshot, Esc/Q: quit"

	// Particle field
	ParticleCount     = 80
	MaxDistance       = 120
	ParticleSpeed     = 0.5
	ParticleSize      = 2
	ConnectionOpacity = 0.3
	ParticleOpacity   = 0.8
	PointerRadius     = 150

	// Sound cues
	SampleRate = 44100
	Volume     = 1.0
)

var (
	PrimaryColor    = render.Color{R: 0, G: 188, B: 212}
	AccentColor     = render.Color{R: 0, G: 229, B: 255}
	BackgroundColor = render.Color{R: 10, G: 14, B: 20}
)

// Window configures the host window.
type Window struct {
	Width      int          `toml:"width" env:"WIDTH"`
	Height     int          `toml:"height" env:"HEIGHT"`
	Title      string       `toml:"title" env:"TITLE"`
	Resizable  bool         `toml:"resizable" env:"RESIZABLE"`
	Background render.Color `toml:"background" env:"BACKGROUND"`
	HUD        bool         `toml:"hud" env:"HUD"`
}

// Particles configures the particle field and pointer.
type Particles struct {
	Count             int          `toml:"count" env:"COUNT"`
	MaxDistance       float64      `toml:"max_distance" env:"MAX_DISTANCE"`
	Speed             float64      `toml:"speed" env:"SPEED"`
	Size              float64      `toml:"size" env:"SIZE"`
	ConnectionOpacity float64      `toml:"connection_opacity" env:"CONNECTION_OPACITY"`
	ParticleOpacity   float64      `toml:"particle_opacity" env:"PARTICLE_OPACITY"`
	Primary           render.Color `toml:"primary" env:"PRIMARY"`
	Accent            render.Color `toml:"accent" env:"ACCENT"`
	PointerRadius     float64      `toml:"pointer_radius" env:"POINTER_RADIUS"`
}

// Sound configures the optional UI sound cues. Hover, Click and Success name
// audio files that replace the synthesized tone for that cue.
type Sound struct {
	Enabled    bool    `toml:"enabled" env:"ENABLED"`
	SampleRate int     `toml:"sample_rate" env:"SAMPLE_RATE"`
	Volume     float64 `toml:"volume" env:"VOLUME"`
	Hover      string  `toml:"hover" env:"HOVER"`
	Click      string  `toml:"click" env:"CLICK"`
	Success    string  `toml:"success" env:"SUCCESS"`
}

// Config is the full application configuration.
type Config struct {
	LogLevel  string    `toml:"log_level" env:"LOG_LEVEL"`
	Window    Window    `toml:"window" envPrefix:"WINDOW_"`
	Particles Particles `toml:"particles" envPrefix:"PARTICLES_"`
	Sound     Sound     `toml:"sound" envPrefix:"SOUND_"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Window: Window{
			Width:      WindowWidth,
			Height:     WindowHeight,
			Title:      WindowTitle,
			Resizable:  true,
			Background: BackgroundColor,
		},
		Particles: Particles{
			Count:             ParticleCount,
			MaxDistance:       MaxDistance,
			Speed:             ParticleSpeed,
			Size:              ParticleSize,
			ConnectionOpacity: ConnectionOpacity,
			ParticleOpacity:   ParticleOpacity,
			Primary:           PrimaryColor,
			Accent:            AccentColor,
			PointerRadius:     PointerRadius,
		},
		Sound: Sound{
			SampleRate: SampleRate,
			Volume:     Volume,
		},
	}
}

// Load starts from Default, overlays the TOML file at path (if any) and then
// the environment. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("decode %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every out-of-range value at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0,
		"window: size %dx%d must be positive", c.Window.Width, c.Window.Height)

	p := c.Particles
	check(p.Count >= 0, "particles: count %d must not be negative", p.Count)
	check(p.MaxDistance > 0, "particles: max_distance %v must be positive", p.MaxDistance)
	check(p.Speed >= 0, "particles: speed %v must not be negative", p.Speed)
	check(p.Size >= 0, "particles: size %v must not be negative", p.Size)
	check(p.ConnectionOpacity >= 0 && p.ConnectionOpacity <= 1,
		"particles: connection_opacity %v outside [0, 1]", p.ConnectionOpacity)
	check(p.ParticleOpacity >= 0 && p.ParticleOpacity <= 1,
		"particles: particle_opacity %v outside [0, 1]", p.ParticleOpacity)
	check(p.PointerRadius > 0, "particles: pointer_radius %v must be positive", p.PointerRadius)

	if c.Sound.Enabled {
		check(c.Sound.SampleRate > 0, "sound: sample_rate %d must be positive", c.Sound.SampleRate)
		check(c.Sound.Volume >= 0, "sound: volume %v must not be negative", c.Sound.Volume)
	}

	return errors.Join(errs...)
}

// Field returns the particle field settings.
func (p Particles) Field() particles.Config {
	return particles.Config{
		Count:             p.Count,
		MaxDistance:       p.MaxDistance,
		Speed:             p.Speed,
		Size:              p.Size,
		ConnectionOpacity: p.ConnectionOpacity,
		ParticleOpacity:   p.ParticleOpacity,
		Primary:           p.Primary,
		Accent:            p.Accent,
	}
}

// Options returns the sound player settings.
func (s Sound) Options() sound.Options {
	return sound.Options{
		Enabled:    s.Enabled,
		SampleRate: s.SampleRate,
		Volume:     s.Volume,
		Samples: map[sound.Cue]string{
			sound.Hover:   s.Hover,
			sound.Click:   s.Click,
			sound.Success: s.Success,
		},
	}
}
