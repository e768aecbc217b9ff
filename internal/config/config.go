package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dshills/fractalterm/internal/ascii"
	"github.com/dshills/fractalterm/internal/exposure"
	"github.com/dshills/fractalterm/internal/fractal"
	"github.com/dshills/fractalterm/internal/poi"
)

// Config is the complete fractalterm configuration.
type Config struct {
	Fractal  FractalConfig  `toml:"fractal"`
	Exposure ExposureConfig `toml:"exposure"`
	Motion   MotionConfig   `toml:"motion"`
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	POI      POIConfig      `toml:"poi"`
}

// FractalConfig selects the initial family and compute parameters.
type FractalConfig struct {
	// Family is the view shown at startup: "mandelbrot" or "julia".
	Family string `toml:"family"`
	// JuliaSeed is [re, im].
	JuliaSeed          []float64 `toml:"julia_seed"`
	MaxEscape          int       `toml:"max_escape"`
	DefaultWidth       float64   `toml:"default_width"`
	ElementAspectRatio float64   `toml:"element_aspect_ratio"`
	// Threads is the worker count; 0 means one per CPU.
	Threads int `toml:"threads"`
}

// ExposureConfig tunes the histogram analyzer.
type ExposureConfig struct {
	Auto       bool    `toml:"auto"`
	Lower      float64 `toml:"lower"`
	Upper      float64 `toml:"upper"`
	BiasPolicy string  `toml:"bias_policy"`
}

// MotionConfig tunes user-driven animation.
type MotionConfig struct {
	TargetCoef    float64 `toml:"target_coef"`
	Friction      float64 `toml:"friction"`
	ZoomIncrement float64 `toml:"zoom_increment"`
	VelocityRatio float64 `toml:"velocity_ratio"`
	// RotationIncrement is in degrees.
	RotationIncrement float64 `toml:"rotation_increment"`
	MinWidth          float64 `toml:"min_width"`
}

// DisplayConfig controls frame pacing and drawing.
type DisplayConfig struct {
	FPS         int    `toml:"fps"`
	Charset     string `toml:"charset"`
	Color       bool   `toml:"color"`
	PaletteFrom string `toml:"palette_from"`
	PaletteTo   string `toml:"palette_to"`
	HUD         bool   `toml:"hud"`
}

// LoggingConfig controls the session log.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File receives log output; empty discards it.
	File string `toml:"file"`
}

// POIConfig overrides the built-in destinations. Points are "x, y, zoom"
// strings and seeds are "re, im" strings, filling slots from key 1.
type POIConfig struct {
	Points []string `toml:"points"`
	Seeds  []string `toml:"seeds"`
}

// MaxFPS bounds display.fps.
const MaxFPS = 240

// logLevels are the accepted logging.level values.
var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the built-in configuration.
func Default() *Config {
	seed := fractal.DefaultJuliaSeed
	return &Config{
		Fractal: FractalConfig{
			Family:             fractal.KindMandelbrot.String(),
			JuliaSeed:          []float64{real(seed), imag(seed)},
			MaxEscape:          int(fractal.DefaultMaxEscape),
			DefaultWidth:       fractal.DefaultWidth,
			ElementAspectRatio: fractal.DefaultElementAspectRatio,
			Threads:            0,
		},
		Exposure: ExposureConfig{
			Auto:       true,
			Lower:      exposure.DefaultLowerThreshold,
			Upper:      exposure.DefaultUpperThreshold,
			BiasPolicy: exposure.BiasNonPositive.String(),
		},
		Motion: MotionConfig{
			TargetCoef:        0.08,
			Friction:          0.95,
			ZoomIncrement:     0.015,
			VelocityRatio:     0.007,
			RotationIncrement: 1.2,
			MinWidth:          1e-13,
		},
		Display: DisplayConfig{
			FPS:         60,
			Charset:     ascii.DefaultCharset,
			Color:       true,
			PaletteFrom: ascii.DefaultPaletteFrom,
			PaletteTo:   ascii.DefaultPaletteTo,
			HUD:         true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	f := c.Fractal
	if _, err := fractal.ParseFamilyKind(f.Family); err != nil {
		fail("fractal.family", "must be mandelbrot or julia", f.Family)
	}
	if len(f.JuliaSeed) != 2 {
		fail("fractal.julia_seed", "must be [re, im]", f.JuliaSeed)
	}
	if f.MaxEscape < 1 || f.MaxEscape > math.MaxUint16 {
		fail("fractal.max_escape", fmt.Sprintf("must be in [1, %d]", math.MaxUint16), f.MaxEscape)
	}
	if !(f.DefaultWidth > 0) {
		fail("fractal.default_width", "must be positive", f.DefaultWidth)
	}
	if !(f.ElementAspectRatio > 0) {
		fail("fractal.element_aspect_ratio", "must be positive", f.ElementAspectRatio)
	}
	if f.Threads < 0 {
		fail("fractal.threads", "must not be negative", f.Threads)
	}

	e := c.Exposure
	if e.Lower < 0 || e.Lower >= 1 {
		fail("exposure.lower", "must be in [0, 1)", e.Lower)
	}
	if e.Upper < 0 || e.Upper >= 1 {
		fail("exposure.upper", "must be in [0, 1)", e.Upper)
	}
	if e.Lower+e.Upper >= 1 {
		fail("exposure", "lower + upper must be below 1", e.Lower+e.Upper)
	}
	if _, err := exposure.ParseBiasPolicy(e.BiasPolicy); err != nil {
		fail("exposure.bias_policy", "unknown policy", e.BiasPolicy)
	}

	m := c.Motion
	if m.TargetCoef <= 0 || m.TargetCoef > 1 {
		fail("motion.target_coef", "must be in (0, 1]", m.TargetCoef)
	}
	if m.Friction < 0 || m.Friction > 1 {
		fail("motion.friction", "must be in [0, 1]", m.Friction)
	}
	if !(m.ZoomIncrement > 0) {
		fail("motion.zoom_increment", "must be positive", m.ZoomIncrement)
	}
	if !(m.VelocityRatio > 0) {
		fail("motion.velocity_ratio", "must be positive", m.VelocityRatio)
	}
	if !(m.RotationIncrement > 0) {
		fail("motion.rotation_increment", "must be positive", m.RotationIncrement)
	}
	if !(m.MinWidth > 0) || m.MinWidth >= f.DefaultWidth {
		fail("motion.min_width", "must be positive and below fractal.default_width", m.MinWidth)
	}

	d := c.Display
	if d.FPS < 1 || d.FPS > MaxFPS {
		fail("display.fps", fmt.Sprintf("must be in [1, %d]", MaxFPS), d.FPS)
	}
	if _, err := ascii.NewCharset(d.Charset); err != nil {
		fail("display.charset", err.Error(), d.Charset)
	}
	if _, err := ascii.NewPalette(d.PaletteFrom, d.PaletteTo, 2); err != nil {
		fail("display.palette", err.Error(), d.PaletteFrom+".."+d.PaletteTo)
	}

	if !validLevel(c.Logging.Level) {
		fail("logging.level", "must be one of "+strings.Join(logLevels, ", "), c.Logging.Level)
	}

	if _, err := c.Points(); err != nil {
		fail("poi.points", err.Error(), c.POI.Points)
	}
	if _, err := c.Seeds(); err != nil {
		fail("poi.seeds", err.Error(), c.POI.Seeds)
	}

	return errors.Join(errs...)
}

func validLevel(s string) bool {
	s = strings.ToLower(s)
	if s == "warning" {
		return true
	}
	for _, l := range logLevels {
		if s == l {
			return true
		}
	}
	return false
}

// FamilyKind returns the startup family.
func (c *Config) FamilyKind() fractal.FamilyKind {
	k, err := fractal.ParseFamilyKind(c.Fractal.Family)
	if err != nil {
		return fractal.KindMandelbrot
	}
	return k
}

// JuliaSeed returns the configured seed, or the default when malformed.
func (c *Config) JuliaSeed() complex128 {
	if len(c.Fractal.JuliaSeed) != 2 {
		return fractal.DefaultJuliaSeed
	}
	return complex(c.Fractal.JuliaSeed[0], c.Fractal.JuliaSeed[1])
}

// BiasPolicy returns the configured policy, or the default when unknown.
func (c *Config) BiasPolicy() exposure.BiasPolicy {
	p, err := exposure.ParseBiasPolicy(c.Exposure.BiasPolicy)
	if err != nil {
		return exposure.BiasNonPositive
	}
	return p
}

// Charset returns the configured glyph ramp, or the default when invalid.
func (c *Config) Charset() ascii.Charset {
	cs, err := ascii.NewCharset(c.Display.Charset)
	if err != nil {
		return ascii.MustCharset(ascii.DefaultCharset)
	}
	return cs
}

// Points returns the built-in destinations with configured overrides.
func (c *Config) Points() ([]poi.Point, error) {
	overrides, err := poi.ParsePoints(strings.Join(c.POI.Points, "\n"))
	if err != nil {
		return nil, err
	}
	return poi.Merge(poi.DefaultPoints(c.Fractal.DefaultWidth), overrides), nil
}

// Seeds returns the built-in Julia seeds with configured overrides.
func (c *Config) Seeds() ([]poi.Seed, error) {
	overrides, err := poi.ParseSeeds(strings.Join(c.POI.Seeds, "\n"))
	if err != nil {
		return nil, err
	}
	return poi.Merge(poi.DefaultSeeds(), overrides), nil
}
