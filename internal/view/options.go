package view

import (
	"math"

	"github.com/dshills/fractalterm/internal/ascii"
	"github.com/dshills/fractalterm/internal/exposure"
	"github.com/dshills/fractalterm/internal/fractal"
	"github.com/dshills/fractalterm/internal/poi"
)

// Motion holds the tuning of user-driven animation.
type Motion struct {
	// TargetCoef is the base ease coefficient for tweens.
	TargetCoef float64
	// Friction decays velocities each tick.
	Friction float64
	// ZoomIncrement is the scale velocity of one zoom step.
	ZoomIncrement float64
	// VelocityRatio is one pan step as a fraction of the view width.
	VelocityRatio float64
	// RotationIncrement is one rotation step in radians.
	RotationIncrement float64
	// MinWidth bounds zooming in.
	MinWidth float64
}

// DefaultMotion returns the standard motion tuning.
func DefaultMotion() Motion {
	return Motion{
		TargetCoef:        0.08,
		Friction:          0.95,
		ZoomIncrement:     0.015,
		VelocityRatio:     0.007,
		RotationIncrement: 1.2 * math.Pi / 180,
		MinWidth:          1e-13,
	}
}

// Exposure holds the autoexposure settings.
type Exposure struct {
	Auto   bool
	Lower  float64
	Upper  float64
	Policy exposure.BiasPolicy
}

// DefaultExposure returns autoexposure on with the default thresholds.
func DefaultExposure() Exposure {
	return Exposure{
		Auto:   true,
		Lower:  exposure.DefaultLowerThreshold,
		Upper:  exposure.DefaultUpperThreshold,
		Policy: exposure.BiasNonPositive,
	}
}

// Options configures a View.
type Options struct {
	Descriptor fractal.Descriptor
	Motion     Motion
	Exposure   Exposure
	Charset    ascii.Charset
	// Points are the Mandelbrot destinations.
	Points []poi.Point
	// Seeds are the Julia seeds.
	Seeds []poi.Seed
}

// DefaultOptions returns options for family with the built-in points of
// interest.
func DefaultOptions(family fractal.Family) Options {
	d := fractal.NewDescriptor(family)
	return Options{
		Descriptor: d,
		Motion:     DefaultMotion(),
		Exposure:   DefaultExposure(),
		Charset:    ascii.MustCharset(ascii.DefaultCharset),
		Points:     poi.DefaultPoints(d.DefaultWidth),
		Seeds:      poi.DefaultSeeds(),
	}
}

// Exposure animator tuning.
const (
	exposureInitCoef    = 0.1
	exposureInitEpsilon = 0.01
	exposureCoef        = 0.12
	exposureEpsilon     = 0.5
)

// Motion tuning that is not user-configurable.
const (
	widthBounce       = -0.25
	positionBounce    = -0.33
	zoomEpsilon       = 1e-5
	rotationEpsilon   = 1e-5
	seedEpsilon       = 1e-7
	tourPullbackCoef  = 0.4
	tourPullbackWidth = 1.5
	tourPullbackEps   = 0.003
	tourApproachCoef  = 0.55
	tourZoomCoef      = 0.5
	tourArrivalRatio  = 0.1
)
