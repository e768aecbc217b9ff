// Package anim provides the single-value animators that drive every motion
// in the explorer: panning, zooming, rotating, tweening to points of
// interest and easing the exposure window.
//
// An animator owns a value and a Spec. Each call to Update advances the
// value by exactly one tick according to the active Spec. The set of Spec
// kinds is closed; dispatch is a switch on Kind.
package anim

import "github.com/dshills/fractalterm/internal/geom"

// Kind identifies the motion model of a Spec.
type Kind int

const (
	// KindNone is inert: Update leaves the value alone.
	KindNone Kind = iota
	// KindVelocity adds Velocity each tick, then decays it by Friction.
	KindVelocity
	// KindVelocityWithRotation rotates Velocity by Rotation before adding it.
	// Only meaningful for 2-D values.
	KindVelocityWithRotation
	// KindScaleVelocity adds Value*ScaleVelocity each tick (multiplicative
	// momentum), then decays ScaleVelocity by Friction.
	KindScaleVelocity
	// KindTarget eases the value toward Target by Coefficient of the
	// remaining distance each tick.
	KindTarget
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindVelocity:
		return "velocity"
	case KindVelocityWithRotation:
		return "velocity-with-rotation"
	case KindScaleVelocity:
		return "scale-velocity"
	case KindTarget:
		return "target"
	default:
		return "unknown"
	}
}

// Spec is a motion model. Only the fields relevant to Kind are used.
// An Epsilon of zero or less disables self-termination.
type Spec[T any] struct {
	Kind Kind

	// Velocity, VelocityWithRotation
	Velocity T
	Rotation float64

	// Velocity, VelocityWithRotation, ScaleVelocity
	Friction float64

	// ScaleVelocity
	ScaleVelocity float64

	// Target
	Target      T
	Coefficient float64

	// Velocity, ScaleVelocity, Target
	Epsilon float64
}

// None returns an inert spec.
func None[T any]() Spec[T] {
	return Spec[T]{Kind: KindNone}
}

// Velocity returns a decaying velocity spec.
func Velocity[T any](velocity T, friction, epsilon float64) Spec[T] {
	return Spec[T]{
		Kind:     KindVelocity,
		Velocity: velocity,
		Friction: friction,
		Epsilon:  epsilon,
	}
}

// VelocityWithRotation returns a 2-D velocity spec whose velocity is rotated
// by rotation radians before it is applied. The rotation is set by the
// caller and is not animated.
func VelocityWithRotation(velocity geom.Vec2, rotation, friction float64) Spec[geom.Vec2] {
	return Spec[geom.Vec2]{
		Kind:     KindVelocityWithRotation,
		Velocity: velocity,
		Rotation: rotation,
		Friction: friction,
	}
}

// ScaleVelocity returns a multiplicative velocity spec.
func ScaleVelocity[T any](scale, friction, epsilon float64) Spec[T] {
	return Spec[T]{
		Kind:          KindScaleVelocity,
		ScaleVelocity: scale,
		Friction:      friction,
		Epsilon:       epsilon,
	}
}

// Target returns an ease-out spec toward target.
func Target[T any](target T, coefficient, epsilon float64) Spec[T] {
	return Spec[T]{
		Kind:        KindTarget,
		Target:      target,
		Coefficient: coefficient,
		Epsilon:     epsilon,
	}
}

// IsNone reports whether s drives no motion.
func (s Spec[T]) IsNone() bool {
	return s.Kind == KindNone
}

func (s Spec[T]) hasEpsilon() bool {
	return s.Epsilon > 0
}
