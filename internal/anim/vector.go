package anim

import (
	"math"

	"github.com/dshills/fractalterm/internal/geom"
)

// Vector animates a 2-D value.
//
// Unlike Scalar, a Target completes on Euclidean distance to the target and
// has no approach direction.
type Vector struct {
	// Value is the current value. Callers may write it directly to apply
	// bounds; doing so does not change the active spec.
	Value geom.Vec2

	spec Spec[geom.Vec2]
}

// NewVector creates a vector animator.
func NewVector(value geom.Vec2, spec Spec[geom.Vec2]) *Vector {
	return &Vector{Value: value, spec: spec}
}

// Spec returns a copy of the active spec.
func (a *Vector) Spec() Spec[geom.Vec2] {
	return a.spec
}

// Kind returns the kind of the active spec.
func (a *Vector) Kind() Kind {
	return a.spec.Kind
}

// SetSpec replaces the motion model.
func (a *Vector) SetSpec(s Spec[geom.Vec2]) {
	a.spec = s
}

// SetTarget changes the target of the active Target spec.
func (a *Vector) SetTarget(target geom.Vec2) error {
	if a.spec.Kind != KindTarget {
		return wrongVariant("set target", a.spec.Kind)
	}
	a.spec.Target = target
	return nil
}

// SetVelocity replaces the velocity of the active Velocity or
// VelocityWithRotation spec.
func (a *Vector) SetVelocity(v geom.Vec2) error {
	if !a.hasVelocity() {
		return wrongVariant("set velocity", a.spec.Kind)
	}
	a.spec.Velocity = v
	return nil
}

// AddVelocity adds dv to the velocity of the active Velocity or
// VelocityWithRotation spec.
func (a *Vector) AddVelocity(dv geom.Vec2) error {
	if !a.hasVelocity() {
		return wrongVariant("add velocity", a.spec.Kind)
	}
	a.spec.Velocity = a.spec.Velocity.Add(dv)
	return nil
}

// SetRotation sets the rotation of the active VelocityWithRotation spec.
func (a *Vector) SetRotation(theta float64) error {
	if a.spec.Kind != KindVelocityWithRotation {
		return wrongVariant("set rotation", a.spec.Kind)
	}
	a.spec.Rotation = theta
	return nil
}

// SetScaleVelocity replaces the scale velocity of the active ScaleVelocity
// spec.
func (a *Vector) SetScaleVelocity(s float64) error {
	if a.spec.Kind != KindScaleVelocity {
		return wrongVariant("set scale velocity", a.spec.Kind)
	}
	a.spec.ScaleVelocity = s
	return nil
}

func (a *Vector) hasVelocity() bool {
	return a.spec.Kind == KindVelocity || a.spec.Kind == KindVelocityWithRotation
}

// Update advances the value by one tick.
func (a *Vector) Update() {
	done := false

	switch a.spec.Kind {
	case KindVelocity:
		a.Value = a.Value.Add(a.spec.Velocity)
		a.spec.Velocity = a.spec.Velocity.Scale(a.spec.Friction)
		if a.spec.hasEpsilon() && a.spec.Velocity.Len() < a.spec.Epsilon {
			done = true
		}

	case KindVelocityWithRotation:
		a.Value = a.Value.Add(a.spec.Velocity.Rotate(a.spec.Rotation))
		a.spec.Velocity = a.spec.Velocity.Scale(a.spec.Friction)

	case KindScaleVelocity:
		a.Value = a.Value.Add(a.Value.Scale(a.spec.ScaleVelocity))
		a.spec.ScaleVelocity *= a.spec.Friction
		if a.spec.hasEpsilon() && math.Abs(a.spec.ScaleVelocity) < a.spec.Epsilon {
			done = true
		}

	case KindTarget:
		target := a.spec.Target
		c := a.spec.Coefficient
		a.Value.X += (target.X - a.Value.X) * c
		a.Value.Y += (target.Y - a.Value.Y) * c
		if a.spec.hasEpsilon() && a.Value.Sub(target).Len() <= a.spec.Epsilon {
			a.Value = target
			done = true
		}

	case KindNone:
	}

	if done {
		a.spec = None[geom.Vec2]()
	}
}

