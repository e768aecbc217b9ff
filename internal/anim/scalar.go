package anim

import "math"

// Scalar animates a single float64.
type Scalar struct {
	// Value is the current value. Callers may write it directly to apply
	// bounds; doing so does not change the active spec.
	Value float64

	spec Spec[float64]

	// targetIsGT records, at the time a Target spec was set, whether the
	// target lay above the value. It picks the side of the target that
	// counts as arrived.
	targetIsGT bool
}

// NewScalar creates a scalar animator.
func NewScalar(value float64, spec Spec[float64]) *Scalar {
	a := &Scalar{Value: value}
	a.SetSpec(spec)
	return a
}

// Spec returns a copy of the active spec.
func (a *Scalar) Spec() Spec[float64] {
	return a.spec
}

// Kind returns the kind of the active spec.
func (a *Scalar) Kind() Kind {
	return a.spec.Kind
}

// SetSpec replaces the motion model. For a Target spec the approach
// direction is recomputed from the current value.
func (a *Scalar) SetSpec(s Spec[float64]) {
	if s.Kind == KindTarget {
		a.targetIsGT = s.Target > a.Value
	}
	a.spec = s
}

// SetTarget changes the target of the active Target spec without
// recomputing the approach direction.
func (a *Scalar) SetTarget(target float64) error {
	if a.spec.Kind != KindTarget {
		return wrongVariant("set target", a.spec.Kind)
	}
	a.spec.Target = target
	return nil
}

// SetVelocity replaces the velocity of the active Velocity spec.
func (a *Scalar) SetVelocity(v float64) error {
	if a.spec.Kind != KindVelocity {
		return wrongVariant("set velocity", a.spec.Kind)
	}
	a.spec.Velocity = v
	return nil
}

// AddVelocity adds dv to the velocity of the active Velocity spec.
func (a *Scalar) AddVelocity(dv float64) error {
	if a.spec.Kind != KindVelocity {
		return wrongVariant("add velocity", a.spec.Kind)
	}
	a.spec.Velocity += dv
	return nil
}

// SetScaleVelocity replaces the scale velocity of the active ScaleVelocity
// spec.
func (a *Scalar) SetScaleVelocity(s float64) error {
	if a.spec.Kind != KindScaleVelocity {
		return wrongVariant("set scale velocity", a.spec.Kind)
	}
	a.spec.ScaleVelocity = s
	return nil
}

// Update advances the value by one tick.
func (a *Scalar) Update() {
	done := false

	switch a.spec.Kind {
	case KindVelocity:
		a.Value += a.spec.Velocity
		a.spec.Velocity *= a.spec.Friction
		if a.spec.hasEpsilon() && math.Abs(a.spec.Velocity) < a.spec.Epsilon {
			done = true
		}

	case KindScaleVelocity:
		a.Value += a.Value * a.spec.ScaleVelocity
		a.spec.ScaleVelocity *= a.spec.Friction
		if a.spec.hasEpsilon() && math.Abs(a.spec.ScaleVelocity) < a.spec.Epsilon {
			done = true
		}

	case KindTarget:
		target := a.spec.Target
		a.Value += (target - a.Value) * a.spec.Coefficient
		if a.spec.hasEpsilon() {
			if a.targetIsGT {
				done = a.Value >= target-a.spec.Epsilon
			} else {
				done = a.Value <= target+a.spec.Epsilon
			}
			if done {
				a.Value = target
			}
		}

	case KindNone, KindVelocityWithRotation:
		// VelocityWithRotation has no 1-D meaning.
	}

	if done {
		a.spec = None[float64]()
	}
}
