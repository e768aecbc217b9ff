// Package dirty provides the change gate that decides whether a frame's
// tracked parameters moved since the previous frame.
//
// A Gate is owned by a single controller and is not safe for concurrent use.
package dirty

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when Check is called with a vector whose
// length differs from the gate's tracked parameter count.
var ErrLengthMismatch = errors.New("tracked value count mismatch")

// Gate remembers the last-seen vector of tracked scalars.
type Gate struct {
	values []float64

	// seen is false until the first successful Check.
	seen bool

	// force makes the next Check report dirty.
	force bool

	// dirty is the result of the last Check.
	dirty bool
}

// NewGate creates a gate tracking n scalars. The first Check is always
// dirty.
func NewGate(n int) *Gate {
	return &Gate{
		values: make([]float64, n),
		dirty:  true,
	}
}

// Len returns the number of tracked scalars.
func (g *Gate) Len() int {
	return len(g.values)
}

// Check stores values as the new baseline and reports whether any component
// differs from the previous baseline, or whether the gate was forced dirty.
// Comparison is exact; animators settle on bit-identical values when idle.
func (g *Gate) Check(values []float64) (bool, error) {
	if len(values) != len(g.values) {
		return false, fmt.Errorf("check %d values on gate of %d: %w", len(values), len(g.values), ErrLengthMismatch)
	}

	changed := !g.seen
	for i, v := range values {
		if g.values[i] != v {
			changed = true
		}
		g.values[i] = v
	}

	g.dirty = changed || g.force
	g.force = false
	g.seen = true
	return g.dirty, nil
}

// ForceDirty schedules the next Check to report dirty regardless of the
// values passed.
func (g *Gate) ForceDirty() {
	g.force = true
}

// IsDirty reports whether the last Check was dirty or a force is pending.
func (g *Gate) IsDirty() bool {
	return g.dirty || g.force
}
