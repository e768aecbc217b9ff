// Package fractal computes escape-time matrices for the Mandelbrot and Julia
// families.
//
// Compute maps each matrix cell to a point in fractal space through a
// rotated affine transform and partitions the rows into bands that are
// computed concurrently and merged in order. The result is bit-identical
// for any worker count.
package fractal

import (
	"fmt"
	"runtime"

	"github.com/dshills/fractalterm/internal/geom"
)

// Defaults shared by both families.
const (
	DefaultMaxEscape          uint16  = 500
	DefaultWidth              float64 = 4.0
	DefaultElementAspectRatio float64 = 0.4
)

// DefaultJuliaSeed is the seed used when no seed is configured.
const DefaultJuliaSeed = complex(-0.8, 0.156)

// FamilyKind identifies a fractal family.
type FamilyKind int

const (
	// KindMandelbrot iterates from z=0 with c set to the point.
	KindMandelbrot FamilyKind = iota
	// KindJulia iterates from z set to the point with a fixed seed c.
	KindJulia
)

// String returns the family name.
func (k FamilyKind) String() string {
	switch k {
	case KindMandelbrot:
		return "mandelbrot"
	case KindJulia:
		return "julia"
	default:
		return "unknown"
	}
}

// ParseFamilyKind parses a family name.
func ParseFamilyKind(s string) (FamilyKind, error) {
	switch s {
	case "mandelbrot", "m", "":
		return KindMandelbrot, nil
	case "julia", "j":
		return KindJulia, nil
	default:
		return 0, fmt.Errorf("unknown fractal family %q", s)
	}
}

// Family is a fractal family plus its parameters.
type Family struct {
	Kind FamilyKind
	// Seed is the constant c for KindJulia.
	Seed complex128
}

// Mandelbrot returns the Mandelbrot family.
func Mandelbrot() Family {
	return Family{Kind: KindMandelbrot}
}

// Julia returns the Julia family for seed c.
func Julia(seed complex128) Family {
	return Family{Kind: KindJulia, Seed: seed}
}

// Descriptor is the per-view compute configuration.
type Descriptor struct {
	Family             Family
	MaxEscape          uint16
	DefaultWidth       float64
	DefaultCenter      geom.Vec2
	ElementAspectRatio float64
	// Threads is the number of row bands. Zero means one per CPU.
	Threads int
}

// NewDescriptor returns a descriptor with default values for family.
func NewDescriptor(family Family) Descriptor {
	return Descriptor{
		Family:             family,
		MaxEscape:          DefaultMaxEscape,
		DefaultWidth:       DefaultWidth,
		ElementAspectRatio: DefaultElementAspectRatio,
	}
}

// Validate checks the descriptor for values Compute cannot work with.
func (d Descriptor) Validate() error {
	switch d.Family.Kind {
	case KindMandelbrot, KindJulia:
	default:
		return fmt.Errorf("descriptor: unknown family kind %d", d.Family.Kind)
	}
	if d.MaxEscape == 0 {
		return fmt.Errorf("descriptor: max escape must be positive")
	}
	if d.DefaultWidth <= 0 {
		return fmt.Errorf("descriptor: default width must be positive, got %v", d.DefaultWidth)
	}
	if d.ElementAspectRatio <= 0 {
		return fmt.Errorf("descriptor: element aspect ratio must be positive, got %v", d.ElementAspectRatio)
	}
	if d.Threads < 0 {
		return fmt.Errorf("descriptor: threads must not be negative, got %d", d.Threads)
	}
	return nil
}

// Workers returns the effective band count for a matrix of the given
// height.
func (d Descriptor) Workers(height int) int {
	n := d.Threads
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > height {
		n = height
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Height returns the fractal-space height covered by a gridW x gridH matrix
// when its width spans width.
func (d Descriptor) Height(gridW, gridH int, width float64) float64 {
	return width * (float64(gridH) / float64(gridW)) / d.ElementAspectRatio
}
