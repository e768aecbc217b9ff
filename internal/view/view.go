// Package view composes the animators, change gates, compute engine and
// exposure analysis that make up one explorable fractal.
//
// A View is driven by a single goroutine. Each frame the caller applies any
// pending commands, calls Tick once, then calls RenderIfDirty. The escape
// matrix is only recomputed when the tracked viewport scalars change.
package view

import (
	"fmt"

	"github.com/dshills/fractalterm/internal/anim"
	"github.com/dshills/fractalterm/internal/ascii"
	"github.com/dshills/fractalterm/internal/dirty"
	"github.com/dshills/fractalterm/internal/exposure"
	"github.com/dshills/fractalterm/internal/fractal"
	"github.com/dshills/fractalterm/internal/geom"
)

// View is one fractal with its own viewport, exposure and tour state.
type View struct {
	desc     fractal.Descriptor
	motion   Motion
	exposure Exposure
	family   family

	escape    *fractal.EscapeMatrix
	index     *fractal.IndexMatrix
	asciifier *ascii.Asciifier

	position *anim.Vector
	width    *anim.Scalar
	rotation *anim.Scalar

	window exposure.Window
	floor  *anim.Scalar
	ceil   *anim.Scalar

	fractalGate  *dirty.Gate
	exposureGate *dirty.Gate
	values       []float64

	// configSeed is the Julia seed last supplied through Options.
	configSeed complex128
}

// New creates a view with a gridW x gridH matrix.
func New(gridW, gridH int, opts Options) (*View, error) {
	if err := opts.Descriptor.Validate(); err != nil {
		return nil, err
	}

	v := &View{
		desc:       opts.Descriptor,
		motion:     opts.Motion,
		exposure:   opts.Exposure,
		configSeed: opts.Descriptor.Family.Seed,
	}
	if err := v.allocate(gridW, gridH); err != nil {
		return nil, err
	}

	switch opts.Descriptor.Family.Kind {
	case fractal.KindJulia:
		v.family = newJuliaFamily(opts.Seeds, opts.Descriptor.Family.Seed)
	default:
		v.family = newMandelbrotFamily(opts.Points)
	}

	top := float64(v.desc.MaxEscape)
	v.asciifier = ascii.New(opts.Charset, 0, top)
	v.position = anim.NewVector(v.desc.DefaultCenter, anim.None[geom.Vec2]())
	v.width = anim.NewScalar(v.desc.DefaultWidth, anim.None[float64]())
	v.rotation = anim.NewScalar(0, anim.None[float64]())

	v.window = exposure.Window{Floor: 0, Ceil: int(v.desc.MaxEscape)}
	v.floor = anim.NewScalar(0, anim.Target(0.0, exposureInitCoef, exposureInitEpsilon))
	v.ceil = anim.NewScalar(top, anim.Target(top, exposureInitCoef, exposureInitEpsilon))

	v.fractalGate = dirty.NewGate(4 + v.family.trackedCount())
	v.exposureGate = dirty.NewGate(2)
	return v, nil
}

func (v *View) allocate(gridW, gridH int) error {
	escape, err := fractal.NewEscapeMatrix(gridW, gridH)
	if err != nil {
		return err
	}
	index, err := fractal.NewIndexMatrix(gridW, gridH)
	if err != nil {
		return err
	}
	v.escape = escape
	v.index = index
	return nil
}

// Resize replaces the matrices with gridW x gridH ones and forces a full
// recompute. On error the view keeps its previous matrices.
func (v *View) Resize(gridW, gridH int) error {
	if v.escape.SameSize(gridW, gridH) {
		return nil
	}
	if err := v.allocate(gridW, gridH); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	v.fractalGate.ForceDirty()
	v.exposureGate.ForceDirty()
	return nil
}

// Descriptor returns the compute configuration, including the current
// Julia seed.
func (v *View) Descriptor() fractal.Descriptor {
	return v.desc
}

// Family returns the fractal family kind.
func (v *View) Family() fractal.FamilyKind {
	return v.desc.Family.Kind
}

// Viewport returns the current center, width and rotation.
func (v *View) Viewport() fractal.Viewport {
	return fractal.Viewport{
		Center:   v.position.Value,
		Width:    v.width.Value,
		Rotation: v.rotation.Value,
	}
}

// Magnification returns the zoom relative to the default width.
func (v *View) Magnification() float64 {
	return v.desc.DefaultWidth / v.width.Value
}

// GridSize returns the matrix dimensions.
func (v *View) GridSize() (width, height int) {
	return v.escape.Width(), v.escape.Height()
}

// Window returns the most recent analyzed exposure window.
func (v *View) Window() exposure.Window {
	return v.window
}

// AutoExposure reports whether autoexposure is on.
func (v *View) AutoExposure() bool {
	return v.exposure.Auto
}

// SetAutoExposure turns autoexposure on or off.
func (v *View) SetAutoExposure(on bool) {
	v.exposure.Auto = on
}

// Charset returns the glyph ramp used for the index matrix.
func (v *View) Charset() ascii.Charset {
	return v.asciifier.Charset()
}

// Touring reports whether a point-of-interest animation is in flight.
func (v *View) Touring() bool {
	return v.family.active()
}

// Reconfigure applies new tuning without resetting the viewport. The
// family kind cannot change. The running Julia seed is kept unless the
// configured seed changed and no seed tour is in flight. Both gates are
// forced dirty so the next render reflects the new settings.
func (v *View) Reconfigure(opts Options) error {
	if err := opts.Descriptor.Validate(); err != nil {
		return err
	}
	if opts.Descriptor.Family.Kind != v.desc.Family.Kind {
		return fmt.Errorf("reconfigure: family %s cannot change to %s",
			v.desc.Family.Kind, opts.Descriptor.Family.Kind)
	}

	seed := v.desc.Family.Seed
	if next := opts.Descriptor.Family.Seed; next != v.configSeed && !v.family.active() {
		seed = next
	}
	v.configSeed = opts.Descriptor.Family.Seed
	v.desc = opts.Descriptor
	v.desc.Family.Seed = seed
	v.motion = opts.Motion
	v.exposure = opts.Exposure
	v.asciifier.SetCharset(opts.Charset)
	v.family.setDestinations(opts)

	v.fractalGate.ForceDirty()
	v.exposureGate.ForceDirty()
	return nil
}
