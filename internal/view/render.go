package view

import (
	"fmt"

	"github.com/dshills/fractalterm/internal/exposure"
	"github.com/dshills/fractalterm/internal/fractal"
)

// Frame is the output of one render pass.
type Frame struct {
	Escape *fractal.EscapeMatrix
	Index  *fractal.IndexMatrix
	// Window is the analyzed exposure window.
	Window exposure.Window
	// Floor and Ceil are the eased display bounds in use.
	Floor float64
	Ceil  float64
	// Bias is the bias applied to the index matrix.
	Bias float64
	// Computed is true when the escape matrix was recomputed.
	Computed bool
	// Indexed is true when the index matrix was rebuilt.
	Indexed bool
}

// RenderIfDirty recomputes the escape matrix when the viewport changed and
// rebuilds the index matrix when the matrix or display window changed.
// On error the matrices are left as they were.
func (v *View) RenderIfDirty() (Frame, error) {
	v.values = v.trackedValues(v.values[:0])
	computeDirty, err := v.fractalGate.Check(v.values)
	if err != nil {
		return Frame{}, fmt.Errorf("render: %w", err)
	}

	if computeDirty {
		if err := fractal.Compute(v.desc, v.Viewport(), v.escape); err != nil {
			v.fractalGate.ForceDirty()
			return Frame{}, fmt.Errorf("render: %w", err)
		}
		v.window = exposure.Analyze(v.escape, v.desc.MaxEscape, v.exposure.Lower, v.exposure.Upper)
	}

	v.asciifier.SetFloorCeil(v.floor.Value, v.ceil.Value)
	bias := 0.0
	if v.exposure.Auto {
		bias = v.exposure.Policy.Apply(v.window.Bias)
	}
	v.asciifier.SetBias(bias)

	exposureDirty, err := v.exposureGate.Check([]float64{v.floor.Value, v.ceil.Value})
	if err != nil {
		return Frame{}, fmt.Errorf("render: %w", err)
	}

	indexed := computeDirty || exposureDirty
	if indexed {
		v.asciifier.Fill(v.escape, v.index)
	}

	return Frame{
		Escape:   v.escape,
		Index:    v.index,
		Window:   v.window,
		Floor:    v.floor.Value,
		Ceil:     v.ceil.Value,
		Bias:     bias,
		Computed: computeDirty,
		Indexed:  indexed,
	}, nil
}

// trackedValues appends the scalars that determine the escape matrix.
func (v *View) trackedValues(dst []float64) []float64 {
	p := v.position.Value
	dst = append(dst, p.X, p.Y, v.width.Value, v.rotation.Value)
	return v.family.appendTracked(dst)
}

// Text returns the current index matrix as glyph rows.
func (v *View) Text() string {
	return v.asciifier.Text(v.index)
}
