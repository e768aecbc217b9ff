package ascii

import (
	"math"

	"github.com/dshills/fractalterm/internal/fractal"
	"github.com/dshills/fractalterm/internal/geom"
)

// Asciifier converts escape values to glyph indices within an exposure
// window.
type Asciifier struct {
	charset Charset
	floor   float64
	ceil    float64
	bias    float64

	rng  float64
	step float64
}

// New creates an asciifier over [floor, ceil] using charset.
func New(charset Charset, floor, ceil float64) *Asciifier {
	a := &Asciifier{charset: charset, floor: floor, ceil: ceil}
	a.update()
	return a
}

// Charset returns the glyph ramp.
func (a *Asciifier) Charset() Charset {
	return a.charset
}

// SetCharset replaces the glyph ramp.
func (a *Asciifier) SetCharset(c Charset) {
	a.charset = c
	a.update()
}

// Floor returns the low end of the window.
func (a *Asciifier) Floor() float64 { return a.floor }

// Ceil returns the high end of the window.
func (a *Asciifier) Ceil() float64 { return a.ceil }

// Bias returns the current bias.
func (a *Asciifier) Bias() float64 { return a.bias }

// SetFloorCeil sets the exposure window.
func (a *Asciifier) SetFloorCeil(floor, ceil float64) {
	a.floor = floor
	a.ceil = ceil
	a.update()
}

// SetBias sets the bias in [-1, 1]. Negative values brighten the ramp and
// positive values darken it.
func (a *Asciifier) SetBias(bias float64) {
	a.bias = bias
}

func (a *Asciifier) update() {
	a.rng = a.ceil - a.floor
	a.step = 1 / float64(a.charset.Len())
}

// Index returns the glyph index for value.
func (a *Asciifier) Index(value float64) uint8 {
	if a.rng <= 0 {
		return 0
	}
	if value < a.floor {
		value = a.floor
	} else if value > a.ceil {
		value = a.ceil
	}

	ratio := (value - a.floor) / a.rng
	ratio = geom.Map(a.bias, -1, 1, math.Sqrt(ratio), ratio*ratio)

	i := int(ratio / a.step)
	if last := a.charset.Len() - 1; i > last {
		i = last
	}
	if i < 0 {
		i = 0
	}
	return uint8(i)
}

// Glyph returns the glyph for value.
func (a *Asciifier) Glyph(value float64) rune {
	return a.charset.Glyph(a.Index(value))
}

// Fill writes the glyph index of every cell of src into dst. Both matrices
// must have the same dimensions.
func (a *Asciifier) Fill(src *fractal.EscapeMatrix, dst *fractal.IndexMatrix) {
	out := dst.Values()
	for i, v := range src.Values() {
		out[i] = a.Index(float64(v))
	}
}

// Text renders an index matrix as newline-separated rows.
func (a *Asciifier) Text(m *fractal.IndexMatrix) string {
	buf := make([]rune, 0, (m.Width()+1)*m.Height())
	for y := 0; y < m.Height(); y++ {
		for _, i := range m.Row(y) {
			buf = append(buf, a.charset.Glyph(i))
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
