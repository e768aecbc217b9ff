package ascii

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Default palette endpoints.
const (
	DefaultPaletteFrom = "#1a1c2c"
	DefaultPaletteTo   = "#f4f4a0"
)

// Palette assigns a color to each glyph index.
type Palette struct {
	colors []colorful.Color
}

// NewPalette blends n colors from one hex color to another in HCL space.
func NewPalette(from, to string, n int) (Palette, error) {
	a, err := colorful.Hex(from)
	if err != nil {
		return Palette{}, fmt.Errorf("palette from %q: %w", from, err)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return Palette{}, fmt.Errorf("palette to %q: %w", to, err)
	}
	if n < 1 {
		n = 1
	}

	colors := make([]colorful.Color, n)
	for i := range colors {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		colors[i] = a.BlendHcl(b, t).Clamped()
	}
	return Palette{colors: colors}, nil
}

// Len returns the number of colors.
func (p Palette) Len() int {
	return len(p.colors)
}

// RGB returns the 8-bit components of the color for index i, clamped to the
// palette.
func (p Palette) RGB(i uint8) (r, g, b uint8) {
	if len(p.colors) == 0 {
		return 0, 0, 0
	}
	n := int(i)
	if n >= len(p.colors) {
		n = len(p.colors) - 1
	}
	return p.colors[n].RGB255()
}

// Hex returns the color for index i as #rrggbb.
func (p Palette) Hex(i uint8) string {
	r, g, b := p.RGB(i)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
