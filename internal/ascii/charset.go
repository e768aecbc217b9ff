// Package ascii maps escape values to glyphs ordered by visual weight.
package ascii

import (
	"errors"
	"fmt"

	"github.com/rivo/uniseg"
)

// Built-in charsets, lightest glyph first.
const (
	Charset1 = " .,:;i1tfLCG08@"
	Charset2 = " .,`'\"^:;-~=+*ixcnaeomlfh1IEUOQWX%#$&@"
)

// DefaultCharset is used when no charset is configured.
const DefaultCharset = Charset2

// MaxGlyphs is the largest charset an index matrix can address.
const MaxGlyphs = 256

var (
	// ErrEmptyCharset is returned for a charset without glyphs.
	ErrEmptyCharset = errors.New("charset is empty")

	// ErrInvalidGlyph is returned for a glyph that is not a single
	// one-cell rune.
	ErrInvalidGlyph = errors.New("charset glyph must be a single-width rune")
)

// Charset is an ordered glyph ramp.
type Charset struct {
	glyphs []rune
}

// NewCharset splits s into grapheme clusters and checks that each one is a
// single rune occupying one terminal cell.
func NewCharset(s string) (Charset, error) {
	if s == "" {
		return Charset{}, ErrEmptyCharset
	}

	var glyphs []rune
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		if len(runes) != 1 || g.Width() != 1 {
			return Charset{}, fmt.Errorf("%w: %q", ErrInvalidGlyph, g.Str())
		}
		glyphs = append(glyphs, runes[0])
	}
	if len(glyphs) > MaxGlyphs {
		return Charset{}, fmt.Errorf("charset has %d glyphs, max %d", len(glyphs), MaxGlyphs)
	}
	return Charset{glyphs: glyphs}, nil
}

// MustCharset is like NewCharset but panics on error. It is intended for
// the built-in charsets.
func MustCharset(s string) Charset {
	cs, err := NewCharset(s)
	if err != nil {
		panic(err)
	}
	return cs
}

// Len returns the number of glyphs.
func (c Charset) Len() int {
	return len(c.glyphs)
}

// Glyph returns the glyph at index i, clamped to the ramp.
func (c Charset) Glyph(i uint8) rune {
	n := int(i)
	if n >= len(c.glyphs) {
		n = len(c.glyphs) - 1
	}
	return c.glyphs[n]
}

// String returns the charset as text.
func (c Charset) String() string {
	return string(c.glyphs)
}
