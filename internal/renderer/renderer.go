package renderer

import (
	"fmt"
	"sync"

	"github.com/dshills/fractalterm/internal/ascii"
	"github.com/dshills/fractalterm/internal/fractal"
	"github.com/dshills/fractalterm/internal/renderer/backend"
	"github.com/dshills/fractalterm/internal/renderer/core"
	"github.com/dshills/fractalterm/internal/renderer/statusline"
)

// Options configures the renderer.
type Options struct {
	// Color tints each glyph with the palette color for its index.
	Color bool
	// ShowHUD reserves the bottom row for the status line.
	ShowHUD bool
	// Palette endpoints as "#rrggbb".
	PaletteFrom string
	PaletteTo   string
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Color:       true,
		ShowHUD:     true,
		PaletteFrom: ascii.DefaultPaletteFrom,
		PaletteTo:   ascii.DefaultPaletteTo,
	}
}

// Renderer is the main rendering facade.
// It draws index matrices, the status line and the help overlay.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend

	charset ascii.Charset
	styles  []core.Style

	status   *statusline.StatusLine
	showHelp bool

	frameCount uint64
}

// New creates a renderer drawing glyphs from charset.
func New(b backend.Backend, charset ascii.Charset, opts Options) (*Renderer, error) {
	r := &Renderer{
		opts:    opts,
		backend: b,
		status:  statusline.New(),
	}
	if err := r.SetCharset(charset); err != nil {
		return nil, err
	}
	return r, nil
}

// SetCharset switches glyphs and rebuilds one palette color per glyph.
func (r *Renderer) SetCharset(c ascii.Charset) error {
	p, err := ascii.NewPalette(r.opts.PaletteFrom, r.opts.PaletteTo, c.Len())
	if err != nil {
		return fmt.Errorf("renderer palette: %w", err)
	}

	styles := make([]core.Style, c.Len())
	for i := range styles {
		if !r.opts.Color {
			styles[i] = core.DefaultStyle()
			continue
		}
		red, green, blue := p.RGB(uint8(i))
		styles[i] = core.NewStyle(core.ColorFromRGB(red, green, blue))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.charset = c
	r.styles = styles
	return nil
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// SetOptions replaces the options and rebuilds the glyph styles. On error
// the previous options are kept.
func (r *Renderer) SetOptions(opts Options) error {
	r.mu.Lock()
	prev := r.opts
	c := r.charset
	r.opts = opts
	r.mu.Unlock()

	if err := r.SetCharset(c); err != nil {
		r.mu.Lock()
		r.opts = prev
		r.mu.Unlock()
		return err
	}
	return nil
}

// Status returns the status line for external updates.
func (r *Renderer) Status() *statusline.StatusLine {
	return r.status
}

// ToggleHelp shows or hides the help overlay.
func (r *Renderer) ToggleHelp() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.showHelp = !r.showHelp
}

// ShowingHelp reports whether the help overlay is visible.
func (r *Renderer) ShowingHelp() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.showHelp
}

// GridSize returns the cells available for the fractal.
func (r *Renderer) GridSize() (width, height int) {
	width, height = r.backend.Size()
	if r.opts.ShowHUD && height > 1 {
		height--
	}
	return max(width, 1), max(height, 1)
}

// FrameCount returns the number of frames drawn.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// Draw paints m, then the status line and help overlay, and shows the
// result. Cells outside the screen are clipped.
func (r *Renderer) Draw(m *fractal.IndexMatrix) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sw, sh := r.backend.Size()
	if sw <= 0 || sh <= 0 {
		return
	}

	r.drawMatrix(m, sw, sh)

	if r.opts.ShowHUD && sh > 1 {
		r.status.Render(r.backend, sh-1, sw)
	}
	if r.showHelp {
		drawHelp(r.backend, sw, sh)
	}

	r.backend.Show()
	r.frameCount++
}

func (r *Renderer) drawMatrix(m *fractal.IndexMatrix, sw, sh int) {
	if m == nil {
		r.backend.Clear()
		return
	}
	w := min(m.Width(), sw)
	h := min(m.Height(), sh)
	for y := 0; y < h; y++ {
		for x, idx := range m.Row(y)[:w] {
			r.backend.SetCell(x, y, core.NewStyledCell(r.charset.Glyph(idx), r.style(idx)))
		}
	}
}

func (r *Renderer) style(idx uint8) core.Style {
	if int(idx) >= len(r.styles) {
		if len(r.styles) == 0 {
			return core.DefaultStyle()
		}
		return r.styles[len(r.styles)-1]
	}
	return r.styles[idx]
}
