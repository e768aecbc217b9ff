package app

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/guptarohit/asciigraph"

	"github.com/dshills/fractalterm/internal/ascii"
	"github.com/dshills/fractalterm/internal/config"
	"github.com/dshills/fractalterm/internal/exposure"
	"github.com/dshills/fractalterm/internal/fractal"
	"github.com/dshills/fractalterm/internal/poi"
	"github.com/dshills/fractalterm/internal/view"
)

// histogramHeight is the plot height in rows.
const histogramHeight = 10

// HeadlessOptions configures a render without a terminal.
type HeadlessOptions struct {
	Width  int
	Height int
	// Frames is how many ticks to run before the final frame is printed.
	Frames int
	// POI names the tour destination started before ticking, either a key
	// number or a fuzzy name. Empty disables it.
	POI   string
	Julia bool
	// Histogram appends a plot of escape counts.
	Histogram bool
	// PNGPath also writes the frame as a palette-colored image.
	PNGPath string
}

// RenderHeadless animates a view for opts.Frames ticks and writes the last
// frame to w as text.
func RenderHeadless(cfg *config.Config, opts HeadlessOptions, w io.Writer) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("headless: %w: %dx%d", fractal.ErrInvalidDimensions, opts.Width, opts.Height)
	}

	kind := cfg.FamilyKind()
	if opts.Julia {
		kind = fractal.KindJulia
	}
	vopts, err := viewOptions(cfg, kind)
	if err != nil {
		return fmt.Errorf("headless: %w", err)
	}
	v, err := view.New(opts.Width, opts.Height, vopts)
	if err != nil {
		return fmt.Errorf("headless: %w", err)
	}

	slot, err := poi.Slot(opts.POI, poiNames(vopts, kind))
	if err != nil {
		return fmt.Errorf("headless: %w: %q", err, opts.POI)
	}
	if slot >= 0 && !v.StartTour(slot) {
		return fmt.Errorf("headless: %w: %q", poi.ErrUnknown, opts.POI)
	}

	f, err := v.RenderIfDirty()
	if err != nil {
		return fmt.Errorf("headless: %w", err)
	}
	for i := 0; i < opts.Frames; i++ {
		v.Tick()
		if f, err = v.RenderIfDirty(); err != nil {
			return fmt.Errorf("headless: frame %d: %w", i, err)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, v.Text())
	if opts.Histogram {
		fmt.Fprintln(bw, plotHistogram(f, v.Descriptor().MaxEscape, opts.Width))
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	if opts.PNGPath != "" {
		if err := writePNG(opts.PNGPath, f.Index, cfg); err != nil {
			return fmt.Errorf("headless: %w", err)
		}
	}
	return nil
}

func poiNames(opts view.Options, kind fractal.FamilyKind) []string {
	if kind == fractal.KindJulia {
		names := make([]string, len(opts.Seeds))
		for i, s := range opts.Seeds {
			names[i] = s.Name
		}
		return names
	}
	names := make([]string, len(opts.Points))
	for i, p := range opts.Points {
		names[i] = p.Name
	}
	return names
}

// plotHistogram draws log-scaled escape counts with the exposure window in
// the caption.
func plotHistogram(f view.Frame, maxEscape uint16, width int) string {
	h := exposure.NewHistogram(f.Escape, maxEscape)
	data := make([]float64, len(h))
	for i, n := range h {
		data[i] = math.Log1p(float64(n))
	}

	caption := fmt.Sprintf("log escape counts  floor %d  ceil %d  bias %+.3f",
		f.Window.Floor, f.Window.Ceil, f.Window.Bias)
	return asciigraph.Plot(data,
		asciigraph.Height(histogramHeight),
		asciigraph.Width(max(width-10, 10)),
		asciigraph.Caption(caption))
}

// writePNG saves m with one pixel per cell, colored by glyph index.
func writePNG(path string, m *fractal.IndexMatrix, cfg *config.Config) error {
	p, err := ascii.NewPalette(cfg.Display.PaletteFrom, cfg.Display.PaletteTo, cfg.Charset().Len())
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, m.Width(), m.Height()))
	for y := 0; y < m.Height(); y++ {
		for x, idx := range m.Row(y) {
			r, g, b := p.RGB(idx)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
