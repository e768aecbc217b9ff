package fractal

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/fractalterm/internal/geom"
)

// Viewport locates a matrix in fractal space.
type Viewport struct {
	// Center is the fractal-space point at the middle of the matrix.
	Center geom.Vec2
	// Width is the fractal-space span of one matrix row.
	Width float64
	// Rotation is the view angle in radians.
	Rotation float64
}

// Band is a contiguous run of rows computed by one worker.
type Band struct {
	Index int
	Start int
	End   int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.End - b.Start
}

// Bands partitions height rows into n contiguous bands. Every band has
// height/n rows except the last, which also takes the remainder.
func Bands(height, n int) []Band {
	if n > height {
		n = height
	}
	if n < 1 {
		n = 1
	}
	step := height / n
	bands := make([]Band, n)
	for i := range bands {
		end := (i + 1) * step
		if i == n-1 {
			end = height
		}
		bands[i] = Band{Index: i, Start: i * step, End: end}
	}
	return bands
}

// transform maps matrix cells to fractal-space points.
type transform struct {
	origin geom.Vec2
	slopeX geom.Vec2
	slopeY geom.Vec2
	halfW  float64
	halfH  float64
}

func newTransform(d Descriptor, vp Viewport, gridW, gridH int) transform {
	height := d.Height(gridW, gridH, vp.Width)
	elemW := vp.Width / float64(gridW)
	elemH := height / float64(gridH)
	return transform{
		origin: vp.Center,
		slopeX: geom.V(elemW, 0).Rotate(vp.Rotation),
		slopeY: geom.V(0, elemH).Rotate(vp.Rotation),
		halfW:  float64(gridW) / 2,
		halfH:  float64(gridH) / 2,
	}
}

// rowStart returns the fractal-space point of column 0 in row r.
func (t transform) rowStart(r int) geom.Vec2 {
	return t.origin.
		Add(t.slopeX.Scale(-t.halfW)).
		Add(t.slopeY.Scale(float64(r) - t.halfH))
}

// Point returns the fractal-space point of matrix cell (col, row) for a
// gridW x gridH matrix.
func (d Descriptor) Point(vp Viewport, gridW, gridH, col, row int) geom.Vec2 {
	t := newTransform(d, vp, gridW, gridH)
	return t.rowStart(row).Add(t.slopeX.Scale(float64(col)))
}

// fillRows writes rows [start, end) of the full grid into dst, whose row 0
// corresponds to grid row start.
func fillRows(dst *EscapeMatrix, t transform, start, end int, escape escapeFunc) {
	for r := start; r < end; r++ {
		p := t.rowStart(r)
		row := dst.Row(r - start)
		for c := range row {
			row[c] = escape(p.X, p.Y)
			p = p.Add(t.slopeX)
		}
	}
}

// Compute fills m with escape-time values for the viewport. Rows are split
// into Descriptor.Workers bands computed concurrently and merged in order.
// On error m is left unmodified.
func Compute(d Descriptor, vp Viewport, m *EscapeMatrix) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return computeBands(d, vp, m, d.kernel())
}

func computeBands(d Descriptor, vp Viewport, m *EscapeMatrix, escape escapeFunc) error {
	t := newTransform(d, vp, m.Width(), m.Height())
	bands := Bands(m.Height(), d.Workers(m.Height()))

	if len(bands) == 1 {
		tmp, err := NewEscapeMatrix(m.Width(), m.Height())
		if err != nil {
			return err
		}
		if err := runBand(tmp, t, bands[0], escape); err != nil {
			return err
		}
		m.CopyRows(tmp, 0)
		return nil
	}

	parts := make([]*EscapeMatrix, len(bands))
	var g errgroup.Group
	for i, b := range bands {
		part, err := NewEscapeMatrix(m.Width(), b.Rows())
		if err != nil {
			return fmt.Errorf("band %d: %w", b.Index, err)
		}
		parts[i] = part
		b := b
		g.Go(func() error {
			return runBand(part, t, b, escape)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, b := range bands {
		m.CopyRows(parts[i], b.Start)
	}
	return nil
}

// runBand computes one band and converts a panic into a WorkerError.
func runBand(dst *EscapeMatrix, t transform, b Band, escape escapeFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &WorkerError{Band: b.Index, StartRow: b.Start, EndRow: b.End, Cause: r}
		}
	}()
	fillRows(dst, t, b.Start, b.End, escape)
	return nil
}
