package fractal

import (
	"errors"
	"math"
	"testing"

	"github.com/dshills/fractalterm/internal/geom"
)

func TestMandelbrotEscape(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		max  uint16
		want uint16
	}{
		{"origin bounded", 0, 0, 100, 100},
		{"minus one bounded", -1, 0, 500, 500},
		{"two escapes fast", 2, 0, 500, 1},
		{"far point", 10, 10, 500, 1},
		{"max one", 0, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MandelbrotEscape(tt.x, tt.y, tt.max)
			if got != tt.want {
				t.Errorf("MandelbrotEscape(%v, %v, %d) = %d, want %d", tt.x, tt.y, tt.max, got, tt.want)
			}
		})
	}
}

func TestMandelbrotEscapeTwoAtMostOne(t *testing.T) {
	if got := MandelbrotEscape(2, 0, 500); got > 1 {
		t.Errorf("MandelbrotEscape(2, 0) = %d, want <= 1", got)
	}
}

func TestJuliaEscape(t *testing.T) {
	tests := []struct {
		name string
		c    complex128
		x, y float64
		want uint16
	}{
		{"outside radius", 0, 3, 0, 0},
		{"zero seed origin", 0, 0, 0, 200},
		{"zero seed inside unit disk", 0, 0.5, 0.5, 200},
		{"zero seed outside unit disk", 0, 1.5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JuliaEscape(tt.c, tt.x, tt.y, 200)
			if got != tt.want {
				t.Errorf("JuliaEscape(%v, %v, %v) = %d, want %d", tt.c, tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBands(t *testing.T) {
	tests := []struct {
		height, n int
		wantLen   int
		lastRows  int
	}{
		{10, 3, 3, 4},
		{10, 1, 1, 10},
		{10, 10, 10, 1},
		{3, 8, 3, 1},
		{7, 0, 1, 7},
	}

	for _, tt := range tests {
		bands := Bands(tt.height, tt.n)
		if len(bands) != tt.wantLen {
			t.Errorf("Bands(%d, %d): len = %d, want %d", tt.height, tt.n, len(bands), tt.wantLen)
			continue
		}

		next := 0
		for _, b := range bands {
			if b.Start != next {
				t.Errorf("Bands(%d, %d): band %d starts at %d, want %d", tt.height, tt.n, b.Index, b.Start, next)
			}
			next = b.End
		}
		if next != tt.height {
			t.Errorf("Bands(%d, %d): covered %d rows, want %d", tt.height, tt.n, next, tt.height)
		}
		if got := bands[len(bands)-1].Rows(); got != tt.lastRows {
			t.Errorf("Bands(%d, %d): last band rows = %d, want %d", tt.height, tt.n, got, tt.lastRows)
		}
	}
}

func TestComputeDeterministicAcrossThreads(t *testing.T) {
	families := []Family{Mandelbrot(), Julia(DefaultJuliaSeed)}
	vp := Viewport{Center: geom.V(-0.5, 0.1), Width: 3, Rotation: 0.3}

	for _, fam := range families {
		t.Run(fam.Kind.String(), func(t *testing.T) {
			d := NewDescriptor(fam)
			d.MaxEscape = 80
			d.Threads = 1

			want, _ := NewEscapeMatrix(37, 23)
			if err := Compute(d, vp, want); err != nil {
				t.Fatalf("Compute(threads=1): %v", err)
			}

			for _, threads := range []int{2, 3, 7, 23, 64} {
				d.Threads = threads
				got, _ := NewEscapeMatrix(37, 23)
				if err := Compute(d, vp, got); err != nil {
					t.Fatalf("Compute(threads=%d): %v", threads, err)
				}
				if !got.Equal(want) {
					t.Errorf("Compute(threads=%d) differs from single-threaded result", threads)
				}
			}
		})
	}
}

func TestComputeMatchesPoint(t *testing.T) {
	d := NewDescriptor(Mandelbrot())
	d.MaxEscape = 60
	d.Threads = 4
	vp := Viewport{Center: geom.V(-0.7, 0), Width: 3.5, Rotation: math.Pi / 5}

	m, _ := NewEscapeMatrix(16, 9)
	if err := Compute(d, vp, m); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	for _, cell := range [][2]int{{0, 0}, {15, 8}, {8, 4}, {3, 7}} {
		p := d.Point(vp, 16, 9, cell[0], cell[1])
		want := d.Escape(p.X, p.Y)
		if got := m.Get(cell[0], cell[1]); got != want {
			t.Errorf("cell %v = %d, want %d", cell, got, want)
		}
	}
}

func TestComputeCenterCell(t *testing.T) {
	// The cell at (w/2, h/2) maps exactly to the viewport center.
	d := NewDescriptor(Mandelbrot())
	vp := Viewport{Center: geom.V(-1, 0), Width: 4, Rotation: 1.1}

	p := d.Point(vp, 20, 10, 10, 5)
	if math.Abs(p.X+1) > 1e-12 || math.Abs(p.Y) > 1e-12 {
		t.Errorf("center cell maps to %v, want (-1, 0)", p)
	}
}

func TestComputeBoundedPointIsMax(t *testing.T) {
	// A tiny window around -1 lies inside the set.
	d := NewDescriptor(Mandelbrot())
	d.MaxEscape = 200
	vp := Viewport{Center: geom.V(-1, 0), Width: 1e-6}

	m, _ := NewEscapeMatrix(4, 4)
	if err := Compute(d, vp, m); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for i, v := range m.Values() {
		if v != 200 {
			t.Fatalf("value %d = %d, want 200", i, v)
		}
	}
}

func TestComputeWorkerFailureLeavesMatrix(t *testing.T) {
	d := NewDescriptor(Mandelbrot())
	d.Threads = 4
	vp := Viewport{Width: 4}

	m, _ := NewEscapeMatrix(8, 8)
	for i := range m.Values() {
		m.Values()[i] = 7
	}

	failing := func(x, y float64) uint16 {
		if y > 0.5 {
			panic("kernel exploded")
		}
		return 1
	}
	err := computeBands(d, vp, m, failing)
	if !errors.Is(err, ErrComputeWorkerFailure) {
		t.Fatalf("computeBands err = %v, want ErrComputeWorkerFailure", err)
	}
	var werr *WorkerError
	if !errors.As(err, &werr) {
		t.Fatalf("computeBands err = %T, want *WorkerError", err)
	}

	for i, v := range m.Values() {
		if v != 7 {
			t.Fatalf("value %d = %d after failure, want unchanged 7", i, v)
		}
	}
}

func TestComputeSingleThreadFailure(t *testing.T) {
	d := NewDescriptor(Mandelbrot())
	d.Threads = 1

	m, _ := NewEscapeMatrix(3, 3)
	err := computeBands(d, Viewport{Width: 4}, m, func(x, y float64) uint16 {
		panic("boom")
	})
	if !errors.Is(err, ErrComputeWorkerFailure) {
		t.Fatalf("err = %v, want ErrComputeWorkerFailure", err)
	}
}

func TestComputeInvalidDescriptor(t *testing.T) {
	d := NewDescriptor(Mandelbrot())
	d.MaxEscape = 0

	m, _ := NewEscapeMatrix(2, 2)
	if err := Compute(d, Viewport{Width: 4}, m); err == nil {
		t.Error("Compute with MaxEscape 0 should fail")
	}
}

func TestNewMatrixInvalid(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		_, err := NewEscapeMatrix(dims[0], dims[1])
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewEscapeMatrix(%d, %d) err = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}
}

func TestDescriptorWorkers(t *testing.T) {
	d := NewDescriptor(Mandelbrot())

	d.Threads = 8
	if got := d.Workers(3); got != 3 {
		t.Errorf("Workers(3) with 8 threads = %d, want 3", got)
	}
	d.Threads = 2
	if got := d.Workers(100); got != 2 {
		t.Errorf("Workers(100) with 2 threads = %d, want 2", got)
	}
	d.Threads = 0
	if got := d.Workers(1); got != 1 {
		t.Errorf("Workers(1) with auto threads = %d, want 1", got)
	}
}

func TestParseFamilyKind(t *testing.T) {
	tests := []struct {
		in      string
		want    FamilyKind
		wantErr bool
	}{
		{"mandelbrot", KindMandelbrot, false},
		{"julia", KindJulia, false},
		{"j", KindJulia, false},
		{"newton", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseFamilyKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFamilyKind(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFamilyKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
