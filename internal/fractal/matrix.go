package fractal

import "fmt"

// Cell is the element type a Matrix can hold.
type Cell interface {
	~uint8 | ~uint16
}

// Matrix is a dense row-major grid with a fixed size for its lifetime.
type Matrix[T Cell] struct {
	width  int
	height int
	data   []T
}

// EscapeMatrix holds escape-time values.
type EscapeMatrix = Matrix[uint16]

// IndexMatrix holds glyph indices derived from an EscapeMatrix.
type IndexMatrix = Matrix[uint8]

// NewMatrix allocates a zeroed width x height matrix.
func NewMatrix[T Cell](width, height int) (*Matrix[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("matrix %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	return &Matrix[T]{
		width:  width,
		height: height,
		data:   make([]T, width*height),
	}, nil
}

// NewEscapeMatrix allocates an escape matrix.
func NewEscapeMatrix(width, height int) (*EscapeMatrix, error) {
	return NewMatrix[uint16](width, height)
}

// NewIndexMatrix allocates an index matrix.
func NewIndexMatrix(width, height int) (*IndexMatrix, error) {
	return NewMatrix[uint8](width, height)
}

// Width returns the number of columns.
func (m *Matrix[T]) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Matrix[T]) Height() int {
	return m.height
}

// Get returns the value at (x, y).
func (m *Matrix[T]) Get(x, y int) T {
	return m.data[y*m.width+x]
}

// Set stores v at (x, y).
func (m *Matrix[T]) Set(x, y int, v T) {
	m.data[y*m.width+x] = v
}

// Row returns row y as a slice sharing the matrix storage.
func (m *Matrix[T]) Row(y int) []T {
	start := y * m.width
	return m.data[start : start+m.width]
}

// Values returns the backing slice in row-major order.
func (m *Matrix[T]) Values() []T {
	return m.data
}

// SameSize reports whether m is width x height.
func (m *Matrix[T]) SameSize(width, height int) bool {
	return m.width == width && m.height == height
}

// CopyRows copies all of src into m starting at row yOffset. src must have
// the same width as m and fit within its height.
func (m *Matrix[T]) CopyRows(src *Matrix[T], yOffset int) {
	copy(m.data[yOffset*m.width:], src.data)
}

// Equal reports whether o has the same dimensions and contents.
func (m *Matrix[T]) Equal(o *Matrix[T]) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i, v := range m.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}
