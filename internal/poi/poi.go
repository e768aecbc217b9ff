// Package poi holds the points of interest bound to the number keys: zoom
// destinations for the Mandelbrot view and seeds for the Julia view.
package poi

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/fractalterm/internal/geom"
)

// Count is the number of slots, one per number key.
const Count = 10

// Point is a Mandelbrot destination. Zoom is the magnification relative to
// the default width.
type Point struct {
	Name   string
	Center geom.Vec2
	Zoom   float64
}

// Width returns the view width that shows p at its zoom level.
func (p Point) Width(defaultWidth float64) float64 {
	return 1 / (p.Zoom / defaultWidth)
}

// Seed is a Julia constant.
type Seed struct {
	Name  string
	Value complex128
}

// region returns the point that frames the rectangle [xmin,xmax] x
// [ymin,ymax] when the default width is defaultWidth.
func region(name string, xmin, xmax, ymin, ymax, defaultWidth float64) Point {
	return Point{
		Name:   name,
		Center: geom.V((xmin+xmax)/2, (ymin+ymax)/2),
		Zoom:   defaultWidth / (xmax - xmin),
	}
}

// DefaultPoints returns the built-in Mandelbrot destinations.
func DefaultPoints(defaultWidth float64) []Point {
	return []Point{
		region("seahorse valley", -0.8, -0.7, 0.05, 0.15, defaultWidth),
		region("elephant valley", -1.85, -1.75, -0.10, -0.02, defaultWidth),
		region("spiral minibrot", -0.7435, -0.7420, 0.1310, 0.1325, defaultWidth),
		region("triple spiral", -0.7480, -0.7450, 0.0950, 0.0980, defaultWidth),
		region("valley of the dragon", -0.7400, -0.7350, 0.1800, 0.1850, defaultWidth),
		region("mini-spiral minibrot", -1.7390, -1.7375, -0.0235, -0.0220, defaultWidth),
		{Name: "misiurewicz spiral", Center: geom.V(-0.77568377, 0.13646737), Zoom: 8000},
		{Name: "scepter valley", Center: geom.V(-1.36, 0.005), Zoom: 60},
		{Name: "needle minibrot", Center: geom.V(-1.7864, 0), Zoom: 400},
		{Name: "tendrils", Center: geom.V(-0.1011, 0.9563), Zoom: 300},
	}
}

// DefaultSeeds returns the built-in Julia seeds.
func DefaultSeeds() []Seed {
	return []Seed{
		{Name: "dendrite spirals", Value: complex(-0.8, 0.156)},
		{Name: "rabbit", Value: complex(-0.4, 0.6)},
		{Name: "filaments", Value: complex(0.285, 0.01)},
		{Name: "dragon", Value: complex(-0.70176, -0.3842)},
		{Name: "spiral arms", Value: complex(-0.835, -0.2321)},
		{Name: "galaxy", Value: complex(0.45, 0.1428)},
		{Name: "lace", Value: complex(-0.7269, 0.1889)},
		{Name: "dust", Value: complex(0.355, 0.355)},
		{Name: "rings", Value: complex(-0.4, -0.59)},
		{Name: "coral", Value: complex(0.34, -0.05)},
	}
}

// ParsePoints reads "x, y, zoom" lines. Blank lines and lines starting
// with # are skipped. At most Count points are returned.
func ParsePoints(text string) ([]Point, error) {
	var points []Point
	err := scanLines(text, func(n int, fields []float64) error {
		if len(fields) != 3 {
			return fmt.Errorf("line %d: want x, y, zoom", n)
		}
		if fields[2] <= 0 {
			return fmt.Errorf("line %d: zoom must be positive, got %v", n, fields[2])
		}
		points = append(points, Point{
			Name:   fmt.Sprintf("poi %d", len(points)+1),
			Center: geom.V(fields[0], fields[1]),
			Zoom:   fields[2],
		})
		if len(points) == Count {
			return errStop
		}
		return nil
	})
	return points, err
}

// ParseSeeds reads "re, im" lines. Blank lines and lines starting with #
// are skipped. At most Count seeds are returned.
func ParseSeeds(text string) ([]Seed, error) {
	var seeds []Seed
	err := scanLines(text, func(n int, fields []float64) error {
		if len(fields) != 2 {
			return fmt.Errorf("line %d: want re, im", n)
		}
		seeds = append(seeds, Seed{
			Name:  fmt.Sprintf("seed %d", len(seeds)+1),
			Value: complex(fields[0], fields[1]),
		})
		if len(seeds) == Count {
			return errStop
		}
		return nil
	})
	return seeds, err
}

var errStop = errors.New("stop")

func scanLines(text string, fn func(n int, fields []float64) error) error {
	sc := bufio.NewScanner(strings.NewReader(text))
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		fields := make([]float64, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			fields[i] = f
		}

		if err := fn(n, fields); err != nil {
			if errors.Is(err, errStop) {
				return nil
			}
			return err
		}
	}
	return sc.Err()
}

// Merge returns defaults with the leading entries replaced by overrides.
func Merge[T any](defaults, overrides []T) []T {
	out := make([]T, len(defaults))
	copy(out, defaults)
	for i, o := range overrides {
		if i >= len(out) {
			break
		}
		out[i] = o
	}
	return out
}
