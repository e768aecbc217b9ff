// Package exposure derives a display window from the distribution of
// escape values in a computed matrix.
package exposure

import (
	"github.com/dshills/fractalterm/internal/fractal"
	"github.com/dshills/fractalterm/internal/geom"
)

// Default discard ratios for the low and high tails.
const (
	DefaultLowerThreshold = 0.040
	DefaultUpperThreshold = 0.010
)

// Window is the meaningful value range of a matrix plus a skew estimate.
// Floor <= Ceil and Bias is in [-1, 1].
type Window struct {
	Floor int
	Ceil  int
	Bias  float64
}

// Histogram counts occurrences of each escape value in [0, max].
type Histogram []int

// NewHistogram counts the values of m. Values above max are counted in the
// top bin.
func NewHistogram(m *fractal.EscapeMatrix, max uint16) Histogram {
	h := make(Histogram, int(max)+1)
	top := len(h) - 1
	for _, v := range m.Values() {
		i := int(v)
		if i > top {
			i = top
		}
		h[i]++
	}
	return h
}

// Total returns the sum of all bins.
func (h Histogram) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// Analyze computes the exposure window of m. lower and upper are the
// fractions of cells to discard from the bottom and top of the value range.
func Analyze(m *fractal.EscapeMatrix, max uint16, lower, upper float64) Window {
	return AnalyzeHistogram(NewHistogram(m, max), lower, upper)
}

// AnalyzeHistogram computes the exposure window of a histogram.
func AnalyzeHistogram(h Histogram, lower, upper float64) Window {
	if len(h) == 0 {
		return Window{}
	}
	floor, ceil := h.span(lower, upper)
	return Window{Floor: floor, Ceil: ceil, Bias: h.bias(floor, ceil)}
}

// span finds the floor and ceiling bins.
func (h Histogram) span(lower, upper float64) (floor, ceil int) {
	total := float64(h.Total())
	top := len(h) - 1

	lowerCross := -1
	sum := 0
	for i := 0; i <= top; i++ {
		sum += h[i]
		if float64(sum) > total*lower {
			lowerCross = i
			if i > 1 {
				floor = i - 1
			}
			break
		}
	}

	upperCross := -1
	sum = 0
	for i := top; i >= 0; i-- {
		sum += h[i]
		if float64(sum) > total*upper {
			upperCross = i
			switch {
			case i == top:
				ceil = top
			case i > 1:
				ceil = i - 1
			}
			break
		}
	}

	// Both sweeps stopped in one bin, so every counted value is in it.
	if lowerCross >= 0 && lowerCross == upperCross {
		floor = ceil
	}
	if floor > ceil {
		floor = ceil
	}
	return floor, ceil
}

// bias estimates where the mass of [floor, ceil] sits, from -1 (low) to
// 1 (high).
func (h Histogram) bias(floor, ceil int) float64 {
	if floor == ceil {
		return 0
	}
	if ceil == floor+1 {
		if h[floor] < h[ceil] {
			return -1
		}
		return 1
	}

	sum := 0
	for i := floor; i <= ceil; i++ {
		sum += h[i]
	}

	lo := float64(floor)
	hi := float64(ceil - 1)
	a := geom.Map(float64(h.percentile(floor, ceil, sum, 0.16)), lo, hi, -1, 1)
	b := geom.Map(float64(h.percentile(floor, ceil, sum, 0.50)), lo, hi, -1, 1)
	c := geom.Map(float64(h.percentile(floor, ceil, sum, 0.84)), lo, hi, -1, 1)

	return clamp((a+b+c)/3, -1, 1)
}

// percentile returns the first bin in [floor, ceil] where the running sum
// exceeds sum*p.
func (h Histogram) percentile(floor, ceil, sum int, p float64) int {
	thresh := float64(sum) * p
	s := 0
	for i := floor; i <= ceil; i++ {
		s += h[i]
		if float64(s) > thresh {
			return i
		}
	}
	return floor
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
