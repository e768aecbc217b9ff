package geom

import (
	"math"
	"testing"
)

const eps = 1e-12

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVec2_Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(3, -4)

	if got := a.Add(b); got != V(4, -2) {
		t.Errorf("Add = %v, want {4 -2}", got)
	}
	if got := a.Sub(b); got != V(-2, 6) {
		t.Errorf("Sub = %v, want {-2 6}", got)
	}
	if got := a.Scale(-2); got != V(-2, -4) {
		t.Errorf("Scale = %v, want {-2 -4}", got)
	}
	if got := b.Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
}

func TestVec2_Rotate(t *testing.T) {
	tests := []struct {
		name  string
		in    Vec2
		theta float64
		want  Vec2
	}{
		{"zero", V(1, 0), 0, V(1, 0)},
		{"quarter", V(1, 0), math.Pi / 2, V(0, 1)},
		{"half", V(1, 0), math.Pi, V(-1, 0)},
		{"negative quarter", V(0, 2), -math.Pi / 2, V(2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Rotate(tt.theta)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Rotate(%v) = %v, want %v", tt.theta, got, tt.want)
			}
		})
	}
}

func TestVec2_RotatePreservesLength(t *testing.T) {
	v := V(3, 4)
	for _, theta := range []float64{0.1, 1, 2.5, -3, 10} {
		if got := v.Rotate(theta).Len(); !near(got, 5) {
			t.Errorf("Rotate(%v).Len() = %v, want 5", theta, got)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{4*math.Pi + 0.5, 0.5},
	}

	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if !near(got, tt.want) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("NormalizeAngle(%v) = %v, out of (-pi, pi]", tt.in, got)
		}
	}
}

func TestMap(t *testing.T) {
	if got := Map(5, 0, 10, -1, 1); got != 0 {
		t.Errorf("Map(5, 0, 10, -1, 1) = %v, want 0", got)
	}
	if got := Map(0, -1, 1, 4, 16); got != 10 {
		t.Errorf("Map(0, -1, 1, 4, 16) = %v, want 10", got)
	}
	if got := Map(20, 0, 10, 0, 1); got != 2 {
		t.Errorf("Map(20, 0, 10, 0, 1) = %v, want 2 (unclamped)", got)
	}
}

func TestComplexRoundTrip(t *testing.T) {
	c := complex(-0.8, 0.156)
	if got := FromComplex(c).Complex(); got != c {
		t.Errorf("FromComplex(%v).Complex() = %v", c, got)
	}
}
