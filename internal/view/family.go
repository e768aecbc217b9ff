package view

import (
	"math"

	"github.com/dshills/fractalterm/internal/anim"
	"github.com/dshills/fractalterm/internal/geom"
	"github.com/dshills/fractalterm/internal/poi"
)

// family is the per-fractal behavior of a View: the extra scalars that
// affect the matrix and the point-of-interest animation.
type family interface {
	// trackedCount is the number of extra scalars appended by appendTracked.
	trackedCount() int
	appendTracked(dst []float64) []float64

	// start begins the animation to slot i. It reports false when the
	// request is ignored.
	start(v *View, i int) bool
	tick(v *View)
	stop(v *View)
	active() bool

	// yield is called before a user command takes over the viewport.
	yield(v *View)

	setDestinations(opts Options)
}

type tourPhase int

const (
	tourIdle tourPhase = iota
	// tourPullback eases back toward the home view.
	tourPullback
	// tourApproach eases toward the destination.
	tourApproach
)

// mandelbrotFamily tours to a point by first pulling back toward home and
// then zooming into the destination.
type mandelbrotFamily struct {
	points []poi.Point
	phase  tourPhase
	index  int
}

func newMandelbrotFamily(points []poi.Point) *mandelbrotFamily {
	return &mandelbrotFamily{points: points}
}

func (m *mandelbrotFamily) trackedCount() int { return 0 }

func (m *mandelbrotFamily) appendTracked(dst []float64) []float64 { return dst }

func (m *mandelbrotFamily) active() bool { return m.phase != tourIdle }

func (m *mandelbrotFamily) setDestinations(opts Options) {
	m.points = opts.Points
}

func (m *mandelbrotFamily) start(v *View, i int) bool {
	if m.phase != tourIdle && i == m.index {
		return false
	}
	if i < 0 || i >= len(m.points) {
		return false
	}

	m.phase = tourPullback
	m.index = i

	c := v.motion.TargetCoef
	// Position only gets part of the way home before the approach starts.
	v.position.SetSpec(anim.Target(v.desc.DefaultCenter, c*tourPullbackCoef, 0))
	v.width.SetSpec(anim.Target(v.desc.DefaultWidth, c*tourPullbackWidth, tourPullbackEps))
	return true
}

func (m *mandelbrotFamily) tick(v *View) {
	switch m.phase {
	case tourPullback:
		if v.width.Kind() == anim.KindNone {
			m.approach(v)
		}

	case tourApproach:
		if v.width.Kind() != anim.KindTarget {
			return
		}
		target := v.width.Spec().Target
		gw, _ := v.GridSize()
		thresh := (v.width.Value / float64(gw)) * tourArrivalRatio
		if math.Abs(target-v.width.Value) < thresh {
			v.width.Value = target
			m.phase = tourIdle
		}
	}
}

func (m *mandelbrotFamily) approach(v *View) {
	m.phase = tourApproach
	p := m.points[m.index]
	c := v.motion.TargetCoef
	v.position.SetSpec(anim.Target(p.Center, c*tourApproachCoef, 0))
	// No epsilon: arrival is detected relative to the cell size.
	v.width.SetSpec(anim.Target(p.Width(v.desc.DefaultWidth), c*tourZoomCoef, 0))
}

func (m *mandelbrotFamily) stop(v *View) {
	if m.phase == tourIdle {
		return
	}
	m.phase = tourIdle
	v.position.SetSpec(anim.None[geom.Vec2]())
	v.width.SetSpec(anim.None[float64]())
}

func (m *mandelbrotFamily) yield(v *View) {
	m.stop(v)
}

// juliaFamily tours by easing the seed toward a destination seed.
type juliaFamily struct {
	seeds   []poi.Seed
	seed    *anim.Vector
	touring bool
	index   int
}

func newJuliaFamily(seeds []poi.Seed, initial complex128) *juliaFamily {
	return &juliaFamily{
		seeds: seeds,
		seed:  anim.NewVector(geom.FromComplex(initial), anim.None[geom.Vec2]()),
	}
}

func (j *juliaFamily) trackedCount() int { return 2 }

func (j *juliaFamily) appendTracked(dst []float64) []float64 {
	return append(dst, j.seed.Value.X, j.seed.Value.Y)
}

func (j *juliaFamily) active() bool { return j.touring }

func (j *juliaFamily) setDestinations(opts Options) {
	j.seeds = opts.Seeds
}

func (j *juliaFamily) start(v *View, i int) bool {
	if j.touring && i == j.index {
		return false
	}
	if i < 0 || i >= len(j.seeds) {
		return false
	}

	j.touring = true
	j.index = i
	j.seed.Value = geom.FromComplex(v.desc.Family.Seed)
	target := geom.FromComplex(j.seeds[i].Value)
	j.seed.SetSpec(anim.Target(target, v.motion.TargetCoef, seedEpsilon))
	return true
}

func (j *juliaFamily) tick(v *View) {
	if !j.touring {
		return
	}
	if j.seed.Kind() == anim.KindTarget {
		j.seed.Update()
		v.desc.Family.Seed = j.seed.Value.Complex()
	}
	if j.seed.Kind() == anim.KindNone {
		j.touring = false
	}
}

func (j *juliaFamily) stop(v *View) {
	j.touring = false
	j.seed.SetSpec(anim.None[geom.Vec2]())
}

// yield leaves the seed animation running; it does not touch the viewport.
func (j *juliaFamily) yield(v *View) {}
