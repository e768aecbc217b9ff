package view

import (
	"fmt"

	"github.com/dshills/fractalterm/internal/anim"
	"github.com/dshills/fractalterm/internal/geom"
	"github.com/dshills/fractalterm/internal/input"
)

// Apply maps a command onto the animators. Commands that act on the
// application rather than the view are ignored.
func (v *View) Apply(cmd input.Command) error {
	switch cmd.Kind {
	case input.CmdPositionVelocity:
		v.family.yield(v)
		v.panVelocity(cmd.X, cmd.Y)

	case input.CmdPositionTween:
		v.family.yield(v)
		v.tweenTo(cmd.Col, cmd.Row)

	case input.CmdZoom:
		v.family.yield(v)
		v.zoom(cmd.X)

	case input.CmdZoomContinuous:
		v.family.yield(v)
		s := v.motion.ZoomIncrement * cmd.X
		v.width.SetSpec(anim.ScaleVelocity[float64](s, 1, 0))

	case input.CmdRotationVelocity:
		v.rotate(cmd.X)

	case input.CmdPoi:
		v.StartTour(cmd.Index)

	case input.CmdAutoExposure:
		v.exposure.Auto = !v.exposure.Auto

	case input.CmdStop:
		v.Stop()

	case input.CmdReset:
		v.Home()

	case input.CmdSize:
		if err := v.Resize(cmd.Col, cmd.Row); err != nil {
			return fmt.Errorf("apply %s: %w", cmd, err)
		}
	}
	return nil
}

// panVelocity adds a pan impulse scaled to the current width.
func (v *View) panVelocity(xm, ym float64) {
	step := v.width.Value * v.motion.VelocityRatio
	inc := geom.V(step*xm, step*ym)
	if v.position.Kind() == anim.KindVelocityWithRotation {
		_ = v.position.AddVelocity(inc)
		return
	}
	v.position.SetSpec(anim.VelocityWithRotation(inc, v.rotation.Value, v.motion.Friction))
}

// tweenTo eases the center to the fractal-space point under cell
// (col, row).
func (v *View) tweenTo(col, row int) {
	gw, gh := v.GridSize()
	halfCols := float64(gw) / 2
	halfRows := float64(gh) / 2
	w := v.width.Value
	h := v.desc.Height(gw, gh, w)

	offset := geom.V(
		(float64(col)-halfCols)/halfCols*(w/2),
		(float64(row)-halfRows)/halfRows*(h/2),
	)
	target := v.position.Value.Add(offset.Rotate(v.rotation.Value))
	v.position.SetSpec(anim.Target(target, v.motion.TargetCoef, 0))
}

// zoom adds m zoom increments to any scale velocity in progress.
func (v *View) zoom(m float64) {
	s := 0.0
	if v.width.Kind() == anim.KindScaleVelocity {
		s = v.width.Spec().ScaleVelocity
	}
	s += v.motion.ZoomIncrement * m
	v.width.SetSpec(anim.ScaleVelocity[float64](s, v.motion.Friction, zoomEpsilon))
}

// rotate adds m rotation increments to any angular velocity in progress.
func (v *View) rotate(m float64) {
	inc := v.motion.RotationIncrement * m
	if v.rotation.Kind() == anim.KindVelocity {
		_ = v.rotation.AddVelocity(inc)
		return
	}
	v.rotation.SetSpec(anim.Velocity(inc, v.motion.Friction, rotationEpsilon))
}

// StartTour begins the animation to point-of-interest slot i. It reports
// false when i is out of range or already in flight.
func (v *View) StartTour(i int) bool {
	return v.family.start(v, i)
}

// Stop halts all viewport motion and any tour in progress.
func (v *View) Stop() {
	v.family.stop(v)
	v.position.SetSpec(anim.None[geom.Vec2]())
	v.width.SetSpec(anim.None[float64]())
	v.rotation.SetSpec(anim.None[float64]())
}

// Home eases back to the default center, width and rotation.
func (v *View) Home() {
	v.family.stop(v)
	c := v.motion.TargetCoef
	v.position.SetSpec(anim.Target(v.desc.DefaultCenter, c, 0))
	v.width.SetSpec(anim.Target(v.desc.DefaultWidth, c, 0))
	v.rotation.Value = geom.NormalizeAngle(v.rotation.Value)
	v.rotation.SetSpec(anim.Target(0.0, c, 0))
}
