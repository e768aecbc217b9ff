package view

import (
	"math"

	"github.com/dshills/fractalterm/internal/anim"
	"github.com/dshills/fractalterm/internal/geom"
)

// Tick advances every animator by one frame. Rotation is updated before
// position because a VelocityWithRotation position spec consumes the
// fresh rotation.
func (v *View) Tick() {
	v.tickWidth()

	v.rotation.Update()
	if v.position.Kind() == anim.KindVelocityWithRotation {
		_ = v.position.SetRotation(v.rotation.Value)
	}

	v.position.Update()
	v.clampPosition()

	v.tickExposure()
	v.family.tick(v)
}

func (v *View) tickWidth() {
	v.width.Update()

	dw := v.desc.DefaultWidth
	if v.width.Value > dw {
		v.width.Value = dw
		if v.width.Kind() == anim.KindScaleVelocity {
			s := v.width.Spec().ScaleVelocity
			_ = v.width.SetScaleVelocity(math.Abs(s) * widthBounce)
		}
	}

	if v.width.Value < v.motion.MinWidth {
		v.width.Value = v.motion.MinWidth
		if v.width.Kind() == anim.KindScaleVelocity && v.width.Spec().ScaleVelocity < 0 {
			v.width.SetSpec(anim.None[float64]())
		}
	}
}

// clampPosition keeps the center within the default extent around the
// default center.
func (v *View) clampPosition() {
	gw, gh := v.GridSize()
	halfW := v.desc.DefaultWidth / 2
	halfH := v.desc.Height(gw, gh, v.desc.DefaultWidth) / 2

	c := v.desc.DefaultCenter
	p := v.position.Value
	clamped := geom.V(clamp(p.X, c.X-halfW, c.X+halfW), clamp(p.Y, c.Y-halfH, c.Y+halfH))
	if clamped == p {
		return
	}
	v.position.Value = clamped

	switch v.position.Kind() {
	case anim.KindVelocityWithRotation:
		_ = v.position.SetVelocity(v.position.Spec().Velocity.Scale(positionBounce))
	case anim.KindTarget:
		v.position.SetSpec(anim.None[geom.Vec2]())
	}
}

// tickExposure eases the display window toward the analyzed window, or
// toward the full range when autoexposure is off.
func (v *View) tickExposure() {
	f, c := 0.0, float64(v.desc.MaxEscape)
	if v.exposure.Auto {
		f, c = float64(v.window.Floor), float64(v.window.Ceil)
	}
	v.floor.SetSpec(anim.Target(f, exposureCoef, exposureEpsilon))
	v.ceil.SetSpec(anim.Target(c, exposureCoef, exposureEpsilon))
	v.floor.Update()
	v.ceil.Update()
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
