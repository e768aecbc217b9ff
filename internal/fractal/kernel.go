package fractal

// escapeFunc returns the escape-time value of the point (x, y).
type escapeFunc func(x, y float64) uint16

// kernel returns the escape function for the descriptor's family.
func (d Descriptor) kernel() escapeFunc {
	max := d.MaxEscape
	if d.Family.Kind == KindJulia {
		c := d.Family.Seed
		return func(x, y float64) uint16 {
			return JuliaEscape(c, x, y, max)
		}
	}
	return func(x, y float64) uint16 {
		return MandelbrotEscape(x, y, max)
	}
}

// Escape returns the escape-time value of a single point for the
// descriptor's family.
func (d Descriptor) Escape(x, y float64) uint16 {
	return d.kernel()(x, y)
}

// MandelbrotEscape iterates z = z*z + c from z = 0 with c = x+yi.
// It returns the iteration at which |z| reaches 2, or max.
func MandelbrotEscape(x, y float64, max uint16) uint16 {
	var zr, zi float64
	var n uint16
	for n < max {
		if zr*zr+zi*zi >= 4 {
			return n
		}
		zr, zi = zr*zr-zi*zi+x, 2*zr*zi+y
		n++
	}
	return max
}

// JuliaEscape iterates z = z*z + c from z = x+yi.
// It returns the iteration at which |z| exceeds 2, or max.
func JuliaEscape(c complex128, x, y float64, max uint16) uint16 {
	cr, ci := real(c), imag(c)
	zr, zi := x, y
	for n := uint16(0); n < max; n++ {
		if zr*zr+zi*zi > 4 {
			return n
		}
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
	}
	return max
}
