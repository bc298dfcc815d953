package fractal

// Escape returns the escape time of c under z ← z² + c with z₀ = 0: the
// smallest i ≤ n with |z_i| ≥ 2, or n if the orbit stays inside the radius-2
// disc for n steps. A result of n means c is treated as a member of the set.
func Escape(c complex128, n int) int {
	return EscapeFrom(0, c, n)
}

// EscapeFrom is Escape with an arbitrary starting point. Holding c fixed
// and varying z0 gives the Julia set of c. It returns 0 when |z0| ≥ 2 and
// when n ≤ 0.
func EscapeFrom(z0, c complex128, n int) int {
	zr, zi := real(z0), imag(z0)
	cr, ci := real(c), imag(c)

	i := 0
	// |z| < 2 as |z|² < 4; a NaN or infinite orbit fails the test and escapes.
	for i < n && zr*zr+zi*zi < 4 {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		i++
	}
	return i
}
