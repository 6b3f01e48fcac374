package scene

import "math/cmplx"

// Point is the outcome of iterating the Mandelbrot recurrence for one c
type Point struct {
	Iter uint       // Iterations run before escaping, or maxIter
	Z    complex128 // Last value of z
}

// Mandelbrot iterates z = z² + c from z = 0 with c = x + yi until |z|² reaches
// 4 or maxIter iterations have run
func Mandelbrot(x, y float64, maxIter uint) Point {
	c := complex(x, y)
	var z complex128
	var iter uint
	for iter < maxIter && real(z)*real(z)+imag(z)*imag(z) < 4 {
		z = z*z + c
		iter++
	}
	return Point{Iter: iter, Z: z}
}

// Escaped reports whether the point left the radius-2 disc
func (p Point) Escaped() bool {
	return cmplx.Abs(p.Z) >= 2
}
