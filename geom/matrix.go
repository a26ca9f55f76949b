package geom

import "math"

// Matrix2D represents the affine transform
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transform
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a * b
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Transform applies the matrix to the point (x, y).
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return x*a.A + y*a.C + a.E, x*a.B + y*a.D + a.F
}

// TransformVector applies the linear part only.
func (a Matrix2D) TransformVector(x, y float64) (float64, float64) {
	return x*a.A + y*a.C, x*a.B + y*a.D
}

// Translate returns a * T(x, y)
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale returns a * S(x, y)
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate returns a * R(theta), theta in radians
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	s, c := math.Sincos(theta)
	return a.Mult(Matrix2D{c, s, -s, c, 0, 0})
}

// SkewX returns a * Kx(theta), theta in radians
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY returns a * Ky(theta), theta in radians
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Invert returns the inverse matrix, or the Identity
// if a is not invertible.
func (a Matrix2D) Invert() Matrix2D {
	det := a.A*a.D - a.B*a.C
	if det == 0 {
		return Identity
	}
	return Matrix2D{
		A: a.D / det,
		B: -a.B / det,
		C: -a.C / det,
		D: a.A / det,
		E: (a.C*a.F - a.D*a.E) / det,
		F: (a.B*a.E - a.A*a.F) / det,
	}
}
