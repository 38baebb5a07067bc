// Package svgpath implements the numeric micro-grammars embedded in an SVG
// document: the path `d` grammar, the `transform` grammar, CSS colors,
// dimensional values, and the small lexical helpers they share.
package svgpath

import "math"

// Matrix2D is a 2x3 affine transform, stored column-major as described by
// the SVG `matrix(a,b,c,d,e,f)` function: [[a c e],[b d f]].
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transform.
var Identity = Matrix2D{A: 1, D: 1}

// Apply maps a point through the matrix.
func (m Matrix2D) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Mult composes m and n so that m.Mult(n).Apply(p) == m.Apply(n.Apply(p)):
// n is applied to the point first, m second.
func (m Matrix2D) Mult(n Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate returns m composed with a translation applied first.
func (m Matrix2D) Translate(tx, ty float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, D: 1, E: tx, F: ty})
}

// Scale returns m composed with a scale applied first.
func (m Matrix2D) Scale(sx, sy float64) Matrix2D {
	return m.Mult(Matrix2D{A: sx, D: sy})
}

// Rotate returns m composed with a rotation (radians) applied first.
func (m Matrix2D) Rotate(theta float64) Matrix2D {
	s, c := math.Sin(theta), math.Cos(theta)
	return m.Mult(Matrix2D{A: c, B: s, C: -s, D: c})
}

// SkewX returns m composed with an x-axis skew (radians) applied first.
func (m Matrix2D) SkewX(theta float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, D: 1, C: math.Tan(theta)})
}

// SkewY returns m composed with a y-axis skew (radians) applied first.
func (m Matrix2D) SkewY(theta float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, D: 1, B: math.Tan(theta)})
}

// Skew is the non-standard two-axis extension the original backend exposed
// as a single `skew(ax, ay)` function.
func (m Matrix2D) Skew(ax, ay float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, D: 1, B: math.Tan(ay), C: math.Tan(ax)})
}
