// Package mls implements moving-least-squares deformation of 2D points
// from control-point correspondences (Schaefer, McPhail, Warren,
// "Image Deformation Using Moving Least Squares", SIGGRAPH 2006).
//
// The package works in single precision. All geometric types are plain
// value types; none of the kernel operations allocate.
package mls

// Point is a 2D coordinate in float space, also used as a 2x1 column
// vector in the solver's algebra.
type Point struct {
	X float32
	Y float32
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale returns s*p.
func (p Point) Scale(s float32) Point { return Point{X: s * p.X, Y: s * p.Y} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float32 { return p.X*q.X + p.Y*q.Y }

// SqrNorm returns the squared Euclidean norm of p.
func (p Point) SqrNorm() float32 { return p.X*p.X + p.Y*p.Y }

// Perp returns p rotated by +90 degrees, (-y, x).
func (p Point) Perp() Point { return Point{X: -p.Y, Y: p.X} }

// TimesTranspose returns the outer product p * qᵗ as a 2x2 matrix.
func (p Point) TimesTranspose(q Point) Mat2 {
	return Mat2{
		M11: p.X * q.X,
		M12: p.X * q.Y,
		M21: p.Y * q.X,
		M22: p.Y * q.Y,
	}
}

// TransposeMul treats p as a row vector and returns pᵗ * m, as a Point.
func (p Point) TransposeMul(m Mat2) Point {
	return Point{
		X: m.M11*p.X + m.M21*p.Y,
		Y: m.M12*p.X + m.M22*p.Y,
	}
}

// Mat2 is a 2x2 matrix with the layout
//
//	| M11  M12 |
//	| M21  M22 |
type Mat2 struct {
	M11, M12 float32
	M21, M22 float32
}

// Add returns m + n.
func (m Mat2) Add(n Mat2) Mat2 {
	return Mat2{
		M11: m.M11 + n.M11, M12: m.M12 + n.M12,
		M21: m.M21 + n.M21, M22: m.M22 + n.M22,
	}
}

// Scale returns s*m.
func (m Mat2) Scale(s float32) Mat2 {
	return Mat2{
		M11: s * m.M11, M12: s * m.M12,
		M21: s * m.M21, M22: s * m.M22,
	}
}

// Mul returns the matrix product m * n.
func (m Mat2) Mul(n Mat2) Mat2 {
	return Mat2{
		M11: m.M11*n.M11 + m.M12*n.M21,
		M12: m.M11*n.M12 + m.M12*n.M22,
		M21: m.M21*n.M11 + m.M22*n.M21,
		M22: m.M21*n.M12 + m.M22*n.M22,
	}
}

// Det returns the determinant of m.
func (m Mat2) Det() float32 { return m.M11*m.M22 - m.M12*m.M21 }

// Inv returns the inverse adj(m)/det(m). The caller must ensure m is not
// singular; a zero determinant yields non-finite entries.
func (m Mat2) Inv() Mat2 {
	d := 1.0 / m.Det()
	return Mat2{
		M11: d * m.M22, M12: -d * m.M12,
		M21: -d * m.M21, M22: d * m.M11,
	}
}
