package tableau

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is a 4x4 transformation matrix in row-major order: m[4*r+c] is the
// element in row r and column c. Points are column vectors, so a matrix
// applies to a point as M * p, and composing with Translate, Scale and the
// Rotate helpers post-multiplies (the new transform applies first).
type Matrix f64.Mat4

// IdentityMatrix returns the identity matrix.
func IdentityMatrix() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4 returns m as an f64.Mat4.
func (m Matrix) Mat4() f64.Mat4 {
	return f64.Mat4(m)
}

// IsIdentity reports whether m is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == IdentityMatrix()
}

// Multiply returns m * o.
func (m Matrix) Multiply(o Matrix) Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[4*row+k] * o[4*k+col]
			}
			r[4*row+col] = sum
		}
	}
	return r
}

// Translate returns m * T(x, y, z).
func (m Matrix) Translate(x, y, z float64) Matrix {
	t := IdentityMatrix()
	t[3] = x
	t[7] = y
	t[11] = z
	return m.Multiply(t)
}

// Scale returns m * S(sx, sy, sz).
func (m Matrix) Scale(sx, sy, sz float64) Matrix {
	s := IdentityMatrix()
	s[0] = sx
	s[5] = sy
	s[10] = sz
	return m.Multiply(s)
}

// RotateX returns m rotated by degrees about the X axis.
func (m Matrix) RotateX(degrees float64) Matrix {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	r := IdentityMatrix()
	r[5], r[6] = cos, -sin
	r[9], r[10] = sin, cos
	return m.Multiply(r)
}

// RotateY returns m rotated by degrees about the Y axis.
func (m Matrix) RotateY(degrees float64) Matrix {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	r := IdentityMatrix()
	r[0], r[2] = cos, sin
	r[8], r[10] = -sin, cos
	return m.Multiply(r)
}

// RotateZ returns m rotated by degrees about the Z axis.
func (m Matrix) RotateZ(degrees float64) Matrix {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	r := IdentityMatrix()
	r[0], r[1] = cos, -sin
	r[4], r[5] = sin, cos
	return m.Multiply(r)
}

// TransformPoint applies m to the homogeneous point (x, y, z, w).
func (m Matrix) TransformPoint(x, y, z, w float64) f64.Vec4 {
	return f64.Vec4{
		m[0]*x + m[1]*y + m[2]*z + m[3]*w,
		m[4]*x + m[5]*y + m[6]*z + m[7]*w,
		m[8]*x + m[9]*y + m[10]*z + m[11]*w,
		m[12]*x + m[13]*y + m[14]*z + m[15]*w,
	}
}

// TransformVertex applies m to v and divides by the resulting w.
func (m Matrix) TransformVertex(v Vertex) Vertex {
	p := m.TransformPoint(v.X, v.Y, v.Z, 1)
	if p[3] != 0 && p[3] != 1 {
		return Vertex{p[0] / p[3], p[1] / p[3], p[2] / p[3]}
	}
	return Vertex{p[0], p[1], p[2]}
}

// Invert returns the inverse of m. It returns the identity matrix and false
// if m is singular.
func (m Matrix) Invert() (Matrix, bool) {
	var inv Matrix
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if math.Abs(det) < 1e-12 {
		return IdentityMatrix(), false
	}
	invDet := 1 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return inv, true
}

// Affine returns the 2D affine part of m as [a, b, c, d, tx, ty], mapping
// (x, y) to (a*x + c*y + tx, b*x + d*y + ty). Z is ignored.
func (m Matrix) Affine() [6]float64 {
	return [6]float64{m[0], m[4], m[1], m[5], m[3], m[7]}
}

// Unproject2D maps the point (x, y) back through the x/y part of m,
// ignoring depth. It reports false when m collapses the plane to a line.
func (m Matrix) Unproject2D(x, y float64) (ux, uy float64, ok bool) {
	det := m[0]*m[5] - m[1]*m[4]
	if math.Abs(det) < 1e-9 {
		return 0, 0, false
	}
	bx := x - m[3]
	by := y - m[7]
	ux = (m[5]*bx - m[1]*by) / det
	uy = (m[0]*by - m[4]*bx) / det
	return ux, uy, true
}
