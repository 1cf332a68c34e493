package hyper

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Vec4 is a 4D vector. W is the coordinate along the slicing axis.
type Vec4 struct {
	X, Y, Z, W float32
}

// Add returns the sum of a and b.
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z, W: a.W + b.W}
}

// Sub returns the difference a-b.
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z, W: a.W - b.W}
}

// Scale returns the vector scaled by f.
func (a Vec4) Scale(f float32) Vec4 {
	return Vec4{X: f * a.X, Y: f * a.Y, Z: f * a.Z, W: f * a.W}
}

// Dot returns the dot product of a and b.
func (a Vec4) Dot(b Vec4) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Norm returns the Euclidean length of the vector.
func (a Vec4) Norm() float32 { return math32.Sqrt(a.Dot(a)) }

// XYZ projects the vector onto the slice 3-space, dropping W.
func (a Vec4) XYZ() ms3.Vec { return ms3.Vec{X: a.X, Y: a.Y, Z: a.Z} }

// Cross returns the 4D vector orthogonal to u, v and s whose length is
// the volume of the parallelepiped spanned by them. The result N
// satisfies det[N u v s] >= 0 so that swapping two arguments negates it.
func Cross(u, v, s Vec4) Vec4 {
	// cofactor expansion of det[e u v s] along the first row.
	return Vec4{
		X: +det3(u.Y, u.Z, u.W, v.Y, v.Z, v.W, s.Y, s.Z, s.W),
		Y: -det3(u.X, u.Z, u.W, v.X, v.Z, v.W, s.X, s.Z, s.W),
		Z: +det3(u.X, u.Y, u.W, v.X, v.Y, v.W, s.X, s.Y, s.W),
		W: -det3(u.X, u.Y, u.Z, v.X, v.Y, v.Z, s.X, s.Y, s.Z),
	}
}

func det3(a, b, c, d, e, f, g, h, i float32) float32 {
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// MinElem returns a vector with the minimum components of two vectors.
func MinElem(a, b Vec4) Vec4 {
	return Vec4{
		X: math32.Min(a.X, b.X),
		Y: math32.Min(a.Y, b.Y),
		Z: math32.Min(a.Z, b.Z),
		W: math32.Min(a.W, b.W),
	}
}

// MaxElem returns a vector with the maximum components of two vectors.
func MaxElem(a, b Vec4) Vec4 {
	return Vec4{
		X: math32.Max(a.X, b.X),
		Y: math32.Max(a.Y, b.Y),
		Z: math32.Max(a.Z, b.Z),
		W: math32.Max(a.W, b.W),
	}
}

// EqualWithin reports whether a and b are equal within tol in every component.
func EqualWithin(a, b Vec4, tol float32) bool {
	return math32.Abs(a.X-b.X) <= tol &&
		math32.Abs(a.Y-b.Y) <= tol &&
		math32.Abs(a.Z-b.Z) <= tol &&
		math32.Abs(a.W-b.W) <= tol
}

// Mat4 is a row-major 4x4 matrix representing a linear map of 4D space.
type Mat4 [4][4]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// MulVec returns the matrix-vector product m*v.
func (m Mat4) MulVec(v Vec4) Vec4 {
	return Vec4{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		W: m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// Mul returns the matrix product m*b.
func (m Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[i][k] * b[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// Transpose returns the transposed matrix. For orthonormal rotations
// this is the inverse map.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// PlaneRotation returns the rotation by angle radians in the plane
// spanned by axes i and j (0=x, 1=y, 2=z, 3=w). 4D space has six such
// rotation planes.
func PlaneRotation(i, j int, angle float32) Mat4 {
	if i == j || i < 0 || j < 0 || i > 3 || j > 3 {
		panic("invalid rotation plane axes")
	}
	sin, cos := math32.Sincos(angle)
	r := Identity4()
	r[i][i] = cos
	r[i][j] = -sin
	r[j][i] = sin
	r[j][j] = cos
	return r
}

// Box is a 4D bounding box.
type Box struct {
	Min, Max Vec4
}

// NewBox creates a 4D box with a given center and size.
func NewBox(center, size Vec4) Box {
	half := size.Scale(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Include enlarges the box to include a point.
func (a Box) Include(v Vec4) Box {
	return Box{Min: MinElem(a.Min, v), Max: MaxElem(a.Max, v)}
}

// Size returns the size of the box.
func (a Box) Size() Vec4 { return a.Max.Sub(a.Min) }

// Center returns the center of the box.
func (a Box) Center() Vec4 {
	return a.Min.Add(a.Size().Scale(0.5))
}

// Contains reports whether the box contains the point (bounds are inside).
func (a Box) Contains(v Vec4) bool {
	return a.Min.X <= v.X && a.Min.Y <= v.Y && a.Min.Z <= v.Z && a.Min.W <= v.W &&
		v.X <= a.Max.X && v.Y <= a.Max.Y && v.Z <= a.Max.Z && v.W <= a.Max.W
}
