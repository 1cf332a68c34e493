// Package hyper implements the geometric core of a four dimensional
// solid viewer: shared-vertex tetrahedral meshes of 4D solids together
// with the camera transform that places them relative to the slicing
// hyperplane. The slice subpackage cuts these meshes with the
// hyperplane w=const and emits renderable 3D triangles.
package hyper

const (
	// epsVolume is the 3-volume below which a tetrahedron is rejected
	// as degenerate at mesh construction time.
	epsVolume = 1e-12
)

// Transform maps world-space 4D points to camera-relative 4D points.
// Rotation is expected to be orthonormal. The camera subsystem owns how
// the rotation is built (rotors, plane angles); this package only
// consumes the final linear map.
type Transform struct {
	Translation Vec4
	Rotation    Mat4
}

// IdentityTransform returns the transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Rotation: Identity4()}
}

// Project maps a world-space point to camera space.
func (t Transform) Project(p Vec4) Vec4 {
	return t.Rotation.MulVec(p.Sub(t.Translation))
}
