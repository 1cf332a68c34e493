package hyper

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Tetrahedron references four mesh vertices by index. The vertex order
// fixes the orientation of the tetrahedron: the 4D normal of its affine
// hull, Cross(v1-v0, v2-v0, v3-v0), points out of the solid. The slicer
// derives triangle winding from this orientation, so swapping two
// indices of a stored tetrahedron flips the emitted surface.
type Tetrahedron [4]uint32

// Mesh is a tetrahedral decomposition of a 4D solid's boundary with a
// shared vertex store. A Mesh is immutable after construction.
type Mesh struct {
	verts  []Vertex
	tetras []Tetrahedron
}

var (
	// ErrZeroVolume reports a degenerate (affinely dependent) tetrahedron.
	ErrZeroVolume = errors.New("zero volume tetrahedron")
	// ErrBadIndex reports a vertex index outside the vertex store.
	ErrBadIndex = errors.New("vertex index out of range")
	// ErrRepeatedIndex reports repeated vertex indices within a tetrahedron or cell.
	ErrRepeatedIndex = errors.New("repeated vertex index")
)

// NewMesh validates the vertex store and tetrahedron list and returns
// the assembled mesh. Malformed geometry is rejected here, at load
// time, rather than surfacing during per-frame slicing.
func NewMesh(verts []Vertex, tetras []Tetrahedron) (*Mesh, error) {
	if len(verts) == 0 {
		return nil, errors.New("empty vertex slice")
	}
	if len(tetras) == 0 {
		return nil, errors.New("empty tetrahedron slice")
	}
	for i, tet := range tetras {
		if err := checkIndices(tet[:], len(verts)); err != nil {
			return nil, fmt.Errorf("tetrahedron %d: %w", i, err)
		}
		if volume(verts, tet) <= epsVolume {
			return nil, fmt.Errorf("tetrahedron %d: %w", i, ErrZeroVolume)
		}
	}
	return &Mesh{verts: verts, tetras: tetras}, nil
}

// Vertices returns the shared vertex store. The returned slice must be
// treated as read only.
func (m *Mesh) Vertices() []Vertex { return m.verts }

// Tetrahedra returns the mesh tetrahedra. The returned slice must be
// treated as read only.
func (m *Mesh) Tetrahedra() []Tetrahedron { return m.tetras }

// Bounds returns the world-space bounding box of the mesh.
func (m *Mesh) Bounds() Box {
	b := Box{Min: m.verts[0].Pos, Max: m.verts[0].Pos}
	for _, v := range m.verts[1:] {
		b = b.Include(v.Pos)
	}
	return b
}

// volume returns the 3-volume of the tetrahedron's hull computed from
// the Gram determinant of its edge vectors. The hull of a tetrahedron
// embedded in 4D is 3-dimensional, so an ordinary 4x4 determinant is
// not applicable.
func volume(verts []Vertex, t Tetrahedron) float64 {
	p0 := verts[t[0]].Pos
	e := [3]Vec4{
		verts[t[1]].Pos.Sub(p0),
		verts[t[2]].Pos.Sub(p0),
		verts[t[3]].Pos.Sub(p0),
	}
	g := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			g.Set(i, j, float64(e[i].Dot(e[j])))
		}
	}
	d := mat.Det(g)
	if d < 0 {
		d = 0 // roundoff
	}
	return math.Sqrt(d) / 6
}

func checkIndices(idx []uint32, nverts int) error {
	for i, a := range idx {
		if int(a) >= nverts {
			return fmt.Errorf("%w: %d", ErrBadIndex, a)
		}
		for _, b := range idx[:i] {
			if a == b {
				return fmt.Errorf("%w: %d", ErrRepeatedIndex, a)
			}
		}
	}
	return nil
}
