package hyper

import "fmt"

// Cell is a cubic cell of a 4D solid's boundary. V lists the cell's 8
// corner vertices in binary order: bit 0 advances the cell's first
// local axis, bit 1 the second and bit 2 the third. Out points out of
// the solid and must not be orthogonal to the cell's hull normal.
type Cell struct {
	V   [8]uint32
	Out Vec4
}

// kuhnPerms are the axis insertion orders of the Kuhn subdivision. Each
// order yields one tetrahedron walking corner bit-indices 0 -> p0 ->
// p0|p1 -> 7, so all six tetrahedra share the cube's main diagonal.
var kuhnPerms = [6][3]uint32{
	{1, 2, 4}, {1, 4, 2}, {2, 1, 4}, {2, 4, 1}, {4, 1, 2}, {4, 2, 1},
}

// Tetrahedralize decomposes cubic cells into an oriented tetrahedral
// mesh. Every cube yields the six Kuhn tetrahedra along its main
// diagonal; tetrahedra repeated between adjacent cells are emitted
// once. The decomposition is deterministic for a given input and the
// resulting mesh passes NewMesh validation, so malformed cell
// connectivity is reported here instead of producing open geometry.
func Tetrahedralize(verts []Vertex, cells []Cell) (*Mesh, error) {
	tetras := make([]Tetrahedron, 0, 6*len(cells))
	seen := make(map[[4]uint32]struct{}, 6*len(cells))
	for i := range cells {
		c := &cells[i]
		if err := checkIndices(c.V[:], len(verts)); err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		if c.Out == (Vec4{}) {
			return nil, fmt.Errorf("cell %d: zero outward direction", i)
		}
		for _, p := range kuhnPerms {
			tet := Tetrahedron{c.V[0], c.V[p[0]], c.V[p[0]|p[1]], c.V[7]}
			key := canonical(tet)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if err := orientOutward(verts, &tet, c.Out); err != nil {
				return nil, fmt.Errorf("cell %d: %w", i, err)
			}
			tetras = append(tetras, tet)
		}
	}
	return NewMesh(verts, tetras)
}

// orientOutward swaps two vertices if the tetrahedron's hull normal
// opposes the outward direction. A hull normal orthogonal to out means
// the cell connectivity and the outward hint disagree.
func orientOutward(verts []Vertex, t *Tetrahedron, out Vec4) error {
	p0 := verts[t[0]].Pos
	n := Cross(
		verts[t[1]].Pos.Sub(p0),
		verts[t[2]].Pos.Sub(p0),
		verts[t[3]].Pos.Sub(p0),
	)
	d := n.Dot(out)
	if d == 0 {
		return fmt.Errorf("outward direction %+v orthogonal to tetrahedron hull", out)
	}
	if d < 0 {
		t[2], t[3] = t[3], t[2]
	}
	return nil
}

// canonical returns the sorted index quadruple used to deduplicate
// tetrahedra shared between cells.
func canonical(t Tetrahedron) [4]uint32 {
	k := [4]uint32(t)
	for i := 1; i < len(k); i++ {
		for j := i; j > 0 && k[j-1] > k[j]; j-- {
			k[j-1], k[j] = k[j], k[j-1]
		}
	}
	return k
}
