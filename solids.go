package hyper

import "fmt"

// Reference solids. Each constructor returns a closed, outward-oriented
// boundary mesh so that slicing it at any interior w yields a closed
// surface.

// Hypercube returns the tetrahedral boundary mesh of an axis aligned
// tesseract centered at center. size holds the full edge lengths. The
// boundary has 8 cubic cells which decompose into 48 tetrahedra.
// Vertex colors encode the corner's x,y,z octant.
func Hypercube(center, size Vec4) (*Mesh, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 || size.W <= 0 {
		return nil, fmt.Errorf("hypercube size must be >0 on all axes, got %+v", size)
	}
	half := size.Scale(0.5)
	verts := make([]Vertex, 16)
	for i := range verts {
		s := cornerSigns(i)
		verts[i] = Vertex{
			Pos: Vec4{
				X: center.X + s.X*half.X,
				Y: center.Y + s.Y*half.Y,
				Z: center.Z + s.Z*half.Z,
				W: center.W + s.W*half.W,
			},
			Color: cornerColor(i),
		}
	}
	cells := make([]Cell, 0, 8)
	for axis := 0; axis < 4; axis++ {
		for side := 0; side < 2; side++ {
			cells = append(cells, hypercubeCell(axis, side))
		}
	}
	return Tetrahedralize(verts, cells)
}

// cornerSigns maps corner index bits to per-axis signs: bit 0 is x
// through bit 3 which is w.
func cornerSigns(i int) Vec4 {
	sign := func(bit int) float32 {
		if i&(1<<bit) != 0 {
			return 1
		}
		return -1
	}
	return Vec4{X: sign(0), Y: sign(1), Z: sign(2), W: sign(3)}
}

func cornerColor(i int) Color {
	const lo, hi = 0.15, 0.9
	ch := func(bit int) float32 {
		if i&(1<<bit) != 0 {
			return hi
		}
		return lo
	}
	return Color{R: ch(0), G: ch(1), B: ch(2), A: 1}
}

// hypercubeCell builds the cubic cell where the given axis is pinned to
// side (0 negative, 1 positive). The three free axes, ascending, become
// the cell's local axes.
func hypercubeCell(axis, side int) Cell {
	var c Cell
	var free [3]int
	k := 0
	for a := 0; a < 4; a++ {
		if a != axis {
			free[k] = a
			k++
		}
	}
	for corner := 0; corner < 8; corner++ {
		idx := side << axis
		for b := 0; b < 3; b++ {
			if corner&(1<<b) != 0 {
				idx |= 1 << free[b]
			}
		}
		c.V[corner] = uint32(idx)
	}
	c.Out = axisVec(axis, float32(2*side-1))
	return c
}

func axisVec(axis int, s float32) Vec4 {
	switch axis {
	case 0:
		return Vec4{X: s}
	case 1:
		return Vec4{Y: s}
	case 2:
		return Vec4{Z: s}
	default:
		return Vec4{W: s}
	}
}

var pentatopePalette = [5]Color{
	{R: 0.9, G: 0.2, B: 0.2, A: 1},
	{R: 0.2, G: 0.9, B: 0.2, A: 1},
	{R: 0.2, G: 0.2, B: 0.9, A: 1},
	{R: 0.9, G: 0.9, B: 0.2, A: 1},
	{R: 0.9, G: 0.2, B: 0.9, A: 1},
}

// Pentatope returns the boundary mesh of a regular 5-cell centered at
// center with edge length 2*sqrt2*scale. Its boundary cells are
// already tetrahedra, one per omitted vertex, so no cube subdivision is
// involved.
func Pentatope(center Vec4, scale float32) (*Mesh, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("pentatope scale must be >0, got %g", scale)
	}
	const s5 = 2.2360679774997896 // sqrt(5)
	base := [5]Vec4{
		{X: 1, Y: 1, Z: 1, W: -1 / s5},
		{X: 1, Y: -1, Z: -1, W: -1 / s5},
		{X: -1, Y: 1, Z: -1, W: -1 / s5},
		{X: -1, Y: -1, Z: 1, W: -1 / s5},
		{W: 4 / s5},
	}
	verts := make([]Vertex, 5)
	for i, p := range base {
		verts[i] = Vertex{Pos: center.Add(p.Scale(scale)), Color: pentatopePalette[i]}
	}
	tetras := make([]Tetrahedron, 0, 5)
	for omit := 0; omit < 5; omit++ {
		var tet Tetrahedron
		k := 0
		for i := 0; i < 5; i++ {
			if i != omit {
				tet[k] = uint32(i)
				k++
			}
		}
		// Convex solid: away from the center is outward. This hint is
		// only consumed here at build time, never while slicing.
		out := tetraCentroid(verts, tet).Sub(center)
		if err := orientOutward(verts, &tet, out); err != nil {
			return nil, err
		}
		tetras = append(tetras, tet)
	}
	return NewMesh(verts, tetras)
}

// Hexadecachoron returns the boundary mesh of a regular 16-cell (the 4D
// orthoplex) centered at center with vertices at distance scale along
// each axis. Its 16 boundary cells are the tetrahedra picking one
// vertex per axis sign combination.
func Hexadecachoron(center Vec4, scale float32) (*Mesh, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("hexadecachoron scale must be >0, got %g", scale)
	}
	verts := make([]Vertex, 8)
	for axis := 0; axis < 4; axis++ {
		for side := 0; side < 2; side++ {
			s := float32(2*side - 1)
			verts[2*axis+side] = Vertex{
				Pos:   center.Add(axisVec(axis, s).Scale(scale)),
				Color: axisColor(axis, side),
			}
		}
	}
	tetras := make([]Tetrahedron, 0, 16)
	for signs := 0; signs < 16; signs++ {
		var tet Tetrahedron
		var out Vec4
		for axis := 0; axis < 4; axis++ {
			side := signs >> axis & 1
			tet[axis] = uint32(2*axis + side)
			out = out.Add(axisVec(axis, float32(2*side-1)))
		}
		if err := orientOutward(verts, &tet, out); err != nil {
			return nil, err
		}
		tetras = append(tetras, tet)
	}
	return NewMesh(verts, tetras)
}

func axisColor(axis, side int) Color {
	c := Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
	v := float32(0.9)
	if side == 0 {
		v = 0.45
	}
	switch axis {
	case 0:
		c.R = v
	case 1:
		c.G = v
	case 2:
		c.B = v
	default:
		c.R, c.G, c.B = v, v, v
	}
	return c
}

func tetraCentroid(verts []Vertex, t Tetrahedron) Vec4 {
	c := verts[t[0]].Pos.
		Add(verts[t[1]].Pos).
		Add(verts[t[2]].Pos).
		Add(verts[t[3]].Pos)
	return c.Scale(0.25)
}
