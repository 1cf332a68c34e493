package hyper

// Color is an RGBA color with float32 channels, nominally in [0,1].
type Color struct {
	R, G, B, A float32
}

// Lerp returns the linear interpolation between c and d at parameter t.
func (c Color) Lerp(d Color, t float32) Color {
	return Color{
		R: c.R + t*(d.R-c.R),
		G: c.G + t*(d.G-c.G),
		B: c.B + t*(d.B-c.B),
		A: c.A + t*(d.A-c.A),
	}
}

// Vertex is a point of a 4D solid. Vertices are stored once per mesh
// and referenced by index from tetrahedra, never duplicated.
type Vertex struct {
	Pos   Vec4
	Color Color
}
