package hyper

import (
	"math"
	"reflect"
	"testing"

	"github.com/chewxy/math32"
)

// outwardOriented reports whether every tetrahedron's hull normal
// points away from the solid center.
func outwardOriented(t *testing.T, m *Mesh, center Vec4) {
	t.Helper()
	verts := m.Vertices()
	for i, tet := range m.Tetrahedra() {
		p0 := verts[tet[0]].Pos
		n := Cross(
			verts[tet[1]].Pos.Sub(p0),
			verts[tet[2]].Pos.Sub(p0),
			verts[tet[3]].Pos.Sub(p0),
		)
		if n.Dot(tetraCentroid(verts, tet).Sub(center)) <= 0 {
			t.Errorf("tetrahedron %d oriented inward", i)
		}
	}
}

func TestHypercube(t *testing.T) {
	m, err := Hypercube(Vec4{}, Vec4{X: 2, Y: 2, Z: 2, W: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices()) != 16 {
		t.Errorf("tesseract has %d vertices, want 16", len(m.Vertices()))
	}
	// 8 cubic cells, 6 Kuhn tetrahedra each. Cells share only 2D faces
	// so deduplication removes nothing.
	if len(m.Tetrahedra()) != 48 {
		t.Errorf("tesseract has %d tetrahedra, want 48", len(m.Tetrahedra()))
	}
	// The union of the Kuhn tetrahedra tiles each cell exactly: total
	// 3-volume is 8 cells of edge 2.
	var total float64
	for _, tet := range m.Tetrahedra() {
		total += volume(m.Vertices(), tet)
	}
	if math.Abs(total-64) > 1e-6 {
		t.Errorf("boundary volume = %g, want 64", total)
	}
	outwardOriented(t, m, Vec4{})

	b := m.Bounds()
	if !EqualWithin(b.Size(), Vec4{X: 2, Y: 2, Z: 2, W: 2}, 1e-6) {
		t.Errorf("bounds size %+v", b.Size())
	}
}

func TestHypercubeDeterministic(t *testing.T) {
	a, err := Hypercube(Vec4{X: 0.5}, Vec4{X: 1, Y: 2, Z: 3, W: 4})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Hypercube(Vec4{X: 0.5}, Vec4{X: 1, Y: 2, Z: 3, W: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Tetrahedra(), b.Tetrahedra()) {
		t.Error("tetrahedralization is not deterministic")
	}
}

func TestHypercubeRejectsBadSize(t *testing.T) {
	if _, err := Hypercube(Vec4{}, Vec4{X: 1, Y: 1, Z: 1}); err == nil {
		t.Error("zero w size accepted")
	}
}

func TestPentatope(t *testing.T) {
	const scale = 1.5
	m, err := Pentatope(Vec4{}, scale)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices()) != 5 || len(m.Tetrahedra()) != 5 {
		t.Fatalf("pentatope has %d vertices, %d tetrahedra", len(m.Vertices()), len(m.Tetrahedra()))
	}
	// Regular: all ten edges share one length.
	want := float32(2 * math.Sqrt2 * scale)
	verts := m.Vertices()
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			d := verts[i].Pos.Sub(verts[j].Pos).Norm()
			if math32.Abs(d-want) > 1e-4 {
				t.Errorf("edge %d-%d length %g, want %g", i, j, d, want)
			}
		}
	}
	outwardOriented(t, m, Vec4{})
}

func TestHexadecachoron(t *testing.T) {
	m, err := Hexadecachoron(Vec4{Y: -1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices()) != 8 || len(m.Tetrahedra()) != 16 {
		t.Fatalf("16-cell has %d vertices, %d tetrahedra", len(m.Vertices()), len(m.Tetrahedra()))
	}
	outwardOriented(t, m, Vec4{Y: -1})
}

func TestTetrahedralizeRejectsMalformedCell(t *testing.T) {
	m, err := Hypercube(Vec4{}, Vec4{X: 2, Y: 2, Z: 2, W: 2})
	if err != nil {
		t.Fatal(err)
	}
	verts := m.Vertices()

	var bad Cell
	for i := range bad.V {
		bad.V[i] = 0 // repeated indices
	}
	bad.Out = Vec4{X: 1}
	if _, err := Tetrahedralize(verts, []Cell{bad}); err == nil {
		t.Error("repeated cell indices accepted")
	}

	good := hypercubeCell(0, 1)
	good.Out = Vec4{}
	if _, err := Tetrahedralize(verts, []Cell{good}); err == nil {
		t.Error("zero outward direction accepted")
	}

	// Outward hint tangent to the cell hull cannot orient it.
	tangent := hypercubeCell(0, 1)
	tangent.Out = Vec4{Y: 1}
	if _, err := Tetrahedralize(verts, []Cell{tangent}); err == nil {
		t.Error("tangent outward direction accepted")
	}
}

func TestTetrahedralizeDedup(t *testing.T) {
	m, err := Hypercube(Vec4{}, Vec4{X: 2, Y: 2, Z: 2, W: 2})
	if err != nil {
		t.Fatal(err)
	}
	// Feeding the same cell twice must not duplicate tetrahedra.
	c := hypercubeCell(3, 1)
	dup, err := Tetrahedralize(m.Vertices(), []Cell{c, c})
	if err != nil {
		t.Fatal(err)
	}
	if len(dup.Tetrahedra()) != 6 {
		t.Errorf("duplicate cell produced %d tetrahedra, want 6", len(dup.Tetrahedra()))
	}
}
