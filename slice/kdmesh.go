package slice

import (
	"math"

	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/kdtree"
)

var (
	_ kdtree.Interface = kdTriangles{}
	_ kdtree.Bounder   = kdTriangles{}
)

// KDMesh is a kd-tree index over one pass' cross-section triangles for
// nearest-triangle queries (picking and diagnostics). It copies the
// model, so the slicer may be reused while the index is alive.
type KDMesh struct {
	tree  kdtree.Tree
	model []Triangle
}

// NewKDMesh builds the index. The model must be non-empty.
func NewKDMesh(model []Triangle) *KDMesh {
	if len(model) == 0 {
		panic("cannot index empty triangle slice")
	}
	m := &KDMesh{model: append([]Triangle(nil), model...)}
	kd := make(kdTriangles, len(model))
	for i := range kd {
		kd[i] = makeKDTriangle(m.model[i], i)
	}
	m.tree = *kdtree.New(kd, true)
	return m
}

// Nearest returns the triangle whose centroid is closest to p.
func (m *KDMesh) Nearest(p ms3.Vec) Triangle {
	probe := kdTriangle{}
	v := [3]float64{float64(p.X), float64(p.Y), float64(p.Z)}
	probe.V = [3][3]float64{v, v, v}
	got, _ := m.tree.Nearest(probe)
	return m.model[got.(kdTriangle).idx]
}

// kdTriangle carries float64 vertex positions for tree math and the
// index back into the model.
type kdTriangle struct {
	V   [3][3]float64
	idx int
}

type kdTriangles []kdTriangle

func makeKDTriangle(t Triangle, idx int) kdTriangle {
	var k kdTriangle
	k.idx = idx
	for i := range t {
		k.V[i] = [3]float64{float64(t[i].Pos.X), float64(t[i].Pos.Y), float64(t[i].Pos.Z)}
	}
	return k
}

func (k kdTriangles) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdTriangles) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdTriangles) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), triangles: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half open indexing
// equivalent to built-in slice indexing.
func (k kdTriangles) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

func (k kdTriangles) Bounds() *kdtree.Bounding {
	min := [3]float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
	max := [3]float64{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for _, tri := range k {
		for _, v := range tri.V {
			for d := 0; d < 3; d++ {
				min[d] = math.Min(min[d], v[d])
				max[d] = math.Max(max[d], v[d])
			}
		}
	}
	return &kdtree.Bounding{
		Min: kdTriangle{V: [3][3]float64{min, min, min}},
		Max: kdTriangle{V: [3][3]float64{max, max, max}},
	}
}

// Compare returns the signed distance of a from the plane passing
// through b and perpendicular to the dimension d, evaluated on triangle
// centroids.
func (a kdTriangle) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdTriangle), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdTriangle) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the centroids
// of the receiver and the parameter.
func (a kdTriangle) Distance(b kdtree.Comparable) float64 {
	return kdDist(a, b.(kdTriangle))
}

func (a kdTriangle) Bounds() *kdtree.Bounding {
	var min, max [3]float64
	for d := 0; d < 3; d++ {
		min[d] = math.Min(a.V[2][d], math.Min(a.V[0][d], a.V[1][d]))
		max[d] = math.Max(a.V[2][d], math.Max(a.V[0][d], a.V[1][d]))
	}
	return &kdtree.Bounding{
		Min: kdTriangle{V: [3][3]float64{min, min, min}},
		Max: kdTriangle{V: [3][3]float64{max, max, max}},
	}
}

// kdComp is the centroid coordinate difference a.dim - b.dim.
func kdComp(a, b kdTriangle, dim int) float64 {
	c := (a.V[0][dim] + a.V[1][dim] + a.V[2][dim]) -
		(b.V[0][dim] + b.V[1][dim] + b.V[2][dim])
	return c / 3
}

// kdDist is the squared euclidean distance between triangle centroids.
func kdDist(a, b kdTriangle) (c float64) {
	for d := 0; d < 3; d++ {
		e := (a.V[0][d] + a.V[1][d] + a.V[2][d] - b.V[0][d] - b.V[1][d] - b.V[2][d]) / 3
		c += e * e
	}
	return c
}

type kdPlane struct {
	dim       int
	triangles kdTriangles
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.triangles[i], p.triangles[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.triangles[i], p.triangles[j] = p.triangles[j], p.triangles[i]
}
func (p kdPlane) Len() int {
	return len(p.triangles)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.triangles = p.triangles[start:end]
	return p
}
