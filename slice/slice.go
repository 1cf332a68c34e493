// Package slice computes 3D cross-sections of tetrahedral 4D meshes.
//
// A Slicer cuts every tetrahedron of a hyper.Mesh with the camera-space
// hyperplane w=SliceW and collects the resulting triangles in a
// concurrency-safe Sink. Each tetrahedron is an independent unit of
// work classified against the hyperplane into one of 16 cases; lookup
// tables drive which edges are interpolated and how the crossing points
// are triangulated.
package slice

import (
	"errors"
	"fmt"
	"sync"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/hyper"
)

// Vertex is an emitted cross-section mesh vertex.
type Vertex struct {
	Pos    ms3.Vec
	Normal ms3.Vec
	Color  hyper.Color
	// WDepth is the world-space w coordinate at which the slice crossed
	// the solid, passed through for depth cueing by the renderer. The
	// camera-space w is SliceW for every emitted vertex and carries no
	// information.
	WDepth float32
}

// Triangle is a triangle of the cross-section mesh.
type Triangle [3]Vertex

// Normal returns the non-unit face normal of the triangle.
func (t Triangle) Normal() ms3.Vec {
	e1 := ms3.Sub(t[1].Pos, t[0].Pos)
	e2 := ms3.Sub(t[2].Pos, t[0].Pos)
	return ms3.Cross(e1, e2)
}

// Params are the per-frame slicing parameters. They are read only for
// the duration of a pass.
type Params struct {
	// SliceW is the camera-space w offset of the slicing hyperplane.
	SliceW float32
	// Camera maps world-space points to camera-space points.
	Camera hyper.Transform
}

// ErrSinkOverflow reports that a pass produced more triangles than the
// sink capacity. The pass output up to capacity remains valid; the
// caller may enlarge the capacity for subsequent frames or accept the
// truncated mesh.
var ErrSinkOverflow = errors.New("triangle sink overflow")

// epsArea is the squared-length floor under which a face normal is
// considered degenerate and its triangle skipped.
const epsArea = 1e-12

// minParallel is the tetrahedron count under which a pass runs on the
// calling goroutine.
const minParallel = 256

// Slicer computes per-frame cross-sections of a single mesh. It is
// reused across frames; the camera-space vertex cache and the sink are
// recycled to avoid per-frame allocation. A Slicer must not be used
// from multiple goroutines at once, though one pass fans out internally.
type Slicer struct {
	verts  []hyper.Vertex
	tetras []hyper.Tetrahedron
	cfg    Config
	sink   *Sink
	// cam caches this frame's camera-space projection of every vertex
	// so shared vertices are projected once, not once per tetrahedron.
	cam []hyper.Vec4
}

// NewSlicer returns a slicer for the mesh. A zero Config selects
// defaults for every field.
func NewSlicer(m *hyper.Mesh, cfg Config) (*Slicer, error) {
	if m == nil {
		return nil, errors.New("nil mesh")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return &Slicer{
		verts:  m.Vertices(),
		tetras: m.Tetrahedra(),
		cfg:    cfg,
		sink:   NewSink(cfg.MaxTriangles),
		cam:    make([]hyper.Vec4, len(m.Vertices())),
	}, nil
}

// Sink exposes the slicer's triangle sink. Its contents are valid
// between a Slice call and the next.
func (s *Slicer) Sink() *Sink { return s.sink }

// Slice runs one full slicing pass and returns the emitted triangles.
// The returned slice aliases the sink and is invalidated by the next
// pass. Triangle order across tetrahedra is unspecified. On sink
// overflow the triangles up to capacity are returned along with an
// error wrapping ErrSinkOverflow.
func (s *Slicer) Slice(p Params) ([]Triangle, error) {
	for i := range s.verts {
		s.cam[i] = p.Camera.Project(s.verts[i].Pos)
	}
	s.sink.Reset()
	workers := s.cfg.Workers
	if workers <= 1 || len(s.tetras) < minParallel {
		s.run(s.tetras, p)
	} else {
		chunk := (len(s.tetras) + workers - 1) / workers
		var wg sync.WaitGroup
		for start := 0; start < len(s.tetras); start += chunk {
			end := start + chunk
			if end > len(s.tetras) {
				end = len(s.tetras)
			}
			wg.Add(1)
			go func(tets []hyper.Tetrahedron) {
				defer wg.Done()
				s.run(tets, p)
			}(s.tetras[start:end])
		}
		wg.Wait()
	}
	tris := s.sink.Triangles()
	if d := s.sink.Dropped(); d > 0 {
		return tris, fmt.Errorf("%w: %d triangles dropped", ErrSinkOverflow, d)
	}
	return tris, nil
}

// run slices a contiguous range of tetrahedra on the calling goroutine.
func (s *Slicer) run(tets []hyper.Tetrahedron, p Params) {
	var buf [maxCaseTriangles]Triangle
	for i := range tets {
		if n := s.sliceTetra(&tets[i], p, &buf); n > 0 {
			s.sink.append(buf[:n])
		}
	}
}

// sliceTetra intersects one tetrahedron with the hyperplane and writes
// up to two triangles into dst, returning how many were produced. It is
// a pure computation: degenerate geometry degrades to emitting fewer
// triangles, never to NaN output.
func (s *Slicer) sliceTetra(tet *hyper.Tetrahedron, p Params, dst *[maxCaseTriangles]Triangle) int {
	var cam [4]hyper.Vec4
	var world [4]hyper.Vertex
	for i, vi := range tet {
		cam[i] = s.cam[vi]
		world[i] = s.verts[vi]
	}

	// Classify: bit i set iff strictly above the hyperplane. A vertex
	// exactly on the plane counts as below, the same tie-break at all
	// four positions so tetrahedra sharing an on-plane vertex agree.
	var code uint8
	for i := uint8(0); i < 4; i++ {
		if cam[i].W > p.SliceW {
			code |= 1 << i
		}
	}
	top := &topology[code]
	if top.ncross == 0 {
		return 0
	}

	// Interpolate each crossed edge at the w crossing parameter.
	var pts [4]Vertex
	for k := uint8(0); k < top.ncross; k++ {
		a := tetraEdges[top.cross[k]][0]
		b := tetraEdges[top.cross[k]][1]
		wa, wb := cam[a].W, cam[b].W
		den := wb - wa
		t := float32(0.5)
		if den > s.cfg.WTol || den < -s.cfg.WTol {
			t = clamp((p.SliceW-wa)/den, 0, 1)
		}
		pa, pb := cam[a].XYZ(), cam[b].XYZ()
		pts[k] = Vertex{
			Pos:    ms3.Add(pa, ms3.Scale(t, ms3.Sub(pb, pa))),
			Color:  world[a].Color.Lerp(world[b].Color, t),
			WDepth: world[a].Pos.W + t*(world[b].Pos.W-world[a].Pos.W),
		}
	}

	// The renderable normal is parallel to the slice-space projection
	// of the tetrahedron's 4D hull normal, whose sign is fixed by the
	// stored vertex order (outward by mesh construction). Winding is
	// matched against it rather than against any reference point.
	outward := hyper.Cross(
		cam[1].Sub(cam[0]),
		cam[2].Sub(cam[0]),
		cam[3].Sub(cam[0]),
	).XYZ()

	n := 0
	for ti := uint8(0); ti < top.ntri; ti++ {
		idx := top.tris[ti]
		tri := Triangle{pts[idx[0]], pts[idx[1]], pts[idx[2]]}
		raw := tri.Normal()
		nn := ms3.Norm(raw)
		if !(nn*nn > epsArea) {
			continue // degenerate or non-finite face, skip
		}
		if ms3.Dot(raw, outward) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
			raw = ms3.Scale(-1, raw)
		}
		unit := ms3.Scale(1/nn, raw)
		tri[0].Normal = unit
		tri[1].Normal = unit
		tri[2].Normal = unit
		dst[n] = tri
		n++
	}
	return n
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
