package slice

// Topology lookup tables for the 16 vertex classification cases. The
// tables are computed once at package load and are read only afterwards
// so concurrent slicer workers share them without synchronization.

// tetraEdges lists the 6 edges of a tetrahedron as vertex index pairs.
// The edge order is fixed; topology tables index into it.
var tetraEdges = [6][2]uint8{
	{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
}

// maxCaseTriangles is the largest number of triangles any single
// classification case emits.
const maxCaseTriangles = 2

// caseTopology describes the slice topology of one classification case.
// The crossing count is explicit rather than sentinel-terminated.
type caseTopology struct {
	mask   uint32      // bitmask over tetraEdges of crossed edges
	cross  [4]uint8    // crossed edge indices in ascending edge order
	ncross uint8       // 0, 3 or 4; no other value is possible
	tris   [maxCaseTriangles][3]uint8 // triangle corners indexing cross
	ntri   uint8
}

// topology is indexed by the 4-bit classification code: bit i set means
// tetrahedron vertex i lies strictly above the slicing hyperplane.
var topology = makeTopology()

func makeTopology() (tbl [16]caseTopology) {
	for code := range tbl {
		tbl[code] = caseFor(uint8(code))
	}
	return tbl
}

func caseFor(code uint8) caseTopology {
	var top caseTopology
	for e, edge := range tetraEdges {
		above0 := code&(1<<edge[0]) != 0
		above1 := code&(1<<edge[1]) != 0
		if above0 != above1 {
			top.mask |= 1 << uint(e)
			top.cross[top.ncross] = uint8(e)
			top.ncross++
		}
	}
	switch top.ncross {
	case 0:
		// Cases 0 and 15: tetrahedron entirely on one side.
	case 3:
		// One vertex isolated: single triangle in discovery order.
		top.tris[0] = [3]uint8{0, 1, 2}
		top.ntri = 1
	case 4:
		// Two-two split: the crossing points form a planar quad.
		// Points are adjacent on the quad boundary iff their edges
		// share a tetrahedron vertex. Triangulating the
		// discovery-ordered points as a naive fan produces a bowtie
		// for some cases, so the cyclic order is derived from that
		// adjacency instead of assumed.
		cycle := quadCycle(&top)
		top.tris[0] = [3]uint8{cycle[0], cycle[1], cycle[2]}
		top.tris[1] = [3]uint8{cycle[0], cycle[2], cycle[3]}
		top.ntri = 2
	default:
		panic("impossible crossed edge count")
	}
	return top
}

// quadCycle orders the four crossing points of a two-two split
// cyclically around the quad boundary, expressed as indices into the
// discovery-ordered crossing list.
func quadCycle(top *caseTopology) [4]uint8 {
	adj := make([]uint8, 0, 2)
	var opp uint8
	for k := uint8(1); k < 4; k++ {
		if edgesShareVertex(top.cross[0], top.cross[k]) {
			adj = append(adj, k)
		} else {
			opp = k
		}
	}
	if len(adj) != 2 {
		panic("quad crossing adjacency must be 2")
	}
	return [4]uint8{0, adj[0], opp, adj[1]}
}

func edgesShareVertex(e1, e2 uint8) bool {
	a, b := tetraEdges[e1], tetraEdges[e2]
	return a[0] == b[0] || a[0] == b[1] || a[1] == b[0] || a[1] == b[1]
}
