package geometry3D

import (
	"fmt"
)

// Polytopal 3D mesh: cells are bounded by planar polygonal faces, faces by
// straight edges. All geometric quantities (centers of mass, diameters,
// measures, frames) are computed once at construction and are read-only
// afterward.

type Vertex struct {
	Pos   Vec
	Cells []int // global indices of incident cells
	Faces []int // global indices of incident faces
}

type Edge struct {
	index  int
	v      [2]int
	center Vec
	length float64
	tang   Vec
}

func (e *Edge) GlobalIndex() int { return e.index }
func (e *Edge) CenterMass() Vec  { return e.center }
func (e *Edge) Diam() float64    { return e.length }
func (e *Edge) Measure() float64 { return e.length }
func (e *Edge) Tangent() Vec     { return e.tang }

type Face struct {
	mesh     *Mesh
	index    int
	verts    []int
	edges    []int
	boundary bool
	center   Vec
	normal   Vec
	diam     float64
	area     float64
}

func (f *Face) GlobalIndex() int { return f.index }
func (f *Face) CenterMass() Vec  { return f.center }
func (f *Face) Diam() float64    { return f.diam }
func (f *Face) Measure() float64 { return f.area }
func (f *Face) Normal() Vec      { return f.normal }
func (f *Face) IsBoundary() bool { return f.boundary }
func (f *Face) NVertices() int   { return len(f.verts) }

func (f *Face) VertexPos(i int) Vec { return f.mesh.vertices[f.verts[i]].Pos }

func (f *Face) Edge(i int) *Edge { return f.mesh.edges[f.edges[i]] }

// EdgeTangent is the unit vector along local edge i, following the
// orientation of the face's vertex loop.
func (f *Face) EdgeTangent(i int) Vec {
	a := f.VertexPos(i)
	b := f.VertexPos((i + 1) % len(f.verts))
	return b.Sub(a).Normalize()
}

// EdgeNormal is the unit normal to local edge i lying in the face plane.
// Together with EdgeTangent(i) it forms an orthonormal frame of the plane.
func (f *Face) EdgeNormal(i int) Vec {
	return f.normal.Cross(f.EdgeTangent(i))
}

// FanTriangles decomposes the face into triangles sharing the center of
// mass, each oriented like the vertex loop.
func (f *Face) FanTriangles() (tris [][3]Vec) {
	nv := len(f.verts)
	tris = make([][3]Vec, 0, nv)
	for i := 0; i < nv; i++ {
		tris = append(tris, [3]Vec{f.center, f.VertexPos(i), f.VertexPos((i + 1) % nv)})
	}
	return
}

type Cell struct {
	mesh   *Mesh
	index  int
	verts  []int
	faces  []int
	orient []int // +1 where the face normal points out of the cell
	center Vec
	diam   float64
	vol    float64
}

func (c *Cell) GlobalIndex() int { return c.index }
func (c *Cell) CenterMass() Vec  { return c.center }
func (c *Cell) Diam() float64    { return c.diam }
func (c *Cell) Measure() float64 { return c.vol }
func (c *Cell) NFaces() int      { return len(c.faces) }

func (c *Cell) Face(ilF int) *Face        { return c.mesh.faces[c.faces[ilF]] }
func (c *Cell) FaceOrientation(i int) int { return c.orient[i] }

// Tetrahedra decomposes the cell into tets joining the cell center of mass
// to the fan triangles of its faces, oriented so the signed volume of each
// tet is positive for faces seen outward.
func (c *Cell) Tetrahedra() (tets [][4]Vec) {
	for ilF := range c.faces {
		F := c.Face(ilF)
		for _, tri := range F.FanTriangles() {
			a, b, d := tri[0], tri[1], tri[2]
			if c.orient[ilF] < 0 {
				b, d = d, b
			}
			tets = append(tets, [4]Vec{c.center, a, b, d})
		}
	}
	return
}

// FaceWeights returns, for each local face, the fraction of the cell volume
// taken by the pyramid joining the cell center of mass to that face. The
// weights sum to 1 for any cell star-shaped with respect to its center.
func (c *Cell) FaceWeights() (w []float64) {
	w = make([]float64, len(c.faces))
	for ilF := range c.faces {
		F := c.Face(ilF)
		var pyr float64
		for _, tri := range F.FanTriangles() {
			a, b, d := tri[0], tri[1], tri[2]
			if c.orient[ilF] < 0 {
				b, d = d, b
			}
			pyr += signedTetVolume(c.center, a, b, d)
		}
		w[ilF] = pyr / c.vol
	}
	return
}

type Mesh struct {
	vertices []Vertex
	edges    []*Edge
	faces    []*Face
	cells    []*Cell
}

func (m *Mesh) NVertices() int { return len(m.vertices) }
func (m *Mesh) NEdges() int    { return len(m.edges) }
func (m *Mesh) NFaces() int    { return len(m.faces) }
func (m *Mesh) NCells() int    { return len(m.cells) }

func (m *Mesh) Vertex(i int) *Vertex { return &m.vertices[i] }
func (m *Mesh) Edge(i int) *Edge     { return m.edges[i] }
func (m *Mesh) Face(i int) *Face     { return m.faces[i] }
func (m *Mesh) Cell(i int) *Cell     { return m.cells[i] }

func (m *Mesh) NBoundaryFaces() (n int) {
	for _, f := range m.faces {
		if f.boundary {
			n++
		}
	}
	return
}

func (m *Mesh) NInternalFaces() int { return m.NFaces() - m.NBoundaryFaces() }

func signedTetVolume(p, a, b, c Vec) float64 {
	return a.Sub(p).Dot(b.Sub(p).Cross(c.Sub(p))) / 6.
}

// NewMesh builds a mesh from vertex positions, one vertex loop per face,
// and one global face index list per cell. Face loops may be given in
// either orientation; outward orientation per cell is recovered
// geometrically.
func NewMesh(points []Vec, faceLoops [][]int, cellFaces [][]int) (m *Mesh, err error) {
	m = &Mesh{
		vertices: make([]Vertex, len(points)),
	}
	for i, p := range points {
		m.vertices[i].Pos = p
	}

	edgeIDs := make(map[[2]int]int)
	for iF, loop := range faceLoops {
		if len(loop) < 3 {
			return nil, fmt.Errorf("face %d has %d vertices, need at least 3", iF, len(loop))
		}
		F := &Face{mesh: m, index: iF, verts: append([]int{}, loop...)}

		// Mesh edges are shared between faces, keyed by vertex pair
		for i := range loop {
			a, b := loop[i], loop[(i+1)%len(loop)]
			key := [2]int{min(a, b), max(a, b)}
			id, ok := edgeIDs[key]
			if !ok {
				id = len(m.edges)
				edgeIDs[key] = id
				pa, pb := points[key[0]], points[key[1]]
				m.edges = append(m.edges, &Edge{
					index:  id,
					v:      key,
					center: pa.Add(pb).Scale(0.5),
					length: pb.Sub(pa).Norm(),
					tang:   pb.Sub(pa).Normalize(),
				})
			}
			F.edges = append(F.edges, id)
		}

		if err = computeFaceGeometry(F, points); err != nil {
			return nil, fmt.Errorf("face %d: %w", iF, err)
		}
		m.faces = append(m.faces, F)
	}

	faceUse := make([]int, len(m.faces))
	for iT, fids := range cellFaces {
		if len(fids) < 4 {
			return nil, fmt.Errorf("cell %d has %d faces, need at least 4", iT, len(fids))
		}
		T := &Cell{mesh: m, index: iT, faces: append([]int{}, fids...)}
		if err = computeCellGeometry(T, points); err != nil {
			return nil, fmt.Errorf("cell %d: %w", iT, err)
		}
		for _, fid := range fids {
			faceUse[fid]++
		}
		m.cells = append(m.cells, T)
	}
	for iF, F := range m.faces {
		switch faceUse[iF] {
		case 1:
			F.boundary = true
		case 2:
		default:
			return nil, fmt.Errorf("face %d used by %d cells", iF, faceUse[iF])
		}
	}

	// Vertex incidence, used for vertex-value extraction
	for iF, F := range m.faces {
		for _, iv := range F.verts {
			m.vertices[iv].Faces = append(m.vertices[iv].Faces, iF)
		}
	}
	for iT, T := range m.cells {
		for _, iv := range T.verts {
			m.vertices[iv].Cells = append(m.vertices[iv].Cells, iT)
		}
	}
	return
}

func computeFaceGeometry(F *Face, points []Vec) error {
	nv := len(F.verts)

	// Provisional fan apex: vertex average. The fan is then re-centered on
	// the area centroid so FanTriangles covers star-shaped faces correctly.
	var pc Vec
	for _, iv := range F.verts {
		pc = pc.Add(points[iv].Scale(1. / float64(nv)))
	}

	var nAcc, cAcc Vec
	var area float64
	for i := 0; i < nv; i++ {
		a := points[F.verts[i]]
		b := points[F.verts[(i+1)%nv]]
		cr := a.Sub(pc).Cross(b.Sub(pc))
		t := 0.5 * cr.Norm()
		nAcc = nAcc.Add(cr)
		cAcc = cAcc.Add(pc.Add(a).Add(b).Scale(t / 3.))
		area += t
	}
	if area < 1.e-14 {
		return fmt.Errorf("degenerate face, area = %v", area)
	}
	F.area = area
	F.center = cAcc.Scale(1. / area)
	F.normal = nAcc.Normalize()
	for i := 0; i < nv; i++ {
		for j := i + 1; j < nv; j++ {
			if d := points[F.verts[j]].Sub(points[F.verts[i]]).Norm(); d > F.diam {
				F.diam = d
			}
		}
	}
	return nil
}

func computeCellGeometry(T *Cell, points []Vec) error {
	m := T.mesh

	// Vertex set of the cell
	seen := make(map[int]bool)
	for _, fid := range T.faces {
		for _, iv := range m.faces[fid].verts {
			if !seen[iv] {
				seen[iv] = true
				T.verts = append(T.verts, iv)
			}
		}
	}

	var pa Vec
	for _, iv := range T.verts {
		pa = pa.Add(points[iv].Scale(1. / float64(len(T.verts))))
	}

	// Orientation of each face relative to the cell
	T.orient = make([]int, len(T.faces))
	for ilF, fid := range T.faces {
		F := m.faces[fid]
		if F.normal.Dot(F.center.Sub(pa)) > 0 {
			T.orient[ilF] = 1
		} else {
			T.orient[ilF] = -1
		}
	}

	// Volume and center of mass by signed tet decomposition from pa
	var vol float64
	var cAcc Vec
	for ilF, fid := range T.faces {
		F := m.faces[fid]
		for _, tri := range F.FanTriangles() {
			a, b, c := tri[0], tri[1], tri[2]
			if T.orient[ilF] < 0 {
				b, c = c, b
			}
			v := signedTetVolume(pa, a, b, c)
			vol += v
			cAcc = cAcc.Add(pa.Add(a).Add(b).Add(c).Scale(v / 4.))
		}
	}
	if vol < 1.e-14 {
		return fmt.Errorf("nonpositive volume %v", vol)
	}
	T.vol = vol
	T.center = cAcc.Scale(1. / vol)
	for i := 0; i < len(T.verts); i++ {
		for j := i + 1; j < len(T.verts); j++ {
			if d := points[T.verts[j]].Sub(points[T.verts[i]]).Norm(); d > T.diam {
				T.diam = d
			}
		}
	}
	return nil
}
