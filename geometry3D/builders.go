package geometry3D

// Mesh builders for tests and the demo command.

// CubeMesh splits the unit cube [0,1]^3 into n^3 hexahedral cells.
func CubeMesh(n int) (m *Mesh) {
	if n < 1 {
		panic("CubeMesh requires n >= 1")
	}
	var (
		np = n + 1
		h  = 1. / float64(n)
	)
	v := func(i, j, k int) int { return i + np*(j+np*k) }

	points := make([]Vec, np*np*np)
	for k := 0; k < np; k++ {
		for j := 0; j < np; j++ {
			for i := 0; i < np; i++ {
				points[v(i, j, k)] = Vec{float64(i) * h, float64(j) * h, float64(k) * h}
			}
		}
	}

	var faceLoops [][]int
	nxf := np * n * n // faces per normal direction
	xFace := func(i, j, k int) int { return i*n*n + j*n + k }
	yFace := func(i, j, k int) int { return nxf + j*n*n + i*n + k }
	zFace := func(i, j, k int) int { return 2*nxf + k*n*n + i*n + j }

	for i := 0; i < np; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				faceLoops = append(faceLoops, []int{v(i, j, k), v(i, j+1, k), v(i, j+1, k+1), v(i, j, k+1)})
			}
		}
	}
	for j := 0; j < np; j++ {
		for i := 0; i < n; i++ {
			for k := 0; k < n; k++ {
				faceLoops = append(faceLoops, []int{v(i, j, k), v(i+1, j, k), v(i+1, j, k+1), v(i, j, k+1)})
			}
		}
	}
	for k := 0; k < np; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				faceLoops = append(faceLoops, []int{v(i, j, k), v(i+1, j, k), v(i+1, j+1, k), v(i, j+1, k)})
			}
		}
	}

	var cellFaces [][]int
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				cellFaces = append(cellFaces, []int{
					xFace(i, j, k), xFace(i+1, j, k),
					yFace(i, j, k), yFace(i, j+1, k),
					zFace(i, j, k), zFace(i, j, k+1),
				})
			}
		}
	}

	m, err := NewMesh(points, faceLoops, cellFaces)
	if err != nil {
		panic(err)
	}
	return
}

// SingleTetMesh builds a mesh holding one tetrahedral cell.
func SingleTetMesh(p0, p1, p2, p3 Vec) (m *Mesh) {
	points := []Vec{p0, p1, p2, p3}
	faceLoops := [][]int{
		{0, 1, 2},
		{0, 1, 3},
		{0, 2, 3},
		{1, 2, 3},
	}
	cellFaces := [][]int{{0, 1, 2, 3}}
	m, err := NewMesh(points, faceLoops, cellFaces)
	if err != nil {
		panic(err)
	}
	return
}
