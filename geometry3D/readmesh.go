package geometry3D

import (
	"bufio"
	"fmt"
	"os"
)

// ReadPolyMesh reads a polyhedral mesh from a plain text file.
//
// The format is:
//
//	Nv Nf Nc
//	x y z                 (Nv vertex lines)
//	nv v0 v1 ... v(nv-1)  (Nf face lines, counterclockwise vertex loop)
//	nf f0 f1 ... f(nf-1)  (Nc cell lines, global face indices)
//
// Tokens may be separated by any whitespace, so line breaks are free-form.
func ReadPolyMesh(filename string, verbose bool) (m *Mesh) {
	var (
		file   *os.File
		err    error
		reader *bufio.Reader
	)
	if verbose {
		fmt.Printf("Reading polyhedral mesh file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		panic(fmt.Errorf("unable to open file %s\n %s", filename, err))
	}
	defer file.Close()
	reader = bufio.NewReader(file)

	Nv, Nf, Nc := readMeshHeader(reader)
	if verbose {
		fmt.Printf("Nv = %d, Nf = %d, Nc = %d\n", Nv, Nf, Nc)
	}

	points := readVertices(Nv, reader)
	faceLoops := readIndexLists(Nf, Nv, "face", reader)
	cellFaces := readIndexLists(Nc, Nf, "cell", reader)

	if m, err = NewMesh(points, faceLoops, cellFaces); err != nil {
		panic(fmt.Errorf("invalid mesh in file %s\n %s", filename, err))
	}
	if verbose {
		var xmin, xmax = points[0], points[0]
		for _, p := range points {
			xmin.X, xmax.X = min(xmin.X, p.X), max(xmax.X, p.X)
			xmin.Y, xmax.Y = min(xmin.Y, p.Y), max(xmax.Y, p.Y)
			xmin.Z, xmax.Z = min(xmin.Z, p.Z), max(xmax.Z, p.Z)
		}
		fmt.Printf("Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\nZMin/ZMax = %5.3f, %5.3f\n",
			xmin.X, xmax.X, xmin.Y, xmax.Y, xmin.Z, xmax.Z)
	}
	return
}

func readMeshHeader(reader *bufio.Reader) (Nv, Nf, Nc int) {
	if _, err := fmt.Fscan(reader, &Nv, &Nf, &Nc); err != nil {
		panic(fmt.Errorf("unable to read mesh header\n %s", err))
	}
	if Nv < 4 || Nf < 4 || Nc < 1 {
		panic(fmt.Errorf("implausible mesh sizes Nv = %d, Nf = %d, Nc = %d", Nv, Nf, Nc))
	}
	return
}

func readVertices(Nv int, reader *bufio.Reader) (points []Vec) {
	points = make([]Vec, Nv)
	for i := range points {
		if _, err := fmt.Fscan(reader, &points[i].X, &points[i].Y, &points[i].Z); err != nil {
			panic(fmt.Errorf("unable to read vertex %d\n %s", i, err))
		}
	}
	return
}

func readIndexLists(n, bound int, what string, reader *bufio.Reader) (lists [][]int) {
	lists = make([][]int, n)
	for i := range lists {
		var count int
		if _, err := fmt.Fscan(reader, &count); err != nil {
			panic(fmt.Errorf("unable to read %s %d\n %s", what, i, err))
		}
		if count < 3 {
			panic(fmt.Errorf("%s %d has only %d entries", what, i, count))
		}
		lists[i] = make([]int, count)
		for j := range lists[i] {
			if _, err := fmt.Fscan(reader, &lists[i][j]); err != nil {
				panic(fmt.Errorf("unable to read %s %d entry %d\n %s", what, i, j, err))
			}
			if lists[i][j] < 0 || lists[i][j] >= bound {
				panic(fmt.Errorf("%s %d entry %d = %d out of range [0,%d)", what, i, j, lists[i][j], bound))
			}
		}
	}
	return
}
