package HHO3D

import (
	"fmt"

	"github.com/polytopal/hho3d/geometry3D"
	"github.com/polytopal/hho3d/quadrature"
	"github.com/polytopal/hho3d/utils"
)

// Gram ("mass") matrices of weighted L2 products between two families of
// basis samples sharing one quadrature rule. Sample arrays are indexed
// [family slot][quadrature node].
//
// The sym flag is a caller contract, not a runtime-checked condition: it
// must only be set when the two families are semantically identical. When
// set, entries below the diagonal are copied from the transposed entry, so
// the result is exactly symmetric by construction - and silently wrong if
// the families differ.

func checkGramInputs(n1, n2, nqr, nrows, ncols int, sym bool) {
	if n1 != nqr || n2 != nqr {
		panic(fmt.Errorf("gram matrix: quadrature rule has %d nodes, samples have %d and %d", nqr, n1, n2))
	}
	if sym && nrows != ncols {
		panic(fmt.Errorf("gram matrix: sym requested with nrows %d != ncols %d", nrows, ncols))
	}
}

// ComputeGramMatrix assembles the nrows x ncols matrix of weighted products
// of two scalar families, restricted to a prefix of each family.
func ComputeGramMatrix(B1, B2 [][]float64, qr quadrature.Rule, nrows, ncols int, sym bool) (M utils.Matrix) {
	if nrows > len(B1) || ncols > len(B2) {
		panic(fmt.Errorf("gram matrix: requested %dx%d from families of size %d and %d",
			nrows, ncols, len(B1), len(B2)))
	}
	checkGramInputs(len(B1[0]), len(B2[0]), len(qr), nrows, ncols, sym)

	M = utils.NewMatrix(nrows, ncols)
	for i := 0; i < nrows; i++ {
		jcut := 0
		if sym {
			jcut = i
		}
		for j := 0; j < jcut; j++ {
			M.Set(i, j, M.At(j, i))
		}
		for j := jcut; j < ncols; j++ {
			var sum float64
			for iqn, qn := range qr {
				sum += qn.W * B1[i][iqn] * B2[j][iqn]
			}
			M.Set(i, j, sum)
		}
	}
	return
}

// ComputeGramMatrixFull is the complete-family version of
// ComputeGramMatrix.
func ComputeGramMatrixFull(B1, B2 [][]float64, qr quadrature.Rule, sym bool) utils.Matrix {
	return ComputeGramMatrix(B1, B2, qr, len(B1), len(B2), sym)
}

// ComputeGramMatrixVec assembles the matrix of weighted dot products of two
// vector-valued families.
func ComputeGramMatrixVec(B1, B2 [][]geometry3D.Vec, qr quadrature.Rule, nrows, ncols int, sym bool) (M utils.Matrix) {
	if nrows > len(B1) || ncols > len(B2) {
		panic(fmt.Errorf("gram matrix: requested %dx%d from families of size %d and %d",
			nrows, ncols, len(B1), len(B2)))
	}
	checkGramInputs(len(B1[0]), len(B2[0]), len(qr), nrows, ncols, sym)

	M = utils.NewMatrix(nrows, ncols)
	for i := 0; i < nrows; i++ {
		jcut := 0
		if sym {
			jcut = i
		}
		for j := 0; j < jcut; j++ {
			M.Set(i, j, M.At(j, i))
		}
		for j := jcut; j < ncols; j++ {
			var sum float64
			for iqn, qn := range qr {
				sum += qn.W * B1[i][iqn].Dot(B2[j][iqn])
			}
			M.Set(i, j, sum)
		}
	}
	return
}

// ComputeGramMatrixVecFull is the complete-family version of
// ComputeGramMatrixVec.
func ComputeGramMatrixVecFull(B1, B2 [][]geometry3D.Vec, qr quadrature.Rule, sym bool) utils.Matrix {
	return ComputeGramMatrixVec(B1, B2, qr, len(B1), len(B2), sym)
}

// ComputeGramMatrixVecScalar assembles the matrix of products of a
// vector-valued family against the tensorization of a scalar family: the
// result has one ncols-wide column block per ambient axis, block k holding
// the products of the k components of B1 against B2.
func ComputeGramMatrixVecScalar(B1 [][]geometry3D.Vec, B2 [][]float64, qr quadrature.Rule) (M utils.Matrix) {
	checkGramInputs(len(B1[0]), len(B2[0]), len(qr), 0, 0, false)

	var (
		nrows = len(B1)
		ncols = len(B2)
	)
	M = utils.NewMatrix(nrows, DimSpace*ncols)
	for i := 0; i < nrows; i++ {
		for k := 0; k < DimSpace; k++ {
			ek := geometry3D.Axis(k)
			for j := 0; j < ncols; j++ {
				var sum float64
				for iqn, qn := range qr {
					sum += qn.W * B1[i][iqn].Dot(ek) * B2[j][iqn]
				}
				M.Set(i, k*ncols+j, sum)
			}
		}
	}
	return
}
