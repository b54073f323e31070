package HHO3D

import (
	"fmt"

	"github.com/polytopal/hho3d/quadrature"
	"github.com/polytopal/hho3d/utils"
)

// ChangeOfBasis turns the mass matrix M of a monomial family into the
// change-of-basis matrix G of the family orthonormal under the same
// discrete L2 product: with M = L*Lᵗ, G = L⁻¹ satisfies G*M*Gᵗ = I. Row i
// of G holds the monomial coefficients of orthonormal function i.
//
// A non-SPD mass matrix (degenerate entity, or quadrature under-resolved
// for the requested degree) is surfaced as an error wrapping
// utils.ErrNotPositiveDefinite.
func ChangeOfBasis(M utils.Matrix) (G utils.Matrix, err error) {
	L, err := M.Cholesky()
	if err != nil {
		return G, fmt.Errorf("orthonormalization: %w", err)
	}
	if G, err = L.LowerTriInverse(); err != nil {
		return G, fmt.Errorf("orthonormalization: %w", err)
	}
	return
}

// Orthonormalize samples a monomial basis at the nodes of qr, assembles its
// mass matrix and returns the orthonormalizing change-of-basis. The rule
// must integrate products of two basis functions exactly for the result to
// be orthonormal to quadrature accuracy.
func Orthonormalize(b ScalarBasis, qr quadrature.Rule) (G utils.Matrix, err error) {
	bq := EvalBasisQuad(b, qr, b.Dimension())
	M := ComputeGramMatrixFull(bq, bq, qr, true)
	return ChangeOfBasis(M)
}

// EvalBasisQuad samples the first n basis functions at the quadrature
// nodes, in the [slot][node] layout the Gram routines consume.
func EvalBasisQuad(b ScalarBasis, qr quadrature.Rule, n int) (bq [][]float64) {
	if n > b.Dimension() {
		panic(fmt.Errorf("EvalBasisQuad: requested %d functions from a family of %d", n, b.Dimension()))
	}
	bq = make([][]float64, n)
	for i := 0; i < n; i++ {
		bq[i] = make([]float64, len(qr))
		for iqn, qn := range qr {
			bq[i][iqn] = b.Function(i, qn.Point)
		}
	}
	return
}
