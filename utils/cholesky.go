package utils

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrNotPositiveDefinite reports that a symmetric matrix handed to the
// Cholesky routines is not numerically SPD. Callers treat this as a
// data-dependent condition, not a programming error.
var ErrNotPositiveDefinite = errors.New("matrix is not positive definite")

func (m Matrix) asSym() *mat.SymDense {
	var (
		n, _ = m.Dims()
		S    = mat.NewSymDense(n, nil)
	)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			S.SetSym(i, j, m.At(i, j))
		}
	}
	return S
}

// Cholesky returns the lower-triangular factor L with m = L*Lᵗ. The
// receiver is read as symmetric using its upper triangle.
func (m Matrix) Cholesky() (L Matrix, err error) {
	var (
		n, nc = m.Dims()
		chol  mat.Cholesky
	)
	if n != nc {
		panic(fmt.Errorf("Cholesky of non-square %dx%d matrix", n, nc))
	}
	if ok := chol.Factorize(m.asSym()); !ok {
		err = fmt.Errorf("cholesky factorization of %dx%d matrix: %w", n, n, ErrNotPositiveDefinite)
		return
	}
	tri := mat.NewTriDense(n, mat.Lower, nil)
	chol.LTo(tri)
	L = NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			L.Set(i, j, tri.At(i, j))
		}
	}
	return
}

// CholeskySolve solves m*x = b for SPD m.
func (m Matrix) CholeskySolve(b Vector) (x Vector, err error) {
	var (
		n, _ = m.Dims()
		chol mat.Cholesky
	)
	if b.Len() != n {
		panic(fmt.Errorf("CholeskySolve dimension mismatch: matrix %dx%d, rhs %d", n, n, b.Len()))
	}
	if ok := chol.Factorize(m.asSym()); !ok {
		err = fmt.Errorf("cholesky solve of %dx%d system: %w", n, n, ErrNotPositiveDefinite)
		return
	}
	x = NewVector(n)
	if err = chol.SolveVecTo(x.V, b.V); err != nil {
		return
	}
	x.DataP = x.V.RawVector().Data
	return
}

// LowerTriInverse inverts a lower-triangular matrix (such as a Cholesky
// factor) by triangular back-substitution.
func (m Matrix) LowerTriInverse() (R Matrix, err error) {
	var (
		n, _ = m.Dims()
		data = make([]float64, n*n)
	)
	copy(data, m.DataP)
	tri := mat.NewTriDense(n, mat.Lower, data)
	inv := mat.NewTriDense(n, mat.Lower, nil)
	if err = inv.InverseTri(tri); err != nil {
		err = fmt.Errorf("triangular inversion failed: %w", err)
		return
	}
	R = NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			R.Set(i, j, inv.At(i, j))
		}
	}
	return
}
