package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixBasics(t *testing.T) {
	M := NewMatrix(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	assert.Equal(t, 6., M.At(1, 2))

	MT := M.Transpose()
	nr, nc := MT.Dims()
	assert.Equal(t, 3, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, 6., MT.At(2, 1))

	R := M.Row(1)
	assert.Equal(t, []float64{4, 5, 6}, R.DataP)
	C := M.Col(2)
	assert.Equal(t, []float64{3, 6}, C.DataP)

	v := NewVector(3, []float64{1, 1, 1})
	Mv := M.MulVec(v)
	assert.InDeltaf(t, 6, Mv.AtVec(0), 1.e-14, "")
	assert.InDeltaf(t, 15, Mv.AtVec(1), 1.e-14, "")
}

func TestCholesky(t *testing.T) {
	// SPD matrix with known factorization
	M := NewMatrix(3, 3, []float64{
		4, 2, 2,
		2, 5, 3,
		2, 3, 6,
	})
	L, err := M.Cholesky()
	assert.NoError(t, err)

	// L*Lt must reproduce M
	LLt := L.Mul(L.Transpose())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDeltaf(t, M.At(i, j), LLt.At(i, j), 1.e-12, "")
		}
	}

	// Linv*L = I
	Linv, err := L.LowerTriInverse()
	assert.NoError(t, err)
	I := Linv.Mul(L)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var want float64
			if i == j {
				want = 1
			}
			assert.InDeltaf(t, want, I.At(i, j), 1.e-12, "")
		}
	}
}

func TestCholeskySolve(t *testing.T) {
	M := NewMatrix(2, 2, []float64{
		3, 1,
		1, 2,
	})
	b := NewVector(2, []float64{5, 5})
	x, err := M.CholeskySolve(b)
	assert.NoError(t, err)
	assert.InDeltaf(t, 1, x.AtVec(0), 1.e-13, "")
	assert.InDeltaf(t, 2, x.AtVec(1), 1.e-13, "")
}

func TestCholeskyNotSPD(t *testing.T) {
	M := NewMatrix(2, 2, []float64{
		1, 3,
		3, 1,
	})
	_, err := M.Cholesky()
	assert.ErrorIs(t, err, ErrNotPositiveDefinite)

	_, err = M.CholeskySolve(NewVector(2, []float64{1, 1}))
	assert.ErrorIs(t, err, ErrNotPositiveDefinite)
}

func TestPOW(t *testing.T) {
	for p := 0; p <= 10; p++ {
		assert.InDeltaf(t, math.Pow(1.7, float64(p)), POW(1.7, p), 1.e-12, "p=%d", p)
	}
	assert.InDeltaf(t, math.Pow(1.7, -3), POW(1.7, -3), 1.e-12, "")
}
