package utils

import (
	"math"
)

const (
	NODETOL = 1.e-12
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// POW avoids math.Pow for the small integer exponents that dominate
// monomial evaluation.
func POW(x float64, pp int) (y float64) {
	if pp < 0 || pp > 8 {
		return math.Pow(x, float64(pp))
	}
	y = 1
	for i := 0; i < pp; i++ {
		y *= x
	}
	return
}
