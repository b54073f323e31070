package quadrature

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// GaussJacobi computes the n-point Gauss quadrature rule for the weight
// (1-x)^alpha (1+x)^beta on [-1,1] by the Golub-Welsch algorithm: the nodes
// are the eigenvalues of the symmetric tridiagonal Jacobi matrix of the
// recurrence, the weights come from the first component of the
// eigenvectors. Exact for polynomials of degree <= 2n-1 against the weight.
func GaussJacobi(alpha, beta float64, n int) (x, w []float64) {
	if n < 1 {
		panic("GaussJacobi requires at least one point")
	}
	if n == 1 {
		x = []float64{(beta - alpha) / (alpha + beta + 2.)}
		w = []float64{gamma0(alpha, beta)}
		return
	}

	var (
		N  = n - 1
		h1 = make([]float64, n)
		d0 = make([]float64, n)
		d1 = make([]float64, N)
	)
	for i := 0; i < n; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	// main diagonal
	fac := -.5 * (alpha*alpha - beta*beta)
	for i := 0; i < n; i++ {
		d0[i] = fac / (h1[i] * (h1[i] + 2.))
	}
	if alpha+beta < 10*machineEps {
		d0[0] = 0.
	}

	// first super-diagonal
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		val := h1[i]
		d1[i] = 2. / (val + 2.) *
			math.Sqrt(ip1*(ip1+alpha+beta)*(ip1+alpha)*(ip1+beta)/((val+1.)*(val+3.)))
	}

	JJ := newSymTriDiagonal(d0, d1)
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition of Jacobi matrix failed")
	}
	x = eig.Values(nil)

	VVr := mat.NewDense(n, n, nil)
	eig.VectorsTo(VVr)
	w = make([]float64, n)
	g0 := gamma0(alpha, beta)
	for i := 0; i < n; i++ {
		v := VVr.At(0, i)
		w[i] = v * v * g0
	}
	return
}

const machineEps = 1.e-16

// gamma0 is the total mass of the Jacobi weight on [-1,1].
func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	return math.Pow(2, ab1) / ab1 *
		math.Gamma(alpha+1) * math.Gamma(beta+1) / math.Gamma(ab1)
}

func newSymTriDiagonal(d0, d1 []float64) (Tri *mat.SymDense) {
	n := len(d0)
	Tri = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		Tri.SetSym(i, i, d0[i])
		if i < n-1 {
			Tri.SetSym(i, i+1, d1[i])
		}
	}
	return
}
