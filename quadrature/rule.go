// Package quadrature generates quadrature rules with a requested degree of
// exactness on the edges, faces and cells of a polytopal 3D mesh. Faces and
// cells are handled by decomposition into triangles and tetrahedra sharing
// the entity's center of mass, with collapsed-coordinate Gauss-Jacobi rules
// on each piece.
package quadrature

import (
	"github.com/polytopal/hho3d/geometry3D"
)

type Node struct {
	Point geometry3D.Vec
	W     float64
}

// Rule is an ordered sequence of quadrature nodes on one mesh entity. The
// sum of the weights equals the measure of the entity.
type Rule []Node

func (qr Rule) SumWeights() (s float64) {
	for _, qn := range qr {
		s += qn.W
	}
	return
}

// Integrate sums w*f(point) over the rule.
func (qr Rule) Integrate(f func(x geometry3D.Vec) float64) (v float64) {
	for _, qn := range qr {
		v += qn.W * f(qn.Point)
	}
	return
}

// nPoints is the 1D point count needed for exactness degree doe.
func nPoints(doe int) int {
	if doe < 0 {
		doe = 0
	}
	return doe/2 + 1
}
