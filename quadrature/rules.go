package quadrature

import (
	"github.com/polytopal/hho3d/geometry3D"
)

// EdgeRule generates a Gauss-Legendre rule along an edge, exact for
// polynomials up to degree doe.
func EdgeRule(E *geometry3D.Edge, doe int) (qr Rule) {
	var (
		n    = nPoints(doe)
		x, w = GaussJacobi(0, 0, n)
		xE   = E.CenterMass()
		half = E.Tangent().Scale(0.5 * E.Measure())
	)
	qr = make(Rule, n)
	for i := 0; i < n; i++ {
		qr[i] = Node{
			Point: xE.Add(half.Scale(x[i])),
			W:     0.5 * E.Measure() * w[i],
		}
	}
	return
}

// triangleRule maps a collapsed GL x GJ(1,0) tensor rule onto one triangle
// given by its three corners in ambient space.
func triangleRule(v0, v1, v2 geometry3D.Vec, doe int) (qr Rule) {
	var (
		n      = nPoints(doe)
		xa, wa = GaussJacobi(0, 0, n)
		xb, wb = GaussJacobi(1, 0, n)
		e1     = v1.Sub(v0)
		e2     = v2.Sub(v0)
		area   = 0.5 * e1.Cross(e2).Norm()
	)
	qr = make(Rule, 0, n*n)
	for ib := 0; ib < n; ib++ {
		for ia := 0; ia < n; ia++ {
			// Duffy transform to barycentric coordinates
			xi := (1. + xa[ia]) * (1. - xb[ib]) / 4.
			eta := (1. + xb[ib]) / 2.
			qr = append(qr, Node{
				Point: v0.Add(e1.Scale(xi)).Add(e2.Scale(eta)),
				W:     2. * area * wa[ia] * wb[ib] / 8.,
			})
		}
	}
	return
}

// FaceRule generates a rule over a planar polygonal face by fanning
// triangles around the face center of mass.
func FaceRule(F *geometry3D.Face, doe int) (qr Rule) {
	for _, tri := range F.FanTriangles() {
		qr = append(qr, triangleRule(tri[0], tri[1], tri[2], doe)...)
	}
	return
}

// tetRule maps a collapsed GL x GJ(1,0) x GJ(2,0) tensor rule onto one
// tetrahedron. The weight sign follows the signed volume, so algebraic
// decompositions of nonconvex cells still integrate polynomials exactly.
func tetRule(v0, v1, v2, v3 geometry3D.Vec, doe int) (qr Rule) {
	var (
		n      = nPoints(doe)
		xa, wa = GaussJacobi(0, 0, n)
		xb, wb = GaussJacobi(1, 0, n)
		xc, wc = GaussJacobi(2, 0, n)
		e1     = v1.Sub(v0)
		e2     = v2.Sub(v0)
		e3     = v3.Sub(v0)
		vol    = e1.Dot(e2.Cross(e3)) / 6.
	)
	qr = make(Rule, 0, n*n*n)
	for ic := 0; ic < n; ic++ {
		for ib := 0; ib < n; ib++ {
			for ia := 0; ia < n; ia++ {
				xi := (1. + xa[ia]) * (1. - xb[ib]) * (1. - xc[ic]) / 8.
				eta := (1. + xb[ib]) * (1. - xc[ic]) / 4.
				zeta := (1. + xc[ic]) / 2.
				qr = append(qr, Node{
					Point: v0.Add(e1.Scale(xi)).Add(e2.Scale(eta)).Add(e3.Scale(zeta)),
					W:     6. * vol * wa[ia] * wb[ib] * wc[ic] / 64.,
				})
			}
		}
	}
	return
}

// CellRule generates a rule over a polytopal cell by decomposition into
// tetrahedra joining the cell center of mass to the face triangles.
func CellRule(T *geometry3D.Cell, doe int) (qr Rule) {
	for _, tet := range T.Tetrahedra() {
		qr = append(qr, tetRule(tet[0], tet[1], tet[2], tet[3], doe)...)
	}
	return
}
