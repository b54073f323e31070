// Package HHO3D implements the polynomial-basis and projection engine for
// Hybrid High-Order discretizations on polytopal 3D meshes: monomial bases
// local to cells, faces and edges, quadrature-based Gram matrices between
// basis families, L2 orthonormalization, and interpolation onto the hybrid
// (cell + face) space.
//
// The basic ordering of hybrid vectors puts all cell degrees of freedom
// first, then all face degrees of freedom.
package HHO3D

import (
	"fmt"

	"github.com/polytopal/hho3d/geometry3D"
	"github.com/polytopal/hho3d/utils"
)

// DimSpace is the ambient space dimension.
const DimSpace = 3

// DimPcell is the dimension of the space of 3-variate polynomials of total
// degree up to m.
func DimPcell(m int) int { return (m + 1) * (m + 2) * (m + 3) / 6 }

// DimPface is the dimension of the space of 2-variate polynomials of total
// degree up to m.
func DimPface(m int) int { return (m + 1) * (m + 2) / 2 }

// DimPedge is the dimension of the space of 1-variate polynomials of degree
// up to m.
func DimPedge(m int) int { return m + 1 }

// ScalarBasis is the capability shared by the cell, face and edge monomial
// bases. Gradient index i corresponds to the same basis slot as value index
// i; in particular slot 0 is the constant 1 with zero gradient.
type ScalarBasis interface {
	Dimension() int
	Function(i int, x geometry3D.Vec) float64
	Gradient(i int, x geometry3D.Vec) geometry3D.Vec
}

//------------------------------------------------------------------------------
// Scalar monomial basis on a cell
//------------------------------------------------------------------------------

// CellBasis is the monomial basis of a cell: products of powers of the
// ambient coordinates recentered on the cell's center of mass and rescaled
// by its diameter.
type CellBasis struct {
	degree int
	xT     geometry3D.Vec
	hT     float64
	powers [][3]int
}

func NewCellBasis(T *geometry3D.Cell, degree int) (b *CellBasis) {
	if degree < 0 {
		panic(fmt.Errorf("NewCellBasis: negative degree %d", degree))
	}
	b = &CellBasis{
		degree: degree,
		xT:     T.CenterMass(),
		hT:     T.Diam(),
		powers: make([][3]int, 0, DimPcell(degree)),
	}
	for l := 0; l <= degree; l++ {
		for i := 0; i <= l; i++ {
			for j := 0; i+j <= l; j++ {
				b.powers = append(b.powers, [3]int{i, j, l - i - j})
			}
		}
	}
	return
}

func (b *CellBasis) Dimension() int   { return len(b.powers) }
func (b *CellBasis) Degree() int      { return b.degree }
func (b *CellBasis) Powers() [][3]int { return b.powers }

func (b *CellBasis) transform(x geometry3D.Vec) geometry3D.Vec {
	return x.Sub(b.xT).Scale(1. / b.hT)
}

func (b *CellBasis) Function(i int, x geometry3D.Vec) float64 {
	var (
		y = b.transform(x)
		p = b.powers[i]
	)
	return utils.POW(y.X, p[0]) * utils.POW(y.Y, p[1]) * utils.POW(y.Z, p[2])
}

func (b *CellBasis) Gradient(i int, x geometry3D.Vec) (grad geometry3D.Vec) {
	var (
		y = b.transform(x)
		p = b.powers[i]
	)
	if p[0] != 0 {
		grad.X = float64(p[0]) * utils.POW(y.X, p[0]-1) * utils.POW(y.Y, p[1]) * utils.POW(y.Z, p[2])
	}
	if p[1] != 0 {
		grad.Y = utils.POW(y.X, p[0]) * float64(p[1]) * utils.POW(y.Y, p[1]-1) * utils.POW(y.Z, p[2])
	}
	if p[2] != 0 {
		grad.Z = utils.POW(y.X, p[0]) * utils.POW(y.Y, p[1]) * float64(p[2]) * utils.POW(y.Z, p[2]-1)
	}
	return grad.Scale(1. / b.hT)
}

//------------------------------------------------------------------------------
// Scalar monomial basis on a face
//------------------------------------------------------------------------------

// FaceBasis is the monomial basis of a planar face, in the 2D coordinates
// of the orthonormal in-plane frame spanned by the tangent of the face's
// first edge and the in-plane normal to that edge, rescaled by the face
// diameter.
type FaceBasis struct {
	degree int
	xF     geometry3D.Vec
	hF     float64
	nF     geometry3D.Vec
	jac    [2]geometry3D.Vec // rows of the scaled 2x3 projection Jacobian
	powers [][2]int
}

func NewFaceBasis(F *geometry3D.Face, degree int) (b *FaceBasis) {
	if degree < 0 {
		panic(fmt.Errorf("NewFaceBasis: negative degree %d", degree))
	}
	b = &FaceBasis{
		degree: degree,
		xF:     F.CenterMass(),
		hF:     F.Diam(),
		nF:     F.Normal(),
		powers: make([][2]int, 0, DimPface(degree)),
	}
	b.jac[0] = F.EdgeTangent(0).Scale(1. / b.hF)
	b.jac[1] = F.EdgeNormal(0).Scale(1. / b.hF)
	for l := 0; l <= degree; l++ {
		for i := 0; i <= l; i++ {
			b.powers = append(b.powers, [2]int{i, l - i})
		}
	}
	return
}

func (b *FaceBasis) Dimension() int   { return len(b.powers) }
func (b *FaceBasis) Degree() int      { return b.degree }
func (b *FaceBasis) Powers() [][2]int { return b.powers }

func (b *FaceBasis) transform(x geometry3D.Vec) (y0, y1 float64) {
	d := x.Sub(b.xF)
	return b.jac[0].Dot(d), b.jac[1].Dot(d)
}

func (b *FaceBasis) Function(i int, x geometry3D.Vec) float64 {
	var (
		p      = b.powers[i]
		y0, y1 = b.transform(x)
	)
	return utils.POW(y0, p[0]) * utils.POW(y1, p[1])
}

// Gradient lifts the 2D in-plane gradient back to ambient space through
// the transpose of the scaled projection Jacobian; it is tangent to the
// face plane.
func (b *FaceBasis) Gradient(i int, x geometry3D.Vec) geometry3D.Vec {
	var (
		p      = b.powers[i]
		y0, y1 = b.transform(x)
		g0, g1 float64
	)
	if p[0] != 0 {
		g0 = float64(p[0]) * utils.POW(y0, p[0]-1) * utils.POW(y1, p[1])
	}
	if p[1] != 0 {
		g1 = utils.POW(y0, p[0]) * float64(p[1]) * utils.POW(y1, p[1]-1)
	}
	return b.jac[0].Scale(g0).Add(b.jac[1].Scale(g1))
}

// Curl is the cross product of the lifted gradient with the face's unit
// normal, used for tangential differential operators.
func (b *FaceBasis) Curl(i int, x geometry3D.Vec) geometry3D.Vec {
	return b.Gradient(i, x).Cross(b.nF)
}

//------------------------------------------------------------------------------
// Scalar monomial basis on an edge
//------------------------------------------------------------------------------

// EdgeBasis is the monomial basis of an edge: powers of the rescaled
// signed distance to the edge midpoint along the unit tangent.
type EdgeBasis struct {
	degree int
	xE     geometry3D.Vec
	hE     float64
	tE     geometry3D.Vec
}

func NewEdgeBasis(E *geometry3D.Edge, degree int) (b *EdgeBasis) {
	if degree < 0 {
		panic(fmt.Errorf("NewEdgeBasis: negative degree %d", degree))
	}
	b = &EdgeBasis{
		degree: degree,
		xE:     E.CenterMass(),
		hE:     E.Diam(),
		tE:     E.Tangent(),
	}
	return
}

func (b *EdgeBasis) Dimension() int { return b.degree + 1 }
func (b *EdgeBasis) Degree() int    { return b.degree }

func (b *EdgeBasis) transform(x geometry3D.Vec) float64 {
	return x.Sub(b.xE).Dot(b.tE) / b.hE
}

func (b *EdgeBasis) Function(i int, x geometry3D.Vec) float64 {
	return utils.POW(b.transform(x), i)
}

func (b *EdgeBasis) Gradient(i int, x geometry3D.Vec) (grad geometry3D.Vec) {
	if i == 0 {
		return
	}
	return b.tE.Scale(float64(i) * utils.POW(b.transform(x), i-1) / b.hE)
}

//------------------------------------------------------------------------------
// A common notion of scalar product for sampled vector families
//------------------------------------------------------------------------------

// ScalarProduct reduces a family of vector samples to scalar samples by
// dotting every entry with a fixed ambient vector.
func ScalarProduct(basisQuad [][]geometry3D.Vec, v geometry3D.Vec) (R [][]float64) {
	R = make([][]float64, len(basisQuad))
	for i, row := range basisQuad {
		R[i] = make([]float64, len(row))
		for q, val := range row {
			R[i][q] = val.Dot(v)
		}
	}
	return
}

// VectorProduct crosses every entry of a family of vector samples with a
// fixed ambient vector.
func VectorProduct(basisQuad [][]geometry3D.Vec, v geometry3D.Vec) (R [][]geometry3D.Vec) {
	R = make([][]geometry3D.Vec, len(basisQuad))
	for i, row := range basisQuad {
		R[i] = make([]geometry3D.Vec, len(row))
		for q, val := range row {
			R[i][q] = val.Cross(v)
		}
	}
	return
}
