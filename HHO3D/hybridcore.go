package HHO3D

import (
	"fmt"

	"github.com/polytopal/hho3d/geometry3D"
	"github.com/polytopal/hho3d/quadrature"
	"github.com/polytopal/hho3d/utils"
)

// Basis choices. Orthonormalisation costs extra work per evaluation and is
// worth it for high degrees or badly distorted cells, where it can change
// the observed convergence rate.
const (
	BasisMonomial    = "Mon"
	BasisOrthonormal = "ON"
)

// HybridCore owns one basis family per cell and per face of a mesh and
// provides integration, L2 projection and evaluation over the hybrid space
// of cell and face polynomials. All per-entity bases, mass matrices and
// change-of-basis matrices are built at construction and are read-only for
// the lifetime of the object.
type HybridCore struct {
	mesh *geometry3D.Mesh

	k    int // degree of the face polynomials
	l    int // degree of the cell polynomials, -1 for no independent cell unknown
	lDeg int // equal to l, except 0 when l = -1

	choiceBasis string

	nlocalCellDofs    int
	nlocalFaceDofs    int
	nhighorderDofs    int
	ngradientDofs     int
	ntotalCellDofs    int
	ntotalFaceDofs    int
	ninternalFaceDofs int
	nboundaryFaceDofs int
	ntotalDofs        int

	cellMonomials []*CellBasis
	faceMonomials []*FaceBasis

	// Change-of-basis per entity; zero-value (nil M) means raw monomials
	cellTransform []utils.Matrix
	faceTransform []utils.Matrix

	// Mass matrices of the chosen basis families
	mCellBasis []utils.Matrix
	mFaceBasis []utils.Matrix

	// Evaluation strategy, fixed at construction by choiceBasis
	cellValue func(iT, i int, x geometry3D.Vec) float64
	cellGrad  func(iT, i int, x geometry3D.Vec) geometry3D.Vec
	faceValue func(iF, i int, x geometry3D.Vec) float64
}

// NewHybridCore builds the bases of degree L in the cells (0 when L = -1)
// and K on the faces, one mass matrix per entity, and, for the "ON"
// choice, one orthonormalizing change-of-basis per entity.
func NewHybridCore(mesh *geometry3D.Mesh, K, L int, choiceBasis string) (hc *HybridCore, err error) {
	if K < 0 {
		panic(fmt.Errorf("NewHybridCore: face degree K = %d must be >= 0", K))
	}
	if L < -1 {
		panic(fmt.Errorf("NewHybridCore: cell degree L = %d must be >= -1", L))
	}
	if choiceBasis != BasisMonomial && choiceBasis != BasisOrthonormal {
		return nil, fmt.Errorf("unknown basis choice %q, want %q or %q",
			choiceBasis, BasisMonomial, BasisOrthonormal)
	}

	hc = &HybridCore{
		mesh:        mesh,
		k:           K,
		l:           L,
		lDeg:        max(L, 0),
		choiceBasis: choiceBasis,
	}
	hc.nlocalCellDofs = DimPcell(hc.lDeg)
	hc.nlocalFaceDofs = DimPface(K)
	hc.nhighorderDofs = DimPcell(K + 1)
	hc.ngradientDofs = DimPcell(K+1) - 1
	hc.ntotalCellDofs = hc.nlocalCellDofs * mesh.NCells()
	hc.ntotalFaceDofs = hc.nlocalFaceDofs * mesh.NFaces()
	hc.ninternalFaceDofs = hc.nlocalFaceDofs * mesh.NInternalFaces()
	hc.nboundaryFaceDofs = hc.nlocalFaceDofs * mesh.NBoundaryFaces()
	hc.ntotalDofs = hc.ntotalCellDofs + hc.ntotalFaceDofs

	hc.cellMonomials = make([]*CellBasis, mesh.NCells())
	hc.cellTransform = make([]utils.Matrix, mesh.NCells())
	hc.mCellBasis = make([]utils.Matrix, mesh.NCells())
	for iT := 0; iT < mesh.NCells(); iT++ {
		T := mesh.Cell(iT)
		mon := NewCellBasis(T, hc.lDeg)
		qr := quadrature.CellRule(T, 2*hc.lDeg+2)
		bq := EvalBasisQuad(mon, qr, mon.Dimension())
		M := ComputeGramMatrixFull(bq, bq, qr, true)
		hc.cellMonomials[iT] = mon
		if choiceBasis == BasisOrthonormal {
			var G utils.Matrix
			if G, err = ChangeOfBasis(M); err != nil {
				return nil, fmt.Errorf("cell %d: %w", iT, err)
			}
			hc.cellTransform[iT] = G
			hc.mCellBasis[iT] = G.Mul(M).Mul(G.Transpose())
		} else {
			hc.mCellBasis[iT] = M
		}
	}

	hc.faceMonomials = make([]*FaceBasis, mesh.NFaces())
	hc.faceTransform = make([]utils.Matrix, mesh.NFaces())
	hc.mFaceBasis = make([]utils.Matrix, mesh.NFaces())
	for iF := 0; iF < mesh.NFaces(); iF++ {
		F := mesh.Face(iF)
		mon := NewFaceBasis(F, K)
		qr := quadrature.FaceRule(F, 2*K+2)
		bq := EvalBasisQuad(mon, qr, mon.Dimension())
		M := ComputeGramMatrixFull(bq, bq, qr, true)
		hc.faceMonomials[iF] = mon
		if choiceBasis == BasisOrthonormal {
			var G utils.Matrix
			if G, err = ChangeOfBasis(M); err != nil {
				return nil, fmt.Errorf("face %d: %w", iF, err)
			}
			hc.faceTransform[iF] = G
			hc.mFaceBasis[iF] = G.Mul(M).Mul(G.Transpose())
		} else {
			hc.mFaceBasis[iF] = M
		}
	}

	if choiceBasis == BasisOrthonormal {
		hc.cellValue = hc.transformedCellValue
		hc.cellGrad = hc.transformedCellGradient
		hc.faceValue = hc.transformedFaceValue
	} else {
		hc.cellValue = hc.monomialCellValue
		hc.cellGrad = hc.monomialCellGradient
		hc.faceValue = hc.monomialFaceValue
	}
	return
}

func (hc *HybridCore) Mesh() *geometry3D.Mesh { return hc.mesh }
func (hc *HybridCore) K() int                 { return hc.k }
func (hc *HybridCore) L() int                 { return hc.l }
func (hc *HybridCore) Ldeg() int              { return hc.lDeg }
func (hc *HybridCore) ChoiceBasis() string    { return hc.choiceBasis }

func (hc *HybridCore) NlocalCellDofs() int    { return hc.nlocalCellDofs }
func (hc *HybridCore) NlocalFaceDofs() int    { return hc.nlocalFaceDofs }
func (hc *HybridCore) NhighorderDofs() int    { return hc.nhighorderDofs }
func (hc *HybridCore) NgradientDofs() int     { return hc.ngradientDofs }
func (hc *HybridCore) NtotalCellDofs() int    { return hc.ntotalCellDofs }
func (hc *HybridCore) NtotalFaceDofs() int    { return hc.ntotalFaceDofs }
func (hc *HybridCore) NinternalFaceDofs() int { return hc.ninternalFaceDofs }
func (hc *HybridCore) NboundaryFaceDofs() int { return hc.nboundaryFaceDofs }
func (hc *HybridCore) NtotalDofs() int        { return hc.ntotalDofs }

// CellMonomials returns the raw monomial basis of cell iT.
func (hc *HybridCore) CellMonomials(iT int) *CellBasis { return hc.cellMonomials[iT] }

// FaceMonomials returns the raw monomial basis of face iF.
func (hc *HybridCore) FaceMonomials(iF int) *FaceBasis { return hc.faceMonomials[iF] }

// CellMassMatrix returns the mass matrix of the chosen basis of cell iT.
func (hc *HybridCore) CellMassMatrix(iT int) utils.Matrix { return hc.mCellBasis[iT] }

// FaceMassMatrix returns the mass matrix of the chosen basis of face iF.
func (hc *HybridCore) FaceMassMatrix(iF int) utils.Matrix { return hc.mFaceBasis[iF] }

//------------------------------------------------------------------------------
// Pointwise evaluation of the chosen basis families
//------------------------------------------------------------------------------

func (hc *HybridCore) monomialCellValue(iT, i int, x geometry3D.Vec) float64 {
	return hc.cellMonomials[iT].Function(i, x)
}

func (hc *HybridCore) monomialCellGradient(iT, i int, x geometry3D.Vec) geometry3D.Vec {
	return hc.cellMonomials[iT].Gradient(i, x)
}

func (hc *HybridCore) monomialFaceValue(iF, i int, x geometry3D.Vec) float64 {
	return hc.faceMonomials[iF].Function(i, x)
}

// The change-of-basis is lower triangular, so orthonormal function i only
// involves monomials 0..i.
func (hc *HybridCore) transformedCellValue(iT, i int, x geometry3D.Vec) (v float64) {
	var (
		mon = hc.cellMonomials[iT]
		G   = hc.cellTransform[iT]
	)
	for j := 0; j <= i; j++ {
		v += G.At(i, j) * mon.Function(j, x)
	}
	return
}

func (hc *HybridCore) transformedCellGradient(iT, i int, x geometry3D.Vec) (g geometry3D.Vec) {
	var (
		mon = hc.cellMonomials[iT]
		G   = hc.cellTransform[iT]
	)
	for j := 0; j <= i; j++ {
		g = g.Add(mon.Gradient(j, x).Scale(G.At(i, j)))
	}
	return
}

func (hc *HybridCore) transformedFaceValue(iF, i int, x geometry3D.Vec) (v float64) {
	var (
		mon = hc.faceMonomials[iF]
		G   = hc.faceTransform[iF]
	)
	for j := 0; j <= i; j++ {
		v += G.At(i, j) * mon.Function(j, x)
	}
	return
}

// CellBasisValue evaluates basis function i of cell iT at x.
func (hc *HybridCore) CellBasisValue(iT, i int, x geometry3D.Vec) float64 {
	return hc.cellValue(iT, i, x)
}

// CellBasisGradient evaluates the gradient of basis function i of cell iT
// at x. Gradients are indexed like the basis functions, so index 0 is
// identically zero.
func (hc *HybridCore) CellBasisGradient(iT, i int, x geometry3D.Vec) geometry3D.Vec {
	return hc.cellGrad(iT, i, x)
}

// FaceBasisValue evaluates basis function i of face iF at x.
func (hc *HybridCore) FaceBasisValue(iF, i int, x geometry3D.Vec) float64 {
	return hc.faceValue(iF, i, x)
}

//------------------------------------------------------------------------------
// Basis sampling at quadrature nodes
//------------------------------------------------------------------------------

// CellBasisQuad samples the chosen cell basis functions up to the given
// degree at the nodes of qr.
func (hc *HybridCore) CellBasisQuad(iT int, qr quadrature.Rule, degree int) (bq [][]float64) {
	n := DimPcell(degree)
	bq = make([][]float64, n)
	for i := 0; i < n; i++ {
		bq[i] = make([]float64, len(qr))
		for iqn, qn := range qr {
			bq[i][iqn] = hc.cellValue(iT, i, qn.Point)
		}
	}
	return
}

// CellGradBasisQuad samples the gradients of the chosen cell basis
// functions up to the given degree at the nodes of qr.
func (hc *HybridCore) CellGradBasisQuad(iT int, qr quadrature.Rule, degree int) (gq [][]geometry3D.Vec) {
	n := DimPcell(degree)
	gq = make([][]geometry3D.Vec, n)
	for i := 0; i < n; i++ {
		gq[i] = make([]geometry3D.Vec, len(qr))
		for iqn, qn := range qr {
			gq[i][iqn] = hc.cellGrad(iT, i, qn.Point)
		}
	}
	return
}

// FaceBasisQuad samples the chosen face basis functions up to the given
// degree at the nodes of qr.
func (hc *HybridCore) FaceBasisQuad(iF int, qr quadrature.Rule, degree int) (bq [][]float64) {
	n := DimPface(degree)
	bq = make([][]float64, n)
	for i := 0; i < n; i++ {
		bq[i] = make([]float64, len(qr))
		for iqn, qn := range qr {
			bq[i][iqn] = hc.faceValue(iF, i, qn.Point)
		}
	}
	return
}

//------------------------------------------------------------------------------
// 'Easy' integration routines. Expensive - they regenerate quadrature
// rules on every call - so keep them out of hot loops.
//------------------------------------------------------------------------------

// QuadratureOverCell feeds f the nodes of a one-shot quadrature rule over
// cell iT at exactness 2*Ldeg+2.
func (hc *HybridCore) QuadratureOverCell(iT int, f func(iqn int, x geometry3D.Vec, w float64)) {
	qr := quadrature.CellRule(hc.mesh.Cell(iT), 2*hc.lDeg+2)
	for iqn, qn := range qr {
		f(iqn, qn.Point, qn.W)
	}
}

// QuadratureOverFace feeds f the nodes of a one-shot quadrature rule over
// face iF at exactness 2*K+2.
func (hc *HybridCore) QuadratureOverFace(iF int, f func(iqn int, x geometry3D.Vec, w float64)) {
	qr := quadrature.FaceRule(hc.mesh.Face(iF), 2*hc.k+2)
	for iqn, qn := range qr {
		f(iqn, qn.Point, qn.W)
	}
}

// IntegrateOverCell integrates f over cell iT.
func (hc *HybridCore) IntegrateOverCell(iT int, f func(x geometry3D.Vec) float64) (ans float64) {
	hc.QuadratureOverCell(iT, func(iqn int, x geometry3D.Vec, w float64) {
		ans += w * f(x)
	})
	return
}

// IntegrateOverFace integrates f over face iF.
func (hc *HybridCore) IntegrateOverFace(iF int, f func(x geometry3D.Vec) float64) (ans float64) {
	hc.QuadratureOverFace(iF, func(iqn int, x geometry3D.Vec, w float64) {
		ans += w * f(x)
	})
	return
}

// IntegrateOverDomain integrates f over all cells.
func (hc *HybridCore) IntegrateOverDomain(f func(x geometry3D.Vec) float64) (ans float64) {
	for iT := 0; iT < hc.mesh.NCells(); iT++ {
		ans += hc.IntegrateOverCell(iT, f)
	}
	return
}
