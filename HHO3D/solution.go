package HHO3D

import (
	"fmt"
	"math"

	"github.com/polytopal/hho3d/geometry3D"
	"github.com/polytopal/hho3d/quadrature"
	"github.com/polytopal/hho3d/utils"
)

// Operations on hybrid vectors of degrees of freedom: all cell coefficient
// blocks first (in cell order), then all face coefficient blocks (in face
// order).

// CellOffset is the position of the first coefficient of cell iT in a
// hybrid vector.
func (hc *HybridCore) CellOffset(iT int) int { return iT * hc.nlocalCellDofs }

// FaceOffset is the position of the first coefficient of face iF in a
// hybrid vector.
func (hc *HybridCore) FaceOffset(iF int) int {
	return hc.ntotalCellDofs + iF*hc.nlocalFaceDofs
}

// Interpolate computes the L2 projection of f onto the hybrid space, using
// quadrature rules of exactness doe for all the local projections. For
// L = -1 the single cell coefficient is reconstructed as a weighted
// average of the zero-order face coefficients; the weights are the
// geometric sub-volume fractions of the cell, rescaled so they apply to
// basis coefficients, and reproduce constant functions exactly.
func (hc *HybridCore) Interpolate(f func(x geometry3D.Vec) float64, doe int) (Xh utils.Vector, err error) {
	Xh = utils.NewVector(hc.ntotalDofs)

	// Face projections
	for iF := 0; iF < hc.mesh.NFaces(); iF++ {
		var (
			F        = hc.mesh.Face(iF)
			qr       = quadrature.FaceRule(F, doe)
			phiFQuad = hc.FaceBasisQuad(iF, qr, hc.k)
			MF       = ComputeGramMatrix(phiFQuad, phiFQuad, qr, hc.nlocalFaceDofs, hc.nlocalFaceDofs, true)
			bF       = utils.NewVector(hc.nlocalFaceDofs)
		)
		for i := 0; i < hc.nlocalFaceDofs; i++ {
			for iqn, qn := range qr {
				bF.DataP[i] += qn.W * phiFQuad[i][iqn] * f(qn.Point)
			}
		}
		UF, errF := MF.CholeskySolve(bF)
		if errF != nil {
			return Xh, fmt.Errorf("projection on face %d: %w", iF, errF)
		}
		copy(Xh.DataP[hc.FaceOffset(iF):hc.FaceOffset(iF)+hc.nlocalFaceDofs], UF.DataP)
	}

	// Cell projections
	for iT := 0; iT < hc.mesh.NCells(); iT++ {
		var (
			T        = hc.mesh.Cell(iT)
			qr       = quadrature.CellRule(T, doe)
			phiTQuad = hc.CellBasisQuad(iT, qr, hc.lDeg)
			MT       = ComputeGramMatrix(phiTQuad, phiTQuad, qr, hc.nlocalCellDofs, hc.nlocalCellDofs, true)
			bT       = utils.NewVector(hc.nlocalCellDofs)
		)
		for i := 0; i < hc.nlocalCellDofs; i++ {
			for iqn, qn := range qr {
				bT.DataP[i] += qn.W * phiTQuad[i][iqn] * f(qn.Point)
			}
		}
		UT, errT := MT.CholeskySolve(bT)
		if errT != nil {
			return Xh, fmt.Errorf("projection on cell %d: %w", iT, errT)
		}
		copy(Xh.DataP[hc.CellOffset(iT):hc.CellOffset(iT)+hc.nlocalCellDofs], UT.DataP)

		// With L = -1 the cell value is not an independent unknown: replace
		// it with the proper average of the face values
		if hc.l == -1 {
			var (
				barycoefT = hc.ComputeWeights(iT)
				xT        = T.CenterMass()
				phiTCst   = hc.CellBasisValue(iT, 0, xT)
			)
			for ilF := 0; ilF < T.NFaces(); ilF++ {
				var (
					F       = T.Face(ilF)
					phiFCst = hc.FaceBasisValue(F.GlobalIndex(), 0, F.CenterMass())
				)
				barycoefT.DataP[ilF] *= phiFCst / phiTCst
			}
			Xh.DataP[iT] = 0
			for ilF := 0; ilF < T.NFaces(); ilF++ {
				iF := T.Face(ilF).GlobalIndex()
				Xh.DataP[iT] += barycoefT.DataP[ilF] * Xh.DataP[hc.FaceOffset(iF)]
			}
		}
	}
	return
}

// ComputeWeights returns the weights used to reconstruct the cell unknown
// of cell iT from its face unknowns when L = -1. They are the sub-volume
// fractions of the pyramids joining the cell center of mass to each face
// and sum to 1.
func (hc *HybridCore) ComputeWeights(iT int) (w utils.Vector) {
	fw := hc.mesh.Cell(iT).FaceWeights()
	return utils.NewVector(len(fw), fw)
}

// Restr extracts from a hybrid vector the unknowns local to cell iT: the
// cell's coefficient block followed by the blocks of its faces in local
// face order.
func (hc *HybridCore) Restr(Xh utils.Vector, iT int) (XTF utils.Vector) {
	if Xh.Len() != hc.ntotalDofs {
		panic(fmt.Errorf("Restr: vector length %d != ntotal_dofs %d", Xh.Len(), hc.ntotalDofs))
	}
	var (
		T      = hc.mesh.Cell(iT)
		nfaces = T.NFaces()
	)
	XTF = utils.NewVector(hc.nlocalCellDofs + nfaces*hc.nlocalFaceDofs)
	copy(XTF.DataP, Xh.DataP[hc.CellOffset(iT):hc.CellOffset(iT)+hc.nlocalCellDofs])
	for ilF := 0; ilF < nfaces; ilF++ {
		var (
			iF  = T.Face(ilF).GlobalIndex()
			dst = hc.nlocalCellDofs + ilF*hc.nlocalFaceDofs
		)
		copy(XTF.DataP[dst:dst+hc.nlocalFaceDofs], Xh.DataP[hc.FaceOffset(iF):hc.FaceOffset(iF)+hc.nlocalFaceDofs])
	}
	return
}

// EvaluateInCell evaluates the cell restriction of a hybrid vector at x.
func (hc *HybridCore) EvaluateInCell(Xh utils.Vector, iT int, x geometry3D.Vec) (v float64) {
	off := hc.CellOffset(iT)
	for i := 0; i < hc.nlocalCellDofs; i++ {
		v += Xh.DataP[off+i] * hc.CellBasisValue(iT, i, x)
	}
	return
}

// EvaluateInFace evaluates the face restriction of a hybrid vector at x.
func (hc *HybridCore) EvaluateInFace(Xh utils.Vector, iF int, x geometry3D.Vec) (v float64) {
	off := hc.FaceOffset(iF)
	for i := 0; i < hc.nlocalFaceDofs; i++ {
		v += Xh.DataP[off+i] * hc.FaceBasisValue(iF, i, x)
	}
	return
}

// L2Norm computes the L2 norm of a hybrid vector from its cell values,
// using the mass matrices stored at construction.
func (hc *HybridCore) L2Norm(Xh utils.Vector) float64 {
	var norm2 float64
	for iT := 0; iT < hc.mesh.NCells(); iT++ {
		var (
			off = hc.CellOffset(iT)
			uT  = utils.NewVector(hc.nlocalCellDofs, Xh.DataP[off:off+hc.nlocalCellDofs])
		)
		norm2 += uT.Dot(hc.mCellBasis[iT].MulVec(uT))
	}
	return math.Sqrt(norm2)
}

// H1Norm computes the discrete H1 seminorm of a hybrid vector from the
// gradients of its cell values.
func (hc *HybridCore) H1Norm(Xh utils.Vector) float64 {
	var norm2 float64
	for iT := 0; iT < hc.mesh.NCells(); iT++ {
		var (
			T   = hc.mesh.Cell(iT)
			qr  = quadrature.CellRule(T, 2*hc.lDeg+2)
			gq  = hc.CellGradBasisQuad(iT, qr, hc.lDeg)
			MG  = ComputeGramMatrixVecFull(gq, gq, qr, true)
			off = hc.CellOffset(iT)
			uT  = utils.NewVector(hc.nlocalCellDofs, Xh.DataP[off:off+hc.nlocalCellDofs])
		)
		norm2 += uT.Dot(MG.MulVec(uT))
	}
	return math.Sqrt(norm2)
}

// LinfFace returns the largest coefficient magnitude over all face basis
// functions, a cheap diagnostic of the face unknowns.
func (hc *HybridCore) LinfFace(Xh utils.Vector) (linf float64) {
	for _, val := range Xh.DataP[hc.ntotalCellDofs:] {
		if math.Abs(val) > linf {
			linf = math.Abs(val)
		}
	}
	return
}

// VertexValues evaluates a hybrid vector at the mesh vertices, averaging
// the reconstructed values over the incident cells (fromDofs = "cell") or
// faces (fromDofs = "face"). Intended for export, not for solving.
func (hc *HybridCore) VertexValues(Xh utils.Vector, fromDofs string) (vals utils.Vector) {
	vals = utils.NewVector(hc.mesh.NVertices())
	for iV := 0; iV < hc.mesh.NVertices(); iV++ {
		var (
			V   = hc.mesh.Vertex(iV)
			sum float64
		)
		switch fromDofs {
		case "cell":
			for _, iT := range V.Cells {
				sum += hc.EvaluateInCell(Xh, iT, V.Pos)
			}
			vals.DataP[iV] = sum / float64(len(V.Cells))
		case "face":
			for _, iF := range V.Faces {
				sum += hc.EvaluateInFace(Xh, iF, V.Pos)
			}
			vals.DataP[iV] = sum / float64(len(V.Faces))
		default:
			panic(fmt.Errorf("VertexValues: fromDofs = %q, want \"cell\" or \"face\"", fromDofs))
		}
	}
	return
}
