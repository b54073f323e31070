package HHO3D

import (
	"github.com/james-bowman/sparse"
)

// GlobalMassMatrix assembles the block-diagonal mass matrix of the whole
// hybrid space (cell blocks then face blocks, following the hybrid vector
// layout) into a sparse CSR matrix. Consumers use it to weigh residuals or
// build right-hand sides without touching per-entity matrices.
func (hc *HybridCore) GlobalMassMatrix() *sparse.CSR {
	dok := sparse.NewDOK(hc.ntotalDofs, hc.ntotalDofs)
	for iT := 0; iT < hc.mesh.NCells(); iT++ {
		var (
			off = hc.CellOffset(iT)
			M   = hc.mCellBasis[iT]
		)
		for i := 0; i < hc.nlocalCellDofs; i++ {
			for j := 0; j < hc.nlocalCellDofs; j++ {
				dok.Set(off+i, off+j, M.At(i, j))
			}
		}
	}
	for iF := 0; iF < hc.mesh.NFaces(); iF++ {
		var (
			off = hc.FaceOffset(iF)
			M   = hc.mFaceBasis[iF]
		)
		for i := 0; i < hc.nlocalFaceDofs; i++ {
			for j := 0; j < hc.nlocalFaceDofs; j++ {
				dok.Set(off+i, off+j, M.At(i, j))
			}
		}
	}
	return dok.ToCSR()
}
