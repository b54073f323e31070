package HHO3D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polytopal/hho3d/geometry3D"
	"github.com/polytopal/hho3d/utils"
)

func TestHybridCoreDofCounts(t *testing.T) {
	m := geometry3D.CubeMesh(2)
	hc, err := NewHybridCore(m, 1, 1, BasisMonomial)
	require.NoError(t, err)

	assert.Equal(t, 1, hc.K())
	assert.Equal(t, 1, hc.L())
	assert.Equal(t, 1, hc.Ldeg())
	assert.Equal(t, 4, hc.NlocalCellDofs())
	assert.Equal(t, 3, hc.NlocalFaceDofs())
	assert.Equal(t, DimPcell(2), hc.NhighorderDofs())
	assert.Equal(t, DimPcell(2)-1, hc.NgradientDofs())
	assert.Equal(t, 4*m.NCells(), hc.NtotalCellDofs())
	assert.Equal(t, 3*m.NFaces(), hc.NtotalFaceDofs())
	assert.Equal(t, 3*m.NInternalFaces(), hc.NinternalFaceDofs())
	assert.Equal(t, 3*m.NBoundaryFaces(), hc.NboundaryFaceDofs())
	assert.Equal(t, hc.NtotalCellDofs()+hc.NtotalFaceDofs(), hc.NtotalDofs())

	// L = -1 keeps a single reconstructed cell coefficient per cell
	hcm, err := NewHybridCore(m, 0, -1, BasisMonomial)
	require.NoError(t, err)
	assert.Equal(t, -1, hcm.L())
	assert.Equal(t, 0, hcm.Ldeg())
	assert.Equal(t, 1, hcm.NlocalCellDofs())
}

func TestNewHybridCoreBadArgs(t *testing.T) {
	m := geometry3D.CubeMesh(1)
	assert.Panics(t, func() { NewHybridCore(m, -1, 0, BasisMonomial) })
	assert.Panics(t, func() { NewHybridCore(m, 0, -2, BasisMonomial) })
	_, err := NewHybridCore(m, 0, 0, "Legendre")
	assert.Error(t, err)
}

func TestInterpolateConstant(t *testing.T) {
	m := geometry3D.CubeMesh(2)
	one := func(x geometry3D.Vec) float64 { return 1 }
	for _, choice := range []string{BasisMonomial, BasisOrthonormal} {
		hc, err := NewHybridCore(m, 0, 0, choice)
		require.NoError(t, err)
		Xh, err := hc.Interpolate(one, 2)
		require.NoError(t, err)

		for iT := 0; iT < m.NCells(); iT++ {
			v := hc.EvaluateInCell(Xh, iT, m.Cell(iT).CenterMass())
			assert.InDeltaf(t, 1, v, 1.e-12, "%s cell %d", choice, iT)
		}
		for iF := 0; iF < m.NFaces(); iF++ {
			v := hc.EvaluateInFace(Xh, iF, m.Face(iF).CenterMass())
			assert.InDeltaf(t, 1, v, 1.e-12, "%s face %d", choice, iF)
		}

		// ||1||_L2 over the unit cube
		assert.InDeltaf(t, 1, hc.L2Norm(Xh), 1.e-12, "%s", choice)
		assert.InDeltaf(t, 0, hc.H1Norm(Xh), 1.e-10, "%s", choice)

		vv := hc.VertexValues(Xh, "cell")
		for iV := 0; iV < m.NVertices(); iV++ {
			assert.InDeltaf(t, 1, vv.AtVec(iV), 1.e-12, "%s vertex %d", choice, iV)
		}
	}
}

// The projection reproduces polynomials of the basis degree exactly
func TestInterpolateLinearExact(t *testing.T) {
	m := geometry3D.SingleTetMesh(
		geometry3D.Vec{X: 0, Y: 0, Z: 0},
		geometry3D.Vec{X: 1.2, Y: 0, Z: 0},
		geometry3D.Vec{X: 0.1, Y: 1, Z: 0},
		geometry3D.Vec{X: 0.2, Y: 0.3, Z: 1.1},
	)
	f := func(x geometry3D.Vec) float64 { return 2*x.X - x.Y + 0.5*x.Z + 1 }
	pts := []geometry3D.Vec{
		m.Cell(0).CenterMass(),
		{X: 0.3, Y: 0.2, Z: 0.1},
		{X: 0.25, Y: 0.25, Z: 0.25},
	}
	for _, choice := range []string{BasisMonomial, BasisOrthonormal} {
		hc, err := NewHybridCore(m, 1, 1, choice)
		require.NoError(t, err)
		Xh, err := hc.Interpolate(f, 4)
		require.NoError(t, err)

		for _, x := range pts {
			assert.InDeltaf(t, f(x), hc.EvaluateInCell(Xh, 0, x), 1.e-11, "%s", choice)
		}
		for iF := 0; iF < m.NFaces(); iF++ {
			xF := m.Face(iF).CenterMass()
			assert.InDeltaf(t, f(xF), hc.EvaluateInFace(Xh, iF, xF), 1.e-11, "%s face %d", choice, iF)
		}

		// exact gradient magnitude: |grad f|^2 integrated over the cell
		g2 := 2*2 + 1*1 + 0.5*0.5
		assert.InDeltaf(t, math.Sqrt(g2*m.Cell(0).Measure()), hc.H1Norm(Xh), 1.e-11, "%s", choice)
	}
}

func TestInterpolateCellLessReconstruction(t *testing.T) {
	m := geometry3D.CubeMesh(2)
	f := func(x geometry3D.Vec) float64 { return x.X - 2*x.Y + 0.7*x.Z + 3 }
	hc, err := NewHybridCore(m, 0, -1, BasisMonomial)
	require.NoError(t, err)
	Xh, err := hc.Interpolate(f, 3)
	require.NoError(t, err)

	for iT := 0; iT < m.NCells(); iT++ {
		T := m.Cell(iT)
		// the cell coefficient is the stored weighted average of the face
		// coefficients
		var want float64
		w := hc.ComputeWeights(iT)
		for ilF := 0; ilF < T.NFaces(); ilF++ {
			iF := T.Face(ilF).GlobalIndex()
			want += w.AtVec(ilF) * Xh.AtVec(hc.FaceOffset(iF))
		}
		assert.InDeltaf(t, want, Xh.AtVec(hc.CellOffset(iT)), 1.e-13, "cell %d", iT)
		// cube cells: the face-center average of a linear function is its
		// cell-center value
		assert.InDeltaf(t, f(T.CenterMass()), Xh.AtVec(hc.CellOffset(iT)), 1.e-12, "cell %d", iT)
	}

	// constants are reproduced exactly by the reconstruction weights
	Xc, err := hc.Interpolate(func(x geometry3D.Vec) float64 { return 42 }, 3)
	require.NoError(t, err)
	for iT := 0; iT < m.NCells(); iT++ {
		assert.InDeltaf(t, 42, Xc.AtVec(hc.CellOffset(iT)), 1.e-12, "cell %d", iT)
	}
}

func TestRestrLayout(t *testing.T) {
	m := geometry3D.CubeMesh(2)
	hc, err := NewHybridCore(m, 1, 0, BasisMonomial)
	require.NoError(t, err)

	// fill with recognizable values: position index
	Xh := makeIota(hc.NtotalDofs())
	iT := 3
	T := m.Cell(iT)
	XTF := hc.Restr(Xh, iT)
	require.Equal(t, hc.NlocalCellDofs()+T.NFaces()*hc.NlocalFaceDofs(), XTF.Len())

	for i := 0; i < hc.NlocalCellDofs(); i++ {
		assert.Equal(t, float64(hc.CellOffset(iT)+i), XTF.AtVec(i))
	}
	for ilF := 0; ilF < T.NFaces(); ilF++ {
		iF := T.Face(ilF).GlobalIndex()
		for i := 0; i < hc.NlocalFaceDofs(); i++ {
			assert.Equal(t, float64(hc.FaceOffset(iF)+i),
				XTF.AtVec(hc.NlocalCellDofs()+ilF*hc.NlocalFaceDofs()+i))
		}
	}

	assert.Panics(t, func() { hc.Restr(makeIota(3), 0) })
}

func TestBasisChoicesAgree(t *testing.T) {
	m := geometry3D.CubeMesh(2)
	f := func(x geometry3D.Vec) float64 {
		return math.Sin(math.Pi*x.X) * math.Sin(math.Pi*x.Y) * math.Sin(math.Pi*x.Z)
	}
	doe := 7

	hcMon, err := NewHybridCore(m, 1, 1, BasisMonomial)
	require.NoError(t, err)
	hcON, err := NewHybridCore(m, 1, 1, BasisOrthonormal)
	require.NoError(t, err)

	XMon, err := hcMon.Interpolate(f, doe)
	require.NoError(t, err)
	XON, err := hcON.Interpolate(f, doe)
	require.NoError(t, err)

	// the projection is basis independent: same function, same norms
	assert.InDeltaf(t, hcMon.L2Norm(XMon), hcON.L2Norm(XON), 1.e-10, "")
	assert.InDeltaf(t, hcMon.H1Norm(XMon), hcON.H1Norm(XON), 1.e-9, "")
	for iT := 0; iT < m.NCells(); iT++ {
		x := m.Cell(iT).CenterMass()
		assert.InDeltaf(t, hcMon.EvaluateInCell(XMon, iT, x),
			hcON.EvaluateInCell(XON, iT, x), 1.e-11, "cell %d", iT)
	}

	assert.Greater(t, hcMon.LinfFace(XMon), 0.)
}

func TestOrthonormalMassIsIdentity(t *testing.T) {
	m := geometry3D.CubeMesh(1)
	hc, err := NewHybridCore(m, 2, 1, BasisOrthonormal)
	require.NoError(t, err)
	for iT := 0; iT < m.NCells(); iT++ {
		assertIdentity(t, hc.CellMassMatrix(iT), 1.e-10)
	}
	for iF := 0; iF < m.NFaces(); iF++ {
		assertIdentity(t, hc.FaceMassMatrix(iF), 1.e-10)
	}
}

func TestVertexValuesLinear(t *testing.T) {
	m := geometry3D.CubeMesh(2)
	f := func(x geometry3D.Vec) float64 { return x.X + x.Y - x.Z }
	hc, err := NewHybridCore(m, 1, 1, BasisMonomial)
	require.NoError(t, err)
	Xh, err := hc.Interpolate(f, 4)
	require.NoError(t, err)

	vv := hc.VertexValues(Xh, "cell")
	for iV := 0; iV < m.NVertices(); iV++ {
		assert.InDeltaf(t, f(m.Vertex(iV).Pos), vv.AtVec(iV), 1.e-11, "vertex %d", iV)
	}

	// face averaging only sees the in-plane part; exact for vertices whose
	// incident faces all contain them, still linear there
	vvF := hc.VertexValues(Xh, "face")
	for iV := 0; iV < m.NVertices(); iV++ {
		assert.InDeltaf(t, f(m.Vertex(iV).Pos), vvF.AtVec(iV), 1.e-11, "vertex %d", iV)
	}

	assert.Panics(t, func() { hc.VertexValues(Xh, "edge") })
}

func TestIntegrateOverDomain(t *testing.T) {
	m := geometry3D.CubeMesh(2)
	hc, err := NewHybridCore(m, 0, 0, BasisMonomial)
	require.NoError(t, err)
	vol := hc.IntegrateOverDomain(func(x geometry3D.Vec) float64 { return 1 })
	assert.InDeltaf(t, 1, vol, 1.e-12, "")

	got := hc.IntegrateOverCell(0, func(x geometry3D.Vec) float64 { return 1 })
	assert.InDeltaf(t, m.Cell(0).Measure(), got, 1.e-13, "")

	var area float64
	hc.QuadratureOverFace(0, func(iqn int, x geometry3D.Vec, w float64) { area += w })
	assert.InDeltaf(t, m.Face(0).Measure(), area, 1.e-13, "")
}

func TestGlobalMassMatrix(t *testing.T) {
	m := geometry3D.CubeMesh(2)
	hc, err := NewHybridCore(m, 0, 0, BasisMonomial)
	require.NoError(t, err)

	M := hc.GlobalMassMatrix()
	r, c := M.Dims()
	require.Equal(t, hc.NtotalDofs(), r)
	require.Equal(t, hc.NtotalDofs(), c)

	// K = L = 0 monomials: the matrix is diagonal, cell entries hold cell
	// measures, face entries face measures
	for iT := 0; iT < m.NCells(); iT++ {
		assert.InDeltaf(t, m.Cell(iT).Measure(), M.At(hc.CellOffset(iT), hc.CellOffset(iT)), 1.e-13, "cell %d", iT)
	}
	for iF := 0; iF < m.NFaces(); iF++ {
		assert.InDeltaf(t, m.Face(iF).Measure(), M.At(hc.FaceOffset(iF), hc.FaceOffset(iF)), 1.e-13, "face %d", iF)
	}
}

func makeIota(n int) (v utils.Vector) {
	v = utils.NewVector(n)
	for i := 0; i < n; i++ {
		v.DataP[i] = float64(i)
	}
	return
}
