package HHO3D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polytopal/hho3d/geometry3D"
)

func TestBasisDimensions(t *testing.T) {
	for m := 0; m <= 6; m++ {
		assert.Equal(t, (m+1)*(m+2)*(m+3)/6, DimPcell(m))
		assert.Equal(t, (m+1)*(m+2)/2, DimPface(m))
		assert.Equal(t, m+1, DimPedge(m))
	}
}

func TestCellBasisEnumeration(t *testing.T) {
	m := geometry3D.CubeMesh(1)
	b := NewCellBasis(m.Cell(0), 1)
	require.Equal(t, DimPcell(1), b.Dimension())
	assert.Equal(t, [][3]int{
		{0, 0, 0},
		{0, 0, 1},
		{0, 1, 0},
		{1, 0, 0},
	}, b.Powers())

	// Dimension matches the generated tuples for all degrees
	for deg := 0; deg <= 4; deg++ {
		bd := NewCellBasis(m.Cell(0), deg)
		assert.Equal(t, DimPcell(deg), len(bd.Powers()))
	}
}

func TestFaceBasisEnumeration(t *testing.T) {
	m := geometry3D.CubeMesh(1)
	b := NewFaceBasis(m.Face(0), 1)
	require.Equal(t, DimPface(1), b.Dimension())
	assert.Equal(t, [][2]int{
		{0, 0},
		{0, 1},
		{1, 0},
	}, b.Powers())
}

func TestSlotZeroIsConstant(t *testing.T) {
	m := geometry3D.CubeMesh(1)
	pts := []geometry3D.Vec{
		{X: 0.1, Y: 0.2, Z: 0.3},
		{X: 0.9, Y: 0.5, Z: 0.1},
		{X: 0.5, Y: 0.5, Z: 0.5},
	}
	for deg := 0; deg <= 3; deg++ {
		bases := []ScalarBasis{
			NewCellBasis(m.Cell(0), deg),
			NewFaceBasis(m.Face(0), deg),
			NewEdgeBasis(m.Edge(0), deg),
		}
		for ib, b := range bases {
			for _, x := range pts {
				assert.InDeltaf(t, 1, b.Function(0, x), 1.e-14, "basis %d deg %d", ib, deg)
				assert.InDeltaf(t, 0, b.Gradient(0, x).Norm(), 1.e-14, "basis %d deg %d", ib, deg)
			}
		}
	}
}

// Gradients checked against central finite differences in ambient space
func TestCellBasisGradientFD(t *testing.T) {
	m := geometry3D.SingleTetMesh(
		geometry3D.Vec{X: 0, Y: 0, Z: 0},
		geometry3D.Vec{X: 1.2, Y: 0, Z: 0},
		geometry3D.Vec{X: 0.1, Y: 0.9, Z: 0},
		geometry3D.Vec{X: 0.2, Y: 0.3, Z: 1.1},
	)
	b := NewCellBasis(m.Cell(0), 3)
	x := geometry3D.Vec{X: 0.25, Y: 0.2, Z: 0.3}
	h := 1.e-6
	for i := 0; i < b.Dimension(); i++ {
		g := b.Gradient(i, x)
		for k := 0; k < DimSpace; k++ {
			e := geometry3D.Axis(k).Scale(h)
			fd := (b.Function(i, x.Add(e)) - b.Function(i, x.Sub(e))) / (2 * h)
			assert.InDeltaf(t, fd, g.Component(k), 1.e-6, "slot %d axis %d", i, k)
		}
	}
}

func TestFaceBasisGradientInPlane(t *testing.T) {
	m := geometry3D.CubeMesh(1)
	for iF := 0; iF < m.NFaces(); iF++ {
		F := m.Face(iF)
		b := NewFaceBasis(F, 2)
		x := F.CenterMass().Add(F.EdgeTangent(0).Scale(0.1))
		for i := 0; i < b.Dimension(); i++ {
			g := b.Gradient(i, x)
			// lifted gradient is tangent to the face plane
			assert.InDeltaf(t, 0, g.Dot(F.Normal()), 1.e-13, "face %d slot %d", iF, i)
			// curl is the in-plane rotation of the gradient
			c := b.Curl(i, x)
			assert.InDeltaf(t, g.Norm(), c.Norm(), 1.e-13, "face %d slot %d", iF, i)
			assert.InDeltaf(t, 0, c.Dot(g), 1.e-13, "face %d slot %d", iF, i)
		}
	}
}

func TestFaceBasisGradientFD(t *testing.T) {
	m := geometry3D.CubeMesh(1)
	F := m.Face(0)
	b := NewFaceBasis(F, 3)
	// stay inside the face plane when differencing
	x := F.CenterMass().Add(F.EdgeTangent(0).Scale(0.15)).Add(F.EdgeNormal(0).Scale(-0.1))
	h := 1.e-6
	dirs := []geometry3D.Vec{F.EdgeTangent(0), F.EdgeNormal(0)}
	for i := 0; i < b.Dimension(); i++ {
		g := b.Gradient(i, x)
		for _, d := range dirs {
			e := d.Scale(h)
			fd := (b.Function(i, x.Add(e)) - b.Function(i, x.Sub(e))) / (2 * h)
			assert.InDeltaf(t, fd, g.Dot(d), 1.e-6, "slot %d", i)
		}
	}
}

func TestEdgeBasis(t *testing.T) {
	m := geometry3D.CubeMesh(1)
	E := m.Edge(0)
	b := NewEdgeBasis(E, 3)
	require.Equal(t, 4, b.Dimension())

	x := E.CenterMass().Add(E.Tangent().Scale(0.3))
	for i := 1; i < b.Dimension(); i++ {
		// gradient is along the tangent with the power-rule magnitude
		g := b.Gradient(i, x)
		s := x.Sub(E.CenterMass()).Dot(E.Tangent()) / E.Diam()
		want := float64(i) * math.Pow(s, float64(i-1)) / E.Diam()
		assert.InDeltaf(t, want, g.Dot(E.Tangent()), 1.e-12, "slot %d", i)
		assert.InDeltaf(t, math.Abs(want), g.Norm(), 1.e-12, "slot %d", i)
	}
}

func TestScalarVectorProducts(t *testing.T) {
	bq := [][]geometry3D.Vec{
		{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}},
		{{X: 0, Y: 0, Z: 3}, {X: 1, Y: 1, Z: 1}},
	}
	v := geometry3D.Vec{X: 0, Y: 0, Z: 1}

	sp := ScalarProduct(bq, v)
	assert.Equal(t, [][]float64{{0, 0}, {3, 1}}, sp)

	vp := VectorProduct(bq, v)
	assert.Equal(t, geometry3D.Vec{X: 0, Y: -1, Z: 0}, vp[0][0])
	assert.Equal(t, geometry3D.Vec{X: 2, Y: 0, Z: 0}, vp[0][1])
}
