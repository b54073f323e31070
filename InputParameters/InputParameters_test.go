package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
Title: Projection test
MeshN: 4
K: 1
L: -1
ChoiceBasis: ON
DOEOffset: 2
`)
	var ip InputParameters3D
	require.NoError(t, ip.Parse(data))
	assert.Equal(t, "Projection test", ip.Title)
	assert.Equal(t, 4, ip.MeshN)
	assert.Equal(t, 1, ip.K)
	assert.Equal(t, -1, ip.L)
	assert.Equal(t, "ON", ip.ChoiceBasis)
	assert.Equal(t, 2, ip.DOEOffset)
}

func TestValidate(t *testing.T) {
	good := InputParameters3D{MeshN: 2, K: 0, L: 0, ChoiceBasis: "Mon"}
	assert.NoError(t, good.Validate())

	bad := good
	bad.MeshN = 0
	assert.Error(t, bad.Validate())

	bad = good
	bad.K = -1
	assert.Error(t, bad.Validate())

	bad = good
	bad.L = -2
	assert.Error(t, bad.Validate())

	bad = good
	bad.ChoiceBasis = "Lagrange"
	assert.Error(t, bad.Validate())
}
