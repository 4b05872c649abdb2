package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAquiferProperties(t *testing.T) {
	data := []byte(`
Title: "Test Aquifer"
Dim: 3
GeomType: BOX
LeftLowerPoint: [0., 0.]
Length: [5000., 3000.]
Nxyz: [50, 30]
VertDiscr: [0., 0.2, 0.5, 1.]
TopElevation: 30.
TopSlope: [0.001, 0.]
BottomElevation: -270.
NumPartitions: 4
RechargeRate: 0.00037
`)
	ap := &AquiferProperties{}
	require.NoError(t, ap.Parse(data))
	require.NoError(t, ap.Validate())

	assert.Equal(t, "Test Aquifer", ap.Title)
	assert.Equal(t, 3, ap.Dim)
	assert.Equal(t, 3, ap.NLayers())
	gx, gy := ap.TopSlopes()
	assert.Equal(t, 0.001, gx)
	assert.Equal(t, 0., gy)
	gx, gy = ap.BottomSlopes()
	assert.Equal(t, 0., gx)
	assert.Equal(t, 0., gy)
}

func TestValidateAquiferProperties(t *testing.T) {
	base := func() *AquiferProperties {
		return &AquiferProperties{
			Dim:            3,
			GeomType:       "BOX",
			LeftLowerPoint: []float64{0, 0, 0},
			Length:         []float64{1, 1, 1},
			Nxyz:           []int{1, 1, 1},
		}
	}

	assert.NoError(t, base().Validate())

	{
		ap := base()
		ap.Dim = 4
		assert.Error(t, ap.Validate())
	}
	{
		ap := base()
		ap.GeomType = "SPHERE"
		assert.Error(t, ap.Validate())
	}
	{ // Horizontal-only entries are the canonical BOX deck form
		ap := base()
		ap.LeftLowerPoint = []float64{0, 0}
		ap.Length = []float64{1, 1}
		ap.Nxyz = []int{1, 1}
		assert.NoError(t, ap.Validate())
	}
	{
		ap := base()
		ap.Nxyz = []int{1}
		assert.Error(t, ap.Validate())
	}
	{
		ap := base()
		ap.Nxyz = []int{1, 0}
		assert.Error(t, ap.Validate())
	}
	{
		ap := base()
		ap.GeomType = "FILE"
		assert.Error(t, ap.Validate()) // no mesh file
		ap.InputMeshFile = "footprint.tria"
		assert.NoError(t, ap.Validate())
		ap.Dim = 2
		assert.Error(t, ap.Validate()) // FILE is 3D only
	}
	{
		ap := base()
		ap.VertDiscr = []float64{0, 0.5, 0.5, 1}
		assert.Error(t, ap.Validate())
	}
}

func TestNLayersDefault(t *testing.T) {
	ap := &AquiferProperties{}
	assert.Equal(t, 1, ap.NLayers())
	ap.VertDiscr = []float64{0, 1}
	assert.Equal(t, 1, ap.NLayers())
	ap.VertDiscr = []float64{0, 0.3, 1}
	assert.Equal(t, 2, ap.NLayers())
}
