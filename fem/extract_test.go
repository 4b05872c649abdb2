package fem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwflow/aquifem/geometry"
	"github.com/gwflow/aquifem/mesh"
)

func TestMeshFE(t *testing.T) {
	fe := &MeshFE{Dim: 3}
	assert.Equal(t, 8, fe.BaseDoFsPerCell())
	assert.Equal(t, 24, fe.DoFsPerCell())

	pts := fe.UnitSupportPoints()
	require.Len(t, pts, 8)
	assert.Equal(t, geometry.Point{0, 0, 0}, pts[0])
	assert.Equal(t, geometry.Point{1, 0, 0}, pts[1])
	assert.Equal(t, geometry.Point{0, 1, 0}, pts[2])
	assert.Equal(t, geometry.Point{1, 1, 1}, pts[7])

	// Component-major within each node
	assert.Equal(t, 0, fe.ComponentToSystemIndex(0, 0))
	assert.Equal(t, 2, fe.ComponentToSystemIndex(2, 0))
	assert.Equal(t, 3*7+1, fe.ComponentToSystemIndex(1, 7))
}

func TestExtractMeshNodesDedup(t *testing.T) {
	// Two cells side by side in x share four corner nodes; a single worker
	// owning both must register each shared node exactly once
	m, err := mesh.BuildBoxMesh(3, geometry.Point{0, 0, 0}, geometry.Point{2, 1, 0}, []int{2, 1, 1})
	require.NoError(t, err)

	fe := &MeshFE{Dim: 3}
	dh := NewDoFHandler(m, fe)
	nodes := ExtractMeshNodes(0, dh)

	require.Len(t, nodes.Cells, 2)
	// 12 distinct vertices, not 16 (cell, corner) visits
	assert.Len(t, nodes.Points, 12)
	assert.Equal(t, []int{0, 1}, nodes.Elems)

	// Compact ids are dense and sequential from 0
	for id := 0; id < len(nodes.Points); id++ {
		assert.Contains(t, nodes.Points, id)
	}

	// The shared corners resolve to identical compact ids in both cells:
	// corner 1 of cell 0 is corner 0 of cell 1, etc.
	for _, pair := range [][2]int{{1, 0}, {3, 2}, {5, 4}, {7, 6}} {
		assert.Equal(t, nodes.Cells[0][pair[0]], nodes.Cells[1][pair[1]])
	}

	// Recorded coordinates match the mesh vertices
	for cell, elem := range nodes.Elems {
		for corner, v := range m.Elements[elem] {
			id := nodes.Cells[cell][corner]
			assert.Equal(t, m.Vertices[v], nodes.Points[id])
		}
	}
}

func TestExtractMeshNodesPartitioned(t *testing.T) {
	// Two workers split the two cells; each extracts only its own cells and
	// both see the shared face nodes, whose reconciliation is left external
	m, err := mesh.BuildBoxMesh(3, geometry.Point{0, 0, 0}, geometry.Point{2, 1, 0}, []int{2, 1, 1})
	require.NoError(t, err)
	m.PartitionContiguous(2)

	fe := &MeshFE{Dim: 3}
	dh := NewDoFHandler(m, fe)

	left := ExtractMeshNodes(0, dh)
	right := ExtractMeshNodes(1, dh)

	require.Len(t, left.Cells, 1)
	require.Len(t, right.Cells, 1)
	assert.Len(t, left.Points, 8)
	assert.Len(t, right.Points, 8)

	// Both workers hold the shared face coordinates redundantly
	shared := map[geometry.Point]bool{}
	for _, p := range left.Points {
		shared[p] = true
	}
	redundant := 0
	for _, p := range right.Points {
		if shared[p] {
			redundant++
		}
	}
	assert.Equal(t, 4, redundant)
}

func TestExtractTraversalOrderDeterministic(t *testing.T) {
	m, err := mesh.BuildBoxMesh(2, geometry.Point{0, 0, 0}, geometry.Point{3, 1, 0}, []int{3, 2})
	require.NoError(t, err)

	fe := &MeshFE{Dim: 2}
	dh := NewDoFHandler(m, fe)

	a := ExtractMeshNodes(0, dh)
	b := ExtractMeshNodes(0, dh)
	assert.Equal(t, a.Points, b.Points)
	assert.Equal(t, a.Cells, b.Cells)

	// First cell's first corner always claims compact id 0
	assert.Equal(t, 0, a.Cells[0][0])
}
