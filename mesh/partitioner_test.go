package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwflow/aquifem/geometry"
)

func TestBuildMetisGraph(t *testing.T) {
	m, err := BuildBoxMesh(3, geometry.Point{0, 0, 0}, geometry.Point{8, 4, 0}, []int{4, 2, 2})
	require.NoError(t, err)

	mp := NewMeshPartitioner(m, DefaultPartitionConfig(2))
	xadj, adjncy, vwgt, adjwgt := mp.buildMetisGraph()

	require.Len(t, xadj, m.NumElements+1)
	assert.Equal(t, int32(0), xadj[0])
	for i := 1; i < len(xadj); i++ {
		assert.GreaterOrEqual(t, xadj[i], xadj[i-1])
	}
	assert.Equal(t, int(xadj[len(xadj)-1]), len(adjncy))
	assert.Len(t, adjwgt, len(adjncy))

	// Hexes weigh 8
	require.Len(t, vwgt, m.NumElements)
	for _, w := range vwgt {
		assert.Equal(t, int32(8), w)
	}

	// The adjacency is symmetric: each edge appears from both endpoints
	degree := make(map[[2]int]int)
	for elem := 0; elem < m.NumElements; elem++ {
		for idx := xadj[elem]; idx < xadj[elem+1]; idx++ {
			degree[[2]int{elem, int(adjncy[idx])}]++
		}
	}
	for edge, count := range degree {
		assert.Equal(t, 1, count)
		assert.Equal(t, 1, degree[[2]int{edge[1], edge[0]}])
	}
}

func TestPartitionContiguous(t *testing.T) {
	m, err := BuildBoxMesh(2, geometry.Point{0, 0, 0}, geometry.Point{10, 1, 0}, []int{10, 1})
	require.NoError(t, err)

	m.PartitionContiguous(3)
	require.Len(t, m.EToP, m.NumElements)

	counts := make([]int, 3)
	for elem, p := range m.EToP {
		counts[p]++
		assert.True(t, m.LocallyOwned(elem, p))
		assert.False(t, m.LocallyOwned(elem, (p+1)%3))
	}
	// 10 elements over 3 workers: max imbalance of one
	assert.ElementsMatch(t, []int{4, 3, 3}, counts)

	// Partition ranges are contiguous in mesh iteration order
	for elem := 1; elem < m.NumElements; elem++ {
		assert.GreaterOrEqual(t, m.EToP[elem], m.EToP[elem-1])
	}

	// Before partitioning everything belongs to worker 0
	m2, err := BuildBoxMesh(2, geometry.Point{0, 0, 0}, geometry.Point{1, 1, 0}, []int{1, 1})
	require.NoError(t, err)
	assert.True(t, m2.LocallyOwned(0, 0))
	assert.False(t, m2.LocallyOwned(0, 1))
}
