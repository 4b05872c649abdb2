package fem

import (
	"github.com/gwflow/aquifem/geometry"
)

// MeshNodes is the deduplicated set of geometric deformation nodes owned by
// one worker. Compact ids are assigned sequentially in traversal order, so
// the numbering is a deterministic function of the mesh iteration order.
type MeshNodes struct {
	Points map[int]geometry.Point // compact id -> node coordinate
	Cells  [][]int                // per owned cell: compact ids in corner order
	Elems  []int                  // global element id of each owned cell
}

// ExtractMeshNodes traverses the cells owned by partition partID and collects
// one entry per geometric deformation node. Per cell corner it gathers the
// support-point coordinates and the global DoF index of each component, then
// keys deduplication on the vertical-component (last dimension) index: the
// first sighting assigns the next compact id and records the coordinate,
// repeats are skipped. Nodes shared with cells owned by other workers are
// extracted redundantly on each side; reconciling those duplicates is the
// caller's concern.
func ExtractMeshNodes(partID int, dh *DoFHandler) (mn *MeshNodes) {
	var (
		m   = dh.Mesh
		fe  = dh.FE
		dim = fe.Dim
	)
	mn = &MeshNodes{
		Points: make(map[int]geometry.Point),
	}

	seen := make(map[int]int) // vertical dof index -> compact id
	pCnt := 0
	for elem := 0; elem < m.NumElements; elem++ {
		if !m.LocallyOwned(elem, partID) {
			continue
		}
		var (
			cellDoFs      = dh.CellDoFIndices(elem)
			supportPoints = dh.SupportPointCoords(elem)
			cellIDs       = make([]int, fe.BaseDoFsPerCell())
		)
		for node := 0; node < fe.BaseDoFsPerCell(); node++ {
			var (
				currentNode geometry.Point
				currentDoFs = make([]int, dim)
			)
			for dir := 0; dir < dim; dir++ {
				currentDoFs[dir] = cellDoFs[fe.ComponentToSystemIndex(dir, node)]
				currentNode[dir] = supportPoints[node][dir]
			}
			key := currentDoFs[dim-1]
			id, exists := seen[key]
			if !exists {
				id = pCnt
				seen[key] = id
				mn.Points[id] = currentNode
				pCnt++
			}
			cellIDs[node] = id
		}
		mn.Cells = append(mn.Cells, cellIDs)
		mn.Elems = append(mn.Elems, elem)
	}
	return
}
