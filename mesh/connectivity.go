package mesh

import (
	"sort"

	"github.com/james-bowman/sparse"
)

// VerticalAdjacency assembles the node-to-node vertical connectivity of the
// mesh as a sparse matrix: entry (a,b) is nonzero when some element connects
// vertex a to vertex b through the reference-cell vertical corner pairing.
// The relation is symmetric since the corner tables are their own inverse.
func (m *Mesh) VerticalAdjacency() *sparse.CSR {
	nv := m.NumVertices
	spAdj := sparse.NewDOK(nv, nv)
	for elem := 0; elem < m.NumElements; elem++ {
		verts := m.Elements[elem]
		for corner, v := range verts {
			for _, nc := range VerticalNeighbors(corner, m.Dim) {
				spAdj.Set(v, verts[nc], 1)
			}
		}
	}
	return spAdj.ToCSR()
}

// NodeColumns groups the mesh vertices into vertical columns, ordered bottom
// to top, one column per horizontal node location. The columns are recovered
// by walking the vertical adjacency along increasing reference elevation, so
// this must run before ApplyElevations rewrites the vertical coordinate.
func (m *Mesh) NodeColumns() (columns [][]int) {
	var (
		adj  = m.VerticalAdjacency()
		up   = make([]int, m.NumVertices)
		down = make([]int, m.NumVertices)
	)
	for v := range up {
		up[v], down[v] = -1, -1
	}
	for v := 0; v < m.NumVertices; v++ {
		adj.DoRowNonZero(v, func(_, nbr int, _ float64) {
			if m.Vertices[nbr][m.Dim-1] > m.Vertices[v][m.Dim-1] {
				up[v] = nbr
			} else {
				down[v] = nbr
			}
		})
	}
	for v := 0; v < m.NumVertices; v++ {
		if down[v] != -1 || up[v] == -1 {
			continue // not the bottom node of a column
		}
		col := []int{v}
		for next := up[v]; next != -1; next = up[next] {
			col = append(col, next)
		}
		columns = append(columns, col)
	}
	// Deterministic column order keyed by the bottom node id
	sort.Slice(columns, func(i, j int) bool { return columns[i][0] < columns[j][0] })
	return
}
