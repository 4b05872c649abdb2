package fem

import (
	"github.com/gwflow/aquifem/geometry"
	"github.com/gwflow/aquifem/mesh"
)

// MeshFE describes the vector-valued Q1 deformation field used to track the
// moving mesh: one unknown per spatial component at every cell corner.
type MeshFE struct {
	Dim int
}

// BaseDoFsPerCell is the number of scalar support points per cell (the
// corner count of the reference element)
func (fe *MeshFE) BaseDoFsPerCell() int {
	return 1 << fe.Dim
}

// DoFsPerCell is the total unknown count per cell across all components
func (fe *MeshFE) DoFsPerCell() int {
	return fe.Dim * fe.BaseDoFsPerCell()
}

// UnitSupportPoints returns the reference-cell location of each scalar
// support point, in lexicographic corner order
func (fe *MeshFE) UnitSupportPoints() (pts []geometry.Point) {
	pts = make([]geometry.Point, fe.BaseDoFsPerCell())
	for corner := range pts {
		for d := 0; d < fe.Dim; d++ {
			if corner>>d&1 == 1 {
				pts[corner][d] = 1
			}
		}
	}
	return
}

// ComponentToSystemIndex maps (component, scalar node) to the cell-local
// system index of the corresponding unknown
func (fe *MeshFE) ComponentToSystemIndex(comp, node int) int {
	return node*fe.Dim + comp
}

// DoFHandler numbers the deformation unknowns over a mesh. Global numbering
// is vertex-major: vertex v, component c gets index v*Dim + c, so the index
// of the vertical component doubles as a stable per-node key.
type DoFHandler struct {
	FE   *MeshFE
	Mesh *mesh.Mesh

	cellDoFs [][]int
}

func NewDoFHandler(m *mesh.Mesh, fe *MeshFE) (dh *DoFHandler) {
	dh = &DoFHandler{
		FE:       fe,
		Mesh:     m,
		cellDoFs: make([][]int, m.NumElements),
	}
	for elem := 0; elem < m.NumElements; elem++ {
		dofs := make([]int, fe.DoFsPerCell())
		for node, v := range m.Elements[elem] {
			for comp := 0; comp < fe.Dim; comp++ {
				dofs[fe.ComponentToSystemIndex(comp, node)] = v*fe.Dim + comp
			}
		}
		dh.cellDoFs[elem] = dofs
	}
	return
}

// NDoFs is the global unknown count
func (dh *DoFHandler) NDoFs() int {
	return dh.Mesh.NumVertices * dh.FE.Dim
}

// CellDoFIndices returns the global indices of a cell's unknowns in
// cell-local system order
func (dh *DoFHandler) CellDoFIndices(elem int) []int {
	return dh.cellDoFs[elem]
}

// SupportPointCoords returns the physical coordinates of a cell's scalar
// support points, obtained by pushing the unit support points through the
// cell mapping
func (dh *DoFHandler) SupportPointCoords(elem int) (pts []geometry.Point) {
	mapper := MappingQ1{Dim: dh.FE.Dim}
	unit := dh.FE.UnitSupportPoints()
	pts = make([]geometry.Point, len(unit))
	for i, u := range unit {
		pts[i] = mapper.TransformUnitToReal(dh.Mesh, elem, u)
	}
	return
}
