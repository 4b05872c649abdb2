package mesh

import (
	"fmt"

	"github.com/gwflow/aquifem/geometry"
)

// The vertical coordinate of a freshly built mesh spans [0, refElevation].
// The true land surface and aquifer base are applied afterwards by
// ApplyElevations, once the vertical node columns are known.
const refElevation = 100.0

// ElevationFunc gives an elevation at a horizontal location. In 2D only x is
// meaningful; y is passed as 0.
type ElevationFunc func(x, y float64) float64

// ConstantElevation returns an ElevationFunc for a flat surface
func ConstantElevation(z float64) ElevationFunc {
	return func(x, y float64) float64 { return z }
}

// SlopedElevation returns an ElevationFunc for a planar sloped surface
// z0 + gx*x + gy*y, used for sloped water tables and outcrops
func SlopedElevation(z0, gx, gy float64) ElevationFunc {
	return func(x, y float64) float64 { return z0 + gx*x + gy*y }
}

// BuildBoxMesh creates a subdivided box mesh. nCells holds the cell count per
// direction; the count for the vertical (last) direction is taken from the
// caller's vertical discretization. The horizontal extent comes from
// leftLower and length, while the vertical coordinate is set to the reference
// span [0, refElevation] and reshaped later by ApplyElevations.
func BuildBoxMesh(dim int, leftLower, length geometry.Point, nCells []int) (*Mesh, error) {
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("unsupported mesh dimension: %d", dim)
	}
	if len(nCells) < dim {
		return nil, fmt.Errorf("need %d cell counts, got %d", dim, len(nCells))
	}
	for i := 0; i < dim; i++ {
		if nCells[i] < 1 {
			return nil, fmt.Errorf("cell count %d in direction %d", nCells[i], i)
		}
	}

	m := NewMesh(dim)

	// Node counts per direction, padded to 3D so one loop covers both cases
	n := [3]int{1, 1, 1}
	for i := 0; i < dim; i++ {
		n[i] = nCells[i] + 1
	}

	lower := leftLower
	upper := leftLower.Add(length)
	lower[dim-1] = 0
	upper[dim-1] = refElevation

	// Vertices in lexicographic order: index = i + n[0]*(j + n[1]*k)
	m.Vertices = make([]geometry.Point, n[0]*n[1]*n[2])
	for k := 0; k < n[2]; k++ {
		for j := 0; j < n[1]; j++ {
			for i := 0; i < n[0]; i++ {
				var p geometry.Point
				idx := [3]int{i, j, k}
				for d := 0; d < dim; d++ {
					p[d] = lower[d] + (upper[d]-lower[d])*float64(idx[d])/float64(n[d]-1)
				}
				m.Vertices[i+n[0]*(j+n[1]*k)] = p
			}
		}
	}
	m.NumVertices = len(m.Vertices)

	vid := func(i, j, k int) int { return i + n[0]*(j+n[1]*k) }
	elemType := Quad
	if dim == 3 {
		elemType = Hex
	}
	for k := 0; k < max(1, n[2]-1); k++ {
		for j := 0; j < n[1]-1; j++ {
			for i := 0; i < n[0]-1; i++ {
				var verts []int
				if dim == 2 {
					verts = []int{
						vid(i, j, 0), vid(i+1, j, 0),
						vid(i, j+1, 0), vid(i+1, j+1, 0),
					}
				} else {
					verts = []int{
						vid(i, j, k), vid(i+1, j, k),
						vid(i, j+1, k), vid(i+1, j+1, k),
						vid(i, j, k+1), vid(i+1, j, k+1),
						vid(i, j+1, k+1), vid(i+1, j+1, k+1),
					}
				}
				m.Elements = append(m.Elements, verts)
				m.ElementTypes = append(m.ElementTypes, elemType)
			}
		}
	}
	m.NumElements = len(m.Elements)

	m.BuildConnectivity()
	m.AssignBoundaryIDs()
	return m, nil
}

// ExtrudeMesh turns a 2D quad footprint mesh into a layered 3D hex mesh with
// nLayers element layers. Layer l of the footprint vertex v becomes vertex
// v + l*NumVertices, so bottom corners of each hex keep the footprint's
// corner order and top corners sit at +4, matching the reference numbering.
func ExtrudeMesh(footprint *Mesh, nLayers int) (*Mesh, error) {
	if footprint.Dim != 2 {
		return nil, fmt.Errorf("can only extrude a 2D footprint, got dim %d", footprint.Dim)
	}
	if nLayers < 1 {
		return nil, fmt.Errorf("need at least one layer, got %d", nLayers)
	}
	for _, t := range footprint.ElementTypes {
		if t != Quad {
			return nil, fmt.Errorf("footprint contains non-quad element type %s", t)
		}
	}

	m := NewMesh(3)
	nv2d := footprint.NumVertices

	m.Vertices = make([]geometry.Point, nv2d*(nLayers+1))
	for l := 0; l <= nLayers; l++ {
		z := refElevation * float64(l) / float64(nLayers)
		for v, p := range footprint.Vertices {
			m.Vertices[v+l*nv2d] = geometry.Point{p[0], p[1], z}
		}
	}
	m.NumVertices = len(m.Vertices)

	for l := 0; l < nLayers; l++ {
		for _, quad := range footprint.Elements {
			verts := make([]int, 8)
			for i := 0; i < 4; i++ {
				verts[i] = quad[i] + l*nv2d
				verts[i+4] = quad[i] + (l+1)*nv2d
			}
			m.Elements = append(m.Elements, verts)
			m.ElementTypes = append(m.ElementTypes, Hex)
		}
	}
	m.NumElements = len(m.Elements)

	m.BuildConnectivity()
	m.AssignBoundaryIDs()
	return m, nil
}

// ApplyElevations reshapes the reference vertical span onto the physical
// aquifer: each node of a vertical column ends up at
// bottom + vertDiscr[layer]*(top-bottom) evaluated at the column's horizontal
// location. vertDiscr holds the relative elevation per node layer, increasing
// from 0 to 1; nil means uniform spacing. Must be called while the mesh still
// carries the reference vertical coordinate, as the columns are recovered
// from it.
func (m *Mesh) ApplyElevations(vertDiscr []float64, top, bottom ElevationFunc) error {
	columns := m.NodeColumns()
	if len(columns) == 0 {
		return fmt.Errorf("mesh has no vertical columns")
	}
	for _, col := range columns {
		if vertDiscr != nil && len(vertDiscr) != len(col) {
			return fmt.Errorf("vertical discretization has %d entries, columns have %d nodes",
				len(vertDiscr), len(col))
		}
		var x, y float64
		x = m.Vertices[col[0]][0]
		if m.Dim == 3 {
			y = m.Vertices[col[0]][1]
		}
		b, t := bottom(x, y), top(x, y)
		for layer, v := range col {
			rel := float64(layer) / float64(len(col)-1)
			if vertDiscr != nil {
				rel = vertDiscr[layer]
			}
			m.Vertices[v][m.Dim-1] = b + rel*(t-b)
		}
	}
	return nil
}
