package mesh

import (
	"fmt"
	"sort"

	"github.com/gwflow/aquifem/geometry"
)

// ElementType represents different element types
type ElementType int

const (
	Line ElementType = iota
	Quad
	Hex
)

func (e ElementType) String() string {
	return [...]string{"Line", "Quad", "Hex"}[e]
}

// VerticesPerElement returns the corner count of the reference element
func (e ElementType) VerticesPerElement() int {
	return [...]int{2, 4, 8}[e]
}

// Face represents a face of an element
type Face struct {
	Vertices []int // Sorted vertex indices
	Element  int   // Parent element
	LocalID  int   // Local face ID within element
}

// Mesh represents a layered aquifer mesh with all connectivity. Element
// corners follow the lexicographic reference numbering over the unit cell:
// in 2D corner 0=(0,0), 1=(1,0), 2=(0,1), 3=(1,1); in 3D corners 0..3 span
// the bottom layer in the same pattern and corners 4..7 sit directly above.
type Mesh struct {
	Dim int

	// Geometry
	Vertices []geometry.Point

	// Element data
	Elements     [][]int       // Element to vertex connectivity [nelems][nverts_per_elem]
	ElementTypes []ElementType // Element type for each element

	// Connectivity (built during initialization)
	EToE [][]int // Element to element connectivity [nelems][nfaces_per_elem]
	EToF [][]int // Element to face connectivity [nelems][nfaces_per_elem]
	EToP []int   // Element to partition mapping (set after partitioning)

	// Face data
	Faces       []Face         // All unique faces in mesh
	FaceMap     map[string]int // Map from sorted vertex string to face ID
	BoundaryIDs [][]int        // Per element, per local face: boundary id or -1 for interior

	// Mesh statistics
	NumElements int
	NumVertices int
	NumFaces    int
}

// NewMesh creates an empty mesh of the given spatial dimension
func NewMesh(dim int) *Mesh {
	return &Mesh{
		Dim:     dim,
		FaceMap: make(map[string]int),
	}
}

// ElementFaces returns the face vertex lists of an element in local face
// order. Face vertices are listed in lexicographic face order, not cyclic
// order, so the top quad of a hex comes back as (v1,v2,v3,v4) with the
// diagonal running v1-v4. The top face is always the last local face.
func ElementFaces(elemType ElementType, vertices []int) [][]int {
	switch elemType {
	case Quad:
		return [][]int{
			{vertices[0], vertices[2]}, // Face 0 (left, x=0)
			{vertices[1], vertices[3]}, // Face 1 (right, x=1)
			{vertices[0], vertices[1]}, // Face 2 (bottom)
			{vertices[2], vertices[3]}, // Face 3 (top)
		}
	case Hex:
		return [][]int{
			{vertices[0], vertices[2], vertices[4], vertices[6]}, // Face 0 (x=0)
			{vertices[1], vertices[3], vertices[5], vertices[7]}, // Face 1 (x=1)
			{vertices[0], vertices[1], vertices[4], vertices[5]}, // Face 2 (y=0)
			{vertices[2], vertices[3], vertices[6], vertices[7]}, // Face 3 (y=1)
			{vertices[0], vertices[1], vertices[2], vertices[3]}, // Face 4 (bottom)
			{vertices[4], vertices[5], vertices[6], vertices[7]}, // Face 5 (top)
		}
	default:
		return [][]int{}
	}
}

// TopFaceID returns the local face index of the top face for the given
// dimension (3 for quads, 5 for hexes). Boundary ids assigned by
// AssignBoundaryIDs equal the local face index, so this is also the top
// boundary id.
func TopFaceID(dim int) int {
	return 2*dim - 1
}

// FaceVertices returns the physical coordinates of a local face of an element
func (m *Mesh) FaceVertices(elem, localFace int) (verts []geometry.Point) {
	fv := ElementFaces(m.ElementTypes[elem], m.Elements[elem])[localFace]
	verts = make([]geometry.Point, len(fv))
	for i, v := range fv {
		verts[i] = m.Vertices[v]
	}
	return
}

// CellVertices returns the physical corner coordinates of an element in
// reference corner order
func (m *Mesh) CellVertices(elem int) (verts []geometry.Point) {
	verts = make([]geometry.Point, len(m.Elements[elem]))
	for i, v := range m.Elements[elem] {
		verts[i] = m.Vertices[v]
	}
	return
}

// BuildConnectivity builds element-to-element and face connectivity
func (m *Mesh) BuildConnectivity() {
	m.EToE = make([][]int, m.NumElements)
	m.EToF = make([][]int, m.NumElements)

	for elemID := 0; elemID < m.NumElements; elemID++ {
		elemType := m.ElementTypes[elemID]
		vertices := m.Elements[elemID]

		faceVertices := ElementFaces(elemType, vertices)

		m.EToE[elemID] = make([]int, len(faceVertices))
		m.EToF[elemID] = make([]int, len(faceVertices))

		// Initialize to -1 (boundary)
		for i := range m.EToE[elemID] {
			m.EToE[elemID][i] = -1
			m.EToF[elemID][i] = -1
		}

		for localFaceID, faceVerts := range faceVertices {
			// Create sorted vertex key for face
			sorted := make([]int, len(faceVerts))
			copy(sorted, faceVerts)
			sort.Ints(sorted)

			key := fmt.Sprintf("%v", sorted)

			if faceID, exists := m.FaceMap[key]; exists {
				// Face already exists - this is an interior face
				face := &m.Faces[faceID]
				neighborElem := face.Element
				neighborLocalID := face.LocalID

				m.EToE[elemID][localFaceID] = neighborElem
				m.EToE[neighborElem][neighborLocalID] = elemID

				m.EToF[elemID][localFaceID] = faceID
				m.EToF[neighborElem][neighborLocalID] = faceID
			} else {
				face := Face{
					Vertices: sorted,
					Element:  elemID,
					LocalID:  localFaceID,
				}

				faceID := len(m.Faces)
				m.Faces = append(m.Faces, face)
				m.FaceMap[key] = faceID
				m.EToF[elemID][localFaceID] = faceID
			}
		}
	}

	m.NumFaces = len(m.Faces)
}

// AssignBoundaryIDs marks every boundary face with its local face index,
// which pins the top boundary to TopFaceID(dim). Interior faces get -1.
// BuildConnectivity must have been called first.
func (m *Mesh) AssignBoundaryIDs() {
	m.BoundaryIDs = make([][]int, m.NumElements)
	for elem := 0; elem < m.NumElements; elem++ {
		m.BoundaryIDs[elem] = make([]int, len(m.EToE[elem]))
		for iface, neighbor := range m.EToE[elem] {
			if neighbor < 0 {
				m.BoundaryIDs[elem][iface] = iface
			} else {
				m.BoundaryIDs[elem][iface] = -1
			}
		}
	}
}

// LocallyOwned reports whether an element belongs to the given partition.
// Before partitioning every element belongs to partition 0.
func (m *Mesh) LocallyOwned(elem, partID int) bool {
	if len(m.EToP) == 0 {
		return partID == 0
	}
	return m.EToP[elem] == partID
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Vertices: %d\n", m.NumVertices)
	fmt.Printf("  Elements: %d\n", m.NumElements)
	fmt.Printf("  Faces: %d\n", m.NumFaces)

	typeCounts := make(map[ElementType]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	fmt.Printf("  Element types:\n")
	for t, count := range typeCounts {
		fmt.Printf("    %s: %d\n", t, count)
	}

	boundaryFaces := 0
	for i := 0; i < m.NumElements; i++ {
		for _, neighbor := range m.EToE[i] {
			if neighbor < 0 {
				boundaryFaces++
			}
		}
	}
	fmt.Printf("  Boundary faces: %d\n", boundaryFaces)
}
