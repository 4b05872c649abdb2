package streamvis

import (
	"github.com/gwflow/aquifem/geometry"
)

// CellTag classifies a wireframe cell box for display
type CellTag int

const (
	TagNeutral CellTag = iota
	TagTypeA
	TagTypeB
)

// CellBox is an 8-corner wireframe cell. Corners are in cyclic box order:
// corners 0-3 form the bottom 4-cycle, corners 4-7 the top 4-cycle, with
// corner i+4 directly above corner i.
type CellBox struct {
	Corners [8]geometry.Point
	Tag     CellTag
}

// Streamline is an ordered sequence of 3D points traced through the aquifer,
// optionally paired with the wireframe boxes of the cells it crosses.
type Streamline struct {
	Points []geometry.Point
	Boxes  []CellBox
}

// boxEdges wires a cell box as two 4-cycles plus four vertical edges. Any
// replacement renderer must keep this exact wiring to draw boxes correctly.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom cycle
	{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top cycle
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // vertical edges
}

// BoxEdges returns the wireframe edge list of a cell box
func BoxEdges() [12][2]int {
	return boxEdges
}

// BoxFromCell builds a cell box from corners in the lexicographic reference
// order used by the mesh, reordering each layer's (0,1,2,3) into the cyclic
// (0,1,3,2) walk the wireframe expects.
func BoxFromCell(corners []geometry.Point, tag CellTag) (cb CellBox) {
	cyclic := [8]int{0, 1, 3, 2, 4, 5, 7, 6}
	for i, c := range cyclic {
		cb.Corners[i] = corners[c]
	}
	cb.Tag = tag
	return
}
