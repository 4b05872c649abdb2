package mesh

// Reference-cell corner connectivity, tabulated per corner for the
// lexicographic quad and hex numbering. The vertical tables pair each bottom
// corner with the corner directly above it and are their own inverse; the
// full tables list every reference-edge neighbor.
var (
	quadVertical = [4][]int{{2}, {3}, {0}, {1}}
	hexVertical  = [8][]int{{4}, {5}, {6}, {7}, {0}, {1}, {2}, {3}}

	quadConnected = [4][]int{
		{1, 2},
		{0, 3},
		{0, 3},
		{1, 2},
	}
	hexConnected = [8][]int{
		{1, 2, 4},
		{0, 3, 5},
		{0, 3, 6},
		{1, 2, 7},
		{0, 5, 6},
		{1, 4, 7},
		{2, 4, 7},
		{3, 5, 6},
	}
)

// ConnectedCorners returns the reference-cell corners connected to corner by
// an edge. With all set it returns every edge neighbor (2 for quads, 3 for
// hexes); otherwise only the vertical neighbor. A corner or dimension outside
// the tables yields an empty result - callers rely on "no neighbor" being a
// valid outcome, not an error.
func ConnectedCorners(corner, dim int, all bool) []int {
	switch dim {
	case 2:
		if corner < 0 || corner >= len(quadConnected) {
			return nil
		}
		if all {
			return quadConnected[corner]
		}
		return quadVertical[corner]
	case 3:
		if corner < 0 || corner >= len(hexConnected) {
			return nil
		}
		if all {
			return hexConnected[corner]
		}
		return hexVertical[corner]
	}
	return nil
}

// VerticalNeighbors returns the corner(s) vertically connected to corner in
// the reference cell, the default mode of ConnectedCorners.
func VerticalNeighbors(corner, dim int) []int {
	return ConnectedCorners(corner, dim, false)
}
