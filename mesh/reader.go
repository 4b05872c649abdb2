package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gwflow/aquifem/geometry"
)

// Read2DFootprint reads the 2D horizontal footprint mesh of an aquifer from a
// plain text file:
//
//	Nvert Nelem
//	x y          (Nvert lines)
//	a b c d      (Nelem lines, quad corners in counterclockwise cyclic order)
//
// Cells are converted from the file's cyclic corner order to the reference
// lexicographic order, with negatively oriented cells inverted first.
func Read2DFootprint(filename string) (*Mesh, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open footprint mesh: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	fields, err := scanLine(scanner)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(fields) < 2 {
		return nil, fmt.Errorf("header needs vertex and element counts, got %q", fields)
	}
	nVert, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("bad vertex count: %w", err)
	}
	nElem, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("bad element count: %w", err)
	}

	m := NewMesh(2)
	m.Vertices = make([]geometry.Point, nVert)
	for i := 0; i < nVert; i++ {
		if fields, err = scanLine(scanner); err != nil {
			return nil, fmt.Errorf("reading vertex %d: %w", i, err)
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("vertex %d: need x and y, got %q", i, fields)
		}
		for d := 0; d < 2; d++ {
			if m.Vertices[i][d], err = strconv.ParseFloat(fields[d], 64); err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
		}
	}
	m.NumVertices = nVert

	m.Elements = make([][]int, nElem)
	m.ElementTypes = make([]ElementType, nElem)
	for i := 0; i < nElem; i++ {
		if fields, err = scanLine(scanner); err != nil {
			return nil, fmt.Errorf("reading element %d: %w", i, err)
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("element %d: need 4 corner ids, got %q", i, fields)
		}
		cyc := make([]int, 4)
		for j := 0; j < 4; j++ {
			if cyc[j], err = strconv.Atoi(fields[j]); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			if cyc[j] < 0 || cyc[j] >= nVert {
				return nil, fmt.Errorf("element %d: corner id %d out of range", i, cyc[j])
			}
		}
		if signedQuadArea(m.Vertices, cyc) < 0 {
			// Invert negatively oriented cells by reversing the cycle
			cyc[1], cyc[3] = cyc[3], cyc[1]
		}
		// Cyclic (a,b,c,d) -> lexicographic (a,b,d,c)
		m.Elements[i] = []int{cyc[0], cyc[1], cyc[3], cyc[2]}
		m.ElementTypes[i] = Quad
	}
	m.NumElements = nElem

	m.BuildConnectivity()
	m.AssignBoundaryIDs()
	return m, nil
}

func scanLine(scanner *bufio.Scanner) ([]string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		return strings.Fields(line), nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("unexpected end of file")
}

// signedQuadArea is the shoelace area of a quad given in cyclic corner order
func signedQuadArea(verts []geometry.Point, cyc []int) (area float64) {
	for i := 0; i < 4; i++ {
		p, q := verts[cyc[i]], verts[cyc[(i+1)%4]]
		area += p[0]*q[1] - q[0]*p[1]
	}
	return 0.5 * area
}
