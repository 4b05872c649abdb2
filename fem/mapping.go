package fem

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gwflow/aquifem/geometry"
	"github.com/gwflow/aquifem/mesh"
)

// CellMapper maps between a cell's reference (unit) and physical coordinates
type CellMapper interface {
	TransformUnitToReal(m *mesh.Mesh, elem int, unit geometry.Point) geometry.Point
	TransformRealToUnit(m *mesh.Mesh, elem int, p geometry.Point) (geometry.Point, error)
}

// MappingQ1 is the multilinear mapping between the unit cell and a physical
// quad or hex, using the lexicographic corner numbering: corner i carries the
// shape weight prod_d (u[d] if bit d of i else 1-u[d]).
type MappingQ1 struct {
	Dim int
}

const (
	newtonMaxIterations = 30
	newtonTolerance     = 1.e-11
	unitCellEps         = 1.e-6
)

func (mp MappingQ1) shapeWeight(corner int, u geometry.Point) (w float64) {
	w = 1
	for d := 0; d < mp.Dim; d++ {
		if corner>>d&1 == 1 {
			w *= u[d]
		} else {
			w *= 1 - u[d]
		}
	}
	return
}

func (mp MappingQ1) shapeGradient(corner int, u geometry.Point) (g geometry.Point) {
	for dir := 0; dir < mp.Dim; dir++ {
		w := 1.0
		for d := 0; d < mp.Dim; d++ {
			switch {
			case d == dir && corner>>d&1 == 1:
				// factor u[d] differentiates to 1
			case d == dir:
				w = -w // factor (1-u[d]) differentiates to -1
			case corner>>d&1 == 1:
				w *= u[d]
			default:
				w *= 1 - u[d]
			}
		}
		g[dir] = w
	}
	return
}

// TransformUnitToReal maps a unit-cell coordinate to physical space
func (mp MappingQ1) TransformUnitToReal(m *mesh.Mesh, elem int, unit geometry.Point) (p geometry.Point) {
	for corner, v := range m.Elements[elem] {
		w := mp.shapeWeight(corner, unit)
		vert := m.Vertices[v]
		for d := 0; d < mp.Dim; d++ {
			p[d] += w * vert[d]
		}
	}
	return
}

// jacobian assembles dX/dU at the unit coordinate u
func (mp MappingQ1) jacobian(m *mesh.Mesh, elem int, u geometry.Point) *mat.Dense {
	J := mat.NewDense(mp.Dim, mp.Dim, nil)
	for corner, v := range m.Elements[elem] {
		g := mp.shapeGradient(corner, u)
		vert := m.Vertices[v]
		for r := 0; r < mp.Dim; r++ {
			for c := 0; c < mp.Dim; c++ {
				J.Set(r, c, J.At(r, c)+vert[r]*g[c])
			}
		}
	}
	return J
}

// TransformRealToUnit inverts the mapping at p by Newton iteration starting
// from the cell center. It fails when the Jacobian becomes singular, the
// iteration diverges or fails to converge, or the converged unit coordinate
// lies outside the unit cell.
func (mp MappingQ1) TransformRealToUnit(m *mesh.Mesh, elem int, p geometry.Point) (unit geometry.Point, err error) {
	var (
		u  geometry.Point
		du mat.VecDense
	)
	for d := 0; d < mp.Dim; d++ {
		u[d] = 0.5
	}

	scale := 1 + m.Vertices[m.Elements[elem][0]].Distance(
		m.Vertices[m.Elements[elem][len(m.Elements[elem])-1]])

	converged := false
	for iter := 0; iter < newtonMaxIterations; iter++ {
		x := mp.TransformUnitToReal(m, elem, u)
		r := x.Sub(p)
		if r.Norm() <= newtonTolerance*scale {
			converged = true
			break
		}
		J := mp.jacobian(m, elem, u)
		rhs := mat.NewVecDense(mp.Dim, r[:mp.Dim])
		if err = du.SolveVec(J, rhs); err != nil {
			return unit, fmt.Errorf("singular mapping jacobian: %w", err)
		}
		diverged := false
		for d := 0; d < mp.Dim; d++ {
			u[d] -= du.AtVec(d)
			if math.Abs(u[d]) > 1.e3 || math.IsNaN(u[d]) {
				diverged = true
			}
		}
		if diverged {
			return unit, fmt.Errorf("newton iteration diverged")
		}
	}
	if !converged {
		return unit, fmt.Errorf("newton iteration did not converge after %d iterations",
			newtonMaxIterations)
	}
	for d := 0; d < mp.Dim; d++ {
		if u[d] < -unitCellEps || u[d] > 1+unitCellEps {
			return unit, fmt.Errorf("point maps outside the unit cell: %v", u)
		}
	}
	unit = u
	return
}
