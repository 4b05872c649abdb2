package fem

import (
	"math/rand"

	"github.com/gwflow/aquifem/geometry"
	"github.com/gwflow/aquifem/mesh"
)

const (
	// After the initial attempt the locator retries this many times under
	// perturbation before giving up
	locateMaxRetries   = 20
	locatePerturbation = 1.e-4
)

// PointLocator maps a physical point to a cell's unit-cell coordinates. The
// inversion can be numerically ill-posed for strongly sheared cells or for
// points near the cell boundary, so failed attempts are retried with the
// query point perturbed by a small uniform random offset. Each worker owns
// its locator and generator, keeping retry draws independent across workers
// and reproducible under test.
type PointLocator struct {
	Mapper CellMapper
	Rng    *rand.Rand
}

func NewPointLocator(mapper CellMapper, rng *rand.Rand) *PointLocator {
	return &PointLocator{
		Mapper: mapper,
		Rng:    rng,
	}
}

// Locate returns the unit-cell coordinates of p within the element, or
// ok=false after all attempts fail. Each retry perturbs the original point,
// not the previous attempt, so retries are independent trials around the
// true location.
func (pl *PointLocator) Locate(p geometry.Point, m *mesh.Mesh, elem int) (unit geometry.Point, ok bool) {
	pTry := p
	for attempt := 0; attempt <= locateMaxRetries; attempt++ {
		var err error
		if unit, err = pl.Mapper.TransformRealToUnit(m, elem, pTry); err == nil {
			ok = true
			return
		}
		for d := 0; d < m.Dim; d++ {
			pTry[d] = p[d] + locatePerturbation*(-1.0+2.0*pl.Rng.Float64())
		}
	}
	return geometry.Point{}, false
}
