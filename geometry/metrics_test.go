package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriangleArea(t *testing.T) {
	A := Point{0, 0, 0}
	B := Point{1, 0, 0}
	C := Point{0, 1, 0}
	// Unit right triangle in the z=0 plane
	assert.Equal(t, 0.5, TriangleArea(A, B, C, true))
	assert.Equal(t, 0.5, TriangleArea(A, B, C, false))

	// Projected and true areas agree for planar triangles in z=0 under every
	// vertex ordering
	tris := [][3]Point{
		{A, B, C}, {A, C, B}, {B, A, C}, {B, C, A}, {C, A, B}, {C, B, A},
	}
	for _, tri := range tris {
		proj := TriangleArea(tri[0], tri[1], tri[2], true)
		real := TriangleArea(tri[0], tri[1], tri[2], false)
		assert.InDelta(t, proj, real, 1.e-14)
		assert.InDelta(t, 0.5, proj, 1.e-14)
	}

	// Lifting a vertex off the plane grows the true area but not the
	// projected one
	{
		Clift := Point{0, 1, 2}
		assert.Equal(t, 0.5, TriangleArea(A, B, Clift, true))
		assert.Greater(t, TriangleArea(A, B, Clift, false), 0.5)
	}

	// Degenerate triangle with two coincident vertices
	{
		assert.Equal(t, 0., TriangleArea(A, A, C, true))
		assert.Equal(t, 0., TriangleArea(A, A, C, false))
	}
}

func TestRechargeWeight2D(t *testing.T) {
	// 3-4-5 slope: projected 3, actual 5
	{
		face := []Point{{0, 0, 0}, {3, 4, 0}}
		assert.InDelta(t, 0.6, RechargeWeight(face, 2), 1.e-14)
	}
	// Flat face has full weight
	{
		face := []Point{{0, 10, 0}, {2, 10, 0}}
		assert.InDelta(t, 1.0, RechargeWeight(face, 2), 1.e-14)
	}
	// Vertical face captures nothing
	{
		face := []Point{{1, 0, 0}, {1, 5, 0}}
		assert.Equal(t, 0., RechargeWeight(face, 2))
	}
	// Degenerate face is pinned to the 0 sentinel, not NaN
	{
		face := []Point{{1, 1, 0}, {1, 1, 0}}
		assert.Equal(t, 0., RechargeWeight(face, 2))
	}
}

func TestRechargeWeight3D(t *testing.T) {
	// Horizontal unit quad in lexicographic face order
	flat := []Point{{0, 0, 5}, {1, 0, 5}, {0, 1, 5}, {1, 1, 5}}
	assert.InDelta(t, 1.0, RechargeWeight(flat, 3), 1.e-14)

	// Tilt the face about the x axis: unit footprint, actual area grows by
	// sqrt(1+slope^2)
	{
		slope := 4. / 3.
		tilted := []Point{{0, 0, 0}, {1, 0, 0}, {0, 1, slope}, {1, 1, slope}}
		assert.InDelta(t, 0.6, RechargeWeight(tilted, 3), 1.e-14)
	}

	// Fully degenerate quad
	{
		p := Point{2, 3, 4}
		assert.Equal(t, 0., RechargeWeight([]Point{p, p, p, p}, 3))
	}
}
