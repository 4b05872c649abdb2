package geometry

import "math"

// TriangleArea calculates the area of the triangle A, B, C. With project set,
// the vertices are first projected onto the XY plane and the planar area is
// returned; otherwise the true 3D area is computed from the cross product
// magnitude, expanded over the (x,y), (x,z) and (y,z) coordinate pairs.
//
// The vertices are assumed non-degenerate and correctly ordered - no
// validation is performed, a collinear triangle yields area 0.
func TriangleArea(A, B, C Point, project bool) (area float64) {
	if project {
		area = math.Abs(0.5 * (A[0]*(B[1]-C[1]) + B[0]*(C[1]-A[1]) + C[0]*(A[1]-B[1])))
	} else {
		var (
			x1, y1, z1 = A[0], A[1], A[2]
			x2, y2, z2 = B[0], B[1], B[2]
			x3, y3, z3 = C[0], C[1], C[2]
		)
		dxy := x1*y2 - x2*y1 - x1*y3 + x3*y1 + x2*y3 - x3*y2
		dxz := x1*z2 - x2*z1 - x1*z3 + x3*z1 + x2*z3 - x3*z2
		dyz := y1*z2 - y2*z1 - y1*z3 + y3*z1 + y2*z3 - y3*z2
		area = 0.5 * math.Sqrt(dxy*dxy+dxz*dxz+dyz*dyz)
	}
	return
}

// RechargeWeight returns the dimensionless factor in (0, 1] that corrects a
// recharge rate specified per unit horizontal area for application on a
// possibly sloped top face. The face vertices follow the lexicographic face
// ordering, so in 3D the quad is split along the v1-v4 diagonal into the
// triangles (v1,v2,v4) and (v1,v4,v3) - the same split adjoining faces use.
//
// A fully degenerate face (zero actual extent) returns 0; near-vertical faces
// tend to 0 without special casing, which is the correct limiting behavior.
func RechargeWeight(face []Point, dim int) (weight float64) {
	weight = 1
	switch dim {
	case 2:
		v1, v2 := face[0], face[1]
		actual := v1.Distance(v2)
		if actual == 0 {
			return 0
		}
		projected := math.Abs(v2[0] - v1[0])
		weight = projected / actual
	case 3:
		v1, v2, v3, v4 := face[0], face[1], face[2], face[3]
		aReal := TriangleArea(v1, v2, v4, false) + TriangleArea(v1, v4, v3, false)
		if aReal == 0 {
			return 0
		}
		aProj := TriangleArea(v1, v2, v4, true) + TriangleArea(v1, v4, v3, true)
		weight = aProj / aReal
	}
	return
}
