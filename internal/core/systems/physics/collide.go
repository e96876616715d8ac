package physics

import "math"

// minOverlap is the running minimum-overlap bookkeeping shared by the SAT
// checks. The first axis reaching a given minimum keeps it.
type minOverlap struct {
	depth float64
	axis  Vector2
	// touchSeparates makes intervals that only share an endpoint separate.
	touchSeparates bool
}

func newMinOverlap(touchSeparates bool) minOverlap {
	return minOverlap{depth: math.Inf(1), touchSeparates: touchSeparates}
}

// test records the overlap of [loA, hiA] and [loB, hiB] on axis and reports
// false when the axis separates them.
func (m *minOverlap) test(axis Vector2, loA, hiA, loB, hiB float64) bool {
	if hiA < loB || hiB < loA {
		return false
	}
	if m.touchSeparates && (hiA == loB || hiB == loA) {
		return false
	}
	overlap := math.Min(hiA, hiB) - math.Max(loA, loB)
	if overlap < m.depth {
		m.depth = overlap
		m.axis = axis
	}
	return true
}

// orient flips the recorded axis so that it agrees with from->to.
func (m *minOverlap) orient(from, to Vector2) Vector2 {
	if Dot(to.Sub(from), m.axis) < 0 {
		return m.axis.Neg()
	}
	return m.axis
}

// CheckCircleCircle compares the squared centre distance with the squared
// radius sum. Coincident centres report the fixed normal (1, 0).
func CheckCircleCircle(a, b Circle) ContactInfo {
	assertCircle(a)
	assertCircle(b)

	toB := b.Center.Sub(a.Center)
	distSq := toB.LengthSquared()
	radii := a.Radius + b.Radius
	if distSq >= radii*radii {
		return ContactInfo{}
	}

	dist := math.Sqrt(distSq)
	if dist == 0 {
		return ContactInfo{
			HasCollision: true,
			Normal:       Vector2{1, 0},
			Depth:        radii,
			ContactPoint: a.Center,
		}
	}

	normal := toB.Scale(1 / dist)
	return ContactInfo{
		HasCollision: true,
		Normal:       normal,
		Depth:        radii - dist,
		ContactPoint: a.Center.Add(normal.Scale(a.Radius)),
	}
}

// CheckPolygonPolygon runs SAT over the face normals of a, then of b, and
// exits on the first separating axis. Polygons sharing an edge or a vertex
// collide with depth 0. No contact point is produced.
func CheckPolygonPolygon(a, b ConvexPolygon) ContactInfo {
	assertPolygon(a)
	assertPolygon(b)

	mo := newMinOverlap(false)
	for _, normals := range [2][]Vector2{a.Normals, b.Normals} {
		for _, axis := range normals {
			loA, hiA := ProjectVertices(a.Vertices, axis)
			loB, hiB := ProjectVertices(b.Vertices, axis)
			if !mo.test(axis, loA, hiA, loB, hiB) {
				return ContactInfo{}
			}
		}
	}

	return ContactInfo{
		HasCollision: true,
		Normal:       mo.orient(a.Centroid(), b.Centroid()),
		Depth:        mo.depth,
	}
}

// CheckCirclePolygon tests the polygon's face normals plus the axis from
// the nearest boundary point to the circle centre, which is what separates
// a circle sitting in a vertex region. The contact point is that nearest
// boundary point and the normal points from the circle toward the polygon,
// the reverse of the polygon-to-circle sign used by Box2D-style callers.
// A circle that only touches the polygon does not collide.
func CheckCirclePolygon(circle Circle, polygon ConvexPolygon) ContactInfo {
	assertCircle(circle)
	assertPolygon(polygon)

	mo := newMinOverlap(true)
	for _, axis := range polygon.Normals {
		loC, hiC := ProjectCircle(circle, axis)
		loP, hiP := ProjectVertices(polygon.Vertices, axis)
		if !mo.test(axis, loC, hiC, loP, hiP) {
			return ContactInfo{}
		}
	}

	closest := ClosestPointOnBoundary(polygon, circle.Center)

	// Centre exactly on the boundary has no feature direction.
	if axis := circle.Center.Sub(closest); axis.LengthSquared() > AxisEpsilonSq {
		axis = axis.Normalize()
		loC, hiC := ProjectCircle(circle, axis)
		loP, hiP := ProjectVertices(polygon.Vertices, axis)
		if !mo.test(axis, loC, hiC, loP, hiP) {
			return ContactInfo{}
		}
	}

	return ContactInfo{
		HasCollision: true,
		Normal:       mo.orient(circle.Center, polygon.Centroid()),
		Depth:        mo.depth,
		ContactPoint: closest,
	}
}
