package physics

import "math"

// ProjectVertices returns the interval covered by vertices on axis. The
// slice must not be empty.
func ProjectVertices(vertices []Vector2, axis Vector2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vertices {
		p := Dot(v, axis)
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return lo, hi
}

// ProjectCircle returns the interval covered by c on a unit axis.
func ProjectCircle(c Circle, axis Vector2) (lo, hi float64) {
	center := Dot(c.Center, axis)
	return center - c.Radius, center + c.Radius
}

// ClosestPointOnSegment clamps the projection of point onto [start, end].
// Segments shorter than SegmentEpsilonSq collapse to start.
func ClosestPointOnSegment(point, start, end Vector2) Vector2 {
	edge := end.Sub(start)
	lengthSq := edge.LengthSquared()
	if lengthSq < SegmentEpsilonSq {
		return start
	}
	t := Clamp(Dot(point.Sub(start), edge)/lengthSq, 0, 1)
	return start.Add(edge.Scale(t))
}

// ClosestPointOnBoundary scans every edge of p and returns the boundary
// point nearest to point. Ties keep the lower edge index.
func ClosestPointOnBoundary(p ConvexPolygon, point Vector2) Vector2 {
	best := math.Inf(1)
	var closest Vector2
	for i := range p.Vertices {
		a, b := p.Edge(i)
		candidate := ClosestPointOnSegment(point, a, b)
		if d := point.DistanceSquared(candidate); d < best {
			best = d
			closest = candidate
		}
	}
	return closest
}
