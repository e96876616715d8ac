package physics

import (
	"math"
)

// convexityEpsilon bounds how far a vertex may sit outside an edge's
// half-plane before the polygon is rejected as non-convex.
const convexityEpsilon = 1e-9

// Circle is a world-space circle. Radius must be positive.
type Circle struct {
	Center Vector2 `json:"center"`
	Radius float64 `json:"radius"`
}

// NewCircle validates the radius.
func NewCircle(center Vector2, radius float64) (Circle, error) {
	if !(radius > 0) {
		return Circle{}, ErrInvalidRadius
	}
	return Circle{Center: center, Radius: radius}, nil
}

// ConvexPolygon is a world-space convex polygon. Normals[i] is the outward
// unit normal of the edge from Vertices[i] to Vertices[(i+1)%n].
type ConvexPolygon struct {
	Vertices []Vector2 `json:"vertices"`
	Normals  []Vector2 `json:"normals"`
}

// NewConvexPolygon copies the vertices and derives the outward edge normals.
// Both windings are accepted; the vertex order is kept as given.
func NewConvexPolygon(vertices []Vector2) (ConvexPolygon, error) {
	n := len(vertices)
	if n < 3 {
		return ConvexPolygon{}, ErrTooFewVertices
	}

	verts := make([]Vector2, n)
	copy(verts, vertices)

	area2 := signedArea2(verts)
	if math.Abs(area2) < SegmentEpsilonSq {
		return ConvexPolygon{}, ErrZeroArea
	}

	normals := make([]Vector2, n)
	for i := range verts {
		edge := verts[(i+1)%n].Sub(verts[i])
		if edge.LengthSquared() < SegmentEpsilonSq {
			return ConvexPolygon{}, ErrDegenerateEdge
		}
		normal := edge.Perp()
		if area2 < 0 {
			normal = normal.Neg()
		}
		normals[i] = normal.Normalize()
	}

	poly := ConvexPolygon{Vertices: verts, Normals: normals}
	if !poly.isConvex() {
		return ConvexPolygon{}, ErrNotConvex
	}
	return poly, nil
}

// NewBox builds an axis-aligned rectangle, counter-clockwise from the
// bottom-left corner.
func NewBox(center Vector2, halfWidth, halfHeight float64) (ConvexPolygon, error) {
	return NewConvexPolygon([]Vector2{
		{center.X - halfWidth, center.Y - halfHeight},
		{center.X + halfWidth, center.Y - halfHeight},
		{center.X + halfWidth, center.Y + halfHeight},
		{center.X - halfWidth, center.Y + halfHeight},
	})
}

// NewRegularPolygon places sides vertices on a circle of the given radius,
// counter-clockwise starting on the positive x axis.
func NewRegularPolygon(center Vector2, radius float64, sides int) (ConvexPolygon, error) {
	if sides < 3 {
		return ConvexPolygon{}, ErrInvalidSides
	}
	if !(radius > 0) {
		return ConvexPolygon{}, ErrInvalidRadius
	}
	verts := make([]Vector2, sides)
	step := 2 * math.Pi / float64(sides)
	for i := range verts {
		s, c := math.Sincos(float64(i) * step)
		verts[i] = center.Add(Vector2{c * radius, s * radius})
	}
	return NewConvexPolygon(verts)
}

// Centroid is the arithmetic mean of the vertices.
func (p ConvexPolygon) Centroid() Vector2 {
	var sum Vector2
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(p.Vertices)))
}

// Edge returns the endpoints of edge i.
func (p ConvexPolygon) Edge(i int) (Vector2, Vector2) {
	return p.Vertices[i], p.Vertices[(i+1)%len(p.Vertices)]
}

// Validate checks the full polygon invariant: vertex count, one unit normal
// per edge pointing outward and convexity.
func (p ConvexPolygon) Validate() error {
	if err := p.checkShape(); err != nil {
		return err
	}
	for i, normal := range p.Normals {
		if math.Abs(normal.LengthSquared()-1) > 1e-6 {
			return ErrNormalsLength
		}
		a, b := p.Edge(i)
		if b.Sub(a).LengthSquared() < SegmentEpsilonSq {
			return ErrDegenerateEdge
		}
	}
	if !p.isConvex() {
		return ErrNotConvex
	}
	return nil
}

// checkShape is the cheap structural check run by the debug assertions.
func (p ConvexPolygon) checkShape() error {
	if len(p.Vertices) < 3 {
		return ErrTooFewVertices
	}
	if len(p.Normals) != len(p.Vertices) {
		return ErrNormalsLength
	}
	return nil
}

// isConvex requires every vertex to lie on the inner side of every edge,
// which also rejects self-intersecting outlines.
func (p ConvexPolygon) isConvex() bool {
	for i, normal := range p.Normals {
		origin := p.Vertices[i]
		for _, v := range p.Vertices {
			if Dot(normal, v.Sub(origin)) > convexityEpsilon {
				return false
			}
		}
	}
	return true
}

func signedArea2(verts []Vector2) float64 {
	area := 0.0
	for i := range verts {
		area += verts[i].Cross(verts[(i+1)%len(verts)])
	}
	return area
}
