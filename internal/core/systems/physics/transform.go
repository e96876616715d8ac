package physics

import "github.com/go-gl/mathgl/mgl64"

// Transform places a local shape in world space: rotate by Angle (radians,
// counter-clockwise) about the origin, then translate by Position.
type Transform struct {
	Position Vector2 `json:"position" yaml:"position"`
	Angle    float64 `json:"angle" yaml:"angle"`
}

// Identity leaves shapes where they are.
var Identity = Transform{}

// Rotate applies only the rotational part, as used for normals.
func (t Transform) Rotate(v Vector2) Vector2 {
	if t.Angle == 0 {
		return v
	}
	return FromVec2(mgl64.Rotate2D(t.Angle).Mul2x1(v.Vec2()))
}

// Apply maps a local point to world space.
func (t Transform) Apply(v Vector2) Vector2 {
	return t.Rotate(v).Add(t.Position)
}

// Transformed returns the world-space snapshot of c.
func (c Circle) Transformed(t Transform) Circle {
	return Circle{Center: t.Apply(c.Center), Radius: c.Radius}
}

// Transformed returns the world-space snapshot of p. Rotation keeps the
// normals unit length and outward, so they are rotated rather than rebuilt.
func (p ConvexPolygon) Transformed(t Transform) ConvexPolygon {
	out := ConvexPolygon{
		Vertices: make([]Vector2, len(p.Vertices)),
		Normals:  make([]Vector2, len(p.Normals)),
	}
	for i, v := range p.Vertices {
		out.Vertices[i] = t.Apply(v)
	}
	for i, n := range p.Normals {
		out.Normals[i] = t.Rotate(n)
	}
	return out
}
