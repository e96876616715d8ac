package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector2 is an immutable 2D vector used for positions, directions and normals.
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Vec is a shorthand constructor.
func Vec(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

// Zero is the zero vector.
var Zero = Vector2{}

func (v Vector2) Add(o Vector2) Vector2   { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2   { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Scale(s float64) Vector2 { return Vector2{v.X * s, v.Y * s} }
func (v Vector2) Neg() Vector2            { return Vector2{-v.X, -v.Y} }
func (v Vector2) Dot(o Vector2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vector2) Cross(o Vector2) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vector2) LengthSquared() float64  { return v.X*v.X + v.Y*v.Y }
func (v Vector2) Length() float64         { return math.Sqrt(v.LengthSquared()) }

// DistanceSquared is the squared distance between two points.
func (v Vector2) DistanceSquared(o Vector2) float64 {
	return o.Sub(v).LengthSquared()
}

// Perp returns the vector rotated by -90 degrees, (y, -x). For an edge of a
// counter-clockwise polygon this points out of the polygon.
func (v Vector2) Perp() Vector2 { return Vector2{v.Y, -v.X} }

// Normalize returns the unit vector in the direction of v, or the zero vector
// when v has no length.
func (v Vector2) Normalize() Vector2 {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return v.Scale(1 / l)
}

// ApproxEqual compares component-wise within eps.
func (v Vector2) ApproxEqual(o Vector2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Vec2 converts to the mathgl representation.
func (v Vector2) Vec2() mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

// FromVec2 converts from the mathgl representation.
func FromVec2(v mgl64.Vec2) Vector2 { return Vector2{v[0], v[1]} }

func (v Vector2) String() string { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }

// Dot is the standard 2D dot product.
func Dot(a, b Vector2) float64 { return a.X*b.X + a.Y*b.Y }

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}
