package narrowphase

import (
	"github.com/pkg/errors"

	"github.com/zeusync/narrowphase/internal/core/systems/physics"
)

// Kind identifies the concrete shape behind a Shape.
type Kind uint8

const (
	KindCircle Kind = iota + 1
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is a circle or convex polygon, either in body-local or world space.
type Shape interface {
	Kind() Kind
	Transformed(physics.Transform) Shape
}

type CircleShape struct {
	physics.Circle
}

func (CircleShape) Kind() Kind { return KindCircle }

func (s CircleShape) Transformed(t physics.Transform) Shape {
	return CircleShape{s.Circle.Transformed(t)}
}

type PolygonShape struct {
	physics.ConvexPolygon
}

func (PolygonShape) Kind() Kind { return KindPolygon }

func (s PolygonShape) Transformed(t physics.Transform) Shape {
	return PolygonShape{s.ConvexPolygon.Transformed(t)}
}

// NewCircle is a circle centred on the body origin.
func NewCircle(radius float64) (CircleShape, error) {
	c, err := physics.NewCircle(physics.Zero, radius)
	return CircleShape{c}, err
}

// NewBox is a rectangle centred on the body origin.
func NewBox(halfWidth, halfHeight float64) (PolygonShape, error) {
	p, err := physics.NewBox(physics.Zero, halfWidth, halfHeight)
	return PolygonShape{p}, err
}

// NewPolygon builds a convex polygon from body-local vertices.
func NewPolygon(vertices []physics.Vector2) (PolygonShape, error) {
	p, err := physics.NewConvexPolygon(vertices)
	return PolygonShape{p}, err
}

// NewRegular is a regular polygon centred on the body origin.
func NewRegular(radius float64, sides int) (PolygonShape, error) {
	p, err := physics.NewRegularPolygon(physics.Zero, radius, sides)
	return PolygonShape{p}, err
}

// Collide dispatches a world-space shape pair to the matching check. The
// returned normal always points from a toward b, so a polygon–circle pair
// runs the circle–polygon check and flips its normal.
func Collide(a, b Shape) (physics.ContactInfo, error) {
	switch sa := a.(type) {
	case CircleShape:
		switch sb := b.(type) {
		case CircleShape:
			return physics.CheckCircleCircle(sa.Circle, sb.Circle), nil
		case PolygonShape:
			return physics.CheckCirclePolygon(sa.Circle, sb.ConvexPolygon), nil
		}
	case PolygonShape:
		switch sb := b.(type) {
		case CircleShape:
			return physics.CheckCirclePolygon(sb.Circle, sa.ConvexPolygon).Flipped(), nil
		case PolygonShape:
			return physics.CheckPolygonPolygon(sa.ConvexPolygon, sb.ConvexPolygon), nil
		}
	}
	return physics.ContactInfo{}, errors.Wrapf(ErrUnsupportedShape, "%T vs %T", a, b)
}
