package narrowphase

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/narrowphase/internal/core/systems/physics"
)

// Body is the snapshot of a simulation body handed to the detector: a
// local-space shape placed by Transform. The detector only reads it.
type Body struct {
	ID        uuid.UUID
	Name      string
	Shape     Shape
	Transform physics.Transform
	Filter    Filter
	Enabled   bool
}

type BodyOption func(*Body)

func WithID(id uuid.UUID) BodyOption {
	return func(b *Body) { b.ID = id }
}

func WithTransform(t physics.Transform) BodyOption {
	return func(b *Body) { b.Transform = t }
}

func WithPosition(x, y float64) BodyOption {
	return func(b *Body) { b.Transform.Position = physics.Vec(x, y) }
}

func WithAngle(radians float64) BodyOption {
	return func(b *Body) { b.Transform.Angle = radians }
}

func WithFilter(f Filter) BodyOption {
	return func(b *Body) { b.Filter = f }
}

// Disabled excludes the body from every check until Enabled is set again.
func Disabled() BodyOption {
	return func(b *Body) { b.Enabled = false }
}

func NewBody(name string, shape Shape, opts ...BodyOption) (*Body, error) {
	if shape == nil {
		return nil, ErrNilShape
	}
	b := &Body{
		ID:      uuid.New(),
		Name:    name,
		Shape:   shape,
		Filter:  DefaultFilter(),
		Enabled: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// WorldShape is the shape placed by the body's transform.
func (b *Body) WorldShape() Shape {
	return b.Shape.Transformed(b.Transform)
}

func (b *Body) String() string {
	if b.Name != "" {
		return b.Name
	}
	return b.ID.String()
}

// Pair is a candidate pair that passed broad-phase filtering upstream.
type Pair struct {
	A, B *Body
}

// PairKey identifies a pair independent of argument order.
type PairKey struct {
	Lo, Hi uuid.UUID
}

func (p Pair) Key() PairKey {
	return MakePairKey(p.A.ID, p.B.ID)
}

func MakePairKey(a, b uuid.UUID) PairKey {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

func (k PairKey) Less(o PairKey) bool {
	if c := bytes.Compare(k.Lo[:], o.Lo[:]); c != 0 {
		return c < 0
	}
	return bytes.Compare(k.Hi[:], o.Hi[:]) < 0
}

func (k PairKey) String() string {
	return fmt.Sprintf("%s:%s", k.Lo, k.Hi)
}
