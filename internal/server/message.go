package server

import (
	"github.com/pkg/errors"

	"github.com/zeusync/narrowphase/internal/core/systems/narrowphase"
	"github.com/zeusync/narrowphase/internal/core/systems/physics"
)

const (
	ShapeCircle  = "circle"
	ShapePolygon = "polygon"
)

// ShapeMessage is a world-space shape on the wire. Circles use Center and
// Radius, polygons use Vertices.
type ShapeMessage struct {
	Kind     string            `json:"kind"`
	Center   physics.Vector2   `json:"center"`
	Radius   float64           `json:"radius,omitempty"`
	Vertices []physics.Vector2 `json:"vertices,omitempty"`
}

type CheckRequest struct {
	ID string       `json:"id,omitempty"`
	A  ShapeMessage `json:"a"`
	B  ShapeMessage `json:"b"`
}

type CheckResponse struct {
	ID           string          `json:"id,omitempty"`
	HasCollision bool            `json:"has_collision"`
	Normal       physics.Vector2 `json:"normal"`
	Depth        float64         `json:"depth"`
	ContactPoint physics.Vector2 `json:"contact_point"`
	Error        string          `json:"error,omitempty"`
}

func (m ShapeMessage) Shape() (narrowphase.Shape, error) {
	switch m.Kind {
	case ShapeCircle:
		c, err := physics.NewCircle(m.Center, m.Radius)
		if err != nil {
			return nil, err
		}
		return narrowphase.CircleShape{Circle: c}, nil
	case ShapePolygon:
		return narrowphase.NewPolygon(m.Vertices)
	default:
		return nil, errors.Wrapf(ErrUnknownShapeKind, "%q", m.Kind)
	}
}

// CircleMessage and PolygonMessage build wire shapes from core shapes.
func CircleMessage(c physics.Circle) ShapeMessage {
	return ShapeMessage{Kind: ShapeCircle, Center: c.Center, Radius: c.Radius}
}

func PolygonMessage(p physics.ConvexPolygon) ShapeMessage {
	return ShapeMessage{Kind: ShapePolygon, Vertices: p.Vertices}
}

func newResponse(id string, info physics.ContactInfo) CheckResponse {
	return CheckResponse{
		ID:           id,
		HasCollision: info.HasCollision,
		Normal:       info.Normal,
		Depth:        info.Depth,
		ContactPoint: info.ContactPoint,
	}
}

func errorResponse(id string, err error) CheckResponse {
	return CheckResponse{ID: id, Error: err.Error()}
}
