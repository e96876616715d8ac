//go:build narrowphase_debug

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugAssertions(t *testing.T) {
	square := box(t, 0, 0, 1)

	assert.Panics(t, func() { CheckCircleCircle(Circle{Radius: 0}, Circle{Radius: 1}) })
	assert.Panics(t, func() {
		CheckPolygonPolygon(ConvexPolygon{Vertices: square.Vertices[:2], Normals: square.Normals[:2]}, square)
	})
	assert.Panics(t, func() {
		CheckCirclePolygon(Circle{Radius: 1}, ConvexPolygon{Vertices: square.Vertices, Normals: square.Normals[:3]})
	})
	assert.NotPanics(t, func() { CheckCirclePolygon(Circle{Radius: 1}, square) })
}
