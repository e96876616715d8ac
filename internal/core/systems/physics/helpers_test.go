package physics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func box(t testing.TB, cx, cy, half float64) ConvexPolygon {
	t.Helper()
	p, err := NewBox(Vec(cx, cy), half, half)
	require.NoError(t, err)
	return p
}

func circle(t testing.TB, cx, cy, r float64) Circle {
	t.Helper()
	c, err := NewCircle(Vec(cx, cy), r)
	require.NoError(t, err)
	return c
}
