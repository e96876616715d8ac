package narrowphase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func circleBody(t testing.TB, name string, x, y, r float64, opts ...BodyOption) *Body {
	t.Helper()
	s, err := NewCircle(r)
	require.NoError(t, err)
	b, err := NewBody(name, s, append([]BodyOption{WithPosition(x, y)}, opts...)...)
	require.NoError(t, err)
	return b
}

func boxBody(t testing.TB, name string, x, y, half float64, opts ...BodyOption) *Body {
	t.Helper()
	s, err := NewBox(half, half)
	require.NoError(t, err)
	b, err := NewBody(name, s, append([]BodyOption{WithPosition(x, y)}, opts...)...)
	require.NoError(t, err)
	return b
}
