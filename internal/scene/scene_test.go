package scene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/narrowphase/internal/core/systems/narrowphase"
	"github.com/zeusync/narrowphase/internal/core/systems/physics"
)

func build(t *testing.T, doc string) (*Scene, error) {
	t.Helper()
	d, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	return d.Build()
}

func TestLoadFileAndBuild(t *testing.T) {
	doc, err := LoadFile("testdata/drop.yaml")
	require.NoError(t, err)

	s, err := doc.Build()
	require.NoError(t, err)
	require.Len(t, s.Bodies, 5)
	assert.Len(t, s.Pairs, 10, "all unordered pairs without an explicit list")
	assert.Equal(t, 0.5, s.TimeStep)

	ball := s.Body("ball")
	require.NotNil(t, ball)
	assert.Equal(t, narrowphase.KindCircle, ball.Shape.Kind())
	assert.Equal(t, physics.Vec(0, 1.5), ball.Transform.Position)

	crate := s.Body("crate")
	require.NotNil(t, crate)
	assert.Equal(t, narrowphase.KindPolygon, crate.Shape.Kind())
	assert.Equal(t, 0.3, crate.Transform.Angle)

	assert.Equal(t, narrowphase.Filter{Category: 2}, s.Body("ghost").Filter)
	assert.Equal(t, narrowphase.DefaultFilter(), ball.Filter)
	assert.False(t, s.Body("parked").Enabled)
	assert.True(t, ball.Enabled)
	assert.Nil(t, s.Body("nobody"))

	assert.Same(t, s.Bodies[0], s.Pairs[0].A)
	assert.Same(t, s.Bodies[1], s.Pairs[0].B)
}

func TestStep(t *testing.T) {
	s, err := build(t, `
time_step: 0.5
bodies:
  - {name: a, circle: {radius: 1}, velocity: {x: 2, y: 0}, spin: 1}
  - {name: b, circle: {radius: 1}}
`)
	require.NoError(t, err)
	s.Step()
	s.Step()

	assert.Equal(t, physics.Vec(2, 0), s.Body("a").Transform.Position)
	assert.InDelta(t, 1.0, s.Body("a").Transform.Angle, 1e-12)
	assert.Equal(t, physics.Zero, s.Body("b").Transform.Position)
}

func TestExplicitPairs(t *testing.T) {
	s, err := build(t, `
bodies:
  - {name: a, circle: {radius: 1}}
  - {name: b, box: {half_width: 1, half_height: 2}}
  - {name: c, regular: {radius: 1, sides: 5}}
pairs:
  - [c, a]
`)
	require.NoError(t, err)
	require.Len(t, s.Pairs, 1)
	assert.Same(t, s.Body("c"), s.Pairs[0].A)
	assert.Same(t, s.Body("a"), s.Pairs[0].B)
	assert.Equal(t, DefaultTimeStep, s.TimeStep)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"no name", `bodies: [{circle: {radius: 1}}]`, ErrNoName},
		{"duplicate", `bodies: [{name: a, circle: {radius: 1}}, {name: a, circle: {radius: 1}}]`, ErrDuplicateName},
		{"no shape", `bodies: [{name: a}]`, ErrShapeCount},
		{"two shapes", `bodies: [{name: a, circle: {radius: 1}, box: {half_width: 1, half_height: 1}}]`, ErrShapeCount},
		{"bad radius", `bodies: [{name: a, circle: {radius: -1}}]`, physics.ErrInvalidRadius},
		{"concave", `bodies: [{name: a, polygon: {vertices: [{x: 0, y: 0}, {x: 2, y: 0}, {x: 1, y: 0.2}, {x: 2, y: 2}, {x: 0, y: 2}]}}]`, physics.ErrNotConvex},
		{"unknown pair body", `{bodies: [{name: a, circle: {radius: 1}}], pairs: [[a, z]]}`, ErrUnknownBody},
		{"self pair", `{bodies: [{name: a, circle: {radius: 1}}], pairs: [[a, a]]}`, ErrBadPair},
		{"short pair", `{bodies: [{name: a, circle: {radius: 1}}], pairs: [[a]]}`, ErrBadPair},
		{"negative step", `{time_step: -1, bodies: []}`, ErrBadTimeStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, tt.doc)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	_, err := Load(strings.NewReader("bodies: {name: a}"))
	assert.Error(t, err)

	_, err = LoadFile("testdata/missing.yaml")
	assert.Error(t, err)
}
