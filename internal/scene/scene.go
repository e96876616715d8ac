// Package scene describes bodies and candidate pairs in YAML for offline
// runs of the detector.
package scene

import (
	"errors"
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/narrowphase/internal/core/systems/narrowphase"
	"github.com/zeusync/narrowphase/internal/core/systems/physics"
)

const DefaultTimeStep = 1.0 / 60.0

var (
	ErrNoName        = errors.New("body has no name")
	ErrDuplicateName = errors.New("duplicate body name")
	ErrUnknownBody   = errors.New("unknown body")
	ErrShapeCount    = errors.New("body needs exactly one of circle, box, polygon, regular")
	ErrBadPair       = errors.New("pair must name two different bodies")
	ErrBadTimeStep   = errors.New("time step must be positive")
)

// Document is the on-disk form of a scene.
type Document struct {
	TimeStep float64    `yaml:"time_step"`
	Bodies   []BodySpec `yaml:"bodies"`
	Pairs    [][]string `yaml:"pairs"`
}

type BodySpec struct {
	Name     string              `yaml:"name"`
	Position physics.Vector2     `yaml:"position"`
	Angle    float64             `yaml:"angle"`
	Velocity physics.Vector2     `yaml:"velocity"`
	Spin     float64             `yaml:"spin"`
	Enabled  *bool               `yaml:"enabled"`
	Filter   *narrowphase.Filter `yaml:"filter"`

	Circle  *CircleSpec  `yaml:"circle"`
	Box     *BoxSpec     `yaml:"box"`
	Polygon *PolygonSpec `yaml:"polygon"`
	Regular *RegularSpec `yaml:"regular"`
}

type CircleSpec struct {
	Radius float64 `yaml:"radius"`
}

type BoxSpec struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

type PolygonSpec struct {
	Vertices []physics.Vector2 `yaml:"vertices"`
}

type RegularSpec struct {
	Radius float64 `yaml:"radius"`
	Sides  int     `yaml:"sides"`
}

// Scene is a built Document. Bodies keep document order.
type Scene struct {
	TimeStep float64
	Bodies   []*narrowphase.Body
	Pairs    []narrowphase.Pair

	byName map[string]*narrowphase.Body
	motion map[*narrowphase.Body]motion
}

type motion struct {
	velocity physics.Vector2
	spin     float64
}

func Load(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, pkgerrors.Wrap(err, "decode scene")
	}
	return &doc, nil
}

func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open scene")
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "load %s", path)
	}
	return doc, nil
}

// Build validates the document and creates its bodies. Without explicit
// pairs every unordered pair of bodies is listed once, in document order.
func (d *Document) Build() (*Scene, error) {
	s := &Scene{
		TimeStep: d.TimeStep,
		Bodies:   make([]*narrowphase.Body, 0, len(d.Bodies)),
		byName:   make(map[string]*narrowphase.Body, len(d.Bodies)),
		motion:   make(map[*narrowphase.Body]motion),
	}
	if s.TimeStep == 0 {
		s.TimeStep = DefaultTimeStep
	}
	if s.TimeStep < 0 {
		return nil, ErrBadTimeStep
	}

	for i, spec := range d.Bodies {
		if spec.Name == "" {
			return nil, pkgerrors.Wrapf(ErrNoName, "body #%d", i)
		}
		if _, dup := s.byName[spec.Name]; dup {
			return nil, pkgerrors.Wrap(ErrDuplicateName, spec.Name)
		}
		body, err := spec.build()
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "body %q", spec.Name)
		}
		s.Bodies = append(s.Bodies, body)
		s.byName[spec.Name] = body
		if spec.Velocity != physics.Zero || spec.Spin != 0 {
			s.motion[body] = motion{velocity: spec.Velocity, spin: spec.Spin}
		}
	}

	if len(d.Pairs) == 0 {
		for i := range s.Bodies {
			for j := i + 1; j < len(s.Bodies); j++ {
				s.Pairs = append(s.Pairs, narrowphase.Pair{A: s.Bodies[i], B: s.Bodies[j]})
			}
		}
		return s, nil
	}

	for i, names := range d.Pairs {
		if len(names) != 2 || names[0] == names[1] {
			return nil, pkgerrors.Wrapf(ErrBadPair, "pair #%d %v", i, names)
		}
		a, ok := s.byName[names[0]]
		if !ok {
			return nil, pkgerrors.Wrapf(ErrUnknownBody, "pair #%d: %q", i, names[0])
		}
		b, ok := s.byName[names[1]]
		if !ok {
			return nil, pkgerrors.Wrapf(ErrUnknownBody, "pair #%d: %q", i, names[1])
		}
		s.Pairs = append(s.Pairs, narrowphase.Pair{A: a, B: b})
	}
	return s, nil
}

func (spec BodySpec) build() (*narrowphase.Body, error) {
	shape, err := spec.shape()
	if err != nil {
		return nil, err
	}
	opts := []narrowphase.BodyOption{
		narrowphase.WithTransform(physics.Transform{Position: spec.Position, Angle: spec.Angle}),
	}
	if spec.Filter != nil {
		opts = append(opts, narrowphase.WithFilter(*spec.Filter))
	}
	if spec.Enabled != nil && !*spec.Enabled {
		opts = append(opts, narrowphase.Disabled())
	}
	return narrowphase.NewBody(spec.Name, shape, opts...)
}

func (spec BodySpec) shape() (narrowphase.Shape, error) {
	count := 0
	for _, set := range []bool{spec.Circle != nil, spec.Box != nil, spec.Polygon != nil, spec.Regular != nil} {
		if set {
			count++
		}
	}
	if count != 1 {
		return nil, ErrShapeCount
	}

	switch {
	case spec.Circle != nil:
		return narrowphase.NewCircle(spec.Circle.Radius)
	case spec.Box != nil:
		return narrowphase.NewBox(spec.Box.HalfWidth, spec.Box.HalfHeight)
	case spec.Polygon != nil:
		return narrowphase.NewPolygon(spec.Polygon.Vertices)
	default:
		return narrowphase.NewRegular(spec.Regular.Radius, spec.Regular.Sides)
	}
}

// Body returns the body with the given name, or nil.
func (s *Scene) Body(name string) *narrowphase.Body {
	return s.byName[name]
}

// Step moves every body with a velocity or spin forward by one time step.
func (s *Scene) Step() {
	for body, m := range s.motion {
		body.Transform.Position = body.Transform.Position.Add(m.velocity.Scale(s.TimeStep))
		body.Transform.Angle += m.spin * s.TimeStep
	}
}
