// Package physics implements narrow-phase collision detection for 2D convex
// shapes using the Separating Axis Theorem.
//
// Every check is a pure function over world-space shape values. Shapes are
// never mutated and no state survives a call, so checks may run on any number
// of goroutines at once.
package physics

import "errors"

// Tolerances shared by the degenerate-geometry branches.
const (
	// SegmentEpsilonSq is the squared edge length below which a segment is
	// treated as a single point.
	SegmentEpsilonSq = 1e-6
	// AxisEpsilonSq is the squared length below which the closest-feature
	// axis of a circle–polygon check is considered undefined and skipped.
	AxisEpsilonSq = 1e-6
)

// Geometry errors returned by the validating constructors.
var (
	ErrInvalidRadius  = errors.New("circle radius must be positive")
	ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")
	ErrDegenerateEdge = errors.New("polygon has a degenerate edge")
	ErrNotConvex      = errors.New("polygon is not convex")
	ErrZeroArea       = errors.New("polygon has zero area")
	ErrNormalsLength  = errors.New("polygon normals do not match vertices")
	ErrInvalidSides   = errors.New("regular polygon needs at least 3 sides")
)
