package physics

import "fmt"

func assertCircle(c Circle) {
	if debugAssertions && !(c.Radius > 0) {
		panic(fmt.Sprintf("physics: %v: %g", ErrInvalidRadius, c.Radius))
	}
}

func assertPolygon(p ConvexPolygon) {
	if !debugAssertions {
		return
	}
	if err := p.checkShape(); err != nil {
		panic(fmt.Sprintf("physics: %v", err))
	}
}
