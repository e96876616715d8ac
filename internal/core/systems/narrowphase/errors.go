package narrowphase

import "errors"

var (
	ErrUnsupportedShape = errors.New("unsupported shape")
	ErrNilShape         = errors.New("body has no shape")
	ErrNilBody          = errors.New("pair references a nil body")
)
