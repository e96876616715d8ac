package narrowphase

// Filter decides which bodies may touch, with Box2D semantics: a shared
// non-zero group overrides the masks (positive always collides, negative
// never does); otherwise each mask must accept the other's category.
type Filter struct {
	Category uint16 `json:"category" yaml:"category"`
	Mask     uint16 `json:"mask" yaml:"mask"`
	Group    int16  `json:"group" yaml:"group"`
}

// DefaultFilter puts a body in category 1 and lets it hit everything.
func DefaultFilter() Filter {
	return Filter{Category: 0x0001, Mask: 0xFFFF}
}

func (f Filter) ShouldCollide(other Filter) bool {
	if f.Group != 0 && f.Group == other.Group {
		return f.Group > 0
	}
	return f.Mask&other.Category != 0 && other.Mask&f.Category != 0
}
