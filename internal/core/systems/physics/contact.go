package physics

// ContactInfo is the result of a single check. Normal, Depth and
// ContactPoint are meaningful only when HasCollision is set; Normal is then
// a unit vector pointing from the first shape toward the second.
type ContactInfo struct {
	HasCollision bool    `json:"has_collision"`
	Normal       Vector2 `json:"normal"`
	Depth        float64 `json:"depth"`
	ContactPoint Vector2 `json:"contact_point"`
}

// Flipped describes the same contact seen from the other shape.
func (c ContactInfo) Flipped() ContactInfo {
	if !c.HasCollision {
		return c
	}
	c.Normal = c.Normal.Neg()
	return c
}
