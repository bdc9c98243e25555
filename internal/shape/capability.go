package shape

import "strings"

// Capability is a queryable property group. Values combine as a bit set.
type Capability uint16

const (
	HasPosition Capability = 1 << iota
	HasSize
	HasMinSize
	HasRadius
	HasPoints
	HasScale
	HasRotation
	HasFontSize
	HasLocationNumber
	IsFixture
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{HasPosition, "position"},
	{HasSize, "size"},
	{HasMinSize, "min-size"},
	{HasRadius, "radius"},
	{HasPoints, "points"},
	{HasScale, "scale"},
	{HasRotation, "rotation"},
	{HasFontSize, "font-size"},
	{HasLocationNumber, "location-number"},
	{IsFixture, "fixture"},
}

func (c Capability) String() string {
	var names []string
	for _, n := range capabilityNames {
		if c&n.c != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Capabilities derives the capability set from the fields present on s.
func (s Shape) Capabilities() Capability {
	var c Capability
	if s.Position != nil {
		c |= HasPosition | HasRotation
	}
	if s.Size != nil {
		c |= HasSize
	}
	if s.MinSize != nil {
		c |= HasMinSize
	}
	if s.Radius != nil {
		c |= HasRadius
	}
	if len(s.Points) > 0 {
		c |= HasPoints
	}
	if s.Scale != nil {
		c |= HasScale
	}
	if s.Text != nil {
		c |= HasFontSize
	}
	if s.Location != nil {
		c |= HasLocationNumber
	}
	if s.Fixture != nil {
		c |= IsFixture
	}
	return c
}

// Has reports whether s has every capability in c.
func (s Shape) Has(c Capability) bool {
	return s.Capabilities()&c == c
}
