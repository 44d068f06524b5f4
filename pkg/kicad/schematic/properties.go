package schematic

import "github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/sexp"

// Properties returns the component's properties in file order.
func (c *Component) Properties() []*Property { return c.props }

// GetProperty returns the value of the named property, or def when the
// property is absent. An empty value and an absent property are
// distinct: HasProperty tells them apart.
func (c *Component) GetProperty(name, def string) string {
	for _, p := range c.props {
		if p.Key == name {
			return p.Value
		}
	}
	return def
}

// HasProperty reports whether the named property exists, even with an
// empty value.
func (c *Component) HasProperty(name string) bool {
	for _, p := range c.props {
		if p.Key == name {
			return true
		}
	}
	return false
}

// SetProperty sets a property value, creating the property when
// absent. New properties are appended after the existing ones so file
// order reflects insertion order.
func (c *Component) SetProperty(name, value string) {
	for _, p := range c.props {
		if p.Key == name {
			p.Value = value
			p.node.Child(2).SetString(value)
			c.sch.touch()
			return
		}
	}

	pn := propertyNode(name, value, c.Position)
	sexp.Format(pn, 2)
	if len(c.props) > 0 {
		insertAfter(c.node, c.props[len(c.props)-1].node, pn)
	} else {
		c.node.Append(pn)
	}
	c.props = append(c.props, &Property{node: pn, Key: name, Value: value})
	c.sch.touch()
}

// RemoveProperty deletes the named property. Removing an absent
// property is a no-op.
func (c *Component) RemoveProperty(name string) {
	for i, p := range c.props {
		if p.Key == name {
			c.node.RemoveChild(p.node)
			c.props = append(c.props[:i], c.props[i+1:]...)
			c.sch.touch()
			return
		}
	}
}
