package schematic

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/sexp"
)

// AddComponent places a new symbol instance. The library identifier
// must resolve through the document's resolver and the reference must
// not already be in use; nothing is added when either check fails.
func (s *Schematic) AddComponent(libID, reference string, pos geometry.Point) (*Component, error) {
	if _, ok := s.components.FirstByKey(indexReference, reference); ok {
		return nil, &DuplicateReferenceError{Reference: reference, Path: "/"}
	}
	sym, err := s.Resolver.Resolve(libID)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	node := sexp.NewList(
		sexp.NewSymbol("symbol"),
		sexp.NewList(sexp.NewSymbol("lib_id"), sexp.NewString(libID)),
		atNode(pos, 0),
		sexp.NewList(sexp.NewSymbol("unit"), sexp.NewSymbol("1")),
		sexp.NewList(sexp.NewSymbol("in_bom"), sexp.NewSymbol("yes")),
		sexp.NewList(sexp.NewSymbol("on_board"), sexp.NewSymbol("yes")),
		uuidNode(id),
	)

	c := &Component{
		sch:      s,
		node:     node,
		uuid:     id,
		LibID:    libID,
		Position: pos,
		Unit:     1,
	}

	for _, kv := range [][2]string{{"Reference", reference}, {"Value", ""}} {
		pn := propertyNode(kv[0], kv[1], pos)
		node.Append(pn)
		c.props = append(c.props, &Property{node: pn, Key: kv[0], Value: kv[1]})
	}
	for _, pin := range sym.Pins {
		node.Append(sexp.NewList(
			sexp.NewSymbol("pin"),
			sexp.NewString(pin.Number),
			uuidNode(uuid.NewString()),
		))
	}

	s.insertEntityNode(node)
	s.components.Add(c)
	s.touch()
	return c, nil
}

// RemoveComponent removes the component with the given reference from
// the document and the tree.
func (s *Schematic) RemoveComponent(reference string) error {
	c, err := s.ComponentByReference(reference)
	if err != nil {
		return err
	}
	s.root.RemoveChild(c.node)
	if err := s.components.Remove("component", c); err != nil {
		return err
	}
	s.touch()
	return nil
}

// at returns the component's (at ...) node, creating it when missing.
func (c *Component) at() *sexp.Node {
	if n, ok := c.node.Find("at"); ok {
		return n
	}
	n := atNode(c.Position, c.Rotation)
	sexp.Format(n, 2)
	c.node.Append(n)
	return n
}

// SetPosition moves the component.
func (c *Component) SetPosition(pos geometry.Point) {
	c.Position = pos
	n := c.at()
	n.Child(1).SetSymbol(sexp.FormatCoord(pos.X))
	n.Child(2).SetSymbol(sexp.FormatCoord(pos.Y))
	c.sch.touch()
}

// SetRotation sets the component's rotation. Only multiples of 90
// degrees are accepted.
func (c *Component) SetRotation(deg float64) error {
	if !geometry.IsRightAngle(deg) {
		return fmt.Errorf("rotation must be a multiple of 90 degrees, got %v", deg)
	}
	deg = geometry.NormalizeAngle(deg)
	c.Rotation = deg
	n := c.at()
	if n.Len() > 3 {
		n.Child(3).SetSymbol(sexp.FormatCoord(deg))
	} else {
		n.Append(coordNode(deg))
	}
	c.sch.touch()
	return nil
}

// SetMirror sets the component's mirror axis: "x", "y" or "" for
// none.
func (c *Component) SetMirror(m geometry.Mirror) error {
	switch m {
	case geometry.MirrorNone, geometry.MirrorX, geometry.MirrorY:
	default:
		return fmt.Errorf("invalid mirror axis %q", string(m))
	}
	c.Mirror = m
	if n, ok := c.node.Find("mirror"); ok {
		if m == geometry.MirrorNone {
			c.node.RemoveChild(n)
		} else {
			n.Child(1).SetSymbol(string(m))
		}
	} else if m != geometry.MirrorNone {
		mn := sexp.NewList(sexp.NewSymbol("mirror"), sexp.NewSymbol(string(m)))
		sexp.Format(mn, 2)
		insertAfter(c.node, c.at(), mn)
	}
	c.sch.touch()
	return nil
}

// SetReference renames the component. The new reference must be
// unique.
func (c *Component) SetReference(reference string) error {
	if other, ok := c.sch.components.FirstByKey(indexReference, reference); ok && other != c {
		return &DuplicateReferenceError{Reference: reference, Path: "/"}
	}
	c.SetProperty("Reference", reference)
	for _, inst := range c.instances {
		inst.Reference = reference
		if refNode, ok := inst.node.Find("reference"); ok {
			refNode.Child(1).SetString(reference)
		}
	}
	return nil
}

// SetValue sets the component's "Value" property.
func (c *Component) SetValue(value string) {
	c.SetProperty("Value", value)
}

// AddInstance records a hierarchical occurrence of the component under
// the given project and sheet path.
func (c *Component) AddInstance(project, path, reference string, unit int) *Instance {
	instRoot, ok := c.node.Find("instances")
	if !ok {
		instRoot = sexp.NewList(sexp.NewSymbol("instances"))
		sexp.Format(instRoot, 2)
		c.node.Append(instRoot)
	}
	var projNode *sexp.Node
	for _, pn := range instRoot.FindAll("project") {
		if name, _ := pn.String(1); name == project {
			projNode = pn
			break
		}
	}
	if projNode == nil {
		projNode = sexp.NewList(sexp.NewSymbol("project"), sexp.NewString(project))
		sexp.Format(projNode, 3)
		instRoot.Append(projNode)
	}
	pathNode := sexp.NewList(
		sexp.NewSymbol("path"),
		sexp.NewString(path),
		sexp.NewList(sexp.NewSymbol("reference"), sexp.NewString(reference)),
		sexp.NewList(sexp.NewSymbol("unit"), sexp.NewSymbol(fmt.Sprintf("%d", unit))),
	)
	sexp.Format(pathNode, 4)
	projNode.Append(pathNode)

	inst := &Instance{
		node:      pathNode,
		Project:   project,
		Path:      path,
		Reference: reference,
		Unit:      unit,
	}
	c.instances = append(c.instances, inst)
	c.sch.touch()
	return inst
}
