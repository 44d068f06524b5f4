package schematic

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/sexp"
)

// AddWire adds a wire through the given points. Zero-length segments
// are elided; at least two distinct consecutive points must remain.
func (s *Schematic) AddWire(points ...geometry.Point) (*Wire, error) {
	var pts []geometry.Point
	for _, p := range points {
		if len(pts) > 0 && p == pts[len(pts)-1] {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("wire needs at least two distinct points, got %d", len(pts))
	}

	id := uuid.NewString()
	node := sexp.NewList(
		sexp.NewSymbol("wire"),
		ptsNode(pts),
		strokeNode(),
		uuidNode(id),
	)
	w := &Wire{sch: s, node: node, uuid: id, Points: pts}
	s.insertEntityNode(node)
	s.wires.Add(w)
	s.touch()
	return w, nil
}

// AddWirePath adds one wire per segment of the path, the shape a
// router returns. Zero-length segments are skipped.
func (s *Schematic) AddWirePath(path []geometry.Point) ([]*Wire, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("path needs at least two points, got %d", len(path))
	}
	var wires []*Wire
	for i := 1; i < len(path); i++ {
		if path[i] == path[i-1] {
			continue
		}
		w, err := s.AddWire(path[i-1], path[i])
		if err != nil {
			return wires, err
		}
		wires = append(wires, w)
	}
	return wires, nil
}

// RemoveWire removes the wire with the given identifier.
func (s *Schematic) RemoveWire(id string) error {
	w, err := s.wires.RemoveByUUID("wire", id)
	if err != nil {
		return err
	}
	s.root.RemoveChild(w.node)
	s.touch()
	return nil
}

// AddJunction marks an electrical join at the given position.
func (s *Schematic) AddJunction(pos geometry.Point) *Junction {
	id := uuid.NewString()
	node := sexp.NewList(
		sexp.NewSymbol("junction"),
		atNode(pos, 0),
		sexp.NewList(sexp.NewSymbol("diameter"), sexp.NewSymbol("0")),
		sexp.NewList(sexp.NewSymbol("color"), sexp.NewSymbol("0"), sexp.NewSymbol("0"), sexp.NewSymbol("0"), sexp.NewSymbol("0")),
		uuidNode(id),
	)
	j := &Junction{sch: s, node: node, uuid: id, Position: pos}
	s.insertEntityNode(node)
	s.junctions.Add(j)
	s.touch()
	return j
}

// RemoveJunction removes the junction with the given identifier.
func (s *Schematic) RemoveJunction(id string) error {
	j, err := s.junctions.RemoveByUUID("junction", id)
	if err != nil {
		return err
	}
	s.root.RemoveChild(j.node)
	s.touch()
	return nil
}

// AddLabel attaches a net label at the given position. Global and
// hierarchical labels get the default "input" shape; local labels
// carry none.
func (s *Schematic) AddLabel(kind LabelKind, text string, pos geometry.Point, rotation float64) (*Label, error) {
	if !geometry.IsRightAngle(rotation) {
		return nil, fmt.Errorf("label rotation must be a multiple of 90 degrees, got %v", rotation)
	}
	rotation = geometry.NormalizeAngle(rotation)

	id := uuid.NewString()
	node := sexp.NewList(
		sexp.NewSymbol(kind.nodeName()),
		sexp.NewString(text),
	)
	shape := ""
	if kind != LabelLocal {
		shape = "input"
		node.Append(sexp.NewList(sexp.NewSymbol("shape"), sexp.NewSymbol(shape)))
	}
	node.Append(atNode(pos, rotation), effectsNode(), uuidNode(id))

	l := &Label{
		sch:      s,
		node:     node,
		uuid:     id,
		Kind:     kind,
		Text:     text,
		Position: pos,
		Rotation: rotation,
		Shape:    shape,
	}
	s.insertEntityNode(node)
	s.labels.Add(l)
	s.touch()
	return l, nil
}

// RemoveLabel removes the label with the given identifier.
func (s *Schematic) RemoveLabel(id string) error {
	l, err := s.labels.RemoveByUUID("label", id)
	if err != nil {
		return err
	}
	s.root.RemoveChild(l.node)
	s.touch()
	return nil
}

// AddNoConnect places a no-connect marker at the given position.
func (s *Schematic) AddNoConnect(pos geometry.Point) *NoConnect {
	id := uuid.NewString()
	node := sexp.NewList(
		sexp.NewSymbol("no_connect"),
		atNode(pos, 0),
		uuidNode(id),
	)
	nc := &NoConnect{node: node, uuid: id, Position: pos}
	s.insertEntityNode(node)
	s.noConnects = append(s.noConnects, nc)
	return nc
}
