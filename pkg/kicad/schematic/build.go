package schematic

import (
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/sexp"
)

// Node builders for synthesized entities. They produce the same shapes
// the native writer emits; Format assigns whitespace afterwards.

func coordNode(v float64) *sexp.Node {
	return sexp.NewSymbol(sexp.FormatCoord(v))
}

func atNode(pos geometry.Point, angle float64) *sexp.Node {
	return sexp.NewList(
		sexp.NewSymbol("at"),
		coordNode(pos.X),
		coordNode(pos.Y),
		coordNode(angle),
	)
}

func xyNode(p geometry.Point) *sexp.Node {
	return sexp.NewList(sexp.NewSymbol("xy"), coordNode(p.X), coordNode(p.Y))
}

func ptsNode(points []geometry.Point) *sexp.Node {
	n := sexp.NewList(sexp.NewSymbol("pts"))
	for _, p := range points {
		n.Append(xyNode(p))
	}
	return n
}

func uuidNode(id string) *sexp.Node {
	return sexp.NewList(sexp.NewSymbol("uuid"), sexp.NewString(id))
}

func strokeNode() *sexp.Node {
	return sexp.NewList(
		sexp.NewSymbol("stroke"),
		sexp.NewList(sexp.NewSymbol("width"), sexp.NewSymbol("0")),
		sexp.NewList(sexp.NewSymbol("type"), sexp.NewSymbol("default")),
	)
}

func effectsNode() *sexp.Node {
	return sexp.NewList(
		sexp.NewSymbol("effects"),
		sexp.NewList(
			sexp.NewSymbol("font"),
			sexp.NewList(sexp.NewSymbol("size"), sexp.NewSymbol("1.27"), sexp.NewSymbol("1.27")),
		),
	)
}

func propertyNode(key, value string, pos geometry.Point) *sexp.Node {
	return sexp.NewList(
		sexp.NewSymbol("property"),
		sexp.NewString(key),
		sexp.NewString(value),
		atNode(pos, 0),
		effectsNode(),
	)
}
