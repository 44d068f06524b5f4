package schematic

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/sexp"
)

// Minimum supported file format version (KiCad 6.0 = 20211014).
const MinSupportedVersion = 20211014

// ParseFile reads and parses a schematic file.
func ParseFile(filename string) (*Schematic, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// ParseString parses a schematic from a string.
func ParseString(text string) (*Schematic, error) {
	return Parse(strings.NewReader(text))
}

// Parse reads and parses a schematic from an io.Reader. Nodes the
// model does not understand stay in the tree untouched, so saving
// preserves them byte for byte.
func Parse(r io.Reader) (*Schematic, error) {
	doc, err := sexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, &sexp.SyntaxError{Msg: "empty file"}
	}
	if root.Name() != "kicad_sch" {
		return nil, fmt.Errorf("not a schematic file: expected 'kicad_sch', got '%s'", root.Name())
	}

	sch := newSchematic(doc, root)

	if err := parseHeader(root, sch); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	if uuidNode, found := root.Find("uuid"); found {
		sch.uuid, _ = uuidNode.String(1)
	}
	if paperNode, found := root.Find("paper"); found {
		sch.Paper, _ = paperNode.String(1)
	}
	if tbNode, found := root.Find("title_block"); found {
		sch.TitleBlock = parseTitleBlock(tbNode)
	}

	if libNode, found := root.Find("lib_symbols"); found {
		for _, symNode := range libNode.FindAll("symbol") {
			sch.LibSymbols = append(sch.LibSymbols, parseLibSymbol(symNode))
		}
	}

	for _, n := range root.FindAll("symbol") {
		sch.components.Add(parseComponent(sch, n))
	}
	for _, n := range root.FindAll("wire") {
		sch.wires.Add(parseWire(sch, n))
	}
	for _, n := range root.FindAll("junction") {
		sch.junctions.Add(parseJunction(sch, n))
	}
	for _, n := range root.FindAll("no_connect") {
		sch.noConnects = append(sch.noConnects, parseNoConnect(n))
	}
	// One pass in document order: the three kinds share a collection
	// and may interleave in the file.
	for _, n := range root.Children {
		switch n.Name() {
		case "label":
			sch.labels.Add(parseLabel(sch, n, LabelLocal))
		case "global_label":
			sch.labels.Add(parseLabel(sch, n, LabelGlobal))
		case "hierarchical_label":
			sch.labels.Add(parseLabel(sch, n, LabelHier))
		}
	}
	for _, n := range root.FindAll("sheet") {
		sch.sheets.Add(parseSheet(sch, n))
	}
	if instNode, found := root.Find("sheet_instances"); found {
		for _, pn := range instNode.FindAll("path") {
			inst := SheetInstance{}
			inst.Path, _ = pn.String(1)
			if pageNode, ok := pn.Find("page"); ok {
				inst.Page, _ = pageNode.String(1)
			}
			sch.sheetInstances = append(sch.sheetInstances, inst)
		}
	}

	return sch, nil
}

func parseHeader(root *sexp.Node, sch *Schematic) error {
	versionNode, found := root.Find("version")
	if !found {
		return fmt.Errorf("missing required 'version' field")
	}
	ver, err := versionNode.Int(1)
	if err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}
	if ver < MinSupportedVersion {
		return fmt.Errorf("unsupported file version: %d (minimum required: %d / KiCad 6.0)", ver, MinSupportedVersion)
	}
	sch.Version = ver

	if genNode, found := root.Find("generator"); found {
		sch.Generator, _ = genNode.String(1)
	}
	if genVerNode, found := root.Find("generator_version"); found {
		sch.GeneratorVersion, _ = genVerNode.String(1)
	}
	return nil
}

func parseTitleBlock(node *sexp.Node) TitleBlock {
	tb := TitleBlock{}
	if n, found := node.Find("title"); found {
		tb.Title, _ = n.String(1)
	}
	if n, found := node.Find("date"); found {
		tb.Date, _ = n.String(1)
	}
	if n, found := node.Find("rev"); found {
		tb.Revision, _ = n.String(1)
	}
	if n, found := node.Find("company"); found {
		tb.Company, _ = n.String(1)
	}
	return tb
}

// parseAt reads an (at X Y [angle]) node.
func parseAt(node *sexp.Node) (geometry.Point, float64) {
	x, _ := node.Float(1)
	y, _ := node.Float(2)
	angle := 0.0
	if node.Len() > 3 {
		angle, _ = node.Float(3)
	}
	return geometry.Point{X: x, Y: y}, angle
}

// parseXY reads a (keyword X Y) node.
func parseXY(node *sexp.Node) geometry.Point {
	x, _ := node.Float(1)
	y, _ := node.Float(2)
	return geometry.Point{X: x, Y: y}
}

func parsePoints(node *sexp.Node) []geometry.Point {
	var pts []geometry.Point
	if ptsNode, found := node.Find("pts"); found {
		for _, xy := range ptsNode.FindAll("xy") {
			pts = append(pts, parseXY(xy))
		}
	}
	return pts
}

func parseUUID(node *sexp.Node) string {
	if uuidNode, found := node.Find("uuid"); found {
		id, _ := uuidNode.String(1)
		return id
	}
	return ""
}

func parseLibSymbol(node *sexp.Node) *LibSymbol {
	sym := &LibSymbol{node: node}
	sym.Name, _ = node.String(1)

	// Pins live either directly on the symbol or inside nested unit
	// symbols.
	collect := func(n *sexp.Node) {
		for _, pn := range n.FindAll("pin") {
			sym.Pins = append(sym.Pins, parsePinDef(pn))
		}
	}
	collect(node)
	for _, unit := range node.FindAll("symbol") {
		collect(unit)
	}
	return sym
}

func parsePinDef(node *sexp.Node) PinDef {
	pin := PinDef{}
	typ, _ := node.String(1)
	pin.Type = PinType(typ)

	if atNode, found := node.Find("at"); found {
		pin.Position, pin.Orientation = parseAt(atNode)
	}
	if nameNode, found := node.Find("name"); found {
		pin.Name, _ = nameNode.String(1)
	}
	if numNode, found := node.Find("number"); found {
		pin.Number, _ = numNode.String(1)
	}
	return pin
}

func parseComponent(sch *Schematic, node *sexp.Node) *Component {
	c := &Component{sch: sch, node: node, Unit: 1}

	if libNode, found := node.Find("lib_id"); found {
		c.LibID, _ = libNode.String(1)
	}
	if atNode, found := node.Find("at"); found {
		c.Position, c.Rotation = parseAt(atNode)
	}
	if mirrorNode, found := node.Find("mirror"); found {
		m, _ := mirrorNode.String(1)
		c.Mirror = geometry.Mirror(m)
	}
	if unitNode, found := node.Find("unit"); found {
		c.Unit, _ = unitNode.Int(1)
	}
	c.uuid = parseUUID(node)

	for _, pn := range node.FindAll("property") {
		key, err := pn.String(1)
		if err != nil {
			continue
		}
		value, _ := pn.String(2)
		c.props = append(c.props, &Property{node: pn, Key: key, Value: value})
	}

	// Hierarchical occurrence records are authoritative user data:
	// read them when present, never invent them.
	if instNode, found := node.Find("instances"); found {
		for _, projNode := range instNode.FindAll("project") {
			project, _ := projNode.String(1)
			for _, pathNode := range projNode.FindAll("path") {
				inst := &Instance{node: pathNode, Project: project, Unit: 1}
				inst.Path, _ = pathNode.String(1)
				if refNode, ok := pathNode.Find("reference"); ok {
					inst.Reference, _ = refNode.String(1)
				}
				if unitNode, ok := pathNode.Find("unit"); ok {
					inst.Unit, _ = unitNode.Int(1)
				}
				c.instances = append(c.instances, inst)
			}
		}
	}

	return c
}

func parseWire(sch *Schematic, node *sexp.Node) *Wire {
	return &Wire{
		sch:    sch,
		node:   node,
		uuid:   parseUUID(node),
		Points: parsePoints(node),
	}
}

func parseJunction(sch *Schematic, node *sexp.Node) *Junction {
	j := &Junction{sch: sch, node: node, uuid: parseUUID(node)}
	if atNode, found := node.Find("at"); found {
		j.Position, _ = parseAt(atNode)
	}
	return j
}

func parseNoConnect(node *sexp.Node) *NoConnect {
	nc := &NoConnect{node: node, uuid: parseUUID(node)}
	if atNode, found := node.Find("at"); found {
		nc.Position, _ = parseAt(atNode)
	}
	return nc
}

func parseLabel(sch *Schematic, node *sexp.Node, kind LabelKind) *Label {
	l := &Label{sch: sch, node: node, uuid: parseUUID(node), Kind: kind}
	l.Text, _ = node.String(1)
	if atNode, found := node.Find("at"); found {
		l.Position, l.Rotation = parseAt(atNode)
	}
	if shapeNode, found := node.Find("shape"); found {
		l.Shape, _ = shapeNode.String(1)
	}
	return l
}

func parseSheet(sch *Schematic, node *sexp.Node) *Sheet {
	sh := &Sheet{sch: sch, node: node, uuid: parseUUID(node)}
	if atNode, found := node.Find("at"); found {
		sh.Position, _ = parseAt(atNode)
	}
	if sizeNode, found := node.Find("size"); found {
		sh.Width, _ = sizeNode.Float(1)
		sh.Height, _ = sizeNode.Float(2)
	}
	for _, pn := range node.FindAll("property") {
		key, _ := pn.String(1)
		value, _ := pn.String(2)
		switch key {
		case "Sheetname":
			sh.Name = value
		case "Sheetfile":
			sh.File = value
		}
	}
	for _, pn := range node.FindAll("pin") {
		pin := &SheetPin{node: pn}
		pin.Name, _ = pn.String(1)
		pin.Shape, _ = pn.String(2)
		if atNode, found := pn.Find("at"); found {
			pin.Position, _ = parseAt(atNode)
		}
		sh.Pins = append(sh.Pins, pin)
	}
	return sh
}
