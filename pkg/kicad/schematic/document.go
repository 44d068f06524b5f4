package schematic

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/sexp"
)

// Schematic is a loaded schematic document. It is the sole owner of
// all entities; collections and analyzers hold transient references
// that become invalid after any mutation. A Schematic is not safe for
// concurrent mutation.
type Schematic struct {
	doc  *sexp.Document
	root *sexp.Node

	Version          int
	Generator        string
	GeneratorVersion string
	Paper            string
	TitleBlock       TitleBlock

	uuid       string
	LibSymbols []*LibSymbol

	components *Collection[*Component]
	wires      *Collection[*Wire]
	junctions  *Collection[*Junction]
	labels     *Collection[*Label]
	sheets     *Collection[*Sheet]
	noConnects []*NoConnect

	sheetInstances []SheetInstance

	// Resolver maps library identifiers to pin definitions. It
	// defaults to the document's embedded lib_symbols section and can
	// be replaced with an external lookup.
	Resolver SymbolResolver
}

// UUID returns the document identifier.
func (s *Schematic) UUID() string { return s.uuid }

func newSchematic(doc *sexp.Document, root *sexp.Node) *Schematic {
	s := &Schematic{doc: doc, root: root}
	s.components = NewCollection[*Component](map[string]KeyFunc[*Component]{
		indexReference: func(c *Component) string { return c.Reference() },
		indexLibID:     func(c *Component) string { return c.LibID },
		indexValue:     func(c *Component) string { return c.Value() },
	})
	s.wires = NewCollection[*Wire](nil)
	s.junctions = NewCollection[*Junction](nil)
	s.labels = NewCollection[*Label](map[string]KeyFunc[*Label]{
		indexText: func(l *Label) string { return l.Text },
	})
	s.sheets = NewCollection[*Sheet](map[string]KeyFunc[*Sheet]{
		indexName: func(sh *Sheet) string { return sh.Name },
	})
	s.Resolver = &embeddedResolver{sch: s}
	return s
}

// Secondary index names.
const (
	indexReference = "reference"
	indexLibID     = "lib_id"
	indexValue     = "value"
	indexText      = "text"
	indexName      = "name"
)

// Components returns all components in load order.
func (s *Schematic) Components() []*Component { return s.components.Items() }

// ComponentByReference returns the component with the given reference
// designator, or a NotFoundError.
func (s *Schematic) ComponentByReference(ref string) (*Component, error) {
	c, ok := s.components.FirstByKey(indexReference, ref)
	if !ok {
		return nil, &NotFoundError{Kind: "component", Key: ref}
	}
	return c, nil
}

// ComponentByUUID returns the component with the given identifier, or
// a NotFoundError.
func (s *Schematic) ComponentByUUID(id string) (*Component, error) {
	c, ok := s.components.ByUUID(id)
	if !ok {
		return nil, &NotFoundError{Kind: "component", Key: id}
	}
	return c, nil
}

// ComponentsByLib returns every component placed from the given
// library symbol.
func (s *Schematic) ComponentsByLib(libID string) []*Component {
	return s.components.ByKey(indexLibID, libID)
}

// ComponentsByValue returns every component with the given value
// string.
func (s *Schematic) ComponentsByValue(value string) []*Component {
	return s.components.ByKey(indexValue, value)
}

// Wires returns all wires in load order.
func (s *Schematic) Wires() []*Wire { return s.wires.Items() }

// WireByUUID returns the wire with the given identifier, or a
// NotFoundError.
func (s *Schematic) WireByUUID(id string) (*Wire, error) {
	w, ok := s.wires.ByUUID(id)
	if !ok {
		return nil, &NotFoundError{Kind: "wire", Key: id}
	}
	return w, nil
}

// Junctions returns all junctions in load order.
func (s *Schematic) Junctions() []*Junction { return s.junctions.Items() }

// Labels returns all labels (local, global and hierarchical) in load
// order.
func (s *Schematic) Labels() []*Label { return s.labels.Items() }

// LabelsByText returns every label carrying the given text.
func (s *Schematic) LabelsByText(text string) []*Label {
	return s.labels.ByKey(indexText, text)
}

// Sheets returns all hierarchical sheet references in load order.
func (s *Schematic) Sheets() []*Sheet { return s.sheets.Items() }

// NoConnects returns all no-connect markers in load order.
func (s *Schematic) NoConnects() []*NoConnect { return s.noConnects }

// SheetInstances returns the root sheet instance paths.
func (s *Schematic) SheetInstances() []SheetInstance { return s.sheetInstances }

// touch invalidates every secondary index after a mutation.
func (s *Schematic) touch() {
	s.components.MarkDirty()
	s.wires.MarkDirty()
	s.junctions.MarkDirty()
	s.labels.MarkDirty()
	s.sheets.MarkDirty()
}

// Emit serializes the document to its textual form. For an unmodified
// document the output is byte-identical to the input.
func (s *Schematic) Emit() string {
	return sexp.Emit(s.doc)
}

// Save writes the document to w.
func (s *Schematic) Save(w io.Writer) error {
	return sexp.Write(w, s.doc)
}

// SaveFile writes the document to a file.
func (s *Schematic) SaveFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := s.Save(f); err != nil {
		return fmt.Errorf("failed to write schematic: %w", err)
	}
	return nil
}

// BoundingBox returns the extent of all placed entities, or a zero
// rectangle for an empty document.
func (s *Schematic) BoundingBox() geometry.Rect {
	var box geometry.Rect
	first := true
	expand := func(p geometry.Point) {
		if first {
			box = geometry.Rect{Min: p, Max: p}
			first = false
			return
		}
		box = box.Expand(p)
	}

	for _, c := range s.components.Items() {
		expand(c.Position)
	}
	for _, w := range s.wires.Items() {
		for _, p := range w.Points {
			expand(p)
		}
	}
	for _, j := range s.junctions.Items() {
		expand(j.Position)
	}
	for _, l := range s.labels.Items() {
		expand(l.Position)
	}
	for _, sh := range s.sheets.Items() {
		expand(sh.Position)
		expand(geometry.Point{X: sh.Position.X + sh.Width, Y: sh.Position.Y + sh.Height})
	}
	return box
}

// insertEntityNode places a synthesized top-level entity node into the
// tree, before the sheet_instances block when present so the file
// keeps the native section ordering, and formats it with the native
// writer conventions.
func (s *Schematic) insertEntityNode(node *sexp.Node) {
	sexp.Format(node, 1)
	if tail, ok := s.root.Find("sheet_instances"); ok {
		s.root.InsertBefore(tail, node)
		return
	}
	s.root.Append(node)
}

// insertAfter places child directly after target among parent's
// children, falling back to append when target is missing.
func insertAfter(parent, target, child *sexp.Node) {
	i := parent.Index(target)
	if i < 0 || i+1 >= parent.Len() {
		parent.Append(child)
		return
	}
	parent.InsertBefore(parent.Children[i+1], child)
}
