// Package schematic provides the typed document model for KiCad
// schematic files (.kicad_sch). Entities are typed views over the
// parsed S-expression tree: the tree is the single storage, mutators
// keep view and tree in sync, and saving re-emits the tree so that an
// unmodified load/save cycle is byte-identical to the input.
package schematic

import (
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/sexp"
)

// PinType is a pin's electrical class, using the file format's
// spelling.
type PinType string

const (
	PinInput         PinType = "input"
	PinOutput        PinType = "output"
	PinBidirectional PinType = "bidirectional"
	PinPowerIn       PinType = "power_in"
	PinPowerOut      PinType = "power_out"
	PinPassive       PinType = "passive"
	PinUnspecified   PinType = "unspecified"
	PinTriState      PinType = "tri_state"
	PinOpenCollector PinType = "open_collector"
	PinOpenEmitter   PinType = "open_emitter"
	PinNoConnect     PinType = "no_connect"
)

// Valid reports whether t is one of the known electrical classes.
func (t PinType) Valid() bool {
	switch t {
	case PinInput, PinOutput, PinBidirectional, PinPowerIn, PinPowerOut,
		PinPassive, PinUnspecified, PinTriState, PinOpenCollector,
		PinOpenEmitter, PinNoConnect:
		return true
	}
	return false
}

// PinDef is one pin of a symbol definition: stable number, name,
// electrical class, and symbol-local placement. The number is a string
// because pin "numbers" like "A1" or "EP" are common.
type PinDef struct {
	Number      string
	Name        string
	Type        PinType
	Position    geometry.Point // symbol-local frame
	Orientation float64        // 0, 90, 180 or 270 degrees
}

// LibSymbol is an embedded library symbol definition.
type LibSymbol struct {
	node *sexp.Node

	Name string
	Pins []PinDef
}

// Property is one named value of a component's ordered property map.
// Insertion order is significant and survives a save/load cycle.
type Property struct {
	node *sexp.Node

	Key   string
	Value string
}

// Instance is one hierarchical occurrence record of a component: an
// exact sheet path plus the per-sheet reference and unit override.
// Instance paths are user data: the parser populates them from the
// input when present and never synthesizes or overwrites them.
type Instance struct {
	node *sexp.Node

	Project   string
	Path      string
	Reference string
	Unit      int
}

// Component is a placed symbol instance.
type Component struct {
	sch  *Schematic
	node *sexp.Node
	uuid string

	LibID     string
	Position  geometry.Point
	Rotation  float64
	Mirror    geometry.Mirror
	Unit      int
	props     []*Property
	instances []*Instance
}

// UUID returns the component's document-unique identifier.
func (c *Component) UUID() string { return c.uuid }

// Reference returns the reference designator (the "Reference"
// property), e.g. "R1".
func (c *Component) Reference() string { return c.GetProperty("Reference", "") }

// Value returns the "Value" property.
func (c *Component) Value() string { return c.GetProperty("Value", "") }

// Placement returns the component's world-frame placement for pin
// transforms.
func (c *Component) Placement() geometry.Placement {
	return geometry.Placement{
		Position: c.Position,
		Rotation: c.Rotation,
		Mirror:   c.Mirror,
	}
}

// Instances returns the hierarchical occurrence records in file order.
func (c *Component) Instances() []*Instance { return c.instances }

// Wire is a polyline of at least two points.
type Wire struct {
	sch  *Schematic
	node *sexp.Node
	uuid string

	Points []geometry.Point
}

// UUID returns the wire's document-unique identifier.
func (w *Wire) UUID() string { return w.uuid }

// Junction marks an electrical join where wires meet or cross.
type Junction struct {
	sch  *Schematic
	node *sexp.Node
	uuid string

	Position geometry.Point
}

// UUID returns the junction's document-unique identifier.
func (j *Junction) UUID() string { return j.uuid }

// NoConnect is a marker telling design checks a pin is deliberately
// unwired.
type NoConnect struct {
	node *sexp.Node
	uuid string

	Position geometry.Point
}

// UUID returns the marker's document-unique identifier.
func (n *NoConnect) UUID() string { return n.uuid }

// LabelKind distinguishes the three label scopes.
type LabelKind int

const (
	LabelLocal LabelKind = iota
	LabelGlobal
	LabelHier
)

// nodeName returns the file-format node name for the label kind.
func (k LabelKind) nodeName() string {
	switch k {
	case LabelGlobal:
		return "global_label"
	case LabelHier:
		return "hierarchical_label"
	}
	return "label"
}

// Label is a net label. Local labels name a net on one sheet, global
// labels span all sheets, and hierarchical labels bind to sheet pins.
type Label struct {
	sch  *Schematic
	node *sexp.Node
	uuid string

	Kind     LabelKind
	Text     string
	Position geometry.Point
	Rotation float64
	Shape    string // signal direction, global and hierarchical only
}

// UUID returns the label's document-unique identifier.
func (l *Label) UUID() string { return l.uuid }

// SheetPin is a hierarchical pin on a sheet boundary.
type SheetPin struct {
	node *sexp.Node

	Name     string
	Shape    string // input, output, bidirectional, tri_state, passive
	Position geometry.Point
}

// Sheet is a hierarchical sub-document reference.
type Sheet struct {
	sch  *Schematic
	node *sexp.Node
	uuid string

	Name     string
	File     string
	Position geometry.Point
	Width    float64
	Height   float64
	Pins     []*SheetPin
}

// UUID returns the sheet's document-unique identifier.
func (s *Sheet) UUID() string { return s.uuid }

// SheetInstance is a root-level sheet instance path with its page
// number.
type SheetInstance struct {
	Path string
	Page string
}

// TitleBlock holds the document's title block fields. Empty fields are
// absent from the file.
type TitleBlock struct {
	Title    string
	Date     string
	Revision string
	Company  string
}
