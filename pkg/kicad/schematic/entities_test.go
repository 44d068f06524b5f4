package schematic

import (
	"errors"
	"testing"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
)

func TestAddWire(t *testing.T) {
	sch := mustParse(t, sampleSchematic)

	w, err := sch.AddWire(
		geometry.Point{X: 101.6, Y: 63.5},
		geometry.Point{X: 101.6, Y: 76.2},
	)
	if err != nil {
		t.Fatalf("AddWire failed: %v", err)
	}
	if w.UUID() == "" {
		t.Error("Expected generated uuid")
	}

	sch2 := reload(t, sch)
	if got := len(sch2.Wires()); got != 2 {
		t.Fatalf("Expected 2 wires after reload, got %d", got)
	}
	added, err := sch2.WireByUUID(w.UUID())
	if err != nil {
		t.Fatalf("Added wire missing after reload: %v", err)
	}
	if len(added.Points) != 2 || added.Points[1] != (geometry.Point{X: 101.6, Y: 76.2}) {
		t.Errorf("Unexpected wire points: %+v", added.Points)
	}
}

func TestAddWireElidesZeroLengthSegments(t *testing.T) {
	sch := mustParse(t, sampleSchematic)

	p := geometry.Point{X: 10, Y: 10}
	q := geometry.Point{X: 20, Y: 10}
	w, err := sch.AddWire(p, p, q, q)
	if err != nil {
		t.Fatalf("AddWire failed: %v", err)
	}
	if len(w.Points) != 2 {
		t.Errorf("Expected duplicates elided to 2 points, got %v", w.Points)
	}

	if _, err := sch.AddWire(p, p); err == nil {
		t.Error("Expected error for fully degenerate wire")
	}
}

func TestAddWirePath(t *testing.T) {
	sch := mustParse(t, sampleSchematic)

	path := []geometry.Point{
		{X: 0, Y: 0},
		{X: 12.7, Y: 0},
		{X: 12.7, Y: 12.7},
	}
	wires, err := sch.AddWirePath(path)
	if err != nil {
		t.Fatalf("AddWirePath failed: %v", err)
	}
	if len(wires) != 2 {
		t.Fatalf("Expected one wire per segment, got %d", len(wires))
	}
}

func TestRemoveWire(t *testing.T) {
	sch := mustParse(t, sampleSchematic)
	id := sch.Wires()[0].UUID()

	if err := sch.RemoveWire(id); err != nil {
		t.Fatalf("RemoveWire failed: %v", err)
	}
	sch2 := reload(t, sch)
	if got := len(sch2.Wires()); got != 0 {
		t.Errorf("Expected 0 wires after reload, got %d", got)
	}

	var nf *NotFoundError
	if err := sch.RemoveWire(id); !errors.As(err, &nf) {
		t.Errorf("Expected NotFoundError for double removal, got %v", err)
	}
}

func TestAddJunction(t *testing.T) {
	sch := mustParse(t, sampleSchematic)

	j := sch.AddJunction(geometry.Point{X: 101.6, Y: 63.5})
	sch2 := reload(t, sch)
	if got := len(sch2.Junctions()); got != 2 {
		t.Fatalf("Expected 2 junctions after reload, got %d", got)
	}
	if err := sch.RemoveJunction(j.UUID()); err != nil {
		t.Fatalf("RemoveJunction failed: %v", err)
	}
}

func TestAddLabelKinds(t *testing.T) {
	sch := mustParse(t, sampleSchematic)

	pos := geometry.Point{X: 25.4, Y: 25.4}
	if _, err := sch.AddLabel(LabelLocal, "NET_X", pos, 0); err != nil {
		t.Fatalf("AddLabel local failed: %v", err)
	}
	if _, err := sch.AddLabel(LabelGlobal, "NET_Y", pos, 90); err != nil {
		t.Fatalf("AddLabel global failed: %v", err)
	}
	if _, err := sch.AddLabel(LabelHier, "NET_Z", pos, 180); err != nil {
		t.Fatalf("AddLabel hierarchical failed: %v", err)
	}
	if _, err := sch.AddLabel(LabelLocal, "BAD", pos, 30); err == nil {
		t.Error("Expected error for off-angle label rotation")
	}

	sch2 := reload(t, sch)
	for _, tc := range []struct {
		text string
		kind LabelKind
	}{
		{"NET_X", LabelLocal},
		{"NET_Y", LabelGlobal},
		{"NET_Z", LabelHier},
	} {
		got := sch2.LabelsByText(tc.text)
		if len(got) != 1 {
			t.Errorf("Expected one label %q after reload, got %d", tc.text, len(got))
			continue
		}
		if got[0].Kind != tc.kind {
			t.Errorf("Label %q has kind %v, want %v", tc.text, got[0].Kind, tc.kind)
		}
	}
}

func TestRemoveLabel(t *testing.T) {
	sch := mustParse(t, sampleSchematic)
	l := sch.LabelsByText("SIG_A")[0]

	if err := sch.RemoveLabel(l.UUID()); err != nil {
		t.Fatalf("RemoveLabel failed: %v", err)
	}
	sch2 := reload(t, sch)
	if got := len(sch2.LabelsByText("SIG_A")); got != 0 {
		t.Errorf("Label still present after reload")
	}
}

func TestAddNoConnect(t *testing.T) {
	sch := mustParse(t, sampleSchematic)

	sch.AddNoConnect(geometry.Point{X: 5.08, Y: 5.08})
	sch2 := reload(t, sch)
	if got := len(sch2.NoConnects()); got != 2 {
		t.Errorf("Expected 2 no-connects after reload, got %d", got)
	}
}

func TestBoundingBox(t *testing.T) {
	sch := mustParse(t, sampleSchematic)

	box := sch.BoundingBox()
	if box.Min.X > 93.98 || box.Max.X < 165.1 {
		t.Errorf("Bounding box misses sheet extent: %+v", box)
	}

	empty := mustParse(t, `(kicad_sch (version 20231120) (uuid "x"))`)
	if box := empty.BoundingBox(); box != (geometry.Rect{}) {
		t.Errorf("Expected zero box for empty document, got %+v", box)
	}
}

func TestValidateCleanDocument(t *testing.T) {
	sch := mustParse(t, sampleSchematic)
	if findings := sch.Validate(); len(findings) != 0 {
		t.Errorf("Expected clean document, got %v", findings)
	}
}

func TestValidateFindings(t *testing.T) {
	input := `(kicad_sch
	(version 20231120)
	(uuid "doc")
	(lib_symbols)
	(wire (pts (xy 5 5) (xy 5 5)) (uuid "w1"))
	(symbol (lib_id "Device:R") (at 10 10 45) (uuid "s1")
		(property "Reference" "1R" (at 0 0 0))
	)
	(symbol (lib_id "Device:R") (at 10 10 0) (uuid "s2")
		(property "Reference" "1R" (at 0 0 0))
	)
)`
	sch := mustParse(t, input)

	findings := sch.Validate()
	want := map[string]bool{
		CodeInvalidReference:   false,
		CodeDuplicateReference: false,
		CodeUnresolvedSymbol:   false,
		CodeDegenerateWire:     false,
		CodeOffAngleRotation:   false,
		CodeOverlap:            false,
	}
	for _, f := range findings {
		if _, ok := want[f.Code]; ok {
			want[f.Code] = true
		}
	}
	for code, seen := range want {
		if !seen {
			t.Errorf("Expected finding %q, got %v", code, findings)
		}
	}
}

func TestValidateReferencePattern(t *testing.T) {
	tests := []struct {
		ref   string
		valid bool
	}{
		{"R1", true},
		{"U12", true},
		{"#PWR04", true},
		{"R", true},
		{"#FLG", true},
		{"r1", false},
		{"1R", false},
		{"#pwr1", false},
		{"", false},
	}

	for _, tc := range tests {
		input := `(kicad_sch
	(version 20231120)
	(uuid "doc")
	(lib_symbols (symbol "Device:R"))
	(symbol (lib_id "Device:R") (at 10 10 0) (uuid "s1")
		(property "Reference" "` + tc.ref + `" (at 0 0 0))
	)
)`
		sch := mustParse(t, input)
		flagged := false
		for _, f := range sch.Validate() {
			if f.Code == CodeInvalidReference {
				flagged = true
			}
		}
		if flagged == tc.valid {
			if tc.valid {
				t.Errorf("Reference %q flagged invalid, expected valid", tc.ref)
			} else {
				t.Errorf("Reference %q passed, expected invalid", tc.ref)
			}
		}
	}
}
