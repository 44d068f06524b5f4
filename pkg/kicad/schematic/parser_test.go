package schematic

import (
	"errors"
	"strings"
	"testing"
)

const sampleSchematic = `(kicad_sch
	(version 20231120)
	(generator "eeschema")
	(generator_version "8.0")
	(uuid "5f0880e4-0cd4-4bd9-a66b-1b4bb8b0e071")
	(paper "A4")
	(title_block
		(title "Test Board")
		(date "2024-03-01")
		(rev "B")
		(company "OpenTraceLab")
	)
	(lib_symbols
		(symbol "Device:R"
			(property "Reference" "R" (at 0 0 0))
			(property "Value" "R" (at 0 0 0))
			(symbol "R_1_1"
				(pin passive line (at 0 -3.81 90) (length 1.27)
					(name "~")
					(number "1")
				)
				(pin passive line (at 0 3.81 270) (length 1.27)
					(name "~")
					(number "2")
				)
			)
		)
	)
	(junction (at 93.98 63.5)
		(diameter 0)
		(color 0 0 0 0)
		(uuid "9cb244d0-a4ca-46b1-9da9-19c00e327c5f")
	)
	(no_connect (at 120.65 63.5)
		(uuid "c12d9369-dfe5-4be9-95b8-0f2f4a7c6d21")
	)
	(wire
		(pts (xy 93.98 63.5) (xy 101.6 63.5))
		(stroke (width 0) (type default))
		(uuid "2dbb27dd-83e5-4c2f-9dae-2e3b1be53cdd")
	)
	(label "SIG_A"
		(at 96.52 63.5 0)
		(effects (font (size 1.27 1.27)))
		(uuid "6f1124f0-43a0-47a1-82b4-9e68235712a3")
	)
	(global_label "VCC"
		(shape input)
		(at 101.6 63.5 0)
		(uuid "ab7bb8a5-5773-43f4-bd9c-9b0d3be1f4a9")
	)
	(symbol
		(lib_id "Device:R")
		(at 93.98 67.31 0)
		(unit 1)
		(uuid "3f3f63c9-adcc-4f74-8b68-4a4c8c9a42a2")
		(property "Reference" "R1" (at 96.52 66.04 0))
		(property "Value" "10k" (at 96.52 68.58 0))
		(property "Footprint" "" (at 93.98 67.31 0))
		(instances
			(project "test"
				(path "/5f0880e4-0cd4-4bd9-a66b-1b4bb8b0e071"
					(reference "R1")
					(unit 1)
				)
			)
		)
	)
	(sheet (at 139.7 50.8)
		(size 25.4 19.05)
		(uuid "b8b61544-2ea0-44a4-9828-ad74f2a87e20")
		(property "Sheetname" "power")
		(property "Sheetfile" "power.kicad_sch")
		(pin "EN" input (at 139.7 55.88 180))
	)
	(sheet_instances
		(path "/" (page "1"))
	)
)`

func TestParseSample(t *testing.T) {
	sch, err := ParseString(sampleSchematic)
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}

	if sch.Version != 20231120 {
		t.Errorf("Expected version 20231120, got %d", sch.Version)
	}
	if sch.Generator != "eeschema" {
		t.Errorf("Expected generator 'eeschema', got '%s'", sch.Generator)
	}
	if sch.GeneratorVersion != "8.0" {
		t.Errorf("Expected generator version '8.0', got '%s'", sch.GeneratorVersion)
	}
	if sch.Paper != "A4" {
		t.Errorf("Expected paper 'A4', got '%s'", sch.Paper)
	}
	if sch.TitleBlock.Title != "Test Board" || sch.TitleBlock.Revision != "B" {
		t.Errorf("Unexpected title block: %+v", sch.TitleBlock)
	}
	if len(sch.LibSymbols) != 1 {
		t.Fatalf("Expected 1 lib symbol, got %d", len(sch.LibSymbols))
	}
	if len(sch.LibSymbols[0].Pins) != 2 {
		t.Errorf("Expected 2 pins on Device:R, got %d", len(sch.LibSymbols[0].Pins))
	}
	if got := len(sch.Components()); got != 1 {
		t.Fatalf("Expected 1 component, got %d", got)
	}
	if got := len(sch.Wires()); got != 1 {
		t.Errorf("Expected 1 wire, got %d", got)
	}
	if got := len(sch.Junctions()); got != 1 {
		t.Errorf("Expected 1 junction, got %d", got)
	}
	if got := len(sch.Labels()); got != 2 {
		t.Errorf("Expected 2 labels, got %d", got)
	}
	if got := len(sch.NoConnects()); got != 1 {
		t.Errorf("Expected 1 no-connect, got %d", got)
	}
	if got := len(sch.Sheets()); got != 1 {
		t.Errorf("Expected 1 sheet, got %d", got)
	}
	if got := len(sch.SheetInstances()); got != 1 {
		t.Errorf("Expected 1 sheet instance, got %d", got)
	}
}

func TestParseComponentDetails(t *testing.T) {
	sch, err := ParseString(sampleSchematic)
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}

	r1, err := sch.ComponentByReference("R1")
	if err != nil {
		t.Fatalf("ComponentByReference failed: %v", err)
	}
	if r1.LibID != "Device:R" {
		t.Errorf("Expected lib_id 'Device:R', got '%s'", r1.LibID)
	}
	if r1.Value() != "10k" {
		t.Errorf("Expected value '10k', got '%s'", r1.Value())
	}
	if r1.Position.X != 93.98 || r1.Position.Y != 67.31 {
		t.Errorf("Unexpected position: %+v", r1.Position)
	}
	if r1.Unit != 1 {
		t.Errorf("Expected unit 1, got %d", r1.Unit)
	}

	insts := r1.Instances()
	if len(insts) != 1 {
		t.Fatalf("Expected 1 instance record, got %d", len(insts))
	}
	if insts[0].Project != "test" || insts[0].Reference != "R1" {
		t.Errorf("Unexpected instance record: %+v", insts[0])
	}

	// Footprint is present but empty; absent keys fall back.
	if !r1.HasProperty("Footprint") {
		t.Error("Expected empty Footprint property to exist")
	}
	if got := r1.GetProperty("Footprint", "fallback"); got != "" {
		t.Errorf("Expected empty Footprint value, got '%s'", got)
	}
	if got := r1.GetProperty("Datasheet", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback for absent property, got '%s'", got)
	}
}

func TestParseLabelKinds(t *testing.T) {
	sch, err := ParseString(sampleSchematic)
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}

	local := sch.LabelsByText("SIG_A")
	if len(local) != 1 || local[0].Kind != LabelLocal {
		t.Fatalf("Expected one local label SIG_A, got %v", local)
	}
	global := sch.LabelsByText("VCC")
	if len(global) != 1 || global[0].Kind != LabelGlobal {
		t.Fatalf("Expected one global label VCC, got %v", global)
	}
	if global[0].Shape != "input" {
		t.Errorf("Expected shape 'input', got '%s'", global[0].Shape)
	}
}

func TestParseLabelDocumentOrder(t *testing.T) {
	input := `(kicad_sch
	(version 20231120)
	(uuid "doc")
	(global_label "A" (shape input) (at 0 0 0) (uuid "l1"))
	(label "B" (at 0 0 0) (uuid "l2"))
	(hierarchical_label "C" (shape input) (at 0 0 0) (uuid "l3"))
	(label "D" (at 0 0 0) (uuid "l4"))
)`
	sch, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}

	labels := sch.Labels()
	if len(labels) != 4 {
		t.Fatalf("Expected 4 labels, got %d", len(labels))
	}
	wantText := []string{"A", "B", "C", "D"}
	wantKind := []LabelKind{LabelGlobal, LabelLocal, LabelHier, LabelLocal}
	for i, l := range labels {
		if l.Text != wantText[i] || l.Kind != wantKind[i] {
			t.Errorf("Label %d: got %q kind %v, want %q kind %v",
				i, l.Text, l.Kind, wantText[i], wantKind[i])
		}
	}
}

func TestParseSheet(t *testing.T) {
	sch, err := ParseString(sampleSchematic)
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}

	sheets := sch.Sheets()
	if len(sheets) != 1 {
		t.Fatalf("Expected 1 sheet, got %d", len(sheets))
	}
	sh := sheets[0]
	if sh.Name != "power" || sh.File != "power.kicad_sch" {
		t.Errorf("Unexpected sheet identity: name=%q file=%q", sh.Name, sh.File)
	}
	if sh.Width != 25.4 || sh.Height != 19.05 {
		t.Errorf("Unexpected sheet size: %v x %v", sh.Width, sh.Height)
	}
	if len(sh.Pins) != 1 || sh.Pins[0].Name != "EN" {
		t.Errorf("Unexpected sheet pins: %+v", sh.Pins)
	}
}

func TestParseRejectsWrongRoot(t *testing.T) {
	_, err := ParseString(`(kicad_pcb (version 20231120))`)
	if err == nil {
		t.Fatal("Expected error for non-schematic root")
	}
}

func TestParseRejectsOldVersion(t *testing.T) {
	_, err := ParseString(`(kicad_sch (version 20200310))`)
	if err == nil {
		t.Fatal("Expected error for pre-6.0 file version")
	}
}

func TestParseMissingVersion(t *testing.T) {
	_, err := ParseString(`(kicad_sch (generator "eeschema"))`)
	if err == nil {
		t.Fatal("Expected error for missing version")
	}
}

func TestComponentLookupMiss(t *testing.T) {
	sch, err := ParseString(sampleSchematic)
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}

	_, err = sch.ComponentByReference("R99")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
	if nf.Kind != "component" || nf.Key != "R99" {
		t.Errorf("Unexpected error detail: %+v", nf)
	}
}

func TestRoundTripUnmodified(t *testing.T) {
	sch, err := ParseString(sampleSchematic)
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}

	out := sch.Emit()
	if out != sampleSchematic {
		t.Errorf("Round trip changed the document:\n--- in ---\n%s\n--- out ---\n%s", sampleSchematic, out)
	}
}

func TestRoundTripSave(t *testing.T) {
	sch, err := ParseString(sampleSchematic)
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}

	var sb strings.Builder
	if err := sch.Save(&sb); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if sb.String() != sampleSchematic {
		t.Error("Save output differs from input")
	}
}
