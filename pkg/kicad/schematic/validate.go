package schematic

import (
	"fmt"
	"regexp"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
)

// referencePattern matches well-formed reference designators: an
// optional power-symbol prefix, an uppercase letter prefix and an
// optional numeric index. "R1", "U12", "#PWR04" and "R" match; "r1"
// and "1R" do not.
var referencePattern = regexp.MustCompile(`^#?[A-Z]+[0-9]*$`)

// Stable finding codes.
const (
	CodeInvalidReference   = "invalid-reference"
	CodeDuplicateReference = "duplicate-reference"
	CodeUnresolvedSymbol   = "unresolved-symbol"
	CodeDegenerateWire     = "degenerate-wire"
	CodeOffAngleRotation   = "off-angle-rotation"
	CodeMissingUUID        = "missing-uuid"
	CodeDuplicateUUID      = "duplicate-uuid"
	CodeOverlap            = "overlapping-components"
)

// Validate checks the document for structural defects and returns
// every finding. A nil result means the document is clean.
func (s *Schematic) Validate() []ValidationError {
	var findings []ValidationError
	add := func(code, id, format string, args ...interface{}) {
		findings = append(findings, ValidationError{
			Code:    code,
			Message: fmt.Sprintf(format, args...),
			UUID:    id,
		})
	}

	seenRef := map[string]string{}
	seenPos := map[geometry.Point]string{}
	seenUUID := map[string]bool{}

	checkUUID := func(kind, id string) {
		if id == "" {
			add(CodeMissingUUID, "", "%s has no uuid", kind)
			return
		}
		if seenUUID[id] {
			add(CodeDuplicateUUID, id, "uuid %s used more than once", id)
		}
		seenUUID[id] = true
	}

	for _, c := range s.components.Items() {
		checkUUID("symbol", c.UUID())

		ref := c.Reference()
		if !referencePattern.MatchString(ref) {
			add(CodeInvalidReference, c.UUID(), "reference %q is not a valid designator", ref)
		}
		if prev, ok := seenRef[ref]; ok {
			add(CodeDuplicateReference, c.UUID(), "reference %q already used by %s", ref, prev)
		} else {
			seenRef[ref] = c.UUID()
		}

		if _, err := s.Resolver.Resolve(c.LibID); err != nil {
			add(CodeUnresolvedSymbol, c.UUID(), "lib_id %q does not resolve", c.LibID)
		}
		if !geometry.IsRightAngle(c.Rotation) {
			add(CodeOffAngleRotation, c.UUID(), "rotation %v is not a multiple of 90 degrees", c.Rotation)
		}
		if prev, ok := seenPos[c.Position]; ok {
			add(CodeOverlap, c.UUID(), "position (%v, %v) already occupied by %s", c.Position.X, c.Position.Y, prev)
		} else {
			seenPos[c.Position] = c.UUID()
		}
	}

	for _, w := range s.wires.Items() {
		checkUUID("wire", w.UUID())
		distinct := 0
		for i, p := range w.Points {
			if i == 0 || p != w.Points[i-1] {
				distinct++
			}
		}
		if distinct < 2 {
			add(CodeDegenerateWire, w.UUID(), "wire has %d distinct points", distinct)
		}
	}

	for _, j := range s.junctions.Items() {
		checkUUID("junction", j.UUID())
	}
	for _, l := range s.labels.Items() {
		checkUUID("label", l.UUID())
		if !geometry.IsRightAngle(l.Rotation) {
			add(CodeOffAngleRotation, l.UUID(), "rotation %v is not a multiple of 90 degrees", l.Rotation)
		}
	}
	for _, sh := range s.sheets.Items() {
		checkUUID("sheet", sh.UUID())
	}

	return findings
}
