package sexp

import (
	"errors"
	"strings"
	"testing"
)

const sampleSchematic = `(kicad_sch
	(version 20231120)
	(generator "eeschema")
	(uuid "862335ee-c981-4fe1-9eb9-84db19301dd4")
	(paper "A4")
	(lib_symbols)
	(wire
		(pts
			(xy 100.33 50.8) (xy 152.4 50.8)
		)
		(stroke
			(width 0)
			(type default)
		)
		(uuid "wire-1")
	)
	(junction
		(at 152.4 50.8)
		(diameter 0)
		(color 0 0 0 0)
		(uuid "junc-1")
	)
	(sheet_instances
		(path "/"
			(page "1")
		)
	)
)
`

func TestRoundTripIdentity(t *testing.T) {
	inputs := []struct {
		name string
		text string
	}{
		{"sample schematic", sampleSchematic},
		{"inline atoms", `(at 100 50 90)`},
		{"escaped quote", `(property "Value" "3.3V \"nominal\"")`},
		{"escaped backslash", `(property "Path" "C:\\lib\\parts")`},
		{"mixed whitespace", "(a\n   (b  1)\r\n\t(c 2))\n\n"},
		{"multiple roots", "(a 1)\n(b 2)\n"},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.text)
			if err != nil {
				t.Fatalf("ParseString() error: %v", err)
			}
			out := Emit(doc)
			if out != tt.text {
				t.Errorf("round trip mismatch:\ninput:  %q\noutput: %q", tt.text, out)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unbalanced open", `(kicad_sch (version 20231120)`},
		{"unbalanced close", `(a 1))`},
		{"unterminated string", `(property "Value`},
		{"invalid escape", `(property "bad \q escape")`},
		{"dangling backslash", `(property "bad \`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) expected error, got nil", tt.input)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Errorf("expected *SyntaxError, got %T: %v", err, err)
			}
		})
	}
}

func TestStringEscapeDecoding(t *testing.T) {
	doc, err := ParseString(`(property "Note" "say \"hi\" and \\ bye")`)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	val, err := doc.Root().String(2)
	if err != nil {
		t.Fatalf("String(2) error: %v", err)
	}
	want := `say "hi" and \ bye`
	if val != want {
		t.Errorf("decoded value = %q, want %q", val, want)
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	values := []string{
		`plain`,
		`with "quotes" inside`,
		`back\slash`,
		`tab	and
newline`,
		``,
	}

	for _, v := range values {
		n := NewString(v)
		doc, err := ParseString("(x " + n.raw + ")")
		if err != nil {
			t.Fatalf("reparse of %q failed: %v", v, err)
		}
		got, _ := doc.Root().String(1)
		if got != v {
			t.Errorf("quote round trip: got %q, want %q", got, v)
		}
	}
}

func TestFindAndTypedAccess(t *testing.T) {
	doc, err := ParseString(sampleSchematic)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	root := doc.Root()

	if root.Name() != "kicad_sch" {
		t.Errorf("Name() = %q, want kicad_sch", root.Name())
	}

	ver, ok := root.Find("version")
	if !ok {
		t.Fatal("Find(version) not found")
	}
	v, err := ver.Int(1)
	if err != nil || v != 20231120 {
		t.Errorf("Int(1) = %d, %v; want 20231120", v, err)
	}

	wires := root.FindAll("wire")
	if len(wires) != 1 {
		t.Fatalf("FindAll(wire) = %d nodes, want 1", len(wires))
	}
	pts, _ := wires[0].Find("pts")
	xys := pts.FindAll("xy")
	if len(xys) != 2 {
		t.Fatalf("expected 2 xy nodes, got %d", len(xys))
	}
	x, err := xys[0].Float(1)
	if err != nil || x != 100.33 {
		t.Errorf("Float(1) = %v, %v; want 100.33", x, err)
	}

	junc, _ := root.Find("junction")
	at, _ := junc.Find("at")
	if at == nil {
		t.Fatal("junction missing at node")
	}

	if _, ok := root.Find("no_such_key"); ok {
		t.Error("Find(no_such_key) should not be found")
	}
}

func TestMutateThenEmit(t *testing.T) {
	doc, err := ParseString("(symbol\n\t(at 100 50 0)\n\t(uuid \"abc\")\n)\n")
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	at, _ := doc.Root().Find("at")
	at.Child(1).SetSymbol("127")

	out := Emit(doc)
	want := "(symbol\n\t(at 127 50 0)\n\t(uuid \"abc\")\n)\n"
	if out != want {
		t.Errorf("Emit() = %q, want %q", out, want)
	}
}

func TestFormatSynthesizedWire(t *testing.T) {
	wire := NewList(
		NewSymbol("wire"),
		NewList(NewSymbol("pts"),
			NewList(NewSymbol("xy"), NewSymbol("100"), NewSymbol("50")),
			NewList(NewSymbol("xy"), NewSymbol("150"), NewSymbol("50")),
		),
		NewList(NewSymbol("stroke"),
			NewList(NewSymbol("width"), NewSymbol("0")),
			NewList(NewSymbol("type"), NewSymbol("default")),
		),
		NewList(NewSymbol("uuid"), NewString("w-1")),
	)
	Format(wire, 1)

	doc := &Document{Roots: []*Node{wire}}
	got := Emit(doc)
	want := "\n\t(wire\n\t\t(pts\n\t\t\t(xy 100 50) (xy 150 50)\n\t\t)\n\t\t(stroke\n\t\t\t(width 0)\n\t\t\t(type default)\n\t\t)\n\t\t(uuid \"w-1\")\n\t)"
	if got != want {
		t.Errorf("formatted wire:\ngot:  %q\nwant: %q", got, want)
	}

	// A formatted tree must reparse to the same structure
	if _, err := ParseString(got); err != nil {
		t.Errorf("formatted output does not reparse: %v", err)
	}
}

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100"},
		{100.33, "100.33"},
		{1.27, "1.27"},
		{2.54, "2.54"},
		{0, "0"},
		{-63.5, "-63.5"},
		{1.23456, "1.2346"},
		{-0.00001, "0"},
	}
	for _, tt := range tests {
		if got := FormatCoord(tt.in); got != tt.want {
			t.Errorf("FormatCoord(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmptyDocument(t *testing.T) {
	doc, err := ParseString("   \n")
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	if doc.Root() != nil {
		t.Error("Root() should be nil for empty document")
	}
	if Emit(doc) != "   \n" {
		t.Error("trailing whitespace of empty document not preserved")
	}
}

func TestNodeEditingHelpers(t *testing.T) {
	doc, _ := ParseString("(a (b 1) (c 2) (d 3))")
	root := doc.Root()
	c, _ := root.Find("c")

	extra := NewList(NewSymbol("e"), NewSymbol("4"))
	extra.prefix = " "
	for i, ch := range extra.Children {
		if i > 0 {
			ch.prefix = " "
		}
	}
	if !root.InsertBefore(c, extra) {
		t.Fatal("InsertBefore failed")
	}
	if !root.RemoveChild(c) {
		t.Fatal("RemoveChild failed")
	}
	if root.RemoveChild(c) {
		t.Error("RemoveChild of missing node should report false")
	}

	got := Emit(doc)
	if got != "(a (b 1) (e 4) (d 3))" {
		t.Errorf("after edit: %q", got)
	}
}

func TestLargeNesting(t *testing.T) {
	depth := 200
	text := strings.Repeat("(x ", depth) + "1" + strings.Repeat(")", depth)
	doc, err := ParseString(text)
	if err != nil {
		t.Fatalf("deep nesting parse failed: %v", err)
	}
	if Emit(doc) != text {
		t.Error("deep nesting round trip mismatch")
	}
}
