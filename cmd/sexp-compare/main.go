// Command sexp-compare cross-checks the schematic codec against a
// general-purpose s-expression parser. It is a debugging aid: when the
// codec rejects a file or a round trip differs, this shows whether the
// file is structurally sound at all.
package main

import (
	"fmt"
	"os"

	"github.com/chewxy/sexp"

	ours "github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/sexp"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: sexp-compare <schematic_file>")
		os.Exit(1)
	}

	filename := os.Args[1]
	data, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}
	fmt.Printf("File size: %d bytes\n", len(data))

	fmt.Println("\nReference parser (chewxy/sexp):")
	sexps, err := sexp.ParseString(string(data))
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
	} else {
		fmt.Printf("  Parsed %d s-expression(s)\n", len(sexps))
		if len(sexps) > 0 && !sexps[0].IsLeaf() {
			fmt.Printf("  Leaf count: %d\n", sexps[0].LeafCount())
		}
	}

	fmt.Println("\nSchematic codec:")
	doc, err := ours.ParseString(string(data))
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		os.Exit(1)
	}
	root := doc.Root()
	fmt.Printf("  Root: (%s ...) with %d children\n", root.Name(), root.Len())

	out := ours.Emit(doc)
	if out == string(data) {
		fmt.Println("  Round trip: identical")
	} else {
		fmt.Printf("  Round trip: DIFFERS (input %d bytes, output %d bytes)\n", len(data), len(out))
		n := len(data)
		if len(out) < n {
			n = len(out)
		}
		for i := 0; i < n; i++ {
			if data[i] != out[i] {
				fmt.Printf("  First difference at byte %d: %q vs %q\n", i, data[i], out[i])
				break
			}
		}
	}
}
