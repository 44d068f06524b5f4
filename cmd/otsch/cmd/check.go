package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/schematic"
)

var checkCmd = &cobra.Command{
	Use:   "check <schematic_file>",
	Short: "Validate a schematic and verify round-trip fidelity",
	Long: `Run structural checks on a schematic file and verify that
parsing and re-serializing it reproduces the input byte for byte.
The exit status is non-zero when any finding is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	sch, err := schematic.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	failed := false

	out := sch.Emit()
	if out == string(data) {
		fmt.Println("Round trip: identical")
	} else {
		failed = true
		fmt.Println("Round trip: DIFFERS")
		fmt.Printf("  input %d bytes, output %d bytes\n", len(data), len(out))
		if i := firstDiff(string(data), out); i >= 0 {
			fmt.Printf("  first difference at byte %d\n", i)
		}
	}

	findings := sch.Validate()
	if len(findings) == 0 {
		fmt.Println("Validation: clean")
	} else {
		failed = true
		fmt.Printf("Validation: %d finding(s)\n", len(findings))
		for _, f := range findings {
			fmt.Printf("  [%s] %s\n", f.Code, f.Message)
		}
	}

	if failed {
		return fmt.Errorf("check failed for %s", args[0])
	}
	return nil
}

func firstDiff(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
